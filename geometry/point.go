package geometry

// Point is a location in the plane, as distinct from a Vec (a
// displacement). The two are only combined via Add/Sub, never confused.
type Point struct {
	X, Y float32
}

// XYPoint constructs a Point from its coordinates.
func XYPoint(x, y float32) Point { return Point{X: x, Y: y} }

// Offset returns the vector from the origin to the point.
func (p Point) Offset() Vec { return Vec{p.X, p.Y} }

// Add returns the point translated by v.
func (p Point) Add(v Vec) Point { return Point{p.X + v.X, p.Y + v.Y} }

// Sub returns the vector from o to p (i.e. p - o).
func (p Point) Sub(o Point) Vec { return Vec{p.X - o.X, p.Y - o.Y} }

// Min returns the component-wise minimum of two points.
func (p Point) Min(o Point) Point {
	return Point{minFloat32(p.X, o.X), minFloat32(p.Y, o.Y)}
}

// Max returns the component-wise maximum of two points.
func (p Point) Max(o Point) Point {
	return Point{maxFloat32(p.X, o.X), maxFloat32(p.Y, o.Y)}
}
