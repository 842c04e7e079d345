package geometry

// Triangle is a triangle defined by three points, in order.
type Triangle struct {
	P0, P1, P2 Point
}

// SignedArea returns ½·((p1-p0) × (p2-p0)). The sign encodes the winding
// of the vertices: positive for counterclockwise, negative for clockwise.
func (t Triangle) SignedArea() float32 {
	return Determinant(t.P1.Sub(t.P0), t.P2.Sub(t.P0)) / 2
}

// GetEdge returns the segment from P_i to P_(i+1 mod 3). This panics if i
// is not 0, 1, or 2.
func (t Triangle) GetEdge(i int) Segment {
	pts := [3]Point{t.P0, t.P1, t.P2}
	switch i {
	case 0, 1, 2:
		return Segment{Start: pts[i], End: pts[(i+1)%3]}
	default:
		panic("geometry: Triangle.GetEdge index out of range")
	}
}

// Contains reports whether p lies within the triangle, inclusive of the
// boundary, using the sign of the barycentric coordinates.
func (t Triangle) Contains(p Point) bool {
	d0 := Determinant(t.P1.Sub(t.P0), p.Sub(t.P0))
	d1 := Determinant(t.P2.Sub(t.P1), p.Sub(t.P1))
	d2 := Determinant(t.P0.Sub(t.P2), p.Sub(t.P2))
	hasNeg := d0 < 0 || d1 < 0 || d2 < 0
	hasPos := d0 > 0 || d1 > 0 || d2 > 0
	return !(hasNeg && hasPos)
}

// Min returns the lower-left corner of the triangle's axis-aligned
// bounding box.
func (t Triangle) Min() Point { return t.P0.Min(t.P1).Min(t.P2) }

// Max returns the upper-right corner of the triangle's axis-aligned
// bounding box.
func (t Triangle) Max() Point { return t.P0.Max(t.P1).Max(t.P2) }
