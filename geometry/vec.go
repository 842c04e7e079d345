package geometry

import "math"

// Vec is a 2-D displacement, as distinct from a Point (a location). It
// carries its own arithmetic; Points are only ever added to or subtracted
// from by a Vec, never from each other as a Vec (that's Point.Sub).
type Vec struct {
	X, Y float32
}

// XY constructs a Vec from its components.
func XY(x, y float32) Vec { return Vec{X: x, Y: y} }

// Add returns the sum of two vectors.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns the difference of two vectors.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns the vector scaled by k.
func (v Vec) Scale(k float32) Vec { return Vec{v.X * k, v.Y * k} }

// Magnitude returns the Euclidean length of the vector.
func (v Vec) Magnitude() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// MagnitudeSquared returns the squared length, avoiding the square root.
func (v Vec) MagnitudeSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Direction returns the angle of the vector relative to the positive
// x-axis.
func (v Vec) Direction() Angle {
	return Angle(math.Atan2(float64(v.Y), float64(v.X)))
}

// FromDirectionAndMagnitude constructs a Vec with the given direction and
// magnitude.
func FromDirectionAndMagnitude(dir Angle, magnitude float32) Vec {
	return Vec{Cos(dir) * magnitude, Sin(dir) * magnitude}
}

// Orthogonal returns the vector rotated a quarter turn counterclockwise.
func (v Vec) Orthogonal() Vec { return Vec{-v.Y, v.X} }

// Dot returns the dot product of two vectors.
func (v Vec) Dot(o Vec) float32 { return v.X*o.X + v.Y*o.Y }

// Determinant returns the signed cross product (a.k.a. the 2-D
// "determinant") of two vectors: a.X*b.Y - a.Y*b.X.
func Determinant(a, b Vec) float32 { return a.X*b.Y - a.Y*b.X }

// SignedAngleBetween returns the signed angle you'd rotate a by to align
// it with b, in the range (-π, π].
func SignedAngleBetween(a, b Vec) Angle {
	return Angle(math.Atan2(float64(Determinant(a, b)), float64(a.Dot(b))))
}

// Min returns the component-wise minimum of two vectors.
func (v Vec) Min(o Vec) Vec {
	return Vec{minFloat32(v.X, o.X), minFloat32(v.Y, o.Y)}
}

// Max returns the component-wise maximum of two vectors.
func (v Vec) Max(o Vec) Vec {
	return Vec{maxFloat32(v.X, o.X), maxFloat32(v.Y, o.Y)}
}

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
