package geometry

import "fmt"

// AffineTransform is an affine transformation in the plane, represented
// as the 2x3 matrix
//
//	⎡a  b  c⎤
//	⎣d  e  f⎦
//
// (with an implicit bottom row [0 0 1]). Applying it to a point (x, y)
// yields (a*x + b*y + c, d*x + e*y + f).
//
// Transforms compose via Mul; Mul is not commutative, and t1.Mul(t2)
// applies t2 first, then t1. It reads the same way as matrix
// multiplication t1 * t2.
type AffineTransform struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transform.
func Identity() AffineTransform { return AffineTransform{A: 1, E: 1} }

// Translate returns a transform that translates by offset.
func Translate(offset Vec) AffineTransform {
	return AffineTransform{A: 1, B: 0, C: offset.X, D: 0, E: 1, F: offset.Y}
}

// ScaleUniform returns a transform that scales uniformly about the origin.
func ScaleUniform(scaleFactor float32) AffineTransform {
	return Scale(scaleFactor, scaleFactor)
}

// Scale returns a transform that scales about the origin, independently
// in x and y.
func Scale(xScaleFactor, yScaleFactor float32) AffineTransform {
	return AffineTransform{A: xScaleFactor, E: yScaleFactor}
}

// ScaleX returns a transform that scales in x about the origin.
func ScaleX(scaleFactor float32) AffineTransform { return Scale(scaleFactor, 1) }

// ScaleY returns a transform that scales in y about the origin.
func ScaleY(scaleFactor float32) AffineTransform { return Scale(1, scaleFactor) }

// Rotate returns a transform that rotates about the origin.
func Rotate(angle Angle) AffineTransform {
	s, c := Sin(angle), Cos(angle)
	return AffineTransform{A: c, B: -s, D: s, E: c}
}

// ShearX returns a transform that shears in x.
func ShearX(shearFactor float32) AffineTransform {
	return AffineTransform{A: 1, B: shearFactor, E: 1}
}

// ShearY returns a transform that shears in y.
func ShearY(shearFactor float32) AffineTransform {
	return AffineTransform{A: 1, D: shearFactor, E: 1}
}

// ScaleAboutPoint returns a transform that scales uniformly about center.
func ScaleAboutPoint(scaleFactor float32, center Point) AffineTransform {
	return ScaleXYAboutPoint(scaleFactor, scaleFactor, center)
}

// ScaleXYAboutPoint returns a transform that scales independently in x and
// y, about center.
func ScaleXYAboutPoint(xScaleFactor, yScaleFactor float32, center Point) AffineTransform {
	return AffineTransform{
		A: xScaleFactor, C: center.X - xScaleFactor*center.X,
		E: yScaleFactor, F: center.Y - yScaleFactor*center.Y,
	}
}

// RotateAboutPoint returns a transform that rotates about center.
func RotateAboutPoint(angle Angle, center Point) AffineTransform {
	s, c := Sin(angle), Cos(angle)
	return AffineTransform{
		A: c, B: -s, C: center.X - center.X*c + center.Y*s,
		D: s, E: c, F: center.Y - center.X*s - center.Y*c,
	}
}

// Inverse returns the inverse of the transform, and true, if it exists.
// If the transform is singular (determinant zero), it returns the zero
// value and false.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		return AffineTransform{}, false
	}
	return AffineTransform{
		A: t.E / det, B: -t.B / det, C: (t.B*t.F - t.C*t.E) / det,
		D: -t.D / det, E: t.A / det, F: (t.C*t.D - t.A*t.F) / det,
	}, true
}

// ApplyToPoint returns p transformed by t.
func (t AffineTransform) ApplyToPoint(p Point) Point {
	return Point{t.A*p.X + t.B*p.Y + t.C, t.D*p.X + t.E*p.Y + t.F}
}

// applyToVec transforms v as a displacement, ignoring the translation
// component (c, f).
func (t AffineTransform) applyToVec(v Vec) Vec {
	return Vec{t.A*v.X + t.B*v.Y, t.D*v.X + t.E*v.Y}
}

// ApplyToSegment returns s transformed by t.
func (t AffineTransform) ApplyToSegment(s Segment) Segment {
	return Segment{Start: t.ApplyToPoint(s.Start), End: t.ApplyToPoint(s.End)}
}

// ApplyToTriangle returns tri transformed by t.
func (t AffineTransform) ApplyToTriangle(tri Triangle) Triangle {
	return Triangle{t.ApplyToPoint(tri.P0), t.ApplyToPoint(tri.P1), t.ApplyToPoint(tri.P2)}
}

// ApplyToQuad returns q transformed by t. Because an AffineTransform may
// rotate or shear, this may not be equivalent to the original Quad's shape
// translated and scaled; it recomputes the width, height, rotation, and
// shear factor that describe the transformed parallelogram.
func (t AffineTransform) ApplyToQuad(q Quad) Quad {
	newCenter := t.ApplyToPoint(q.CenterVal)
	u, v := q.SemiAxes()
	if q.WidthVal == 0 {
		u = FromDirectionAndMagnitude(q.RotationVal, 1)
	}
	if q.HeightVal == 0 {
		v = u.Scale(q.ShearFactorVal).Add(u.Orthogonal())
	}
	u = t.applyToVec(u)
	v = t.applyToVec(v)

	uMagnitude := u.Magnitude()
	uDotV := u.Dot(v)
	uCrossV := Determinant(u, v)

	newWidth := float32(0)
	if q.WidthVal != 0 {
		newWidth = 2 * uMagnitude
	}
	newHeight := float32(0)
	if q.HeightVal != 0 && uCrossV != 0 {
		newHeight = 2 * uCrossV / uMagnitude
	}

	newShear := float32(0)
	if uCrossV != 0 {
		newShear = uDotV / uCrossV
	}

	return QuadFromCenterDimensionsRotationAndShear(newCenter, newWidth, newHeight, u.Direction(), newShear)
}

// ApplyToRect returns a Quad equivalent to r, transformed by t. The result
// is not necessarily axis-aligned, since t may rotate or shear.
func (t AffineTransform) ApplyToRect(r Rect) Quad {
	return t.ApplyToQuad(QuadFromRect(r))
}

// FindSegmentToSegment returns the isotropic similarity transform that
// maps from onto to, and true, if one exists. No transform exists mapping
// a zero-length segment onto a non-zero-length one.
func FindSegmentToSegment(from, to Segment) (AffineTransform, bool) {
	fromLength := from.Length()
	toLength := to.Length()
	if fromLength == 0 {
		if toLength == 0 {
			return Translate(to.Start.Sub(from.Start)), true
		}
		return AffineTransform{}, false
	}

	scale := toLength / fromLength
	rotation := SignedAngleBetween(from.Vector(), to.Vector())
	scaledSin := scale * Sin(rotation)
	scaledCos := scale * Cos(rotation)
	v1 := from.Start.Offset().Scale(-1)
	v2 := to.Start.Offset()

	return AffineTransform{
		A: scaledCos, B: -scaledSin, C: scaledCos*v1.X - scaledSin*v1.Y + v2.X,
		D: scaledSin, E: scaledCos, F: scaledSin*v1.X + scaledCos*v1.Y + v2.Y,
	}, true
}

// FindTriangleToTriangle returns the affine transform that maps from onto
// to, vertex for vertex, and true, if one exists. No transform exists if
// from is degenerate (has zero area).
func FindTriangleToTriangle(from, to Triangle) (AffineTransform, bool) {
	a0, a1, a2 := from.P0, from.P1, from.P2
	b0, b1, b2 := to.P0, to.P1, to.P2

	d := (a1.X * a0.Y) - (a2.X * a0.Y) - (a0.X * a1.Y) + (a2.X * a1.Y) +
		(a0.X * a2.Y) - (a1.X * a2.Y)
	if d == 0 || from.SignedArea() == 0 {
		return AffineTransform{}, false
	}

	n0 := (b1.X * a0.Y) - (b2.X * a0.Y) - (b0.X * a1.Y) + (b2.X * a1.Y) +
		(b0.X * a2.Y) - (b1.X * a2.Y)
	n1 := (b1.X * a0.X) - (b2.X * a0.X) - (b0.X * a1.X) + (b2.X * a1.X) +
		(b0.X * a2.X) - (b1.X * a2.X)
	n2 := (b2.X * a1.X * a0.Y) - (b1.X * a2.X * a0.Y) -
		(b2.X * a0.X * a1.Y) + (b0.X * a2.X * a1.Y) +
		(b1.X * a0.X * a2.Y) - (b0.X * a1.X * a2.Y)
	n3 := (b1.Y * a0.Y) - (b2.Y * a0.Y) - (b0.Y * a1.Y) + (b2.Y * a1.Y) +
		(b0.Y * a2.Y) - (b1.Y * a2.Y)
	n4 := (b1.Y * a0.X) - (b2.Y * a0.X) - (b0.Y * a1.X) + (b2.Y * a1.X) +
		(b0.Y * a2.X) - (b1.Y * a2.X)
	n5 := (b2.Y * a1.X * a0.Y) - (b1.Y * a2.X * a0.Y) -
		(b2.Y * a0.X * a1.Y) + (b0.Y * a2.X * a1.Y) +
		(b1.Y * a0.X * a2.Y) - (b0.Y * a1.X * a2.Y)

	return AffineTransform{
		A: n0 / d, B: n1 / -d, C: n2 / d,
		D: n3 / d, E: n4 / -d, F: n5 / d,
	}, true
}

// FindRectToRect returns the transform mapping the first three corners of
// from onto the first three corners of to, and true, if one exists. No
// transform exists if from is degenerate (has zero area).
func FindRectToRect(from, to Rect) (AffineTransform, bool) {
	a := from.Corners()
	b := to.Corners()
	return FindTriangleToTriangle(Triangle{a[0], a[1], a[2]}, Triangle{b[0], b[1], b[2]})
}

// FindQuadToQuad returns the transform mapping the first three corners of
// from onto the first three corners of to, and true, if one exists. No
// transform exists if from is degenerate (has zero area).
func FindQuadToQuad(from, to Quad) (AffineTransform, bool) {
	a := from.Corners()
	b := to.Corners()
	return FindTriangleToTriangle(Triangle{a[0], a[1], a[2]}, Triangle{b[0], b[1], b[2]})
}

// Mul composes two transforms: t.Mul(other) applies other first, then t.
func (t AffineTransform) Mul(other AffineTransform) AffineTransform {
	return AffineTransform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// String implements fmt.Stringer.
func (t AffineTransform) String() string {
	return fmt.Sprintf("AffineTransform(%v, %v, %v, %v, %v, %v)", t.A, t.B, t.C, t.D, t.E, t.F)
}
