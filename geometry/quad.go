package geometry

// Quad is a quadrilateral with parallel sides (i.e. a parallelogram),
// defined by its center, width, height, rotation, and shear factor.
//
// The width and height define a pair of semi-axes:
//
//	u = (.5*w*cos(θ), .5*w*sin(θ))
//	v = (.5*h*(s*cos(θ)-sin(θ)), .5*h*(s*sin(θ)+cos(θ)))
//
// where w is the width, h is the height, s is the shear factor, and θ is
// the rotation. The shape of the Quad is the set of all points
// center + α*u + β*v for α, β in [-1, 1].
//
// A Quad may not have a negative width: constructing or setting one with a
// negative width normalizes it by negating both width and height and
// adding a half turn to the rotation.
type Quad struct {
	CenterVal           Point
	WidthVal, HeightVal float32
	RotationVal         Angle
	ShearFactorVal      float32
}

// QuadFromCenterAndDimensions constructs an unrotated, unsheared Quad.
func QuadFromCenterAndDimensions(center Point, width, height float32) Quad {
	return QuadFromCenterDimensionsRotationAndShear(center, width, height, 0, 0)
}

// QuadFromCenterDimensionsAndRotation constructs an unsheared Quad.
func QuadFromCenterDimensionsAndRotation(center Point, width, height float32, rotation Angle) Quad {
	return QuadFromCenterDimensionsRotationAndShear(center, width, height, rotation, 0)
}

// QuadFromCenterDimensionsRotationAndShear constructs a Quad from all of its
// parameters, normalizing a negative width as described on Quad.
func QuadFromCenterDimensionsRotationAndShear(center Point, width, height float32, rotation Angle, shearFactor float32) Quad {
	q := Quad{
		CenterVal:      center,
		WidthVal:       width,
		HeightVal:      height,
		RotationVal:    rotation.Normalized(),
		ShearFactorVal: shearFactor,
	}
	q.normalize()
	return q
}

// QuadFromRect constructs a Quad equivalent to the given Rect.
func QuadFromRect(r Rect) Quad {
	return QuadFromCenterAndDimensions(r.Center(), r.Width(), r.Height())
}

func (q *Quad) normalize() {
	if q.WidthVal < 0 {
		q.WidthVal = -q.WidthVal
		q.HeightVal = -q.HeightVal
		q.RotationVal = (q.RotationVal + HalfTurn).Normalized()
	}
}

// Center returns the center of the quad.
func (q Quad) Center() Point { return q.CenterVal }

// SetCenter moves the quad's center, preserving its other parameters.
func (q *Quad) SetCenter(center Point) { q.CenterVal = center }

// Width returns the width of the quad; it is never negative.
func (q Quad) Width() float32 { return q.WidthVal }

// SetWidth sets the quad's width, normalizing a negative value as
// described on Quad.
func (q *Quad) SetWidth(width float32) {
	q.WidthVal = width
	q.normalize()
}

// Height returns the height of the quad; it may be negative.
func (q Quad) Height() float32 { return q.HeightVal }

// SetHeight sets the quad's height.
func (q *Quad) SetHeight(height float32) { q.HeightVal = height }

// Rotation returns the quad's rotation, in [0, 2π).
func (q Quad) Rotation() Angle { return q.RotationVal }

// SetRotation sets the quad's rotation, normalized into [0, 2π).
func (q *Quad) SetRotation(rotation Angle) { q.RotationVal = rotation.Normalized() }

// ShearFactor returns the quad's shear factor.
func (q Quad) ShearFactor() float32 { return q.ShearFactorVal }

// SetShearFactor sets the quad's shear factor.
func (q *Quad) SetShearFactor(shearFactor float32) { q.ShearFactorVal = shearFactor }

// SemiAxes returns the (u, v) semi-axis vectors described on Quad.
func (q Quad) SemiAxes() (u, v Vec) {
	c, s := Cos(q.RotationVal), Sin(q.RotationVal)
	u = Vec{0.5 * q.WidthVal * c, 0.5 * q.WidthVal * s}
	v = Vec{
		0.5 * q.HeightVal * (q.ShearFactorVal*c - s),
		0.5 * q.HeightVal * (q.ShearFactorVal*s + c),
	}
	return u, v
}

// IsRectangular reports whether the quad's corners form right angles, i.e.
// whether its shear factor is zero.
func (q Quad) IsRectangular() bool { return q.ShearFactorVal == 0 }

// IsAxisAligned reports whether the quad is rectangular and its sides are
// parallel to the x- and y-axes, within the given tolerance on rotation.
func (q Quad) IsAxisAligned(tolerance Angle) bool {
	if !q.IsRectangular() {
		return false
	}
	r := Mod(q.RotationVal, QuarterTurn).Abs()
	return r <= tolerance || (QuarterTurn-r).Abs() <= tolerance
}

// SignedArea returns width*height; it is negative exactly when the height
// is negative and the width is non-zero.
func (q Quad) SignedArea() float32 { return q.WidthVal * q.HeightVal }

// AspectRatio returns width/height. This panics if the height is zero.
func (q Quad) AspectRatio() float32 {
	if q.HeightVal == 0 {
		panic("geometry: cannot determine the aspect ratio when the height is 0")
	}
	return q.WidthVal / q.HeightVal
}

// Corners returns the corners of the quad in order: center-u-v, center+u-v,
// center+u+v, center-u+v.
func (q Quad) Corners() [4]Point {
	u, v := q.SemiAxes()
	return [4]Point{
		q.CenterVal.Add(u.Scale(-1)).Add(v.Scale(-1)),
		q.CenterVal.Add(u).Add(v.Scale(-1)),
		q.CenterVal.Add(u).Add(v),
		q.CenterVal.Add(u.Scale(-1)).Add(v),
	}
}

// GetEdge returns the segment from the corner at index to the corner at
// index+1 mod 4. This panics if index is not 0, 1, 2, or 3.
func (q Quad) GetEdge(index int) Segment {
	if index < 0 || index > 3 {
		panic("geometry: Quad.GetEdge index out of range")
	}
	c := q.Corners()
	return Segment{Start: c[index], End: c[(index+1)%4]}
}

// coordinates resolves point into the quad's (u, v) basis, returning the
// scalars p, q such that point = Center + p*u_hat + q*v_hat, where u_hat
// and v_hat are the unit-width/height versions of the semi-axes. The
// change-of-basis matrix always has determinant 1, so this never fails.
func (q Quad) coordinates(point Point) (p, qOut float32) {
	d := point.Sub(q.CenterVal)
	c, s := Cos(q.RotationVal), Sin(q.RotationVal)
	shear := q.ShearFactorVal
	p = d.X*(shear*s+c) - d.Y*(shear*c-s)
	qOut = -d.X*s + d.Y*c
	return p, qOut
}

// Contains reports whether point lies within the quad, inclusive of the
// boundary. The height may be negative (the v semi-axis then points the
// other way), so containment is tested against the height's magnitude.
func (q Quad) Contains(point Point) bool {
	p, qq := q.coordinates(point)
	halfW := q.WidthVal / 2
	halfH := q.HeightVal / 2
	if halfH < 0 {
		halfH = -halfH
	}
	return p >= -halfW && p <= halfW && qq >= -halfH && qq <= halfH
}

// Join expands the quad, without altering its rotation or shear factor, so
// that it contains point. The sign of the height is preserved.
func (q Quad) Join(point Point) Quad {
	p, qq := q.coordinates(point)
	halfW := q.WidthVal / 2
	halfH := q.HeightVal / 2
	if halfH < 0 {
		halfH = -halfH
	}
	pMin, pMax := minFloat32(-halfW, p), maxFloat32(halfW, p)
	qMin, qMax := minFloat32(-halfH, qq), maxFloat32(halfH, qq)

	c, s := Cos(q.RotationVal), Sin(q.RotationVal)
	uHat := Vec{c, s}
	vHat := Vec{q.ShearFactorVal*c - s, q.ShearFactorVal*s + c}
	centerOffset := uHat.Scale((pMin + pMax) / 2).Add(vHat.Scale((qMin + qMax) / 2))

	newHeight := qMax - qMin
	if q.HeightVal < 0 {
		newHeight = -newHeight
	}
	return Quad{
		CenterVal:      q.CenterVal.Add(centerOffset),
		WidthVal:       pMax - pMin,
		HeightVal:      newHeight,
		RotationVal:    q.RotationVal,
		ShearFactorVal: q.ShearFactorVal,
	}
}
