package geometry

import (
	"math"
	"testing"
)

func TestQuadFromRectCornersMatch(t *testing.T) {
	r := Rect{MinVal: Point{X: -3, Y: 2}, MaxVal: Point{X: 5, Y: 6}}
	q := QuadFromRect(r)

	rc := r.Corners()
	qc := q.Corners()
	for i := range rc {
		if !pointsApprox(qc[i], rc[i], 1e-5) {
			t.Errorf("corner %d: Quad has %+v, Rect has %+v", i, qc[i], rc[i])
		}
	}
}

func TestQuadNegativeWidthNormalizes(t *testing.T) {
	q := QuadFromCenterDimensionsRotationAndShear(Point{X: 1, Y: 2}, -4, 2, 0, 0.5)
	if q.Width() != 4 {
		t.Errorf("Width() = %v, want 4", q.Width())
	}
	if q.Height() != -2 {
		t.Errorf("Height() = %v, want -2", q.Height())
	}
	if abs32(q.Rotation().Radians()-float32(math.Pi)) > 1e-6 {
		t.Errorf("Rotation() = %v, want pi", q.Rotation())
	}
	if q.ShearFactor() != 0.5 {
		t.Errorf("ShearFactor() = %v, want 0.5", q.ShearFactor())
	}
}

func TestQuadSetWidthNormalizes(t *testing.T) {
	q := QuadFromCenterAndDimensions(Point{}, 4, 2)
	q.SetWidth(-6)
	if q.Width() != 6 || q.Height() != -2 {
		t.Errorf("after SetWidth(-6): width %v height %v, want 6 and -2", q.Width(), q.Height())
	}
	if abs32(q.Rotation().Radians()-float32(math.Pi)) > 1e-6 {
		t.Errorf("after SetWidth(-6): rotation %v, want pi", q.Rotation())
	}
}

func TestQuadContains(t *testing.T) {
	q := QuadFromCenterDimensionsRotationAndShear(Point{X: 10, Y: -5}, 6, 4, Degrees(30), 0.25)

	if !q.Contains(q.Center()) {
		t.Error("Contains(center) = false, want true")
	}
	u, v := q.SemiAxes()
	// Stay a hair inside the corners so the check doesn't ride on the
	// last ulp of the trig evaluation.
	for _, signs := range [][2]float32{{0.99, 0.99}, {-0.99, 0.99}, {0.99, -0.99}, {-0.99, -0.99}} {
		p := q.Center().Add(u.Scale(signs[0])).Add(v.Scale(signs[1]))
		if !q.Contains(p) {
			t.Errorf("Contains(%+v just inside a corner) = false, want true", p)
		}
	}
	outside := q.Center().Add(u.Scale(1.01)).Add(v.Scale(1.01))
	if q.Contains(outside) {
		t.Errorf("Contains(%+v just past a corner) = true, want false", outside)
	}
}

func TestQuadContainsNegativeHeight(t *testing.T) {
	q := QuadFromCenterAndDimensions(Point{}, 4, -2)
	if !q.Contains(Point{}) {
		t.Error("Contains(center) = false for a negative-height quad, want true")
	}
	if !q.Contains(Point{X: 2, Y: 1}) {
		t.Error("Contains(corner) = false for a negative-height quad, want true")
	}
	if q.Contains(Point{X: 0, Y: 1.01}) {
		t.Error("Contains(past the top edge) = true, want false")
	}
}

func TestQuadJoinCoversPoint(t *testing.T) {
	q := QuadFromCenterAndDimensions(Point{X: 0, Y: 0}, 2, 2)
	p := Point{X: 10, Y: 10}

	joined := q.Join(p)
	if !joined.Contains(p) {
		t.Errorf("Join(%+v) does not contain the point", p)
	}
	for i, c := range q.Corners() {
		if !joined.Contains(c) {
			t.Errorf("Join result lost original corner %d at %+v", i, c)
		}
	}
	// The point is up and to the right, so only the max side of each axis
	// grows: the opposite sides stay fixed and the center shifts.
	if joined.Width() != 11 || joined.Height() != 11 {
		t.Errorf("Join dimensions = %v x %v, want 11 x 11", joined.Width(), joined.Height())
	}
	if joined.Center() != (Point{X: 4.5, Y: 4.5}) {
		t.Errorf("Join center = %+v, want {4.5 4.5}", joined.Center())
	}

	rotated := QuadFromCenterDimensionsRotationAndShear(Point{}, 2, 2, Degrees(45), 0.5)
	grown := rotated.Join(Point{X: 10, Y: 10})
	if grown.Rotation() != rotated.Rotation() || grown.ShearFactor() != rotated.ShearFactor() {
		t.Error("Join changed the rotation or shear factor")
	}
	if grown.Width() < rotated.Width() || grown.Height() < rotated.Height() {
		t.Error("Join shrank the quad")
	}
}

func TestQuadIsAxisAligned(t *testing.T) {
	aligned := QuadFromCenterDimensionsAndRotation(Point{}, 2, 3, HalfPi)
	if !aligned.IsAxisAligned(Radians(1e-5)) {
		t.Error("IsAxisAligned(quarter-turn rect) = false, want true")
	}
	rotated := QuadFromCenterDimensionsAndRotation(Point{}, 2, 3, Degrees(30))
	if rotated.IsAxisAligned(Radians(1e-5)) {
		t.Error("IsAxisAligned(30-degree rect) = true, want false")
	}
	sheared := QuadFromCenterDimensionsRotationAndShear(Point{}, 2, 3, 0, 0.5)
	if sheared.IsAxisAligned(Radians(1e-5)) {
		t.Error("IsAxisAligned(sheared quad) = true, want false")
	}
	if sheared.IsRectangular() {
		t.Error("IsRectangular(sheared quad) = true, want false")
	}
}

func TestQuadGetEdgePanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("GetEdge(4) did not panic")
		}
	}()
	QuadFromCenterAndDimensions(Point{}, 1, 1).GetEdge(4)
}
