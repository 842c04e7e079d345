package geometry

import (
	"math"
	"testing"
)

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func pointsApprox(a, b Point, tolerance float32) bool {
	return abs32(a.X-b.X) <= tolerance && abs32(a.Y-b.Y) <= tolerance
}

func transformsApprox(a, b AffineTransform, tolerance float32) bool {
	return abs32(a.A-b.A) <= tolerance && abs32(a.B-b.B) <= tolerance && abs32(a.C-b.C) <= tolerance &&
		abs32(a.D-b.D) <= tolerance && abs32(a.E-b.E) <= tolerance && abs32(a.F-b.F) <= tolerance
}

func TestTranslateSegment(t *testing.T) {
	xform := Translate(Vec{X: 3, Y: -12})
	got := xform.ApplyToSegment(Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 2, Y: 3}})
	want := Segment{Start: Point{X: 3, Y: -12}, End: Point{X: 5, Y: -9}}
	if !pointsApprox(got.Start, want.Start, 1e-5) || !pointsApprox(got.End, want.End, 1e-5) {
		t.Errorf("ApplyToSegment = %+v, want %+v", got, want)
	}

	found, ok := FindSegmentToSegment(
		Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 2, Y: 3}},
		Segment{Start: Point{X: 3, Y: -12}, End: Point{X: 5, Y: -9}},
	)
	if !ok {
		t.Fatal("FindSegmentToSegment: no transform found")
	}
	if !transformsApprox(found, xform, 1e-4) {
		t.Errorf("FindSegmentToSegment = %+v, want %+v", found, xform)
	}
}

func TestFindSegmentToSegmentReversalIsRotationNotNegativeScale(t *testing.T) {
	from := Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 2, Y: 3}}
	to := Segment{Start: Point{X: 2, Y: 3}, End: Point{X: 0, Y: 0}}

	found, ok := FindSegmentToSegment(from, to)
	if !ok {
		t.Fatal("FindSegmentToSegment: no transform found")
	}
	want := RotateAboutPoint(Radians(float32(math.Pi)), Point{X: 1, Y: 1.5})
	if !transformsApprox(found, want, 1e-4) {
		t.Errorf("FindSegmentToSegment(reversed) = %+v, want %+v (pi rotation about midpoint)", found, want)
	}
}

func TestFindTriangleToTriangleScale(t *testing.T) {
	from := Triangle{P0: Point{X: 1, Y: 1}, P1: Point{X: 4, Y: 1}, P2: Point{X: 1, Y: 5}}
	to := Triangle{P0: Point{X: 3, Y: 3}, P1: Point{X: 12, Y: 3}, P2: Point{X: 3, Y: 15}}

	found, ok := FindTriangleToTriangle(from, to)
	if !ok {
		t.Fatal("FindTriangleToTriangle: no transform found")
	}
	want := ScaleUniform(3)
	if !transformsApprox(found, want, 1e-4) {
		t.Errorf("FindTriangleToTriangle = %+v, want %+v", found, want)
	}
}

func TestFindTriangleToTriangleDegenerateFromIsAbsent(t *testing.T) {
	degenerate := Triangle{P0: Point{X: 1, Y: 1}, P1: Point{X: 1, Y: 1}, P2: Point{X: 1, Y: 1}}
	valid := Triangle{P0: Point{X: 3, Y: 3}, P1: Point{X: 12, Y: 3}, P2: Point{X: 3, Y: 15}}

	if _, ok := FindTriangleToTriangle(degenerate, valid); ok {
		t.Error("FindTriangleToTriangle with degenerate from = ok, want absent")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	xform := Rotate(Degrees(30)).Mul(Scale(2, 3)).Mul(Translate(Vec{X: 5, Y: -7}))
	inv, ok := xform.Inverse()
	if !ok {
		t.Fatal("Inverse: reported non-invertible for a well-conditioned transform")
	}
	p := Point{X: 11, Y: -4}
	roundTripped := inv.ApplyToPoint(xform.ApplyToPoint(p))
	if !pointsApprox(roundTripped, p, 1e-3) {
		t.Errorf("round trip through Inverse = %+v, want %+v", roundTripped, p)
	}
}

func TestScaleToZeroIsNotInvertible(t *testing.T) {
	if _, ok := Scale(1, 0).Inverse(); ok {
		t.Error("Scale(1, 0).Inverse() reported invertible, want not invertible")
	}
}
