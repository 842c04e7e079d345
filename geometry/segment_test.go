package geometry

import (
	"math"
	"testing"
)

func TestSegmentProject(t *testing.T) {
	s := Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 10, Y: 0}}

	for _, tc := range []struct {
		p    Point
		want float32
	}{
		{Point{X: 5, Y: 0}, 0.5},
		{Point{X: 5, Y: 7}, 0.5},
		{Point{X: 0, Y: 0}, 0},
		{Point{X: 10, Y: -3}, 1},
		{Point{X: 20, Y: 0}, 2},
		{Point{X: -10, Y: 0}, -1},
	} {
		got, ok := s.Project(tc.p)
		if !ok {
			t.Errorf("Project(%+v): no result, want %v", tc.p, tc.want)
			continue
		}
		if abs32(got-tc.want) > 1e-6 {
			t.Errorf("Project(%+v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestSegmentProjectDegenerateIsAbsent(t *testing.T) {
	s := Segment{Start: Point{X: 3, Y: 4}, End: Point{X: 3, Y: 4}}
	if _, ok := s.Project(Point{X: 0, Y: 0}); ok {
		t.Error("Project on a degenerate segment reported a result, want absent")
	}
}

func TestSegmentLengthAndVector(t *testing.T) {
	s := Segment{Start: Point{X: 1, Y: 2}, End: Point{X: 4, Y: 6}}
	if got := s.Vector(); got != (Vec{X: 3, Y: 4}) {
		t.Errorf("Vector() = %+v, want {3 4}", got)
	}
	if got := s.Length(); abs32(got-5) > 1e-6 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestVecOrthogonalAndDeterminant(t *testing.T) {
	v := Vec{X: 3, Y: 4}
	if got := v.Orthogonal(); got != (Vec{X: -4, Y: 3}) {
		t.Errorf("Orthogonal() = %+v, want {-4 3}", got)
	}
	if got := v.Dot(v.Orthogonal()); got != 0 {
		t.Errorf("Dot(v, v.Orthogonal()) = %v, want 0", got)
	}
	if got := Determinant(Vec{X: 1, Y: 0}, Vec{X: 0, Y: 1}); got != 1 {
		t.Errorf("Determinant(x-hat, y-hat) = %v, want 1", got)
	}
}

func TestSignedAngleBetween(t *testing.T) {
	got := SignedAngleBetween(Vec{X: 1, Y: 0}, Vec{X: 0, Y: 1})
	if abs32(got.Radians()-float32(math.Pi/2)) > 1e-6 {
		t.Errorf("SignedAngleBetween(x-hat, y-hat) = %v, want pi/2", got)
	}
	got = SignedAngleBetween(Vec{X: 0, Y: 1}, Vec{X: 1, Y: 0})
	if abs32(got.Radians()+float32(math.Pi/2)) > 1e-6 {
		t.Errorf("SignedAngleBetween(y-hat, x-hat) = %v, want -pi/2", got)
	}
	// Anti-parallel vectors land on +pi, not -pi.
	got = SignedAngleBetween(Vec{X: 1, Y: 0}, Vec{X: -1, Y: 0})
	if abs32(got.Radians()-float32(math.Pi)) > 1e-6 {
		t.Errorf("SignedAngleBetween(x-hat, -x-hat) = %v, want pi", got)
	}
}

func TestAngleNormalized(t *testing.T) {
	for _, tc := range []struct {
		in, want Angle
	}{
		{0, 0},
		{FullTurn, 0},
		{-HalfPi, 3 * HalfPi},
		{FullTurn + HalfPi, HalfPi},
	} {
		if got := tc.in.Normalized(); abs32(got.Radians()-tc.want.Radians()) > 1e-6 {
			t.Errorf("(%v).Normalized() = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAngleDegreesRoundTrip(t *testing.T) {
	a := Degrees(135)
	if abs32(a.Degrees()-135) > 1e-4 {
		t.Errorf("Degrees(135).Degrees() = %v, want 135", a.Degrees())
	}
	if abs32(a.Radians()-float32(3*math.Pi/4)) > 1e-6 {
		t.Errorf("Degrees(135).Radians() = %v, want 3*pi/4", a.Radians())
	}
}

func TestTriangleSignedAreaAndContains(t *testing.T) {
	ccw := Triangle{P0: Point{X: 0, Y: 0}, P1: Point{X: 4, Y: 0}, P2: Point{X: 0, Y: 4}}
	if got := ccw.SignedArea(); got != 8 {
		t.Errorf("SignedArea(ccw) = %v, want 8", got)
	}
	cw := Triangle{P0: ccw.P0, P1: ccw.P2, P2: ccw.P1}
	if got := cw.SignedArea(); got != -8 {
		t.Errorf("SignedArea(cw) = %v, want -8", got)
	}
	if !cw.Contains(Point{X: 1, Y: 1}) {
		t.Error("Contains(interior point of a cw triangle) = false, want true")
	}
}
