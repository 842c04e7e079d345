package geometry

import "testing"

func TestRectFromTwoPointsSortsCoordinates(t *testing.T) {
	r := RectFromTwoPoints(Point{X: 5, Y: -2}, Point{X: -1, Y: 7})
	want := Rect{MinVal: Point{X: -1, Y: -2}, MaxVal: Point{X: 5, Y: 7}}
	if r != want {
		t.Errorf("RectFromTwoPoints = %+v, want %+v", r, want)
	}
}

func TestRectContainsCornersAndInterior(t *testing.T) {
	r := Rect{MinVal: Point{X: 0, Y: 0}, MaxVal: Point{X: 10, Y: 4}}
	for i, c := range r.Corners() {
		if !r.Contains(c) {
			t.Errorf("Contains(corner %d at %+v) = false, want true", i, c)
		}
	}
	if !r.Contains(r.Center()) {
		t.Error("Contains(center) = false, want true")
	}
	if r.Contains(Point{X: 10.01, Y: 2}) {
		t.Error("Contains(just outside) = true, want false")
	}
}

func TestRectOffsetClampsToZero(t *testing.T) {
	r := Rect{MinVal: Point{X: 0, Y: 0}, MaxVal: Point{X: 4, Y: 2}}
	shrunk := r.Offset(-3)
	if shrunk.Width() != 0 {
		t.Errorf("Offset(-3).Width() = %v, want 0", shrunk.Width())
	}
	if shrunk.Height() != 0 {
		t.Errorf("Offset(-3).Height() = %v, want 0", shrunk.Height())
	}
	if shrunk.Center() != r.Center() {
		t.Errorf("Offset(-3).Center() = %+v, want %+v", shrunk.Center(), r.Center())
	}
}

func TestRectScalePreservesCenter(t *testing.T) {
	r := Rect{MinVal: Point{X: 2, Y: 2}, MaxVal: Point{X: 6, Y: 8}}
	scaled := r.Scale(0.5)
	if scaled.Center() != r.Center() {
		t.Errorf("Scale(0.5).Center() = %+v, want %+v", scaled.Center(), r.Center())
	}
	if scaled.Width() != 2 || scaled.Height() != 3 {
		t.Errorf("Scale(0.5) dimensions = %v x %v, want 2 x 3", scaled.Width(), scaled.Height())
	}
}

func TestRectJoin(t *testing.T) {
	r := Rect{MinVal: Point{X: 0, Y: 0}, MaxVal: Point{X: 1, Y: 1}}
	joined := r.Join(Point{X: -3, Y: 5})
	want := Rect{MinVal: Point{X: -3, Y: 0}, MaxVal: Point{X: 1, Y: 5}}
	if joined != want {
		t.Errorf("Join = %+v, want %+v", joined, want)
	}

	joinedRect := r.JoinRect(Rect{MinVal: Point{X: 4, Y: -1}, MaxVal: Point{X: 6, Y: 0.5}})
	wantRect := Rect{MinVal: Point{X: 0, Y: -1}, MaxVal: Point{X: 6, Y: 1}}
	if joinedRect != wantRect {
		t.Errorf("JoinRect = %+v, want %+v", joinedRect, wantRect)
	}
}

func TestRectFromCenterAndDimensionsPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RectFromCenterAndDimensions(-1 width) did not panic")
		}
	}()
	RectFromCenterAndDimensions(Point{}, -1, 2)
}

func TestRectAspectRatioPanicsOnZeroHeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AspectRatio of a zero-height rect did not panic")
		}
	}()
	_ = Rect{MinVal: Point{X: 0, Y: 1}, MaxVal: Point{X: 4, Y: 1}}.AspectRatio()
}

func TestContainingRectWithAspectRatio(t *testing.T) {
	r := Rect{MinVal: Point{X: 0, Y: 0}, MaxVal: Point{X: 4, Y: 2}}
	wide := r.ContainingRectWithAspectRatio(4)
	if !wide.ContainsRect(r) {
		t.Errorf("ContainingRectWithAspectRatio(4) = %+v does not contain %+v", wide, r)
	}
	if abs32(wide.AspectRatio()-4) > 1e-5 {
		t.Errorf("AspectRatio = %v, want 4", wide.AspectRatio())
	}

	inner := r.InteriorRectWithAspectRatio(1)
	if !r.ContainsRect(inner) {
		t.Errorf("InteriorRectWithAspectRatio(1) = %+v not contained in %+v", inner, r)
	}
	if abs32(inner.AspectRatio()-1) > 1e-5 {
		t.Errorf("AspectRatio = %v, want 1", inner.AspectRatio())
	}
}

func TestResizeAndTranslateSetters(t *testing.T) {
	r := Rect{MinVal: Point{X: 1, Y: 1}, MaxVal: Point{X: 5, Y: 3}}

	resized := r.ResizeSettingXMinTo(2)
	if resized.MinVal.X != 2 || resized.MaxVal.X != 5 {
		t.Errorf("ResizeSettingXMinTo(2) = %+v", resized)
	}
	flipped := r.ResizeSettingXMinTo(9)
	if flipped.MinVal.X != 9 || flipped.MaxVal.X != 9 {
		t.Errorf("ResizeSettingXMinTo(9) = %+v, want a width-0 rect at x=9", flipped)
	}

	moved := r.TranslateSettingXMaxTo(10)
	if moved.MaxVal.X != 10 || moved.Width() != r.Width() || moved.Height() != r.Height() {
		t.Errorf("TranslateSettingXMaxTo(10) = %+v", moved)
	}
}
