package geometry

// Rect is an axis-aligned bounding box. The zero value is the degenerate
// rect at the origin. MinVal.X must never exceed MaxVal.X (likewise for Y);
// every constructor and mutator here maintains that invariant.
type Rect struct {
	MinVal, MaxVal Point
}

// RectFromCenterAndDimensions constructs a Rect centered on center with
// the given width and height. This panics if either is negative.
func RectFromCenterAndDimensions(center Point, width, height float32) Rect {
	if width < 0 || height < 0 {
		panic("geometry: cannot construct a Rect with negative width or height")
	}
	return Rect{
		MinVal: Point{center.X - width/2, center.Y - height/2},
		MaxVal: Point{center.X + width/2, center.Y + height/2},
	}
}

// RectFromTwoPoints constructs the smallest Rect containing both a and b,
// re-sorting their coordinates as needed.
func RectFromTwoPoints(a, b Point) Rect {
	return Rect{MinVal: a.Min(b), MaxVal: a.Max(b)}
}

// Center returns the point at the center of the rect.
func (r Rect) Center() Point {
	return Point{r.MinVal.X + r.SemiWidth(), r.MinVal.Y + r.SemiHeight()}
}

// Width returns the width of the rect. This can overflow to +Inf even when
// the bounds are finite; see SemiWidth.
func (r Rect) Width() float32 { return r.MaxVal.X - r.MinVal.X }

// Height returns the height of the rect.
func (r Rect) Height() float32 { return r.MaxVal.Y - r.MinVal.Y }

// SemiWidth returns half the width, computed in a way that stays finite
// whenever the bounds themselves are finite.
func (r Rect) SemiWidth() float32 { return 0.5*r.MaxVal.X - 0.5*r.MinVal.X }

// SemiHeight returns half the height, computed the same way as SemiWidth.
func (r Rect) SemiHeight() float32 { return 0.5*r.MaxVal.Y - 0.5*r.MinVal.Y }

// AspectRatio returns Width()/Height(). This panics if the height is zero.
func (r Rect) AspectRatio() float32 {
	if r.Height() == 0 {
		panic("geometry: cannot determine the aspect ratio when the height is 0")
	}
	return r.Width() / r.Height()
}

// Area returns the (always non-negative) area of the rect.
func (r Rect) Area() float32 { return r.Width() * r.Height() }

// Corners returns the rect's corners in order: (xmin,ymin), (xmax,ymin),
// (xmax,ymax), (xmin,ymax).
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.MinVal.X, r.MinVal.Y},
		{r.MaxVal.X, r.MinVal.Y},
		{r.MaxVal.X, r.MaxVal.Y},
		{r.MinVal.X, r.MaxVal.Y},
	}
}

// GetEdge returns the segment between the corner at index and the one at
// index+1 mod 4, per Corners. This panics if index is not 0, 1, 2, or 3.
func (r Rect) GetEdge(index int) Segment {
	c := r.Corners()
	if index < 0 || index > 3 {
		panic("geometry: Rect.GetEdge index out of range")
	}
	return Segment{Start: c[index], End: c[(index+1)%4]}
}

// Contains reports whether point lies within the rect, inclusive of the
// boundary.
func (r Rect) Contains(point Point) bool {
	return r.MinVal.X <= point.X && r.MaxVal.X >= point.X &&
		r.MinVal.Y <= point.Y && r.MaxVal.Y >= point.Y
}

// ContainsRect reports whether o is entirely contained within r, inclusive
// of shared boundary.
func (r Rect) ContainsRect(o Rect) bool {
	return r.MinVal.X <= o.MinVal.X && r.MaxVal.X >= o.MaxVal.X &&
		r.MinVal.Y <= o.MinVal.Y && r.MaxVal.Y >= o.MaxVal.Y
}

// Offset expands the rect so each side moves outward by amount (or inward,
// for a negative amount), clamping width/height to zero rather than going
// negative.
func (r Rect) Offset(amount float32) Rect { return r.OffsetXY(amount, amount) }

// OffsetXY is like Offset but with independent horizontal/vertical
// amounts.
func (r Rect) OffsetXY(horizontal, vertical float32) Rect {
	out := Rect{
		MinVal: Point{r.MinVal.X - horizontal, r.MinVal.Y - vertical},
		MaxVal: Point{r.MaxVal.X + horizontal, r.MaxVal.Y + vertical},
	}
	if out.Width() < 0 {
		cx := (out.MinVal.X + out.MaxVal.X) / 2
		out.MinVal.X, out.MaxVal.X = cx, cx
	}
	if out.Height() < 0 {
		cy := (out.MinVal.Y + out.MaxVal.Y) / 2
		out.MinVal.Y, out.MaxVal.Y = cy, cy
	}
	return out
}

// Scale scales the rect's width and height by factor, preserving its
// center. This panics if factor is negative.
func (r Rect) Scale(factor float32) Rect { return r.ScaleXY(factor, factor) }

// ScaleXY is like Scale but with independent x/y factors.
func (r Rect) ScaleXY(xFactor, yFactor float32) Rect {
	if xFactor < 0 || yFactor < 0 {
		panic("geometry: cannot scale a Rect by a value less than 0")
	}
	return r.OffsetXY(-0.5*(1-xFactor)*r.Width(), -0.5*(1-yFactor)*r.Height())
}

// Translate moves the rect's center by offset, preserving its dimensions.
func (r Rect) Translate(offset Vec) Rect {
	return Rect{MinVal: r.MinVal.Add(offset), MaxVal: r.MaxVal.Add(offset)}
}

// Join returns the smallest Rect containing both r and point.
func (r Rect) Join(point Point) Rect {
	return Rect{MinVal: r.MinVal.Min(point), MaxVal: r.MaxVal.Max(point)}
}

// JoinRect returns the smallest Rect containing both r and o.
func (r Rect) JoinRect(o Rect) Rect {
	return Rect{MinVal: r.MinVal.Min(o.MinVal), MaxVal: r.MaxVal.Max(o.MaxVal)}
}

// ContainingRectWithAspectRatio returns a Rect with the same center as r
// that contains r and has the given aspect ratio (width/height): one of
// its width or height equals r's, the other is greater than or equal.
// This panics if aspectRatio is not positive.
func (r Rect) ContainingRectWithAspectRatio(aspectRatio float32) Rect {
	if aspectRatio <= 0 {
		panic("geometry: ContainingRectWithAspectRatio requires a positive aspect ratio")
	}
	height := r.Height()
	if w := r.Width() / aspectRatio; w > height {
		height = w
	}
	return RectFromCenterAndDimensions(r.Center(), aspectRatio*height, height)
}

// InteriorRectWithAspectRatio returns a Rect with the same center as r
// that is contained within r and has the given aspect ratio: one of its
// width or height equals r's, the other is less than or equal. An
// aspectRatio of 0 yields a Rect of width 0 and r's height. This panics
// if aspectRatio is negative.
func (r Rect) InteriorRectWithAspectRatio(aspectRatio float32) Rect {
	if aspectRatio < 0 {
		panic("geometry: InteriorRectWithAspectRatio requires a non-negative aspect ratio")
	}
	if aspectRatio == 0 {
		return RectFromCenterAndDimensions(r.Center(), 0, r.Height())
	}
	height := r.Height()
	if w := r.Width() / aspectRatio; w < height {
		height = w
	}
	return RectFromCenterAndDimensions(r.Center(), aspectRatio*height, height)
}

// ResizeSettingXMinTo returns r with its minimum x coordinate set to
// xMin, raising the maximum to xMin if xMin would otherwise exceed it.
func (r Rect) ResizeSettingXMinTo(xMin float32) Rect {
	xMax := r.MaxVal.X
	if xMax < xMin {
		xMax = xMin
	}
	return Rect{MinVal: Point{xMin, r.MinVal.Y}, MaxVal: Point{xMax, r.MaxVal.Y}}
}

// ResizeSettingYMinTo is like ResizeSettingXMinTo, for the y axis.
func (r Rect) ResizeSettingYMinTo(yMin float32) Rect {
	yMax := r.MaxVal.Y
	if yMax < yMin {
		yMax = yMin
	}
	return Rect{MinVal: Point{r.MinVal.X, yMin}, MaxVal: Point{r.MaxVal.X, yMax}}
}

// ResizeSettingXMaxTo returns r with its maximum x coordinate set to
// xMax, lowering the minimum to xMax if xMax would otherwise fall below
// it.
func (r Rect) ResizeSettingXMaxTo(xMax float32) Rect {
	xMin := r.MinVal.X
	if xMin > xMax {
		xMin = xMax
	}
	return Rect{MinVal: Point{xMin, r.MinVal.Y}, MaxVal: Point{xMax, r.MaxVal.Y}}
}

// ResizeSettingYMaxTo is like ResizeSettingXMaxTo, for the y axis.
func (r Rect) ResizeSettingYMaxTo(yMax float32) Rect {
	yMin := r.MinVal.Y
	if yMin > yMax {
		yMin = yMax
	}
	return Rect{MinVal: Point{r.MinVal.X, yMin}, MaxVal: Point{r.MaxVal.X, yMax}}
}

// TranslateSettingXMinTo returns r translated so its minimum x coordinate
// becomes xMin, preserving width and height.
func (r Rect) TranslateSettingXMinTo(xMin float32) Rect {
	return r.Translate(Vec{X: xMin - r.MinVal.X})
}

// TranslateSettingYMinTo is like TranslateSettingXMinTo, for the y axis.
func (r Rect) TranslateSettingYMinTo(yMin float32) Rect {
	return r.Translate(Vec{Y: yMin - r.MinVal.Y})
}

// TranslateSettingXMaxTo returns r translated so its maximum x coordinate
// becomes xMax, preserving width and height.
func (r Rect) TranslateSettingXMaxTo(xMax float32) Rect {
	return r.Translate(Vec{X: xMax - r.MaxVal.X})
}

// TranslateSettingYMaxTo is like TranslateSettingXMaxTo, for the y axis.
func (r Rect) TranslateSettingYMaxTo(yMax float32) Rect {
	return r.Translate(Vec{Y: yMax - r.MaxVal.Y})
}
