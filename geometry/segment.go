package geometry

// Segment is a line segment between two points.
type Segment struct {
	Start, End Point
}

// Vector returns End - Start.
func (s Segment) Vector() Vec { return s.End.Sub(s.Start) }

// Length returns the length of the segment.
func (s Segment) Length() float32 { return s.Vector().Magnitude() }

// Project returns the parameter t such that Start + t*(End-Start) is the
// closest point on the segment's line to p. The second return value is
// false if the segment is degenerate (Start == End) or its length
// underflows such that the projection cannot be computed without
// catastrophic cancellation.
func (s Segment) Project(p Point) (float32, bool) {
	v := s.Vector()
	// Use float64 internally so the dot products don't lose the precision
	// that the final division needs.
	lenSq := float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)
	if lenSq == 0 {
		return 0, false
	}
	w := p.Sub(s.Start)
	t := (float64(w.X)*float64(v.X) + float64(w.Y)*float64(v.Y)) / lenSq
	return float32(t), true
}

// GetEdge is provided for symmetry with Triangle/Rect/Quad; a Segment has
// only itself as an "edge".
func (s Segment) GetEdge(i int) Segment {
	if i != 0 {
		panic("geometry: Segment.GetEdge index out of range")
	}
	return s
}
