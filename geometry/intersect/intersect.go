// Package intersect implements the boundary-inclusive intersection
// predicate family over every pair drawn from {Point, Segment, Triangle,
// Rect, Quad}.
package intersect

import "github.com/google/ink-sub004/geometry"

// Points reports whether a and b are exactly equal.
func Points(a, b geometry.Point) bool { return a == b }

// PointSegment reports whether p lies on segment s.
func PointSegment(p geometry.Point, s geometry.Segment) bool {
	if s.Start == s.End {
		return Points(p, s.Start)
	}
	t, ok := s.Project(p)
	if !ok || t < 0 || t > 1 {
		return false
	}
	closest := s.Start.Add(s.Vector().Scale(t))
	return closest == p
}

// SegmentPoint is PointSegment with its arguments reversed.
func SegmentPoint(s geometry.Segment, p geometry.Point) bool { return PointSegment(p, s) }

// PointTriangle reports whether p lies within tri.
func PointTriangle(p geometry.Point, tri geometry.Triangle) bool { return tri.Contains(p) }

// TrianglePoint is PointTriangle with its arguments reversed.
func TrianglePoint(tri geometry.Triangle, p geometry.Point) bool { return tri.Contains(p) }

// PointRect reports whether p lies within r.
func PointRect(p geometry.Point, r geometry.Rect) bool { return r.Contains(p) }

// RectPoint is PointRect with its arguments reversed.
func RectPoint(r geometry.Rect, p geometry.Point) bool { return r.Contains(p) }

// PointQuad reports whether p lies within q.
func PointQuad(p geometry.Point, q geometry.Quad) bool { return q.Contains(p) }

// QuadPoint is PointQuad with its arguments reversed.
func QuadPoint(q geometry.Quad, p geometry.Point) bool { return q.Contains(p) }

// segmentDeterminants returns the four determinants of the classic segment
// intersection test: d1 and d2 place a's endpoints relative to b's
// supporting line, d3 and d4 place b's endpoints relative to a's. Each
// segment's endpoints straddle the other's line iff d1*d2 <= 0 and
// d3*d4 <= 0.
func segmentDeterminants(a, b geometry.Segment) (d1, d2, d3, d4 float32) {
	d1 = geometry.Determinant(b.Vector(), a.Start.Sub(b.Start))
	d2 = geometry.Determinant(b.Vector(), a.End.Sub(b.Start))
	d3 = geometry.Determinant(a.Vector(), b.Start.Sub(a.Start))
	d4 = geometry.Determinant(a.Vector(), b.End.Sub(a.Start))
	return
}

// Segments reports whether a and b intersect, inclusive of shared
// endpoints.
func Segments(a, b geometry.Segment) bool {
	if a.Start == b.Start || a.Start == b.End || a.End == b.Start || a.End == b.End {
		return true
	}
	if a.Start == a.End {
		return PointSegment(a.Start, b)
	}
	if b.Start == b.End {
		return PointSegment(b.Start, a)
	}

	denom := geometry.Determinant(a.Vector(), b.Vector())
	if denom == 0 {
		// Parallel (or collinear): test collinearity, then range overlap
		// via projection onto a's line.
		if geometry.Determinant(a.Vector(), b.Start.Sub(a.Start)) != 0 {
			return false
		}
		tStart, _ := a.Project(b.Start)
		tEnd, _ := a.Project(b.End)
		lo, hi := tStart, tEnd
		if lo > hi {
			lo, hi = hi, lo
		}
		return hi >= 0 && lo <= 1
	}

	d1, d2, d3, d4 := segmentDeterminants(a, b)
	return d1*d2 <= 0 && d3*d4 <= 0
}

func segmentCrossesAnyEdge(s geometry.Segment, edges func(int) geometry.Segment, count int) bool {
	for i := 0; i < count; i++ {
		if Segments(s, edges(i)) {
			return true
		}
	}
	return false
}

// SegmentTriangle reports whether s intersects tri.
func SegmentTriangle(s geometry.Segment, tri geometry.Triangle) bool {
	if tri.P0 == tri.P1 && tri.P1 == tri.P2 {
		return PointSegment(tri.P0, s)
	}
	if tri.Contains(s.Start) {
		return true
	}
	return segmentCrossesAnyEdge(s, tri.GetEdge, 3)
}

// TriangleSegment is SegmentTriangle with its arguments reversed.
func TriangleSegment(tri geometry.Triangle, s geometry.Segment) bool { return SegmentTriangle(s, tri) }

// SegmentRect reports whether s intersects r.
func SegmentRect(s geometry.Segment, r geometry.Rect) bool {
	if r.Width() == 0 && r.Height() == 0 {
		return PointSegment(r.MinVal, s)
	}
	if r.Contains(s.Start) {
		return true
	}
	return segmentCrossesAnyEdge(s, r.GetEdge, 4)
}

// RectSegment is SegmentRect with its arguments reversed.
func RectSegment(r geometry.Rect, s geometry.Segment) bool { return SegmentRect(s, r) }

// SegmentQuad reports whether s intersects q.
func SegmentQuad(s geometry.Segment, q geometry.Quad) bool {
	if q.Width() == 0 && q.Height() == 0 {
		return PointSegment(q.Center(), s)
	}
	if q.Contains(s.Start) {
		return true
	}
	return segmentCrossesAnyEdge(s, q.GetEdge, 4)
}

// QuadSegment is SegmentQuad with its arguments reversed.
func QuadSegment(q geometry.Quad, s geometry.Segment) bool { return SegmentQuad(s, q) }

func isDegenerateTriangle(t geometry.Triangle) bool {
	return t.P0 == t.P1 && t.P1 == t.P2
}

func edgesCross(countA int, edgeA func(int) geometry.Segment, countB int, edgeB func(int) geometry.Segment) bool {
	for i := 0; i < countA; i++ {
		for j := 0; j < countB; j++ {
			if Segments(edgeA(i), edgeB(j)) {
				return true
			}
		}
	}
	return false
}

// Triangles reports whether a and b intersect.
func Triangles(a, b geometry.Triangle) bool {
	if isDegenerateTriangle(a) {
		return PointTriangle(a.P0, b)
	}
	if isDegenerateTriangle(b) {
		return PointTriangle(b.P0, a)
	}
	if a.Contains(b.P0) || b.Contains(a.P0) {
		return true
	}
	return edgesCross(3, a.GetEdge, 3, b.GetEdge)
}

// TriangleRect reports whether tri and r intersect.
func TriangleRect(tri geometry.Triangle, r geometry.Rect) bool {
	if isDegenerateTriangle(tri) {
		return PointRect(tri.P0, r)
	}
	if r.Width() == 0 && r.Height() == 0 {
		return PointTriangle(r.MinVal, tri)
	}
	if tri.Contains(r.Center()) || r.Contains(tri.P0) {
		return true
	}
	return edgesCross(3, tri.GetEdge, 4, r.GetEdge)
}

// RectTriangle is TriangleRect with its arguments reversed.
func RectTriangle(r geometry.Rect, tri geometry.Triangle) bool { return TriangleRect(tri, r) }

// TriangleQuad reports whether tri and q intersect.
func TriangleQuad(tri geometry.Triangle, q geometry.Quad) bool {
	if isDegenerateTriangle(tri) {
		return PointQuad(tri.P0, q)
	}
	if q.Width() == 0 && q.Height() == 0 {
		return PointTriangle(q.Center(), tri)
	}
	if tri.Contains(q.Center()) || q.Contains(tri.P0) {
		return true
	}
	return edgesCross(3, tri.GetEdge, 4, q.GetEdge)
}

// QuadTriangle is TriangleQuad with its arguments reversed.
func QuadTriangle(q geometry.Quad, tri geometry.Triangle) bool { return TriangleQuad(tri, q) }

// Rects reports whether a and b intersect, via a separating-axis test on
// their axis-aligned ranges. This is the only pair with an O(1)
// short-circuit and no edge iteration.
func Rects(a, b geometry.Rect) bool {
	return a.MinVal.X <= b.MaxVal.X && a.MaxVal.X >= b.MinVal.X &&
		a.MinVal.Y <= b.MaxVal.Y && a.MaxVal.Y >= b.MinVal.Y
}

// RectQuad reports whether r and q intersect.
func RectQuad(r geometry.Rect, q geometry.Quad) bool {
	if q.Width() == 0 && q.Height() == 0 {
		return PointRect(q.Center(), r)
	}
	if r.Width() == 0 && r.Height() == 0 {
		return PointQuad(r.MinVal, q)
	}
	if r.Contains(q.Center()) || q.Contains(r.Center()) {
		return true
	}
	return edgesCross(4, r.GetEdge, 4, q.GetEdge)
}

// QuadRect is RectQuad with its arguments reversed.
func QuadRect(q geometry.Quad, r geometry.Rect) bool { return RectQuad(r, q) }

// Quads reports whether a and b intersect.
func Quads(a, b geometry.Quad) bool {
	if a.Width() == 0 && a.Height() == 0 {
		return PointQuad(a.Center(), b)
	}
	if b.Width() == 0 && b.Height() == 0 {
		return PointQuad(b.Center(), a)
	}
	if a.Contains(b.Center()) || b.Contains(a.Center()) {
		return true
	}
	return edgesCross(4, a.GetEdge, 4, b.GetEdge)
}
