package partition

import (
	"github.com/google/ink-sub004/geometry"
	"github.com/google/ink-sub004/geometry/intersect"
	"github.com/google/ink-sub004/geometry/rtree"
)

// FlowControl is returned from a VisitIntersectedTriangles visitor to
// continue or stop the traversal early.
type FlowControl int

const (
	Continue FlowControl = iota
	Break
)

// InitializeSpatialIndex forces the R-tree cache to build now, rather than
// lazily on the first query.
func (pm PartitionedMesh) InitializeSpatialIndex() { pm.ensureTree() }

// IsSpatialIndexInitialized reports whether the R-tree cache has been
// built yet.
func (pm PartitionedMesh) IsSpatialIndexInitialized() bool {
	d := pm.shared()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree != nil
}

// ensureTree builds the R-tree on first call and returns the cached
// pointer on every call thereafter. The mutex guards only publication of
// the pointer: it is released before any caller touches the (immutable)
// tree, so visitors that re-enter this PartitionedMesh cannot deadlock on
// it.
func (pm PartitionedMesh) ensureTree() *rtree.StaticRTree[TriangleIndexPair] {
	d := pm.shared()
	d.mu.Lock()
	if d.tree == nil {
		d.tree = buildTree(d)
	}
	t := d.tree
	d.mu.Unlock()
	return t
}

func buildTree(d *partitionedMeshData) *rtree.StaticRTree[TriangleIndexPair] {
	var pairs []TriangleIndexPair
	for mi, m := range d.meshes {
		for ti := 0; ti < m.TriangleCount(); ti++ {
			pairs = append(pairs, TriangleIndexPair{MeshIndex: mi, TriangleIndex: ti})
		}
	}
	return rtree.BulkBuild(len(pairs), func(i int) geometry.Rect {
		pair := pairs[i]
		tri := d.meshes[pair.MeshIndex].GetTriangle(pair.TriangleIndex)
		return geometry.Rect{MinVal: tri.Min(), MaxVal: tri.Max()}
	}, func(i int) TriangleIndexPair {
		return pairs[i]
	})
}

// ensureTotalArea computes, on first call, the sum of absolute triangle
// signed areas across every mesh, under the same lock that guards the
// R-tree cache.
func (pm PartitionedMesh) ensureTotalArea() float32 {
	d := pm.shared()
	d.mu.Lock()
	if !d.totalAreaSet {
		var total float32
		for _, m := range d.meshes {
			for ti := 0; ti < m.TriangleCount(); ti++ {
				total += abs32(m.GetTriangle(ti).SignedArea())
			}
		}
		d.totalArea = total
		d.totalAreaSet = true
	}
	total := d.totalArea
	d.mu.Unlock()
	return total
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// queryPrimitive abstracts over the five primitive query shapes so
// VisitIntersectedTriangles, Intersects, Coverage, and
// CoverageIsGreaterThan can share one traversal core.
type queryPrimitive interface {
	envelope(xform geometry.AffineTransform) geometry.Rect
	intersectsTriangle(xform geometry.AffineTransform, tri geometry.Triangle) bool
	// sourceBounds returns the primitive's own axis-aligned bounds in its
	// native (pre-transform) frame, used only to build the collapsed
	// Segment fallback when a transform is non-invertible.
	sourceBounds() geometry.Rect
}

type pointQuery geometry.Point

func (q pointQuery) envelope(xform geometry.AffineTransform) geometry.Rect {
	p := xform.ApplyToPoint(geometry.Point(q))
	return geometry.Rect{MinVal: p, MaxVal: p}
}

func (q pointQuery) intersectsTriangle(xform geometry.AffineTransform, tri geometry.Triangle) bool {
	return intersect.TrianglePoint(tri, xform.ApplyToPoint(geometry.Point(q)))
}

func (q pointQuery) sourceBounds() geometry.Rect {
	return geometry.Rect{MinVal: geometry.Point(q), MaxVal: geometry.Point(q)}
}

type segmentQuery geometry.Segment

func (q segmentQuery) envelope(xform geometry.AffineTransform) geometry.Rect {
	s := xform.ApplyToSegment(geometry.Segment(q))
	return geometry.RectFromTwoPoints(s.Start, s.End)
}

func (q segmentQuery) intersectsTriangle(xform geometry.AffineTransform, tri geometry.Triangle) bool {
	return intersect.TriangleSegment(tri, xform.ApplyToSegment(geometry.Segment(q)))
}

func (q segmentQuery) sourceBounds() geometry.Rect {
	return geometry.RectFromTwoPoints(q.Start, q.End)
}

type triangleQuery geometry.Triangle

func (q triangleQuery) envelope(xform geometry.AffineTransform) geometry.Rect {
	t := xform.ApplyToTriangle(geometry.Triangle(q))
	return boundsOfPoints(t.P0, t.P1, t.P2)
}

func (q triangleQuery) intersectsTriangle(xform geometry.AffineTransform, tri geometry.Triangle) bool {
	return intersect.Triangles(xform.ApplyToTriangle(geometry.Triangle(q)), tri)
}

func (q triangleQuery) sourceBounds() geometry.Rect {
	return boundsOfPoints(q.P0, q.P1, q.P2)
}

type rectQuery geometry.Rect

func (q rectQuery) envelope(xform geometry.AffineTransform) geometry.Rect {
	quad := xform.ApplyToRect(geometry.Rect(q))
	corners := quad.Corners()
	return boundsOfPoints(corners[0], corners[1], corners[2], corners[3])
}

func (q rectQuery) intersectsTriangle(xform geometry.AffineTransform, tri geometry.Triangle) bool {
	return intersect.TriangleQuad(tri, xform.ApplyToRect(geometry.Rect(q)))
}

func (q rectQuery) sourceBounds() geometry.Rect { return geometry.Rect(q) }

type quadQuery geometry.Quad

func (q quadQuery) envelope(xform geometry.AffineTransform) geometry.Rect {
	quad := xform.ApplyToQuad(geometry.Quad(q))
	corners := quad.Corners()
	return boundsOfPoints(corners[0], corners[1], corners[2], corners[3])
}

func (q quadQuery) intersectsTriangle(xform geometry.AffineTransform, tri geometry.Triangle) bool {
	return intersect.TriangleQuad(tri, xform.ApplyToQuad(geometry.Quad(q)))
}

func (q quadQuery) sourceBounds() geometry.Rect {
	corners := geometry.Quad(q).Corners()
	return boundsOfPoints(corners[0], corners[1], corners[2], corners[3])
}

func boundsOfPoints(pts ...geometry.Point) geometry.Rect {
	r := geometry.Rect{MinVal: pts[0], MaxVal: pts[0]}
	for _, p := range pts[1:] {
		r = r.Join(p)
	}
	return r
}

func resolveTransform(queryToThis *geometry.AffineTransform) geometry.AffineTransform {
	if queryToThis == nil {
		return geometry.Identity()
	}
	return *queryToThis
}

// visit is the shared traversal core: resolve the query's envelope in
// this PartitionedMesh's frame, ask the R-tree for candidate triangles,
// then run the exact predicate on each before invoking visitor.
//
// If xform is non-invertible, it has collapsed the query's 2-D shape into
// a segment or a point; the exact per-type predicates above assume a
// non-degenerate shape, so in that case the query is first collapsed to
// its own bounding Segment (computed in the query's native frame, then
// mapped forward) and the traversal falls back to the Segment predicate.
func (pm PartitionedMesh) visit(q queryPrimitive, xform geometry.AffineTransform, visitor func(TriangleIndexPair) FlowControl) {
	if _, invertible := xform.Inverse(); !invertible {
		collapsed := segmentQuery(collapsedSegment(q.sourceBounds(), xform))
		pm.visit(collapsed, geometry.Identity(), visitor)
		return
	}

	tree := pm.ensureTree()
	env := q.envelope(xform)
	tree.VisitIntersectedElements(env, func(pair TriangleIndexPair) bool {
		if !q.intersectsTriangle(xform, pm.triangleAt(pair)) {
			return true
		}
		return visitor(pair) != Break
	})
}

// VisitIntersectedTrianglesPoint visits every triangle intersected by
// query (transformed into this PartitionedMesh's frame by queryToThis,
// or the identity if nil).
func (pm PartitionedMesh) VisitIntersectedTrianglesPoint(query geometry.Point, visitor func(TriangleIndexPair) FlowControl, queryToThis *geometry.AffineTransform) {
	pm.visit(pointQuery(query), resolveTransform(queryToThis), visitor)
}

// VisitIntersectedTrianglesSegment is VisitIntersectedTrianglesPoint for
// a Segment query.
func (pm PartitionedMesh) VisitIntersectedTrianglesSegment(query geometry.Segment, visitor func(TriangleIndexPair) FlowControl, queryToThis *geometry.AffineTransform) {
	pm.visit(segmentQuery(query), resolveTransform(queryToThis), visitor)
}

// VisitIntersectedTrianglesTriangle is VisitIntersectedTrianglesPoint for
// a Triangle query.
func (pm PartitionedMesh) VisitIntersectedTrianglesTriangle(query geometry.Triangle, visitor func(TriangleIndexPair) FlowControl, queryToThis *geometry.AffineTransform) {
	pm.visit(triangleQuery(query), resolveTransform(queryToThis), visitor)
}

// VisitIntersectedTrianglesRect is VisitIntersectedTrianglesPoint for a
// Rect query.
func (pm PartitionedMesh) VisitIntersectedTrianglesRect(query geometry.Rect, visitor func(TriangleIndexPair) FlowControl, queryToThis *geometry.AffineTransform) {
	pm.visit(rectQuery(query), resolveTransform(queryToThis), visitor)
}

// VisitIntersectedTrianglesQuad is VisitIntersectedTrianglesPoint for a
// Quad query.
func (pm PartitionedMesh) VisitIntersectedTrianglesQuad(query geometry.Quad, visitor func(TriangleIndexPair) FlowControl, queryToThis *geometry.AffineTransform) {
	pm.visit(quadQuery(query), resolveTransform(queryToThis), visitor)
}

// collapsedSegment computes the Segment a singular transform flattens
// bounds onto: every corner maps onto one line (or one point), so the
// segment between the two farthest-apart transformed corners covers the
// whole collapsed image.
func collapsedSegment(bounds geometry.Rect, xform geometry.AffineTransform) geometry.Segment {
	corners := bounds.Corners()
	var pts [4]geometry.Point
	for i, c := range corners {
		pts[i] = xform.ApplyToPoint(c)
	}
	seg := geometry.Segment{Start: pts[0], End: pts[0]}
	var best float32
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if d := pts[j].Sub(pts[i]).MagnitudeSquared(); d > best {
				best = d
				seg = geometry.Segment{Start: pts[i], End: pts[j]}
			}
		}
	}
	return seg
}

// VisitIntersectedTrianglesPartitionedMesh visits every triangle of pm
// intersected by any triangle of query, each at most once. Candidates come
// from pm's R-tree over query's transformed bounds; each candidate is then
// tested against query's own spatial index in query's frame. If queryToThis
// collapses query to a line or a point (its transform is non-invertible),
// the comparison falls back to a single collapsed Segment query rather
// than comparing degenerate triangles one by one.
func (pm PartitionedMesh) VisitIntersectedTrianglesPartitionedMesh(query PartitionedMesh, visitor func(TriangleIndexPair) FlowControl, queryToThis *geometry.AffineTransform) {
	if len(query.shared().meshes) == 0 {
		return
	}
	xform := resolveTransform(queryToThis)
	thisToQuery, invertible := xform.Inverse()
	if !invertible {
		collapsed := collapsedSegment(query.Bounds(), xform)
		pm.VisitIntersectedTrianglesSegment(collapsed, visitor, nil)
		return
	}

	tree := pm.ensureTree()
	env := rectQuery(query.Bounds()).envelope(xform)
	tree.VisitIntersectedElements(env, func(pair TriangleIndexPair) bool {
		hit := false
		query.VisitIntersectedTrianglesTriangle(pm.triangleAt(pair), func(TriangleIndexPair) FlowControl {
			hit = true
			return Break
		}, &thisToQuery)
		if !hit {
			return true
		}
		return visitor(pair) != Break
	})
}

// IntersectsPoint reports whether query intersects any triangle of pm.
func (pm PartitionedMesh) IntersectsPoint(query geometry.Point, queryToThis *geometry.AffineTransform) bool {
	hit := false
	pm.VisitIntersectedTrianglesPoint(query, func(TriangleIndexPair) FlowControl { hit = true; return Break }, queryToThis)
	return hit
}

// IntersectsSegment is IntersectsPoint for a Segment query.
func (pm PartitionedMesh) IntersectsSegment(query geometry.Segment, queryToThis *geometry.AffineTransform) bool {
	hit := false
	pm.VisitIntersectedTrianglesSegment(query, func(TriangleIndexPair) FlowControl { hit = true; return Break }, queryToThis)
	return hit
}

// IntersectsTriangle is IntersectsPoint for a Triangle query.
func (pm PartitionedMesh) IntersectsTriangle(query geometry.Triangle, queryToThis *geometry.AffineTransform) bool {
	hit := false
	pm.VisitIntersectedTrianglesTriangle(query, func(TriangleIndexPair) FlowControl { hit = true; return Break }, queryToThis)
	return hit
}

// IntersectsRect is IntersectsPoint for a Rect query.
func (pm PartitionedMesh) IntersectsRect(query geometry.Rect, queryToThis *geometry.AffineTransform) bool {
	hit := false
	pm.VisitIntersectedTrianglesRect(query, func(TriangleIndexPair) FlowControl { hit = true; return Break }, queryToThis)
	return hit
}

// IntersectsQuad is IntersectsPoint for a Quad query.
func (pm PartitionedMesh) IntersectsQuad(query geometry.Quad, queryToThis *geometry.AffineTransform) bool {
	hit := false
	pm.VisitIntersectedTrianglesQuad(query, func(TriangleIndexPair) FlowControl { hit = true; return Break }, queryToThis)
	return hit
}

// IntersectsPartitionedMesh is IntersectsPoint for another PartitionedMesh.
func (pm PartitionedMesh) IntersectsPartitionedMesh(query PartitionedMesh, queryToThis *geometry.AffineTransform) bool {
	hit := false
	pm.VisitIntersectedTrianglesPartitionedMesh(query, func(TriangleIndexPair) FlowControl { hit = true; return Break }, queryToThis)
	return hit
}

func (pm PartitionedMesh) coverage(q queryPrimitive, xform geometry.AffineTransform) float32 {
	total := pm.ensureTotalArea()
	if total == 0 {
		return 0
	}
	var hit float32
	pm.visit(q, xform, func(pair TriangleIndexPair) FlowControl {
		hit += abs32(pm.triangleAt(pair).SignedArea())
		return Continue
	})
	return hit / total
}

func (pm PartitionedMesh) coverageIsGreaterThan(q queryPrimitive, xform geometry.AffineTransform, threshold float32) bool {
	total := pm.ensureTotalArea()
	if total == 0 {
		return false
	}
	limit := threshold * total
	exceeded := false
	var hit float32
	pm.visit(q, xform, func(pair TriangleIndexPair) FlowControl {
		hit += abs32(pm.triangleAt(pair).SignedArea())
		if hit > limit {
			exceeded = true
			return Break
		}
		return Continue
	})
	return exceeded
}

// CoveragePoint returns the fraction of pm's total absolute triangle area
// covered by query's triangles, as defined by VisitIntersectedTrianglesPoint.
func (pm PartitionedMesh) CoveragePoint(query geometry.Point, queryToThis *geometry.AffineTransform) float32 {
	return pm.coverage(pointQuery(query), resolveTransform(queryToThis))
}

// CoverageSegment is CoveragePoint for a Segment query.
func (pm PartitionedMesh) CoverageSegment(query geometry.Segment, queryToThis *geometry.AffineTransform) float32 {
	return pm.coverage(segmentQuery(query), resolveTransform(queryToThis))
}

// CoverageTriangle is CoveragePoint for a Triangle query.
func (pm PartitionedMesh) CoverageTriangle(query geometry.Triangle, queryToThis *geometry.AffineTransform) float32 {
	return pm.coverage(triangleQuery(query), resolveTransform(queryToThis))
}

// CoverageRect is CoveragePoint for a Rect query.
func (pm PartitionedMesh) CoverageRect(query geometry.Rect, queryToThis *geometry.AffineTransform) float32 {
	return pm.coverage(rectQuery(query), resolveTransform(queryToThis))
}

// CoverageQuad is CoveragePoint for a Quad query.
func (pm PartitionedMesh) CoverageQuad(query geometry.Quad, queryToThis *geometry.AffineTransform) float32 {
	return pm.coverage(quadQuery(query), resolveTransform(queryToThis))
}

// CoverageIsGreaterThanTriangle reports whether CoverageTriangle(query,
// queryToThis) > threshold, short-circuiting once the running numerator
// exceeds threshold times pm's total absolute area.
func (pm PartitionedMesh) CoverageIsGreaterThanTriangle(query geometry.Triangle, threshold float32, queryToThis *geometry.AffineTransform) bool {
	return pm.coverageIsGreaterThan(triangleQuery(query), resolveTransform(queryToThis), threshold)
}

// CoverageIsGreaterThanRect is CoverageIsGreaterThanTriangle for a Rect
// query.
func (pm PartitionedMesh) CoverageIsGreaterThanRect(query geometry.Rect, threshold float32, queryToThis *geometry.AffineTransform) bool {
	return pm.coverageIsGreaterThan(rectQuery(query), resolveTransform(queryToThis), threshold)
}

// CoverageIsGreaterThanQuad is CoverageIsGreaterThanTriangle for a Quad
// query.
func (pm PartitionedMesh) CoverageIsGreaterThanQuad(query geometry.Quad, threshold float32, queryToThis *geometry.AffineTransform) bool {
	return pm.coverageIsGreaterThan(quadQuery(query), resolveTransform(queryToThis), threshold)
}

// CoverageIsGreaterThanSegment is CoverageIsGreaterThanTriangle for a
// Segment query.
func (pm PartitionedMesh) CoverageIsGreaterThanSegment(query geometry.Segment, threshold float32, queryToThis *geometry.AffineTransform) bool {
	return pm.coverageIsGreaterThan(segmentQuery(query), resolveTransform(queryToThis), threshold)
}

// CoverageIsGreaterThanPoint is CoverageIsGreaterThanTriangle for a Point
// query.
func (pm PartitionedMesh) CoverageIsGreaterThanPoint(query geometry.Point, threshold float32, queryToThis *geometry.AffineTransform) bool {
	return pm.coverageIsGreaterThan(pointQuery(query), resolveTransform(queryToThis), threshold)
}

// CoveragePartitionedMesh is CoveragePoint for another PartitionedMesh
// query.
func (pm PartitionedMesh) CoveragePartitionedMesh(query PartitionedMesh, queryToThis *geometry.AffineTransform) float32 {
	total := pm.ensureTotalArea()
	if total == 0 {
		return 0
	}
	var hit float32
	pm.VisitIntersectedTrianglesPartitionedMesh(query, func(pair TriangleIndexPair) FlowControl {
		hit += abs32(pm.triangleAt(pair).SignedArea())
		return Continue
	}, queryToThis)
	return hit / total
}

// CoverageIsGreaterThanPartitionedMesh is CoverageIsGreaterThanTriangle
// for another PartitionedMesh query.
func (pm PartitionedMesh) CoverageIsGreaterThanPartitionedMesh(query PartitionedMesh, threshold float32, queryToThis *geometry.AffineTransform) bool {
	total := pm.ensureTotalArea()
	if total == 0 {
		return false
	}
	limit := threshold * total
	exceeded := false
	var hit float32
	pm.VisitIntersectedTrianglesPartitionedMesh(query, func(pair TriangleIndexPair) FlowControl {
		hit += abs32(pm.triangleAt(pair).SignedArea())
		if hit > limit {
			exceeded = true
			return Break
		}
		return Continue
	}, queryToThis)
	return exceeded
}
