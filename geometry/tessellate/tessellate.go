// Package tessellate builds closed-shape Meshes from input polylines. It
// closes an open stroke outline into a well-defined interior, resolves
// self-intersections by splitting crossing edges, and triangulates the
// nonzero-winding interior by ear clipping.
package tessellate

import (
	"github.com/google/ink-sub004/geometry"
	"github.com/google/ink-sub004/geometry/mesh"
	"github.com/unixpickle/splaytree"
)

// degenerateAreaEpsilon is the smallest absolute triangle signed area
// treated as non-degenerate. Ears thinner than this contribute no visible
// coverage; they are dropped from the triangle list but their vertices are
// still preserved in the output Mesh (see Tessellate).
const degenerateAreaEpsilon = 1e-9

// crossingEpsilon bounds how close to a segment's own endpoints a computed
// intersection parameter may be before it is treated as a shared endpoint
// (already handled by the polygon's own connectivity) rather than a new
// crossing vertex.
const crossingEpsilon = 1e-6

// DefaultFormat is the position-only, unpacked MeshFormat that Tessellate
// produces, matching the facade's documented output schema.
var DefaultFormat = mesh.Format{
	Attributes:  []mesh.Attribute{{Type: mesh.Float2Unpacked, Id: mesh.Position}},
	IndexFormat: mesh.Index32BitUnpacked16BitPacked,
}

// ClosePolyline prepares an input point sequence for tessellation. The
// tessellator treats the sequence as an implicitly closed ring (an edge
// connecting the last point back to the first), so in the common case no
// points need to be added. ClosePolyline is still a distinct step, as
// described by the source library, because degenerate inputs (fewer than
// two distinct points) have no well-defined interior; such inputs are left
// for Tessellate to reject. Every input point is preserved, in order and
// without deduplication.
func ClosePolyline(points []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(points))
	copy(out, points)
	return out
}

// Tessellate closes points (see ClosePolyline) and triangulates the
// nonzero-winding interior of the resulting ring into a Mesh using
// DefaultFormat.
//
// It returns InvalidArgument if points has fewer than 3 elements. It
// returns Internal if the triangulator cannot make progress, which happens
// when every point is collinear (the ring has zero-width interior
// everywhere and no valid ear can ever be found).
//
// Every input point's position is preserved verbatim in the output Mesh,
// including exact duplicates, even if ear clipping does not end up
// referencing every vertex from a triangle.
func Tessellate(points []geometry.Point) (mesh.Mesh, error) {
	if len(points) < 3 {
		return mesh.Mesh{}, geometry.NewError(geometry.InvalidArgument,
			"tessellate: need at least 3 points, got %d", len(points))
	}
	if allCollinear(points) {
		return mesh.Mesh{}, geometry.NewError(geometry.Internal,
			"tessellate: input points are collinear and enclose no interior")
	}

	closed := ClosePolyline(points)

	vertices := append([]geometry.Point(nil), closed...)
	ring := splitCrossings(&vertices, len(closed))

	loops := extractSimpleLoops(ring)

	var triangles [][3]int
	for _, loop := range loops {
		tris, err := earClip(vertices, loop)
		if err != nil {
			return mesh.Mesh{}, err
		}
		triangles = append(triangles, tris...)
	}

	xs := make(mesh.VertexAttributeSpan, len(vertices))
	ys := make(mesh.VertexAttributeSpan, len(vertices))
	for i, p := range vertices {
		xs[i], ys[i] = p.X, p.Y
	}
	indices := make([]uint32, 0, 3*len(triangles))
	for _, t := range triangles {
		indices = append(indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return mesh.Create(DefaultFormat, []mesh.VertexAttributeSpan{xs, ys}, indices, nil)
}

// allCollinear reports whether every point in pts lies on a single line.
// This is distinct from a zero net signed area: a self-crossing ("bowtie")
// loop can have a net signed area of zero while still enclosing real,
// non-collinear area, and must not be rejected here.
func allCollinear(pts []geometry.Point) bool {
	var origin, dir geometry.Point
	haveDir := false
	for _, p := range pts {
		if !haveDir {
			if p != pts[0] {
				origin = pts[0]
				dir = p
				haveDir = true
			}
			continue
		}
		if abs32(cross(origin, dir, p)) > degenerateAreaEpsilon {
			return false
		}
	}
	return true
}

// crossingEvent is a discovered transversal intersection between two
// non-adjacent edges of the input ring, to be spliced into both edges as a
// single shared new vertex.
type crossingEvent struct {
	edgeA, edgeB   int
	paramA, paramB float32
	point          geometry.Point
}

// splitCrossings finds every proper transversal crossing between
// non-adjacent edges of the n-vertex closed ring described by
// (*vertices)[0:n], appends one new shared vertex per crossing to
// *vertices, and returns the subdivided cyclic vertex-index walk: each
// original edge's start vertex followed by that edge's crossing insertions
// in increasing parametric order.
func splitCrossings(vertices *[]geometry.Point, n int) []int {
	edge := func(i int) geometry.Segment {
		return geometry.Segment{Start: (*vertices)[i], End: (*vertices)[(i+1)%n]}
	}

	var events []crossingEvent
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j-i == 1 || (i == 0 && j == n-1) {
				continue // adjacent edges share an endpoint, not a crossing
			}
			if p, ta, tb, ok := properIntersection(edge(i), edge(j)); ok {
				events = append(events, crossingEvent{edgeA: i, edgeB: j, paramA: ta, paramB: tb, point: p})
			}
		}
	}

	insertions := make([]*splaytree.Tree[*crossingInsertion], n)
	counts := make([]int, n)
	addInsertion := func(edgeIdx int, t float32, vertex int) {
		if insertions[edgeIdx] == nil {
			insertions[edgeIdx] = &splaytree.Tree[*crossingInsertion]{}
		}
		insertions[edgeIdx].Insert(&crossingInsertion{t: t, vertex: vertex})
		counts[edgeIdx]++
	}

	for _, ev := range events {
		vertex := len(*vertices)
		*vertices = append(*vertices, ev.point)
		addInsertion(ev.edgeA, ev.paramA, vertex)
		addInsertion(ev.edgeB, ev.paramB, vertex)
	}

	var ring []int
	for i := 0; i < n; i++ {
		ring = append(ring, i)
		for counts[i] > 0 {
			next := insertions[i].Max()
			insertions[i].Delete(next)
			counts[i]--
			ring = append(ring, next.vertex)
		}
	}
	return ring
}

// crossingInsertion is one pending crossing-vertex insertion along a
// single edge, ordered so that draining a splaytree.Tree of these via
// repeated Max()+Delete() yields increasing parameter order.
type crossingInsertion struct {
	t      float32
	vertex int
}

// Compare inverts the natural float ordering: draining a tree via Max()
// yields insertions in increasing t, the order splitCrossings needs to
// walk each subdivided edge from start to end. The vertex index breaks
// ties so two crossings at the same parameter stay distinct entries.
func (c *crossingInsertion) Compare(other *crossingInsertion) int {
	if c.t > other.t {
		return -1
	} else if c.t < other.t {
		return 1
	}
	if c.vertex > other.vertex {
		return -1
	} else if c.vertex < other.vertex {
		return 1
	}
	return 0
}

// properIntersection reports the single interior crossing point of a and
// b, if one exists strictly inside both segments (excluding the segments'
// own endpoints, which are handled by the ring's connectivity, not by
// synthesized crossing vertices). Parallel or collinear segments never
// report a crossing here.
func properIntersection(a, b geometry.Segment) (point geometry.Point, paramA, paramB float32, ok bool) {
	r := a.Vector()
	s := b.Vector()
	denom := geometry.Determinant(r, s)
	if denom == 0 {
		return geometry.Point{}, 0, 0, false
	}
	diff := b.Start.Sub(a.Start)
	t := geometry.Determinant(diff, s) / denom
	u := geometry.Determinant(diff, r) / denom
	if t <= crossingEpsilon || t >= 1-crossingEpsilon || u <= crossingEpsilon || u >= 1-crossingEpsilon {
		return geometry.Point{}, 0, 0, false
	}
	return a.Start.Add(r.Scale(t)), t, u, true
}

// extractSimpleLoops decomposes a cyclic vertex-index walk that may revisit
// a shared vertex (produced when a crossing vertex was spliced into two
// different edges) into one or more simple (repeat-free) closed loops.
// Whenever the walk returns to a vertex already open in the current scan,
// the span between the two occurrences is peeled off as an independent
// loop and the walk continues from the collapsed position.
func extractSimpleLoops(ring []int) [][]int {
	var loops [][]int
	var stack []int
	seenAt := map[int]int{}

	for _, v := range ring {
		if j, ok := seenAt[v]; ok {
			loop := append([]int(nil), stack[j:]...)
			loops = append(loops, loop)
			for _, popped := range stack[j+1:] {
				delete(seenAt, popped)
			}
			stack = stack[:j+1]
			continue
		}
		seenAt[v] = len(stack)
		stack = append(stack, v)
	}
	if len(stack) >= 3 {
		loops = append(loops, stack)
	}
	return loops
}
