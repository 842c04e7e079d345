// Package rtree implements a bulk-built, immutable bounding-box R-tree.
package rtree

import (
	"sort"

	"github.com/google/ink-sub004/geometry"
)

// branchFactor bounds the number of children per internal node. Chosen to
// keep the tree shallow without making nodes so wide that a single query
// scans most of a node's bounds needlessly.
const branchFactor = 8

// node is a single entry in the tree's flat array. Leaves hold an element
// index (into elems); internal nodes hold the range of child indices (into
// nodes). Both kinds carry their own bounds so VisitIntersectedElements
// never has to touch element data to prune a subtree.
type node struct {
	bounds   geometry.Rect
	isLeaf   bool
	elem     int32 // valid iff isLeaf
	children []int32
}

// StaticRTree is a bulk-built, immutable bounding-box index over a fixed
// set of elements of type T. Once built it cannot be mutated; this makes
// it safe to read concurrently from multiple goroutines.
type StaticRTree[T any] struct {
	elems []T
	nodes []node
	root  int32 // index into nodes, or -1 if the tree is empty
}

// BulkBuild constructs a StaticRTree over exactly n elements. elem(i)
// returns the i'th element and bounds(i) its bounding Rect, for
// i in [0, n).
func BulkBuild[T any](n int, bounds func(i int) geometry.Rect, elem func(i int) T) *StaticRTree[T] {
	t := &StaticRTree[T]{elems: make([]T, n), root: -1}
	if n == 0 {
		return t
	}
	leafIdx := make([]int32, n)
	for i := 0; i < n; i++ {
		t.elems[i] = elem(i)
		leafIdx[i] = int32(len(t.nodes))
		t.nodes = append(t.nodes, node{bounds: bounds(i), isLeaf: true, elem: int32(i)})
	}
	t.root = t.build(leafIdx)
	return t
}

// build recursively groups the given node indices into a subtree, returning
// the index of its root node. It implements a sort-tile-recursive bulk
// load: split into vertical slices by centroid x, then within each slice
// split into groups of branchFactor by centroid y.
func (t *StaticRTree[T]) build(idx []int32) int32 {
	if len(idx) == 1 {
		return idx[0]
	}
	if len(idx) <= branchFactor {
		return t.makeInternal(idx)
	}

	sliceCount := ceilSqrt(len(idx), branchFactor)
	sort.Slice(idx, func(i, j int) bool {
		return centroid(t.nodes[idx[i]].bounds).X < centroid(t.nodes[idx[j]].bounds).X
	})

	sliceSize := ceilDiv(len(idx), sliceCount)
	var children []int32
	for start := 0; start < len(idx); start += sliceSize {
		end := start + sliceSize
		if end > len(idx) {
			end = len(idx)
		}
		slice := idx[start:end]
		sort.Slice(slice, func(i, j int) bool {
			return centroid(t.nodes[slice[i]].bounds).Y < centroid(t.nodes[slice[j]].bounds).Y
		})
		for gstart := 0; gstart < len(slice); gstart += branchFactor {
			gend := gstart + branchFactor
			if gend > len(slice) {
				gend = len(slice)
			}
			group := append([]int32(nil), slice[gstart:gend]...)
			if len(group) == 1 {
				children = append(children, group[0])
			} else {
				children = append(children, t.makeInternal(group))
			}
		}
	}
	if len(children) == 1 {
		return children[0]
	}
	return t.build(children)
}

func (t *StaticRTree[T]) makeInternal(children []int32) int32 {
	b := t.nodes[children[0]].bounds
	for _, c := range children[1:] {
		b = b.JoinRect(t.nodes[c].bounds)
	}
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{bounds: b, children: children})
	return idx
}

func centroid(r geometry.Rect) geometry.Point { return r.Center() }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// ceilSqrt returns ceil(sqrt(ceil(n/branch))), the number of vertical
// slices used by the STR bulk-load heuristic.
func ceilSqrt(n, branch int) int {
	leafGroups := ceilDiv(n, branch)
	s := 1
	for s*s < leafGroups {
		s++
	}
	if s < 1 {
		s = 1
	}
	return s
}

// Len returns the number of elements in the tree.
func (t *StaticRTree[T]) Len() int { return len(t.elems) }

// Bounds returns the bounds of the whole tree, or the zero Rect if it is
// empty.
func (t *StaticRTree[T]) Bounds() geometry.Rect {
	if t.root < 0 {
		return geometry.Rect{}
	}
	return t.nodes[t.root].bounds
}

// VisitIntersectedElements visits every element whose bounds overlap
// query, calling visitor on each. Traversal stops early if visitor
// returns false. Visitation order is arbitrary but stable for a given
// tree. Overlap is tested on bounds only; callers needing an exact
// geometric predicate must re-test the visited element themselves.
func (t *StaticRTree[T]) VisitIntersectedElements(query geometry.Rect, visitor func(T) bool) {
	if t.root < 0 {
		return
	}
	t.visit(t.root, query, visitor)
}

func (t *StaticRTree[T]) visit(nodeIdx int32, query geometry.Rect, visitor func(T) bool) bool {
	n := &t.nodes[nodeIdx]
	if !rectsOverlap(n.bounds, query) {
		return true
	}
	if n.isLeaf {
		return visitor(t.elems[n.elem])
	}
	for _, c := range n.children {
		if !t.visit(c, query, visitor) {
			return false
		}
	}
	return true
}

// rectsOverlap reports whether a and b share at least one point, using a
// separating-axis test on their axis-aligned ranges.
func rectsOverlap(a, b geometry.Rect) bool {
	return a.MinVal.X <= b.MaxVal.X && a.MaxVal.X >= b.MinVal.X &&
		a.MinVal.Y <= b.MaxVal.Y && a.MaxVal.Y >= b.MinVal.Y
}
