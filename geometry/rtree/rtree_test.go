package rtree

import (
	"testing"

	"github.com/google/ink-sub004/geometry"
)

func unitSquareAt(i int) geometry.Rect {
	x := float32(i)
	return geometry.Rect{MinVal: geometry.Point{X: x, Y: 0}, MaxVal: geometry.Point{X: x + 1, Y: 1}}
}

func TestBulkBuildEmpty(t *testing.T) {
	tree := BulkBuild(0, unitSquareAt, func(i int) int { return i })
	if got, want := tree.Len(), 0; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	visited := 0
	tree.VisitIntersectedElements(geometry.Rect{MinVal: geometry.Point{X: -100, Y: -100}, MaxVal: geometry.Point{X: 100, Y: 100}}, func(int) bool {
		visited++
		return true
	})
	if visited != 0 {
		t.Errorf("visited %d elements of an empty tree, want 0", visited)
	}
}

func TestVisitIntersectedElementsFindsOnlyOverlapping(t *testing.T) {
	const n = 20
	tree := BulkBuild(n, unitSquareAt, func(i int) int { return i })
	if got, want := tree.Len(), n; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	query := geometry.Rect{MinVal: geometry.Point{X: 4.5, Y: -1}, MaxVal: geometry.Point{X: 6.5, Y: 2}}
	found := map[int]bool{}
	tree.VisitIntersectedElements(query, func(elem int) bool {
		found[elem] = true
		return true
	})

	for _, want := range []int{4, 5, 6} {
		if !found[want] {
			t.Errorf("element %d not visited, want visited", want)
		}
	}
	for elem := range found {
		if elem < 4 || elem > 6 {
			t.Errorf("element %d visited, want only 4..6", elem)
		}
	}
}

func TestVisitIntersectedElementsStopsOnFalse(t *testing.T) {
	const n = 50
	tree := BulkBuild(n, unitSquareAt, func(i int) int { return i })

	visited := 0
	tree.VisitIntersectedElements(tree.Bounds(), func(int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d elements after returning false once, want 1", visited)
	}
}

func TestBoundsEnclosesAllElements(t *testing.T) {
	const n = 10
	tree := BulkBuild(n, unitSquareAt, func(i int) int { return i })
	bounds := tree.Bounds()
	for i := 0; i < n; i++ {
		elemBounds := unitSquareAt(i)
		if !bounds.ContainsRect(elemBounds) {
			t.Errorf("Bounds() = %+v does not contain element %d's bounds %+v", bounds, i, elemBounds)
		}
	}
}
