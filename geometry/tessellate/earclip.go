package tessellate

import "github.com/google/ink-sub004/geometry"

// earClip triangulates a single simple (repeat-free) closed loop of vertex
// indices into vertices, returning the list of vertex-index triples to
// emit as triangles.
//
// Each outer step first looks for a vertex that is exactly collinear with
// its current two ring neighbors and elides it without emitting anything:
// removing a collinear point never changes the polygon's shape, so this
// is always safe regardless of what else is happening elsewhere in the
// ring, and it is what lets an intentionally flat vertex (a duplicate
// point, a retraced segment) end up unreferenced by any triangle rather
// than forcing a pick among equally-bad ears around it. Only once no such
// vertex remains does it fall back to the standard ear test: the
// candidate triangle's orientation must agree with the loop's overall
// winding, and no other ring vertex may lie on or inside it. The
// boundary-inclusive containment check is required for correctness:
// excluding boundary touches (as a cheaper strict-interior check would)
// can accept an ear whose diagonal actually grazes another vertex,
// leaving a self-intersecting remainder.
//
// An error is returned only if the loop can never make progress: no
// collinear vertex exists and every remaining candidate ear is reflex or
// blocked. That only happens for maliciously degenerate input.
func earClip(vertices []geometry.Point, loop []int) ([][3]int, error) {
	ring := append([]int(nil), loop...)
	orientation := signedAreaSign(vertices, ring)

	var triangles [][3]int
	for len(ring) > 3 {
		if i, ok := findFlatVertex(vertices, ring); ok {
			ring = append(ring[:i], ring[i+1:]...)
			continue
		}

		found := false
		for i := range ring {
			prev := ring[(i-1+len(ring))%len(ring)]
			cur := ring[i]
			next := ring[(i+1)%len(ring)]
			tri := geometry.Triangle{P0: vertices[prev], P1: vertices[cur], P2: vertices[next]}
			area := tri.SignedArea()
			if orientation > 0 && area <= 0 {
				continue
			}
			if orientation < 0 && area >= 0 {
				continue
			}
			if orientation == 0 {
				continue
			}
			if containsOtherVertex(vertices, ring, i, tri) {
				continue
			}
			if abs32(area) > degenerateAreaEpsilon {
				triangles = append(triangles, [3]int{prev, cur, next})
			}
			ring = append(ring[:i], ring[i+1:]...)
			found = true
			break
		}
		if !found {
			return nil, geometry.NewError(geometry.Internal,
				"tessellate: could not find a valid ear; input may be entirely collinear")
		}
	}
	if len(ring) == 3 {
		tri := geometry.Triangle{P0: vertices[ring[0]], P1: vertices[ring[1]], P2: vertices[ring[2]]}
		if abs32(tri.SignedArea()) > degenerateAreaEpsilon {
			triangles = append(triangles, [3]int{ring[0], ring[1], ring[2]})
		}
	}
	return triangles, nil
}

// signedAreaSign returns +1, -1, or 0 according to the sign of the loop's
// shoelace area, used to pick which orientation of ear is valid.
func signedAreaSign(vertices []geometry.Point, ring []int) int {
	var sum float32
	for i := range ring {
		a := vertices[ring[i]]
		b := vertices[ring[(i+1)%len(ring)]]
		sum += a.X*b.Y - b.X*a.Y
	}
	switch {
	case sum > 0:
		return 1
	case sum < 0:
		return -1
	default:
		return 0
	}
}

// findFlatVertex returns the ring position of the first vertex whose
// signed area with its immediate ring neighbors is negligible, i.e. a
// vertex exactly collinear with (or coincident with) one of its
// neighbors. Removing such a vertex never alters the polygon.
func findFlatVertex(vertices []geometry.Point, ring []int) (int, bool) {
	n := len(ring)
	for i := 0; i < n; i++ {
		prev := vertices[ring[(i-1+n)%n]]
		cur := vertices[ring[i]]
		next := vertices[ring[(i+1)%n]]
		if abs32(cross(prev, cur, next)) <= degenerateAreaEpsilon {
			return i, true
		}
	}
	return -1, false
}

// containsOtherVertex reports whether any ring vertex other than the
// candidate ear's own three corners lies on or inside tri, using
// boundary-inclusive containment.
func containsOtherVertex(vertices []geometry.Point, ring []int, apexIdx int, tri geometry.Triangle) bool {
	n := len(ring)
	for k := 0; k < n; k++ {
		if k == apexIdx || k == (apexIdx-1+n)%n || k == (apexIdx+1)%n {
			continue
		}
		if tri.Contains(vertices[ring[k]]) {
			return true
		}
	}
	return false
}

func cross(a, b, p geometry.Point) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
