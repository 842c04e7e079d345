// Package partition implements PartitionedMesh, the render-group aggregate
// that groups one or more immutable Meshes together with their outlines,
// backed by a lazily-built spatial index for intersection and coverage
// queries (see the visit.go file in this package).
package partition

import (
	"sync"

	"github.com/google/ink-sub004/geometry"
	"github.com/google/ink-sub004/geometry/mesh"
	"github.com/google/ink-sub004/geometry/rtree"
)

// maxTotalMeshes bounds the total number of Meshes a PartitionedMesh may
// hold across all its render groups, matching Mesh's own 16-bit vertex
// count ceiling in spirit: indices into the mesh list are meant to fit in
// a u16 for compact TriangleIndexPair/VertexIndexPair wire encoding.
const maxTotalMeshes = 1 << 16

// VertexIndexPair identifies a single vertex within a PartitionedMesh
// render group: MeshIndex is local to the owning group's mesh range.
type VertexIndexPair struct {
	MeshIndex, VertexIndex int
}

// TriangleIndexPair identifies a single triangle within a PartitionedMesh.
// Unlike VertexIndexPair, MeshIndex here indexes the PartitionedMesh's
// flat Meshes() list directly, since spatial queries are not scoped to a
// single render group.
type TriangleIndexPair struct {
	MeshIndex, TriangleIndex int
}

// MutableMeshGroup is one render group's worth of input to
// FromMutableMeshGroups: an unpacked mesh plus its outlines, expressed as
// vertex indices into Mesh's own (pre-partitioning) index space.
type MutableMeshGroup struct {
	Mesh           *mesh.MutableMesh
	Outlines       [][]int
	OmitAttributes []mesh.AttributeId
	PackingParams  []*mesh.AttributeCodingParams
}

// MeshGroup is one render group's worth of input to FromMeshGroups:
// already-packed Meshes plus outlines expressed as VertexIndexPairs local
// to this group's mesh list.
type MeshGroup struct {
	Meshes   []mesh.Mesh
	Outlines [][]VertexIndexPair
}

// PartitionedMesh is a shared handle to an immutable collection of render
// groups. Copies are cheap: they refer to the same underlying data and
// lazy caches (see visit.go). The zero value is an empty PartitionedMesh
// with no render groups.
type PartitionedMesh struct {
	data *partitionedMeshData
}

// emptyData backs the zero-value PartitionedMesh, so that a
// default-constructed handle answers every query as an empty shape
// instead of dereferencing nil.
var emptyData = &partitionedMeshData{
	groupMeshStart:    []int{0},
	groupOutlineStart: []int{0},
}

func (pm PartitionedMesh) shared() *partitionedMeshData {
	if pm.data == nil {
		return emptyData
	}
	return pm.data
}

type partitionedMeshData struct {
	meshes            []mesh.Mesh
	groupMeshStart    []int // len == group count + 1
	groupOutlineStart []int // len == group count + 1
	outlines          [][]VertexIndexPair

	mu           sync.Mutex
	tree         *rtree.StaticRTree[TriangleIndexPair]
	totalArea    float32
	totalAreaSet bool
}

// WithEmptyGroups returns a PartitionedMesh with n render groups, none of
// which own any meshes or outlines.
func WithEmptyGroups(n int) PartitionedMesh {
	return PartitionedMesh{data: &partitionedMeshData{
		groupMeshStart:    make([]int, n+1),
		groupOutlineStart: make([]int, n+1),
	}}
}

// FromMutableMesh builds a single-render-group PartitionedMesh from an
// unpacked MutableMesh, converting it to one or more packed Meshes via
// AsMeshes and translating outlines (expressed as vertex indices into m)
// across that partitioning.
func FromMutableMesh(m *mesh.MutableMesh, outlines [][]int, omitAttributes []mesh.AttributeId, packingParams []*mesh.AttributeCodingParams) (PartitionedMesh, error) {
	return FromMutableMeshGroups([]MutableMeshGroup{{
		Mesh:           m,
		Outlines:       outlines,
		OmitAttributes: omitAttributes,
		PackingParams:  packingParams,
	}})
}

// FromMutableMeshGroups is FromMutableMesh generalized to many render
// groups, one per element of groups, listed bottom-to-top.
func FromMutableMeshGroups(groups []MutableMeshGroup) (PartitionedMesh, error) {
	var allMeshes []mesh.Mesh
	var allOutlines [][]VertexIndexPair
	groupMeshStart := make([]int, len(groups)+1)
	groupOutlineStart := make([]int, len(groups)+1)

	for gi, g := range groups {
		groupMeshStart[gi] = len(allMeshes)
		groupOutlineStart[gi] = len(allOutlines)

		if g.Mesh == nil || g.Mesh.VertexCount() == 0 || g.Mesh.TriangleCount() == 0 {
			// A triangle-less MutableMesh packs to an empty Mesh, which a
			// PartitionedMesh may not hold; the group just owns no meshes.
			if nonEmptyOutlineCount(g.Outlines) > 0 {
				return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument,
					"render group %d has outlines but no triangles", gi)
			}
			continue
		}

		meshes, vmap, err := g.Mesh.AsMeshesVertexMap(g.PackingParams, g.OmitAttributes)
		if err != nil {
			return PartitionedMesh{}, err
		}
		if err := validateGroupFormats(meshes); err != nil {
			return PartitionedMesh{}, err
		}
		for _, rawOutline := range g.Outlines {
			if len(rawOutline) == 0 {
				// The MutableMesh factories silently drop empty outlines.
				continue
			}
			outline := make([]VertexIndexPair, 0, len(rawOutline))
			for _, vi := range rawOutline {
				if vi < 0 || vi >= len(vmap) {
					return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument,
						"outline references out-of-range vertex %d", vi)
				}
				loc := vmap[vi]
				outline = append(outline, VertexIndexPair{MeshIndex: loc.MeshIndex, VertexIndex: loc.VertexIndex})
			}
			allOutlines = append(allOutlines, outline)
		}
		allMeshes = append(allMeshes, meshes...)
	}
	groupMeshStart[len(groups)] = len(allMeshes)
	groupOutlineStart[len(groups)] = len(allOutlines)

	if len(allMeshes) > maxTotalMeshes {
		return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument,
			"partitioned mesh has %d meshes, exceeds 2^16", len(allMeshes))
	}
	return PartitionedMesh{data: &partitionedMeshData{
		meshes:            allMeshes,
		groupMeshStart:    groupMeshStart,
		groupOutlineStart: groupOutlineStart,
		outlines:          allOutlines,
	}}, nil
}

// FromMeshes builds a single-render-group PartitionedMesh directly from
// already-packed Meshes. Unlike FromMutableMesh, an empty outline here is
// an error rather than silently dropped.
func FromMeshes(meshes []mesh.Mesh, outlines [][]VertexIndexPair) (PartitionedMesh, error) {
	return FromMeshGroups([]MeshGroup{{Meshes: meshes, Outlines: outlines}})
}

// FromMeshGroups is FromMeshes generalized to many render groups.
func FromMeshGroups(groups []MeshGroup) (PartitionedMesh, error) {
	var allMeshes []mesh.Mesh
	var allOutlines [][]VertexIndexPair
	groupMeshStart := make([]int, len(groups)+1)
	groupOutlineStart := make([]int, len(groups)+1)

	for gi, g := range groups {
		groupMeshStart[gi] = len(allMeshes)
		groupOutlineStart[gi] = len(allOutlines)

		for mi, m := range g.Meshes {
			if m.TriangleCount() == 0 {
				return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument,
					"render group %d mesh %d contains no triangles", gi, mi)
			}
		}
		if err := validateGroupFormats(g.Meshes); err != nil {
			return PartitionedMesh{}, err
		}
		for _, outline := range g.Outlines {
			if len(outline) == 0 {
				return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument, "outline must not be empty")
			}
			for _, pair := range outline {
				if pair.MeshIndex < 0 || pair.MeshIndex >= len(g.Meshes) {
					return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument,
						"outline references out-of-range mesh %d", pair.MeshIndex)
				}
				if pair.VertexIndex < 0 || pair.VertexIndex >= g.Meshes[pair.MeshIndex].VertexCount() {
					return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument,
						"outline references out-of-range vertex %d", pair.VertexIndex)
				}
			}
			allOutlines = append(allOutlines, outline)
		}
		allMeshes = append(allMeshes, g.Meshes...)
	}
	groupMeshStart[len(groups)] = len(allMeshes)
	groupOutlineStart[len(groups)] = len(allOutlines)

	if len(allMeshes) > maxTotalMeshes {
		return PartitionedMesh{}, geometry.NewError(geometry.InvalidArgument,
			"partitioned mesh has %d meshes, exceeds 2^16", len(allMeshes))
	}
	return PartitionedMesh{data: &partitionedMeshData{
		meshes:            allMeshes,
		groupMeshStart:    groupMeshStart,
		groupOutlineStart: groupOutlineStart,
		outlines:          allOutlines,
	}}, nil
}

func nonEmptyOutlineCount(outlines [][]int) int {
	n := 0
	for _, o := range outlines {
		if len(o) > 0 {
			n++
		}
	}
	return n
}

func validateGroupFormats(meshes []mesh.Mesh) error {
	if len(meshes) == 0 {
		return nil
	}
	want := meshes[0].Format()
	for _, m := range meshes[1:] {
		if !formatsEqual(m.Format(), want) {
			return geometry.NewError(geometry.InvalidArgument, "meshes within a render group must share a MeshFormat")
		}
	}
	return nil
}

func formatsEqual(a, b mesh.Format) bool {
	if a.IndexFormat != b.IndexFormat || len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for i := range a.Attributes {
		if a.Attributes[i] != b.Attributes[i] {
			return false
		}
	}
	return true
}

// RenderGroupCount returns the number of render groups.
func (pm PartitionedMesh) RenderGroupCount() int { return len(pm.shared().groupMeshStart) - 1 }

// RenderGroupFormat returns the shared MeshFormat of render group g's
// meshes, or the zero Format if the group owns no meshes.
func (pm PartitionedMesh) RenderGroupFormat(g int) mesh.Format {
	d := pm.shared()
	start, end := d.groupMeshStart[g], d.groupMeshStart[g+1]
	if start == end {
		return mesh.Format{}
	}
	return d.meshes[start].Format()
}

// RenderGroupMeshes returns render group g's meshes, bottom-to-top.
func (pm PartitionedMesh) RenderGroupMeshes(g int) []mesh.Mesh {
	d := pm.shared()
	return d.meshes[d.groupMeshStart[g]:d.groupMeshStart[g+1]]
}

// Meshes returns every mesh across every render group, bottom-to-top.
func (pm PartitionedMesh) Meshes() []mesh.Mesh { return pm.shared().meshes }

// OutlineCount returns the number of outlines belonging to render group g.
func (pm PartitionedMesh) OutlineCount(g int) int {
	d := pm.shared()
	return d.groupOutlineStart[g+1] - d.groupOutlineStart[g]
}

// Outline returns render group g's o'th outline.
func (pm PartitionedMesh) Outline(g, o int) []VertexIndexPair {
	d := pm.shared()
	return d.outlines[d.groupOutlineStart[g]+o]
}

// OutlineVertexCount returns the number of vertices in render group g's
// o'th outline.
func (pm PartitionedMesh) OutlineVertexCount(g, o int) int { return len(pm.Outline(g, o)) }

// OutlinePosition returns the position of vertex v of render group g's
// o'th outline.
func (pm PartitionedMesh) OutlinePosition(g, o, v int) geometry.Point {
	pair := pm.Outline(g, o)[v]
	d := pm.shared()
	return d.meshes[d.groupMeshStart[g]+pair.MeshIndex].VertexPosition(pair.VertexIndex)
}

// Bounds returns the smallest Rect containing every mesh's position
// bounds, or the zero Rect if the PartitionedMesh owns no meshes.
func (pm PartitionedMesh) Bounds() geometry.Rect {
	d := pm.shared()
	if len(d.meshes) == 0 {
		return geometry.Rect{}
	}
	b := d.meshes[0].Bounds()
	for _, m := range d.meshes[1:] {
		b = b.JoinRect(m.Bounds())
	}
	return b
}

// triangleAt resolves a TriangleIndexPair into its Triangle.
func (pm PartitionedMesh) triangleAt(pair TriangleIndexPair) geometry.Triangle {
	return pm.shared().meshes[pair.MeshIndex].GetTriangle(pair.TriangleIndex)
}
