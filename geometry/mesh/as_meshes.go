package mesh

import (
	"github.com/google/ink-sub004/geometry"
)

const maxPartitionVertices = 1 << 16

// repairAttempts enumerates candidate packed-integer nudges tried against
// a single vertex of a sign-flipped triangle, in units of that
// component's quantization step, up to roughly 2 steps in either
// direction before the repair is given up as unrecoverable.
var repairAttempts = [][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	{2, 0}, {-2, 0}, {0, 2}, {0, -2},
}

// AsMeshes partitions m's triangles into one or more Meshes, each
// referencing at most 2^16 distinct vertices, applying packingParams (or
// computing default coding params per partition) and dropping any
// attributes named in omitAttributes. It returns InvalidArgument if
// omitAttributes names Position or an attribute not present in m's
// format.
//
// If every triangle in m has non-negative signed area, AsMeshes attempts
// to preserve that property after quantization by perturbing vertex
// positions within roughly two quantization steps; a triangle that cannot
// be repaired within that budget is left as-is, and the call still
// succeeds.
func (m *MutableMesh) AsMeshes(packingParams []*AttributeCodingParams, omitAttributes []AttributeId) ([]Mesh, error) {
	out, _, err := m.AsMeshesVertexMap(packingParams, omitAttributes)
	return out, err
}

// VertexLocation identifies where an original MutableMesh vertex ended up
// after AsMeshesVertexMap's partitioning: the index of the Mesh it was
// placed in, and its (possibly renumbered) vertex index within that Mesh.
type VertexLocation struct {
	MeshIndex, VertexIndex int
}

// AsMeshesVertexMap is AsMeshes, but additionally returns, for every
// vertex index in m, the location its data ended up at in the returned
// Meshes. This supports callers (such as a PartitionedMesh builder) that
// need to translate vertex references expressed in m's original index
// space across the partitioning.
func (m *MutableMesh) AsMeshesVertexMap(packingParams []*AttributeCodingParams, omitAttributes []AttributeId) ([]Mesh, []VertexLocation, error) {
	keep, outFormat, err := m.omit(omitAttributes)
	if err != nil {
		return nil, nil, err
	}

	allNonNegative := true
	for t := 0; t < m.TriangleCount(); t++ {
		if m.GetTriangle(t).SignedArea() < 0 {
			allNonNegative = false
			break
		}
	}

	vertexMap := make([]VertexLocation, m.VertexCount())

	var out []Mesh
	triStart := 0
	for triStart < m.TriangleCount() {
		partition, order, nextStart := m.buildPartition(triStart, keep, outFormat, packingParams)
		if allNonNegative {
			partition.repairFlippedTriangles()
		}
		mesh, err := Create(outFormat, partition.components, partition.triangles, partition.packingParams)
		if err != nil {
			return nil, nil, err
		}
		for local, orig := range order {
			vertexMap[orig] = VertexLocation{MeshIndex: len(out), VertexIndex: local}
		}
		out = append(out, mesh)
		triStart = nextStart
	}
	if out == nil {
		mesh, err := Create(outFormat, emptySpans(outFormat), nil, projectParams(packingParams, keep))
		if err != nil {
			return nil, nil, err
		}
		out = []Mesh{mesh}
	}
	return out, vertexMap, nil
}

func emptySpans(format Format) []VertexAttributeSpan {
	total := 0
	for _, a := range format.Attributes {
		total += a.Type.ComponentCount()
	}
	return make([]VertexAttributeSpan, total)
}

// omit computes the kept attribute indices (into m.format.Attributes) and
// the resulting Format after dropping omitAttributes.
func (m *MutableMesh) omit(omitAttributes []AttributeId) ([]int, Format, error) {
	omit := map[AttributeId]bool{}
	for _, id := range omitAttributes {
		if id == Position {
			return nil, Format{}, geometry.NewError(geometry.InvalidArgument, "cannot omit the Position attribute")
		}
		omit[id] = true
	}
	var keep []int
	var attrs []Attribute
	for i, a := range m.format.Attributes {
		if omit[a.Id] {
			delete(omit, a.Id)
			continue
		}
		keep = append(keep, i)
		attrs = append(attrs, a)
	}
	if len(omit) > 0 {
		for id := range omit {
			return nil, Format{}, geometry.NewError(geometry.InvalidArgument, "omit_attributes names attribute %v not present in format", id)
		}
	}
	return keep, Format{Attributes: attrs, IndexFormat: m.format.IndexFormat}, nil
}

// partitionBuild accumulates one output partition's worth of remapped
// vertex data and triangle indices, plus the resolved packing params to
// pass to Create (so repair can adjust them in place).
type partitionBuild struct {
	outFormat     Format
	components    []VertexAttributeSpan
	triangles     []uint32
	packingParams []*AttributeCodingParams
	posX, posY    int // component indices of Position within components
}

// buildPartition greedily consumes triangles starting at triStart until
// adding the next triangle's vertices would exceed maxPartitionVertices
// distinct vertices, remapping vertex indices to a dense local range.
// It returns the partition, the original vertex index of each local vertex
// in local-index order, and the triangle index to resume from.
func (m *MutableMesh) buildPartition(triStart int, keep []int, outFormat Format, packingParams []*AttributeCodingParams) (*partitionBuild, []uint32, int) {
	remap := map[uint32]uint32{}
	var localTriangles []uint32
	var order []uint32 // original vertex index, in local-index order

	t := triStart
	for ; t < m.TriangleCount(); t++ {
		i0, i1, i2 := m.triangles[3*t], m.triangles[3*t+1], m.triangles[3*t+2]
		newCount := 0
		for _, idx := range [3]uint32{i0, i1, i2} {
			if _, ok := remap[idx]; !ok {
				newCount++
			}
		}
		if len(order)+newCount > maxPartitionVertices && len(order) > 0 {
			break
		}
		var local [3]uint32
		for k, idx := range [3]uint32{i0, i1, i2} {
			if li, ok := remap[idx]; ok {
				local[k] = li
			} else {
				li = uint32(len(order))
				remap[idx] = li
				order = append(order, idx)
				local[k] = li
			}
		}
		localTriangles = append(localTriangles, local[0], local[1], local[2])
	}

	components := make([]VertexAttributeSpan, 0, len(keep))
	for _, ai := range keep {
		n := m.format.Attributes[ai].Type.ComponentCount()
		base := m.componentBase(ai)
		for c := 0; c < n; c++ {
			span := make(VertexAttributeSpan, len(order))
			for li, orig := range order {
				span[li] = m.components[base+c][orig]
			}
			components = append(components, span)
		}
	}

	params := projectParams(packingParams, keep)

	posIdx, _ := outFormat.PositionAttributeIndex()
	posX := 0
	for i := 0; i < posIdx; i++ {
		posX += outFormat.Attributes[i].Type.ComponentCount()
	}

	return &partitionBuild{
		outFormat:     outFormat,
		components:    components,
		triangles:     localTriangles,
		packingParams: params,
		posX:          posX,
		posY:          posX + 1,
	}, order, t
}

// projectParams re-indexes packingParams (given in the original format's
// attribute order) onto the kept attributes, in order. A nil input stays
// nil.
func projectParams(packingParams []*AttributeCodingParams, keep []int) []*AttributeCodingParams {
	if packingParams == nil {
		return nil
	}
	params := make([]*AttributeCodingParams, len(keep))
	for newI, ai := range keep {
		if ai < len(packingParams) {
			params[newI] = packingParams[ai]
		}
	}
	return params
}

func (m *MutableMesh) componentBase(attrIndex int) int {
	base := 0
	for j := 0; j < attrIndex; j++ {
		base += m.format.Attributes[j].Type.ComponentCount()
	}
	return base
}

// repairFlippedTriangles scans for triangles whose signed area would flip
// sign after quantization and tries to nudge a vertex's quantized
// position to restore it, mutating p.components in place.
func (p *partitionBuild) repairFlippedTriangles() {
	posAttrIdx, ok := p.outFormat.PositionAttributeIndex()
	if !ok {
		return
	}
	attr := p.outFormat.Attributes[posAttrIdx]
	if !attr.Type.IsPacked() {
		// Unpacked positions round-trip exactly; quantization cannot flip
		// a triangle's sign.
		return
	}
	widths := attr.Type.componentBitWidths()

	var xParams, yParams CodingParams
	if p.packingParams != nil && p.packingParams[posAttrIdx] != nil {
		xParams = p.packingParams[posAttrIdx].Components[0]
		yParams = p.packingParams[posAttrIdx].Components[1]
	} else {
		minX, maxX := rangeOf(p.components[p.posX])
		minY, maxY := rangeOf(p.components[p.posY])
		xParams = defaultCodingParams(widths[0], minX, maxX)
		yParams = defaultCodingParams(widths[1], minY, maxY)
	}

	quantized := func(i int) geometry.Point {
		xi, _ := xParams.pack(p.components[p.posX][i], widths[0])
		yi, _ := yParams.pack(p.components[p.posY][i], widths[1])
		return geometry.Point{X: xParams.unpack(xi), Y: yParams.unpack(yi)}
	}

	for t := 0; t < len(p.triangles)/3; t++ {
		i0, i1, i2 := p.triangles[3*t], p.triangles[3*t+1], p.triangles[3*t+2]
		tri := geometry.Triangle{P0: quantized(int(i0)), P1: quantized(int(i1)), P2: quantized(int(i2))}
		if tri.SignedArea() >= 0 {
			continue
		}
		p.tryRepair([3]uint32{i0, i1, i2}, xParams, yParams, widths, quantized)
	}
}

func (p *partitionBuild) tryRepair(idx [3]uint32, xParams, yParams CodingParams, widths []int, quantized func(int) geometry.Point) {
	for _, vi := range idx {
		origX, origY := p.components[p.posX][vi], p.components[p.posY][vi]
		for _, attempt := range repairAttempts {
			xi, ok1 := xParams.pack(origX, widths[0])
			yi, ok2 := yParams.pack(origY, widths[1])
			if !ok1 || !ok2 {
				continue
			}
			newXi := int64(xi) + int64(attempt[0])
			newYi := int64(yi) + int64(attempt[1])
			if newXi < 0 || newYi < 0 || newXi > int64(maxUnsigned(widths[0])) || newYi > int64(maxUnsigned(widths[1])) {
				continue
			}
			candidateX := xParams.unpack(uint32(newXi))
			candidateY := yParams.unpack(uint32(newYi))

			p.components[p.posX][vi] = candidateX
			p.components[p.posY][vi] = candidateY
			fixed := true
			for t := 0; t < len(p.triangles)/3; t++ {
				a, b, c := p.triangles[3*t], p.triangles[3*t+1], p.triangles[3*t+2]
				if a != vi && b != vi && c != vi {
					continue
				}
				tri := geometry.Triangle{P0: quantized(int(a)), P1: quantized(int(b)), P2: quantized(int(c))}
				if tri.SignedArea() < 0 {
					fixed = false
					break
				}
			}
			if fixed {
				return
			}
			p.components[p.posX][vi] = origX
			p.components[p.posY][vi] = origY
		}
	}
}
