package mesh

import (
	"encoding/binary"
	"math"

	"github.com/google/ink-sub004/geometry"
)

// Bounds is an inclusive [min, max] range over a single component, used
// for a Mesh's cached per-attribute bounds.
type Bounds struct {
	Min, Max float32
}

// sharedData is the reference-counted immutable record a Mesh handle
// points to. Copies of a Mesh are cheap: they share this record, never
// deep-copy it.
type sharedData struct {
	format        Format
	codingParams  []AttributeCodingParams
	bounds        []Bounds // len(bounds) == len(format.Attributes); Position always present when VertexCount > 0
	hasBounds     []bool
	vertexData    []byte
	indexData     []byte
	vertexCount   int
	triangleCount int
}

// Mesh is an immutable, packed vertex/triangle mesh. It has shared
// ownership semantics: copying a Mesh value is cheap, and both copies
// refer to the same underlying data.
type Mesh struct {
	data *sharedData
}

// VertexAttributeSpan supplies one component's worth of unpacked vertex
// data to Create, one float32 per vertex.
type VertexAttributeSpan []float32

// Create validates and packs vertex data into a new Mesh.
//
// components must have one VertexAttributeSpan per *component* across all
// of format's attributes (i.e. len(components) == sum of
// AttributeType.ComponentCount() over format.Attributes), and every span
// must have the same length (the vertex count). triangleIndices must have
// a length divisible by 3, with every index less than the vertex count.
// packingParams, if non-nil, must have one entry per attribute in format;
// a nil entry for a packed attribute requests the default coding params
// computed from the observed range.
func Create(format Format, components []VertexAttributeSpan, triangleIndices []uint32, packingParams []*AttributeCodingParams) (Mesh, error) {
	if err := format.Validate(); err != nil {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "%v", err)
	}

	wantComponents := 0
	for _, a := range format.Attributes {
		wantComponents += a.Type.ComponentCount()
	}
	if len(components) != wantComponents {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument,
			"got %d component spans, format wants %d", len(components), wantComponents)
	}
	if packingParams != nil && len(packingParams) != len(format.Attributes) {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument,
			"got %d packing params, format has %d attributes", len(packingParams), len(format.Attributes))
	}

	vertexCount := 0
	if len(components) > 0 {
		vertexCount = len(components[0])
		for _, c := range components {
			if len(c) != vertexCount {
				return Mesh{}, geometry.NewError(geometry.InvalidArgument, "component spans have mismatched lengths")
			}
		}
	}
	if vertexCount > 1<<16 {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "vertex count %d exceeds 2^16", vertexCount)
	}

	for _, c := range components {
		for _, v := range c {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return Mesh{}, geometry.NewError(geometry.FailedPrecondition, "non-finite vertex attribute value")
			}
		}
	}

	if len(triangleIndices)%3 != 0 {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "triangle index count %d not divisible by 3", len(triangleIndices))
	}
	maxIdx := format.IndexFormat.MaxUnpackedIndex()
	for _, idx := range triangleIndices {
		if idx >= uint32(vertexCount) {
			return Mesh{}, geometry.NewError(geometry.InvalidArgument, "triangle index %d out of range for %d vertices", idx, vertexCount)
		}
		if idx > maxIdx {
			return Mesh{}, geometry.NewError(geometry.InvalidArgument, "triangle index %d exceeds index format's max", idx)
		}
	}

	bounds := make([]Bounds, len(format.Attributes))
	hasBounds := make([]bool, len(format.Attributes))
	codingParams := make([]AttributeCodingParams, len(format.Attributes))

	compOffset := 0
	for ai, attr := range format.Attributes {
		n := attr.Type.ComponentCount()
		spans := components[compOffset : compOffset+n]
		compOffset += n

		var userParams *AttributeCodingParams
		if packingParams != nil {
			userParams = packingParams[ai]
		}

		if !attr.Type.IsPacked() {
			if userParams != nil {
				return Mesh{}, geometry.NewError(geometry.InvalidArgument,
					"attribute %d (%v) is unpacked but a packing param was supplied", ai, attr.Type)
			}
			if vertexCount > 0 {
				min, max := rangeOf(spans[0])
				bounds[ai] = Bounds{min, max}
				hasBounds[ai] = attr.Id == Position
			}
			continue
		}

		widths := attr.Type.componentBitWidths()
		if userParams != nil && len(userParams.Components) != n {
			return Mesh{}, geometry.NewError(geometry.InvalidArgument,
				"packing params for attribute %d have %d components, want %d", ai, len(userParams.Components), n)
		}
		params := AttributeCodingParams{Components: make([]CodingParams, n)}
		for c := 0; c < n; c++ {
			min, max := float32(0), float32(0)
			if vertexCount > 0 {
				min, max = rangeOf(spans[c])
			}
			if math.Abs(float64(min)) > math.MaxFloat32 || math.Abs(float64(max)) > math.MaxFloat32 {
				return Mesh{}, geometry.NewError(geometry.FailedPrecondition, "attribute %d component %d range exceeds representable float32", ai, c)
			}
			var p CodingParams
			if userParams != nil && userParams.Components[c] != (CodingParams{}) {
				p = userParams.Components[c]
				if !p.CanRepresent(widths[c], min, max) {
					return Mesh{}, geometry.NewError(geometry.InvalidArgument,
						"packing params for attribute %d component %d cannot represent observed range [%v,%v]", ai, c, min, max)
				}
			} else {
				p = defaultCodingParams(widths[c], min, max)
			}
			params.Components[c] = p
		}
		codingParams[ai] = params
		if vertexCount > 0 && attr.Id == Position {
			min0, max0 := rangeOf(spans[0])
			min1, max1 := rangeOf(spans[1])
			bounds[ai] = Bounds{minFloat(min0, min1), maxFloat(max0, max1)}
			hasBounds[ai] = true
		}
	}

	vertexData := make([]byte, vertexCount*format.PackedVertexStride())
	compOffset = 0
	for ai, attr := range format.Attributes {
		n := attr.Type.ComponentCount()
		spans := components[compOffset : compOffset+n]
		compOffset += n
		stride := format.PackedVertexStride()
		attrOffset := format.AttributeOffsetPacked(ai)

		if !attr.Type.IsPacked() {
			for v := 0; v < vertexCount; v++ {
				base := v*stride + attrOffset
				for c := 0; c < n; c++ {
					binary.LittleEndian.PutUint32(vertexData[base+4*c:], math.Float32bits(spans[c][v]))
				}
			}
			continue
		}

		widths := attr.Type.componentBitWidths()
		params := codingParams[ai]
		for v := 0; v < vertexCount; v++ {
			ints := make([]uint32, n)
			for c := 0; c < n; c++ {
				packed, ok := params.Components[c].pack(spans[c][v], widths[c])
				if !ok {
					return Mesh{}, geometry.NewError(geometry.InvalidArgument,
						"value %v for attribute %d component %d does not fit its coding params", spans[c][v], ai, c)
				}
				ints[c] = packed
			}
			bytes := packBits(widths, ints)
			copy(vertexData[v*stride+attrOffset:], bytes)
		}
	}

	indexData := make([]byte, len(triangleIndices)*2)
	for i, idx := range triangleIndices {
		binary.LittleEndian.PutUint16(indexData[2*i:], uint16(idx))
	}

	return Mesh{data: &sharedData{
		format:        format,
		codingParams:  codingParams,
		bounds:        bounds,
		hasBounds:     hasBounds,
		vertexData:    vertexData,
		indexData:     indexData,
		vertexCount:   vertexCount,
		triangleCount: len(triangleIndices) / 3,
	}}, nil
}

// CreateFromQuantizedData builds a Mesh directly from already-packed
// integer data, skipping Create's float range checks; each packed value is
// still checked against its component's bit width. This fails if format has any unpacked
// attribute, since there would be nothing to "quantize" for it.
//
// packedComponents has one entry per *component* across all of format's
// attributes (the same convention Create uses for its components
// parameter), each holding one packed integer per vertex.
func CreateFromQuantizedData(format Format, packedComponents [][]uint32, triangleIndices []uint32, packingParams []AttributeCodingParams) (Mesh, error) {
	if err := format.Validate(); err != nil {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "%v", err)
	}
	for _, a := range format.Attributes {
		if !a.Type.IsPacked() {
			return Mesh{}, geometry.NewError(geometry.InvalidArgument, "CreateFromQuantizedData requires every attribute to be packed; %v is not", a.Type)
		}
	}
	wantComponents := 0
	for _, a := range format.Attributes {
		wantComponents += a.Type.ComponentCount()
	}
	if len(packedComponents) != wantComponents {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "got %d packed component spans, format wants %d", len(packedComponents), wantComponents)
	}
	if len(packingParams) != len(format.Attributes) {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "got %d packing params, format has %d attributes", len(packingParams), len(format.Attributes))
	}
	for ai, a := range format.Attributes {
		if len(packingParams[ai].Components) != a.Type.ComponentCount() {
			return Mesh{}, geometry.NewError(geometry.InvalidArgument,
				"packing params for attribute %d have %d components, want %d", ai, len(packingParams[ai].Components), a.Type.ComponentCount())
		}
	}

	vertexCount := 0
	if len(packedComponents) > 0 {
		vertexCount = len(packedComponents[0])
		for _, c := range packedComponents {
			if len(c) != vertexCount {
				return Mesh{}, geometry.NewError(geometry.InvalidArgument, "packed component spans have mismatched lengths")
			}
		}
	}
	if vertexCount > 1<<16 {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "vertex count %d exceeds 2^16", vertexCount)
	}
	if len(triangleIndices)%3 != 0 {
		return Mesh{}, geometry.NewError(geometry.InvalidArgument, "triangle index count %d not divisible by 3", len(triangleIndices))
	}
	for _, idx := range triangleIndices {
		if idx >= uint32(vertexCount) {
			return Mesh{}, geometry.NewError(geometry.InvalidArgument, "triangle index %d out of range for %d vertices", idx, vertexCount)
		}
	}

	stride := format.PackedVertexStride()
	vertexData := make([]byte, vertexCount*stride)
	bounds := make([]Bounds, len(format.Attributes))
	hasBounds := make([]bool, len(format.Attributes))

	compOffset := 0
	for ai, attr := range format.Attributes {
		n := attr.Type.ComponentCount()
		spans := packedComponents[compOffset : compOffset+n]
		compOffset += n
		widths := attr.Type.componentBitWidths()
		attrOffset := format.AttributeOffsetPacked(ai)
		for v := 0; v < vertexCount; v++ {
			ints := make([]uint32, n)
			for c := 0; c < n; c++ {
				if spans[c][v] > maxUnsigned(widths[c]) {
					return Mesh{}, geometry.NewError(geometry.InvalidArgument,
						"packed value %d for attribute %d component %d exceeds its %d-bit width", spans[c][v], ai, c, widths[c])
				}
				ints[c] = spans[c][v]
			}
			copy(vertexData[v*stride+attrOffset:], packBits(widths, ints))
		}
	}

	if i, ok := format.PositionAttributeIndex(); ok && vertexCount > 0 {
		min, max := geometry.Point{X: math.MaxFloat32, Y: math.MaxFloat32}, geometry.Point{X: -math.MaxFloat32, Y: -math.MaxFloat32}
		for v := 0; v < vertexCount; v++ {
			p := unpackPosition(format, packingParams, vertexData, stride, i, v)
			min, max = min.Min(p), max.Max(p)
		}
		bounds[i] = Bounds{minFloat(min.X, min.Y), maxFloat(max.X, max.Y)}
		hasBounds[i] = true
	}

	indexData := make([]byte, len(triangleIndices)*2)
	for i, idx := range triangleIndices {
		binary.LittleEndian.PutUint16(indexData[2*i:], uint16(idx))
	}

	return Mesh{data: &sharedData{
		format:        format,
		codingParams:  packingParams,
		bounds:        bounds,
		hasBounds:     hasBounds,
		vertexData:    vertexData,
		indexData:     indexData,
		vertexCount:   vertexCount,
		triangleCount: len(triangleIndices) / 3,
	}}, nil
}

// unpackPosition decodes the Position attribute of vertex v directly
// from a not-yet-wrapped vertex buffer, for use while still constructing
// a Mesh's shared data (before a Mesh value exists to call
// FloatVertexAttribute on).
func unpackPosition(format Format, params []AttributeCodingParams, vertexData []byte, stride, posAttr, v int) geometry.Point {
	attr := format.Attributes[posAttr]
	widths := attr.Type.componentBitWidths()
	offset := format.AttributeOffsetPacked(posAttr)
	base := v*stride + offset
	raw := unpackBits(widths, vertexData[base:base+attr.Type.PackedByteStride()])
	return geometry.Point{
		X: params[posAttr].Components[0].unpack(raw[0]),
		Y: params[posAttr].Components[1].unpack(raw[1]),
	}
}

func rangeOf(span VertexAttributeSpan) (min, max float32) {
	if len(span) == 0 {
		return 0, 0
	}
	min, max = span[0], span[0]
	for _, v := range span[1:] {
		min = minFloat(min, v)
		max = maxFloat(max, v)
	}
	return min, max
}

func minFloat(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int { return m.data.vertexCount }

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int { return m.data.triangleCount }

// Format returns the mesh's format.
func (m Mesh) Format() Format { return m.data.format }

// Bounds returns the mesh's position bounds as a geometry.Rect. This
// panics if the mesh has no vertices.
func (m Mesh) Bounds() geometry.Rect {
	i, _ := m.data.format.PositionAttributeIndex()
	if !m.data.hasBounds[i] {
		panic("mesh: Bounds called on an empty Mesh")
	}
	min, max := geometry.Point{X: math.MaxFloat32, Y: math.MaxFloat32}, geometry.Point{X: -math.MaxFloat32, Y: -math.MaxFloat32}
	for v := 0; v < m.data.vertexCount; v++ {
		p := m.VertexPosition(v)
		min, max = min.Min(p), max.Max(p)
	}
	return geometry.Rect{MinVal: min, MaxVal: max}
}

// AttributeBounds returns the cached [min,max] bounds for attribute i
// (only meaningful for Position today), and whether bounds are present.
func (m Mesh) AttributeBounds(i int) (Bounds, bool) {
	return m.data.bounds[i], m.data.hasBounds[i]
}

// VertexAttributeUnpackingParams returns the coding params for attribute
// i. Returns a zero value for an unpacked attribute.
func (m Mesh) VertexAttributeUnpackingParams(i int) AttributeCodingParams {
	return m.data.codingParams[i]
}

// VertexPosition returns the position of vertex v.
func (m Mesh) VertexPosition(v int) geometry.Point {
	if v < 0 || v >= m.data.vertexCount {
		panic("mesh: vertex index out of range")
	}
	i, _ := m.data.format.PositionAttributeIndex()
	x := m.FloatVertexAttribute(v, i, 0)
	y := m.FloatVertexAttribute(v, i, 1)
	return geometry.Point{X: x, Y: y}
}

// FloatVertexAttribute returns the unpacked value of component c of
// attribute i for vertex v.
func (m Mesh) FloatVertexAttribute(v, i, c int) float32 {
	if v < 0 || v >= m.data.vertexCount {
		panic("mesh: vertex index out of range")
	}
	if i < 0 || i >= len(m.data.format.Attributes) {
		panic("mesh: attribute index out of range")
	}
	attr := m.data.format.Attributes[i]
	stride := m.data.format.PackedVertexStride()
	offset := m.data.format.AttributeOffsetPacked(i)
	base := v*stride + offset

	if !attr.Type.IsPacked() {
		return math.Float32frombits(binary.LittleEndian.Uint32(m.data.vertexData[base+4*c:]))
	}
	widths := attr.Type.componentBitWidths()
	raw := unpackBits(widths, m.data.vertexData[base:base+attr.Type.PackedByteStride()])
	return m.data.codingParams[i].Components[c].unpack(raw[c])
}

// PackedIntegersForFloatVertexAttribute returns the raw packed integer
// components for attribute i of vertex v. This panics if attribute i is
// unpacked, since there is no packed integer form to return.
func (m Mesh) PackedIntegersForFloatVertexAttribute(v, i int) []uint32 {
	attr := m.data.format.Attributes[i]
	if !attr.Type.IsPacked() {
		panic("mesh: PackedIntegersForFloatVertexAttribute called on an unpacked attribute")
	}
	stride := m.data.format.PackedVertexStride()
	offset := m.data.format.AttributeOffsetPacked(i)
	base := v*stride + offset
	widths := attr.Type.componentBitWidths()
	return unpackBits(widths, m.data.vertexData[base:base+attr.Type.PackedByteStride()])
}

// TriangleIndices returns the three vertex indices of triangle tri.
func (m Mesh) TriangleIndices(tri int) [3]uint32 {
	if tri < 0 || tri >= m.data.triangleCount {
		panic("mesh: triangle index out of range")
	}
	var out [3]uint32
	for k := 0; k < 3; k++ {
		out[k] = uint32(binary.LittleEndian.Uint16(m.data.indexData[2*(3*tri+k):]))
	}
	return out
}

// GetTriangle returns triangle tri as a geometry.Triangle of its vertex
// positions.
func (m Mesh) GetTriangle(tri int) geometry.Triangle {
	idx := m.TriangleIndices(tri)
	return geometry.Triangle{
		P0: m.VertexPosition(int(idx[0])),
		P1: m.VertexPosition(int(idx[1])),
		P2: m.VertexPosition(int(idx[2])),
	}
}

// RawVertexData returns the packed vertex byte buffer.
func (m Mesh) RawVertexData() []byte { return m.data.vertexData }

// RawIndexData returns the packed (16-bit) index byte buffer.
func (m Mesh) RawIndexData() []byte { return m.data.indexData }
