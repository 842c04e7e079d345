package main

// attributeTypeSpec is the declarative source of truth for one
// mesh.AttributeType constant. PackedByteStride is 0 for an unpacked type.
type attributeTypeSpec struct {
	Name             string
	ComponentCount   int
	PackedByteStride int
}

// attributeTypes enumerates mesh.AttributeType in declaration order. The
// generated dispatch methods (String, ComponentCount, packedByteStride)
// all switch over this same list, so adding a new packed layout means
// editing one entry here instead of three parallel switches.
var attributeTypes = []attributeTypeSpec{
	{Name: "Float1Unpacked", ComponentCount: 1, PackedByteStride: 0},
	{Name: "Float2Unpacked", ComponentCount: 2, PackedByteStride: 0},
	{Name: "Float3Unpacked", ComponentCount: 3, PackedByteStride: 0},
	{Name: "Float4Unpacked", ComponentCount: 4, PackedByteStride: 0},
	{Name: "Float2PackedInOneFloat", ComponentCount: 2, PackedByteStride: 4},
	{Name: "Float3PackedInOneFloat", ComponentCount: 3, PackedByteStride: 4},
	{Name: "Float3PackedInTwoFloats", ComponentCount: 3, PackedByteStride: 8},
	{Name: "Float4PackedInOneFloat", ComponentCount: 4, PackedByteStride: 4},
	{Name: "Float4PackedInTwoFloats", ComponentCount: 4, PackedByteStride: 8},
	{Name: "Float4PackedInThreeFloats", ComponentCount: 4, PackedByteStride: 12},
}
