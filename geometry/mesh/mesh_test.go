package mesh

import (
	"math"
	"testing"

	"github.com/google/ink-sub004/geometry"
)

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

var unpackedFormat = Format{
	Attributes:  []Attribute{{Type: Float2Unpacked, Id: Position}},
	IndexFormat: Index32BitUnpacked16BitPacked,
}

func TestCreateVertexPositionAndBoundsRoundTrip(t *testing.T) {
	positions := []geometry.Point{
		{X: -3, Y: 2}, {X: 5, Y: -1}, {X: 0, Y: 9}, {X: 4, Y: 4},
	}
	xs := make(VertexAttributeSpan, len(positions))
	ys := make(VertexAttributeSpan, len(positions))
	for i, p := range positions {
		xs[i], ys[i] = p.X, p.Y
	}

	m, err := Create(unpackedFormat, []VertexAttributeSpan{xs, ys}, []uint32{0, 1, 2, 1, 3, 2}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i, want := range positions {
		got := m.VertexPosition(i)
		if abs32(got.X-want.X) > 1e-5 || abs32(got.Y-want.Y) > 1e-5 {
			t.Errorf("VertexPosition(%d) = %+v, want %+v", i, got, want)
		}
	}

	bounds := m.Bounds()
	for i, p := range positions {
		if p.X < bounds.MinVal.X || p.X > bounds.MaxVal.X || p.Y < bounds.MinVal.Y || p.Y > bounds.MaxVal.Y {
			t.Errorf("vertex %d at %+v not enclosed by Bounds() %+v", i, p, bounds)
		}
	}
	if bounds.MinVal.X != -3 || bounds.MaxVal.X != 5 || bounds.MinVal.Y != -1 || bounds.MaxVal.Y != 9 {
		t.Errorf("Bounds() = %+v, want tight bounds of the four positions", bounds)
	}
}

func TestCreateRejectsMismatchedComponentCount(t *testing.T) {
	_, err := Create(unpackedFormat, []VertexAttributeSpan{{0, 1}}, nil, nil)
	if err == nil {
		t.Fatal("expected an error for a format/component-count mismatch")
	}
	if kind, ok := geometry.KindOf(err); !ok || kind != geometry.InvalidArgument {
		t.Fatalf("got error kind %v, want InvalidArgument", kind)
	}
}

func packedPositionFormat() Format {
	return Format{
		Attributes:  []Attribute{{Type: Float2PackedInOneFloat, Id: Position}},
		IndexFormat: Index32BitUnpacked16BitPacked,
	}
}

// TestAsMeshesPreservesNonNegativeSignedArea builds a MutableMesh whose
// triangles all wind counterclockwise (non-negative signed area) with a
// packed position format, so AsMeshes must quantize and repair rather
// than pack exactly. Every resulting triangle should still have
// non-negative signed area.
func TestAsMeshesPreservesNonNegativeSignedArea(t *testing.T) {
	m := NewMutableMesh(packedPositionFormat())
	grid := 6
	for y := 0; y <= grid; y++ {
		for x := 0; x <= grid; x++ {
			m.AppendVertex(geometry.Point{X: float32(x) * 1.0000003, Y: float32(y) * 0.9999997})
		}
	}
	idx := func(x, y int) uint32 { return uint32(y*(grid+1) + x) }
	for y := 0; y < grid; y++ {
		for x := 0; x < grid; x++ {
			m.AppendTriangleIndices(idx(x, y), idx(x+1, y), idx(x, y+1))
			m.AppendTriangleIndices(idx(x+1, y), idx(x+1, y+1), idx(x, y+1))
		}
	}

	meshes, err := m.AsMeshes(nil, nil)
	if err != nil {
		t.Fatalf("AsMeshes: %v", err)
	}

	for mi, out := range meshes {
		for ti := 0; ti < out.TriangleCount(); ti++ {
			if area := out.GetTriangle(ti).SignedArea(); area < 0 {
				t.Errorf("mesh %d triangle %d has signed area %v, want >= 0", mi, ti, area)
			}
		}
	}
}

func TestAsMeshesOmitsRequestedAttribute(t *testing.T) {
	format := Format{
		Attributes: []Attribute{
			{Type: Float2Unpacked, Id: Position},
			{Type: Float1Unpacked, Id: OpacityShift},
		},
		IndexFormat: Index32BitUnpacked16BitPacked,
	}
	m := NewMutableMesh(format)
	v0 := m.AppendVertex(geometry.Point{X: 0, Y: 0})
	v1 := m.AppendVertex(geometry.Point{X: 1, Y: 0})
	v2 := m.AppendVertex(geometry.Point{X: 0, Y: 1})
	m.AppendTriangleIndices(uint32(v0), uint32(v1), uint32(v2))

	meshes, err := m.AsMeshes(nil, []AttributeId{OpacityShift})
	if err != nil {
		t.Fatalf("AsMeshes: %v", err)
	}
	if got, want := len(meshes[0].Format().Attributes), 1; got != want {
		t.Errorf("output format has %d attributes, want %d", got, want)
	}
}

// TestCreatePackedPositionPrecision checks that a packed position
// round-trips through quantization to within range/2^bits of the input.
func TestCreatePackedPositionPrecision(t *testing.T) {
	positions := []geometry.Point{
		{X: -100, Y: -100}, {X: 37.5, Y: -12.25}, {X: 100, Y: 100},
	}
	xs := make(VertexAttributeSpan, len(positions))
	ys := make(VertexAttributeSpan, len(positions))
	for i, p := range positions {
		xs[i], ys[i] = p.X, p.Y
	}
	m, err := Create(packedPositionFormat(), []VertexAttributeSpan{xs, ys}, []uint32{0, 1, 2}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Float2PackedInOneFloat gives each component 16 bits over the
	// observed range of 200.
	step := float32(200) / 65535
	for i, want := range positions {
		got := m.VertexPosition(i)
		if abs32(got.X-want.X) > step || abs32(got.Y-want.Y) > step {
			t.Errorf("VertexPosition(%d) = %+v, want within %v of %+v", i, got, step, want)
		}
	}
}

func TestCreateFromQuantizedDataRoundTrip(t *testing.T) {
	format := packedPositionFormat()
	params := []AttributeCodingParams{{Components: []CodingParams{
		{Offset: -5, Scale: 0.25},
		{Offset: 0, Scale: 0.5},
	}}}
	xPacked := []uint32{0, 40, 100}
	yPacked := []uint32{2, 0, 60}

	m, err := CreateFromQuantizedData(format, [][]uint32{xPacked, yPacked}, []uint32{0, 1, 2}, params)
	if err != nil {
		t.Fatalf("CreateFromQuantizedData: %v", err)
	}
	for i := range xPacked {
		wantX := -5 + 0.25*float32(xPacked[i])
		wantY := 0.5 * float32(yPacked[i])
		got := m.VertexPosition(i)
		if abs32(got.X-wantX) > 1e-6 || abs32(got.Y-wantY) > 1e-6 {
			t.Errorf("VertexPosition(%d) = %+v, want (%v, %v)", i, got, wantX, wantY)
		}
		raw := m.PackedIntegersForFloatVertexAttribute(i, 0)
		if raw[0] != xPacked[i] || raw[1] != yPacked[i] {
			t.Errorf("PackedIntegersForFloatVertexAttribute(%d) = %v, want [%d %d]", i, raw, xPacked[i], yPacked[i])
		}
	}
}

func TestCreateFromQuantizedDataRejectsUnpackedAttribute(t *testing.T) {
	_, err := CreateFromQuantizedData(unpackedFormat, [][]uint32{{}, {}}, nil, []AttributeCodingParams{{}})
	if err == nil {
		t.Fatal("expected an error for an unpacked attribute")
	}
	if kind, ok := geometry.KindOf(err); !ok || kind != geometry.InvalidArgument {
		t.Fatalf("got error kind %v, want InvalidArgument", kind)
	}
}

func TestCreateRejectsNonFiniteValues(t *testing.T) {
	inf := float32(math.Inf(1))
	_, err := Create(unpackedFormat, []VertexAttributeSpan{{0, inf}, {0, 1}}, nil, nil)
	if err == nil {
		t.Fatal("expected an error for a non-finite value")
	}
	if kind, ok := geometry.KindOf(err); !ok || kind != geometry.FailedPrecondition {
		t.Fatalf("got error kind %v, want FailedPrecondition", kind)
	}
}

func TestCreateRejectsOutOfRangeIndex(t *testing.T) {
	_, err := Create(unpackedFormat, []VertexAttributeSpan{{0, 1}, {0, 1}}, []uint32{0, 1, 2}, nil)
	if err == nil {
		t.Fatal("expected an error for an out-of-range triangle index")
	}
	if kind, ok := geometry.KindOf(err); !ok || kind != geometry.InvalidArgument {
		t.Fatalf("got error kind %v, want InvalidArgument", kind)
	}
}

func TestAsMeshesRejectsOmittingPosition(t *testing.T) {
	m := NewMutableMesh(unpackedFormat)
	_, err := m.AsMeshes(nil, []AttributeId{Position})
	if err == nil {
		t.Fatal("expected an error omitting Position")
	}
	if kind, ok := geometry.KindOf(err); !ok || kind != geometry.InvalidArgument {
		t.Fatalf("got error kind %v, want InvalidArgument", kind)
	}
}
