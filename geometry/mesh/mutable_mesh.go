package mesh

import (
	"github.com/google/ink-sub004/geometry"
)

// MutableMesh is an append-only, unpacked mesh builder. It is move-only at
// the API level: copying a MutableMesh value by assignment still copies
// the underlying slices' headers but callers should treat that as an
// error-prone accident to avoid; use Clone for an explicit, intentional
// deep copy.
type MutableMesh struct {
	format     Format
	components []VertexAttributeSpan // one per component, across all attributes
	triangles  []uint32              // 3 per triangle
}

// NewMutableMesh constructs an empty MutableMesh with the given format.
func NewMutableMesh(format Format) *MutableMesh {
	m := &MutableMesh{}
	m.Reset(format)
	return m
}

// Format returns the mesh's format.
func (m *MutableMesh) Format() Format { return m.format }

// Clear removes all vertices and triangles without changing the format.
func (m *MutableMesh) Clear() {
	for i := range m.components {
		m.components[i] = m.components[i][:0]
	}
	m.triangles = m.triangles[:0]
}

// Reset replaces the format and clears all vertices and triangles.
func (m *MutableMesh) Reset(format Format) {
	total := 0
	for _, a := range format.Attributes {
		total += a.Type.ComponentCount()
	}
	m.format = format
	m.components = make([]VertexAttributeSpan, total)
	m.triangles = nil
}

// Clone returns a deep copy of m.
func (m *MutableMesh) Clone() *MutableMesh {
	out := &MutableMesh{
		format:     m.format,
		components: make([]VertexAttributeSpan, len(m.components)),
		triangles:  append([]uint32(nil), m.triangles...),
	}
	for i, c := range m.components {
		out.components[i] = append(VertexAttributeSpan(nil), c...)
	}
	return out
}

// VertexCount returns the number of vertices appended so far.
func (m *MutableMesh) VertexCount() int {
	if len(m.components) == 0 {
		return 0
	}
	return len(m.components[0])
}

// TriangleCount returns the number of triangles appended so far.
func (m *MutableMesh) TriangleCount() int { return len(m.triangles) / 3 }

// positionComponentIndices returns the index into m.components of the
// Position attribute's x and y components.
func (m *MutableMesh) positionComponentIndices() (int, int) {
	i, ok := m.format.PositionAttributeIndex()
	if !ok {
		panic("mesh: MutableMesh format has no Position attribute")
	}
	offset := 0
	for j := 0; j < i; j++ {
		offset += m.format.Attributes[j].Type.ComponentCount()
	}
	return offset, offset + 1
}

// AppendVertex appends a new vertex at pos, zero-initializing every other
// attribute, and returns its index.
func (m *MutableMesh) AppendVertex(pos geometry.Point) int {
	v := m.VertexCount()
	xi, yi := m.positionComponentIndices()
	for i := range m.components {
		switch i {
		case xi:
			m.components[i] = append(m.components[i], pos.X)
		case yi:
			m.components[i] = append(m.components[i], pos.Y)
		default:
			m.components[i] = append(m.components[i], 0)
		}
	}
	return v
}

// SetVertexPosition overwrites the position of an already-appended vertex.
// This panics if v is out of range.
func (m *MutableMesh) SetVertexPosition(v int, pos geometry.Point) {
	m.checkVertex(v)
	xi, yi := m.positionComponentIndices()
	m.components[xi][v] = pos.X
	m.components[yi][v] = pos.Y
}

// VertexPosition returns the position of vertex v. This panics if v is
// out of range.
func (m *MutableMesh) VertexPosition(v int) geometry.Point {
	m.checkVertex(v)
	xi, yi := m.positionComponentIndices()
	return geometry.Point{X: m.components[xi][v], Y: m.components[yi][v]}
}

// SetFloatVertexAttribute overwrites the components of attribute i for
// vertex v. This panics if v or i is out of range, or if values has the
// wrong component count for attribute i.
func (m *MutableMesh) SetFloatVertexAttribute(v, i int, values []float32) {
	m.checkVertex(v)
	if i < 0 || i >= len(m.format.Attributes) {
		panic("mesh: attribute index out of range")
	}
	attr := m.format.Attributes[i]
	if len(values) != attr.Type.ComponentCount() {
		panic("mesh: wrong component count for attribute")
	}
	base := 0
	for j := 0; j < i; j++ {
		base += m.format.Attributes[j].Type.ComponentCount()
	}
	for c, val := range values {
		m.components[base+c][v] = val
	}
}

// FloatVertexAttribute returns the components of attribute i for vertex
// v.
func (m *MutableMesh) FloatVertexAttribute(v, i int) []float32 {
	m.checkVertex(v)
	attr := m.format.Attributes[i]
	base := 0
	for j := 0; j < i; j++ {
		base += m.format.Attributes[j].Type.ComponentCount()
	}
	out := make([]float32, attr.Type.ComponentCount())
	for c := range out {
		out[c] = m.components[base+c][v]
	}
	return out
}

func (m *MutableMesh) checkVertex(v int) {
	if v < 0 || v >= m.VertexCount() {
		panic("mesh: vertex index out of range")
	}
}

func (m *MutableMesh) checkTriangle(t int) {
	if t < 0 || t >= m.TriangleCount() {
		panic("mesh: triangle index out of range")
	}
}

// AppendTriangleIndices appends a new triangle.
func (m *MutableMesh) AppendTriangleIndices(i0, i1, i2 uint32) {
	m.triangles = append(m.triangles, i0, i1, i2)
}

// SetTriangleIndices overwrites the vertex indices of an existing
// triangle. This panics if t is out of range.
func (m *MutableMesh) SetTriangleIndices(t int, i0, i1, i2 uint32) {
	m.checkTriangle(t)
	m.triangles[3*t] = i0
	m.triangles[3*t+1] = i1
	m.triangles[3*t+2] = i2
}

// InsertTriangleIndices inserts a new triangle at position t, shifting
// subsequent triangles back. This panics if t is out of [0, TriangleCount()].
func (m *MutableMesh) InsertTriangleIndices(t int, i0, i1, i2 uint32) {
	if t < 0 || t > m.TriangleCount() {
		panic("mesh: triangle index out of range")
	}
	tail := append([]uint32(nil), m.triangles[3*t:]...)
	m.triangles = append(m.triangles[:3*t], i0, i1, i2)
	m.triangles = append(m.triangles, tail...)
}

// Resize grows or shrinks the mesh to exactly vertexCount vertices and
// triangleCount triangles, zero-filling any new vertices (at the origin)
// or triangles (index 0,0,0).
func (m *MutableMesh) Resize(vertexCount, triangleCount int) {
	for len(m.components) > 0 && len(m.components[0]) < vertexCount {
		m.AppendVertex(geometry.Point{})
	}
	if len(m.components) > 0 {
		for i := range m.components {
			m.components[i] = m.components[i][:vertexCount]
		}
	}
	for m.TriangleCount() < triangleCount {
		m.AppendTriangleIndices(0, 0, 0)
	}
	m.triangles = m.triangles[:3*triangleCount]
}

// GetTriangle returns triangle t as a geometry.Triangle of vertex
// positions.
func (m *MutableMesh) GetTriangle(t int) geometry.Triangle {
	m.checkTriangle(t)
	return geometry.Triangle{
		P0: m.VertexPosition(int(m.triangles[3*t])),
		P1: m.VertexPosition(int(m.triangles[3*t+1])),
		P2: m.VertexPosition(int(m.triangles[3*t+2])),
	}
}

// ValidateTriangles reports an error if any triangle references an
// out-of-range vertex, or references the same vertex more than once.
func (m *MutableMesh) ValidateTriangles() error {
	n := m.VertexCount()
	for t := 0; t < m.TriangleCount(); t++ {
		i0, i1, i2 := m.triangles[3*t], m.triangles[3*t+1], m.triangles[3*t+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			return geometry.NewError(geometry.InvalidArgument, "triangle %d references an out-of-range vertex", t)
		}
		if i0 == i1 || i1 == i2 || i0 == i2 {
			return geometry.NewError(geometry.InvalidArgument, "triangle %d references a vertex more than once", t)
		}
	}
	return nil
}
