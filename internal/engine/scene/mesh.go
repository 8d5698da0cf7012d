package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/sunroom/internal/assets"
)

// gpuMesh is an uploaded indexed triangle list.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	color      [4]float32
}

// gpuModel holds the uploaded meshes of one model file.
type gpuModel struct {
	meshes []*gpuMesh
}

func uploadGeometry(g Geometry) *gpuMesh {
	m := &gpuMesh{color: [4]float32{1, 1, 1, 1}}
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*vertexSize, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	m.indexCount = int32(len(g.Indices))
	gl.BindVertexArray(0)
	return m
}

// geometryFromMesh interleaves a decoded mesh.
func geometryFromMesh(mesh assets.Mesh) Geometry {
	g := Geometry{
		Vertices: make([]Vertex, len(mesh.Positions)),
		Indices:  mesh.Indices,
	}
	for i, p := range mesh.Positions {
		g.Vertices[i].Position = p
		if i < len(mesh.Normals) {
			g.Vertices[i].Normal = mesh.Normals[i]
		} else {
			g.Vertices[i].Normal = [3]float32{0, 1, 0}
		}
	}
	return g
}

func uploadModel(model *assets.Model) *gpuModel {
	out := &gpuModel{}
	for _, mesh := range model.Meshes {
		m := uploadGeometry(geometryFromMesh(mesh))
		m.color = mesh.Color
		out.meshes = append(out.meshes, m)
	}
	return out
}

func (m *gpuMesh) draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

func (m *gpuMesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

func (m *gpuModel) destroy() {
	for _, mesh := range m.meshes {
		mesh.destroy()
	}
	m.meshes = nil
}
