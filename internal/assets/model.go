package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNotFound is returned when a model file does not exist.
var ErrNotFound = fmt.Errorf("model not found: %w", fs.ErrNotExist)

// Mesh is one triangle list with baked node transforms.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
	Color     [4]float32 // Base color factor
}

// Model is a decoded glTF scene ready for GPU upload.
type Model struct {
	Name   string
	Meshes []Mesh
	Min    [3]float32
	Max    [3]float32
}

// TriangleCount returns the number of triangles across all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += len(mesh.Indices) / 3
	}
	return n
}

// Decode opens a .glb or .gltf file and flattens its default scene.
func Decode(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	m, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	m.Name = path
	return m, nil
}

// FromDocument walks the document's default scene and bakes every triangle
// primitive into world space.
func FromDocument(doc *gltf.Document) (*Model, error) {
	m := &Model{}
	if len(doc.Scenes) == 0 {
		return m, nil
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene index %d out of range", sceneIdx)
	}

	for _, n := range doc.Scenes[sceneIdx].Nodes {
		if err := m.addNode(doc, n, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	m.computeBounds()
	return m, nil
}

func (m *Model) addNode(doc *gltf.Document, idx uint32, parent mgl32.Mat4) error {
	if int(idx) >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil {
		if int(*node.Mesh) >= len(doc.Meshes) {
			return fmt.Errorf("mesh index %d out of range", *node.Mesh)
		}
		for _, prim := range doc.Meshes[*node.Mesh].Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			mesh, err := readPrimitive(doc, prim, world)
			if err != nil {
				return fmt.Errorf("node %d: %w", idx, err)
			}
			m.Meshes = append(m.Meshes, mesh)
		}
	}

	for _, child := range node.Children {
		if err := m.addNode(doc, child, world); err != nil {
			return err
		}
	}
	return nil
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	mat := n.MatrixOrDefault()
	if mat != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i, v := range mat {
			out[i] = float32(v)
		}
		return out
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive, world mgl32.Mat4) (Mesh, error) {
	mesh := Mesh{Color: [4]float32{1, 1, 1, 1}}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return mesh, errors.New("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return mesh, fmt.Errorf("reading positions: %w", err)
	}

	if prim.Indices != nil {
		mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return mesh, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	var normals [][3]float32
	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
		if err != nil {
			return mesh, fmt.Errorf("reading normals: %w", err)
		}
	}

	normalMat := world.Mat3().Inv().Transpose()
	mesh.Positions = make([][3]float32, len(positions))
	for i, p := range positions {
		mesh.Positions[i] = world.Mul4x1(mgl32.Vec3(p).Vec4(1)).Vec3()
	}
	if len(normals) == len(positions) {
		mesh.Normals = make([][3]float32, len(normals))
		for i, n := range normals {
			mesh.Normals[i] = normalMat.Mul3x1(mgl32.Vec3(n)).Normalize()
		}
	} else {
		mesh.Normals = faceNormals(mesh.Positions, mesh.Indices)
	}

	if prim.Material != nil && int(*prim.Material) < len(doc.Materials) {
		if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
			c := pbr.BaseColorFactorOrDefault()
			mesh.Color = [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		}
	}
	return mesh, nil
}

// faceNormals accumulates triangle normals per vertex for meshes without NORMAL.
func faceNormals(pos [][3]float32, idx []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(pos))
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		if int(a) >= len(pos) || int(b) >= len(pos) || int(c) >= len(pos) {
			continue
		}
		pa, pb, pc := mgl32.Vec3(pos[a]), mgl32.Vec3(pos[b]), mgl32.Vec3(pos[c])
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	out := make([][3]float32, len(pos))
	for i, n := range acc {
		if n.Len() > 0 {
			out[i] = n.Normalize()
		} else {
			out[i] = [3]float32{0, 1, 0}
		}
	}
	return out
}

func (m *Model) computeBounds() {
	first := true
	for _, mesh := range m.Meshes {
		for _, p := range mesh.Positions {
			if first {
				m.Min, m.Max = p, p
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				m.Min[i] = float32(math.Min(float64(m.Min[i]), float64(p[i])))
				m.Max[i] = float32(math.Max(float64(m.Max[i]), float64(p[i])))
			}
		}
	}
}
