package scene

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Geometry is an indexed triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// UnitPlane is a 1x1 quad in the XY plane facing +Z.
func UnitPlane() Geometry {
	var g Geometry
	g.addQuad(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, 0)
	return g
}

// UnitBox is a 1x1x1 cube centered at the origin with outward normals.
func UnitBox() Geometry {
	var g Geometry
	faces := []struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	for _, f := range faces {
		g.addQuad(f.n, f.u, f.v, 0.5)
	}
	return g
}

// addQuad appends a counter-clockwise quad seen from n, offset from the
// origin by n*depth. u x v must equal n.
func (g *Geometry) addQuad(n, u, v mgl32.Vec3, depth float32) {
	base := uint32(len(g.Vertices))
	center := n.Mul(depth)
	for _, c := range [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}} {
		p := center.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
		g.Vertices = append(g.Vertices, Vertex{Position: p, Normal: n})
	}
	g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
}
