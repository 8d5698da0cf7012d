// Package room describes the fixed room layout as a node graph and flattens it
// into a draw list for the renderer.
package room

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunroom/internal/daylight"
)

// Primitive is a built-in shape drawn without a model file.
type Primitive int

const (
	PrimitiveNone Primitive = iota
	PrimitivePlane
	PrimitiveBox
)

// Node is a transform in the room graph. A node may carry a primitive shape,
// a model file, both or neither (a pure group).
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3

	Primitive Primitive
	Size      mgl32.Vec3 // Plane uses X and Y; box uses all three
	Color     daylight.Color

	Model string // File name relative to the model directory

	CastShadow    bool
	ReceiveShadow bool

	Children []*Node
}

// Group returns an empty node at pos with a uniform scale.
func Group(name string, pos mgl32.Vec3, scale float32, children ...*Node) *Node {
	return &Node{
		Name:     name,
		Position: pos,
		Scale:    mgl32.Vec3{scale, scale, scale},
		Children: children,
	}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Local returns the node's transform relative to its parent: T * Rx * Ry * Rz * S.
func (n *Node) Local() mgl32.Mat4 {
	scale := n.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	m := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(n.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(n.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))
	return m.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// Walk visits n and its descendants depth-first with their world transforms.
func (n *Node) Walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	world := parent.Mul4(n.Local())
	fn(n, world)
	for _, c := range n.Children {
		c.Walk(world, fn)
	}
}

// Models returns the distinct model files referenced under n, in first-seen order.
func (n *Node) Models() []string {
	var out []string
	seen := make(map[string]bool)
	n.Walk(mgl32.Ident4(), func(node *Node, _ mgl32.Mat4) {
		if node.Model != "" && !seen[node.Model] {
			seen[node.Model] = true
			out = append(out, node.Model)
		}
	})
	return out
}
