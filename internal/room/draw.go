package room

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunroom/internal/daylight"
)

// Draw is one renderable item with its world transform.
type Draw struct {
	Name          string
	World         mgl32.Mat4
	Primitive     Primitive
	Size          mgl32.Vec3
	Color         daylight.Color
	Model         string
	CastShadow    bool
	ReceiveShadow bool
}

// ReadyFunc reports whether a model file can be drawn this frame.
type ReadyFunc func(model string) bool

// Flatten walks the graph and returns the draw list. Model draws whose model
// is not ready are left out; their children are still visited.
func Flatten(root *Node, ready ReadyFunc) []Draw {
	var draws []Draw
	root.Walk(mgl32.Ident4(), func(n *Node, world mgl32.Mat4) {
		if n.Primitive != PrimitiveNone {
			draws = append(draws, Draw{
				Name:          n.Name,
				World:         world,
				Primitive:     n.Primitive,
				Size:          n.Size,
				Color:         n.Color,
				CastShadow:    n.CastShadow,
				ReceiveShadow: n.ReceiveShadow,
			})
		}
		if n.Model != "" && ready != nil && ready(n.Model) {
			draws = append(draws, Draw{
				Name:          n.Name,
				World:         world,
				Model:         n.Model,
				CastShadow:    n.CastShadow,
				ReceiveShadow: n.ReceiveShadow,
			})
		}
	})
	return draws
}

// Bounds returns the world-space box around every primitive draw. Models are
// ignored since their extent is unknown until loaded; the primitives enclose
// the room anyway.
func Bounds(draws []Draw) (min, max mgl32.Vec3) {
	first := true
	for _, d := range draws {
		if d.Primitive == PrimitiveNone {
			continue
		}
		for _, c := range corners(d.Primitive, d.Size) {
			p := d.World.Mul4x1(c.Vec4(1)).Vec3()
			if first {
				min, max = p, p
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				if p[i] < min[i] {
					min[i] = p[i]
				}
				if p[i] > max[i] {
					max[i] = p[i]
				}
			}
		}
	}
	return min, max
}

func corners(p Primitive, size mgl32.Vec3) []mgl32.Vec3 {
	hx, hy, hz := size.X()/2, size.Y()/2, size.Z()/2
	if p == PrimitivePlane {
		return []mgl32.Vec3{{-hx, -hy, 0}, {hx, -hy, 0}, {hx, hy, 0}, {-hx, hy, 0}}
	}
	out := make([]mgl32.Vec3, 0, 8)
	for _, x := range []float32{-hx, hx} {
		for _, y := range []float32{-hy, hy} {
			for _, z := range []float32{-hz, hz} {
				out = append(out, mgl32.Vec3{x, y, z})
			}
		}
	}
	return out
}
