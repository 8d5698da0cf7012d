package shadow

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var room = Bounds{
	Min: mgl32.Vec3{-3.05, -1, -3.05},
	Max: mgl32.Vec3{3, 2, 3},
}

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}

func inside(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < -1 || p[i] > 1 {
			return false
		}
	}
	return true
}

// centered reports whether p lies on the light's view axis.
func centered(p mgl32.Vec3) bool {
	return gomath.Abs(float64(p.X())) < 1e-4 && gomath.Abs(float64(p.Y())) < 1e-4
}

func TestBounds(t *testing.T) {
	b := Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 3, 1}}
	if c := b.Center(); c != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Center() = %v", c)
	}
	want := mgl32.Vec3{2, 4, 2}.Len() / 2
	if r := b.Radius(); r != want {
		t.Errorf("Radius() = %v, want %v", r, want)
	}
}

func TestLightMatrixContainsBounds(t *testing.T) {
	lights := []struct {
		name string
		pos  mgl32.Vec3
	}{
		{"morning", mgl32.Vec3{-6, 3, 7}},
		{"noon", mgl32.Vec3{0, 9.7, -2.4}},
		{"zenith", mgl32.Vec3{0, 10, 0}},
		{"night", mgl32.Vec3{2, -8, 5}},
		{"degenerate", mgl32.Vec3{}},
	}

	for _, tt := range lights {
		t.Run(tt.name, func(t *testing.T) {
			m := LightMatrix(tt.pos, room)

			c := project(m, room.Center())
			if !centered(c) {
				t.Errorf("center projects to %v, want the middle of the map", c)
			}

			for _, x := range []float32{room.Min.X(), room.Max.X()} {
				for _, y := range []float32{room.Min.Y(), room.Max.Y()} {
					for _, z := range []float32{room.Min.Z(), room.Max.Z()} {
						corner := mgl32.Vec3{x, y, z}
						if p := project(m, corner); !inside(p) {
							t.Errorf("corner %v projects outside: %v", corner, p)
						}
					}
				}
			}
		})
	}
}

func TestLightMatrixDepthOrder(t *testing.T) {
	lightPos := mgl32.Vec3{0, 10, 0.5}
	m := LightMatrix(lightPos, room)

	high := project(m, mgl32.Vec3{0, 1.5, 0})
	low := project(m, mgl32.Vec3{0, -1, 0})
	if high.Z() >= low.Z() {
		t.Errorf("point nearer the light should have smaller depth: %v vs %v", high.Z(), low.Z())
	}
}

func TestCenteredToleratesRoundingAtZero(t *testing.T) {
	if !centered(mgl32.Vec3{0, 1.3038516e-08, 0.28523648}) {
		t.Error("centered rejected float32 rounding noise")
	}
	if centered(mgl32.Vec3{0.01, 0, 0.5}) {
		t.Error("centered accepted an off-axis point")
	}
}
