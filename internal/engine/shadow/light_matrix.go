package shadow

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned box around the shadowed geometry.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the center point of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the half-diagonal of the box.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// LightMatrix computes the view-projection of a directional light placed at
// lightPos and aimed at the origin. The orthographic volume is fitted around
// bounds so every box corner lands inside the depth map.
func LightMatrix(lightPos mgl32.Vec3, bounds Bounds) mgl32.Mat4 {
	dir := lightPos
	if dir.Len() < 1e-6 {
		dir = mgl32.Vec3{0, 1, 0}
	}
	dir = dir.Normalize()

	center := bounds.Center()
	radius := bounds.Radius()
	if radius < 1e-3 {
		radius = 1
	}

	// Far enough back that the whole box sits in front of the near plane
	lightDistance := radius * 2
	eye := center.Add(dir.Mul(lightDistance))

	up := mgl32.Vec3{0, 1, 0}
	if gomath.Abs(float64(dir.Y())) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(eye, center, up)

	padding := radius * 0.1
	halfSize := radius + padding
	near := float32(0.1)
	far := lightDistance + radius + padding

	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)
	return proj.Mul4(view)
}
