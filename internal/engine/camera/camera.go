// Package camera provides the orbit camera used to view the room.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

// Options configures orbit behavior.
type Options struct {
	EnablePan          bool
	ScreenSpacePanning bool
	MinPolarAngle      float32 // Radians from +Y
	MaxPolarAngle      float32
	EnableDamping      bool
	DampingFactor      float32
	MinDistance        float32
	MaxDistance        float32

	// Sensitivity
	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
}

// DefaultOptions returns the room's orbit settings.
func DefaultOptions() Options {
	return Options{
		EnablePan:          false,
		ScreenSpacePanning: false,
		MinPolarAngle:      0,
		MaxPolarAngle:      gomath.Pi / 2.5,
		EnableDamping:      true,
		DampingFactor:      0.05,
		MinDistance:        2,
		MaxDistance:        40,
		RotateSpeed:        1,
		ZoomSpeed:          1,
		PanSpeed:           1,
	}
}

// OrbitControls orbits a perspective camera around a target point.
// Input handlers accumulate deltas; Update applies them once per frame.
type OrbitControls struct {
	Options

	Target mgl32.Vec3
	FOV    float32 // Vertical field of view in degrees
	Up     mgl32.Vec3

	// Spherical coordinates relative to Target
	radius float32
	theta  float32 // Azimuth around +Y
	phi    float32 // Polar angle from +Y

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  mgl32.Vec3
}

// NewOrbitControls places the camera at position looking at target.
func NewOrbitControls(position, target mgl32.Vec3, fov float32, opts Options) *OrbitControls {
	c := &OrbitControls{
		Options: opts,
		Target:  target,
		FOV:     fov,
		Up:      mgl32.Vec3{0, 1, 0},
		scale:   1,
	}
	c.SetPosition(position)
	return c
}

// SetPosition moves the camera, keeping the target.
func (c *OrbitControls) SetPosition(position mgl32.Vec3) {
	offset := position.Sub(c.Target)
	c.radius = offset.Len()
	if c.radius < epsilon {
		c.radius = epsilon
		c.theta, c.phi = 0, 0
		return
	}
	c.theta = float32(gomath.Atan2(float64(offset.X()), float64(offset.Z())))
	c.phi = float32(gomath.Acos(float64(clamp(offset.Y()/c.radius, -1, 1))))
	c.clampPolar()
	c.clampDistance()
}

// Position returns the camera position in world space.
func (c *OrbitControls) Position() mgl32.Vec3 {
	sinPhi := float32(gomath.Sin(float64(c.phi)))
	offset := mgl32.Vec3{
		c.radius * sinPhi * float32(gomath.Sin(float64(c.theta))),
		c.radius * float32(gomath.Cos(float64(c.phi))),
		c.radius * sinPhi * float32(gomath.Cos(float64(c.theta))),
	}
	return c.Target.Add(offset)
}

// Distance returns the distance from the camera to the target.
func (c *OrbitControls) Distance() float32 { return c.radius }

// PolarAngle returns the angle from +Y in radians.
func (c *OrbitControls) PolarAngle() float32 { return c.phi }

// AzimuthAngle returns the angle around +Y in radians.
func (c *OrbitControls) AzimuthAngle() float32 { return c.theta }

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitControls) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitControls) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, 0.1, 100)
}

// HandleDrag rotates by a mouse drag of deltaX, deltaY pixels in a viewport
// of the given height. A full-height drag turns the camera one revolution.
func (c *OrbitControls) HandleDrag(deltaX, deltaY, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	c.Rotate(2*gomath.Pi*deltaX/viewportHeight*c.RotateSpeed,
		2*gomath.Pi*deltaY/viewportHeight*c.RotateSpeed)
}

// Rotate queues a rotation: left turns around +Y, up tilts toward the pole.
func (c *OrbitControls) Rotate(left, up float32) {
	c.deltaTheta -= left
	c.deltaPhi -= up
}

// HandleZoom queues a dolly from a scroll wheel delta; positive moves closer.
func (c *OrbitControls) HandleZoom(wheel float32) {
	if wheel == 0 {
		return
	}
	step := float32(gomath.Pow(0.95, float64(c.ZoomSpeed*abs32(wheel))))
	if wheel > 0 {
		c.scale *= step
	} else {
		c.scale /= step
	}
}

// HandlePan queues a pan by a mouse drag in pixels. Ignored unless EnablePan.
func (c *OrbitControls) HandlePan(deltaX, deltaY, viewportHeight float32) {
	if !c.EnablePan || viewportHeight <= 0 {
		return
	}
	targetDistance := c.radius * float32(gomath.Tan(float64(mgl32.DegToRad(c.FOV)/2)))
	left := 2 * deltaX * targetDistance / viewportHeight * c.PanSpeed
	up := 2 * deltaY * targetDistance / viewportHeight * c.PanSpeed

	view := c.ViewMatrix().Inv()
	right := view.Col(0).Vec3()
	var upDir mgl32.Vec3
	if c.ScreenSpacePanning {
		upDir = view.Col(1).Vec3()
	} else {
		upDir = c.Up.Cross(right)
	}
	c.panOffset = c.panOffset.Sub(right.Mul(left)).Add(upDir.Mul(up))
}

// Update applies queued input. With damping on, a fraction of the pending
// motion is applied each call and the rest decays. Returns true if the
// camera moved.
func (c *OrbitControls) Update() bool {
	f := float32(1)
	if c.EnableDamping {
		f = c.DampingFactor
	}

	before := c.Position()
	beforeTarget := c.Target

	c.theta += c.deltaTheta * f
	c.phi += c.deltaPhi * f
	c.clampPolar()

	c.radius *= c.scale
	c.clampDistance()

	c.Target = c.Target.Add(c.panOffset.Mul(f))

	if c.EnableDamping {
		c.deltaTheta *= 1 - f
		c.deltaPhi *= 1 - f
		c.panOffset = c.panOffset.Mul(1 - f)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1

	return !before.ApproxEqualThreshold(c.Position(), epsilon) ||
		!beforeTarget.ApproxEqualThreshold(c.Target, epsilon)
}

// Reset moves the camera back to position and drops pending motion.
func (c *OrbitControls) Reset(position, target mgl32.Vec3) {
	c.Target = target
	c.deltaTheta, c.deltaPhi = 0, 0
	c.panOffset = mgl32.Vec3{}
	c.scale = 1
	c.SetPosition(position)
}

func (c *OrbitControls) clampPolar() {
	lo := gomath.Max(float64(c.MinPolarAngle), epsilon)
	hi := gomath.Pi - epsilon
	if c.MaxPolarAngle > 0 && float64(c.MaxPolarAngle) < hi {
		hi = float64(c.MaxPolarAngle)
	}
	c.phi = clamp(c.phi, float32(lo), float32(hi))
}

func (c *OrbitControls) clampDistance() {
	if c.MinDistance > 0 && c.radius < c.MinDistance {
		c.radius = c.MinDistance
	}
	if c.MaxDistance > 0 && c.radius > c.MaxDistance {
		c.radius = c.MaxDistance
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
