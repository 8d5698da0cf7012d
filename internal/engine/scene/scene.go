// Package scene renders the room draw list with a shadowed directional sun
// into an offscreen texture.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunroom/internal/assets"
	"github.com/Faultbox/sunroom/internal/engine/framebuffer"
	"github.com/Faultbox/sunroom/internal/engine/scene/shaders"
	"github.com/Faultbox/sunroom/internal/engine/shader"
	"github.com/Faultbox/sunroom/internal/engine/shadow"
	"github.com/Faultbox/sunroom/internal/room"
)

// Config contains scene configuration options.
type Config struct {
	Width            int32
	Height           int32
	ShadowResolution int32
	ShadowsEnabled   bool
	AmbientIntensity float32
	SunIntensity     float32
	Background       [3]float32
}

// DefaultConfig returns the room's rendering defaults.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		ShadowResolution: shadow.DefaultResolution,
		ShadowsEnabled:   true,
		AmbientIntensity: 0.4,
		SunIntensity:     1.2,
		Background:       [3]float32{0.1, 0.1, 0.12},
	}
}

// Light is the sun for one frame.
type Light struct {
	Position mgl32.Vec3 // Placed here and aimed at the origin
	Color    [3]float32
}

// Frame is everything needed to draw one image.
type Frame struct {
	Draws      []room.Draw
	Light      Light
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Bounds     shadow.Bounds
}

// ModelSource hands out decoded models by file name.
type ModelSource interface {
	Get(name string) (*assets.Model, assets.State)
}

// Scene owns the GPU resources for the room.
type Scene struct {
	config Config
	models ModelSource

	framebuffer *framebuffer.Framebuffer
	shadowMap   *shadow.Map

	shadowProgram *shader.Program
	roomProgram   *shader.Program

	plane *gpuMesh
	box   *gpuMesh

	uploaded      map[string]*gpuModel
	lightViewProj mgl32.Mat4
}

// New creates the scene. Must be called on the GL thread.
func New(cfg Config, models ModelSource) (*Scene, error) {
	s := &Scene{
		config:   cfg,
		models:   models,
		uploaded: make(map[string]*gpuModel),
	}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	if cfg.ShadowsEnabled {
		s.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			s.Destroy()
			return nil, fmt.Errorf("creating shadow map: %w", err)
		}
	}

	s.shadowProgram, err = shader.New("shadow", shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		s.Destroy()
		return nil, err
	}
	s.roomProgram, err = shader.New("room", shaders.RoomVertexShader, shaders.RoomFragmentShader)
	if err != nil {
		s.Destroy()
		return nil, err
	}

	s.plane = uploadGeometry(UnitPlane())
	s.box = uploadGeometry(UnitBox())
	return s, nil
}

// Render draws the frame and returns the color texture.
func (s *Scene) Render(f Frame) uint32 {
	shadows := s.shadowMap != nil
	if shadows {
		s.lightViewProj = shadow.LightMatrix(f.Light.Position, f.Bounds)
		s.renderShadowPass(f.Draws)
	}

	restore := s.framebuffer.BindWithViewport()
	defer restore()

	s.framebuffer.Clear(s.config.Background)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	p := s.roomProgram
	p.Use()
	p.SetMat4("uViewProj", f.Projection.Mul4(f.View))
	p.SetMat4("uLightViewProj", s.lightViewProj)
	p.SetVec3("uLightPos", f.Light.Position)
	p.SetVec3("uLightColor", f.Light.Color)
	p.SetFloat("uSunIntensity", s.config.SunIntensity)
	p.SetFloat("uAmbientIntensity", s.config.AmbientIntensity)
	p.SetBool("uShadowsEnabled", shadows)
	if s.shadowMap != nil {
		s.shadowMap.BindTexture(gl.TEXTURE0)
	}
	p.SetInt("uShadowMap", 0)

	for _, d := range f.Draws {
		model := s.modelMatrix(d)
		p.SetMat4("uModel", model)
		p.SetMat3("uNormalMatrix", model.Mat3().Inv().Transpose())
		p.SetBool("uReceiveShadow", d.ReceiveShadow)
		for _, mesh := range s.meshes(d) {
			color := mesh.color
			if d.Primitive != room.PrimitiveNone {
				color = [4]float32{d.Color[0], d.Color[1], d.Color[2], 1}
			}
			p.SetVec4("uBaseColor", color)
			mesh.draw()
		}
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.CULL_FACE)
	return s.framebuffer.ColorTexture()
}

func (s *Scene) renderShadowPass(draws []room.Draw) {
	s.shadowMap.Bind()
	s.shadowProgram.Use()
	s.shadowProgram.SetMat4("uLightViewProj", s.lightViewProj)

	for _, d := range draws {
		if !d.CastShadow {
			continue
		}
		s.shadowProgram.SetMat4("uModel", s.modelMatrix(d))
		for _, mesh := range s.meshes(d) {
			mesh.draw()
		}
	}

	gl.BindVertexArray(0)
	s.shadowMap.Unbind()
}

// modelMatrix folds the primitive size into the draw's world transform.
func (s *Scene) modelMatrix(d room.Draw) mgl32.Mat4 {
	switch d.Primitive {
	case room.PrimitivePlane:
		return d.World.Mul4(mgl32.Scale3D(d.Size.X(), d.Size.Y(), 1))
	case room.PrimitiveBox:
		return d.World.Mul4(mgl32.Scale3D(d.Size.X(), d.Size.Y(), d.Size.Z()))
	default:
		return d.World
	}
}

// meshes returns the GPU meshes for a draw, uploading ready models on first use.
func (s *Scene) meshes(d room.Draw) []*gpuMesh {
	switch d.Primitive {
	case room.PrimitivePlane:
		return []*gpuMesh{s.plane}
	case room.PrimitiveBox:
		return []*gpuMesh{s.box}
	}
	if d.Model == "" || s.models == nil {
		return nil
	}
	if m, ok := s.uploaded[d.Model]; ok {
		return m.meshes
	}
	model, st := s.models.Get(d.Model)
	if st != assets.StateReady || model == nil {
		return nil
	}
	m := uploadModel(model)
	s.uploaded[d.Model] = m
	return m.meshes
}

// Resize updates the render target dimensions.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

// CaptureImage reads back the last rendered frame.
func (s *Scene) CaptureImage() (*image.RGBA, error) {
	return s.framebuffer.Capture()
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	for name, m := range s.uploaded {
		m.destroy()
		delete(s.uploaded, name)
	}
	if s.plane != nil {
		s.plane.destroy()
	}
	if s.box != nil {
		s.box.destroy()
	}
	if s.roomProgram != nil {
		s.roomProgram.Delete()
	}
	if s.shadowProgram != nil {
		s.shadowProgram.Delete()
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
