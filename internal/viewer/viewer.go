// Package viewer runs the room window: input, time state, lighting and the
// shadowed scene, drawn once per frame.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/sunroom/internal/app"
	"github.com/Faultbox/sunroom/internal/assets"
	"github.com/Faultbox/sunroom/internal/config"
	"github.com/Faultbox/sunroom/internal/daylight"
	"github.com/Faultbox/sunroom/internal/engine/camera"
	"github.com/Faultbox/sunroom/internal/engine/debug"
	"github.com/Faultbox/sunroom/internal/engine/scene"
	"github.com/Faultbox/sunroom/internal/engine/shadow"
	"github.com/Faultbox/sunroom/internal/engine/ui"
	"github.com/Faultbox/sunroom/internal/logger"
	"github.com/Faultbox/sunroom/internal/room"
	"github.com/Faultbox/sunroom/internal/solar"
)

const (
	windowTitle      = "Sunroom"
	notificationTime = 3 * time.Second
	closeTimeout     = 2 * time.Second
)

// Viewer is the running application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	backend *ui.Backend
	camera  *camera.OrbitControls
	loader  *assets.Loader
	scene   *scene.Scene
	capture *debug.ScreenshotCapture
	lang    language.Tag
	printer *message.Printer

	state    *app.State
	location solar.Coordinate
	layout   *room.Node
	lighting app.Lighting
	litAt    time.Time

	notice     string
	noticeTime time.Time

	frameCount int
	fpsTimer   time.Time
}

// New opens the window and prepares the room for the given start time.
func New(cfg *config.Config, start time.Time) (*Viewer, error) {
	lang := daylight.MatchLanguage(cfg.UI.Language)
	v := &Viewer{
		cfg:      cfg,
		lang:     lang,
		log:      logger.Named("viewer"),
		state:    app.NewState(start),
		location: solar.Coordinate{Latitude: cfg.Scene.Latitude, Longitude: cfg.Scene.Longitude},
		layout:   room.Layout(),
		printer:  daylight.Printer(lang),
		capture:  debug.NewScreenshotCapture(cfg.Screenshot.Dir, "sunroom", cfg.Screenshot.Format),
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Time("start", start),
	)

	var err error
	v.backend, err = ui.NewBackend(windowTitle, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	if v.backend.FontPath == "" {
		v.log.Warn("no Hangul font found, Korean labels will not render")
	} else {
		v.log.Debug("loaded font", zap.String("path", v.backend.FontPath))
	}

	v.camera = camera.NewOrbitControls(v.cameraHome(), mgl32.Vec3{}, cfg.Graphics.FOV, cameraOptions(cfg.Camera))

	v.loader = assets.NewLoader(cfg.Assets.ModelDir, logger.Named("assets"))
	v.loader.RequestAll(v.layout.Models())

	sceneCfg := scene.DefaultConfig()
	sceneCfg.Width = int32(cfg.Graphics.Width)
	sceneCfg.Height = int32(cfg.Graphics.Height)
	sceneCfg.ShadowResolution = cfg.Scene.ShadowResolution
	sceneCfg.ShadowsEnabled = cfg.Scene.ShadowsEnabled
	sceneCfg.AmbientIntensity = cfg.Scene.AmbientIntensity
	sceneCfg.SunIntensity = cfg.Scene.SunIntensity
	v.scene, err = scene.New(sceneCfg, v.loader)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	v.relight()
	v.log.Info("viewer initialized")
	return v, nil
}

func cameraOptions(c config.CameraConfig) camera.Options {
	opts := camera.DefaultOptions()
	opts.EnablePan = c.EnablePan
	opts.ScreenSpacePanning = c.ScreenSpacePanning
	opts.EnableDamping = c.EnableDamping
	opts.DampingFactor = c.DampingFactor
	if c.MaxPolarAngle > 0 {
		opts.MaxPolarAngle = c.MaxPolarAngle
	}
	return opts
}

func (v *Viewer) cameraHome() mgl32.Vec3 {
	return mgl32.Vec3(v.cfg.Camera.Position)
}

// Run blocks until the window is closed.
func (v *Viewer) Run() {
	v.fpsTimer = time.Now()
	v.log.Info("starting render loop")
	v.backend.Run(v.frame)
}

func (v *Viewer) frame() {
	_, _, width, height := ui.Viewport()
	if width < 1 || height < 1 {
		return
	}

	in := v.backend.ReadInput()
	v.handleInput(in, height)
	v.camera.Update()

	if !v.state.Now().Equal(v.litAt) {
		v.relight()
	}

	v.scene.Resize(int32(width), int32(height))
	tex := v.scene.Render(v.buildFrame(width / height))
	if in.Screenshot {
		v.screenshot()
	}

	ui.SceneBackground(tex)
	v.drawPanels()
	v.countFrame()
}

func (v *Viewer) handleInput(in ui.Input, viewportHeight float32) {
	if in.ResetCamera {
		v.camera.Reset(v.cameraHome(), mgl32.Vec3{})
	}
	if in.DragX != 0 || in.DragY != 0 {
		v.camera.HandleDrag(in.DragX, in.DragY, viewportHeight)
	}
	if in.PanX != 0 || in.PanY != 0 {
		v.camera.HandlePan(in.PanX, in.PanY, viewportHeight)
	}
	if in.Wheel != 0 {
		v.camera.HandleZoom(in.Wheel)
	}
	if in.Step != 0 {
		v.state.Step(in.Step)
	}
}

// relight recomputes the lighting after the time changed.
func (v *Viewer) relight() {
	now := v.state.Now()
	v.lighting = app.Derive(now, v.location)
	v.litAt = now
	v.backend.SetWindowTitle(windowTitle + " " + v.lighting.Clock.String())
	v.log.Debug("lighting updated",
		zap.String("clock", v.lighting.Clock.String()),
		zap.Stringer("band", v.lighting.Band),
		zap.Bool("sun_up", v.lighting.Angle.AboveHorizon()),
		zap.String("color", v.lighting.Color.Hex()),
		zap.Float64("altitude", v.lighting.Angle.Altitude),
		zap.Float64("azimuth", v.lighting.Angle.Azimuth),
	)
}

func (v *Viewer) buildFrame(aspect float32) scene.Frame {
	draws := room.Flatten(v.layout, v.loader.Ready)
	lo, hi := room.Bounds(draws)
	return scene.Frame{
		Draws: draws,
		Light: scene.Light{
			Position: v.lighting.LightPosition(),
			Color:    v.lighting.Color,
		},
		View:       v.camera.ViewMatrix(),
		Projection: v.camera.ProjectionMatrix(aspect),
		Bounds:     shadow.Bounds{Min: lo, Max: hi},
	}
}

func (v *Viewer) drawPanels() {
	view := ui.ClockView{
		Clock:        v.lighting.Clock.String(),
		Label:        v.lighting.Label.Localized(v.lang),
		TotalMinutes: v.lighting.Clock.TotalMinutes,
	}
	if total, changed := ui.ClockPanel(view, v.printer); changed {
		v.state.SetTotalMinutes(total)
	}

	if v.cfg.UI.ShowFPS {
		ui.FPSOverlay()
	}
	if v.notice != "" && time.Since(v.noticeTime) < notificationTime {
		ui.Notification(v.notice)
	}
}

func (v *Viewer) screenshot() {
	img, err := v.scene.CaptureImage()
	if err != nil {
		v.log.Error("screenshot readback failed", zap.Error(err))
		return
	}
	path, err := v.capture.Capture(img)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path), zap.String("format", v.capture.Format()))
	v.notice = v.printer.Sprintf(daylight.MsgScreenshot, path)
	v.noticeTime = time.Now()
}

func (v *Viewer) countFrame() {
	v.frameCount++
	if time.Since(v.fpsTimer) >= time.Second {
		hits, misses := v.loader.Stats()
		v.log.Debug("fps",
			zap.Int("count", v.frameCount),
			zap.Int("model_hits", hits),
			zap.Int("model_misses", misses),
		)
		v.frameCount = 0
		v.fpsTimer = time.Now()
	}
}

// Close releases GPU resources and waits briefly for model loads to finish.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.loader != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		if err := v.loader.Close(ctx); err != nil {
			v.log.Warn("model loads still running at exit", zap.Error(err))
		}
		cancel()
	}
	if v.scene != nil {
		v.scene.Destroy()
		v.scene = nil
	}
}
