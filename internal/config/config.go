// Package config handles application configuration loading and management.
package config

import gomath "math"

// Config holds all application settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Scene      SceneConfig      `yaml:"scene"`
	Camera     CameraConfig     `yaml:"camera"`
	Assets     AssetsConfig     `yaml:"assets"`
	UI         UIConfig         `yaml:"ui"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FOV    float32 `yaml:"fov"` // Vertical field of view in degrees
}

// SceneConfig holds the lighting setup of the room.
type SceneConfig struct {
	Latitude         float64 `yaml:"latitude"`
	Longitude        float64 `yaml:"longitude"`
	AmbientIntensity float32 `yaml:"ambient_intensity"`
	SunIntensity     float32 `yaml:"sun_intensity"`
	ShadowResolution int32   `yaml:"shadow_resolution"`
	ShadowsEnabled   bool    `yaml:"shadows_enabled"`
}

// CameraConfig holds orbit control options.
type CameraConfig struct {
	Position           [3]float32 `yaml:"position"`
	EnablePan          bool       `yaml:"enable_pan"`
	MaxPolarAngle      float32    `yaml:"max_polar_angle"` // Radians from the up axis
	EnableDamping      bool       `yaml:"enable_damping"`
	DampingFactor      float32    `yaml:"damping_factor"`
	ScreenSpacePanning bool       `yaml:"screen_space_panning"`
}

// AssetsConfig holds model file locations.
type AssetsConfig struct {
	ModelDir string `yaml:"model_dir"`
}

// UIConfig holds overlay settings.
type UIConfig struct {
	Language string `yaml:"language"` // "en" or "ko"
	ShowFPS  bool   `yaml:"show_fps"`
}

// ScreenshotConfig holds F12 capture settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "bmp"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the room's fixed defaults.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			FOV:    50,
		},
		Scene: SceneConfig{
			Latitude:         37.5665,
			Longitude:        126.978,
			AmbientIntensity: 0.4,
			SunIntensity:     1.2,
			ShadowResolution: 1024,
			ShadowsEnabled:   true,
		},
		Camera: CameraConfig{
			Position:           [3]float32{8, 8, 8},
			EnablePan:          false,
			MaxPolarAngle:      float32(gomath.Pi / 2.5),
			EnableDamping:      true,
			DampingFactor:      0.05,
			ScreenSpacePanning: false,
		},
		Assets: AssetsConfig{
			ModelDir: "models",
		},
		UI: UIConfig{
			Language: "en",
			ShowFPS:  false,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
