package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
	flagModels = flag.String("models", "", "Directory holding the .glb room models")
	flagLang   = flag.String("lang", "", "Label language (en, ko)")
	flagTime   = flag.String("time", "", "Initial time of day as HH:MM (default: now)")
	flagSave   = flag.Bool("save-config", false, "Write the effective config to the user config dir and exit")
	flagCheck  = flag.Bool("check-models", false, "Load every room model, report failures and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// StartTime returns the --time flag value, or "" when the clock should start at now.
func StartTime() string {
	return *flagTime
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// CheckModelsRequested reports whether --check-models was given.
func CheckModelsRequested() bool {
	return *flagCheck
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.UI.ShowFPS = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagModels != "" {
		cfg.Assets.ModelDir = *flagModels
	}
	if *flagLang != "" {
		cfg.UI.Language = *flagLang
	}
}
