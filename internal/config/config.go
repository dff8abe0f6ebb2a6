// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SimulationConfig holds the default color blindness simulation state.
// Cameras without a per-camera override use these values.
type SimulationConfig struct {
	// Mode is one of: normal, protanopia, protanomaly, deuteranopia,
	// deuteranomaly, tritanopia, tritanomaly, achromatopsia,
	// achromatomaly.
	Mode    string `yaml:"mode"`
	Enabled bool   `yaml:"enabled"`

	// RelayPriorityOffset is added to a tagged camera's priority to
	// order its relay camera after it. Zero keeps the built-in
	// default.
	RelayPriorityOffset int `yaml:"relay_priority_offset"`

	// ScreenshotDir is where F12 captures are written.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Simulation: SimulationConfig{
			Mode:          "normal",
			Enabled:       true,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
