// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/hluengas/color-shredder/internal/engine/grid"
	"github.com/hluengas/color-shredder/internal/engine/programs"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Programs ProgramsConfig `yaml:"programs" toml:"programs"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width" toml:"width"`
	Height     int        `yaml:"height" toml:"height"`
	Fullscreen bool       `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool       `yaml:"vsync" toml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit" toml:"fps_limit"`
	ClearColor [4]float32 `yaml:"clear_color" toml:"clear_color"`

	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// SceneConfig holds the surface animation settings.
type SceneConfig struct {
	SpinSpeed       float32 `yaml:"spin_speed" toml:"spin_speed"`             // Radians per second around Y
	Tilt            float32 `yaml:"tilt" toml:"tilt"`                         // Initial rotation around X, radians
	DragSensitivity float32 `yaml:"drag_sensitivity" toml:"drag_sensitivity"` // Radians per pixel
	Amplitude       float32 `yaml:"amplitude" toml:"amplitude"`
	Frequency       float32 `yaml:"frequency" toml:"frequency"`
	WaveSpeed       float32 `yaml:"wave_speed" toml:"wave_speed"` // Phase advance per second
}

// ProgramsConfig holds the per-program appearance.
type ProgramsConfig struct {
	Panel   programs.Color2DConfig         `yaml:"panel" toml:"panel"`
	Legend  programs.Color2DGradientConfig `yaml:"legend" toml:"legend"`
	Surface programs.Graph3DConfig         `yaml:"surface" toml:"surface"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ClearColor: [4]float32{0.1, 0.1, 0.15, 1},

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			SpinSpeed:       0.5,
			Tilt:            0.5,
			DragSensitivity: 0.01,
			Amplitude:       0.15,
			Frequency:       8,
			WaveSpeed:       2,
		},
		Programs: ProgramsConfig{
			Panel:   programs.DefaultColor2DConfig(),
			Legend:  programs.DefaultColor2DGradientConfig(),
			Surface: programs.DefaultGraph3DConfig(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings the renderer cannot recover from.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if n := c.Programs.Surface.GridSize; n < 1 || n > grid.MaxSize {
		return fmt.Errorf("%w: grid size %d (want 1..%d)", ErrInvalid, n, grid.MaxSize)
	}
	opacities := map[string]float32{
		"panel":   c.Programs.Panel.Opacity,
		"legend":  c.Programs.Legend.Opacity,
		"surface": c.Programs.Surface.Opacity,
	}
	for name, o := range opacities {
		if o < 0 || o > 1 {
			return fmt.Errorf("%w: %s opacity %g", ErrInvalid, name, o)
		}
	}
	return nil
}
