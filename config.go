package scrollwork

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a Choreographer and its Scene.
type Config struct {
	// ReducedMotion settles reveals and loops to their end state and skips
	// the theme reveal.
	ReducedMotion bool `yaml:"reducedMotion"`
	// Debug turns on per-frame stats and debug log lines.
	Debug bool `yaml:"debug"`

	Viewport     ViewportConfig     `yaml:"viewport"`
	SmoothScroll SmoothScrollConfig `yaml:"smoothScroll"`
	Trigger      TriggerDefaults    `yaml:"trigger"`
	Theme        ThemeConfig        `yaml:"theme"`

	// ScreenshotDir is where Scene.Screenshot writes PNGs.
	ScreenshotDir string `yaml:"screenshotDir"`
}

// ViewportConfig is the initial viewport size in document pixels.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SmoothScrollConfig selects the scroll source.
type SmoothScrollConfig struct {
	// Enabled uses a spring-smoothed scroll proxy instead of native wheel
	// scrolling.
	Enabled      bool `yaml:"enabled"`
	SpringConfig `yaml:",inline"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{Width: 1024, Height: 768},
		SmoothScroll: SmoothScrollConfig{
			Enabled: true,
			SpringConfig: SpringConfig{
				FPS:        60,
				Frequency:  6,
				Damping:    1,
				Multiplier: 40,
			},
		},
		Trigger: TriggerDefaults{
			Threshold: 0.15,
			Duration:  0.8,
			Stagger:   0.08,
		},
		Theme: ThemeConfig{
			Duration:    0.6,
			Transitions: true,
		},
		ScreenshotDir: "screenshots",
	}
}

// ParseConfig decodes YAML over DefaultConfig. Keys absent from data keep
// their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport size %vx%v must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Trigger.Threshold < 0 || c.Trigger.Threshold > 1 {
		return fmt.Errorf("trigger threshold %v outside [0, 1]", c.Trigger.Threshold)
	}
	if c.Theme.Duration < 0 {
		return fmt.Errorf("theme duration %v is negative", c.Theme.Duration)
	}
	return nil
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}
