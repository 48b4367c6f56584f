package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/newsflow/internal/engine"
	"github.com/san-kum/newsflow/internal/style"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth          = 1280
	DefaultHeight         = 720
	DefaultResolution     = 15.0
	DefaultNoiseStep      = 0.1
	DefaultNumSteps       = 200
	DefaultStepSize       = 10.0
	DefaultZoffIncrement  = 0.005
	DefaultUnfurlingSpeed = 0.1
	DefaultFadeAlpha      = 10
	DefaultBackground     = "#000000"
	DefaultTargetYear     = "2001"
	DefaultStartMonth     = 0
	DefaultEndMonth       = 6
	DefaultFPS            = 30
	DefaultOctaves        = 4
	DefaultFalloff        = 0.5
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Width          float64           `yaml:"width"`
	Height         float64           `yaml:"height"`
	Resolution     float64           `yaml:"resolution"`
	NoiseStep      float64           `yaml:"noise_step"`
	NumSteps       int               `yaml:"num_steps"`
	StepSize       float64           `yaml:"step_size"`
	ZoffIncrement  float64           `yaml:"zoff_increment"`
	UnfurlingSpeed float64           `yaml:"unfurling_speed"`
	FadeAlpha      int               `yaml:"fade_alpha"`
	Background     string            `yaml:"background"`
	FallbackColor  string            `yaml:"fallback_color"`
	Categories     map[string]string `yaml:"categories"`
	TargetYear     string            `yaml:"target_year"`
	StartMonth     int               `yaml:"start_month"`
	EndMonth       int               `yaml:"end_month"`
	Seed           int64             `yaml:"seed"`
	FPS            int               `yaml:"fps"`
	Loop           bool              `yaml:"loop"`
	Octaves        int               `yaml:"octaves"`
	Falloff        float64           `yaml:"falloff"`
	Workers        int               `yaml:"workers"`
}

func DefaultConfig() *Config {
	cats := make(map[string]string, len(style.DefaultCategories))
	for k, v := range style.DefaultCategories {
		cats[k] = v
	}
	return &Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Resolution:     DefaultResolution,
		NoiseStep:      DefaultNoiseStep,
		NumSteps:       DefaultNumSteps,
		StepSize:       DefaultStepSize,
		ZoffIncrement:  DefaultZoffIncrement,
		UnfurlingSpeed: DefaultUnfurlingSpeed,
		FadeAlpha:      DefaultFadeAlpha,
		Background:     DefaultBackground,
		FallbackColor:  style.DefaultFallback,
		Categories:     cats,
		TargetYear:     DefaultTargetYear,
		StartMonth:     DefaultStartMonth,
		EndMonth:       DefaultEndMonth,
		Seed:           1,
		FPS:            DefaultFPS,
		Octaves:        DefaultOctaves,
		Falloff:        DefaultFalloff,
	}
}

// Load reads a yaml file over the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over base and returns base. A categories table
// in the file replaces the one in base rather than merging into it.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cats := base.Categories
	base.Categories = nil
	if err := yaml.Unmarshal(data, base); err != nil {
		base.Categories = cats
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if base.Categories == nil {
		base.Categories = cats
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %gx%g", ErrInvalid, c.Width, c.Height)
	case c.Resolution <= 0:
		return fmt.Errorf("%w: resolution %g", ErrInvalid, c.Resolution)
	case c.NumSteps <= 0:
		return fmt.Errorf("%w: num_steps %d", ErrInvalid, c.NumSteps)
	case c.StepSize <= 0:
		return fmt.Errorf("%w: step_size %g", ErrInvalid, c.StepSize)
	case c.UnfurlingSpeed <= 0:
		return fmt.Errorf("%w: unfurling_speed %g", ErrInvalid, c.UnfurlingSpeed)
	case c.ZoffIncrement < 0:
		return fmt.Errorf("%w: zoff_increment %g", ErrInvalid, c.ZoffIncrement)
	case c.FadeAlpha < 0 || c.FadeAlpha > 255:
		return fmt.Errorf("%w: fade_alpha %d", ErrInvalid, c.FadeAlpha)
	case c.StartMonth < 0 || c.EndMonth > 11 || c.StartMonth > c.EndMonth:
		return fmt.Errorf("%w: months %d..%d", ErrInvalid, c.StartMonth, c.EndMonth)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return fmt.Errorf("%w: background %q", ErrInvalid, c.Background)
	}
	return nil
}

// Engine converts the file settings into an engine configuration.
func (c *Config) Engine() (engine.Config, error) {
	if err := c.Validate(); err != nil {
		return engine.Config{}, err
	}
	palette, err := style.NewPalette(c.Categories, c.FallbackColor)
	if err != nil {
		return engine.Config{}, err
	}
	bg, _ := colorful.Hex(c.Background)
	r, g, b := bg.RGB255()

	ec := engine.DefaultConfig()
	ec.Width, ec.Height = c.Width, c.Height
	ec.Resolution = c.Resolution
	ec.NoiseStep = c.NoiseStep
	ec.NumSteps = c.NumSteps
	ec.StepSize = c.StepSize
	ec.ZoffIncrement = c.ZoffIncrement
	ec.UnfurlingSpeed = c.UnfurlingSpeed
	ec.FadeAlpha = uint8(c.FadeAlpha)
	ec.Background = color.NRGBA{R: r, G: g, B: b, A: 255}
	ec.Palette = palette
	ec.Seed = c.Seed
	ec.Octaves = c.Octaves
	ec.Falloff = c.Falloff
	ec.Loop = c.Loop
	ec.Workers = c.Workers
	return ec, nil
}
