package config

import "sort"

// Presets overlay the defaults. Zero fields keep the default value.
var Presets = map[string]*Config{
	"sketch": {
		Width: 1280, Height: 720, Resolution: 15, NumSteps: 200, StepSize: 10,
		UnfurlingSpeed: 0.1, FadeAlpha: 10,
	},
	"dense": {
		Resolution: 8, NumSteps: 300, StepSize: 5, UnfurlingSpeed: 0.2, FadeAlpha: 6,
	},
	"calm": {
		ZoffIncrement: 0.001, UnfurlingSpeed: 0.05, FadeAlpha: 4, NoiseStep: 0.04,
	},
	"storm": {
		ZoffIncrement: 0.03, UnfurlingSpeed: 0.5, FadeAlpha: 25, NoiseStep: 0.25, Octaves: 6,
	},
	"loop": {
		UnfurlingSpeed: 1, Loop: true,
	},
	"thumbnail": {
		Width: 320, Height: 180, Resolution: 6, NumSteps: 120, StepSize: 4, UnfurlingSpeed: 1,
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.apply(p)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) apply(p *Config) {
	if p.Width > 0 {
		c.Width = p.Width
	}
	if p.Height > 0 {
		c.Height = p.Height
	}
	if p.Resolution > 0 {
		c.Resolution = p.Resolution
	}
	if p.NoiseStep > 0 {
		c.NoiseStep = p.NoiseStep
	}
	if p.NumSteps > 0 {
		c.NumSteps = p.NumSteps
	}
	if p.StepSize > 0 {
		c.StepSize = p.StepSize
	}
	if p.ZoffIncrement > 0 {
		c.ZoffIncrement = p.ZoffIncrement
	}
	if p.UnfurlingSpeed > 0 {
		c.UnfurlingSpeed = p.UnfurlingSpeed
	}
	if p.FadeAlpha > 0 {
		c.FadeAlpha = p.FadeAlpha
	}
	if p.Octaves > 0 {
		c.Octaves = p.Octaves
	}
	if p.Falloff > 0 {
		c.Falloff = p.Falloff
	}
	if p.Workers > 0 {
		c.Workers = p.Workers
	}
	if p.Loop {
		c.Loop = true
	}
}
