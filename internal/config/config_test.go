package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NumSteps != 200 {
		t.Errorf("expected 200 steps, got %d", cfg.NumSteps)
	}
	if cfg.Resolution != 15 {
		t.Errorf("expected resolution 15, got %f", cfg.Resolution)
	}
	if cfg.TargetYear != "2001" || cfg.StartMonth != 0 || cfg.EndMonth != 6 {
		t.Errorf("unexpected selection %s %d..%d", cfg.TargetYear, cfg.StartMonth, cfg.EndMonth)
	}
	if len(cfg.Categories) != 8 {
		t.Errorf("expected 8 categories, got %d", len(cfg.Categories))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultConfigCopiesCategories(t *testing.T) {
	a := DefaultConfig()
	a.Categories["Crime"] = "#000000"
	b := DefaultConfig()
	if b.Categories["Crime"] == "#000000" {
		t.Error("defaults share the category map")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero resolution", func(c *Config) { c.Resolution = 0 }},
		{"zero steps", func(c *Config) { c.NumSteps = 0 }},
		{"zero step size", func(c *Config) { c.StepSize = 0 }},
		{"zero speed", func(c *Config) { c.UnfurlingSpeed = 0 }},
		{"negative zoff", func(c *Config) { c.ZoffIncrement = -0.1 }},
		{"fade too high", func(c *Config) { c.FadeAlpha = 300 }},
		{"reversed months", func(c *Config) { c.StartMonth, c.EndMonth = 5, 2 }},
		{"month 12", func(c *Config) { c.EndMonth = 12 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"bad background", func(c *Config) { c.Background = "black" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = "#102030"
	cfg.FadeAlpha = 20
	cfg.Loop = true

	ec, err := cfg.Engine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ec.Background.R != 0x10 || ec.Background.G != 0x20 || ec.Background.B != 0x30 || ec.Background.A != 255 {
		t.Errorf("unexpected background %v", ec.Background)
	}
	if ec.FadeAlpha != 20 || !ec.Loop {
		t.Errorf("expected fade 20 and loop, got %d %v", ec.FadeAlpha, ec.Loop)
	}
	if ec.Palette == nil {
		t.Fatal("expected palette")
	}
	if _, ok := ec.Palette.Color("Crime"); !ok {
		t.Error("expected Crime in palette")
	}
}

func TestEngineBadCategory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories["Weather"] = "not-a-color"
	if _, err := cfg.Engine(); err == nil {
		t.Error("expected error for bad category color")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsflow.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.TargetYear = "2003"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != 42 || got.TargetYear != "2003" {
		t.Errorf("expected seed 42 year 2003, got %d %s", got.Seed, got.TargetYear)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("resolution: 20\nloop: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Resolution != 20 || !cfg.Loop {
		t.Errorf("expected overrides applied, got %+v", cfg)
	}
	if cfg.NumSteps != DefaultNumSteps {
		t.Errorf("expected default steps kept, got %d", cfg.NumSteps)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Resolution != 8 {
		t.Errorf("expected resolution 8, got %f", cfg.Resolution)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("expected default width kept, got %f", cfg.Width)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, n := range names {
		if err := GetPreset(n).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", n, err)
		}
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("seed: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOver(path, GetPreset("dense"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 9 || cfg.Resolution != 8 {
		t.Errorf("expected file seed over preset resolution, got seed %d resolution %f", cfg.Seed, cfg.Resolution)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadReplacesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.yaml")
	if err := os.WriteFile(path, []byte("categories:\n  Sports: \"#ffffff\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d: %v", len(cfg.Categories), cfg.Categories)
	}
	if cfg.Categories["Sports"] != "#ffffff" {
		t.Errorf("expected Sports #ffffff, got %q", cfg.Categories["Sports"])
	}
	if _, ok := cfg.Categories["Crime"]; ok {
		t.Error("Crime should fall back once the table omits it")
	}

	ec, err := cfg.Engine()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ec.Palette.Color("Crime"); ok {
		t.Error("expected Crime to use the fallback color")
	}
}

func TestLoadKeepsCategoriesWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.yaml")
	if err := os.WriteFile(path, []byte("seed: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Categories) != len(DefaultConfig().Categories) {
		t.Errorf("expected default categories kept, got %d", len(cfg.Categories))
	}
}

func TestPresetAppliesNoiseAndWorkers(t *testing.T) {
	Presets["fine"] = &Config{Octaves: 6, Falloff: 0.65, Workers: 3}
	defer delete(Presets, "fine")

	cfg := GetPreset("fine")
	if cfg.Octaves != 6 || cfg.Falloff != 0.65 || cfg.Workers != 3 {
		t.Errorf("expected octaves 6 falloff 0.65 workers 3, got %d %g %d", cfg.Octaves, cfg.Falloff, cfg.Workers)
	}
}
