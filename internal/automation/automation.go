// Package automation renders scripted batches: a scenario file lists several
// selections to render in turn, and a sweep renders one selection across a
// range of a numeric setting.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/newsflow/internal/config"
	"github.com/san-kum/newsflow/internal/dataset"
	"github.com/san-kum/newsflow/internal/engine"
	"github.com/san-kum/newsflow/internal/render"
	"github.com/san-kum/newsflow/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var ErrUnknownParam = errors.New("automation: unknown parameter")

// Scenario defines a scripted sequence of renders
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one render. Unset fields keep the runner's base settings.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Year       string             `yaml:"year"`
	StartMonth *int               `yaml:"start_month"`
	EndMonth   *int               `yaml:"end_month"`
	Seed       int64              `yaml:"seed"`
	Frames     int                `yaml:"frames"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Runner holds what every render of a batch shares. A nil Store renders
// without saving.
type Runner struct {
	Base   *config.Config
	Data   dataset.Dataset
	Store  *storage.Store
	Render render.Options
	Log    *zap.Logger
	// Parallel bounds concurrent sweep renders; values below 1 mean one.
	Parallel int
}

type StepResult struct {
	Label   string
	RunID   string
	Year    string
	Records int
	Last    engine.FrameStats
}

// Settings resolves a step against base.
func (s ScenarioStep) Settings(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		cfg = *p
		cfg.TargetYear, cfg.StartMonth, cfg.EndMonth = base.TargetYear, base.StartMonth, base.EndMonth
		cfg.Seed = base.Seed
		cfg.Categories, cfg.FallbackColor, cfg.Background = base.Categories, base.FallbackColor, base.Background
	}
	if s.Year != "" {
		cfg.TargetYear = s.Year
	}
	if s.StartMonth != nil {
		cfg.StartMonth = *s.StartMonth
	}
	if s.EndMonth != nil {
		cfg.EndMonth = *s.EndMonth
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := SetParam(&cfg, k, v); err != nil {
			return nil, err
		}
	}
	return &cfg, cfg.Validate()
}

// RunScenario executes all steps in a scenario
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		cfg, err := step.Settings(r.Base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		label := step.SaveAs
		if label == "" {
			label = fmt.Sprintf("%s-%d", scenario.Name, i+1)
		}
		opts := r.Render
		if step.Frames > 0 {
			opts.Frames = step.Frames
		}
		r.logger().Info("scenario step",
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("label", label),
			zap.String("year", cfg.TargetYear))

		res, err := r.run(ctx, cfg, label, opts)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *Runner) run(ctx context.Context, cfg *config.Config, label string, opts render.Options) (StepResult, error) {
	recs, err := dataset.Select(r.Data, cfg.TargetYear, cfg.StartMonth, cfg.EndMonth)
	if errors.Is(err, dataset.ErrNoData) {
		r.logger().Warn("no headlines for step", zap.String("label", label), zap.String("year", cfg.TargetYear))
		recs, err = nil, nil
	}
	if err != nil {
		return StepResult{}, err
	}
	ec, err := cfg.Engine()
	if err != nil {
		return StepResult{}, err
	}
	eng, err := engine.New(ec, dataset.FlowRecords(recs), engine.WithLogger(r.logger()))
	if err != nil {
		return StepResult{}, err
	}
	res, err := render.Run(ctx, eng, opts)
	if err != nil {
		return StepResult{}, err
	}

	out := StepResult{Label: label, Year: cfg.TargetYear, Records: len(recs), Last: res.Last()}
	if r.Store == nil {
		return out, nil
	}
	out.RunID, err = r.Store.Save(storage.RunMetadata{
		Year:    cfg.TargetYear,
		Label:   label,
		Seed:    cfg.Seed,
		Frames:  len(res.Frames),
		Records: len(recs),
		Config:  cfg,
		Stats:   res.Stats(),
	}, res.Artifacts()...)
	return out, err
}

// ParameterSweep renders one selection for evenly spaced values of Param.
type ParameterSweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// SweepResult holds the final frame of one sweep value.
type SweepResult struct {
	Value      float64
	Curves     int
	Truncated  int
	MeanPoints float64
	RunID      string
}

// RunSweep executes a parameter sweep
func (r *Runner) RunSweep(ctx context.Context, sweep ParameterSweep) ([]SweepResult, error) {
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.Steps)
	}
	if err := SetParam(&config.Config{}, sweep.Param, sweep.Min); err != nil {
		return nil, err
	}

	step := 0.0
	if sweep.Steps > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.Steps-1)
	}
	cfgs := make([]*config.Config, sweep.Steps)
	for i := range cfgs {
		v := sweep.Min + float64(i)*step
		cfg := *r.Base
		if err := SetParam(&cfg, sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		cfgs[i] = &cfg
	}

	results := make([]SweepResult, sweep.Steps)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Parallel, 1))
	for i, cfg := range cfgs {
		v := sweep.Min + float64(i)*step
		g.Go(func() error {
			res, err := r.run(gctx, cfg, fmt.Sprintf("%s=%g", sweep.Param, v), r.Render)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
			}
			mean := 0.0
			if res.Last.Curves > 0 {
				mean = float64(res.Last.Points) / float64(res.Last.Curves)
			}
			results[i] = SweepResult{
				Value:      v,
				Curves:     res.Last.Curves,
				Truncated:  res.Last.Truncated,
				MeanPoints: mean,
				RunID:      res.RunID,
			}
			r.logger().Info("sweep value", zap.String("param", sweep.Param), zap.Float64("value", v),
				zap.Int("truncated", res.Last.Truncated))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SweepParams lists the settings SetParam understands.
var SweepParams = []string{
	"width", "height", "resolution", "noise_step", "num_steps", "step_size",
	"zoff_increment", "unfurling_speed", "fade_alpha", "octaves", "falloff",
}

// SetParam sets a numeric setting by its yaml key.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "width":
		cfg.Width = v
	case "height":
		cfg.Height = v
	case "resolution":
		cfg.Resolution = v
	case "noise_step":
		cfg.NoiseStep = v
	case "num_steps":
		cfg.NumSteps = int(v)
	case "step_size":
		cfg.StepSize = v
	case "zoff_increment":
		cfg.ZoffIncrement = v
	case "unfurling_speed":
		cfg.UnfurlingSpeed = v
	case "fade_alpha":
		cfg.FadeAlpha = int(v)
	case "octaves":
		cfg.Octaves = int(v)
	case "falloff":
		cfg.Falloff = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
