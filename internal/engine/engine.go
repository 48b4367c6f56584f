package engine

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/san-kum/newsflow/internal/flow"
	"github.com/san-kum/newsflow/internal/noise"
	"github.com/san-kum/newsflow/internal/style"
	"go.uber.org/zap"
)

// Config holds the tunables of one animation.
type Config struct {
	Width, Height  float64
	Resolution     float64
	NoiseStep      float64
	NumSteps       int
	StepSize       float64
	ZoffIncrement  float64
	UnfurlingSpeed float64
	FadeAlpha      uint8
	Background     color.NRGBA
	Palette        *style.Palette
	Seed           int64
	Octaves        int
	Falloff        float64
	// Loop restarts the unfurling once every curve is fully drawn.
	Loop bool
	// Workers bounds concurrent path tracing; 0 uses GOMAXPROCS.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Width:          1280,
		Height:         720,
		Resolution:     15,
		NoiseStep:      flow.DefaultNoiseStep,
		NumSteps:       200,
		StepSize:       10,
		ZoffIncrement:  0.005,
		UnfurlingSpeed: 0.1,
		FadeAlpha:      10,
		Background:     color.NRGBA{A: 255},
		Seed:           1,
		Octaves:        noise.DefaultOctaves,
		Falloff:        noise.DefaultFalloff,
	}
}

func (c Config) validate() error {
	if c.StepSize <= 0 {
		return fmt.Errorf("%w: step size %g", ErrInvalidConfig, c.StepSize)
	}
	if c.ZoffIncrement < 0 {
		return fmt.Errorf("%w: time offset increment %g", ErrInvalidConfig, c.ZoffIncrement)
	}
	return nil
}

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	Frame      int
	Progress   float64
	Segments   int
	TimeOffset float64
	Curves     int
	Points     int
	// Truncated counts curves that left the grid before reaching Segments.
	Truncated int
}

type Engine struct {
	cfg        Config
	noise      *noise.Field
	grid       *flow.Grid
	sched      *flow.Scheduler
	mapper     *style.Mapper
	rng        *rand.Rand
	records    []flow.Record
	agents     []flow.Agent
	zoff       float64
	frame      int
	needsClear bool
	log        *zap.Logger
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRand replaces the seeded random source used for agent placement and
// neutral flicker.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// New seeds one agent per record. An empty record list is valid and renders
// background-only frames.
func New(cfg Config, records []flow.Record, opts ...Option) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		log:        zap.NewNop(),
		needsClear: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.noise = noise.New(cfg.Seed, noise.WithOctaves(cfg.Octaves, cfg.Falloff))
	grid, err := e.newGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	e.grid = grid
	if e.sched, err = flow.NewScheduler(cfg.NumSteps, cfg.UnfurlingSpeed); err != nil {
		return nil, err
	}
	e.mapper = style.NewMapper(cfg.Palette, e.rng)
	e.seed(records)

	e.log.Info("engine ready",
		zap.Int("curves", len(e.agents)),
		zap.Int("cols", grid.Cols()),
		zap.Int("rows", grid.Rows()),
		zap.Int64("seed", cfg.Seed))
	if e.Empty() {
		e.log.Warn("no records to draw; rendering background only")
	}
	return e, nil
}

func (e *Engine) newGrid(w, h float64) (*flow.Grid, error) {
	g, err := flow.NewGrid(w, h, e.cfg.Resolution, e.noise)
	if err != nil {
		return nil, err
	}
	g.SetNoiseStep(e.cfg.NoiseStep)
	g.Rebuild(e.zoff)
	return g, nil
}

func (e *Engine) seed(records []flow.Record) {
	e.records = append([]flow.Record(nil), records...)
	e.agents = flow.SeedAgents(e.records, e.cfg.Width, e.cfg.Height, e.rng)
}

// Frame renders one animation step onto s.
func (e *Engine) Frame(s Surface) FrameStats {
	if e.needsClear {
		s.Fill(e.cfg.Background)
		e.needsClear = false
	}
	fade := e.cfg.Background
	fade.A = e.cfg.FadeAlpha
	s.Fill(fade)

	e.zoff += e.cfg.ZoffIncrement
	e.grid.Rebuild(e.zoff)

	if e.cfg.Loop && e.sched.Complete() {
		e.sched.Reset()
	}
	e.sched.Advance()

	steps := e.sched.Segments()
	stats := FrameStats{
		Frame:      e.frame,
		Progress:   e.sched.Progress(),
		Segments:   steps,
		TimeOffset: e.zoff,
	}
	paths := traceAll(e.agents, steps, e.cfg.NumSteps, e.cfg.StepSize, e.grid, e.cfg.Workers)
	for i, a := range e.agents {
		st := e.mapper.Style(a.Record)
		pts := paths[i]
		s.SetStroke(st.RGBA(), st.Weight)
		s.Curve(pts)

		stats.Curves++
		stats.Points += len(pts)
		if len(pts) < steps+2 {
			stats.Truncated++
		}
	}
	e.frame++

	if ce := e.log.Check(zap.DebugLevel, "frame"); ce != nil {
		ce.Write(
			zap.Int("frame", stats.Frame),
			zap.Float64("progress", stats.Progress),
			zap.Int("curves", stats.Curves),
			zap.Int("truncated", stats.Truncated))
	}
	return stats
}

// Resize swaps in a grid sized for the new canvas, replaces every agent with
// one seeded from records and restarts the unfurling from zero. On error the
// engine keeps its previous state.
func (e *Engine) Resize(width, height float64, records []flow.Record) error {
	grid, err := e.newGrid(width, height)
	if err != nil {
		return err
	}
	e.cfg.Width, e.cfg.Height = width, height
	e.grid = grid
	e.seed(records)
	e.sched.Reset()
	e.needsClear = true

	e.log.Info("canvas resized",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("cols", grid.Cols()),
		zap.Int("rows", grid.Rows()),
		zap.Int("curves", len(e.agents)))
	return nil
}

// Restart rewinds the unfurling and clears the canvas on the next frame while
// keeping agents, grid and time offset.
func (e *Engine) Restart() {
	e.sched.Reset()
	e.needsClear = true
}

func (e *Engine) Empty() bool                { return len(e.agents) == 0 }
func (e *Engine) Progress() float64          { return e.sched.Progress() }
func (e *Engine) Complete() bool             { return e.sched.Complete() }
func (e *Engine) TimeOffset() float64        { return e.zoff }
func (e *Engine) FrameCount() int            { return e.frame }
func (e *Engine) Grid() *flow.Grid           { return e.grid }
func (e *Engine) Scheduler() *flow.Scheduler { return e.sched }
func (e *Engine) Config() Config             { return e.cfg }
func (e *Engine) Size() (float64, float64)   { return e.cfg.Width, e.cfg.Height }
func (e *Engine) Palette() *style.Palette    { return e.mapper.Palette() }

// Records returns the record set the agents were seeded from.
func (e *Engine) Records() []flow.Record {
	return append([]flow.Record(nil), e.records...)
}

// Agents returns a copy of the current agents.
func (e *Engine) Agents() []flow.Agent {
	return append([]flow.Agent(nil), e.agents...)
}
