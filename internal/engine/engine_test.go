package engine

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"

	"github.com/san-kum/newsflow/internal/flow"
)

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, flow.ErrInvalidCanvas},
		{"zero resolution", func(c *Config) { c.Resolution = 0 }, flow.ErrInvalidResolution},
		{"zero steps", func(c *Config) { c.NumSteps = 0 }, flow.ErrInvalidSchedule},
		{"zero speed", func(c *Config) { c.UnfurlingSpeed = 0 }, flow.ErrInvalidSchedule},
		{"zero step size", func(c *Config) { c.StepSize = 0 }, ErrInvalidConfig},
		{"negative zoff", func(c *Config) { c.ZoffIncrement = -1 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg, nil); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFrameDeterministicForSeed(t *testing.T) {
	records := []flow.Record{{Category: "Politics", Sentiment: 0.4}, {Category: "Economy", Sentiment: -0.7}}
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 300, 200

	a, _ := New(cfg, records)
	b, _ := New(cfg, records)
	ra, rb := NewRecorder(), NewRecorder()
	for i := 0; i < 20; i++ {
		a.Frame(ra)
		b.Frame(rb)
	}
	ca, cb := ra.Curves(), rb.Curves()
	if len(ca) != len(cb) {
		t.Fatalf("curve counts differ: %d vs %d", len(ca), len(cb))
	}
	for i := range ca {
		if len(ca[i].Points) != len(cb[i].Points) {
			t.Fatalf("curve %d lengths differ", i)
		}
		for j := range ca[i].Points {
			if ca[i].Points[j] != cb[i].Points[j] {
				t.Fatalf("curve %d point %d differs", i, j)
			}
		}
	}
}

func TestFrameRecomputesFromOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 500, 500
	cfg.UnfurlingSpeed = 1
	e, _ := New(cfg, []flow.Record{{Category: "Sports", Sentiment: 0.5}})
	origin := e.Agents()[0].Origin

	for i := 1; i <= 5; i++ {
		rec := NewRecorder()
		e.Frame(rec)
		c := rec.Curves()[0]
		if c.Points[0] != origin {
			t.Fatalf("frame %d: curve starts at %+v, want origin %+v", i, c.Points[0], origin)
		}
		if len(c.Points) > i+2 {
			t.Fatalf("frame %d: %d points exceeds %d segments", i, len(c.Points), i)
		}
	}
}

func TestWithRand(t *testing.T) {
	cfg := DefaultConfig()
	records := []flow.Record{{Category: "Crime"}}
	a, _ := New(cfg, records, WithRand(rand.New(rand.NewSource(99))))
	b, _ := New(cfg, records, WithRand(rand.New(rand.NewSource(99))))
	if a.Agents()[0].Origin != b.Agents()[0].Origin {
		t.Error("same random source produced different origins")
	}
}

func TestRestart(t *testing.T) {
	cfg := DefaultConfig()
	e, _ := New(cfg, []flow.Record{{Category: "Crime", Sentiment: -0.2}})
	rec := NewRecorder()
	for i := 0; i < 10; i++ {
		e.Frame(rec)
	}
	e.Restart()
	if e.Progress() != 0 {
		t.Errorf("expected progress 0 after restart, got %v", e.Progress())
	}
	rec.Reset()
	e.Frame(rec)
	if got := rec.Fills()[0]; got.A != 255 {
		t.Errorf("expected a hard clear after restart, got alpha %d", got.A)
	}
}

func TestTee(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	s := Tee(a, b)
	s.Fill(color.NRGBA{A: 10})
	s.SetStroke(color.NRGBA{R: 1, A: 200}, 1.5)
	s.Curve([]flow.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}})

	for name, r := range map[string]*Recorder{"a": a, "b": b} {
		if len(r.Fills()) != 1 || len(r.Curves()) != 1 {
			t.Fatalf("%s: expected 1 fill and 1 curve, got %d and %d", name, len(r.Fills()), len(r.Curves()))
		}
		if r.Curves()[0].Weight != 1.5 || r.Curves()[0].Color.R != 1 {
			t.Errorf("%s: stroke not forwarded: %+v", name, r.Curves()[0])
		}
	}
}

func TestRecorderCopiesPoints(t *testing.T) {
	r := NewRecorder()
	pts := []flow.Vec2{{X: 1, Y: 1}}
	r.Curve(pts)
	pts[0].X = 9
	if r.Curves()[0].Points[0].X != 1 {
		t.Error("recorder aliased caller points")
	}
}
