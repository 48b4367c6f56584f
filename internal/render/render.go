// Package render runs an engine headlessly and collects the frames as a
// raster still, an SVG of the final frame and an optional GIF.
package render

import (
	"context"
	"image"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/newsflow/internal/engine"
	"github.com/san-kum/newsflow/internal/export"
	"github.com/san-kum/newsflow/internal/raster"
	"github.com/san-kum/newsflow/internal/storage"
	"github.com/san-kum/newsflow/internal/style"
)

type Options struct {
	// Frames is the number of frames to render; 0 renders until every curve
	// is complete and then Hold more.
	Frames   int
	Hold     int
	GIFWidth int
	GIFEvery int
	// GIFDelay is the delay between gif frames in 1/100 s.
	GIFDelay int
	SkipGIF  bool
}

func DefaultOptions() Options {
	return Options{Hold: 30, GIFWidth: 480, GIFEvery: 4, GIFDelay: 4}
}

type Result struct {
	Frames    []engine.FrameStats
	Final     *image.RGBA
	SVG       *export.SVG
	Animation *export.Animation
	Elapsed   time.Duration
}

// FramesToComplete is the number of frames until progress reaches the
// configured step count.
func FramesToComplete(cfg engine.Config) int {
	return int(math.Ceil(float64(cfg.NumSteps)/cfg.UnfurlingSpeed - 1e-9))
}

// Palette builds the gif palette from the engine background and categories.
func Palette(cfg engine.Config) color.Palette {
	p := cfg.Palette
	if p == nil {
		p = style.DefaultPalette()
	}
	colors := make([]colorful.Color, 0, len(p.Categories())+1)
	for _, name := range p.Categories() {
		c, _ := p.Color(name)
		colors = append(colors, c)
	}
	colors = append(colors, p.Fallback())
	bg := colorful.Color{
		R: float64(cfg.Background.R) / 255,
		G: float64(cfg.Background.G) / 255,
		B: float64(cfg.Background.B) / 255,
	}
	return export.BuildPalette(bg, colors)
}

// Run renders frames until opts are satisfied or ctx is cancelled. On
// cancellation the frames rendered so far are returned with ctx's error.
func Run(ctx context.Context, eng *engine.Engine, opts Options) (*Result, error) {
	cfg := eng.Config()
	total := opts.Frames
	if total <= 0 {
		total = FramesToComplete(cfg) + max(opts.Hold, 0)
	}
	every := max(opts.GIFEvery, 1)

	w, h := eng.Size()
	surf := raster.New(int(math.Ceil(w)), int(math.Ceil(h)))
	res := &Result{
		Frames: make([]engine.FrameStats, 0, total),
		SVG:    export.NewSVG(w, h),
	}
	if !opts.SkipGIF {
		gw := max(opts.GIFWidth, 1)
		gh := max(int(math.Round(float64(gw)*h/w)), 1)
		res.Animation = export.NewAnimation(gw, gh, opts.GIFDelay, Palette(cfg))
	}

	start := time.Now()
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			res.Final = surf.Snapshot()
			res.Elapsed = time.Since(start)
			return res, err
		}
		var target engine.Surface = surf
		if i == total-1 {
			res.SVG.Fill(cfg.Background)
			target = engine.Tee(surf, res.SVG)
		}
		res.Frames = append(res.Frames, eng.Frame(target))
		if res.Animation != nil && (i%every == 0 || i == total-1) {
			res.Animation.Add(surf.Image())
		}
	}
	res.Final = surf.Snapshot()
	res.Elapsed = time.Since(start)
	return res, nil
}

// Last returns the stats of the final frame.
func (r *Result) Last() engine.FrameStats {
	if len(r.Frames) == 0 {
		return engine.FrameStats{}
	}
	return r.Frames[len(r.Frames)-1]
}

// Stats summarizes the run for storage metadata.
func (r *Result) Stats() map[string]float64 {
	last := r.Last()
	return map[string]float64{
		"progress":    last.Progress,
		"segments":    float64(last.Segments),
		"time_offset": last.TimeOffset,
		"curves":      float64(last.Curves),
		"points":      float64(last.Points),
		"truncated":   float64(last.Truncated),
		"elapsed_ms":  float64(r.Elapsed.Milliseconds()),
	}
}

// Artifacts lists the files a stored run consists of.
func (r *Result) Artifacts() []storage.Artifact {
	final := r.Final
	svg := r.SVG
	out := []storage.Artifact{
		{Name: storage.FinalPNGFile, Write: func(w io.Writer) error { return export.EncodePNG(w, final) }},
		{Name: storage.FinalSVGFile, Write: func(w io.Writer) error { _, err := svg.WriteTo(w); return err }},
		storage.FramesArtifact(r.Frames),
	}
	if r.Animation != nil {
		out = append(out, storage.Artifact{Name: storage.AnimationFile, Write: r.Animation.Encode})
	}
	return out
}
