package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/newsflow/internal/config"
	"github.com/san-kum/newsflow/internal/render"
	"github.com/san-kum/newsflow/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderOpts = render.DefaultOptions()

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&renderOpts.Frames, "frames", renderOpts.Frames, "frames to render (0 = until every curve is complete)")
	f.IntVar(&renderOpts.Hold, "hold", renderOpts.Hold, "frames to keep rendering after completion")
	f.IntVar(&renderOpts.GIFWidth, "gif-width", renderOpts.GIFWidth, "gif width in pixels (height keeps the aspect)")
	f.IntVar(&renderOpts.GIFEvery, "gif-every", renderOpts.GIFEvery, "capture every n-th frame into the gif")
	f.IntVar(&renderOpts.GIFDelay, "gif-delay", renderOpts.GIFDelay, "gif frame delay in 1/100 s")
	f.BoolVar(&renderOpts.SkipGIF, "no-gif", renderOpts.SkipGIF, "skip the gif")
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render a run headlessly and store gif, png and svg",
		RunE:  runRender,
	}
	addRenderFlags(cmd)
	return cmd
}

// InterruptedLabel marks a stored run whose render was cancelled.
const InterruptedLabel = "interrupted"

func runRender(cmd *cobra.Command, args []string) error {
	cfg, recs, eng, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("rendering %d headlines (%s)...\n", len(recs), cfg.TargetYear)
	res, renderErr := render.Run(ctx, eng, renderOpts)
	interrupted := renderErr != nil && errors.Is(renderErr, context.Canceled)
	if renderErr != nil && !interrupted {
		return renderErr
	}
	if interrupted && len(res.Frames) == 0 {
		fmt.Println("interrupted before the first frame, nothing stored")
		return nil
	}

	st := storage.New(runsDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := saveRender(st, cfg, len(recs), res, interrupted)
	if err != nil {
		return err
	}
	logger.Info("run stored", zap.String("id", runID), zap.Duration("elapsed", res.Elapsed),
		zap.Bool("interrupted", interrupted))

	last := res.Last()
	if interrupted {
		fmt.Printf("interrupted after %d frames in %v\n", len(res.Frames), res.Elapsed)
	} else {
		fmt.Printf("completed %d frames in %v\n", len(res.Frames), res.Elapsed)
	}
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("curves: %d (%d stopped at the canvas edge)\n", last.Curves, last.Truncated)
	fmt.Printf("final: %s\n", st.Path(runID, storage.FinalPNGFile))
	return nil
}

// saveRender stores res as a run. Interrupted renders keep the frames drawn
// so far under InterruptedLabel.
func saveRender(st *storage.Store, cfg *config.Config, records int, res *render.Result, interrupted bool) (string, error) {
	meta := storage.RunMetadata{
		Year:    cfg.TargetYear,
		Seed:    cfg.Seed,
		Frames:  len(res.Frames),
		Records: records,
		Config:  cfg,
		Stats:   res.Stats(),
	}
	if interrupted {
		meta.Label = InterruptedLabel
	}
	return st.Save(meta, res.Artifacts()...)
}
