package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/newsflow/internal/automation"
	"github.com/san-kum/newsflow/internal/dataset"
	"github.com/san-kum/newsflow/internal/storage"
	"github.com/spf13/cobra"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepSave  bool
	parallel   int
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <scenario.yaml>",
		Short: "render every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addRenderFlags(cmd)
	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "render one selection across a range of a setting",
		Long:  "Parameters: " + strings.Join(automation.SweepParams, ", "),
		RunE:  runSweep,
	}
	f := cmd.Flags()
	f.StringVar(&sweepParam, "param", "step_size", "setting to vary")
	f.Float64Var(&sweepMin, "min", 2, "first value")
	f.Float64Var(&sweepMax, "max", 20, "last value")
	f.IntVar(&sweepSteps, "steps", 5, "number of values")
	f.BoolVar(&sweepSave, "save", false, "store every render as a run")
	f.IntVar(&parallel, "parallel", 1, "renders to run at once")
	addRenderFlags(cmd)
	return cmd
}

func newRunner(cmd *cobra.Command, store bool) (*automation.Runner, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return nil, err
	}
	r := &automation.Runner{Base: cfg, Data: ds, Render: renderOpts, Log: logger, Parallel: parallel}
	if store {
		r.Store = storage.New(runsDir)
		if err := r.Store.Init(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	r, err := newRunner(cmd, true)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	results, err := r.RunScenario(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tYEAR\tRECORDS\tCURVES\tTRUNCATED\tRUN")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			res.Label, res.Year, res.Records, res.Last.Curves, res.Last.Truncated, res.RunID)
	}
	w.Flush()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	r, err := newRunner(cmd, sweepSave)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := r.RunSweep(ctx, automation.ParameterSweep{
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	})
	if err != nil && len(results) == 0 {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCURVES\tTRUNCATED\tMEAN POINTS\tRUN\n", strings.ToUpper(sweepParam))
	mean := make([]float64, 0, len(results))
	for _, res := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%.1f\t%s\n", res.Value, res.Curves, res.Truncated, res.MeanPoints, res.RunID)
		mean = append(mean, res.MeanPoints)
	}
	w.Flush()

	if len(mean) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(mean,
			asciigraph.Height(8),
			asciigraph.Caption("mean points per curve by "+sweepParam)))
	}
	return err
}
