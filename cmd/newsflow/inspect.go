package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/newsflow/internal/config"
	"github.com/san-kum/newsflow/internal/dataset"
	"github.com/san-kum/newsflow/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list rendered runs",
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(runsDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tYEAR\tLABEL\tTIME\tFRAMES\tRECORDS\tSEED")
	for _, run := range runs {
		label := run.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Year,
			label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Records,
			run.Seed,
		)
	}
	return w.Flush()
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "show a run's metadata and frame statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("year: %s\n", meta.Year)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("frames: %d  records: %d  seed: %d\n\n", meta.Frames, meta.Records, meta.Seed)

	keys := make([]string, 0, len(meta.Stats))
	for k := range meta.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("stats:")
	for _, k := range keys {
		fmt.Printf("  %s: %.4f\n", k, meta.Stats[k])
	}

	fmt.Println("\nartifacts:")
	for _, a := range meta.Artifacts {
		fmt.Printf("  %s\n", st.Path(meta.ID, a))
	}

	frames, err := st.LoadFrames(meta.ID)
	if err != nil || len(frames) < 2 {
		return nil
	}
	points := make([]float64, len(frames))
	truncated := make([]float64, len(frames))
	for i, f := range frames {
		points[i] = float64(f.Points)
		truncated[i] = float64(f.Truncated)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(points, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("points drawn per frame")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(truncated, asciigraph.Height(6), asciigraph.Width(80), asciigraph.Caption("curves stopped at the canvas edge")))
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "summarize the selected headlines",
		RunE:  showStats,
	}
}

func showStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	recs, err := loadRecords(cfg)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("no headlines for %s\n", cfg.TargetYear)
		return nil
	}
	s := dataset.Summarize(recs)

	fmt.Printf("year %s, months %d..%d: %d headlines\n", cfg.TargetYear, cfg.StartMonth, cfg.EndMonth, s.Total)
	fmt.Printf("%s %d  %s %d  %s %d\n\n",
		color.GreenString("positive"), s.Positive,
		color.RedString("negative"), s.Negative,
		color.New(color.Faint).Sprint("neutral"), s.Neutral)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tCOUNT\tMEAN SENTIMENT\tCOLOR")
	for _, c := range s.Categories {
		hex, ok := cfg.Categories[c.Name]
		if !ok {
			hex = cfg.FallbackColor + " (fallback)"
		}
		fmt.Fprintf(w, "%s\t%d\t%+.3f\t%s %s\n", c.Name, c.Count, c.MeanSentiment, swatch(hex), hex)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(s.HistogramSeries(), asciigraph.Height(10), asciigraph.Width(60),
		asciigraph.Caption("sentiment histogram, -1 .. +1")))

	months := make([]float64, 0, cfg.EndMonth-cfg.StartMonth+1)
	for m := cfg.StartMonth; m <= cfg.EndMonth; m++ {
		months = append(months, float64(s.PerMonth[m]))
	}
	if len(months) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(months, asciigraph.Height(6), asciigraph.Width(60),
			asciigraph.Caption("headlines per month")))
	}
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRESOLUTION\tSTEPS\tSPEED\tFADE\tLOOP")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%d\t%g\t%d\t%v\n", name, p.Resolution, p.NumSteps, p.UnfurlingSpeed, p.FadeAlpha, p.Loop)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if out != "" {
				if err := config.Save(out, cfg); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", out)
				return nil
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func newRegroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regroup [in.json] [out.json]",
		Short: "rewrite a year -> headlines file into the year -> month layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := ds.Encode(f); err != nil {
				return err
			}
			fmt.Printf("regrouped %s into %s\n", strings.Join(ds.Years(), ", "), args[1])
			return nil
		},
	}
}

// swatch renders a block in the category color; the hex is printed next to
// it so the table still reads without color support.
func swatch(hex string) string {
	c, err := colorful.Hex(strings.Fields(hex)[0])
	if err != nil {
		return " "
	}
	r, g, b := c.RGB255()
	return color.RGB(int(r), int(g), int(b)).Sprint("██")
}
