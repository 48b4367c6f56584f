package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/newsflow/internal/config"
	"github.com/san-kum/newsflow/internal/dataset"
	"github.com/san-kum/newsflow/internal/engine"
	"github.com/san-kum/newsflow/internal/gui"
	"github.com/san-kum/newsflow/internal/logging"
	"github.com/san-kum/newsflow/internal/viz"
	"github.com/san-kum/newsflow/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataPath   string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	runsDir    string
	// selection and animation overrides
	year       string
	startMonth int
	endMonth   int
	seed       int64
	loop       bool
	frameRate  int
	theme      string
	scale      float64
	showHUD    bool
	watchData  bool

	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newsflow",
		Short: "news headlines drawn as an unfurling flow field",
		Long: `newsflow maps each headline of a year onto a curve that follows a
drifting Perlin-noise flow field. Color encodes the headline category,
opacity and stroke width encode its sentiment.

Run without a subcommand to open the live terminal view.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the terminal view owns stdout and stderr
			if logFile == "" && (cmd.Name() == "live" || cmd.Name() == "newsflow") {
				return nil
			}
			l, err := logging.New(logging.Options{Level: logLevel, File: logFile, Console: logFile == ""})
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataPath, "data", "data/news.json", "headline dataset (json)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.StringVar(&runsDir, "runs", ".newsflow", "directory for rendered runs")
	pf.StringVar(&year, "year", config.DefaultTargetYear, "year to draw")
	pf.IntVar(&startMonth, "from", config.DefaultStartMonth, "first month (0 = January)")
	pf.IntVar(&endMonth, "to", config.DefaultEndMonth, "last month (0 = January)")
	pf.Int64Var(&seed, "seed", 1, "random seed for origins and flicker")
	pf.BoolVar(&loop, "loop", false, "restart the unfurling when complete")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeInk.Name, "panel theme")
	liveCmd.Flags().Float64Var(&scale, "scale", viz.DefaultScale, "canvas units per braille dot")
	liveCmd.Flags().BoolVar(&watchData, "watch", false, "redraw when the dataset file changes")
	rootCmd.Flags().AddFlagSet(liveCmd.Flags())

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	guiCmd.Flags().BoolVar(&showHUD, "hud", true, "show the status overlay")

	rootCmd.AddCommand(liveCmd, guiCmd, newRenderCmd(), newRunsCmd(), newShowCmd(),
		newStatsCmd(), newPresetsCmd(), newConfigCmd(), newRegroupCmd(),
		newBatchCmd(), newSweepCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings resolves defaults, then preset, then config file, then any
// flag the user set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		cfg.TargetYear = year
	}
	if flags.Changed("from") {
		cfg.StartMonth = startMonth
	}
	if flags.Changed("to") {
		cfg.EndMonth = endMonth
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("loop") {
		cfg.Loop = loop
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadRecords selects the configured slice of the dataset. A missing year is
// not fatal: the animation then paints only the background.
func loadRecords(cfg *config.Config) ([]dataset.Record, error) {
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return nil, err
	}
	recs, err := dataset.Select(ds, cfg.TargetYear, cfg.StartMonth, cfg.EndMonth)
	if errors.Is(err, dataset.ErrNoData) {
		logger.Warn("no headlines for selection",
			zap.String("year", cfg.TargetYear),
			zap.Strings("available", ds.Years()))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Info("headlines selected",
		zap.String("year", cfg.TargetYear),
		zap.Int("from", cfg.StartMonth),
		zap.Int("to", cfg.EndMonth),
		zap.Int("records", len(recs)))
	return recs, nil
}

func buildEngine(cmd *cobra.Command) (*config.Config, []dataset.Record, *engine.Engine, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	recs, err := loadRecords(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	ec, err := cfg.Engine()
	if err != nil {
		return nil, nil, nil, err
	}
	eng, err := engine.New(ec, dataset.FlowRecords(recs), engine.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, recs, eng, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, eng, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	m := viz.NewModel(eng, viz.Options{
		FPS:    cfg.FPS,
		Scale:  scale,
		Theme:  theme,
		Title:  "newsflow " + cfg.TargetYear,
		Logger: logger,
	})
	if !watchData {
		return viz.Run(m)
	}

	w, err := watch.New(dataPath, watch.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	p := viz.NewProgram(m)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {
			recs, err := loadRecords(cfg)
			if err != nil {
				logger.Warn("dataset reload failed", zap.Error(err))
				return
			}
			p.Send(viz.RecordsMsg(dataset.FlowRecords(recs)))
		})
	}()
	_, err = p.Run()
	cancel()
	<-done
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, _, eng, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	gui.Run(eng, gui.Options{
		FPS:     cfg.FPS,
		Title:   "newsflow " + cfg.TargetYear,
		ShowHUD: showHUD,
		Logger:  logger,
	})
	return nil
}
