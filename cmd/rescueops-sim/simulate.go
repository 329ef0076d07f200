package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rescueops-sim/internal/logging"
	"rescueops-sim/internal/sim"
)

var (
	simFlags       missionFlags
	simTick        time.Duration
	simSeed        int64
	simCSV         string
	simLogFile     string
	simMetrics     string
	simQuiet       bool
	simNoPrompt    bool
	simReportWidth int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one rescue mission",
	Long:  "simulate generates a scenario world, fuses every point in order and prints the mission report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		log := logging.FromContext(ctx)

		cfg, err := simFlags.loadConfig(cmd)
		if err != nil {
			return err
		}
		fs := cmd.Flags()
		if fs.Changed("tick") {
			cfg.TickInterval.Duration = simTick
		}
		if fs.Changed("seed") {
			cfg.Seed = &simSeed
		}
		if fs.Changed("csv") {
			cfg.Export.CSVPath = simCSV
		}
		if fs.Changed("log-file") {
			cfg.Export.LogPath = simLogFile
		}
		if fs.Changed("metrics") {
			cfg.Export.MetricsPath = simMetrics
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		profile, err := resolveProfile(cfg, !simNoPrompt, cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		det, err := newDetector(cfg.Classifier)
		if err != nil {
			return err
		}
		setup := newSetup(cfg, profile, det)

		var metrics *sim.Metrics
		if cfg.Export.MetricsPath != "" {
			metrics = sim.NewMetrics(setup.MissionID, profile.Name)
			setup.Options.Metrics = metrics
		}

		writer, cleanup, err := newWriters(!simQuiet, cfg.Export.LogPath, cfg.Export.CSVPath)
		if err != nil {
			return err
		}

		seed, fixed := seedOf(cfg)
		log.Info("mission configured", "mission_id", setup.MissionID, "scenario", profile.Name,
			"seed", seed, "seeded", fixed, "classifier", cfg.Classifier.Kind)

		m, err := setup.Build(seed, writer)
		if err != nil {
			cleanup()
			return err
		}
		res, err := m.Run(ctx)
		if cerr := cleanup(); cerr != nil {
			log.Warn("closing exports failed", "error", cerr)
		}
		if err != nil {
			return err
		}
		if res.WriteErr != nil {
			log.Warn("export stopped early", "error", res.WriteErr)
		}
		if tried, err := reexportCSV(cfg.Export.CSVPath, res); err != nil {
			log.Warn("csv export from history failed", "path", cfg.Export.CSVPath, "error", err)
		} else if tried {
			log.Info("csv rewritten from mission history", "path", cfg.Export.CSVPath, "points", len(res.History))
		}
		if metrics != nil {
			if err := metrics.WriteTextfile(cfg.Export.MetricsPath); err != nil {
				log.Warn("writing metrics failed", "path", cfg.Export.MetricsPath, "error", err)
			}
		}

		return sim.BuildReport(res, profile).Render(cmd.ErrOrStderr(), simReportWidth)
	},
}

func init() {
	simFlags.register(simulateCmd)
	fs := simulateCmd.Flags()
	fs.DurationVar(&simTick, "tick", 0, "Pause between points (e.g. 200ms); 0 runs as fast as possible")
	fs.Int64Var(&simSeed, "seed", 0, "Random seed for a reproducible mission")
	fs.StringVar(&simCSV, "csv", "", "Export the fused history as CSV")
	fs.StringVar(&simLogFile, "log-file", "", "Export fused points as JSONL for replay")
	fs.StringVar(&simMetrics, "metrics", "", "Write Prometheus metrics in textfile format")
	fs.BoolVar(&simQuiet, "quiet", false, "Do not print fused points to STDOUT")
	fs.BoolVar(&simNoPrompt, "no-prompt", false, "Fail instead of prompting when no scenario is given")
	fs.IntVar(&simReportWidth, "report-width", 80, "Wrap the mission report at this width (0 disables)")
}
