package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rescueops-sim/internal/logging"
	"rescueops-sim/internal/sim"
)

var (
	batchFlags    missionFlags
	batchRuns     int
	batchSeedBase int64
	batchSeedStep int64
	batchParallel int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many independent missions in parallel",
	Long:  "batch runs the same scenario with seeds base, base+step, ... and prints one summary row per run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		log := logging.FromContext(ctx)

		cfg, err := batchFlags.loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		profile, err := resolveProfile(cfg, false, nil, nil)
		if err != nil {
			return err
		}
		det, err := newDetector(cfg.Classifier)
		if err != nil {
			return err
		}
		setup := newSetup(cfg, profile, det)
		if cfg.MissionID == "" {
			setup.MissionID = "batch"
		}

		base := batchSeedBase
		if !cmd.Flags().Changed("seed-base") && cfg.Seed != nil {
			base = *cfg.Seed
		}
		runs, err := sim.RunBatch(ctx, setup, sim.BatchOptions{
			Runs:        batchRuns,
			SeedBase:    base,
			SeedStep:    batchSeedStep,
			Parallelism: batchParallel,
		})
		if err != nil {
			return err
		}
		log.Info("batch finished", "runs", len(runs), "scenario", profile.Name)
		return sim.WriteBatchSummary(cmd.OutOrStdout(), runs)
	},
}

func init() {
	batchFlags.register(batchCmd)
	fs := batchCmd.Flags()
	fs.IntVar(&batchRuns, "runs", 10, "Number of missions")
	fs.Int64Var(&batchSeedBase, "seed-base", 1, "Seed of the first run")
	fs.Int64Var(&batchSeedStep, "seed-step", 1, "Seed increment between runs")
	fs.IntVar(&batchParallel, "parallel", 0, "Maximum concurrent runs (0 uses GOMAXPROCS)")
}
