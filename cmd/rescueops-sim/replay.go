package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rescueops-sim/internal/logging"
	"rescueops-sim/internal/sim"
)

var (
	replayInput string
	replaySpeed float64
	replayCSV   string
	replayQuiet bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a fused point log file",
	Long:  "replay feeds fused points from a JSONL log back to STDOUT and optionally converts them to CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, cleanup, err := newWriters(!replayQuiet, "", replayCSV)
		if err != nil {
			return err
		}
		if writer == nil {
			cleanup()
			return fmt.Errorf("nothing to replay to, drop --quiet or set --csv")
		}
		logging.FromContext(cmd.Context()).Info("replaying", "input", replayInput, "speed", replaySpeed)
		if err := sim.ReplayLogFile(replayInput, writer, replaySpeed); err != nil {
			cleanup()
			return err
		}
		return cleanup()
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to fused point log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 disables pacing)")
	replayCmd.Flags().StringVar(&replayCSV, "csv", "", "Also write the replayed points as CSV")
	replayCmd.Flags().BoolVar(&replayQuiet, "quiet", false, "Do not print points to STDOUT")
	replayCmd.MarkFlagRequired("input")
}
