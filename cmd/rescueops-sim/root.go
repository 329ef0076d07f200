package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mdobak/go-xerrors"
	"github.com/spf13/cobra"

	"rescueops-sim/internal/config"
	"rescueops-sim/internal/logging"
)

var (
	rootLogLevel string
	rootEnvFile  string
)

var rootCmd = &cobra.Command{
	Use:           "rescueops-sim",
	Short:         "Rescue robot mission simulator",
	Long:          "RescueOps-Sim generates hazardous-site sensor worlds and fuses each reading into a rescue priority and logistics command.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(rootEnvFile); err != nil {
			return err
		}
		level := rootLogLevel
		if !cmd.Flags().Changed("log-level") {
			if v := os.Getenv("LOG_LEVEL"); v != "" {
				level = v
			}
		}
		logger := logging.New(level, os.Stderr)
		cmd.SetContext(logging.NewContext(cmd.Context(), logger))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger := logging.New(rootLogLevel, os.Stderr)
		logger.ErrorContext(ctx, "command failed", slog.Any("error", xerrors.New(err)))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootEnvFile, "env-file", ".env", "Dotenv file with RESCUE_SEED, MISSION_ID and TICK_INTERVAL")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scenariosCmd)
}
