package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tasksoak/runlog"
	"tasksoak/soak"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a soak run against the configured task resource",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := runlog.New(cfg.LogPath)
		if err != nil {
			return err
		}
		defer closeLog()

		runner, err := soak.New(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := runner.Run(ctx); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&rounds, "rounds", 0, "number of rounds (default from config)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "effective steps per round (default from config)")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "scenario: priority-order or completion-tracking")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "PRNG seed; 0 derives one from the clock")
	rootCmd.AddCommand(runCmd)
}
