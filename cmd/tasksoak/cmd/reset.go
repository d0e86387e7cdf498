package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tasksoak/taskapi"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every task the resource currently lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := taskapi.New(cfg.BaseURL)
		ctx := context.Background()
		tasks, err := client.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if err := client.Remove(ctx, t.ID); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d tasks from %s\n", len(tasks), cfg.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
