package cmd

import (
	"github.com/spf13/cobra"

	"tasksoak/config"
)

var (
	cfgFile  string
	baseURL  string
	rounds   int
	steps    int
	scenario string
	seed     int64
	logPath  string
)

var rootCmd = &cobra.Command{
	Use:   "tasksoak",
	Short: "Randomized stateful-property soak harness for a task CRUD API",
	Long: `tasksoak exercises a remote task management API with randomized
sequences of insert/delete/complete/reactivate operations, checking counts
and priority ordering against a local oracle after every step.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "target task resource URL")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-path", "", "run log file path")
}

// loadConfig resolves the effective configuration: defaults, then the YAML
// file, then explicit flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if logPath != "" {
		cfg.LogPath = logPath
	}
	if cmd.Flags().Changed("rounds") {
		cfg.Rounds = rounds
	}
	if cmd.Flags().Changed("steps") {
		cfg.StepsPerRound = steps
	}
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario = scenario
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}
