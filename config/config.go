// Package config loads the harness configuration from a YAML file, with
// defaults suitable for a local soak run against the reference stub.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML accepts "30m"-style strings.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Actions holds the probability weights for the two draws a step performs.
type Actions struct {
	Insert     float64 `yaml:"insert"`
	Delete     float64 `yaml:"delete"`
	Complete   float64 `yaml:"complete"`
	Reactivate float64 `yaml:"reactivate"`
}

// Config is the full harness configuration surface.
type Config struct {
	BaseURL               string        `yaml:"base_url"`
	Rounds                int           `yaml:"rounds"`
	StepsPerRound         int           `yaml:"steps_per_round"`
	Scenario              string        `yaml:"scenario"`
	Seed                  int64         `yaml:"seed"`
	LogPath               string        `yaml:"log_path"`
	RoundTimeout          Duration      `yaml:"round_timeout"`
	TolerateMissingDelete bool          `yaml:"tolerate_missing_delete"`
	Actions               Actions       `yaml:"actions"`
}

// Default returns the configuration used when no file or flags override it.
// A zero Seed means "derive from the clock"; the runner logs whichever seed
// it ends up using.
func Default() Config {
	return Config{
		BaseURL:       "http://localhost:8080",
		Rounds:        20,
		StepsPerRound: 1000,
		Scenario:      "completion-tracking",
		LogPath:       "tasksoak.log",
		RoundTimeout:  Duration(30 * time.Minute),
		Actions: Actions{
			Insert:     0.6,
			Delete:     0.4,
			Complete:   0.75,
			Reactivate: 0.25,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// TASKSOAK_BASE_URL, when set, overrides the target in either case.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if base := os.Getenv("TASKSOAK_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	return cfg, nil
}

// Validate rejects configurations the runner cannot execute.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be >= 1, got %d", c.Rounds)
	}
	if c.StepsPerRound < 1 {
		return fmt.Errorf("steps_per_round must be >= 1, got %d", c.StepsPerRound)
	}
	if c.RoundTimeout <= 0 {
		return fmt.Errorf("round_timeout must be positive, got %s", c.RoundTimeout)
	}
	if c.LogPath == "" {
		return fmt.Errorf("log_path is required")
	}
	a := c.Actions
	for name, w := range map[string]float64{
		"insert": a.Insert, "delete": a.Delete, "complete": a.Complete, "reactivate": a.Reactivate,
	} {
		if w < 0 {
			return fmt.Errorf("action weight %s must not be negative, got %v", name, w)
		}
	}
	if a.Insert+a.Delete <= 0 {
		return fmt.Errorf("insert and delete weights must not both be zero")
	}
	return nil
}
