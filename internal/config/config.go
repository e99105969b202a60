// Package config loads the co-pilot's tuning knobs from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Evaluator names for the ranking metric behind the "best" command.
const (
	EvaluatorStates    = "states"
	EvaluatorSolutions = "solutions"
)

// Config holds the runtime settings for solving and action evaluation.
type Config struct {
	// Workers is the size of the pool shared by state generation and
	// candidate scans. Zero or negative means one worker per CPU.
	Workers int `json:"workers"`
	// SampleRate is the fraction of hypotheses action evaluation looks at.
	// Zero disables sampling and scans every hypothesis.
	SampleRate float64 `json:"sample_rate"`
	// Streaming makes evaluations report leaderboard changes as they happen.
	Streaming bool `json:"streaming"`
	// Evaluator selects the ranking metric, "states" or "solutions".
	Evaluator string `json:"evaluator"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Workers:    runtime.NumCPU(),
		SampleRate: 0,
		Streaming:  true,
		Evaluator:  EvaluatorStates,
	}
}

// Load reads and validates the configuration from a file. A missing file is
// not an error; it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return nil, fmt.Errorf("config: sample_rate %v is not in [0, 1]", cfg.SampleRate)
	}
	switch cfg.Evaluator {
	case "":
		cfg.Evaluator = EvaluatorStates
	case EvaluatorStates, EvaluatorSolutions:
	default:
		return nil, fmt.Errorf("config: unknown evaluator %q", cfg.Evaluator)
	}
	return cfg, nil
}
