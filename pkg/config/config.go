// Package config provides YAML-backed configuration for optimization runs:
// run settings, termination bounds, evaluation concurrency and niching
// parameters, validated with struct tags before use.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/XiaoConstantine/moea-go/pkg/core"
	"github.com/XiaoConstantine/moea-go/pkg/engine"
	"github.com/XiaoConstantine/moea-go/pkg/errors"
	"github.com/XiaoConstantine/moea-go/pkg/evaluation"
	"github.com/XiaoConstantine/moea-go/pkg/logging"
	"github.com/XiaoConstantine/moea-go/pkg/termination"
)

// Config is the complete run configuration.
type Config struct {
	// Run settings
	Run RunConfig `yaml:"run,omitempty" validate:"omitempty"`

	// Termination bounds; at least one must be set
	Termination TerminationConfig `yaml:"termination,omitempty" validate:"omitempty"`

	// Evaluation configuration
	Evaluation EvaluationConfig `yaml:"evaluation,omitempty" validate:"omitempty"`

	// Niching configuration
	Niching NichingConfig `yaml:"niching,omitempty" validate:"omitempty"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,omitempty" validate:"omitempty"`
}

// RunConfig holds the outer run settings.
type RunConfig struct {
	// Random seed; omitted means one is drawn and recorded on the Result
	Seed *int64 `yaml:"seed,omitempty"`

	// Print a progress line each generation
	Verbose bool `yaml:"verbose,omitempty"`

	// Keep a deep population snapshot per generation
	SaveHistory bool `yaml:"save_history,omitempty"`
}

// TerminationConfig bounds the run. Every bound set becomes one criterion;
// the run stops when any of them triggers.
type TerminationConfig struct {
	MaxGenerations int `yaml:"max_generations,omitempty" validate:"min=0"`

	MaxEvaluations int `yaml:"max_evaluations,omitempty" validate:"min=0"`

	// Wall-clock budget, polled once per generation boundary
	MaxDuration time.Duration `yaml:"max_duration,omitempty" validate:"min=0"`
}

// EvaluationConfig configures the default evaluator.
type EvaluationConfig struct {
	// Number of concurrent evaluation chunks; below two keeps evaluation
	// sequential
	Concurrency int `yaml:"concurrency,omitempty" validate:"min=0"`
}

// NichingConfig configures epsilon-clearing based selection.
type NichingConfig struct {
	Epsilon float64 `yaml:"epsilon,omitempty" validate:"min=0"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`
}

// Default returns a configuration with sensible defaults: sequential
// evaluation, clearing epsilon 0.05, INFO logging, no termination bounds.
func Default() *Config {
	return &Config{
		Evaluation: EvaluationConfig{Concurrency: 1},
		Niching:    NichingConfig{Epsilon: 0.05},
		Logging:    LoggingConfig{Level: "INFO"},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ConfigurationInvalid, "failed to read config file")
	}
	return Parse(data)
}

// Parse unmarshals YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.ConfigurationInvalid, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, errors.ValidationFailed, "invalid configuration")
	}
	return nil
}

// BuildTermination assembles the configured bounds into one predicate, or
// nil when no bound is set.
func (c *Config) BuildTermination() core.Termination {
	var criteria []core.Termination
	if c.Termination.MaxGenerations > 0 {
		criteria = append(criteria, termination.NewMaxGenerations(c.Termination.MaxGenerations))
	}
	if c.Termination.MaxEvaluations > 0 {
		criteria = append(criteria, termination.NewMaxEvaluations(c.Termination.MaxEvaluations))
	}
	if c.Termination.MaxDuration > 0 {
		criteria = append(criteria, termination.NewTimeBudget(c.Termination.MaxDuration))
	}

	switch len(criteria) {
	case 0:
		return nil
	case 1:
		return criteria[0]
	default:
		return termination.NewCombined(criteria...)
	}
}

// EngineOptions translates the configuration into engine options.
func (c *Config) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithVerbose(c.Run.Verbose),
		engine.WithSaveHistory(c.Run.SaveHistory),
		engine.WithEvaluator(evaluation.New(evaluation.WithConcurrency(c.Evaluation.Concurrency))),
	}
	if c.Run.Seed != nil {
		opts = append(opts, engine.WithSeed(*c.Run.Seed))
	}
	if t := c.BuildTermination(); t != nil {
		opts = append(opts, engine.WithTermination(t))
	}
	return opts
}

// ApplyLogging installs a global logger at the configured level.
func (c *Config) ApplyLogging() {
	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: logging.ParseSeverity(c.Logging.Level),
		Outputs:  []logging.Output{logging.NewConsoleOutput(true)},
	}))
}
