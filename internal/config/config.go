// Package config provides YAML-based configuration loading for the path
// counter: engine settings, logging, the run history database, and extra
// scenario definitions.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-paths/internal/core"
)

// Config is the top-level configuration file.
type Config struct {
	Engine    EngineConfig     `yaml:"engine"`
	Log       LogConfig        `yaml:"log"`
	Storage   StorageConfig    `yaml:"storage"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

// EngineConfig defines how the path search runs.
type EngineConfig struct {
	Strategy           string `yaml:"strategy"`             // "auto", "exhaustive" or "memo"
	Workers            int    `yaml:"workers"`              // 0 = one per CPU
	ExhaustiveMaxDepth int    `yaml:"exhaustive_max_depth"` // auto uses memo above this depth
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// StorageConfig defines the optional run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
	Record bool   `yaml:"record"` // record every count by default
}

// ScenarioConfig is a named input with its expected outcome.
type ScenarioConfig struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Board       []int        `yaml:"board"`
	Snake       [][]int      `yaml:"snake"`
	Depth       int          `yaml:"depth"`
	Expect      ExpectConfig `yaml:"expect"`
}

// ExpectConfig holds either an expected count or an expected error kind.
type ExpectConfig struct {
	Count *uint64 `yaml:"count,omitempty"`
	Error string  `yaml:"error,omitempty"` // board-shape, snake-shape or depth-range
}

// Runtime converts the engine section into the enumerator's settings.
func (e EngineConfig) Runtime() (core.RuntimeConfig, error) {
	strategy, err := core.ParseStrategy(e.Strategy)
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	rc := core.DefaultConfig()
	rc.Strategy = strategy
	rc.Workers = e.Workers
	if e.ExhaustiveMaxDepth > 0 {
		rc.ExhaustiveMaxDepth = e.ExhaustiveMaxDepth
	}
	return rc, nil
}

// LogLevel parses the configured level, defaulting to info.
func (l LogConfig) LogLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(l.Level)
}

// Validate reports every problem in the config at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := core.ParseStrategy(c.Engine.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("engine.strategy: %w", err))
	}
	if c.Engine.Workers < 0 {
		errs = append(errs, fmt.Errorf("engine.workers must not be negative, got %d", c.Engine.Workers))
	}
	if c.Engine.ExhaustiveMaxDepth < 0 {
		errs = append(errs, fmt.Errorf("engine.exhaustive_max_depth must not be negative, got %d", c.Engine.ExhaustiveMaxDepth))
	}
	if _, err := c.Log.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if err := ValidateScenarios(c.Scenarios); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateScenarios checks names are present and unique and that each
// expectation is well formed.
func ValidateScenarios(scenarios []ScenarioConfig) error {
	var errs []error
	seen := make(map[string]bool)
	for i, s := range scenarios {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("scenarios[%d]: name is required", i))
			continue
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("scenarios[%d]: duplicate name %q", i, s.Name))
		}
		seen[s.Name] = true
		if s.Expect.Count != nil && s.Expect.Error != "" {
			errs = append(errs, fmt.Errorf("scenario %q: expect either a count or an error, not both", s.Name))
		}
		if s.Expect.Error != "" && !validKind(s.Expect.Error) {
			errs = append(errs, fmt.Errorf("scenario %q: unknown error kind %q", s.Name, s.Expect.Error))
		}
	}
	return errors.Join(errs...)
}

func validKind(kind string) bool {
	switch core.ConstraintKind(kind) {
	case core.KindBoardShape, core.KindSnakeShape, core.KindDepthRange:
		return true
	}
	return false
}
