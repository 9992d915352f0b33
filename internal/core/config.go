package core

import (
	"fmt"
	"runtime"
)

// Strategy selects how the path search walks the move space.
type Strategy string

const (
	StrategyAuto       Strategy = "auto"
	StrategyExhaustive Strategy = "exhaustive"
	StrategyMemo       Strategy = "memo"
)

// ParseStrategy validates a strategy name. Empty means auto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyExhaustive, StrategyMemo:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q (want auto, exhaustive or memo)", s)
}

// RuntimeConfig contains the search settings handed to the enumerator.
type RuntimeConfig struct {
	Strategy           Strategy
	Workers            int // 0 means runtime.NumCPU()
	ExhaustiveMaxDepth int // auto switches to memo above this depth
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Strategy:           StrategyAuto,
		Workers:            0,
		ExhaustiveMaxDepth: 10,
	}
}

// EffectiveWorkers resolves the zero value to the CPU count.
func (c RuntimeConfig) EffectiveWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Resolve picks the concrete strategy for a given depth.
func (c RuntimeConfig) Resolve(depth int) Strategy {
	switch c.Strategy {
	case StrategyExhaustive, StrategyMemo:
		return c.Strategy
	}
	maxDepth := c.ExhaustiveMaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultConfig().ExhaustiveMaxDepth
	}
	if depth <= maxDepth {
		return StrategyExhaustive
	}
	return StrategyMemo
}
