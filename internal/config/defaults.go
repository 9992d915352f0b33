package config

import (
	_ "embed"
)

//go:embed defaults/snakepaths.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			Strategy:           "auto",
			Workers:            0,
			ExhaustiveMaxDepth: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DBPath: "~/.snakepaths/runs.db",
			Record: false,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}
