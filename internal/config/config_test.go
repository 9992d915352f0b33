package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-paths/internal/core"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Engine.Strategy)
	assert.Equal(t, 10, cfg.Engine.ExhaustiveMaxDepth)
	assert.Equal(t, "~/.snakepaths/runs.db", cfg.Storage.DBPath)
	require.Len(t, cfg.Scenarios, 1)
	assert.Equal(t, "corner-line", cfg.Scenarios[0].Name)
	require.NotNil(t, cfg.Scenarios[0].Expect.Count)
	assert.Equal(t, uint64(10), *cfg.Scenarios[0].Expect.Count)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := writeFile(t, "custom.yaml", `
engine:
  strategy: memo
  workers: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memo", cfg.Engine.Strategy)
	assert.Equal(t, 2, cfg.Engine.Workers)
	// Omitted keys keep their defaults
	assert.Equal(t, 10, cfg.Engine.ExhaustiveMaxDepth)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "engine: [not, a, map")
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestEngineRuntime(t *testing.T) {
	rc, err := EngineConfig{Strategy: "exhaustive", Workers: 3}.Runtime()
	require.NoError(t, err)
	assert.Equal(t, core.StrategyExhaustive, rc.Strategy)
	assert.Equal(t, 3, rc.Workers)
	assert.Equal(t, core.DefaultConfig().ExhaustiveMaxDepth, rc.ExhaustiveMaxDepth)

	_, err = EngineConfig{Strategy: "random"}.Runtime()
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	level, err := LogConfig{}.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)

	level, err = LogConfig{Level: "debug"}.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestValidateCollectsProblems(t *testing.T) {
	count := uint64(1)
	cfg := DefaultConfig()
	cfg.Engine.Strategy = "bogus"
	cfg.Engine.Workers = -1
	cfg.Scenarios = []ScenarioConfig{
		{Name: "a"},
		{Name: "a"},
		{Name: ""},
		{Name: "both", Expect: ExpectConfig{Count: &count, Error: "depth-range"}},
		{Name: "kind", Expect: ExpectConfig{Error: "too-long"}},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"engine.strategy", "engine.workers", "duplicate name", "name is required", "not both", "unknown error kind"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestLoadScenarioFile(t *testing.T) {
	path := writeFile(t, "scenarios.yaml", `
scenarios:
  - name: loop
    board: [10, 10]
    snake: [[5, 5], [5, 4], [4, 4], [4, 5]]
    depth: 4
    expect:
      count: 81
  - name: too-deep
    board: [10, 10]
    snake: [[5, 5], [5, 4], [4, 4], [4, 5]]
    depth: 21
    expect:
      error: depth-range
`)

	scenarios, err := LoadScenarioFile(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, []int{10, 10}, scenarios[0].Board)
	assert.Equal(t, [][]int{{5, 5}, {5, 4}, {4, 4}, {4, 5}}, scenarios[0].Snake)
	assert.Equal(t, "depth-range", scenarios[1].Expect.Error)
	assert.Nil(t, scenarios[1].Expect.Count)
}

func TestLoadScenarioFileRejectsDuplicates(t *testing.T) {
	path := writeFile(t, "dupes.yaml", `
scenarios:
  - name: same
    board: [3, 3]
    snake: [[0, 0], [0, 1], [0, 2]]
    depth: 1
  - name: same
    board: [3, 3]
    snake: [[0, 0], [0, 1], [0, 2]]
    depth: 2
`)

	_, err := LoadScenarioFile(path)
	assert.ErrorContains(t, err, "duplicate name")
}

func TestApplyEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "SNAKEPATHS_DB=/tmp/from-dotenv.db\nSNAKEPATHS_STRATEGY=memo\n")

	t.Setenv(EnvWorkers, "4")
	t.Setenv(EnvLogLevel, "debug")
	// Keys set by the test must exist so t.Setenv restores them afterwards.
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvStrategy, "")
	os.Unsetenv(EnvDBPath)
	os.Unsetenv(EnvStrategy)

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg, envFile))

	assert.Equal(t, "/tmp/from-dotenv.db", cfg.Storage.DBPath)
	assert.Equal(t, "memo", cfg.Engine.Strategy)
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnvMissingFileIsFine(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, ApplyEnv(&cfg, filepath.Join(t.TempDir(), "absent.env")))
}

func TestApplyEnvBadWorkers(t *testing.T) {
	t.Setenv(EnvWorkers, "many")

	cfg := DefaultConfig()
	assert.Error(t, ApplyEnv(&cfg, filepath.Join(t.TempDir(), "absent.env")))
}
