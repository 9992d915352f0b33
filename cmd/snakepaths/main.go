// snakepaths counts the legal move sequences of a snake on a small board.
//
// Usage:
//
//	snakepaths count --board 4x3 --snake "2,2 3,2 3,1" --depth 3
//	snakepaths list              - List registered scenarios
//	snakepaths run [name...]     - Check scenarios against their expected results
//	snakepaths show <name>       - Draw a scenario's board and first moves
//	snakepaths history           - Show recorded runs
//	snakepaths config            - Print or write the default config
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.snakepaths/config.yaml)
//	--db <path>          - Run history database (default: ~/.snakepaths/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--cpuprofile <dir>   - Write a CPU profile into dir
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-paths/internal/config"
	"github.com/vovakirdan/snake-paths/internal/scenarios"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagLogLevel   string
	flagCPUProfile string
)

var (
	appCfg   config.Config
	logger   *log.Logger
	profiler interface{ Stop() }
)

// errReported signals a failure whose details were already printed.
var errReported = errors.New("failed")

func main() {
	err := rootCmd.Execute()
	if profiler != nil {
		profiler.Stop()
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakepaths",
	Short: "Count the legal move sequences of a snake on a board",
	Long: `snakepaths counts how many distinct sequences of moves (L, R, D, U)
of an exact length a snake can make without leaving the board or
running into its own body.

Available commands:
  count    - Count paths for a board, snake and depth
  list     - Show all registered scenarios
  run      - Check scenarios against their expected results
  show     - Draw a board with its snake and legal first moves
  history  - View recorded runs
  config   - Print or write the default config

Examples:
  snakepaths count --board 4x3 --snake "2,2 3,2 3,1 3,0 2,0 1,0 0,0" --depth 3
  snakepaths run
  snakepaths run loop-10x10 --strategy memo
  snakepaths show hook-4x3
  snakepaths history --scenario hook-4x3`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config: ~/.snakepaths/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagCPUProfile, "cpuprofile", "", "Write a CPU profile into this directory")

	// Add subcommands
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads config, applies env and flag overrides, and builds the logger.
// Flags win over env, env wins over the config file.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	appCfg = cfg

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakepaths",
	})
	level, _ := cfg.Log.LogLevel() // checked by Validate
	logger.SetLevel(level)

	source := flagConfig
	if source == "" {
		source = "config"
	}
	if err := scenarios.AddConfigured(cfg.Scenarios, source); err != nil {
		logger.Warn("skipping configured scenarios", "error", err)
	}

	if flagCPUProfile != "" {
		profiler = profile.Start(
			profile.CPUProfile,
			profile.ProfilePath(flagCPUProfile),
			profile.NoShutdownHook,
			profile.Quiet,
		)
		logger.Info("cpu profiling enabled", "dir", flagCPUProfile)
	}
	return nil
}
