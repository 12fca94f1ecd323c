// unbolt is a headless bolt-and-slot puzzle engine.
//
// Usage:
//
//	unbolt levels              - List available levels
//	unbolt play <level>        - Replay a move list against a level
//	unbolt validate <file>...  - Check level files (and their solutions)
//	unbolt results [level]     - Show recorded runs and statistics
//
// Global flags:
//
//	--fps <rate>      - Override tick rate (default: from config)
//	--db <path>       - Set database path (default: ~/.unbolt/runs.db)
//	--config <path>   - Use a specific engine config file
//	--policy <name>   - Attachment policy preset: first, second, latest
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/unbolt/internal/config"

	// Import level packs to register them
	_ "github.com/vovakirdan/unbolt/internal/levels/builtin"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagPolicy  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "unbolt",
	Short: "Unbolt - headless bolt-and-slot puzzle engine",
	Long: `Unbolt simulates puzzles where planks are held by bolts. Moving
bolts into empty slots makes a plank lock, pivot around its last bolt,
or fall out of the world. The board is won when no plank holds a bolt.

Available commands:
  levels    - Show all available levels
  play      - Replay moves against a level
  validate  - Check level files
  results   - View recorded runs

Examples:
  unbolt levels
  unbolt play intro
  unbolt play intro --moves "h1>s1,h2>s2"
  unbolt play ./my-level.yaml --policy latest
  unbolt results intro`,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.unbolt/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "Policy preset: first, second, latest")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resultsCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "unbolt",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig resolves the engine config and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, flagPolicy); err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Runtime.TickRate = flagFPS
	}
	return cfg, cfg.Validate()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
