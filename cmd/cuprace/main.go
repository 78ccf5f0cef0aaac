// cuprace is a two-player cube-racing card game for the terminal.
//
// Usage:
//
//	cuprace play             - Play a hot-seat game in this terminal
//	cuprace serve            - Start SSH server for remote play
//	cuprace results          - Show finished games and win counts
//	cuprace rules            - Print the rule table
//	cuprace config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Read configuration from this file
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set results database path (default: ~/.cuprace/results.db)
//	--log-level <level> - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuprace/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cuprace",
	Short: "Cup Race - race for colored cups in your terminal",
	Long: `Cup Race is a two-player card game. Each race reveals colored cubes;
players match them with cards of the same color, and the higher or lower
total wins the cubes. Collect enough cubes of a color to take its cup.
The first player with three cups wins.

Available commands:
  play     - Play a hot-seat game in this terminal
  serve    - Start SSH server for remote play
  results  - Show finished games
  rules    - Print the rule table
  config   - Print the effective configuration

Examples:
  cuprace play
  cuprace play --left Ann --right Bob --seed 42
  cuprace serve --ssh :2222
  cuprace results --limit 5`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration, applies global flags the user set and
// then any command-specific overrides, and validates the result.
func loadConfig(cmd *cobra.Command, overrides ...func(*config.Config)) (config.Config, config.Source, error) {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return cfg, src, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, src, fmt.Errorf("invalid configuration (%s): %w", src, err)
	}
	return cfg, src, nil
}
