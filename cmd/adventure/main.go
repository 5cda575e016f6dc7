// adventure is a tile-based action game played in the terminal.
//
// Usage:
//
//	adventure                  - Start menu to pick a level interactively
//	adventure play [level]     - Play a level directly
//	adventure list             - List catalog levels
//	adventure scores [level]   - Show the longest runs
//	adventure hooks            - List script hook kinds and loaded modules
//	adventure level inspect    - Describe a level file
//	adventure level gen        - Generate a level from Perlin noise
//
// Global flags:
//
//	--fps <rate>     - Set frame rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--db <path>      - Set database path (default: ~/.adventure/runs.db)
//	--config <path>  - Use a custom config YAML
//	--log <path>     - Log file (default: ~/.adventure/adventure.log)
//	--debug          - Verbose logging, fail loudly on programming errors
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
	flagDebug   bool

	logger    = log.Default()
	closeLogs = func() error { return nil }
)

func main() {
	err := rootCmd.Execute()
	//nolint:errcheck // Best-effort flush on exit
	closeLogs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "adventure",
	Short: "Adventure - a tile-based action game in your terminal",
	Long: `Adventure drops you on a tile map where bombs keep falling.
Move, attack and drop bombs of your own; survive as long as you can.

Available commands:
  play     - Play a level directly
  list     - Show catalog levels
  scores   - View the longest runs
  hooks    - Inspect script hooks
  level    - Inspect or generate levels

Run without a command to pick a level from the menu.

Examples:
  adventure
  adventure play terrain
  adventure play meadow --seed 7 --difficulty hard
  adventure scores terrain`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, closer, err := newLogger(flagLogPath, flagDebug)
		if err != nil {
			return err
		}
		logger, closeLogs = l, closer
		log.SetDefault(l)
		return nil
	},
	RunE: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.adventure/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.adventure/adventure.log", "Log file path (empty = no logging)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging; panic on duplicate entity ids")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(hooksCmd)
	rootCmd.AddCommand(levelCmd)
}
