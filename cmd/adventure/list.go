package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-adventure/internal/registry"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog levels",
	Long: `Shows every level registered in the catalog with its best time.
Level files in an asset pack can be played by path as well.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	var stats map[string]*storage.LevelStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllLevelStats()
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxTitleLen = max(maxTitleLen, len(l.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----")

	// Print levels
	for _, l := range levels {
		best := "-"
		if s, ok := stats[l.ID]; ok && s.Runs > 0 {
			best = fmt.Sprintf("%.1fs", s.Best.Seconds())
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, l.ID, maxTitleLen, l.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'adventure play <id>' to play a level.")
}
