package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-adventure/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the longest runs",
	Long: `Display the longest runs on a level, or across all levels when no
level is given.

Examples:
  adventure scores terrain
  adventure scores --recent
  adventure scores meadow --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the longest")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs")
}

func runScores(_ *cobra.Command, args []string) error {
	level := ""
	if len(args) == 1 {
		level = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(level); err != nil {
			return err
		}
		logger.Info("runs cleared", "level", level)
		fmt.Println("Runs cleared.")
		return nil
	}

	var runs []storage.Run
	title := "Longest runs"
	if flagScoresRecent {
		title = "Recent runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		runs, err = store.TopRuns(level, flagScoresLimit)
	}
	if err != nil {
		return err
	}
	if level != "" {
		title += " - " + level
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'adventure play' to record the first run!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-12s  %-5s  %-6s  %-10s  %s\n", "Rank", "Time", "Level", "Bombs", "Result", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-5s  %-6s  %-10s  %s\n", "----", "----", "-----", "-----", "------", "----------", "----")

	// Print runs
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-12s  %-5d  %-6s  %-10s  %s\n",
			i+1,
			fmt.Sprintf("%.1fs", r.Survived.Seconds()),
			r.Level,
			r.Hazards,
			r.Outcome,
			r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	// Show level summary
	if level != "" {
		stats, err := store.GetLevelStats(level)
		if err == nil {
			fmt.Println()
			fmt.Printf("Best: %.1fs  Average: %.1fs  Runs: %d\n",
				stats.Best.Seconds(), stats.Average.Seconds(), stats.Runs)
		}
	}
	return nil
}
