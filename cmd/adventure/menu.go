package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-adventure/internal/platform/tui"
)

// runMenu shows the level picker. After a run ends, you return to the menu
// to play again.
func runMenu(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	theme := tui.ThemeByName(cfg.Render.Theme)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	current := cfg.Assets.Level
	for {
		width, height := terminalSize()

		// Show menu and get selection
		result, err := tui.RunMenu(store, current, theme, width, height)
		if err != nil {
			return err
		}

		if result.Quit {
			return nil
		}

		// Check if user wants scoreboard
		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, theme, width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		current = result.Level
		levelCfg := cfg
		levelCfg.Assets.Level = current
		if err := playLevel(levelCfg, preset, store); err != nil {
			fmt.Fprintf(os.Stderr, "Error running level %s: %v\n", current, err)
			logger.Error("run failed", "level", current, "err", err)
		}

		// Loop back to menu
	}
}
