package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-adventure/internal/config"
	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/platform/tui"
	"github.com/vovakirdan/tui-adventure/internal/session"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

var (
	flagAssetsDir  string
	flagHooksDir   string
	flagNoHooks    bool
	flagDifficulty string
	flagTrigger    string
	flagTheme      string
	flagProfile    string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level. The level is a catalog id (see 'adventure list')
or a level file in the asset pack. Without an argument the configured level
is played.

Controls:
  WASD/Arrows  - Move
  F            - Attack
  G/Click      - Drop a bomb
  Space/P      - Pause
  R            - Restart (after game over)
  Enter        - Leave (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - No ramp at start, faster player
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, slower player
  fixed  - No progression, stays at config's initial level

Examples:
  adventure play
  adventure play meadow --seed 42
  adventure play maps/cave.tmj --assets ./my-pack
  adventure play terrain --difficulty hard --no-hooks
  adventure play --profile cpu`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().StringVar(&flagAssetsDir, "assets", "", "Asset pack directory (default: built-in pack)")
		c.Flags().StringVar(&flagHooksDir, "hooks-dir", "", "Script module directory (default: built-in scripts)")
		c.Flags().BoolVar(&flagNoHooks, "no-hooks", false, "Disable script hooks")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().StringVar(&flagTrigger, "trigger", "", "When bombs hurt: contact or expiry")
		c.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default or mono")
	}
	playCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile to ~/.adventure/profiles: cpu or mem")
}

func runPlay(_ *cobra.Command, args []string) error {
	stop, err := startProfile(flagProfile)
	if err != nil {
		return err
	}
	defer stop()

	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Assets.Level = args[0]
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return playLevel(cfg, preset, store)
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", err
	}

	if flagAssetsDir != "" {
		cfg.Assets.Dir = flagAssetsDir
	}
	if flagHooksDir != "" {
		cfg.Hooks.Dir = flagHooksDir
	}
	if flagNoHooks {
		cfg.Hooks.Enabled = false
	}
	if flagTrigger != "" {
		cfg.Hazard.Trigger = flagTrigger
	}
	if flagTheme != "" {
		cfg.Render.Theme = flagTheme
	}

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		if preset, err = config.ParsePreset(flagDifficulty); err != nil {
			return cfg, "", err
		}
	}
	return cfg, preset, cfg.Validate()
}

// openStore opens the run history. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// terminalSize returns the terminal dimensions, 80x24 when unknown.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// playLevel runs one session until the player leaves.
func playLevel(cfg config.Config, preset config.DifficultyPreset, store *storage.Store) error {
	width, height := terminalSize()

	sess, err := session.New(session.Options{
		Config: cfg,
		Preset: preset,
		Seed:   flagSeed,
		Screen: core.NewScreen(width, max(height-2, 1)), // HUD and help lines
		Debug:  flagDebug,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return tui.Run(sess, store, tui.Options{
		FPS:        flagFPS,
		HoldWindow: cfg.Input.HoldWindow(),
		Theme:      tui.ThemeByName(cfg.Render.Theme),
		Logger:     logger,
	})
}

// startProfile starts a pkg/profile session. The returned func stops it.
func startProfile(kind string) (func(), error) {
	var mode func(*profile.Profile)
	switch kind {
	case "":
		return func() {}, nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		return nil, fmt.Errorf("unknown profile %q (cpu, mem)", kind)
	}

	dir := filepath.Join(expandHome("~"), ".adventure", "profiles")
	p := profile.Start(mode, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook)
	logger.Info("profiling", "kind", kind, "dir", dir)
	return p.Stop, nil
}
