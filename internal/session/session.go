// Package session assembles a playable game from configuration. It loads the
// asset pack, level and script modules once, realizes textures on the
// terminal renderer, and builds a fresh engine with fresh hooks for every run.
package session

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-adventure/internal/assets"
	"github.com/vovakirdan/tui-adventure/internal/config"
	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/engine"
	"github.com/vovakirdan/tui-adventure/internal/hooks"
	"github.com/vovakirdan/tui-adventure/internal/registry"
	"github.com/vovakirdan/tui-adventure/internal/render"
	"github.com/vovakirdan/tui-adventure/internal/tilemap"
)

// Options configures a session.
type Options struct {
	Config config.Config
	// Preset overrides the configured difficulty. Empty keeps the config.
	Preset config.DifficultyPreset
	// Seed fixes the level and hook randomness. Zero picks a new seed per run.
	Seed   int64
	Screen *core.Screen
	Debug  bool
	Logger *log.Logger
}

// Session holds everything that survives a restart: the loaded world, the
// sprite sheets and the renderer their textures live on.
type Session struct {
	cfg    config.Config
	preset config.DifficultyPreset
	seed   int64
	debug  bool
	logger *log.Logger

	term       *render.Terminal
	world      *tilemap.World
	sheets     engine.Sheets
	engineCfg  engine.Config
	difficulty *config.DifficultyManager

	modules []hooks.Module
	runs    int
}

// Run is one engine instance and the seed its hooks were built with.
type Run struct {
	Engine *engine.Engine
	Seed   int64
	Hooks  []string
}

// New loads the configured level, sprite sheets and script modules.
func New(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cfg := opts.Config
	if opts.Preset != "" {
		config.ApplyPreset(&cfg, opts.Preset)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	screen := opts.Screen
	if screen == nil {
		screen = core.NewScreen(80, 24)
	}

	s := &Session{
		cfg:        cfg,
		preset:     opts.Preset,
		seed:       opts.Seed,
		debug:      opts.Debug,
		logger:     logger,
		term:       render.NewTerminal(screen, cfg.Render.CellWidth, cfg.Render.CellHeight),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}

	engineCfg, err := s.buildEngineConfig()
	if err != nil {
		return nil, err
	}
	s.engineCfg = engineCfg

	loader := assets.NewLoader(cfg.Assets.Dir)
	src, err := registry.Lookup(cfg.Assets.Level)
	if err != nil {
		return nil, err
	}
	data, err := src(loader, opts.Seed, s.term)
	if err != nil {
		return nil, fmt.Errorf("session: loading level %s: %w", cfg.Assets.Level, err)
	}
	if s.world, err = tilemap.New(data); err != nil {
		return nil, fmt.Errorf("session: level %s: %w", cfg.Assets.Level, err)
	}

	if s.sheets.Player, err = loader.LoadSpriteSheet(cfg.Player.SpriteSheet, s.term); err != nil {
		return nil, fmt.Errorf("session: player sheet: %w", err)
	}
	if s.sheets.Hazard, err = loader.LoadSpriteSheet(cfg.Hazard.SpriteSheet, s.term); err != nil {
		return nil, fmt.Errorf("session: hazard sheet: %w", err)
	}

	if cfg.Hooks.Enabled {
		var fsys fs.FS = assets.Builtin()
		dir := "scripts"
		if cfg.Hooks.Dir != "" {
			fsys, dir = os.DirFS(cfg.Hooks.Dir), "."
		}
		if s.modules, err = hooks.ReadDir(fsys, dir, logger); err != nil {
			return nil, fmt.Errorf("session: script modules: %w", err)
		}
	}

	cols, rows := s.world.Size()
	logger.Info("session ready",
		"level", cfg.Assets.Level,
		"grid", fmt.Sprintf("%dx%d", cols, rows),
		"layers", s.world.Layers(),
		"modules", len(s.modules),
		"difficulty", s.Difficulty(),
	)
	return s, nil
}

func (s *Session) buildEngineConfig() (engine.Config, error) {
	trigger, err := engine.ParseTrigger(s.cfg.Hazard.Trigger)
	if err != nil {
		return engine.Config{}, err
	}

	ec := engine.DefaultConfig()
	ec.PlayerSpeed = s.cfg.Player.Speed
	ec.PlayerSpawn = core.Pt(s.cfg.Player.SpawnX, s.cfg.Player.SpawnY)
	ec.HazardTTL = s.cfg.Hazard.LifetimeDuration()
	ec.HazardAnimation = s.cfg.Hazard.Animation
	ec.Trigger = trigger
	ec.DropDistance = s.cfg.Hazard.DropDistance
	ec.CollisionThreshold = s.cfg.Collision.Threshold
	ec.Debug = s.debug
	return ec, nil
}

// Start builds a new engine with fresh hooks from the modules read by New
// and initializes its world. It does no disk I/O.
func (s *Session) Start() (*Run, error) {
	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.runs++

	runner := hooks.NewRunner(s.logger)
	for _, h := range hooks.Instantiate(s.modules, seed, s.logger) {
		if r, ok := h.(hooks.Ramped); ok {
			r.SetRamp(s.difficulty)
		}
		runner.Add(h)
	}

	eng := engine.New(s.engineCfg, s.world, s.sheets, s.term, runner, s.logger)
	if err := eng.InitializeWorld(); err != nil {
		return nil, err
	}

	s.logger.Debug("run started", "run", s.runs, "seed", seed, "hooks", runner.Names())
	return &Run{Engine: eng, Seed: seed, Hooks: runner.Names()}, nil
}

// Terminal returns the renderer every run draws into.
func (s *Session) Terminal() *render.Terminal {
	return s.term
}

// World returns the loaded level.
func (s *Session) World() *tilemap.World {
	return s.world
}

// EngineConfig returns the simulation parameters derived from the config.
func (s *Session) EngineConfig() engine.Config {
	return s.engineCfg
}

// Config returns the effective configuration, presets applied.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Level returns the configured level name.
func (s *Session) Level() string {
	return s.cfg.Assets.Level
}

// Difficulty names the difficulty runs are recorded under.
func (s *Session) Difficulty() string {
	if s.preset != "" {
		return string(s.preset)
	}
	return "config"
}

// Runs returns how many runs were started.
func (s *Session) Runs() int {
	return s.runs
}
