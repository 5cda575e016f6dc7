// Package engine drives one game session: it sequences hooks, player input,
// hazard lifetimes and collisions every tick and issues the render pass.
package engine

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-adventure/internal/assets"
	"github.com/vovakirdan/tui-adventure/internal/collision"
	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/entity"
	"github.com/vovakirdan/tui-adventure/internal/hooks"
	"github.com/vovakirdan/tui-adventure/internal/input"
	"github.com/vovakirdan/tui-adventure/internal/player"
	"github.com/vovakirdan/tui-adventure/internal/sprite"
	"github.com/vovakirdan/tui-adventure/internal/state"
	"github.com/vovakirdan/tui-adventure/internal/tilemap"
)

var (
	// ErrWorldNotInitialized is returned by queries that need the player
	// before InitializeWorld ran.
	ErrWorldNotInitialized = errors.New("engine: world not initialized")
	// ErrAlreadyInitialized is returned by a second InitializeWorld call.
	ErrAlreadyInitialized = errors.New("engine: world already initialized")
)

// Renderer is the drawing surface the engine renders into.
type Renderer interface {
	assets.TextureLoader

	Clear()
	Present()
	SetWorldBounds(w, h int)
	CameraLookAt(p core.Point)
	ScreenToWorld(p core.Point) core.Point
	RenderTexture(id core.TextureID, src, dst core.Rect)
	DrawOverlay(title string, lines ...string)
}

// Sheets are the sprite sheets the engine instantiates entities from.
type Sheets struct {
	Player *sprite.Sheet
	Hazard *sprite.Sheet
}

// Stats summarizes a session for the HUD and the score table.
type Stats struct {
	Survived   time.Duration // simulation time spent running
	Ticks      int           // simulated ticks
	Spawned    int           // hazards created
	Expired    int           // hazards that ran out their lifetime
	HookFaults int
}

// Engine owns every entity of one session. It is driven from a single
// goroutine and is not safe for concurrent use.
type Engine struct {
	cfg      Config
	world    *tilemap.World
	sheets   Sheets
	renderer Renderer
	runner   *hooks.Runner
	logger   *log.Logger

	entities   *entity.Registry
	machine    *state.Machine
	controller *player.Controller
	detector   *collision.Detector

	playerID entity.ID
	ready    bool

	lastTick time.Time
	clock    time.Duration
	stats    Stats
}

// New creates an engine for a loaded world. runner may be nil.
func New(cfg Config, world *tilemap.World, sheets Sheets, r Renderer, runner *hooks.Runner, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = hooks.NewRunner(logger)
	}
	if cfg.HazardTTL <= 0 {
		cfg.HazardTTL = DefaultHazardTTL
	}
	if cfg.Trigger == "" {
		cfg.Trigger = TriggerContact
	}

	w, h := world.WorldBounds()
	e := &Engine{
		cfg:        cfg,
		world:      world,
		sheets:     sheets,
		renderer:   r,
		runner:     runner,
		logger:     logger,
		entities:   entity.NewRegistry(),
		machine:    state.New(),
		controller: player.New(cfg.PlayerSpeed, w, h),
		detector:   collision.New(cfg.CollisionThreshold),
	}

	e.machine.OnChange(func(from, to state.State) {
		e.logger.Info("state changed", "from", from, "to", to, "t", e.clock)
	})

	if n := world.Unknown(); n > 0 {
		logger.Debug("level has cells with unknown tile ids", "count", n)
	}
	if sheets.Hazard != nil && !sheets.Hazard.Has(cfg.HazardAnimation) {
		logger.Debug("hazard sheet lacks animation", "sheet", sheets.Hazard.Name, "animation", cfg.HazardAnimation)
	}
	return e
}

// InitializeWorld spawns the player and hands the world size to the renderer.
func (e *Engine) InitializeWorld() error {
	if e.ready {
		return ErrAlreadyInitialized
	}

	p := entity.NewPlayer(e.sheets.Player, e.cfg.PlayerSpawn)
	e.controller.Teleport(p, e.cfg.PlayerSpawn)
	if p.Sprite != nil {
		sprite.Activate(&p.Sprite.Cursor, p.Sprite.Sheet, player.AnimIdle+p.Player.Facing.String())
	}

	id, err := e.add(p)
	if err != nil {
		return err
	}
	e.playerID = id
	e.ready = true

	w, h := e.world.WorldBounds()
	if e.renderer != nil {
		e.renderer.SetWorldBounds(w, h)
	}
	e.logger.Info("world initialized", "width", w, "height", h, "player", p.Pos)
	return nil
}

// Tick advances the session by one frame.
//
// Elapsed time is measured on every call so that resuming from pause never
// produces a jump. Simulation (hooks, movement, spawns, lifetimes, collisions
// and animation) only happens while the state machine is Running.
func (e *Engine) Tick(now time.Time, in input.Snapshot, cmds []input.Command) {
	dt := e.measure(now)

	var spawns []input.Command
	for _, c := range cmds {
		switch c.Kind {
		case input.CommandTogglePause:
			e.machine.TogglePause()
		case input.CommandSpawnHazard:
			spawns = append(spawns, c)
		}
	}

	if !e.ready || !e.machine.Simulating() {
		if len(spawns) > 0 {
			e.logger.Debug("dropping spawn commands", "count", len(spawns), "state", e.machine.State())
		}
		return
	}

	e.clock += dt
	e.stats.Ticks++
	e.stats.Survived = e.clock

	if faults := e.runner.ExecuteAll(hookContext{e}); len(faults) > 0 {
		e.stats.HookFaults += len(faults)
	}
	// A hook may have paused the game.
	if !e.machine.Simulating() {
		return
	}

	p := e.player()
	e.controller.Update(p, in, dt)

	for _, c := range spawns {
		e.spawnFromCommand(c, p)
	}

	var expired []entity.ID
	var live []*entity.Entity
	for h := range e.entities.Iterate(entity.Temporary) {
		if h.TTL.Update(e.clock) {
			expired = append(expired, h.ID)
		} else {
			live = append(live, h)
		}
	}

	var hits []entity.ID
	switch e.cfg.Trigger {
	case TriggerExpiry:
		hits = e.detector.Scan(p, e.each(expired))
	default:
		hits = e.detector.Scan(p, slices.Values(live))
	}

	e.stats.Expired += len(expired)
	e.entities.RemoveAll(append(expired, hits...))

	if len(hits) > 0 {
		e.controller.Kill(p)
		if e.machine.EndGame() {
			e.logger.Info("game over", "hits", hits, "survived", e.clock, "pos", p.Pos)
		}
		return
	}

	for r := range e.entities.Iterate(entity.Renderable) {
		sprite.Advance(&r.Sprite.Cursor, r.Sprite.Sheet, dt)
	}
}

func (e *Engine) measure(now time.Time) time.Duration {
	var dt time.Duration
	if !e.lastTick.IsZero() {
		dt = now.Sub(e.lastTick)
	}
	e.lastTick = now
	if dt < 0 {
		dt = 0
	}
	if e.cfg.MaxDelta > 0 && dt > e.cfg.MaxDelta {
		dt = e.cfg.MaxDelta
	}
	return dt
}

func (e *Engine) spawnFromCommand(c input.Command, p *entity.Entity) {
	pos, screen := c.Pos, c.Screen
	if c.AtPlayer {
		pos, screen = e.dropPoint(p), false
	}
	if _, err := e.SpawnHazard(pos, screen); err != nil {
		e.logger.Error("spawn hazard", "err", err)
	}
}

// dropPoint is where the bomb key places a hazard: DropDistance pixels ahead
// of the player, kept inside the world.
func (e *Engine) dropPoint(p *entity.Entity) core.Point {
	d := e.cfg.DropDistance
	var off core.Point
	switch p.Player.Facing {
	case entity.FacingUp:
		off = core.Pt(0, -d)
	case entity.FacingLeft:
		off = core.Pt(-d, 0)
	case entity.FacingRight:
		off = core.Pt(d, 0)
	default:
		off = core.Pt(0, d)
	}
	w, h := e.world.WorldBounds()
	at := p.Pos.Add(off)
	return core.Pt(core.Clamp(at.X, 0, max(w-1, 0)), core.Clamp(at.Y, 0, max(h-1, 0)))
}

// SpawnHazard creates a Temporary+Renderable hazard at p with the configured
// lifetime and its animation already running. Screen coordinates are mapped
// through the renderer's camera first.
func (e *Engine) SpawnHazard(p core.Point, screenCoords bool) (entity.ID, error) {
	if screenCoords {
		if e.renderer == nil {
			return 0, fmt.Errorf("engine: screen coordinates without a renderer")
		}
		p = e.renderer.ScreenToWorld(p)
	}

	h := entity.NewHazard(e.sheets.Hazard, p, e.cfg.HazardTTL, e.clock, e.cfg.HazardAnimation)
	id, err := e.add(h)
	if err != nil {
		return 0, err
	}
	e.stats.Spawned++
	e.logger.Debug("hazard spawned", "id", id, "pos", p, "t", e.clock)
	return id, nil
}

// add inserts an entity. Duplicate ids are programming errors: they are
// logged, and in debug builds they panic.
func (e *Engine) add(ent *entity.Entity) (entity.ID, error) {
	id, err := e.entities.Add(ent)
	if err != nil {
		e.logger.Error("entity insert failed", "err", err)
		if e.cfg.Debug {
			panic(err)
		}
		return 0, err
	}
	return id, nil
}

// PlayerPosition returns the player's world position.
func (e *Engine) PlayerPosition() (core.Point, error) {
	if !e.ready {
		return core.Point{}, ErrWorldNotInitialized
	}
	return e.player().Pos, nil
}

func (e *Engine) player() *entity.Entity {
	p, _ := e.entities.Get(e.playerID)
	return p
}

// Player returns the player entity.
func (e *Engine) Player() (*entity.Entity, bool) {
	if !e.ready {
		return nil, false
	}
	return e.entities.Get(e.playerID)
}

// State returns the run state.
func (e *Engine) State() state.State {
	return e.machine.State()
}

// OnStateChange registers a listener for run state changes.
func (e *Engine) OnStateChange(fn state.Listener) {
	e.machine.OnChange(fn)
}

// Stats returns session counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Entities exposes the registry for read-only inspection.
func (e *Engine) Entities() *entity.Registry {
	return e.entities
}

// Clock returns the simulation time.
func (e *Engine) Clock() time.Duration {
	return e.clock
}

// HookFaults returns per-hook failure counts.
func (e *Engine) HookFaults() map[string]int {
	return e.runner.Faults()
}

func (e *Engine) each(ids []entity.ID) iter.Seq[*entity.Entity] {
	return func(yield func(*entity.Entity) bool) {
		for _, id := range ids {
			ent, ok := e.entities.Get(id)
			if ok && !yield(ent) {
				return
			}
		}
	}
}

// hookContext is the engine as seen by script hooks.
type hookContext struct {
	e *Engine
}

func (c hookContext) Pause()  { c.e.machine.Pause() }
func (c hookContext) Resume() { c.e.machine.Resume() }

func (c hookContext) Log(msg string, keyvals ...any) {
	c.e.logger.Info(msg, keyvals...)
}

func (c hookContext) PlayerPosition() (core.Point, error) {
	return c.e.PlayerPosition()
}

func (c hookContext) SpawnHazard(p core.Point) (entity.ID, error) {
	return c.e.SpawnHazard(p, false)
}

func (c hookContext) Now() time.Duration {
	return c.e.clock
}
