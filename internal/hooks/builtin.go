package hooks

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
)

func init() {
	Register("random_hazards", "drops hazards around the player on an interval", newRandomHazards)
	Register("position_logger", "logs the player position on an interval", newPositionLogger)
	Register("autopause", "pauses the game once after a delay", newAutoPause)
}

// interval fires once every period of simulation time.
type interval struct {
	every time.Duration
	next  time.Duration
}

func (iv *interval) due(now time.Duration) bool {
	if iv.every <= 0 || now < iv.next {
		return false
	}
	for iv.next <= now {
		iv.next += iv.every
	}
	return true
}

// Ramp scales hazard drops with time survived.
type Ramp interface {
	Interval(base, elapsed time.Duration) time.Duration
	Chance(base float64, elapsed time.Duration) float64
}

// Ramped is implemented by hooks whose pace follows a Ramp.
type Ramped interface {
	SetRamp(r Ramp)
}

// RandomHazards spawns a hazard near the player every interval with the
// configured chance.
type RandomHazards struct {
	name   string
	every  time.Duration
	next   time.Duration
	radius int
	chance float64
	rng    *rand.Rand
	ramp   Ramp
}

func newRandomHazards(name string, p Params) (Hook, error) {
	every, err := p.Seconds("interval", 3500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	radius, err := p.Int("radius", 96)
	if err != nil {
		return nil, err
	}
	chance, err := p.Float("chance", 1)
	if err != nil {
		return nil, err
	}
	if chance < 0 || chance > 1 {
		return nil, fmt.Errorf("param %q: %v outside [0, 1]", "chance", chance)
	}
	seed, err := p.Int("seed", 0)
	if err != nil {
		return nil, err
	}
	return &RandomHazards{
		name:   name,
		every:  every,
		next:   every,
		radius: max(radius, 0),
		chance: chance,
		rng:    rand.New(rand.NewSource(int64(seed))),
	}, nil
}

func (h *RandomHazards) Name() string { return h.name }

// SetRamp makes drops speed up as the game goes on.
func (h *RandomHazards) SetRamp(r Ramp) {
	h.ramp = r
}

func (h *RandomHazards) Run(ctx Context) error {
	now := ctx.Now()
	if h.every <= 0 || now < h.next {
		return nil
	}

	period, chance := h.every, h.chance
	if h.ramp != nil {
		period = max(h.ramp.Interval(h.every, now), time.Millisecond)
		chance = h.ramp.Chance(h.chance, now)
	}
	h.next = now + period

	if h.rng.Float64() >= chance {
		return nil
	}

	pos, err := ctx.PlayerPosition()
	if err != nil {
		return err
	}
	at := pos.Add(core.Pt(h.offset(), h.offset()))
	id, err := ctx.SpawnHazard(at)
	if err != nil {
		return err
	}
	ctx.Log("hazard dropped", "id", id, "x", at.X, "y", at.Y)
	return nil
}

func (h *RandomHazards) offset() int {
	if h.radius == 0 {
		return 0
	}
	return h.rng.Intn(2*h.radius+1) - h.radius
}

// PositionLogger logs the player position every interval.
type PositionLogger struct {
	name string
	tick interval
}

func newPositionLogger(name string, p Params) (Hook, error) {
	every, err := p.Seconds("interval", 5*time.Second)
	if err != nil {
		return nil, err
	}
	return &PositionLogger{name: name, tick: interval{every: every, next: every}}, nil
}

func (h *PositionLogger) Name() string { return h.name }

func (h *PositionLogger) Run(ctx Context) error {
	if !h.tick.due(ctx.Now()) {
		return nil
	}
	pos, err := ctx.PlayerPosition()
	if err != nil {
		return err
	}
	ctx.Log("player position", "x", pos.X, "y", pos.Y, "t", ctx.Now())
	return nil
}

// AutoPause pauses the game once after a delay.
type AutoPause struct {
	name  string
	after time.Duration
	done  bool
}

func newAutoPause(name string, p Params) (Hook, error) {
	after, err := p.Seconds("after", time.Minute)
	if err != nil {
		return nil, err
	}
	return &AutoPause{name: name, after: after}, nil
}

func (h *AutoPause) Name() string { return h.name }

func (h *AutoPause) Run(ctx Context) error {
	if h.done || ctx.Now() < h.after {
		return nil
	}
	h.done = true
	ctx.Pause()
	ctx.Log("paused", "after", h.after)
	return nil
}
