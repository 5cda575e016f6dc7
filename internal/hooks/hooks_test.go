package hooks

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/entity"
)

// fakeContext records what hooks do to the engine.
type fakeContext struct {
	now     time.Duration
	player  core.Point
	noWorld bool
	paused  int
	resumed int
	spawned []core.Point
	logs    []string
	nextID  entity.ID
}

func (c *fakeContext) Pause()  { c.paused++ }
func (c *fakeContext) Resume() { c.resumed++ }

func (c *fakeContext) Log(msg string, keyvals ...any) {
	c.logs = append(c.logs, fmt.Sprint(append([]any{msg}, keyvals...)...))
}

func (c *fakeContext) PlayerPosition() (core.Point, error) {
	if c.noWorld {
		return core.Point{}, errors.New("world not initialized")
	}
	return c.player, nil
}

func (c *fakeContext) SpawnHazard(p core.Point) (entity.ID, error) {
	c.spawned = append(c.spawned, p)
	c.nextID++
	return c.nextID, nil
}

func (c *fakeContext) Now() time.Duration { return c.now }

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRunnerIsolatesFaults(t *testing.T) {
	var order []string
	record := func(name string, fn func() error) Hook {
		return Func{ID: name, Fn: func(Context) error {
			order = append(order, name)
			return fn()
		}}
	}

	r := NewRunner(quietLogger(),
		record("first", func() error { return nil }),
		record("broken", func() error { return errors.New("boom") }),
		record("panicky", func() error { panic("kaboom") }),
		record("last", func() error { return nil }),
	)

	faults := r.ExecuteAll(&fakeContext{})
	if want := "first,broken,panicky,last"; strings.Join(order, ",") != want {
		t.Errorf("execution order = %v, expected %s", order, want)
	}
	if len(faults) != 2 {
		t.Fatalf("got %d faults, expected 2", len(faults))
	}

	var fe *FaultError
	if !errors.As(faults[1], &fe) || fe.Hook != "panicky" || !strings.Contains(fe.Err.Error(), "kaboom") {
		t.Errorf("second fault = %v, expected recovered panic of panicky", faults[1])
	}

	r.ExecuteAll(&fakeContext{})
	counts := r.Faults()
	if counts["broken"] != 2 || counts["panicky"] != 2 || counts["first"] != 0 {
		t.Errorf("Faults() = %v", counts)
	}
}

func TestRunnerTagsLogs(t *testing.T) {
	ctx := &fakeContext{}
	r := NewRunner(quietLogger(), Func{ID: "talker", Fn: func(c Context) error {
		c.Log("hello", "k", 1)
		return nil
	}})
	r.ExecuteAll(ctx)

	if len(ctx.logs) != 1 || !strings.Contains(ctx.logs[0], "talker") {
		t.Errorf("logs = %v, expected hook name in line", ctx.logs)
	}
	if names := r.Names(); len(names) != 1 || names[0] != "talker" {
		t.Errorf("Names() = %v", names)
	}
}

func TestRegistry(t *testing.T) {
	if !Exists("test_noop") {
		Register("test_noop", "does nothing", func(name string, p Params) (Hook, error) {
			return Func{ID: name, Fn: func(Context) error { return nil }}, nil
		})
	}

	if !Exists("test_noop") {
		t.Fatal("registered kind missing")
	}
	h, err := Create("test_noop", "n", nil)
	if err != nil || h.Name() != "n" {
		t.Errorf("Create() = %v, %v", h, err)
	}
	if _, err := Create("nope", "n", nil); err == nil {
		t.Error("expected unknown kind error")
	}

	kinds := Kinds()
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1].Kind >= kinds[i].Kind {
			t.Errorf("Kinds() not sorted: %v", kinds)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_noop", "", nil)
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"scripts/20_log.yaml":      {Data: []byte("kind: position_logger\nparams: {interval: 1}\n")},
		"scripts/10_bombs.yml":     {Data: []byte("name: bombs\nkind: random_hazards\nparams: {interval: 2, radius: 0}\n")},
		"scripts/30_unknown.yaml":  {Data: []byte("kind: teleporter\n")},
		"scripts/40_broken.yaml":   {Data: []byte("kind: [unclosed\n")},
		"scripts/50_nokind.yaml":   {Data: []byte("name: x\n")},
		"scripts/60_off.yaml":      {Data: []byte("kind: autopause\nenabled: false\n")},
		"scripts/70_badparam.yaml": {Data: []byte("kind: random_hazards\nparams: {chance: 3}\n")},
		"scripts/README.md":        {Data: []byte("not a module")},
	}

	hooks, err := LoadDir(fsys, "scripts", 7, quietLogger())
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}

	var names []string
	for _, h := range hooks {
		names = append(names, h.Name())
	}
	if got := strings.Join(names, ","); got != "bombs,20_log" {
		t.Errorf("loaded hooks = %s, expected bombs,20_log", got)
	}

	if _, err := LoadDir(fsys, "missing", 0, quietLogger()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestInstantiateIsFreshPerRun(t *testing.T) {
	fsys := fstest.MapFS{
		"scripts/bombs.yaml": {Data: []byte("kind: random_hazards\nparams: {interval: 2}\n")},
		"scripts/typo.yaml":  {Data: []byte("kind: teleporter\n")},
	}
	modules, err := ReadDir(fsys, "scripts", quietLogger())
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(modules) != 1 || modules[0].Name != "bombs" || modules[0].File != "scripts/bombs.yaml" {
		t.Fatalf("ReadDir() = %+v, expected the bombs module only", modules)
	}

	first := Instantiate(modules, 1, quietLogger())
	second := Instantiate(modules, 2, quietLogger())
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Instantiate() = %d, %d hooks, expected 1 each", len(first), len(second))
	}
	if first[0] == second[0] {
		t.Error("Instantiate() returned the same hook twice")
	}
	if _, ok := modules[0].Params["seed"]; ok {
		t.Error("Instantiate() wrote the run seed into the module params")
	}
}

func TestRandomHazards(t *testing.T) {
	h, err := Create("random_hazards", "rh", Params{"interval": 2, "radius": 10, "seed": 42})
	if err != nil {
		t.Fatal(err)
	}
	ctx := &fakeContext{player: core.Pt(100, 100)}

	for ms := 0; ms <= 6000; ms += 100 {
		ctx.now = time.Duration(ms) * time.Millisecond
		if err := h.Run(ctx); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	}

	if len(ctx.spawned) != 3 {
		t.Fatalf("spawned %d hazards in 6s at 2s interval, expected 3", len(ctx.spawned))
	}
	for _, p := range ctx.spawned {
		d := p.Sub(ctx.player)
		if core.Abs(d.X) > 10 || core.Abs(d.Y) > 10 {
			t.Errorf("hazard at %v outside radius", p)
		}
	}

	// Same seed, same drops.
	again, _ := Create("random_hazards", "rh", Params{"interval": 2, "radius": 10, "seed": 42})
	ctx2 := &fakeContext{player: core.Pt(100, 100)}
	for ms := 0; ms <= 6000; ms += 100 {
		ctx2.now = time.Duration(ms) * time.Millisecond
		again.Run(ctx2)
	}
	for i := range ctx.spawned {
		if ctx.spawned[i] != ctx2.spawned[i] {
			t.Errorf("drop %d differs: %v vs %v", i, ctx.spawned[i], ctx2.spawned[i])
		}
	}
}

func TestRandomHazardsWithoutWorld(t *testing.T) {
	h, _ := Create("random_hazards", "rh", Params{"interval": 1})
	ctx := &fakeContext{noWorld: true, now: time.Second}
	if err := h.Run(ctx); err == nil {
		t.Error("expected error before the world exists")
	}
}

func TestPositionLogger(t *testing.T) {
	h, _ := Create("position_logger", "pl", Params{"interval": 0.5})
	ctx := &fakeContext{player: core.Pt(3, 4)}
	for ms := 0; ms < 2000; ms += 250 {
		ctx.now = time.Duration(ms) * time.Millisecond
		h.Run(ctx)
	}
	if len(ctx.logs) != 3 {
		t.Errorf("got %d log lines, expected 3: %v", len(ctx.logs), ctx.logs)
	}
}

func TestAutoPauseOnce(t *testing.T) {
	h, _ := Create("autopause", "ap", Params{"after": 1})
	ctx := &fakeContext{}
	for ms := 0; ms < 3000; ms += 500 {
		ctx.now = time.Duration(ms) * time.Millisecond
		h.Run(ctx)
	}
	if ctx.paused != 1 {
		t.Errorf("paused %d times, expected 1", ctx.paused)
	}
}

func TestParams(t *testing.T) {
	p := Params{"i": 3, "f": 1.5, "s": "x", "whole": 2.0}

	if v, err := p.Int("i", 0); err != nil || v != 3 {
		t.Errorf("Int(i) = %v, %v", v, err)
	}
	if v, err := p.Int("whole", 0); err != nil || v != 2 {
		t.Errorf("Int(whole) = %v, %v", v, err)
	}
	if _, err := p.Int("f", 0); err == nil {
		t.Error("Int(f) should reject fractions")
	}
	if _, err := p.Float("s", 0); err == nil {
		t.Error("Float(s) should reject strings")
	}
	if d, err := p.Seconds("f", 0); err != nil || d != 1500*time.Millisecond {
		t.Errorf("Seconds(f) = %v, %v", d, err)
	}
	if d, _ := p.Seconds("missing", time.Second); d != time.Second {
		t.Errorf("Seconds(missing) = %v, expected default", d)
	}
}

// halfRamp halves the drop interval and always drops.
type halfRamp struct{}

func (halfRamp) Interval(base, _ time.Duration) time.Duration { return base / 2 }
func (halfRamp) Chance(float64, time.Duration) float64        { return 1 }

func TestRandomHazardsFollowRamp(t *testing.T) {
	h, _ := Create("random_hazards", "rh", Params{"interval": 2, "chance": 0, "radius": 0})
	r, ok := h.(Ramped)
	if !ok {
		t.Fatal("random_hazards should accept a ramp")
	}
	r.SetRamp(halfRamp{})

	ctx := &fakeContext{}
	for ms := 0; ms <= 6000; ms += 100 {
		ctx.now = time.Duration(ms) * time.Millisecond
		h.Run(ctx)
	}
	// First drop at 2s, then every second: 2, 3, 4, 5, 6.
	if len(ctx.spawned) != 5 {
		t.Errorf("spawned %d hazards, expected 5", len(ctx.spawned))
	}
}
