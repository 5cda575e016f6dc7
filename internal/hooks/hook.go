// Package hooks runs scripted behaviour once per simulation tick.
//
// Hook kinds are Go types registered by name from init functions. Script
// modules are small YAML files that pick a kind and give it parameters; they
// are read once at startup.
package hooks

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/entity"
)

// Context is the engine surface visible to hooks.
type Context interface {
	Pause()
	Resume()
	Log(msg string, keyvals ...any)
	PlayerPosition() (core.Point, error)
	SpawnHazard(p core.Point) (entity.ID, error)
	// Now returns the simulation clock, which stops while paused.
	Now() time.Duration
}

// Hook is a unit of per-tick behaviour.
type Hook interface {
	Name() string
	Run(ctx Context) error
}

// Func adapts a function to the Hook interface.
type Func struct {
	ID string
	Fn func(ctx Context) error
}

// Name returns the hook name.
func (f Func) Name() string { return f.ID }

// Run calls the wrapped function.
func (f Func) Run(ctx Context) error { return f.Fn(ctx) }

// Params are the free-form parameters of a script module.
type Params map[string]any

// Float returns a numeric parameter or def when missing.
func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("param %q: expected number, got %T", key, v)
}

// Int returns an integer parameter or def when missing.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("param %q: expected integer, got %v", key, v)
}

// Seconds returns a duration parameter given in seconds.
func (p Params) Seconds(key string, def time.Duration) (time.Duration, error) {
	f, err := p.Float(key, def.Seconds())
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("param %q: negative duration", key)
	}
	return time.Duration(f * float64(time.Second)), nil
}
