package input

import (
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// event. Terminals report key repeats rather than key state, so a held key
// shows up as a stream of presses.
const DefaultHoldWindow = 250 * time.Millisecond

// Tracker converts press events into held-key state and edge commands.
type Tracker struct {
	window   time.Duration
	lastSeen map[Action]time.Time
	queue    Queue
}

// NewTracker creates a tracker with the given hold window.
// A non-positive window uses DefaultHoldWindow.
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &Tracker{
		window:   window,
		lastSeen: make(map[Action]time.Time),
	}
}

// Press records a key press for an action at time now.
// Edge actions (pause, bomb) enqueue a command only when the key was not
// already held, so key repeat while holding does not fire again.
func (t *Tracker) Press(a Action, now time.Time) {
	if a == ActionNone {
		return
	}
	wasHeld := t.isHeld(a, now)
	t.lastSeen[a] = now

	if a.held() || wasHeld {
		return
	}

	switch a {
	case ActionPause:
		t.queue.Push(Command{Kind: CommandTogglePause})
	case ActionBomb:
		t.queue.Push(Command{Kind: CommandSpawnHazard, AtPlayer: true})
	}
}

// Click enqueues a hazard spawn at a screen position.
func (t *Tracker) Click(p core.Point) {
	t.queue.Push(Command{Kind: CommandSpawnHazard, Pos: p, Screen: true})
}

// Release forgets an action immediately (for terminals that report releases).
func (t *Tracker) Release(a Action) {
	delete(t.lastSeen, a)
}

// Snapshot returns the held-action state at time now.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	var s Snapshot
	for a := range t.lastSeen {
		if a.held() && t.isHeld(a, now) {
			s.set(a)
		}
	}
	return s
}

// Drain returns the commands collected since the previous call.
func (t *Tracker) Drain() []Command {
	return t.queue.Drain()
}

// Reset forgets all held keys and pending commands.
func (t *Tracker) Reset() {
	clear(t.lastSeen)
	t.queue.Drain()
}

// ReleaseHeld forgets the held movement and attack keys. Edge actions keep
// their hold state, so a repeat of the key that paused the game does not
// toggle it back.
func (t *Tracker) ReleaseHeld() {
	for a := range t.lastSeen {
		if a.held() {
			delete(t.lastSeen, a)
		}
	}
}

func (t *Tracker) isHeld(a Action, now time.Time) bool {
	seen, ok := t.lastSeen[a]
	if !ok {
		return false
	}
	return now.Sub(seen) <= t.window
}
