package input

import "github.com/vovakirdan/tui-adventure/internal/core"

// CommandKind identifies a discrete intent collected between ticks.
type CommandKind int

const (
	CommandTogglePause CommandKind = iota + 1
	CommandSpawnHazard
)

func (k CommandKind) String() string {
	switch k {
	case CommandTogglePause:
		return "TogglePause"
	case CommandSpawnHazard:
		return "SpawnHazard"
	default:
		return "Unknown"
	}
}

// Command is a discrete intent drained by the frame driver once per tick.
type Command struct {
	Kind CommandKind

	// Pos is the spawn position for CommandSpawnHazard.
	Pos core.Point
	// Screen reports that Pos is in screen coordinates and must be
	// translated to world coordinates before use.
	Screen bool
	// AtPlayer requests a spawn at the player's current position; Pos is ignored.
	AtPlayer bool
}

// Queue collects commands in arrival order.
type Queue struct {
	cmds []Command
}

// Push appends a command.
func (q *Queue) Push(c Command) {
	q.cmds = append(q.cmds, c)
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Drain returns all pending commands and empties the queue.
func (q *Queue) Drain() []Command {
	if len(q.cmds) == 0 {
		return nil
	}
	out := q.cmds
	q.cmds = nil
	return out
}
