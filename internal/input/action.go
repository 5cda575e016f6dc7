// Package input turns raw key and mouse events into the two things the engine
// consumes each tick: a polled Snapshot of held actions and a queue of
// discrete Commands.
package input

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone   Action = iota
	ActionUp            // W, Up arrow
	ActionDown          // S, Down arrow
	ActionLeft          // A, Left arrow
	ActionRight         // D, Right arrow
	ActionAttack        // F
	ActionBomb          // G - drop a hazard ahead of the player
	ActionPause         // Space, P
	ActionConfirm       // Enter - dismiss the game over overlay
	ActionRestart       // R - full restart after game over
	ActionQuit          // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionAttack:
		return "Attack"
	case ActionBomb:
		return "Bomb"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// held reports whether the action is a level-triggered (held) action as
// opposed to an edge-triggered one.
func (a Action) held() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight, ActionAttack:
		return true
	}
	return false
}
