// Package state tracks whether the game is running, paused or over.
package state

// State is the game's run state.
type State int

const (
	Running State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Listener is called after every state change.
type Listener func(from, to State)

// Machine holds the run state. Allowed transitions are Running <-> Paused and
// Running -> GameOver; GameOver is terminal.
//
// Not safe for concurrent use; the frame loop owns it.
type Machine struct {
	state     State
	listeners []Listener
}

// New returns a machine in the Running state.
func New() *Machine {
	return &Machine{state: Running}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Simulating reports whether simulation advances this tick.
func (m *Machine) Simulating() bool {
	return m.state == Running
}

// Over reports whether the game has ended.
func (m *Machine) Over() bool {
	return m.state == GameOver
}

// OnChange registers a listener for state changes.
func (m *Machine) OnChange(fn Listener) {
	m.listeners = append(m.listeners, fn)
}

// TogglePause flips Running and Paused. It is a no-op in GameOver and returns
// whether a transition happened.
func (m *Machine) TogglePause() bool {
	switch m.state {
	case Running:
		return m.set(Paused)
	case Paused:
		return m.set(Running)
	}
	return false
}

// Pause moves Running to Paused.
func (m *Machine) Pause() bool {
	if m.state != Running {
		return false
	}
	return m.set(Paused)
}

// Resume moves Paused to Running.
func (m *Machine) Resume() bool {
	if m.state != Paused {
		return false
	}
	return m.set(Running)
}

// EndGame moves Running to GameOver. It returns true only for the first
// transition; later calls and calls while paused do nothing.
func (m *Machine) EndGame() bool {
	if m.state != Running {
		return false
	}
	return m.set(GameOver)
}

func (m *Machine) set(to State) bool {
	from := m.state
	m.state = to
	for _, fn := range m.listeners {
		fn(from, to)
	}
	return true
}
