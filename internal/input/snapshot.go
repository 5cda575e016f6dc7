package input

// Snapshot is the polled state of held actions, taken once per tick.
// Direction flags are independent and may be set simultaneously.
type Snapshot struct {
	Up     bool
	Down   bool
	Left   bool
	Right  bool
	Attack bool
}

// DirectionCount returns how many direction flags are set.
func (s Snapshot) DirectionCount() int {
	n := 0
	for _, b := range [...]bool{s.Up, s.Down, s.Left, s.Right} {
		if b {
			n++
		}
	}
	return n
}

// Has reports whether a held action is active in this snapshot.
func (s Snapshot) Has(a Action) bool {
	switch a {
	case ActionUp:
		return s.Up
	case ActionDown:
		return s.Down
	case ActionLeft:
		return s.Left
	case ActionRight:
		return s.Right
	case ActionAttack:
		return s.Attack
	}
	return false
}

func (s *Snapshot) set(a Action) {
	switch a {
	case ActionUp:
		s.Up = true
	case ActionDown:
		s.Down = true
	case ActionLeft:
		s.Left = true
	case ActionRight:
		s.Right = true
	case ActionAttack:
		s.Attack = true
	}
}
