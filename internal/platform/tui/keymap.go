package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-adventure/internal/input"
)

// KeyMap defines the in-game key bindings. Terminals report key presses
// only, so movement bindings are fed to the input tracker as repeated
// presses and released by its hold window.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Attack     key.Binding
	Bomb       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Confirm    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Attack, k.Bomb, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Attack, k.Bomb, k.Pause},
		{k.Restart, k.Confirm, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "move right"),
		),
		Attack: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "attack"),
		),
		Bomb: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g/click", "bomb"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "leave after game over"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
// Returns ActionNone for keys that are not game controls.
func (k KeyMap) Action(msg tea.KeyMsg) input.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return input.ActionQuit
	case key.Matches(msg, k.Up):
		return input.ActionUp
	case key.Matches(msg, k.Down):
		return input.ActionDown
	case key.Matches(msg, k.Left):
		return input.ActionLeft
	case key.Matches(msg, k.Right):
		return input.ActionRight
	case key.Matches(msg, k.Attack):
		return input.ActionAttack
	case key.Matches(msg, k.Bomb):
		return input.ActionBomb
	case key.Matches(msg, k.Pause):
		return input.ActionPause
	case key.Matches(msg, k.Restart):
		return input.ActionRestart
	case key.Matches(msg, k.Confirm):
		return input.ActionConfirm
	}
	return input.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
