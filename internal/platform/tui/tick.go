// Package tui provides the Bubble Tea front end for the adventure game.
// It owns the terminal loop, maps keys and clicks to engine input and
// shows the HUD, start menu and scoreboard around the play field.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// TickMsg is sent to trigger one engine frame. It carries the wall-clock
// time the frame was scheduled for; the engine measures elapsed time from it.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after a
// frame interval at the given rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
