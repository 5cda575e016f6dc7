package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-adventure/internal/config"
	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/input"
	"github.com/vovakirdan/tui-adventure/internal/session"
	"github.com/vovakirdan/tui-adventure/internal/state"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

const frame = 16 * time.Millisecond

type harness struct {
	t     *testing.T
	m     Model
	store *storage.Store
	now   time.Time
}

func newHarness(t *testing.T, mutate func(c *config.Config)) *harness {
	t.Helper()
	logger := log.New(io.Discard)

	cfg := config.Default()
	cfg.Hooks.Enabled = false
	if mutate != nil {
		mutate(&cfg)
	}
	sess, err := session.New(session.Options{
		Config: cfg,
		Seed:   1,
		Screen: core.NewScreen(40, 12),
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("session.New() error: %v", err)
	}

	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m, err := NewModel(sess, store, Options{FPS: 60, Logger: logger})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}

	h := &harness{t: t, store: store, now: time.Unix(1000, 0)}
	m.now = func() time.Time { return h.now }
	h.m = m
	return h
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	model, cmd := h.m.Update(msg)
	h.m = model.(Model)
	return cmd
}

func (h *harness) press(k string) tea.Cmd {
	return h.send(keyMsg(k))
}

func (h *harness) tick(n int) {
	for range n {
		h.now = h.now.Add(frame)
		h.send(TickMsg(h.now))
	}
}

func (h *harness) playerX() int {
	pos, err := h.m.eng().PlayerPosition()
	if err != nil {
		h.t.Fatalf("PlayerPosition() error: %v", err)
	}
	return pos.X
}

func (h *harness) runs() []storage.Run {
	runs, err := h.store.RecentRuns(10)
	if err != nil {
		h.t.Fatalf("RecentRuns() error: %v", err)
	}
	return runs
}

func TestHeldKeyMovesUntilWindowExpires(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(1)

	h.press("d")
	h.tick(5)
	if x := h.playerX(); x <= 100 {
		t.Fatalf("player x = %d after holding right, expected > 100", x)
	}

	// No repeats: the hold window runs out and the player stops.
	h.tick(30)
	stopped := h.playerX()
	h.tick(10)
	if x := h.playerX(); x != stopped {
		t.Errorf("player x = %d, expected to stay at %d after release", x, stopped)
	}
}

func TestPauseToggle(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(1)

	h.press("p")
	h.tick(1)
	if s := h.m.eng().State(); s != state.Paused {
		t.Fatalf("State() = %v, expected paused", s)
	}
	if view := h.m.View(); !strings.Contains(view, "PAUSED") {
		t.Error("View() does not show PAUSED")
	}

	// A fresh press once the hold window has passed.
	h.tick(20)
	h.press(" ")
	h.tick(1)
	if s := h.m.eng().State(); s != state.Running {
		t.Errorf("State() = %v, expected running after second toggle", s)
	}
}

func TestHeldPauseKeyStaysPaused(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(1)

	h.press("p")
	h.tick(1)
	if s := h.m.eng().State(); s != state.Paused {
		t.Fatalf("State() = %v, expected paused", s)
	}

	// Key repeat while p is held down.
	for range 5 {
		h.now = h.now.Add(30 * time.Millisecond)
		h.press("p")
		h.tick(1)
		if s := h.m.eng().State(); s != state.Paused {
			t.Fatalf("State() = %v after key repeat, expected paused", s)
		}
	}
}

func TestGameOverSavesRunOnce(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Hazard.DropDistance = 0 })
	h.tick(3)

	h.press("g")
	h.tick(1)
	if s := h.m.eng().State(); s != state.GameOver {
		t.Fatalf("State() = %v, expected game over after dropping a bomb in place", s)
	}
	h.tick(5)

	runs := h.runs()
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Outcome != storage.OutcomeDied || runs[0].Level != "terrain" || runs[0].Hazards != 1 {
		t.Errorf("saved run = %+v, expected a died run on terrain with 1 hazard", runs[0])
	}
	first := runs[0].RunID

	// Enter is ignored while running but leaves after game over.
	if cmd := h.press("enter"); cmd == nil {
		t.Error("enter after game over should quit")
	}

	h = newHarness(t, func(c *config.Config) { c.Hazard.DropDistance = 0 })
	h.tick(1)
	h.press("g")
	h.tick(1)
	h.press("r")
	if s := h.m.eng().State(); s != state.Running {
		t.Fatalf("State() = %v after restart, expected running", s)
	}
	h.press("g")
	h.tick(1)

	runs = h.runs()
	if len(runs) != 2 || runs[0].RunID == runs[1].RunID || runs[0].RunID == first {
		t.Errorf("expected 2 runs with distinct ids, got %+v", runs)
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(1)
	eng := h.m.eng()

	h.press("r")
	if h.m.eng() != eng {
		t.Error("restart while running replaced the engine")
	}
	if cmd := h.press("enter"); cmd != nil {
		t.Error("enter while running should not quit")
	}
}

func TestQuitRecordsRun(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(10)

	if cmd := h.press("q"); cmd == nil {
		t.Fatal("q should quit")
	}
	if h.m.View() != "" {
		t.Error("View() should be empty after quitting")
	}

	runs := h.runs()
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeQuit {
		t.Fatalf("expected one quit run, got %+v", runs)
	}
	if runs[0].Survived <= 0 {
		t.Errorf("Survived = %v, expected > 0", runs[0].Survived)
	}

	// Quitting before anything was simulated records nothing.
	h = newHarness(t, nil)
	h.press("q")
	if runs := h.runs(); len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestClickDropsHazard(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(1)

	h.send(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.send(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	h.send(tea.MouseMsg{X: 1, Y: 50, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.tick(1)

	if n := h.m.eng().Stats().Spawned; n != 1 {
		t.Errorf("Spawned = %d, expected 1", n)
	}
}

func TestWindowResizeLeavesRoomForChrome(t *testing.T) {
	h := newHarness(t, nil)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 20})

	screen := h.m.session.Terminal().Screen()
	if screen.Width() != 60 || screen.Height() != 18 {
		t.Errorf("screen = %dx%d, expected 60x18", screen.Width(), screen.Height())
	}

	h.press("?")
	if screen.Height() >= 18 {
		t.Errorf("screen height = %d, expected less room with full help", screen.Height())
	}
}

func TestHUD(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(1)

	hud := h.m.hud()
	for _, want := range []string{"ADVENTURE", "level", "terrain", "best", "bombs"} {
		if !strings.Contains(hud, want) {
			t.Errorf("hud() = %q, expected it to contain %q", hud, want)
		}
	}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		key      string
		expected input.Action
	}{
		{"w", input.ActionUp},
		{"s", input.ActionDown},
		{"a", input.ActionLeft},
		{"d", input.ActionRight},
		{"f", input.ActionAttack},
		{"g", input.ActionBomb},
		{"p", input.ActionPause},
		{" ", input.ActionPause},
		{"r", input.ActionRestart},
		{"enter", input.ActionConfirm},
		{"q", input.ActionQuit},
		{"x", input.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := keys.Action(keyMsg(tc.key)); got != tc.expected {
				t.Errorf("Action(%q) = %v, expected %v", tc.key, got, tc.expected)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		key      string
		expected MenuAction
	}{
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}

	for _, tc := range tests {
		if got := MapKeyToMenuAction(keyMsg(tc.key)); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")

	if got := RenderScreen(s, true); got != s.String() {
		t.Errorf("RenderScreen(mono) = %q, expected %q", got, s.String())
	}

	got := RenderScreen(s, false)
	if !strings.Contains(got, "ab") || !strings.Contains(got, "cd  ") {
		t.Errorf("RenderScreen() = %q, expected the cell text", got)
	}
	if lines := strings.Count(got, "\n"); lines != 1 {
		t.Errorf("RenderScreen() has %d line breaks, expected 1", lines)
	}
}

func TestMenuModel(t *testing.T) {
	m := NewMenuModel(nil, "custom.yaml", DefaultTheme(), 80, 24)

	if len(m.items) != 3 {
		t.Fatalf("items = %v, expected the two catalog levels and custom.yaml", m.items)
	}
	if m.items[m.cursor].Level != "custom.yaml" {
		t.Errorf("cursor on %q, expected custom.yaml", m.items[m.cursor].Level)
	}

	model, _ := m.Update(keyMsg("k"))
	model, cmd := model.Update(keyMsg("enter"))
	m = model.(MenuModel)
	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select and quit")
	}
	if m.Selected().Level != "terrain" {
		t.Errorf("Selected() = %q, expected terrain", m.Selected().Level)
	}

	model, _ = NewMenuModel(nil, "terrain", DefaultTheme(), 80, 24).Update(tea.KeyMsg{Type: tea.KeyTab})
	if !model.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestScoreboardModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{Level: "maps/cave.tmj", Survived: 3 * time.Second})
	store.SaveRun(storage.Run{Level: "meadow", Survived: 5 * time.Second, Hazards: 2})
	store.SaveRun(storage.Run{Level: "meadow", Survived: 9 * time.Second})

	m := NewScoreboardModel(store, MonochromeTheme(), 100, 30)
	if len(m.levels) != 3 || m.levels[2].ID != "maps/cave.tmj" {
		t.Fatalf("levels = %v, expected catalog levels plus maps/cave.tmj", m.levels)
	}
	if m.Level() != "meadow" {
		t.Fatalf("Level() = %q, expected meadow first", m.Level())
	}
	if len(m.runs) != 2 || m.runs[0].Survived != 9*time.Second {
		t.Errorf("runs = %+v, expected meadow runs longest first", m.runs)
	}
	if !strings.Contains(m.summary(), "2 runs") {
		t.Errorf("summary() = %q, expected run count", m.summary())
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(ScoreboardModel)
	if m.Level() != "terrain" || len(m.runs) != 0 {
		t.Errorf("after tab: level %q with %d runs, expected terrain with none", m.Level(), len(m.runs))
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("View() should show the empty message")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.(ScoreboardModel).Level() != "meadow" {
		t.Error("shift+tab should go back to meadow")
	}
}
