package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/engine"
	"github.com/vovakirdan/tui-adventure/internal/input"
	"github.com/vovakirdan/tui-adventure/internal/session"
	"github.com/vovakirdan/tui-adventure/internal/state"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

// Options tunes the game model.
type Options struct {
	FPS        int
	HoldWindow time.Duration
	Theme      Theme
	Logger     *log.Logger
}

// Model is the Bubble Tea model for a game session.
type Model struct {
	session *session.Session
	run     *session.Run
	store   *storage.Store
	tracker *input.Tracker
	keys    KeyMap
	help    help.Model
	theme   Theme
	fps     int
	logger  *log.Logger
	now     func() time.Time

	runID    string
	best     time.Duration
	saved    bool // Whether the current run has been recorded
	quitting bool
	err      error
	notice   string
	width    int
	height   int
}

// NewModel creates a game model and starts the first run.
func NewModel(sess *session.Session, store *storage.Store, opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme()
	}

	h := help.New()
	h.ShowAll = false

	screen := sess.Terminal().Screen()
	m := Model{
		session: sess,
		store:   store,
		tracker: input.NewTracker(opts.HoldWindow),
		keys:    DefaultKeyMap(),
		help:    h,
		theme:   opts.Theme,
		fps:     opts.FPS,
		logger:  logger,
		now:     time.Now,
		width:   screen.Width(),
		height:  screen.Height() + 2,
	}
	if err := m.startRun(); err != nil {
		return m, err
	}
	return m, nil
}

// startRun builds a fresh engine and forgets input from the previous run.
func (m *Model) startRun() error {
	run, err := m.session.Start()
	if err != nil {
		return err
	}
	m.run = run
	m.runID = storage.NewRunID()
	m.saved = false
	m.notice = ""
	m.tracker.Reset()

	tracker := m.tracker
	run.Engine.OnStateChange(func(_, to state.State) {
		if to != state.Running {
			tracker.ReleaseHeld()
		}
	})

	if m.store != nil {
		best, err := m.store.BestTime(m.session.Level())
		if err != nil {
			m.logger.Warn("cannot read best time", "err", err)
		}
		m.best = best
	}
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) eng() *engine.Engine {
	return m.run.Engine
}

func (m Model) over() bool {
	return m.eng().State() == state.GameOver
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case input.ActionNone:
	case input.ActionQuit:
		m.finishRun(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	case input.ActionConfirm:
		if m.over() {
			m.quitting = true
			return m, tea.Quit
		}
	case input.ActionRestart:
		if m.over() {
			if err := m.startRun(); err != nil {
				m.err = err
				m.quitting = true
				return m, tea.Quit
			}
		}
	default:
		m.tracker.Press(action, m.now())
	}

	return m, nil
}

// handleMouse turns a left click on the play field into a hazard drop.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y >= m.session.Terminal().Screen().Height() {
		return m, nil
	}
	m.tracker.Click(core.Pt(msg.X, msg.Y))
	return m, nil
}

// handleTick advances the engine by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	eng := m.eng()
	eng.Tick(now, m.tracker.Snapshot(now), m.tracker.Drain())

	// Save the run on game over (once)
	if eng.State() == state.GameOver && !m.saved {
		m.finishRun(storage.OutcomeDied)
	}

	return m, tickCmd(m.fps)
}

// finishRun records the current run. Quitting before anything was simulated
// records nothing.
func (m *Model) finishRun(outcome string) {
	if m.saved {
		return
	}
	m.saved = true

	stats := m.eng().Stats()
	if m.store == nil || (outcome == storage.OutcomeQuit && stats.Survived == 0) {
		return
	}

	_, err := m.store.SaveRun(storage.Run{
		RunID:      m.runID,
		Level:      m.session.Level(),
		Seed:       m.run.Seed,
		Difficulty: m.session.Difficulty(),
		Survived:   stats.Survived,
		Hazards:    stats.Spawned,
		Dodged:     stats.Expired,
		Outcome:    outcome,
	})
	if err != nil {
		// Best-effort save, the game continues regardless
		m.logger.Warn("cannot save run", "run", m.runID, "err", err)
		return
	}
	m.best = max(m.best, stats.Survived)
	m.logger.Info("run saved", "run", m.runID, "survived", stats.Survived, "outcome", outcome)
}

// layout sizes the play field to the window minus the HUD and help lines.
func (m *Model) layout() {
	m.help.Width = m.width
	chrome := 1 + lipgloss.Height(m.help.View(m.keys))
	m.session.Terminal().Screen().Resize(m.width, max(m.height-chrome, 1))
}

// saveScreenshot saves the current play field to a file.
func (m *Model) saveScreenshot() {
	m.eng().Render()

	home, err := os.UserHomeDir()
	if err != nil {
		m.notice = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".adventure", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.notice = "screenshot failed"
		return
	}

	level := strings.TrimSuffix(filepath.Base(m.session.Level()), filepath.Ext(m.session.Level()))
	filename := fmt.Sprintf("%s_%s.txt", level, m.now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.session.Terminal().Screen().String()), 0o600); err != nil {
		m.notice = "screenshot failed"
		return
	}
	m.notice = "saved " + filename
}

// View renders the play field, the HUD and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.eng().Render()

	var b strings.Builder
	b.WriteString(RenderScreen(m.session.Terminal().Screen(), m.theme.Monochrome))
	b.WriteString("\n")
	b.WriteString(m.hud())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// hud renders the one-line status bar.
func (m Model) hud() string {
	t := m.theme
	stats := m.eng().Stats()

	field := func(label, value string) string {
		return t.HUDControls.Render(label+" ") + t.HUDValue.Render(value)
	}

	parts := []string{
		t.HUDTitle.Render("ADVENTURE"),
		field("level", m.session.Level()),
		field("time", fmt.Sprintf("%.1fs", stats.Survived.Seconds())),
		field("best", fmt.Sprintf("%.1fs", m.best.Seconds())),
		field("bombs", fmt.Sprintf("%d", stats.Spawned)),
	}

	switch m.eng().State() {
	case state.Paused:
		parts = append(parts, t.HUDAlert.Render("PAUSED"))
	case state.GameOver:
		parts = append(parts, t.HUDAlert.Render("GAME OVER"))
	}
	if stats.HookFaults > 0 {
		parts = append(parts, t.HUDAlert.Render(fmt.Sprintf("hook faults %d", stats.HookFaults)))
	}
	if m.notice != "" {
		parts = append(parts, t.HUDControls.Render(m.notice))
	}

	return strings.Join(parts, t.HUDSeparator.Render(" | "))
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program for a session.
func Run(sess *session.Session, store *storage.Store, opts Options) error {
	model, err := NewModel(sess, store, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks drop hazards
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
