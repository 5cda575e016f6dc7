package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-adventure/internal/registry"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	Level string
	Title string
	Best  time.Duration
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	theme          Theme
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu listing every catalog level. current is
// preselected and added to the list when it is a level file outside the
// catalog.
func NewMenuModel(store *storage.Store, current string, theme Theme, width, height int) MenuModel {
	levels := registry.List()
	items := make([]MenuItem, 0, len(levels)+1)
	for _, l := range levels {
		items = append(items, MenuItem{Level: l.ID, Title: l.Title})
	}
	if current != "" && !registry.Exists(current) {
		items = append(items, MenuItem{Level: current, Title: current})
	}

	var stats map[string]*storage.LevelStats
	if store != nil {
		stats, _ = store.GetAllLevelStats()
	}

	m := MenuModel{
		items:  items,
		width:  width,
		height: height,
		theme:  theme,
	}
	for i := range m.items {
		if s, ok := stats[m.items[i].Level]; ok {
			m.items[i].Best = s.Best
		}
		if m.items[i].Level == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the level
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("  A D V E N T U R E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(t.MenuDescription.Render("Choose a level"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Title
		if item.Best > 0 {
			line += fmt.Sprintf("  (best %.1fs)", item.Best.Seconds())
		}
		if i == m.cursor {
			line = t.MenuItemActive.Render("> " + line)
		} else {
			line = t.MenuItemNormal.Render("  " + line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(t.MenuDescription.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level           string
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, current string, theme Theme, width, height int) (MenuResult, error) {
	model := NewMenuModel(store, current, theme, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}

	switch {
	case m.WantsScoreboard():
		return MenuResult{WantsScoreboard: true}, nil
	case m.IsQuitting(), m.Selected() == nil:
		return MenuResult{Quit: true}, nil
	}
	return MenuResult{Level: m.Selected().Level}, nil
}
