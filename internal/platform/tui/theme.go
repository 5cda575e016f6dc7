package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles for the chrome around the play field:
// the HUD, the start menu and the scoreboard. Play field cells are styled by
// colorStyles unless the theme is monochrome.
type Theme struct {
	Name       string
	Monochrome bool // draw play field cells without color

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDAlert     lipgloss.Style
	HUDControls  lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// Scoreboard styles
	TableBorder   lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	EmptyText     lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		TableBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true),
		TableSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		EmptyText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
	}
}

// MonochromeTheme returns a theme without colors, for terminals that
// render 256-color output poorly.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	theme := DefaultTheme()
	theme.Name = "mono"
	theme.Monochrome = true
	theme.HUDTitle = plain.Bold(true)
	theme.HUDValue = plain
	theme.HUDSeparator = plain
	theme.HUDAlert = plain.Bold(true)
	theme.HUDControls = plain.Faint(true)
	theme.MenuTitle = plain.Bold(true)
	theme.MenuItemNormal = plain
	theme.MenuItemActive = plain.Bold(true).Underline(true)
	theme.MenuDescription = plain.Faint(true)
	theme.TableBorder = theme.TableBorder.UnsetBorderForeground()
	theme.TableHeader = theme.TableHeader.UnsetBorderForeground()
	theme.TableSelected = plain.Reverse(true)
	return theme
}

// ThemeByName returns the named theme, falling back to the default one.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}
