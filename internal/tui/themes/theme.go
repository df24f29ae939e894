// Package themes holds the color schemes of the terminal browser.
package themes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Income   lipgloss.Style
	Expense  lipgloss.Style
	Transfer lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
	Primary  lipgloss.Color
	Border   lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#f4a261"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#f4a261")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Transfer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = Theme{
	Primary: lipgloss.Color("#cba6f7"),
	Border:  lipgloss.Color("#45475a"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#cdd6f4")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#cba6f7")).
		Foreground(lipgloss.Color("#1e1e2e")).
		Bold(true),
	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6e3a1")),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f38ba8")),
	Transfer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#89dceb")),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f9e2af")).
		Bold(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f38ba8")).
		Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#45475a")).
		Padding(0, 1),
}

// ByName returns the theme called name, or Default.
func ByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "catppuccin", "catppuccin-mocha", "mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
