// Package themes holds the color schemes of the terminal dashboard.
package themes

import (
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual styling of the dashboard.
type Theme struct {
	// Colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
	Border    lipgloss.Color
	Muted     lipgloss.Color

	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Bold     lipgloss.Style
	Selected lipgloss.Style

	// Tab bar
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Component styles
	RoundedBox lipgloss.Style

	// Status styles
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	// Categories maps each quality category to its display color.
	Categories map[model.Category]lipgloss.Color
}

func newTheme(primary, secondary, success, warning, errColor, info, border, muted, text, base lipgloss.Color, categories map[model.Category]lipgloss.Color) Theme {
	return Theme{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Warning:   warning,
		Error:     errColor,
		Info:      info,
		Border:    border,
		Muted:     muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(text),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(text),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(base).
			Bold(true),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(base).
			Background(primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info),

		Categories: categories,
	}
}

// Default is the default dashboard theme.
var Default = newTheme(
	lipgloss.Color("#667EEA"),
	lipgloss.Color("#1E3C72"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#FFE66D"),
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#333333"),
	lipgloss.Color("#666666"),
	lipgloss.Color("#E0E0E0"),
	lipgloss.Color("#1A1A2E"),
	map[model.Category]lipgloss.Color{
		model.CategoryExcellent: lipgloss.Color("#2ECC71"),
		model.CategoryVeryGood:  lipgloss.Color("#3498DB"),
		model.CategoryGood:      lipgloss.Color("#F39C12"),
		model.CategoryAverage:   lipgloss.Color("#E67E22"),
		model.CategoryPoor:      lipgloss.Color("#E74C3C"),
	},
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#f5c2e7"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#1e1e2e"),
	map[model.Category]lipgloss.Color{
		model.CategoryExcellent: lipgloss.Color("#a6e3a1"),
		model.CategoryVeryGood:  lipgloss.Color("#89b4fa"),
		model.CategoryGood:      lipgloss.Color("#f9e2af"),
		model.CategoryAverage:   lipgloss.Color("#fab387"),
		model.CategoryPoor:      lipgloss.Color("#f38ba8"),
	},
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// CategoryStyle returns a bold style in the category's color.
func (t Theme) CategoryStyle(c model.Category) lipgloss.Style {
	color, ok := t.Categories[c]
	if !ok {
		color = t.Muted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
