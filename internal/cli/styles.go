// Package cli renders scored tenants for the terminal using lipgloss.
package cli

import (
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette colors, shared with the dashboard's default theme.
var (
	PrimaryColor = lipgloss.Color("#1E3C72") // navy
	AccentColor  = lipgloss.Color("#667EEA") // violet
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
	BorderColor  = lipgloss.Color("#333333")
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor).MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// BoxStyle frames a titled section such as Analytics or Insights.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2)

	// CardStyle frames one tenant on the leaderboard.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1).
			Width(44)

	// MetricStyle frames one headline metric.
	MetricStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1).
			Width(22)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor).PaddingRight(2)
	TableCellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	HouseIcon   = "🏠"
	TrophyIcon  = "🏆"
	ChartIcon   = "📊"
	SearchIcon  = "🔍"
	StarIcon    = "🌟"
	CheckIcon   = "✅"
)

var categoryColors = map[model.Category]lipgloss.Color{
	model.CategoryExcellent: lipgloss.Color("#2ECC71"),
	model.CategoryVeryGood:  lipgloss.Color("#3498DB"),
	model.CategoryGood:      lipgloss.Color("#F39C12"),
	model.CategoryAverage:   lipgloss.Color("#E67E22"),
	model.CategoryPoor:      lipgloss.Color("#E74C3C"),
}

// CategoryColor returns the display color of a quality category.
func CategoryColor(c model.Category) lipgloss.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return SubtleColor
}

// CategoryStyle returns a bold style in the category's color.
func CategoryStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CategoryColor(c))
}

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string { return withIcon(SuccessStyle, SuccessIcon, message) }

// FormatError formats an error message with icon.
func FormatError(message string) string { return withIcon(ErrorStyle, ErrorIcon, message) }

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string { return withIcon(WarningStyle, WarningIcon, message) }

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string { return withIcon(InfoStyle, InfoIcon, message) }

// FormatTitle prefixes title with the house icon.
func FormatTitle(title string) string { return withIcon(TitleStyle, HouseIcon, title) }

// RenderBox renders content under title inside a rounded border.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
