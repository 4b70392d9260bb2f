// Package tuistyles holds the TUI palette and shared styles. It sits below
// both the root model and the scenes so neither imports the other.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/compme/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7AB8F5"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#4B5D3A", Dark: "#A3C586"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F5B041"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#67E8F9"}

	ColorForeground = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

	// Chart series: military, civilian
	ColorMilitary = lipgloss.Color("#A3C586")
	ColorCivilian = lipgloss.Color("#7AB8F5")
)

// Base styles
var (
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)
	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	SliderTrackStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)
	HintStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// MetricTrendStyle colors a change by direction
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency formats whole dollars with separators
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}

// FormatDelta formats a signed whole-dollar change
func FormatDelta(amount decimal.Decimal) string {
	return output.FormatDelta(amount)
}
