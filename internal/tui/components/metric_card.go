package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend is a change shown under the value
type Trend struct {
	IsPositive bool
	Change     string // e.g., "+$5,234/mo"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 28,
	}
}

// NewMoneyCard creates a card showing a whole-dollar amount
func NewMoneyCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, tuistyles.FormatCurrency(amount))
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{
		IsPositive: isPositive,
		Change:     change,
	}
	return m
}

// WithDelta adds a signed change; zero (after rounding) adds nothing
func (m *MetricCard) WithDelta(delta decimal.Decimal, suffix string) *MetricCard {
	if delta.Round(0).IsZero() {
		return m
	}
	return m.WithTrend(delta.IsPositive(), tuistyles.FormatDelta(delta)+suffix)
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		content += "\n" + tuistyles.MetricTrendStyle(m.Trend.IsPositive).
			Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a compact inline version without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		line += " " + tuistyles.MetricTrendStyle(m.Trend.IsPositive).
			Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	return line
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
