package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
)

// ScenarioCard displays a compact scenario overview
type ScenarioCard struct {
	Name       string
	Subtitle   string
	Highlights []string
	IsSelected bool
	Width      int
}

// NewScenarioCard creates a card describing both sides of a scenario
func NewScenarioCard(s domain.ComparisonScenario) *ScenarioCard {
	card := &ScenarioCard{
		Name:  s.Name,
		Width: 44,
	}

	m := s.Military
	station := m.DutyStation
	if station == "" {
		station = "no duty station"
	}
	card.Subtitle = fmt.Sprintf("%s, %d yrs, %s", domain.NormalizeRank(m.Rank), m.YearsOfService, station)

	c := s.Civilian
	offer := fmt.Sprintf("Offer %s in %s", tuistyles.FormatCurrency(c.BaseSalary), orDash(strings.ToUpper(c.StateCode)))
	if c.BonusPct.IsPositive() {
		offer += fmt.Sprintf(" + %s%% bonus", c.BonusPct.String())
	}
	card.Highlights = append(card.Highlights, offer)

	if s.Equity.TotalValue.IsPositive() {
		card.Highlights = append(card.Highlights, fmt.Sprintf("Equity %s over %d yrs (%s)",
			tuistyles.FormatCurrency(s.Equity.TotalValue), s.Equity.VestingYears, s.Equity.EffectiveStage().Label()))
	}
	if m.HasDependents {
		card.Highlights = append(card.Highlights, "With dependents")
	}
	return card
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled scenario card
func (s *ScenarioCard) Render() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(s.Name) + "\n")
	if s.Subtitle != "" {
		content.WriteString(tuistyles.HintStyle.Render(s.Subtitle) + "\n")
	}
	if len(s.Highlights) > 0 {
		content.WriteString("\n")
		for _, h := range s.Highlights {
			content.WriteString(tuistyles.SubtitleStyle.Render("• "+h) + "\n")
		}
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a compact single-line version
func (s *ScenarioCard) RenderCompact() string {
	line := lipgloss.NewStyle().Bold(true).Render(s.Name)
	if s.Subtitle != "" {
		line += " " + tuistyles.SubtitleStyle.Render("("+s.Subtitle+")")
	}
	return line
}

// ScenarioListCompact renders a selection list
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix, style := "  ", tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix, style = "▸ ", tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}
	return strings.Join(rendered, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
