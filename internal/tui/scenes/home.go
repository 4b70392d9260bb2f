package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/tui/components"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
)

// HomeModel is the dashboard for the current scenario
type HomeModel struct {
	result *compare.ComparisonResult
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetResult updates the evaluated scenario
func (m *HomeModel) SetResult(r *compare.ComparisonResult) {
	m.result = r
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard
func (m *HomeModel) View() string {
	r := m.result
	if r == nil || r.Outcome == nil {
		return tuistyles.BorderStyle.Render(
			"Welcome to compme.\n\n" +
				tuistyles.HintStyle.Render("Pick a scenario (s) or edit one (p) to see how staying in compares to the offer."))
	}

	sections := []string{
		tuistyles.TitleStyle.Render(r.ScenarioName),
		verdict(r),
		"",
		components.MetricGrid(m.cards(r), m.columns()),
	}

	if len(r.Warnings) > 0 {
		var warn strings.Builder
		for _, w := range r.Warnings {
			warn.WriteString(tuistyles.WarningStyle.Render("! "+w) + "\n")
		}
		sections = append(sections, "", strings.TrimRight(warn.String(), "\n"))
	}

	chartWidth := max(min(m.width-4, 72), 30)
	chart := components.WealthChart(r.Outcome.Projection).WithSize(chartWidth, 10).Render()
	sections = append(sections, "", chart)

	if len(r.Outcome.Vesting) > 0 {
		timeline := components.NewVestingTimeline(r.Outcome.Vesting, r.Outcome.Projection.CliffMonths).
			WithWidth(max(chartWidth-30, 10))
		sections = append(sections, "", timeline.Render())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *HomeModel) cards(r *compare.ComparisonResult) []*components.MetricCard {
	cards := []*components.MetricCard{
		components.NewMoneyCard("Military / month", r.MilitaryMonthly).
			WithDescription(fmt.Sprintf("%s, %s", r.Rank, orDash(r.DutyStation))),
		components.NewMoneyCard("Civilian net / month", r.CivilianNetMonthly).
			WithDelta(r.MonthlyAdvantage, "/mo").
			WithDescription(orDash(r.StateCode)),
		components.NewMoneyCard(fmt.Sprintf("%d-year advantage", r.ProjectionYears), r.TotalAdvantage.Abs()).
			WithDescription(advantageSide(r)),
	}
	if r.BreakEvenSalary.IsPositive() {
		cards = append(cards, components.NewMoneyCard("Break-even salary", r.BreakEvenSalary).
			WithDescription("matches military pay"))
	}
	return cards
}

func (m *HomeModel) columns() int {
	if m.width > 0 && m.width < 64 {
		return 2
	}
	return 4
}

func verdict(r *compare.ComparisonResult) string {
	diff := r.MonthlyAdvantage.Round(0)
	switch {
	case diff.IsPositive():
		return tuistyles.MetricPositiveStyle.Render(
			fmt.Sprintf("The civilian offer takes home %s/month more.", tuistyles.FormatCurrency(diff)))
	case diff.IsNegative():
		return tuistyles.MetricNegativeStyle.Render(
			fmt.Sprintf("Staying in is worth %s/month more.", tuistyles.FormatCurrency(diff.Abs())))
	}
	return tuistyles.SubtitleStyle.Render("Both paths take home about the same each month.")
}

func advantageSide(r *compare.ComparisonResult) string {
	switch {
	case r.TotalAdvantage.Round(0).IsPositive():
		return "civilian ahead"
	case r.TotalAdvantage.Round(0).IsNegative():
		return "military ahead"
	}
	return "even"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
