package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// VestingTimeline shows how much of a grant is owned at the end of each year
type VestingTimeline struct {
	Title       string
	Schedule    []domain.VestingScheduleEntry
	CliffMonths int
	Width       int
}

// NewVestingTimeline creates a timeline for a schedule
func NewVestingTimeline(schedule []domain.VestingScheduleEntry, cliffMonths int) *VestingTimeline {
	return &VestingTimeline{
		Title:       "Vesting",
		Schedule:    schedule,
		CliffMonths: cliffMonths,
		Width:       30,
	}
}

// WithWidth sets the bar width
func (v *VestingTimeline) WithWidth(width int) *VestingTimeline {
	v.Width = width
	return v
}

// Total is the risk-adjusted value of the whole schedule
func (v *VestingTimeline) Total() decimal.Decimal {
	if len(v.Schedule) == 0 {
		return decimal.Zero
	}
	last := v.Schedule[len(v.Schedule)-1]
	return last.CumulativeVested.Add(last.RemainingUnvested)
}

// Fraction returns the share of the grant owned after year (1-based)
func (v *VestingTimeline) Fraction(year int) float64 {
	total := v.Total()
	if !total.IsPositive() || year < 1 || year > len(v.Schedule) {
		return 0
	}
	f, _ := v.Schedule[year-1].CumulativeVested.Div(total).Float64()
	return f
}

// Render returns one bar per year and a cliff note
func (v *VestingTimeline) Render() string {
	if len(v.Schedule) == 0 {
		return tuistyles.InfoStyle.Render("No equity in this offer")
	}

	bar := progress.New(
		progress.WithSolidFill(string(tuistyles.ColorCivilian)),
		progress.WithWidth(v.Width),
	)

	var content strings.Builder
	if v.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(v.Title) + "\n")
	}
	label := lipgloss.NewStyle().Width(8)
	for _, entry := range v.Schedule {
		fmt.Fprintf(&content, "%s %s %s\n",
			label.Render(fmt.Sprintf("Year %d", entry.Year)),
			bar.ViewAs(v.Fraction(entry.Year)),
			tuistyles.SubtitleStyle.Render(tuistyles.FormatCurrency(entry.CumulativeVested)))
	}

	if v.CliffMonths > 0 && v.Total().IsPositive() {
		content.WriteString(tuistyles.WarningStyle.Render(
			fmt.Sprintf("Cliff: nothing vests until month %d", min(v.CliffMonths, 12))))
	}
	return strings.TrimRight(content.String(), "\n")
}
