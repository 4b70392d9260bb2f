package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/compme/internal/domain"
)

func TestParameterSlider_ClampsAndSteps(t *testing.T) {
	s := NewParameterSlider("years", "Years", 50, 0, 40, 1)
	assert.Equal(t, 40.0, s.Value)

	s.Increment()
	assert.Equal(t, 40.0, s.Value)

	s.SetValue(0)
	s.Decrement()
	assert.Equal(t, 0.0, s.Value)
	assert.Equal(t, 0.0, s.Percentage())

	s.SetValue(20)
	assert.InDelta(t, 0.5, s.Percentage(), 1e-9)
	assert.Empty(t, s.Choice())
}

func TestParameterSlider_Display(t *testing.T) {
	s := NewParameterSlider("bonus", "Bonus", 15, 0, 100, 1).WithUnit("%")
	assert.Equal(t, "15%", s.Display())

	money := NewParameterSlider("salary", "Salary", 500, 0, 1000, 50).WithPrefix("$")
	assert.Equal(t, "$500", money.Display())
}

func TestChoiceSlider(t *testing.T) {
	s := NewChoiceSlider("stage", "Stage", []string{"public", "growth", "early"}, "GROWTH")
	assert.Equal(t, "growth", s.Choice())
	assert.Equal(t, "growth", s.Display())

	s.Increment()
	s.Increment()
	assert.Equal(t, "early", s.Choice(), "stops at the last choice")

	unknown := NewChoiceSlider("stage", "Stage", []string{"public", "growth"}, "mystery")
	assert.Equal(t, "public", unknown.Choice())

	empty := NewChoiceSlider("x", "X", nil, "")
	assert.Empty(t, empty.Choice())
}

func TestParameterSlider_RenderCompactMarksFocus(t *testing.T) {
	s := NewParameterSlider("years", "Years", 6, 0, 40, 1)
	assert.NotContains(t, s.RenderCompact(), "▸")
	s.SetFocused(true)
	assert.Contains(t, s.RenderCompact(), "▸")
	assert.Contains(t, s.Render(), "Years")
}

func TestMetricCard_WithDelta(t *testing.T) {
	card := NewMetricCard("Net", "$5,000").WithDelta(decimal.NewFromFloat(0.4), "/mo")
	assert.Nil(t, card.Trend, "rounds to zero")

	card.WithDelta(decimal.NewFromInt(-250), "/mo")
	require.NotNil(t, card.Trend)
	assert.False(t, card.Trend.IsPositive)
	assert.Contains(t, card.Trend.Change, "/mo")
	assert.Contains(t, card.Render(), "Net")
}

func TestMetricGrid(t *testing.T) {
	cards := []*MetricCard{NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3")}
	grid := MetricGrid(cards, 2)
	for _, want := range []string{"A", "B", "C"} {
		assert.Contains(t, grid, want)
	}
}

func TestVestingTimeline(t *testing.T) {
	schedule := []domain.VestingScheduleEntry{
		{Year: 1, CumulativeVested: decimal.NewFromInt(25000), RemainingUnvested: decimal.NewFromInt(75000)},
		{Year: 2, CumulativeVested: decimal.NewFromInt(50000), RemainingUnvested: decimal.NewFromInt(50000)},
		{Year: 3, CumulativeVested: decimal.NewFromInt(75000), RemainingUnvested: decimal.NewFromInt(25000)},
		{Year: 4, CumulativeVested: decimal.NewFromInt(100000), RemainingUnvested: decimal.Zero},
	}
	v := NewVestingTimeline(schedule, 12).WithWidth(20)

	assert.True(t, v.Total().Equal(decimal.NewFromInt(100000)))
	assert.InDelta(t, 0.25, v.Fraction(1), 1e-9)
	assert.InDelta(t, 1.0, v.Fraction(4), 1e-9)
	assert.Zero(t, v.Fraction(0))
	assert.Zero(t, v.Fraction(5))

	out := v.Render()
	assert.Contains(t, out, "Year 1")
	assert.Contains(t, out, "Year 4")
	assert.Contains(t, out, "month 12")
}

func TestVestingTimeline_Empty(t *testing.T) {
	assert.Contains(t, NewVestingTimeline(nil, 12).Render(), "No equity")
}

func TestWealthChart(t *testing.T) {
	p := domain.WealthProjection{Years: 2}
	for year := 0; year <= 2; year++ {
		p.Series = append(p.Series, domain.WealthPoint{
			Year:     year,
			Military: decimal.NewFromInt(int64(year * 60000)),
			Civilian: decimal.NewFromInt(int64(year * 70000)),
		})
	}

	chart := WealthChart(p).WithSize(50, 8)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, []string{"Y0", "Y1", "Y2"}, chart.Labels)

	out := chart.Render()
	assert.Contains(t, out, "Cumulative wealth over 2 years")
	assert.Contains(t, out, "Military")
	assert.Contains(t, out, "Civilian")
}

func TestASCIIChart_NoData(t *testing.T) {
	assert.Contains(t, NewASCIIChart("x").Render(), "No data")
}

func TestASCIIChart_FlatSeries(t *testing.T) {
	chart := NewASCIIChart("").AddSeries("flat", []float64{5, 5, 5}, lipgloss.Color("1"))
	lo, hi := chart.bounds()
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 6.0, hi)
	assert.NotEmpty(t, chart.Render())
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$2.5M", formatChartValue(2_500_000))
	assert.Equal(t, "$120K", formatChartValue(120_000))
	assert.Equal(t, "$999", formatChartValue(999))
}

func TestScenarioCard(t *testing.T) {
	s := domain.ComparisonScenario{
		Name: "Stay or go",
		Military: domain.MilitaryInput{
			Rank: "e5", YearsOfService: 6, DutyStation: "SAN DIEGO, CA", HasDependents: true,
		},
		Civilian: domain.CompensationInput{
			BaseSalary: decimal.NewFromInt(90000), BonusPct: decimal.NewFromInt(10), StateCode: "ca",
		},
		Equity: domain.EquityGrant{TotalValue: decimal.NewFromInt(40000), VestingYears: 4, Stage: domain.StageGrowth},
	}

	card := NewScenarioCard(s)
	assert.Equal(t, "E-5, 6 yrs, SAN DIEGO, CA", card.Subtitle)
	require.Len(t, card.Highlights, 3)
	assert.Contains(t, card.Highlights[0], "in CA")
	assert.Contains(t, card.Highlights[0], "10% bonus")
	assert.Contains(t, card.Highlights[1], "over 4 yrs (Growth)")
	assert.Equal(t, "With dependents", card.Highlights[2])

	list := ScenarioListCompact([]*ScenarioCard{card, NewScenarioCard(domain.ComparisonScenario{Name: "Other"})}, 1)
	assert.Contains(t, list, "▸ Other")
	assert.Contains(t, ScenarioListCompact(nil, 0), "No scenarios")
}
