package output

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in        string
		whole     string
		withCents string
	}{
		{"0", "$0", "$0.00"},
		{"999.4", "$999", "$999.40"},
		{"1234567.891", "$1,234,568", "$1,234,567.89"},
		{"-500", "-$500", "-$500.00"},
		{"-0.001", "$0", "$0.00"},
		{"2083.333", "$2,083", "$2,083.33"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.whole, FormatCurrency(d(tt.in)))
			assert.Equal(t, tt.withCents, FormatCurrencyCents(d(tt.in)))
		})
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+$1,200", FormatDelta(d("1200")))
	assert.Equal(t, "-$350", FormatDelta(d("-350")))
	assert.Equal(t, "$0", FormatDelta(d("0.2")))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "22.1%", FormatPercent(d("0.2212")))
	assert.Equal(t, "0.0%", FormatPercent(decimal.Zero))
	assert.Equal(t, "15%", FormatWholePercent(d("15")))
	assert.Equal(t, "10.5%", FormatWholePercent(d("10.5")))
	assert.Equal(t, "0%", FormatWholePercent(decimal.Zero))
	assert.Equal(t, "100%", FormatWholePercent(d("100")))
}

func TestMonthlyAnnual(t *testing.T) {
	assert.True(t, Monthly(d("100000")).Equal(d("8333.33")))
	assert.True(t, Annual(d("7970.57")).Equal(d("95646.84")))
}

func sampleOutcome() calculation.ScenarioOutcome {
	return calculation.ScenarioOutcome{
		Military: domain.MilitaryResult{
			Rank: "E-5", YearsOfService: 6, DutyStation: "SAN DIEGO, CA",
			BasePayMonthly: d("4297.8"), BasePaySource: domain.SourceOfficial,
			BAHMonthly: d("3207"), BAHSource: domain.SourceOfficial,
			BASMonthly: d("465.77"), TaxAdvantageMonthly: d("550.92"),
			TotalMonthly: d("7970.57"),
		},
		Civilian: domain.CompensationResult{
			StateCode: "VA", FilingStatus: domain.FilingSingle,
			BaseSalary: d("100000"), BonusAnnual: d("10000"),
			FederalTax: d("15649"), StateTax: d("6067.5"), FICATax: d("8415"),
			NetAnnual: d("79868.5"), NetMonthly: d("6655.71"),
			EffectiveTaxRate:  d("0.2739"),
			BonusWithholding:  domain.Withholding{Net: d("7035")},
		},
		Equity: domain.EquityValuation{
			Stage: domain.StageGrowth, TotalGrant: d("100000"), AdjustedValue: d("50000"),
			AnnualizedValue: d("12500"), MonthlyValue: d("1041.67"), DiscountPct: d("50"),
			Note: "Growth stage: 50% risk discount applied",
		},
		Vesting: []domain.VestingScheduleEntry{
			{Year: 1, VestedThisYear: d("12500"), CumulativeVested: d("12500"), RemainingUnvested: d("37500")},
		},
		Projection: domain.WealthProjection{
			Years: 4, MilitaryCash: d("382587.36"), MilitaryTotal: d("392901.08"), TSPMatch: d("10313.72"),
			CivilianCash: d("319474.08"), CivilianEquity: d("50000"), CivilianTotal: d("369474.08"),
			Delta: d("-23427"), CliffAlert: true, EquityFirstVests: 12,
		},
	}
}

func TestSummary(t *testing.T) {
	md := Summary("E-5 vs. Richmond offer", sampleOutcome())

	assert.True(t, strings.HasPrefix(md, "# E-5 vs. Richmond offer\n"))
	assert.Contains(t, md, "Staying in is worth **$1,315/month more**")
	assert.Contains(t, md, "## Military: E-5, 6 years, SAN DIEGO, CA")
	assert.Contains(t, md, "| BAH (official) | $3,207.00 | no |")
	assert.Contains(t, md, "| **Total** | **$7,970.57** | |")
	assert.Contains(t, md, "## Civilian: VA, single")
	assert.Contains(t, md, "| Federal tax | -$15,649 | -$1,304 |")
	assert.Contains(t, md, "withheld down to about $7,035")
	assert.Contains(t, md, "## Equity: Growth")
	assert.Contains(t, md, "(50% discount)")
	assert.Contains(t, md, "| 1 | $12,500 | $12,500 | $37,500 |")
	assert.Contains(t, md, "## 4-Year Outlook")
	assert.Contains(t, md, "**-$23,427**")
	assert.Contains(t, md, "until month 12")
	assert.Contains(t, md, "## Assumptions")
	assert.NotContains(t, md, "Warning")
}

func TestSummary_Warnings(t *testing.T) {
	out := sampleOutcome()
	out.Military.BAHSource = domain.SourceNotFound
	out.Military.BasePaySource = domain.SourceNotFound
	out.Military.DutyStation = ""
	out.Equity = domain.EquityValuation{}
	out.Projection.CliffAlert = false

	md := Summary("", out)
	assert.True(t, strings.HasPrefix(md, "# Compensation Comparison\n"))
	assert.Contains(t, md, "no BAH rate found for E-5 at unknown")
	assert.Contains(t, md, "no base pay step for E-5 at 6 years")
	assert.NotContains(t, md, "## Equity")
	assert.NotContains(t, md, "Cliff")
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML("A <b> title", Summary("Report", sampleOutcome()))
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<title>A &lt;b&gt; title</title>")
	assert.Contains(t, html, "<h1>Report</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<blockquote>")
	assert.True(t, strings.HasSuffix(html, "</html>\n"))
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal("# Outlook\n\nStaying in wins.\n", 60, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Outlook")
	assert.Contains(t, out, "Staying in wins.")
}
