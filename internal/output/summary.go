package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/domain"
)

// Summary renders one scenario outcome as a markdown report
func Summary(title string, out calculation.ScenarioOutcome) string {
	var sb strings.Builder

	if title == "" {
		title = "Compensation Comparison"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	writeVerdict(&sb, out)
	writeMilitary(&sb, out.Military)
	writeCivilian(&sb, out.Civilian)
	if out.Equity.TotalGrant.IsPositive() {
		writeEquity(&sb, out.Equity, out.Vesting)
	}
	writeProjection(&sb, out.Projection)

	sb.WriteString("## Assumptions\n\n")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&sb, "- %s\n", a)
	}
	return sb.String()
}

func writeVerdict(sb *strings.Builder, out calculation.ScenarioOutcome) {
	diff := out.Civilian.NetMonthly.Sub(out.Military.TotalMonthly)
	switch {
	case diff.Round(0).IsPositive():
		fmt.Fprintf(sb, "The civilian offer takes home **%s/month more** than staying in.\n\n", FormatCurrency(diff))
	case diff.Round(0).IsNegative():
		fmt.Fprintf(sb, "Staying in is worth **%s/month more** than the civilian offer.\n\n", FormatCurrency(diff.Abs()))
	default:
		sb.WriteString("Both paths take home about the same each month.\n\n")
	}
	if out.Military.BAHMissing() {
		fmt.Fprintf(sb, "> **Warning:** no BAH rate found for %s at %s. Military totals exclude housing.\n\n",
			out.Military.Rank, orUnknown(out.Military.DutyStation))
	}
	if out.Military.BasePaySource == domain.SourceNotFound {
		fmt.Fprintf(sb, "> **Warning:** no base pay step for %s at %d years of service.\n\n",
			out.Military.Rank, out.Military.YearsOfService)
	}
}

func writeMilitary(sb *strings.Builder, m domain.MilitaryResult) {
	fmt.Fprintf(sb, "## Military: %s, %d years, %s\n\n", m.Rank, m.YearsOfService, orUnknown(m.DutyStation))
	sb.WriteString("| Component | Monthly | Taxable |\n|---|---:|:---:|\n")
	fmt.Fprintf(sb, "| Base pay | %s | yes |\n", FormatCurrencyCents(m.BasePayMonthly))
	fmt.Fprintf(sb, "| BAH (%s) | %s | no |\n", m.BAHSource, FormatCurrencyCents(m.BAHMonthly))
	fmt.Fprintf(sb, "| BAS | %s | no |\n", FormatCurrencyCents(m.BASMonthly))
	fmt.Fprintf(sb, "| **Total** | **%s** | |\n\n", FormatCurrencyCents(m.TotalMonthly))
	if m.TaxAdvantageMonthly.IsPositive() {
		fmt.Fprintf(sb, "Untaxed allowances are worth about %s/month more than the same cash would be.\n\n",
			FormatCurrency(m.TaxAdvantageMonthly))
	}
}

func writeCivilian(sb *strings.Builder, c domain.CompensationResult) {
	fmt.Fprintf(sb, "## Civilian: %s, %s\n\n", orUnknown(c.StateCode), c.FilingStatus)
	sb.WriteString("| Line | Annual | Monthly |\n|---|---:|---:|\n")
	row := func(label string, annual string, monthly string) {
		fmt.Fprintf(sb, "| %s | %s | %s |\n", label, annual, monthly)
	}
	row("Base salary", FormatCurrency(c.BaseSalary), FormatCurrency(Monthly(c.BaseSalary)))
	if c.BonusAnnual.IsPositive() {
		row("Bonus", FormatCurrency(c.BonusAnnual), FormatCurrency(Monthly(c.BonusAnnual)))
	}
	if c.RSUAnnual.IsPositive() {
		row("RSUs", FormatCurrency(c.RSUAnnual), FormatCurrency(Monthly(c.RSUAnnual)))
	}
	row("Federal tax", FormatCurrency(c.FederalTax.Neg()), FormatCurrency(Monthly(c.FederalTax).Neg()))
	row("State tax", FormatCurrency(c.StateTax.Neg()), FormatCurrency(Monthly(c.StateTax).Neg()))
	row("FICA", FormatCurrency(c.FICATax.Neg()), FormatCurrency(Monthly(c.FICATax).Neg()))
	if c.AppliedChildTaxCredit.IsPositive() {
		row("Child tax credit", FormatCurrency(c.AppliedChildTaxCredit), FormatCurrency(Monthly(c.AppliedChildTaxCredit)))
	}
	row("**Net**", "**"+FormatCurrency(c.NetAnnual)+"**", "**"+FormatCurrency(c.NetMonthly)+"**")
	fmt.Fprintf(sb, "\nEffective tax rate %s; marginal federal %s, state %s.\n\n",
		FormatPercent(c.EffectiveTaxRate), FormatPercent(c.MarginalFederalRate), FormatPercent(c.MarginalStateRate))
	if c.BonusAnnual.IsPositive() {
		fmt.Fprintf(sb, "The bonus check is withheld down to about %s.\n\n", FormatCurrency(c.BonusWithholding.Net))
	}
}

func writeEquity(sb *strings.Builder, e domain.EquityValuation, schedule []domain.VestingScheduleEntry) {
	fmt.Fprintf(sb, "## Equity: %s\n\n", e.Stage.Label())
	fmt.Fprintf(sb, "%s grant, risk-adjusted to %s (%s discount), about %s/month.\n\n",
		FormatCurrency(e.TotalGrant), FormatCurrency(e.AdjustedValue), FormatWholePercent(e.DiscountPct),
		FormatCurrency(e.MonthlyValue))
	if e.Note != "" {
		fmt.Fprintf(sb, "_%s_\n\n", e.Note)
	}
	if len(schedule) == 0 {
		return
	}
	sb.WriteString("| Year | Vests | Cumulative | Unvested |\n|---:|---:|---:|---:|\n")
	for _, v := range schedule {
		fmt.Fprintf(sb, "| %d | %s | %s | %s |\n", v.Year,
			FormatCurrency(v.VestedThisYear), FormatCurrency(v.CumulativeVested), FormatCurrency(v.RemainingUnvested))
	}
	sb.WriteString("\n")
}

func writeProjection(sb *strings.Builder, p domain.WealthProjection) {
	fmt.Fprintf(sb, "## %d-Year Outlook\n\n", p.Years)
	sb.WriteString("| | Military | Civilian |\n|---|---:|---:|\n")
	fmt.Fprintf(sb, "| Cash | %s | %s |\n", FormatCurrency(p.MilitaryCash), FormatCurrency(p.CivilianCash))
	fmt.Fprintf(sb, "| TSP match / Equity | %s | %s |\n", FormatCurrency(p.TSPMatch), FormatCurrency(p.CivilianEquity))
	fmt.Fprintf(sb, "| **Total** | **%s** | **%s** |\n\n", FormatCurrency(p.MilitaryTotal), FormatCurrency(p.CivilianTotal))
	fmt.Fprintf(sb, "Civilian minus military over %d years: **%s**.\n\n", p.Years, FormatDelta(p.Delta))
	if p.CliffAlert {
		fmt.Fprintf(sb, "> **Cliff:** no equity vests until month %d. Leaving before then forfeits the whole grant.\n\n",
			p.EquityFirstVests)
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
