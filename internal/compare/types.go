package compare

import (
	"fmt"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one evaluated scenario with the metrics used to rank it.
// Advantage figures are civilian minus military: positive favors leaving.
type ComparisonResult struct {
	ScenarioName string                       `json:"scenario_name"`
	Description  string                       `json:"description,omitempty"`
	Scenario     *domain.ComparisonScenario   `json:"scenario,omitempty"`
	Outcome      *calculation.ScenarioOutcome `json:"outcome,omitempty"`

	// Key metrics
	MilitaryMonthly    decimal.Decimal `json:"military_monthly"`
	CivilianNetMonthly decimal.Decimal `json:"civilian_net_monthly"`
	MonthlyAdvantage   decimal.Decimal `json:"monthly_advantage"`
	MilitaryTotal      decimal.Decimal `json:"military_total"`
	CivilianTotal      decimal.Decimal `json:"civilian_total"`
	TotalAdvantage     decimal.Decimal `json:"total_advantage"`
	ProjectionYears    int             `json:"projection_years"`
	BreakEvenSalary    decimal.Decimal `json:"break_even_salary"`
	BreakEvenConverged bool            `json:"break_even_converged"`
	Warnings           []string        `json:"warnings,omitempty"`

	// Comparison to base
	MonthlyDiffFromBase decimal.Decimal `json:"monthly_diff_from_base"`
	TotalDiffFromBase   decimal.Decimal `json:"total_diff_from_base"`
	BreakEvenDiff       decimal.Decimal `json:"break_even_diff_from_base"`

	// Scenario specifics for display
	Rank        string              `json:"rank"`
	DutyStation string              `json:"duty_station"`
	StateCode   string              `json:"state_code"`
	Stage       domain.CompanyStage `json:"company_stage,omitempty"`
}

// ComparisonSet is a base scenario and its what-if alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"base_scenario_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"config_path,omitempty"`
}

// All returns the base followed by the alternatives
func (cs *ComparisonSet) All() []*ComparisonResult {
	all := make([]*ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, cs.BaseResult)
	}
	for i := range cs.AlternativeResults {
		all = append(all, &cs.AlternativeResults[i])
	}
	return all
}

// MetricsCalculator extracts ranking metrics from a scenario outcome
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics for one outcome. breakEven may be nil
// when the search was not run.
func (mc *MetricsCalculator) CalculateMetrics(s *domain.ComparisonScenario, out *calculation.ScenarioOutcome, breakEven *calculation.BreakEvenResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:       s.Name,
		Scenario:           s,
		Outcome:            out,
		MilitaryMonthly:    out.Military.TotalMonthly,
		CivilianNetMonthly: out.Civilian.NetMonthly,
		MonthlyAdvantage:   out.Civilian.NetMonthly.Sub(out.Military.TotalMonthly),
		MilitaryTotal:      out.Projection.MilitaryTotal,
		CivilianTotal:      out.Projection.CivilianTotal,
		TotalAdvantage:     out.Projection.Delta,
		ProjectionYears:    out.Projection.Years,
		Rank:               out.Military.Rank,
		DutyStation:        out.Military.DutyStation,
		StateCode:          out.Civilian.StateCode,
		Warnings:           mc.warnings(out),
	}
	if out.Equity.TotalGrant.IsPositive() {
		result.Stage = out.Equity.Stage
	}
	if breakEven != nil {
		result.BreakEvenSalary = breakEven.BaseSalary.Round(0)
		result.BreakEvenConverged = breakEven.Converged
	}
	return result
}

func (mc *MetricsCalculator) warnings(out *calculation.ScenarioOutcome) []string {
	var w []string
	if out.Military.BasePaySource == domain.SourceNotFound {
		w = append(w, fmt.Sprintf("No base pay step for %s at %d years of service", out.Military.Rank, out.Military.YearsOfService))
	}
	if out.Military.BAHMissing() {
		station := out.Military.DutyStation
		if station == "" {
			station = "an unspecified station"
		}
		w = append(w, fmt.Sprintf("No BAH rate for %s at %s; military totals exclude housing", out.Military.Rank, station))
	}
	if out.Projection.CliffAlert {
		w = append(w, fmt.Sprintf("Equity cliff: nothing vests until month %d", out.Projection.EquityFirstVests))
	}
	return w
}

// CalculateComparison fills in the differences from the base scenario
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.MonthlyDiffFromBase = scenario.MonthlyAdvantage.Sub(base.MonthlyAdvantage)
	scenario.TotalDiffFromBase = scenario.TotalAdvantage.Sub(base.TotalAdvantage)
	scenario.BreakEvenDiff = scenario.BreakEvenSalary.Sub(base.BreakEvenSalary)
	return scenario
}

// GenerateRecommendations summarizes the comparison set in plain sentences
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	base := compSet.BaseResult
	if base == nil {
		return recommendations
	}

	switch {
	case base.TotalAdvantage.Round(0).IsPositive():
		recommendations = append(recommendations, fmt.Sprintf(
			"Leave: the civilian offer comes out %s ahead over %d years",
			output.FormatCurrency(base.TotalAdvantage), base.ProjectionYears))
	case base.TotalAdvantage.Round(0).IsNegative():
		recommendations = append(recommendations, fmt.Sprintf(
			"Stay: military compensation comes out %s ahead over %d years",
			output.FormatCurrency(base.TotalAdvantage.Abs()), base.ProjectionYears))
	default:
		recommendations = append(recommendations, fmt.Sprintf(
			"Even: both paths are worth about the same over %d years", base.ProjectionYears))
	}

	if base.BreakEvenSalary.IsPositive() {
		recommendations = append(recommendations, fmt.Sprintf(
			"Break-even: a base salary of %s matches %s/month in military pay",
			output.FormatCurrency(base.BreakEvenSalary), output.FormatCurrency(base.MilitaryMonthly)))
	}

	if len(compSet.AlternativeResults) > 0 {
		bestLeave, bestStay := base, base
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.TotalAdvantage.GreaterThan(bestLeave.TotalAdvantage) {
				bestLeave = alt
			}
			if alt.TotalAdvantage.LessThan(bestStay.TotalAdvantage) {
				bestStay = alt
			}
		}
		if bestLeave != base {
			recommendations = append(recommendations, fmt.Sprintf(
				"Strongest case for leaving: %s moves the %d-year result %s toward the civilian side",
				bestLeave.ScenarioName, bestLeave.ProjectionYears,
				output.FormatCurrency(bestLeave.TotalAdvantage.Sub(base.TotalAdvantage))))
		}
		if bestStay != base {
			recommendations = append(recommendations, fmt.Sprintf(
				"Strongest case for staying: %s moves the %d-year result %s toward the military side",
				bestStay.ScenarioName, bestStay.ProjectionYears,
				output.FormatCurrency(base.TotalAdvantage.Sub(bestStay.TotalAdvantage))))
		}
	}

	for _, w := range base.Warnings {
		recommendations = append(recommendations, "Check: "+w)
	}

	return recommendations
}
