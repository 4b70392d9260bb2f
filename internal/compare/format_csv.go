package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Rank",
		"Duty Station",
		"State",
		"Military Monthly",
		"Civilian Net Monthly",
		"Monthly Advantage",
		"Years",
		"Military Total",
		"Civilian Total",
		"Total Advantage",
		"Break-Even Salary",
		"Monthly Diff from Base",
		"Total Diff from Base",
		"Warnings",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Rank,
		result.DutyStation,
		result.StateCode,
		result.MilitaryMonthly.StringFixed(2),
		result.CivilianNetMonthly.StringFixed(2),
		result.MonthlyAdvantage.StringFixed(2),
		strconv.Itoa(result.ProjectionYears),
		result.MilitaryTotal.StringFixed(2),
		result.CivilianTotal.StringFixed(2),
		result.TotalAdvantage.StringFixed(2),
		result.BreakEvenSalary.StringFixed(0),
		result.MonthlyDiffFromBase.StringFixed(2),
		result.TotalDiffFromBase.StringFixed(2),
		strings.Join(result.Warnings, "; "),
	}
}
