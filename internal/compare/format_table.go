package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	numberStyle   = cellStyle.Align(lipgloss.Right)
	positiveStyle = numberStyle.Foreground(lipgloss.Color("42"))
	negativeStyle = numberStyle.Foreground(lipgloss.Color("203"))
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

func (tf *TableFormatter) Name() string { return "table" }

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("MILITARY VS. CIVILIAN COMPARISON") + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	results := compSet.All()
	rows := make([][]string, 0, len(results))
	// deltas[row][0] colors the monthly column, [1] the total column
	deltas := make([][2]decimal.Decimal, 0, len(results))
	for i, r := range results {
		name := tf.truncate(r.ScenarioName, 28)
		if i == 0 {
			name += " (base)"
		}
		rows = append(rows, []string{
			name,
			"$" + tf.formatDecimal(r.MilitaryMonthly),
			"$" + tf.formatDecimal(r.CivilianNetMonthly),
			tf.formatDelta(r.MonthlyAdvantage),
			tf.formatDelta(r.TotalAdvantage),
			"$" + tf.formatDecimal(r.BreakEvenSalary),
		})
		deltas = append(deltas, [2]decimal.Decimal{r.MonthlyAdvantage, r.TotalAdvantage})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Scenario", "Military/mo", "Civilian/mo", "Civ - Mil/mo", "Civ - Mil Total", "Break-Even").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			case col == 3 || col == 4:
				if row >= 0 && row < len(deltas) {
					d := deltas[row][col-3].Round(0)
					if d.IsPositive() {
						return positiveStyle
					}
					if d.IsNegative() {
						return negativeStyle
					}
				}
			}
			return numberStyle
		})
	sb.WriteString(t.String() + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\n" + titleStyle.Render("COMPARISON TO BASE") + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Monthly advantage:  %s\n", tf.formatDelta(alt.MonthlyDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  %d-year advantage:  %s\n", alt.ProjectionYears, tf.formatDelta(alt.TotalDiffFromBase)))
			if !alt.BreakEvenDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Break-even salary:  %s\n", tf.formatDelta(alt.BreakEvenDiff)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\n" + titleStyle.Render("RECOMMENDATIONS") + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// formatDelta formats a signed amount: +$1.2K, -$350, $0
func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	switch {
	case d.Round(0).IsPositive():
		return "+$" + tf.formatDecimal(d)
	case d.Round(0).IsNegative():
		return "-$" + tf.formatDecimal(d.Abs())
	}
	return "$0"
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf(" (%s/mo)", tf.formatDelta(compSet.BaseResult.MonthlyAdvantage)))
	}

	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.ScenarioName, tf.formatDelta(alt.MonthlyDiffFromBase)))
	}

	return sb.String()
}
