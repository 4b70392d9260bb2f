package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/compme/internal/output"
)

// MarkdownFormatter renders the comparison table, the recommendations, and the
// full summary of the base scenario.
type MarkdownFormatter struct{}

func (mf *MarkdownFormatter) Name() string { return "markdown" }

// Format generates a markdown report
func (mf *MarkdownFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder

	if len(compSet.AlternativeResults) > 0 {
		fmt.Fprintf(&sb, "# Scenarios compared to %s\n\n", compSet.BaseScenarioName)
		sb.WriteString("| Scenario | Military/mo | Civilian/mo | Civ - Mil/mo | Civ - Mil total | Break-even |\n")
		sb.WriteString("|---|---:|---:|---:|---:|---:|\n")
		for _, r := range compSet.All() {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
				r.ScenarioName,
				output.FormatCurrency(r.MilitaryMonthly),
				output.FormatCurrency(r.CivilianNetMonthly),
				output.FormatDelta(r.MonthlyAdvantage),
				output.FormatDelta(r.TotalAdvantage),
				output.FormatCurrency(r.BreakEvenSalary))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("## Recommendations\n\n")
		for _, rec := range compSet.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
		sb.WriteString("\n")
	}

	if base := compSet.BaseResult; base != nil && base.Outcome != nil {
		summary := output.Summary(base.ScenarioName, *base.Outcome)
		if len(compSet.AlternativeResults) > 0 {
			// nest the base report under the comparison heading
			summary = "#" + strings.ReplaceAll(summary, "\n#", "\n##")
		}
		sb.WriteString(summary)
	}

	return sb.String(), nil
}

// HTMLFormatter renders the markdown report as a standalone page
type HTMLFormatter struct{}

func (hf *HTMLFormatter) Name() string { return "html" }

// Format generates an HTML page
func (hf *HTMLFormatter) Format(compSet *ComparisonSet) (string, error) {
	md, err := (&MarkdownFormatter{}).Format(compSet)
	if err != nil {
		return "", err
	}
	page, err := output.RenderHTML(compSet.BaseScenarioName, md)
	if err != nil {
		return "", err
	}
	return string(page), nil
}
