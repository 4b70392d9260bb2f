package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/config"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/output"
	"github.com/rgehrsitz/compme/internal/scenariolog"
	"github.com/rgehrsitz/compme/internal/transform"
)

// defaultScenarioFile is also where the dashboard saves edits
const defaultScenarioFile = "compme-scenarios.yaml"

func scenarioFileArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if fileExists(defaultScenarioFile) {
		return defaultScenarioFile, nil
	}
	return "", fmt.Errorf("input file required (no %s in the working directory)", defaultScenarioFile)
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Evaluate every scenario in a scenario file",
		Long: `Evaluate each scenario in a YAML, JSON or Hjson file and compare them
against the first (or --base) scenario.

Examples:
  compme calculate scenarios.yaml
  compme calculate scenarios.yaml --format csv
  compme calculate scenarios.yaml --report --format html -o report.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile, err := scenarioFileArg(args)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			file, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			engine, err := a.compareEngine()
			if err != nil {
				return err
			}

			baseName, _ := cmd.Flags().GetString("base")
			ctx := cmd.Context()
			compSet, err := engine.CompareScenarios(ctx, file.Scenarios, baseName)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}
			compSet.ConfigPath = inputFile
			a.logScenarios(ctx, compSet)

			return writeComparison(cmd, compSet)
		},
	}
	cmd.Flags().String("base", "", "Scenario to compare the others against (default: the first)")
	addOutputFlags(cmd)
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a scenario against what-if alternatives",
		Long: `Compare a base scenario against alternatives built from templates and transforms.

Examples:
  compme compare scenarios.yaml --with promote,reenlist_4yr
  compme compare scenarios.yaml --base "E-5 San Diego" --with no_state_tax --format csv
  compme compare scenarios.yaml --transform set_state:state=WA --transform adjust_salary:pct=10
  compme compare --list-templates  # Show all available templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				out := cmd.OutOrStdout()
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				fmt.Fprintf(out, "\nTransforms (--transform name:key=value,...): %s\n",
					strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}

			inputFile, err := scenarioFileArg(args)
			if err != nil {
				return fmt.Errorf("%w; use --list-templates to see available templates", err)
			}

			withList, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			templates := transform.ParseTemplateList(withList)
			if len(templates) == 0 && len(transforms) == 0 {
				return errors.New("--with or --transform is required (or use --list-templates)")
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			file, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			baseName, _ := cmd.Flags().GetString("base")
			base, err := pickScenario(file.Scenarios, baseName)
			if err != nil {
				return err
			}

			engine, err := a.compareEngine()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			compSet, err := engine.Compare(ctx, base, compare.CompareOptions{
				Templates:  templates,
				Transforms: transforms,
				ConfigPath: inputFile,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			a.logScenarios(ctx, compSet)

			return writeComparison(cmd, compSet)
		},
	}
	cmd.Flags().String("base", "", "Base scenario name (default: the first scenario)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	addOutputFlags(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file...]",
		Short: "Validate scenario files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			for _, inputFile := range args {
				file, err := parser.LoadFromFile(inputFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d scenarios)\n", inputFile, len(file.Scenarios))
			}
			return nil
		},
	}
}

func pickScenario(scenarios []domain.ComparisonScenario, name string) (*domain.ComparisonScenario, error) {
	if len(scenarios) == 0 {
		return nil, errors.New("no scenarios provided")
	}
	if name == "" {
		return &scenarios[0], nil
	}
	for i := range scenarios {
		if strings.EqualFold(scenarios[i].Name, name) {
			return &scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("base scenario %s not found", name)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "table", "Output format ("+strings.Join(compare.FormatNames(), ", ")+")")
	cmd.Flags().Bool("report", false, "Write the full report for each scenario instead of the comparison")
	cmd.Flags().String("style", "", "Terminal report style (dark, light, notty; default: detect)")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}

// writeComparison renders a comparison set, or the per-scenario reports when
// --report is set, to stdout or --output
func writeComparison(cmd *cobra.Command, compSet *compare.ComparisonSet) error {
	format, _ := cmd.Flags().GetString("format")
	report, _ := cmd.Flags().GetBool("report")

	var text string
	if report {
		style, _ := cmd.Flags().GetString("style")
		rendered, err := renderReports(compSet, format, style)
		if err != nil {
			return err
		}
		text = rendered
	} else {
		f, err := compare.FormatterByName(format)
		if err != nil {
			return err
		}
		text, err = f.Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", f.Name(), err)
		}
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func renderReports(compSet *compare.ComparisonSet, format, style string) (string, error) {
	var parts []string
	for _, r := range compSet.All() {
		if r.Outcome == nil {
			continue
		}
		parts = append(parts, output.Summary(r.ScenarioName, *r.Outcome))
	}
	md := strings.Join(parts, "\n---\n\n")

	switch strings.ToLower(format) {
	case "markdown", "md":
		return md, nil
	case "html":
		page, err := output.RenderHTML(compSet.BaseScenarioName, md)
		if err != nil {
			return "", err
		}
		return string(page), nil
	case "table", "console", "":
		return output.RenderTerminal(md, 100, style)
	default:
		return "", fmt.Errorf("--report supports table, markdown and html, not %q", format)
	}
}

// logScenarios records each evaluated scenario and waits for the writes
func (a *app) logScenarios(ctx context.Context, compSet *compare.ComparisonSet) {
	sl, err := a.openScenarioLog(ctx)
	if err != nil {
		a.logger.Warn("scenario log unavailable", zap.Error(err))
		return
	}
	for _, r := range compSet.All() {
		if r.Outcome == nil {
			continue
		}
		out := r.Outcome
		sl.Submit(scenariolog.FromResults(out.Military, out.Civilian, out.Equity.TotalGrant, ""))
	}
	if err := sl.Close(); err != nil {
		a.logger.Debug("scenario log close failed", zap.Error(err))
	}
}
