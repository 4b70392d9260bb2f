package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/offer"
	"github.com/rgehrsitz/compme/internal/output"
)

func parseOfferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-offer [file|-]",
		Short: "Extract compensation figures from an offer letter",
		Long: `Extract salary, bonus and equity from an offer letter in plain text or HTML.
A Gemini model is used when offer.api_key (or GEMINI_API_KEY) is set; keyword
patterns are used otherwise and whenever the model fails.

Examples:
  compme parse-offer offer.txt
  pbpaste | compme parse-offer - --patterns-only
  compme parse-offer offer.html --scenario >> scenarios.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readOfferText(cmd, args)
			if err != nil {
				return err
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			var parser *offer.Parser
			if patternsOnly, _ := cmd.Flags().GetBool("patterns-only"); patternsOnly {
				parser = offer.NewParser(nil, a.logger)
			} else {
				parser, err = offer.NewParserWithKey(cmd.Context(), a.settings.Offer.APIKey, a.settings.Offer.Model, a.logger)
				if err != nil {
					return err
				}
			}

			extraction, err := parser.Parse(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("failed to parse offer: %w", err)
			}
			extraction.RawText = ""

			w := cmd.OutOrStdout()
			if asScenario, _ := cmd.Flags().GetBool("scenario"); asScenario {
				data, err := yaml.Marshal(scenarioFromOffer(extraction))
				if err != nil {
					return fmt.Errorf("failed to encode scenario: %w", err)
				}
				_, err = w.Write(data)
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(w, extraction)
			}
			writeExtraction(w, extraction)
			return nil
		},
	}
	cmd.Flags().Bool("patterns-only", false, "Skip the model and use keyword patterns")
	cmd.Flags().Bool("json", false, "Print the extraction as JSON")
	cmd.Flags().Bool("scenario", false, "Print a scenario skeleton with the civilian side filled in")
	return cmd
}

func readOfferText(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read offer letter: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("offer letter is empty")
	}
	return string(data), nil
}

func writeExtraction(w io.Writer, e domain.OfferExtraction) {
	company := "private"
	if e.IsPublicCompany {
		company = "public"
	}
	printRows(w, [][2]string{
		{"Base salary", output.FormatCurrency(e.BaseSalary)},
		{"Sign-on bonus", output.FormatCurrency(e.SignOnBonus)},
		{"Annual bonus", output.FormatWholePercent(e.AnnualBonusPercent) + " / " + output.FormatCurrency(e.AnnualBonusAmount)},
		{"Equity grant", output.FormatCurrency(e.EquityGrant)},
		{"Equity shares", fmt.Sprintf("%d", e.EquityShares)},
		{"Company", company},
		{"", ""},
		{"Parsed by", e.ParseMethod},
		{"Confidence", fmt.Sprintf("%.0f%%", e.ParsingConfidence*100)},
		{"Fields found", strings.Join(e.ExtractedFields, ", ")},
	})
}

// scenarioFromOffer fills the civilian side of a scenario from an extraction.
// A bonus given only in dollars becomes a percent of base salary.
func scenarioFromOffer(e domain.OfferExtraction) domain.ComparisonScenario {
	bonusPct := e.AnnualBonusPercent
	if bonusPct.IsZero() && e.AnnualBonusAmount.IsPositive() && e.BaseSalary.IsPositive() {
		bonusPct = e.AnnualBonusAmount.Div(e.BaseSalary).Mul(decimal.NewFromInt(100)).Round(2)
	}

	s := domain.ComparisonScenario{
		Name: "Parsed offer",
		Civilian: domain.CompensationInput{
			BaseSalary:   e.BaseSalary,
			BonusPct:     bonusPct,
			TotalEquity:  e.EquityGrant,
			FilingStatus: domain.FilingSingle,
		},
		ProjectionYears: domain.DefaultProjectionYears,
	}
	if e.EquityGrant.IsPositive() {
		isPublic := e.IsPublicCompany
		s.Equity = domain.EquityGrant{
			TotalValue:   e.EquityGrant,
			VestingYears: 4,
			Stage:        domain.FromLegacyBool(isPublic),
			IsPublic:     &isPublic,
		}
	}
	return s
}
