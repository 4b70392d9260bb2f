package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/output"
)

func addCivilianFlags(cmd *cobra.Command, withSalary bool) {
	if withSalary {
		cmd.Flags().String("salary", "", "Annual base salary, e.g. 85000")
	}
	cmd.Flags().String("bonus", "0", "Annual bonus as a percent of base salary")
	cmd.Flags().String("rsu", "0", "Annual RSU value taxed as supplemental income")
	cmd.Flags().String("state", "", "Two-letter state code for state income tax")
	cmd.Flags().String("filing", "single", "Filing status (single, married)")
	cmd.Flags().Int("children", 0, "Qualifying children for the child tax credit")
}

func civilianInput(cmd *cobra.Command) (domain.CompensationInput, error) {
	var in domain.CompensationInput
	var err error
	if cmd.Flags().Lookup("salary") != nil {
		if in.BaseSalary, err = decimalFlag(cmd, "salary"); err != nil {
			return in, err
		}
	}
	if in.BonusPct, err = decimalFlag(cmd, "bonus"); err != nil {
		return in, err
	}
	if in.AnnualRSUValue, err = decimalFlag(cmd, "rsu"); err != nil {
		return in, err
	}
	if in.BaseSalary.IsNegative() || in.BonusPct.IsNegative() || in.AnnualRSUValue.IsNegative() {
		return in, errors.New("amounts cannot be negative")
	}

	state, _ := cmd.Flags().GetString("state")
	in.StateCode = strings.ToUpper(strings.TrimSpace(state))
	filing, _ := cmd.Flags().GetString("filing")
	if !domain.FilingStatus(filing).IsKnown() {
		return in, fmt.Errorf("invalid --filing %q: must be single or married", filing)
	}
	in.FilingStatus = domain.ParseFilingStatus(filing)
	in.NumDependents, _ = cmd.Flags().GetInt("children")
	if in.NumDependents < 0 {
		return in, errors.New("--children cannot be negative")
	}
	return in, nil
}

func addMilitaryFlags(cmd *cobra.Command) {
	cmd.Flags().String("rank", "", "Pay grade, e.g. E-5, W-2, O-3")
	cmd.Flags().Int("years", 0, "Years of service")
	cmd.Flags().String("station", "", "Duty station for BAH, e.g. \"SAN DIEGO, CA\"")
	cmd.Flags().Bool("dependents", false, "Use the with-dependents BAH rate")
	cmd.Flags().String("bah", "", "Monthly BAH to use instead of the dataset rate")
	cmd.Flags().String("mil-filing", "single", "Filing status used for the tax advantage")
}

func militaryInput(cmd *cobra.Command) (domain.MilitaryInput, error) {
	var in domain.MilitaryInput
	rank, _ := cmd.Flags().GetString("rank")
	if strings.TrimSpace(rank) == "" {
		return in, errors.New("--rank is required")
	}
	if !domain.IsValidRank(rank) {
		return in, fmt.Errorf("invalid --rank %q: expected a pay grade like E-5, W-2 or O-3", rank)
	}
	in.Rank = rank
	in.YearsOfService, _ = cmd.Flags().GetInt("years")
	if in.YearsOfService < 0 {
		return in, errors.New("--years cannot be negative")
	}
	in.DutyStation, _ = cmd.Flags().GetString("station")
	in.HasDependents, _ = cmd.Flags().GetBool("dependents")
	filing, _ := cmd.Flags().GetString("mil-filing")
	in.FilingStatus = domain.ParseFilingStatus(filing)

	if raw, _ := cmd.Flags().GetString("bah"); strings.TrimSpace(raw) != "" {
		bah, err := decimalFlag(cmd, "bah")
		if err != nil {
			return in, err
		}
		if bah.IsNegative() {
			return in, errors.New("--bah cannot be negative")
		}
		in.ManualBAH = &bah
	}
	return in, nil
}

func civilianCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "civilian",
		Short: "Calculate civilian take-home pay for an offer",
		Example: `  compme civilian --salary 85000 --state CA
  compme civilian --salary 140000 --bonus 15 --rsu 30000 --state WA --filing married --children 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := civilianInput(cmd)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			engine, err := a.calcEngine()
			if err != nil {
				return err
			}

			res := engine.Civilian.Calculate(in)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			writeCivilian(cmd.OutOrStdout(), res)
			return nil
		},
	}
	addCivilianFlags(cmd, true)
	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	return cmd
}

func writeCivilian(w io.Writer, res domain.CompensationResult) {
	state := res.StateCode
	if state == "" {
		state = "none"
	}
	rows := [][2]string{
		{"Base salary", output.FormatCurrency(res.BaseSalary)},
		{"Bonus", output.FormatCurrency(res.BonusAnnual)},
		{"RSU income", output.FormatCurrency(res.RSUAnnual)},
		{"Gross annual", output.FormatCurrency(res.GrossAnnual)},
		{"", ""},
		{"Federal tax", output.FormatCurrency(res.FederalTax)},
		{"State tax (" + state + ")", output.FormatCurrency(res.StateTax)},
		{"FICA", output.FormatCurrency(res.FICATax)},
		{"Child tax credit", output.FormatCurrency(res.AppliedChildTaxCredit)},
		{"Total tax", output.FormatCurrency(res.TotalTax)},
		{"", ""},
		{"Net annual", output.FormatCurrency(res.NetAnnual)},
		{"Net monthly", output.FormatCurrencyCents(res.NetMonthly)},
		{"Effective tax rate", output.FormatPercent(res.EffectiveTaxRate)},
		{"Marginal federal rate", output.FormatPercent(res.MarginalFederalRate)},
		{"Marginal state rate", output.FormatPercent(res.MarginalStateRate)},
	}
	if res.BonusAnnual.IsPositive() {
		rows = append(rows, [2]string{"Bonus after withholding", output.FormatCurrency(res.BonusWithholding.Net)})
	}
	printRows(w, rows)
}

func militaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "military",
		Short: "Calculate Regular Military Compensation",
		Example: `  compme military --rank E-5 --years 6 --station "SAN DIEGO, CA"
  compme military --rank O-3 --years 4 --bah 2800 --dependents`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := militaryInput(cmd)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			engine, err := a.calcEngine()
			if err != nil {
				return err
			}

			res := engine.Military.Calculate(in)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			writeMilitary(cmd.OutOrStdout(), res)
			return nil
		},
	}
	addMilitaryFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	return cmd
}

func writeMilitary(w io.Writer, res domain.MilitaryResult) {
	station := res.DutyStation
	if station == "" {
		station = "none"
	}
	printRows(w, [][2]string{
		{"Rank", fmt.Sprintf("%s, %d years", res.Rank, res.YearsOfService)},
		{"Duty station", station},
		{"", ""},
		{"Base pay", output.FormatCurrencyCents(res.BasePayMonthly) + sourceNote(res.BasePaySource)},
		{"BAH", output.FormatCurrencyCents(res.BAHMonthly) + sourceNote(res.BAHSource)},
		{"BAS", output.FormatCurrencyCents(res.BASMonthly)},
		{"Total monthly", output.FormatCurrencyCents(res.TotalMonthly)},
		{"Total annual", output.FormatCurrency(output.Annual(res.TotalMonthly))},
		{"Tax advantage", output.FormatCurrencyCents(res.TaxAdvantageMonthly) + " / month"},
	})
}

func sourceNote(src domain.RateSource) string {
	switch src {
	case domain.SourceManual:
		return " (manual)"
	case domain.SourceNotFound:
		return " (not found)"
	}
	return ""
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the civilian salary that matches military pay",
		Example: `  compme breakeven --rank E-6 --years 8 --station "NORFOLK, VA" --state VA
  compme breakeven --rank O-3 --years 6 --bah 3100 --include-tax-advantage --bonus 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mil, err := militaryInput(cmd)
			if err != nil {
				return err
			}
			offer, err := civilianInput(cmd)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			engine, err := a.calcEngine()
			if err != nil {
				return err
			}

			milRes := engine.Military.Calculate(mil)
			target := milRes.TotalMonthly
			if withAdv, _ := cmd.Flags().GetBool("include-tax-advantage"); withAdv {
				target = target.Add(milRes.TaxAdvantageMonthly)
			}
			res, err := engine.Civilian.BreakEvenSalary(cmd.Context(), calculation.BreakEvenRequest{
				Offer:         offer,
				TargetMonthly: target,
			})
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			w := cmd.OutOrStdout()
			printRows(w, [][2]string{
				{"Military monthly target", output.FormatCurrencyCents(target)},
				{"Break-even base salary", output.FormatCurrency(res.BaseSalary)},
				{"Civilian net monthly", output.FormatCurrencyCents(res.Result.NetMonthly)},
				{"Iterations", fmt.Sprintf("%d", res.Iterations)},
			})
			if !res.Converged {
				fmt.Fprintln(w, "Warning: search stopped before reaching the target within $1")
			}
			return nil
		},
	}
	addMilitaryFlags(cmd)
	addCivilianFlags(cmd, false)
	cmd.Flags().Bool("include-tax-advantage", false, "Match total pay plus the tax advantage instead of cash only")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	return cmd
}
