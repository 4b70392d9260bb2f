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

func equityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Value equity grants and vesting schedules",
	}
	cmd.AddCommand(equityValueCmd(), equityVestingCmd(), equityCompareCmd())
	return cmd
}

func stageNames() string {
	names := make([]string, 0, len(domain.CompanyStages()))
	for _, s := range domain.CompanyStages() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func addGrantFlags(cmd *cobra.Command, prefix, label string) {
	cmd.Flags().String(prefix+"total", "", label+"total grant value in dollars")
	cmd.Flags().Int(prefix+"years", 4, label+"vesting years")
	cmd.Flags().String(prefix+"stage", string(domain.StagePublic), label+"company stage ("+stageNames()+")")
}

func grantFromFlags(cmd *cobra.Command, prefix string) (domain.EquityGrant, error) {
	var g domain.EquityGrant
	total, err := decimalFlag(cmd, prefix+"total")
	if err != nil {
		return g, err
	}
	if total.IsNegative() {
		return g, fmt.Errorf("--%stotal cannot be negative", prefix)
	}
	years, _ := cmd.Flags().GetInt(prefix + "years")
	if years < 0 || years > 10 {
		return g, fmt.Errorf("--%syears must be between 0 and 10", prefix)
	}
	raw, _ := cmd.Flags().GetString(prefix + "stage")
	stage, ok := domain.ParseCompanyStage(raw)
	if !ok {
		return g, fmt.Errorf("unknown company stage %q (available: %s)", raw, stageNames())
	}
	return domain.EquityGrant{TotalValue: total, VestingYears: years, Stage: stage}, nil
}

func equityValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "value",
		Short:   "Risk-adjust a grant by company stage",
		Example: "  compme equity value --total 200000 --years 4 --stage growth",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grantFromFlags(cmd, "")
			if err != nil {
				return err
			}
			v := calculation.ValueEquityGrant(g)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), v)
			}
			writeValuation(cmd.OutOrStdout(), v)
			return nil
		},
	}
	addGrantFlags(cmd, "", "")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func writeValuation(w io.Writer, v domain.EquityValuation) {
	printRows(w, [][2]string{
		{"Stage", v.Stage.Label()},
		{"Total grant", output.FormatCurrency(v.TotalGrant)},
		{"Risk discount", output.FormatWholePercent(v.DiscountPct)},
		{"Adjusted value", output.FormatCurrency(v.AdjustedValue)},
		{"Per year", output.FormatCurrency(v.AnnualizedValue)},
		{"Per month", output.FormatCurrencyCents(v.MonthlyValue)},
	})
	if v.Note != "" {
		fmt.Fprintln(w, v.Note)
	}
}

func equityVestingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vesting",
		Short:   "Show the yearly vesting schedule with a cliff",
		Example: "  compme equity vesting --total 100000 --years 4 --cliff 12",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grantFromFlags(cmd, "")
			if err != nil {
				return err
			}
			cliff, _ := cmd.Flags().GetInt("cliff")
			if cliff < 0 {
				return errors.New("--cliff cannot be negative")
			}
			schedule := calculation.VestingSchedule(g.TotalValue, g.VestingYears, cliff, g.EffectiveStage())
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), schedule)
			}

			w := cmd.OutOrStdout()
			if len(schedule) == 0 {
				fmt.Fprintln(w, "No vesting schedule: the grant is empty or has no vesting years")
				return nil
			}
			fmt.Fprintf(w, "%-6s %14s %14s %14s\n", "Year", "Vested", "Cumulative", "Unvested")
			for _, e := range schedule {
				fmt.Fprintf(w, "%-6d %14s %14s %14s\n", e.Year,
					output.FormatCurrency(e.VestedThisYear),
					output.FormatCurrency(e.CumulativeVested),
					output.FormatCurrency(e.RemainingUnvested))
			}
			fmt.Fprintf(w, "First shares vest in month %d\n", calculation.FirstVestMonth(cliff))
			return nil
		},
	}
	addGrantFlags(cmd, "", "")
	cmd.Flags().Int("cliff", domain.DefaultCliffMonths, "Cliff in months")
	cmd.Flags().Bool("json", false, "Print the schedule as JSON")
	return cmd
}

func equityCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Compare two grants by risk-adjusted monthly value",
		Example: "  compme equity compare --a-total 200000 --a-stage early --b-total 120000 --b-stage public",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := grantFromFlags(cmd, "a-")
			if err != nil {
				return err
			}
			b, err := grantFromFlags(cmd, "b-")
			if err != nil {
				return err
			}
			cmp := calculation.CompareOffers(a, b)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), cmp)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Offer A")
			writeValuation(w, cmp.OfferA)
			fmt.Fprintln(w, "\nOffer B")
			writeValuation(w, cmp.OfferB)
			fmt.Fprintf(w, "\nWinner: %s\n%s\n", cmp.Winner, cmp.Note)
			return nil
		},
	}
	addGrantFlags(cmd, "a-", "Offer A ")
	addGrantFlags(cmd, "b-", "Offer B ")
	cmd.Flags().Bool("json", false, "Print the comparison as JSON")
	return cmd
}
