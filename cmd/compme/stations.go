package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/compme/internal/dutystation"
	"github.com/rgehrsitz/compme/internal/output"
)

func stationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations [query]",
		Short: "List duty stations in the BAH dataset",
		Example: `  compme stations
  compme stations diego --rates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			housing, err := a.housing()
			if err != nil {
				return err
			}

			stations := housing.Stations()
			if len(args) > 0 {
				stations = housing.Search(args[0])
			}
			w := cmd.OutOrStdout()
			if len(stations) == 0 {
				fmt.Fprintln(w, "No matching duty stations")
				return nil
			}

			showRates, _ := cmd.Flags().GetBool("rates")
			for _, name := range stations {
				fmt.Fprintln(w, name)
				if !showRates {
					continue
				}
				rows, _ := housing.Location(name)
				for _, rank := range slices.Sorted(maps.Keys(rows)) {
					r := rows[rank]
					fmt.Fprintf(w, "  %-5s %12s with dependents %12s without\n", rank,
						output.FormatCurrency(r.WithDependents), output.FormatCurrency(r.WithoutDependents))
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("rates", false, "Show the BAH rates for each grade")
	return cmd
}

func bahCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bah",
		Short: "Manage the BAH dataset",
	}
	cmd.AddCommand(bahIngestCmd())
	return cmd
}

func bahIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Convert the published BAH rate sheets into a dataset",
		Long: `Convert the with-dependents and without-dependents BAH rate sheets,
exported as CSV, into the JSON dataset read by data.bah.

Example:
  compme bah ingest --with-dep bah_with.csv --without-dep bah_without.csv --year 2025 -o bah.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			withPath, _ := cmd.Flags().GetString("with-dep")
			withoutPath, _ := cmd.Flags().GetString("without-dep")
			if withPath == "" || withoutPath == "" {
				return errors.New("--with-dep and --without-dep are required")
			}
			year, _ := cmd.Flags().GetInt("year")

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			withDep, err := os.Open(withPath)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", withPath, err)
			}
			defer withDep.Close()
			withoutDep, err := os.Open(withoutPath)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", withoutPath, err)
			}
			defer withoutDep.Close()

			dataset, err := dutystation.Ingest(withDep, withoutDep, year)
			if err != nil {
				return err
			}
			a.logger.Info("BAH sheets ingested",
				zap.Int("year", year),
				zap.Int("stations", len(dataset.Stations())))

			outPath, _ := cmd.Flags().GetString("output")
			if outPath == "" {
				return dataset.Write(cmd.OutOrStdout())
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := dataset.Write(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d stations to %s\n", len(dataset.Stations()), outPath)
			return nil
		},
	}
	cmd.Flags().String("with-dep", "", "CSV export of the with-dependents rates")
	cmd.Flags().String("without-dep", "", "CSV export of the without-dependents rates")
	cmd.Flags().Int("year", time.Now().Year(), "Rate year")
	cmd.Flags().StringP("output", "o", "", "Dataset file to write (default: stdout)")
	return cmd
}

// historyLimit caps how many logged comparisons history prints by default
const historyLimit = 20

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently logged comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = historyLimit
			}
			recent, err := a.recentScenarios(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), recent)
			}

			w := cmd.OutOrStdout()
			if len(recent) == 0 {
				fmt.Fprintln(w, "No comparisons logged yet")
				return nil
			}
			fmt.Fprintf(w, "%-20s %-6s %-24s %5s %12s %14s\n", "When", "Rank", "Location", "Years", "Civ base", "Mil - civ/mo")
			for _, s := range recent {
				fmt.Fprintf(w, "%-20s %-6s %-24s %5d %12s %14s\n",
					s.CreatedAt.Local().Format("2006-01-02 15:04"),
					s.Rank, truncate(s.Location, 24), s.YearsService,
					output.FormatCurrency(s.CivBase), output.FormatDelta(s.MonthlyDelta))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", historyLimit, "Number of comparisons to show")
	cmd.Flags().Bool("json", false, "Print the records as JSON")
	return cmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-1]) + "…"
}
