package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "compme %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "compme",
		Short: "Military vs. civilian compensation calculator",
		Long: `Compares Regular Military Compensation against a civilian offer after
federal, state and FICA taxes, with equity valuation, vesting cliffs,
break-even salaries and multi-year wealth projections.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Settings file (default: compme.yaml if it exists)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before the settings")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(civilianCmd())
	rootCmd.AddCommand(militaryCmd())
	rootCmd.AddCommand(breakEvenCmd())
	rootCmd.AddCommand(equityCmd())
	rootCmd.AddCommand(parseOfferCmd())
	rootCmd.AddCommand(stationsCmd())
	rootCmd.AddCommand(bahCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
