package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/config"
	"github.com/rgehrsitz/compme/internal/logging"
	"github.com/rgehrsitz/compme/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compme-tui [scenario-file]",
		Short: "Interactive military vs. civilian compensation dashboard",
		Long: `Opens the dashboard on a scenario file, or on a sample scenario when none
is given. Edits saved with ctrl+s go back to the file (or compme-scenarios.yaml).`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarioPath := ""
			if len(args) > 0 {
				scenarioPath = args[0]
				if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
					return fmt.Errorf("scenario file not found: %s", scenarioPath)
				}
			}

			configFile, _ := cmd.Flags().GetString("config")
			envFile, _ := cmd.Flags().GetString("env-file")
			settings, err := config.LoadSettings(configFile, envFile)
			if err != nil {
				return err
			}

			// The dashboard owns the terminal, so logs only go to a configured file
			logger := zap.NewNop()
			if settings.Log.OutputFile != "" {
				if logger, err = logging.New(settings.Log, ""); err != nil {
					return err
				}
				defer logger.Sync()
			}

			calc, err := calculation.LoadCalculationEngine(settings.Data.TaxTables, settings.Data.BasePay, settings.Data.BAH)
			if err != nil {
				return err
			}
			style, _ := cmd.Flags().GetString("style")

			model := tui.NewModel(tui.Options{
				Engine:       compare.NewCompareEngine(calc, logger),
				ScenarioPath: scenarioPath,
				GlamourStyle: style,
				Logger:       logger,
			})

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("config", "", "Settings file (default: compme.yaml if it exists)")
	cmd.Flags().String("env-file", ".env", "Environment file loaded before the settings")
	cmd.Flags().String("style", "", "Report style (dark, light, notty; default: detect)")
	return cmd
}
