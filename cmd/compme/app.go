package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/config"
	"github.com/rgehrsitz/compme/internal/dutystation"
	"github.com/rgehrsitz/compme/internal/logging"
	"github.com/rgehrsitz/compme/internal/scenariolog"
)

// app carries what every command needs after the settings are read
type app struct {
	settings *config.Settings
	logger   *zap.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	level, _ := cmd.Flags().GetString("log-level")

	settings, err := config.LoadSettings(configFile, envFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(settings.Log, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &app{settings: settings, logger: logger}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) housing() (*dutystation.Dataset, error) {
	return dutystation.Load(a.settings.Data.BAH)
}

// calcEngine loads the tax, pay and housing tables, preferring the configured
// files over the embedded copies
func (a *app) calcEngine() (*calculation.CalculationEngine, error) {
	data := a.settings.Data
	engine, err := calculation.LoadCalculationEngine(data.TaxTables, data.BasePay, data.BAH)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("tables loaded",
		zap.String("tax_tables", orEmbedded(data.TaxTables)),
		zap.String("base_pay", orEmbedded(data.BasePay)),
		zap.String("bah", orEmbedded(data.BAH)),
		zap.Int("stations", len(engine.Housing.Stations())))
	return engine, nil
}

func (a *app) compareEngine() (*compare.CompareEngine, error) {
	calc, err := a.calcEngine()
	if err != nil {
		return nil, err
	}
	return compare.NewCompareEngine(calc, a.logger), nil
}

func (a *app) openScenarioLog(ctx context.Context) (*scenariolog.Async, error) {
	sink, err := scenariolog.Open(ctx, a.settings.ScenarioLog.Driver, a.settings.ScenarioLog.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario log: %w", err)
	}
	return scenariolog.NewAsync(sink, a.settings.ScenarioLog.Timeout, a.logger), nil
}

// recentScenarios reads back logged comparisons from sinks that keep them
func (a *app) recentScenarios(ctx context.Context, limit int) ([]scenariolog.Scenario, error) {
	sink, err := scenariolog.Open(ctx, a.settings.ScenarioLog.Driver, a.settings.ScenarioLog.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario log: %w", err)
	}
	defer sink.Close()

	reader, ok := sink.(scenariolog.Reader)
	if !ok {
		return nil, fmt.Errorf("scenario log driver %q keeps no history; set scenario_log.driver to sqlite or postgres", a.settings.ScenarioLog.Driver)
	}
	return reader.Recent(ctx, limit)
}

func orEmbedded(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printRows writes aligned "label  value" lines
func printRows(w io.Writer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		if r[0] == "" {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, r[0], r[1])
	}
}

var moneyCleaner = strings.NewReplacer(",", "", "$", "", "_", "")

// decimalFlag reads a money or percentage flag. "$85,000" and "85000" are
// both accepted.
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = moneyCleaner.Replace(strings.TrimSpace(raw))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}
