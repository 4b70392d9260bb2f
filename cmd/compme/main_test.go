package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/compme/internal/config"
	"github.com/rgehrsitz/compme/internal/domain"
)

const scenariosYAML = `
scenarios:
  - name: Stay in
    military:
      rank: E-5
      years_of_service: 6
      duty_station: "SAN DIEGO, CA"
    civilian:
      base_salary: 85000
      bonus_pct: 5
      state_code: CA
      filing_status: single
    projection_years: 4
  - name: Texas offer
    military:
      rank: E-5
      years_of_service: 6
      duty_station: "SAN DIEGO, CA"
    civilian:
      base_salary: 95000
      state_code: TX
      filing_status: single
    equity:
      total_value: 40000
      vesting_years: 4
      company_stage: growth
`

// execute runs a fresh command tree with isolated settings
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	envFile := filepath.Join(t.TempDir(), "missing.env")
	cmd.SetArgs(append(args, "--env-file", envFile, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeScenarios(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenariosYAML), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "compme", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommand_Execute(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "compme")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{
		"calculate", "compare", "validate", "civilian", "military", "breakeven",
		"equity", "parse-offer", "stations", "bah", "history", "serve", "version",
	}
	registered := map[string]*cobra.Command{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = c
	}
	for _, name := range expected {
		assert.Contains(t, registered, name)
	}

	var equity []string
	for _, c := range registered["equity"].Commands() {
		equity = append(equity, c.Name())
	}
	assert.ElementsMatch(t, []string{"value", "vesting", "compare"}, equity)
}

func TestInvalidCommandAndFlag(t *testing.T) {
	_, err := execute(t, "", "nonexistent")
	assert.Error(t, err)

	_, err = execute(t, "", "civilian", "--no-such-flag")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "compme dev")
}

func TestValidateCommand(t *testing.T) {
	path := writeScenarios(t)
	out, err := execute(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 scenarios)")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("military:\n  rank: Z-9\n"), 0644))
	_, err = execute(t, "", "validate", bad)
	assert.Error(t, err)
}

func TestCalculateCommand_JSON(t *testing.T) {
	out, err := execute(t, "", "calculate", writeScenarios(t), "--format", "json")
	require.NoError(t, err)

	var set struct {
		BaseScenarioName   string `json:"base_scenario_name"`
		AlternativeResults []struct {
			ScenarioName string `json:"scenario_name"`
		} `json:"alternative_results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, "Stay in", set.BaseScenarioName)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, "Texas offer", set.AlternativeResults[0].ScenarioName)
}

func TestCalculateCommand_ReportToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.md")
	out, err := execute(t, "", "calculate", writeScenarios(t), "--report", "--format", "markdown", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Stay in")
	assert.Contains(t, string(data), "# Texas offer")
}

func TestCalculateCommand_UnknownBase(t *testing.T) {
	_, err := execute(t, "", "calculate", writeScenarios(t), "--base", "Nobody")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "", "compare", writeScenarios(t),
		"--with", "promote", "--transform", "set_state:state=WA", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Stay in")
	assert.Contains(t, out, "Stay in_promote")
	assert.Contains(t, out, "Stay in_set_state")
}

func TestCompareCommand_RequiresAlternatives(t *testing.T) {
	_, err := execute(t, "", "compare", writeScenarios(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--with or --transform")
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := execute(t, "", "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "promote")
	assert.Contains(t, out, "adjust_salary")
}

func TestCivilianCommand(t *testing.T) {
	out, err := execute(t, "", "civilian", "--salary", "$85,000", "--state", "tx")
	require.NoError(t, err)
	assert.Contains(t, out, "Net monthly")
	assert.Contains(t, out, "State tax (TX)")

	out, err = execute(t, "", "civilian", "--salary", "85000", "--state", "TX", "--json")
	require.NoError(t, err)
	var res domain.CompensationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.BaseSalary.Equal(decimal.NewFromInt(85000)))
	assert.True(t, res.StateTax.IsZero())
	assert.True(t, res.NetMonthly.IsPositive())
}

func TestCivilianCommand_RejectsBadInput(t *testing.T) {
	_, err := execute(t, "", "civilian", "--salary=-5")
	assert.Error(t, err)
	_, err = execute(t, "", "civilian", "--salary", "lots")
	assert.Error(t, err)
	_, err = execute(t, "", "civilian", "--salary", "85000", "--filing", "widowed")
	assert.Error(t, err)
}

func TestMilitaryCommand(t *testing.T) {
	out, err := execute(t, "", "military", "--rank", "E-5", "--years", "6", "--station", "SAN DIEGO, CA", "--json")
	require.NoError(t, err)
	var res domain.MilitaryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "E-5", res.Rank)
	assert.Equal(t, domain.SourceOfficial, res.BAHSource)
	assert.True(t, res.TotalMonthly.IsPositive())

	out, err = execute(t, "", "military", "--rank", "E-5", "--years", "6", "--bah", "2500")
	require.NoError(t, err)
	assert.Contains(t, out, "(manual)")

	_, err = execute(t, "", "military")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--rank is required")
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := execute(t, "", "breakeven", "--rank", "E-5", "--years", "6", "--station", "SAN DIEGO, CA", "--state", "CA")
	require.NoError(t, err)
	assert.Contains(t, out, "Break-even base salary")
}

func TestEquityCommands(t *testing.T) {
	out, err := execute(t, "", "equity", "value", "--total", "100000", "--stage", "early")
	require.NoError(t, err)
	assert.Contains(t, out, "Early")
	assert.Contains(t, out, "Adjusted value")

	out, err = execute(t, "", "equity", "vesting", "--total", "100000", "--years", "4", "--cliff", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Cumulative")
	assert.Contains(t, out, "First shares vest in month 12")

	out, err = execute(t, "", "equity", "compare", "--a-total", "100000", "--b-total", "50000", "--json")
	require.NoError(t, err)
	var cmp domain.OfferComparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Equal(t, domain.WinnerOfferA, cmp.Winner)

	_, err = execute(t, "", "equity", "value", "--total", "1000", "--stage", "unicorn")
	assert.Error(t, err)
}

func TestParseOfferCommand(t *testing.T) {
	letter := "We are pleased to offer you the role. Your annual base salary will be $120,000, " +
		"with a signing bonus of $10,000 and a target bonus of 15%. Acme is publicly traded on the NYSE."

	out, err := execute(t, letter, "parse-offer", "-", "--patterns-only", "--json")
	require.NoError(t, err)
	var e domain.OfferExtraction
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	assert.True(t, e.BaseSalary.Equal(decimal.NewFromInt(120000)))
	assert.True(t, e.IsPublicCompany)
	assert.Equal(t, domain.ParseMethodRegex, e.ParseMethod)
	assert.Empty(t, e.RawText)

	out, err = execute(t, letter, "parse-offer", "--patterns-only", "--scenario")
	require.NoError(t, err)
	require.Contains(t, out, `rank: ""`)
	file, err := config.NewInputParser().Parse([]byte(strings.Replace(out, `rank: ""`, "rank: E-5", 1)))
	require.NoError(t, err)
	assert.True(t, file.Scenarios[0].Civilian.BaseSalary.Equal(decimal.NewFromInt(120000)))
}

func TestParseOfferCommand_Empty(t *testing.T) {
	_, err := execute(t, "   ", "parse-offer", "--patterns-only")
	assert.Error(t, err)
}

func TestScenarioFromOffer_BonusAmountBecomesPercent(t *testing.T) {
	s := scenarioFromOffer(domain.OfferExtraction{
		BaseSalary:        decimal.NewFromInt(100000),
		AnnualBonusAmount: decimal.NewFromInt(12500),
		EquityGrant:       decimal.NewFromInt(60000),
	})
	assert.True(t, s.Civilian.BonusPct.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 4, s.Equity.VestingYears)
	require.NotNil(t, s.Equity.IsPublic)
	assert.False(t, *s.Equity.IsPublic)
}

func TestStationsCommand(t *testing.T) {
	out, err := execute(t, "", "stations", "diego", "--rates")
	require.NoError(t, err)
	assert.Contains(t, out, "SAN DIEGO, CA")
	assert.Contains(t, out, "E-5")

	out, err = execute(t, "", "stations", "no such place")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching duty stations")
}

func TestBAHIngestCommand(t *testing.T) {
	dir := t.TempDir()
	with := filepath.Join(dir, "with.csv")
	without := filepath.Join(dir, "without.csv")
	require.NoError(t, os.WriteFile(with, []byte("MHA,MHA_NAME,E01,E05\nCA038,\"SAN DIEGO, CA\",3012,3450\n"), 0644))
	require.NoError(t, os.WriteFile(without, []byte("MHA,MHA_NAME,E01,E05\nCA038,\"SAN DIEGO, CA\",2700,3100\n"), 0644))
	target := filepath.Join(dir, "bah.json")

	out, err := execute(t, "", "bah", "ingest", "--with-dep", with, "--without-dep", without, "--year", "2026", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 stations")

	out, err = execute(t, "", "military", "--rank", "E-5", "--station", "San Diego, CA", "--dependents",
		"--json", "--config", writeSettings(t, "data:\n  bah: "+target+"\n"))
	require.NoError(t, err)
	var res domain.MilitaryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.BAHMonthly.Equal(decimal.NewFromInt(3450)))

	_, err = execute(t, "", "bah", "ingest", "--with-dep", with)
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	_, err := execute(t, "", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keeps no history")

	dsn := filepath.Join(t.TempDir(), "history.db")
	settings := writeSettings(t, "scenario_log:\n  driver: sqlite\n  dsn: "+dsn+"\n")

	_, err = execute(t, "", "calculate", writeScenarios(t), "--config", settings)
	require.NoError(t, err)

	out, err := execute(t, "", "history", "--config", settings, "--json")
	require.NoError(t, err)
	var recent []struct {
		Rank string `json:"rank"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &recent))
	require.Len(t, recent, 2)
	assert.Equal(t, "E-5", recent[0].Rank)
}

func TestDecimalFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("amount", "", "")
	for in, want := range map[string]string{
		"":          "0",
		"85000":     "85000",
		"$85,000":   "85000",
		" 1_250.5 ": "1250.5",
	} {
		require.NoError(t, cmd.Flags().Set("amount", in))
		got, err := decimalFlag(cmd, "amount")
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), in)
	}

	require.NoError(t, cmd.Flags().Set("amount", "ten"))
	_, err := decimalFlag(cmd, "amount")
	assert.Error(t, err)
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}
