package config

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const singleScenarioYAML = `
name: "E-6 Norfolk vs. Austin"
military:
  rank: E-6
  years_of_service: 8
  duty_station: "NORFOLK/PORTSMOUTH, VA"
  has_dependents: true
civilian:
  base_salary: 115000
  bonus_pct: 10
  state_code: TX
  filing_status: married
  num_dependents: 2
equity:
  total_value: 80000
  vesting_years: 4
  company_stage: pre_ipo
cliff_months: 12
`

func TestNewInputParser(t *testing.T) {
	assert.NotNil(t, NewInputParser())
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	file, err := NewInputParser().LoadFromFile("nonexistent.yaml")
	assert.Error(t, err)
	assert.Nil(t, file)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: [unclosed"), 0644))

	file, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, file)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_SingleScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(singleScenarioYAML), 0644))

	file, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, file.Scenarios, 1)

	s := file.Scenarios[0]
	assert.Equal(t, "E-6 Norfolk vs. Austin", s.Name)
	assert.Equal(t, "E-6", s.Military.Rank)
	assert.Equal(t, 8, s.Military.YearsOfService)
	assert.True(t, s.Military.HasDependents)
	assert.True(t, s.Civilian.BaseSalary.Equal(decimal.NewFromInt(115000)))
	assert.Equal(t, domain.FilingMarried, s.Civilian.FilingStatus)
	assert.Equal(t, domain.StagePreIPO, s.Equity.Stage)
	require.NotNil(t, s.CliffMonths)
	assert.Equal(t, 12, *s.CliffMonths)
}

func TestScenario_SameKeysInYAMLAndJSON(t *testing.T) {
	file, err := NewInputParser().Parse([]byte(singleScenarioYAML))
	require.NoError(t, err)
	s := file.Scenarios[0]

	body, err := json.Marshal(s)
	require.NoError(t, err)
	var doc struct {
		Civilian map[string]interface{} `json:"civilian"`
		Equity   map[string]interface{} `json:"equity"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "TX", doc.Civilian["state_code"])
	assert.Equal(t, "pre_ipo", doc.Equity["company_stage"])

	var fromAPI domain.ComparisonScenario
	require.NoError(t, json.Unmarshal(body, &fromAPI))
	out, err := yaml.Marshal(fromAPI)
	require.NoError(t, err)
	assert.Contains(t, string(out), "state_code: TX")
	assert.Contains(t, string(out), "company_stage: pre_ipo")

	var back domain.ComparisonScenario
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "TX", back.Civilian.StateCode)
	assert.Equal(t, domain.StagePreIPO, back.Equity.Stage)
}

func TestInputParser_Parse_ScenarioList(t *testing.T) {
	doc := `
scenarios:
  - military: {rank: O-3, years_of_service: 4}
    civilian: {base_salary: 150000, state_code: CA}
  - name: second
    military: {rank: e5, years_of_service: 6}
    civilian: {base_salary: 90000, state_code: wa}
`
	file, err := NewInputParser().Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, file.Scenarios, 2)
	assert.Equal(t, "Scenario 1", file.Scenarios[0].Name)
	assert.Equal(t, "second", file.Scenarios[1].Name)
	assert.Nil(t, file.Scenarios[0].CliffMonths)
}

func TestInputParser_Parse_Empty(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("# nothing here\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios provided")
}

func TestInputParser_ValidateScenario(t *testing.T) {
	valid := func() *domain.ComparisonScenario {
		return &domain.ComparisonScenario{
			Military: domain.MilitaryInput{Rank: "E-5", YearsOfService: 6},
			Civilian: domain.CompensationInput{BaseSalary: decimal.NewFromInt(90000), StateCode: "VA"},
		}
	}
	negative := decimal.NewFromInt(-1)
	badCliff := -3

	tests := []struct {
		name   string
		mutate func(s *domain.ComparisonScenario)
		field  string
	}{
		{"valid", func(s *domain.ComparisonScenario) {}, ""},
		{"missing rank", func(s *domain.ComparisonScenario) { s.Military.Rank = "" }, "rank"},
		{"malformed rank", func(s *domain.ComparisonScenario) { s.Military.Rank = "General" }, "rank"},
		{"negative years", func(s *domain.ComparisonScenario) { s.Military.YearsOfService = -1 }, "years_of_service"},
		{"negative manual BAH", func(s *domain.ComparisonScenario) { s.Military.ManualBAH = &negative }, "manual_bah"},
		{"negative salary", func(s *domain.ComparisonScenario) { s.Civilian.BaseSalary = negative }, "base_salary"},
		{"negative bonus", func(s *domain.ComparisonScenario) { s.Civilian.BonusPct = negative }, "bonus_pct"},
		{"negative dependents", func(s *domain.ComparisonScenario) { s.Civilian.NumDependents = -1 }, "num_dependents"},
		{"long state code", func(s *domain.ComparisonScenario) { s.Civilian.StateCode = "Texas" }, "state_code"},
		{"bad filing status", func(s *domain.ComparisonScenario) { s.Civilian.FilingStatus = "widowed" }, "filing_status"},
		{"unknown stage", func(s *domain.ComparisonScenario) { s.Equity.Stage = "unicorn" }, "company_stage"},
		{"too many vesting years", func(s *domain.ComparisonScenario) { s.Equity.VestingYears = 12 }, "vesting_years"},
		{"negative cliff", func(s *domain.ComparisonScenario) { s.CliffMonths = &badCliff }, "cliff_months"},
		{"horizon too long", func(s *domain.ComparisonScenario) { s.ProjectionYears = 80 }, "projection_years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := NewInputParser().ValidateScenario(s)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

const scenarioHJSON = `
# hand-edited what-if
{
  name: Hjson scenario
  military: {
    rank: E-5
    years_of_service: 6
    duty_station: SAN DIEGO, CA
  }
  civilian: {
    base_salary: 92000
    state_code: CA
    filing_status: single
  }
  projection_years: 3
}
`

func TestInputParser_LoadFromFile_HJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.hjson")
	require.NoError(t, os.WriteFile(path, []byte(scenarioHJSON), 0644))

	file, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, file.Scenarios, 1)

	s := file.Scenarios[0]
	assert.Equal(t, "Hjson scenario", s.Name)
	assert.Equal(t, "E-5", s.Military.Rank)
	assert.Equal(t, 6, s.Military.YearsOfService)
	assert.Equal(t, "SAN DIEGO, CA", s.Military.DutyStation)
	assert.True(t, s.Civilian.BaseSalary.Equal(decimal.NewFromInt(92000)))
	assert.Equal(t, 3, s.ProjectionYears)
}

func TestInputParser_ParseHJSON_Invalid(t *testing.T) {
	_, err := NewInputParser().ParseHJSON([]byte("{ name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Hjson")
}
