package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// maxProjectionYears bounds what-if horizons to something a career can span
const maxProjectionYears = 40

// ValidationError reports a rejected scenario field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ScenarioFile is the on-disk layout of a scenario document. A file may hold a
// single scenario at the top level or a list under "scenarios".
type ScenarioFile struct {
	Scenarios []domain.ComparisonScenario `yaml:"scenarios"`
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML, JSON or Hjson (.hjson) file
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if strings.EqualFold(filepath.Ext(filename), ".hjson") {
		return ip.ParseHJSON(data)
	}
	return ip.Parse(data)
}

// ParseHJSON decodes a hand-written Hjson document (comments, unquoted keys,
// optional commas) and validates it like a YAML one. Keys follow the YAML names.
func (ip *InputParser) ParseHJSON(data []byte) (*ScenarioFile, error) {
	var doc any
	if err := hjson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse Hjson: %w", err)
	}
	converted, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert Hjson: %w", err)
	}
	return ip.Parse(converted)
}

// Parse decodes and validates a scenario document
func (ip *InputParser) Parse(data []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Scenarios) == 0 {
		var single domain.ComparisonScenario
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if single == (domain.ComparisonScenario{}) {
			return nil, fmt.Errorf("no scenarios provided")
		}
		file.Scenarios = []domain.ComparisonScenario{single}
	}

	for i := range file.Scenarios {
		if file.Scenarios[i].Name == "" {
			file.Scenarios[i].Name = fmt.Sprintf("Scenario %d", i+1)
		}
		if err := ip.ValidateScenario(&file.Scenarios[i]); err != nil {
			return nil, fmt.Errorf("scenario %d (%s) validation failed: %w", i, file.Scenarios[i].Name, err)
		}
	}
	return &file, nil
}

// ValidateScenario checks one scenario
func (ip *InputParser) ValidateScenario(s *domain.ComparisonScenario) error {
	if err := ip.validateMilitary(&s.Military); err != nil {
		return fmt.Errorf("military: %w", err)
	}
	if err := ip.validateCivilian(&s.Civilian); err != nil {
		return fmt.Errorf("civilian: %w", err)
	}
	if err := ip.validateEquity(&s.Equity); err != nil {
		return fmt.Errorf("equity: %w", err)
	}
	if s.CliffMonths != nil && *s.CliffMonths < 0 {
		return &ValidationError{Field: "cliff_months", Message: "cannot be negative"}
	}
	if s.ProjectionYears < 0 || s.ProjectionYears > maxProjectionYears {
		return &ValidationError{Field: "projection_years", Message: fmt.Sprintf("must be between 0 and %d", maxProjectionYears)}
	}
	return nil
}

func (ip *InputParser) validateMilitary(m *domain.MilitaryInput) error {
	if strings.TrimSpace(m.Rank) == "" {
		return &ValidationError{Field: "rank", Message: "is required"}
	}
	if !domain.IsValidRank(m.Rank) {
		return &ValidationError{Field: "rank", Message: fmt.Sprintf("%q is not a pay grade like E-5, W-2 or O-3", m.Rank)}
	}
	if m.YearsOfService < 0 || m.YearsOfService > maxProjectionYears {
		return &ValidationError{Field: "years_of_service", Message: fmt.Sprintf("must be between 0 and %d", maxProjectionYears)}
	}
	if err := validateFilingStatus(m.FilingStatus); err != nil {
		return err
	}
	if m.ManualBAH != nil && m.ManualBAH.IsNegative() {
		return &ValidationError{Field: "manual_bah", Message: "cannot be negative"}
	}
	return nil
}

func (ip *InputParser) validateCivilian(c *domain.CompensationInput) error {
	if err := nonNegative("base_salary", c.BaseSalary); err != nil {
		return err
	}
	if err := nonNegative("bonus_pct", c.BonusPct); err != nil {
		return err
	}
	if c.BonusPct.GreaterThan(decimal.NewFromInt(1000)) {
		return &ValidationError{Field: "bonus_pct", Message: "is a percentage of base salary and looks too large"}
	}
	if err := nonNegative("total_equity", c.TotalEquity); err != nil {
		return err
	}
	if err := nonNegative("annual_rsu_value", c.AnnualRSUValue); err != nil {
		return err
	}
	if c.NumDependents < 0 {
		return &ValidationError{Field: "num_dependents", Message: "cannot be negative"}
	}
	if code := strings.TrimSpace(c.StateCode); code != "" && len(code) != 2 {
		return &ValidationError{Field: "state_code", Message: fmt.Sprintf("%q is not a two-letter state code", c.StateCode)}
	}
	return validateFilingStatus(c.FilingStatus)
}

func (ip *InputParser) validateEquity(g *domain.EquityGrant) error {
	if err := nonNegative("total_value", g.TotalValue); err != nil {
		return err
	}
	if g.VestingYears < 0 || g.VestingYears > 10 {
		return &ValidationError{Field: "vesting_years", Message: "must be between 0 and 10"}
	}
	if g.Stage != "" {
		if _, ok := domain.ParseCompanyStage(string(g.Stage)); !ok {
			return &ValidationError{Field: "company_stage", Message: fmt.Sprintf("unknown company stage %q", g.Stage)}
		}
	}
	return nil
}

func validateFilingStatus(s domain.FilingStatus) error {
	if s == "" || s.IsKnown() {
		return nil
	}
	return &ValidationError{Field: "filing_status", Message: fmt.Sprintf("%q must be single or married", s)}
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &ValidationError{Field: field, Message: "cannot be negative"}
	}
	return nil
}
