// Package taxdata loads the versioned federal, FICA and state tax tables.
// Tables are parsed and validated once; the returned value is shared and must
// be treated as read-only.
package taxdata

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed tables_2025.yaml
var embeddedTables []byte

var (
	defaultOnce   sync.Once
	defaultTables *domain.TaxTables
	defaultErr    error
)

// ValidationError describes a malformed table
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tax tables: %s: %s", e.Path, e.Message)
}

// Default returns the embedded tables
func Default() (*domain.TaxTables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Parse(embeddedTables)
	})
	return defaultTables, defaultErr
}

// MustDefault is Default for program start-up and tests
func MustDefault() *domain.TaxTables {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// LoadFile reads and validates a tables file, falling back to the embedded
// tables when path is empty.
func LoadFile(path string) (*domain.TaxTables, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax tables %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax tables %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML tables document
func Parse(data []byte) (*domain.TaxTables, error) {
	var t domain.TaxTables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tax tables: %w", err)
	}

	normalized := make(map[string]domain.StateTaxRegime, len(t.States))
	for code, regime := range t.States {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = regime
	}
	t.States = normalized

	if err := Validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks every schedule in the tables
func Validate(t *domain.TaxTables) error {
	if err := validateFederal(t.Federal); err != nil {
		return err
	}
	if err := validateFICA(t.FICA); err != nil {
		return err
	}
	if err := validateCredit(t.ChildTaxCredit); err != nil {
		return err
	}

	codes := make([]string, 0, len(t.States))
	for code := range t.States {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if err := validateState(code, t.States[code]); err != nil {
			return err
		}
	}
	return nil
}

func validateFederal(f domain.FederalTaxRules) error {
	for _, status := range []domain.FilingStatus{domain.FilingSingle, domain.FilingMarried} {
		brackets, ok := f.Brackets[status]
		if !ok {
			return &ValidationError{Path: "federal.brackets." + string(status), Message: "missing schedule"}
		}
		if err := ValidateBrackets("federal.brackets."+string(status), brackets); err != nil {
			return err
		}
		ded, ok := f.StandardDeduction[status]
		if !ok || ded.IsNegative() {
			return &ValidationError{Path: "federal.standard_deduction." + string(status), Message: "must be present and non-negative"}
		}
	}
	if !isRate(f.SupplementalWithholdingRate) {
		return &ValidationError{Path: "federal.supplemental_withholding_rate", Message: "must be between 0 and 1"}
	}
	return nil
}

func validateFICA(p domain.FICAParameters) error {
	rates := map[string]decimal.Decimal{
		"fica.social_security_rate":     p.SocialSecurityRate,
		"fica.medicare_rate":            p.MedicareRate,
		"fica.additional_medicare_rate": p.AdditionalMedicareRate,
	}
	for path, r := range rates {
		if !isRate(r) {
			return &ValidationError{Path: path, Message: "must be between 0 and 1"}
		}
	}
	if !p.SocialSecurityWageBase.IsPositive() {
		return &ValidationError{Path: "fica.social_security_wage_base", Message: "must be positive"}
	}
	if p.AdditionalMedicareThreshold.IsNegative() {
		return &ValidationError{Path: "fica.additional_medicare_threshold", Message: "must be non-negative"}
	}
	return nil
}

func validateCredit(c domain.ChildTaxCreditRules) error {
	if c.CreditPerChild.IsNegative() || c.ReductionPerStep.IsNegative() {
		return &ValidationError{Path: "child_tax_credit", Message: "amounts must be non-negative"}
	}
	if !c.PhaseOutStepIncome.IsPositive() {
		return &ValidationError{Path: "child_tax_credit.phase_out_step_income", Message: "must be positive"}
	}
	if _, ok := c.PhaseOutThreshold[domain.FilingSingle]; !ok {
		return &ValidationError{Path: "child_tax_credit.phase_out_threshold.single", Message: "missing threshold"}
	}
	return nil
}

func validateState(code string, r domain.StateTaxRegime) error {
	path := "states." + code
	if len(code) != 2 {
		return &ValidationError{Path: path, Message: "state code must be two letters"}
	}
	switch r.Kind {
	case domain.RegimeNoTax:
		return nil
	case domain.RegimeFlat:
		if !isRate(r.Rate) {
			return &ValidationError{Path: path + ".rate", Message: "must be between 0 and 1"}
		}
		return nil
	case domain.RegimeProgressive:
		if _, ok := r.Brackets[domain.FilingSingle]; !ok {
			return &ValidationError{Path: path + ".brackets.single", Message: "missing schedule"}
		}
		for status, brackets := range r.Brackets {
			if status != domain.FilingSingle && status != domain.FilingMarried {
				return &ValidationError{Path: path + ".brackets." + string(status), Message: "unknown filing status"}
			}
			if err := ValidateBrackets(path+".brackets."+string(status), brackets); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ValidationError{Path: path + ".kind", Message: fmt.Sprintf("unknown regime %q", r.Kind)}
	}
}

// ValidateBrackets enforces strictly ascending bounds, non-decreasing rates and
// a single open-ended top bracket.
func ValidateBrackets(path string, brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return &ValidationError{Path: path, Message: "schedule is empty"}
	}
	prevBound := decimal.Zero
	prevRate := decimal.Zero
	for i, b := range brackets {
		at := fmt.Sprintf("%s[%d]", path, i)
		if !isRate(b.Rate) {
			return &ValidationError{Path: at, Message: "rate must be between 0 and 1"}
		}
		if b.Rate.LessThan(prevRate) {
			return &ValidationError{Path: at, Message: fmt.Sprintf("rate %s is lower than previous rate %s", b.Rate, prevRate)}
		}
		last := i == len(brackets)-1
		if b.Unbounded() {
			if !last {
				return &ValidationError{Path: at, Message: "only the last bracket may be open-ended"}
			}
			break
		}
		if last {
			return &ValidationError{Path: at, Message: "last bracket must be open-ended"}
		}
		if !b.UpperBound.GreaterThan(prevBound) {
			return &ValidationError{Path: at, Message: fmt.Sprintf("bound %s is not above previous bound %s", b.UpperBound, prevBound)}
		}
		prevBound = *b.UpperBound
		prevRate = b.Rate
	}
	return nil
}

func isRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}
