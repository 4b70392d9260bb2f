// Package milpay holds the military basic pay table and flat allowance rates.
package milpay

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed pay_2025.yaml
var embeddedPay []byte

var (
	defaultOnce  sync.Once
	defaultTable *PayTable
	defaultErr   error
)

// BASRates is the monthly subsistence allowance by rank category
type BASRates struct {
	Officer  decimal.Decimal `yaml:"officer" json:"officer"`
	Enlisted decimal.Decimal `yaml:"enlisted" json:"enlisted"`
}

// TaxAdvantageRules drive the two-tier estimate of what tax-free allowances are
// worth. LowRate applies while taxable base pay is under BracketThreshold.
type TaxAdvantageRules struct {
	BracketThreshold decimal.Decimal `yaml:"bracket_threshold" json:"bracket_threshold"`
	LowRate          decimal.Decimal `yaml:"low_rate" json:"low_rate"`
	HighRate         decimal.Decimal `yaml:"high_rate" json:"high_rate"`
}

type payStep struct {
	years int
	pay   decimal.Decimal
}

// PayTable is read-only after loading
type PayTable struct {
	Metadata     domain.DatasetMetadata             `yaml:"metadata"`
	BAS          BASRates                           `yaml:"bas"`
	TaxAdvantage TaxAdvantageRules                  `yaml:"tax_advantage"`
	TSPMatchRate decimal.Decimal                    `yaml:"tsp_match_rate"`
	Grades       map[string]map[int]decimal.Decimal `yaml:"base_pay"`

	steps map[string][]payStep
}

// Default returns the embedded pay table
func Default() (*PayTable, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(embeddedPay)
	})
	return defaultTable, defaultErr
}

// MustDefault is Default for program start-up and tests
func MustDefault() *PayTable {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// LoadFile reads a pay table, using the embedded one when path is empty
func LoadFile(path string) (*PayTable, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pay table %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load pay table %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes, validates and indexes a pay table document
func Parse(data []byte) (*PayTable, error) {
	var t PayTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse pay table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	t.steps = make(map[string][]payStep, len(t.Grades))
	for rank, byYears := range t.Grades {
		steps := make([]payStep, 0, len(byYears))
		for years, pay := range byYears {
			steps = append(steps, payStep{years: years, pay: pay})
		}
		sort.Slice(steps, func(i, j int) bool { return steps[i].years < steps[j].years })
		t.steps[domain.NormalizeRank(rank)] = steps
	}
	return &t, nil
}

func (t *PayTable) validate() error {
	if len(t.Grades) == 0 {
		return fmt.Errorf("pay table: base_pay is empty")
	}
	for rank, byYears := range t.Grades {
		if !domain.IsValidRank(rank) {
			return fmt.Errorf("pay table: %q is not a pay grade", rank)
		}
		if len(byYears) == 0 {
			return fmt.Errorf("pay table: %s has no pay steps", rank)
		}
		for years, pay := range byYears {
			if years < 0 || !pay.IsPositive() {
				return fmt.Errorf("pay table: %s step %d must have non-negative years and positive pay", rank, years)
			}
		}
	}
	if !t.BAS.Officer.IsPositive() || !t.BAS.Enlisted.IsPositive() {
		return fmt.Errorf("pay table: bas rates must be positive")
	}
	if t.TaxAdvantage.LowRate.IsNegative() || t.TaxAdvantage.HighRate.LessThan(t.TaxAdvantage.LowRate) {
		return fmt.Errorf("pay table: tax_advantage rates must be non-negative and ascending")
	}
	if t.TSPMatchRate.IsNegative() {
		return fmt.Errorf("pay table: tsp_match_rate must be non-negative")
	}
	return nil
}

// BasePay returns monthly basic pay for the highest longevity step at or below
// yearsOfService. The boolean is false when the grade is unknown or the member
// has not reached the grade's first step.
func (t *PayTable) BasePay(rank string, yearsOfService int) (decimal.Decimal, bool) {
	steps, ok := t.steps[domain.NormalizeRank(rank)]
	if !ok {
		return decimal.Zero, false
	}
	if yearsOfService < 0 {
		yearsOfService = 0
	}
	found := false
	pay := decimal.Zero
	for _, s := range steps {
		if s.years > yearsOfService {
			break
		}
		pay = s.pay
		found = true
	}
	return pay, found
}

// BASFor returns the subsistence allowance for a rank
func (t *PayTable) BASFor(rank string) decimal.Decimal {
	if domain.IsOfficerRank(rank) {
		return t.BAS.Officer
	}
	return t.BAS.Enlisted
}

// Ranks lists the grades in the table
func (t *PayTable) Ranks() []string {
	ranks := make([]string, 0, len(t.steps))
	for r := range t.steps {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return rankLess(ranks[i], ranks[j]) })
	return ranks
}

// rankLess orders E, then W, then O grades, numerically within each
func rankLess(a, b string) bool {
	order := map[byte]int{'E': 0, 'W': 1, 'O': 2}
	if a[0] != b[0] {
		return order[a[0]] < order[b[0]]
	}
	var na, nb int
	fmt.Sscanf(a[2:], "%d", &na)
	fmt.Sscanf(b[2:], "%d", &nb)
	if na != nb {
		return na < nb
	}
	return a < b
}
