package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxBracket is one slice of a progressive schedule. A nil UpperBound marks the
// open-ended top bracket.
type TaxBracket struct {
	UpperBound *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit
func (b TaxBracket) Unbounded() bool {
	return b.UpperBound == nil
}

// Bracket builds a bounded bracket from float literals
func Bracket(upper, rate float64) TaxBracket {
	u := decimal.NewFromFloat(upper)
	return TaxBracket{UpperBound: &u, Rate: decimal.NewFromFloat(rate)}
}

// TopBracket builds the open-ended bracket
func TopBracket(rate float64) TaxBracket {
	return TaxBracket{Rate: decimal.NewFromFloat(rate)}
}

// RegimeKind tags the shape of a state income tax
type RegimeKind string

const (
	RegimeNoTax       RegimeKind = "no_tax"
	RegimeFlat        RegimeKind = "flat"
	RegimeProgressive RegimeKind = "progressive"
)

// StateTaxRegime describes how one state (or DC) taxes wage income.
// Rate is used by flat regimes, Brackets by progressive ones.
type StateTaxRegime struct {
	Name     string                        `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     RegimeKind                    `yaml:"kind" json:"kind"`
	Rate     decimal.Decimal               `yaml:"rate,omitempty" json:"rate,omitempty"`
	Brackets map[FilingStatus][]TaxBracket `yaml:"brackets,omitempty" json:"brackets,omitempty"`
}

// NoTaxRegime is returned for states without a wage income tax and for unknown codes
var NoTaxRegime = StateTaxRegime{Kind: RegimeNoTax}

// BracketsFor returns the schedule for a filing status, falling back to single
func (r StateTaxRegime) BracketsFor(status FilingStatus) []TaxBracket {
	if b, ok := r.Brackets[status.Normalize()]; ok {
		return b
	}
	return r.Brackets[FilingSingle]
}

// FICAParameters holds payroll tax parameters for one tax year
type FICAParameters struct {
	SocialSecurityRate          decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	SocialSecurityWageBase      decimal.Decimal `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	MedicareRate                decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
	AdditionalMedicareRate      decimal.Decimal `yaml:"additional_medicare_rate" json:"additional_medicare_rate"`
	AdditionalMedicareThreshold decimal.Decimal `yaml:"additional_medicare_threshold" json:"additional_medicare_threshold"`
}

// FederalTaxRules contains federal income tax brackets and deductions
type FederalTaxRules struct {
	StandardDeduction           map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Brackets                    map[FilingStatus][]TaxBracket    `yaml:"brackets" json:"brackets"`
	SupplementalWithholdingRate decimal.Decimal                  `yaml:"supplemental_withholding_rate" json:"supplemental_withholding_rate"`
}

// StandardDeductionFor returns the deduction tier for a filing status
func (f FederalTaxRules) StandardDeductionFor(status FilingStatus) decimal.Decimal {
	if d, ok := f.StandardDeduction[status.Normalize()]; ok {
		return d
	}
	return f.StandardDeduction[FilingSingle]
}

// BracketsFor returns the federal schedule for a filing status, falling back to single
func (f FederalTaxRules) BracketsFor(status FilingStatus) []TaxBracket {
	if b, ok := f.Brackets[status.Normalize()]; ok {
		return b
	}
	return f.Brackets[FilingSingle]
}

// ChildTaxCreditRules contains the per-child credit and its phase-out
type ChildTaxCreditRules struct {
	CreditPerChild     decimal.Decimal                  `yaml:"credit_per_child" json:"credit_per_child"`
	PhaseOutThreshold  map[FilingStatus]decimal.Decimal `yaml:"phase_out_threshold" json:"phase_out_threshold"`
	ReductionPerStep   decimal.Decimal                  `yaml:"reduction_per_step" json:"reduction_per_step"`
	PhaseOutStepIncome decimal.Decimal                  `yaml:"phase_out_step_income" json:"phase_out_step_income"`
}

// ThresholdFor returns the phase-out threshold for a filing status
func (c ChildTaxCreditRules) ThresholdFor(status FilingStatus) decimal.Decimal {
	if t, ok := c.PhaseOutThreshold[status.Normalize()]; ok {
		return t
	}
	return c.PhaseOutThreshold[FilingSingle]
}

// DatasetMetadata describes a versioned static dataset
type DatasetMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
	Source      string `yaml:"source,omitempty" json:"source,omitempty"`
}

// TaxTables is the complete read-only tax dataset loaded once at startup
type TaxTables struct {
	Metadata       DatasetMetadata           `yaml:"metadata" json:"metadata"`
	Federal        FederalTaxRules           `yaml:"federal" json:"federal"`
	FICA           FICAParameters            `yaml:"fica" json:"fica"`
	ChildTaxCredit ChildTaxCreditRules       `yaml:"child_tax_credit" json:"child_tax_credit"`
	States         map[string]StateTaxRegime `yaml:"states" json:"states"`
}

// State returns the regime for a state code. Unknown codes have no tax.
func (t *TaxTables) State(code string) StateTaxRegime {
	if r, ok := t.States[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return r
	}
	return NoTaxRegime
}

// HasState reports whether the code is present in the dataset
func (t *TaxTables) HasState(code string) bool {
	_, ok := t.States[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
