package calculation

import (
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal income tax: one standard deduction per filing status, no itemizing,
//    no AMT, no inflation indexing across years.
//
// 2. State income tax: flat and progressive regimes apply to gross wages with no
//    state deduction. Unknown state codes are treated as having no income tax.
//
// 3. Filing status: anything other than married uses the single schedule.
//
// 4. Additional Medicare tax uses the single-filer threshold for every filing
//    status (see FICACalculator).

// ComputeBracketTax walks a progressive schedule. Each bracket is closed at its
// upper bound, so income exactly on a bound is taxed entirely at the lower rate.
func ComputeBracketTax(taxable decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	total := decimal.Zero
	prev := decimal.Zero
	for _, b := range brackets {
		if taxable.LessThanOrEqual(prev) {
			break
		}
		top := taxable
		if !b.Unbounded() {
			top = decimal.Min(taxable, *b.UpperBound)
		}
		total = total.Add(top.Sub(prev).Mul(b.Rate))
		if b.Unbounded() {
			break
		}
		prev = *b.UpperBound
	}
	return total
}

// MarginalRate returns the rate applied to the last dollar of taxable income
func MarginalRate(taxable decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	for _, b := range brackets {
		if b.Unbounded() || taxable.LessThanOrEqual(*b.UpperBound) {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Rules domain.FederalTaxRules
}

// NewFederalTaxCalculator creates a federal calculator from loaded rules
func NewFederalTaxCalculator(rules domain.FederalTaxRules) *FederalTaxCalculator {
	return &FederalTaxCalculator{Rules: rules}
}

// TaxableIncome subtracts the standard deduction, floored at zero
func (ftc *FederalTaxCalculator) TaxableIncome(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxable := grossIncome.Sub(ftc.Rules.StandardDeductionFor(status))
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// CalculateFederalTax calculates federal income tax on gross wages
func (ftc *FederalTaxCalculator) CalculateFederalTax(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return ComputeBracketTax(ftc.TaxableIncome(grossIncome, status), ftc.Rules.BracketsFor(status))
}

// MarginalRate returns the federal bracket rate for the last dollar earned
func (ftc *FederalTaxCalculator) MarginalRate(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return MarginalRate(ftc.TaxableIncome(grossIncome, status), ftc.Rules.BracketsFor(status))
}

// StateTaxCalculator dispatches on a state's regime
type StateTaxCalculator struct {
	Tables *domain.TaxTables
}

// NewStateTaxCalculator creates a state calculator over loaded tables
func NewStateTaxCalculator(tables *domain.TaxTables) *StateTaxCalculator {
	return &StateTaxCalculator{Tables: tables}
}

// CalculateStateTax calculates state income tax on gross wages
func (stc *StateTaxCalculator) CalculateStateTax(grossIncome decimal.Decimal, state string, status domain.FilingStatus) decimal.Decimal {
	if grossIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	regime := stc.Tables.State(state)
	switch regime.Kind {
	case domain.RegimeFlat:
		return grossIncome.Mul(regime.Rate)
	case domain.RegimeProgressive:
		return ComputeBracketTax(grossIncome, regime.BracketsFor(status))
	default:
		return decimal.Zero
	}
}

// MarginalRate returns the state rate for the last dollar earned
func (stc *StateTaxCalculator) MarginalRate(grossIncome decimal.Decimal, state string, status domain.FilingStatus) decimal.Decimal {
	regime := stc.Tables.State(state)
	switch regime.Kind {
	case domain.RegimeFlat:
		return regime.Rate
	case domain.RegimeProgressive:
		return MarginalRate(grossIncome, regime.BracketsFor(status))
	default:
		return decimal.Zero
	}
}
