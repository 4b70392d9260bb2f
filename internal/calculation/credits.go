package calculation

import (
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// ChildTaxCreditCalculator applies the per-child credit and its income phase-out
type ChildTaxCreditCalculator struct {
	Rules domain.ChildTaxCreditRules
}

// NewChildTaxCreditCalculator creates a credit calculator from loaded rules
func NewChildTaxCreditCalculator(rules domain.ChildTaxCreditRules) *ChildTaxCreditCalculator {
	return &ChildTaxCreditCalculator{Rules: rules}
}

// CalculateChildTaxCredit returns the credit before it is limited by tax owed.
// Above the threshold the credit drops by a fixed amount per full step of
// excess income.
func (c *ChildTaxCreditCalculator) CalculateChildTaxCredit(income decimal.Decimal, children int, status domain.FilingStatus) decimal.Decimal {
	if children <= 0 {
		return decimal.Zero
	}
	base := c.Rules.CreditPerChild.Mul(decimal.NewFromInt(int64(children)))

	threshold := c.Rules.ThresholdFor(status)
	if income.LessThanOrEqual(threshold) {
		return base
	}

	steps := income.Sub(threshold).Div(c.Rules.PhaseOutStepIncome).Floor()
	credit := base.Sub(steps.Mul(c.Rules.ReductionPerStep))
	if credit.IsNegative() {
		return decimal.Zero
	}
	return credit
}

// ApplyCredit limits a non-refundable credit to the tax it offsets
func ApplyCredit(credit, tax decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(credit, tax)
	if applied.IsNegative() {
		return decimal.Zero
	}
	return applied
}
