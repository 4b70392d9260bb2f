package calculation

import (
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// FICACalculator handles Social Security and Medicare. The additional Medicare
// threshold is the single-filer amount for every filing status; married filers
// are not given the higher joint threshold.
type FICACalculator struct {
	Params           domain.FICAParameters
	SupplementalRate decimal.Decimal
}

// NewFICACalculator creates a FICA calculator with the federal supplemental
// withholding rate used for bonus and RSU estimates.
func NewFICACalculator(params domain.FICAParameters, supplementalRate decimal.Decimal) *FICACalculator {
	return &FICACalculator{Params: params, SupplementalRate: supplementalRate}
}

// CalculateFICA computes payroll tax on total annual wages. Call it once on the
// whole year, never per component, so the wage base is only applied once.
func (fc *FICACalculator) CalculateFICA(wages decimal.Decimal) domain.FICABreakdown {
	if wages.LessThanOrEqual(decimal.Zero) {
		return domain.FICABreakdown{}
	}

	ss := decimal.Min(wages, fc.Params.SocialSecurityWageBase).Mul(fc.Params.SocialSecurityRate)

	medicare := wages.Mul(fc.Params.MedicareRate)
	additional := decimal.Zero
	if wages.GreaterThan(fc.Params.AdditionalMedicareThreshold) {
		additional = wages.Sub(fc.Params.AdditionalMedicareThreshold).Mul(fc.Params.AdditionalMedicareRate)
	}
	medicare = medicare.Add(additional)

	return domain.FICABreakdown{
		SocialSecurity:     ss,
		Medicare:           medicare,
		AdditionalMedicare: additional,
		Total:              ss.Add(medicare),
	}
}

// RemainingWageBase is how much of the Social Security wage base is left after
// priorWages have been paid in the year.
func (fc *FICACalculator) RemainingWageBase(priorWages decimal.Decimal) decimal.Decimal {
	remaining := fc.Params.SocialSecurityWageBase.Sub(priorWages)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// SupplementalWithholding estimates the withholding on a single supplemental
// payment such as a bonus or RSU vest. It is for display and must not be added
// to annual tax.
func (fc *FICACalculator) SupplementalWithholding(amount, priorWages decimal.Decimal) domain.Withholding {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Withholding{}
	}

	federal := amount.Mul(fc.SupplementalRate)
	ss := decimal.Min(amount, fc.RemainingWageBase(priorWages)).Mul(fc.Params.SocialSecurityRate)
	medicare := amount.Mul(fc.Params.MedicareRate)
	fica := ss.Add(medicare)

	net := amount.Sub(federal).Sub(fica)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return domain.Withholding{
		Gross:          amount,
		Federal:        federal,
		SocialSecurity: ss,
		Medicare:       medicare,
		FICA:           fica,
		Net:            net,
	}
}
