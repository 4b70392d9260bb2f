package calculation

import (
	"strings"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// CivilianAssembler turns a civilian offer into after-tax annual and monthly pay
type CivilianAssembler struct {
	Federal *FederalTaxCalculator
	State   *StateTaxCalculator
	FICA    *FICACalculator
	Credit  *ChildTaxCreditCalculator
}

// NewCivilianAssembler wires the calculators over one set of tax tables
func NewCivilianAssembler(tables *domain.TaxTables) *CivilianAssembler {
	return &CivilianAssembler{
		Federal: NewFederalTaxCalculator(tables.Federal),
		State:   NewStateTaxCalculator(tables),
		FICA:    NewFICACalculator(tables.FICA, tables.Federal.SupplementalWithholdingRate),
		Credit:  NewChildTaxCreditCalculator(tables.ChildTaxCredit),
	}
}

// Calculate computes the civilian result. Negative amounts are treated as zero.
func (a *CivilianAssembler) Calculate(in domain.CompensationInput) domain.CompensationResult {
	status := in.FilingStatus.Normalize()
	state := strings.ToUpper(strings.TrimSpace(in.StateCode))

	base := nonNegative(in.BaseSalary)
	bonus := base.Mul(nonNegative(in.BonusPct)).Div(hundred)
	rsu := nonNegative(in.AnnualRSUValue)
	gross := base.Add(bonus).Add(rsu)

	fedTax := a.Federal.CalculateFederalTax(gross, status)
	stateTax := a.State.CalculateStateTax(gross, state, status)
	fica := a.FICA.CalculateFICA(gross)

	credit := a.Credit.CalculateChildTaxCredit(gross, in.NumDependents, status)
	applied := ApplyCredit(credit, fedTax)

	totalTax := fedTax.Add(stateTax).Add(fica.Total).Sub(applied)
	netAnnual := gross.Sub(totalTax)

	// Withholding estimates are display-only. The RSU vest is assumed to land
	// after salary and bonus have used up part of the wage base.
	bonusWH := a.FICA.SupplementalWithholding(bonus, base)
	rsuWH := a.FICA.SupplementalWithholding(rsu, base.Add(bonus))

	return domain.CompensationResult{
		StateCode:    state,
		FilingStatus: status,

		GrossAnnual: gross,
		BaseSalary:  base,
		BonusAnnual: bonus,
		BonusNet:    bonusWH.Net,
		RSUAnnual:   rsu,
		RSUNet:      rsuWH.Net,

		FederalTax:            fedTax,
		StateTax:              stateTax,
		FICA:                  fica,
		FICATax:               fica.Total,
		ChildTaxCredit:        credit,
		AppliedChildTaxCredit: applied,
		TotalTax:              totalTax,
		NetAnnual:             netAnnual,
		NetMonthly:            netAnnual.Div(twelve),

		EffectiveTaxRate:     ratio(totalTax, gross),
		EffectiveFederalRate: ratio(fedTax.Sub(applied), gross),
		EffectiveStateRate:   ratio(stateTax, gross),
		EffectiveFICARate:    ratio(fica.Total, gross),
		MarginalFederalRate:  a.Federal.MarginalRate(gross, status),
		MarginalStateRate:    a.State.MarginalRate(gross, state, status),

		BonusWithholding: bonusWH,
		RSUWithholding:   rsuWH,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole)
}
