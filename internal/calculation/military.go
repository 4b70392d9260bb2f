package calculation

import (
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/dutystation"
	"github.com/rgehrsitz/compme/internal/milpay"
	"github.com/shopspring/decimal"
)

// MilitaryAssembler computes Regular Military Compensation
type MilitaryAssembler struct {
	Pay     *milpay.PayTable
	Housing dutystation.Provider
	Federal domain.FederalTaxRules
}

// NewMilitaryAssembler wires the pay table, the housing provider and the
// federal deduction tiers used by the tax advantage estimate.
func NewMilitaryAssembler(pay *milpay.PayTable, housing dutystation.Provider, tables *domain.TaxTables) *MilitaryAssembler {
	return &MilitaryAssembler{Pay: pay, Housing: housing, Federal: tables.Federal}
}

// Calculate assembles monthly RMC. A missing base pay step or BAH row is
// reported through the source fields with a zero amount.
func (m *MilitaryAssembler) Calculate(in domain.MilitaryInput) domain.MilitaryResult {
	rank := domain.NormalizeRank(in.Rank)
	status := in.FilingStatus.Normalize()

	basePay, ok := m.Pay.BasePay(rank, in.YearsOfService)
	baseSource := domain.SourceOfficial
	if !ok {
		baseSource = domain.SourceNotFound
	}

	bah, bahSource := m.housingAllowance(in.DutyStation, rank, in.HasDependents, in.ManualBAH)
	bas := m.Pay.BASFor(rank)
	nontaxable := bah.Add(bas)

	return domain.MilitaryResult{
		Rank:           rank,
		YearsOfService: in.YearsOfService,
		DutyStation:    in.DutyStation,

		BasePayMonthly:      basePay,
		BasePaySource:       baseSource,
		BAHMonthly:          bah,
		BAHSource:           bahSource,
		BASMonthly:          bas,
		TaxAdvantageMonthly: m.TaxAdvantage(basePay, bah, bas, status),
		TotalMonthly:        basePay.Add(nontaxable),
		TaxableMonthly:      basePay,
		NontaxableMonthly:   nontaxable,
	}
}

func (m *MilitaryAssembler) housingAllowance(station, rank string, dependents bool, manual *decimal.Decimal) (decimal.Decimal, domain.RateSource) {
	if manual != nil && manual.IsPositive() {
		return *manual, domain.SourceManual
	}
	if m.Housing == nil {
		return decimal.Zero, domain.SourceNotFound
	}
	rate, ok := m.Housing.Rate(station, rank, dependents)
	if !ok {
		return decimal.Zero, domain.SourceNotFound
	}
	return rate, domain.SourceOfficial
}

// TaxAdvantage estimates the monthly value of tax-free allowances: what they
// would cost in tax if paid as salary. It uses a flat two-tier rate chosen by
// taxable base pay rather than a full bracket walk.
func (m *MilitaryAssembler) TaxAdvantage(basePay, bah, bas decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	annualBase := basePay.Mul(twelve)
	taxable := annualBase.Sub(m.Federal.StandardDeductionFor(status))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	rate := m.Pay.TaxAdvantage.HighRate
	if taxable.LessThan(m.Pay.TaxAdvantage.BracketThreshold) {
		rate = m.Pay.TaxAdvantage.LowRate
	}

	annualAllowances := bah.Add(bas).Mul(twelve)
	return annualAllowances.Mul(rate).Div(twelve)
}
