package calculation

import (
	"fmt"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultVestingYears applies when a grant does not say how long it vests
const DefaultVestingYears = 4

// offerTieTolerance is how close two monthly values must be to count as equal
var offerTieTolerance = decimal.RequireFromString("0.005")

// ValueGrant applies the stage risk discount to a grant and spreads it evenly
// over the vesting period.
func ValueGrant(totalGrant decimal.Decimal, vestingYears int, stage domain.CompanyStage) domain.EquityValuation {
	if !stage.Valid() {
		stage = domain.ResolveStage(stage, nil)
	}
	if totalGrant.LessThanOrEqual(decimal.Zero) {
		return domain.EquityValuation{
			Stage:           stage,
			TotalGrant:      decimal.Zero,
			AdjustedValue:   decimal.Zero,
			AnnualizedValue: decimal.Zero,
			MonthlyValue:    decimal.Zero,
			DiscountPct:     decimal.Zero,
			Note:            "No equity grant",
		}
	}
	if vestingYears <= 0 {
		vestingYears = DefaultVestingYears
	}

	discount := stage.Discount()
	adjusted := totalGrant.Mul(decimal.NewFromInt(1).Sub(discount))
	annualized := adjusted.Div(decimal.NewFromInt(int64(vestingYears)))

	return domain.EquityValuation{
		Stage:           stage,
		TotalGrant:      totalGrant,
		AdjustedValue:   adjusted,
		AnnualizedValue: annualized,
		MonthlyValue:    annualized.Div(twelve),
		DiscountPct:     discount.Mul(hundred),
		Note:            stageNote(stage, discount),
	}
}

// ValueEquityGrant values a grant record, resolving the legacy public flag
func ValueEquityGrant(g domain.EquityGrant) domain.EquityValuation {
	return ValueGrant(g.TotalValue, g.VestingYears, g.EffectiveStage())
}

func stageNote(stage domain.CompanyStage, discount decimal.Decimal) string {
	if discount.IsZero() {
		return "Public stock - can sell immediately upon vesting"
	}
	return fmt.Sprintf("%s stock - %s%% risk discount applied (%s; illiquid until IPO or acquisition)",
		stage.Label(), discount.Mul(hundred).StringFixed(0), stage.Description())
}

// VestingSchedule lays out yearly vesting of the risk-adjusted grant. With a
// cliff of twelve months or more the full first tranche vests at month 12;
// shorter cliffs pro-rate the first tranche by cliffMonths/12. The final year
// vests whatever remains so the schedule always sums to the adjusted total.
func VestingSchedule(totalGrant decimal.Decimal, vestingYears, cliffMonths int, stage domain.CompanyStage) []domain.VestingScheduleEntry {
	if vestingYears <= 0 {
		vestingYears = DefaultVestingYears
	}
	if cliffMonths < 0 {
		cliffMonths = 0
	}

	adjusted := ValueGrant(totalGrant, vestingYears, stage).AdjustedValue
	tranche := adjusted.Div(decimal.NewFromInt(int64(vestingYears)))

	schedule := make([]domain.VestingScheduleEntry, 0, vestingYears)
	cumulative := decimal.Zero
	for year := 1; year <= vestingYears; year++ {
		vested := tranche
		if year == 1 && cliffMonths < 12 {
			vested = tranche.Mul(decimal.NewFromInt(int64(cliffMonths))).Div(twelve)
		}
		if year == vestingYears {
			vested = adjusted.Sub(cumulative)
		}
		cumulative = cumulative.Add(vested)
		schedule = append(schedule, domain.VestingScheduleEntry{
			Year:              year,
			VestedThisYear:    vested,
			CumulativeVested:  cumulative,
			RemainingUnvested: adjusted.Sub(cumulative),
		})
	}
	return schedule
}

// FirstVestMonth is the month in which equity first becomes owned
func FirstVestMonth(cliffMonths int) int {
	if cliffMonths >= 12 {
		return 12
	}
	if cliffMonths < 1 {
		return 1
	}
	return cliffMonths
}

// VestedAtMonth returns cumulative vested equity at the end of a month. Nothing
// is owned before the cliff; after that, tranches land on year boundaries.
func VestedAtMonth(schedule []domain.VestingScheduleEntry, cliffMonths, month int) decimal.Decimal {
	if len(schedule) == 0 || month < FirstVestMonth(cliffMonths) {
		return decimal.Zero
	}
	year := month / 12
	if year == 0 {
		return schedule[0].VestedThisYear
	}
	if year > len(schedule) {
		year = len(schedule)
	}
	return schedule[year-1].CumulativeVested
}

// CompareOffers ranks two grants by risk-adjusted monthly value
func CompareOffers(a, b domain.EquityGrant) domain.OfferComparison {
	va := ValueEquityGrant(a)
	vb := ValueEquityGrant(b)

	diff := va.MonthlyValue.Sub(vb.MonthlyValue)
	winner := domain.WinnerTie
	switch {
	case diff.Abs().LessThanOrEqual(offerTieTolerance):
		diff = decimal.Zero
	case diff.IsPositive():
		winner = domain.WinnerOfferA
	default:
		winner = domain.WinnerOfferB
	}

	note := "Both offers provide the same risk-adjusted monthly equity value"
	if winner != domain.WinnerTie {
		note = fmt.Sprintf("%s provides $%s more per month in adjusted equity value", winner, diff.Abs().StringFixed(0))
	}

	return domain.OfferComparison{
		Winner:            winner,
		MonthlyDifference: diff.Abs(),
		OfferA:            va,
		OfferB:            vb,
		Note:              note,
	}
}
