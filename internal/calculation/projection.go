package calculation

import (
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionInput collects what the multi-year projection needs. Civilian must
// be computed without RSU income; vested equity is added from Schedule so that
// the cliff shows up in the yearly series.
type ProjectionInput struct {
	Military     domain.MilitaryResult
	Civilian     domain.CompensationResult
	Schedule     []domain.VestingScheduleEntry
	CliffMonths  int
	Years        int
	TSPMatchRate decimal.Decimal
}

// Project totals take-home wealth for both paths. Military wealth is total RMC
// plus the TSP matching contribution on base pay. Civilian wealth is net cash
// plus risk-adjusted equity vested by the end of the horizon.
func Project(in ProjectionInput) domain.WealthProjection {
	years := in.Years
	if years <= 0 {
		years = domain.DefaultProjectionYears
	}

	milAnnual := in.Military.TotalMonthly.Mul(twelve)
	matchAnnual := in.Military.BasePayMonthly.Mul(in.TSPMatchRate).Mul(twelve)
	civAnnual := in.Civilian.NetMonthly.Mul(twelve)

	series := make([]domain.WealthPoint, 0, years+1)
	series = append(series, domain.WealthPoint{Year: 0, Military: decimal.Zero, Civilian: decimal.Zero})
	for y := 1; y <= years; y++ {
		n := decimal.NewFromInt(int64(y))
		series = append(series, domain.WealthPoint{
			Year:     y,
			Military: milAnnual.Add(matchAnnual).Mul(n),
			Civilian: civAnnual.Mul(n).Add(VestedAtMonth(in.Schedule, in.CliffMonths, y*12)),
		})
	}

	n := decimal.NewFromInt(int64(years))
	milCash := milAnnual.Mul(n)
	match := matchAnnual.Mul(n)
	civCash := civAnnual.Mul(n)
	equity := VestedAtMonth(in.Schedule, in.CliffMonths, years*12)

	first := 0
	if len(in.Schedule) > 0 && in.Schedule[len(in.Schedule)-1].CumulativeVested.IsPositive() {
		first = FirstVestMonth(in.CliffMonths)
	}

	return domain.WealthProjection{
		Years:            years,
		MilitaryCash:     milCash,
		TSPMatch:         match,
		MilitaryTotal:    milCash.Add(match),
		CivilianCash:     civCash,
		CivilianEquity:   equity,
		CivilianTotal:    civCash.Add(equity),
		Delta:            civCash.Add(equity).Sub(milCash.Add(match)),
		Series:           series,
		CliffAlert:       first > 0 && in.CliffMonths >= 12,
		CliffMonths:      in.CliffMonths,
		EquityFirstVests: first,
	}
}
