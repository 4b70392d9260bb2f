package calculation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestValueGrant_StageDiscounts(t *testing.T) {
	tests := []struct {
		stage    domain.CompanyStage
		adjusted string
		pct      string
	}{
		{domain.StagePublic, "100000", "0"},
		{domain.StagePreIPO, "85000", "15"},
		{domain.StageLateStage, "70000", "30"},
		{domain.StageGrowth, "50000", "50"},
		{domain.StageEarly, "30000", "70"},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			v := ValueGrant(dec("100000"), 4, tt.stage)
			assert.Equal(t, tt.stage, v.Stage)
			assertDecimal(t, "100000", v.TotalGrant)
			assertDecimal(t, tt.adjusted, v.AdjustedValue)
			assertDecimal(t, tt.pct, v.DiscountPct)
			assert.True(t, v.AnnualizedValue.Equal(v.AdjustedValue.Div(dec("4"))))
		})
	}
}

func TestValueGrant_PublicMonthly(t *testing.T) {
	v := ValueGrant(dec("100000"), 4, domain.StagePublic)
	assertDecimal(t, "25000", v.AnnualizedValue)
	assertDecimalNear(t, 2083.33, v.MonthlyValue, 0.005)
	assert.Contains(t, v.Note, "Public")
}

func TestValueGrant_EdgeCases(t *testing.T) {
	t.Run("zero grant", func(t *testing.T) {
		v := ValueGrant(dec("0"), 4, domain.StageGrowth)
		assert.True(t, v.AdjustedValue.IsZero())
		assert.True(t, v.MonthlyValue.IsZero())
		assert.Equal(t, "No equity grant", v.Note)
	})

	t.Run("negative grant", func(t *testing.T) {
		v := ValueGrant(dec("-100"), 4, domain.StagePublic)
		assert.True(t, v.TotalGrant.IsZero())
		assert.True(t, v.AdjustedValue.IsZero())
	})

	t.Run("non-positive vesting years default to four", func(t *testing.T) {
		v := ValueGrant(dec("100000"), 0, domain.StagePublic)
		assertDecimal(t, "25000", v.AnnualizedValue)
	})

	t.Run("unknown stage is public", func(t *testing.T) {
		v := ValueGrant(dec("100000"), 4, domain.CompanyStage("series_z"))
		assert.Equal(t, domain.StagePublic, v.Stage)
		assertDecimal(t, "100000", v.AdjustedValue)
	})

	t.Run("discounted note", func(t *testing.T) {
		v := ValueGrant(dec("100000"), 4, domain.StageGrowth)
		assert.Contains(t, v.Note, "50% risk discount")
	})
}

func TestValueEquityGrant_LegacyFlag(t *testing.T) {
	private := false
	public := true

	growth := ValueEquityGrant(domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4, IsPublic: &private})
	assert.Equal(t, domain.StageGrowth, growth.Stage)
	assertDecimal(t, "50000", growth.AdjustedValue)

	pub := ValueEquityGrant(domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4, IsPublic: &public})
	assertDecimal(t, "100000", pub.AdjustedValue)

	explicit := ValueEquityGrant(domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4, Stage: domain.StagePreIPO, IsPublic: &private})
	assert.Equal(t, domain.StagePreIPO, explicit.Stage)

	neither := ValueEquityGrant(domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4})
	assert.Equal(t, domain.StagePublic, neither.Stage)
}

func TestVestingSchedule(t *testing.T) {
	got := VestingSchedule(dec("100000"), 4, 12, domain.StagePublic)
	want := []domain.VestingScheduleEntry{
		{Year: 1, VestedThisYear: dec("25000"), CumulativeVested: dec("25000"), RemainingUnvested: dec("75000")},
		{Year: 2, VestedThisYear: dec("25000"), CumulativeVested: dec("50000"), RemainingUnvested: dec("50000")},
		{Year: 3, VestedThisYear: dec("25000"), CumulativeVested: dec("75000"), RemainingUnvested: dec("25000")},
		{Year: 4, VestedThisYear: dec("25000"), CumulativeVested: dec("100000"), RemainingUnvested: dec("0")},
	}
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("VestingSchedule mismatch (-want +got):\n%s", diff)
	}
}

func TestVestingSchedule_ShortCliffTruesUpFinalYear(t *testing.T) {
	got := VestingSchedule(dec("100000"), 4, 6, domain.StagePublic)
	require.Len(t, got, 4)
	assertDecimal(t, "12500", got[0].VestedThisYear)
	assertDecimal(t, "25000", got[1].VestedThisYear)
	assertDecimal(t, "37500", got[3].VestedThisYear)
	assertDecimal(t, "100000", got[3].CumulativeVested)
}

func TestVestingSchedule_Conservation(t *testing.T) {
	for _, stage := range domain.CompanyStages() {
		for years := 1; years <= 7; years++ {
			for _, cliff := range []int{0, 3, 12, 24} {
				total := dec("123456.78")
				schedule := VestingSchedule(total, years, cliff, stage)
				require.Len(t, schedule, years)

				adjusted := ValueGrant(total, years, stage).AdjustedValue
				sum := decimal.Zero
				prev := decimal.Zero
				for _, e := range schedule {
					sum = sum.Add(e.VestedThisYear)
					assert.True(t, e.CumulativeVested.GreaterThanOrEqual(prev))
					assert.True(t, e.CumulativeVested.Add(e.RemainingUnvested).Equal(adjusted))
					prev = e.CumulativeVested
				}
				assert.True(t, sum.Equal(adjusted), "%s years=%d cliff=%d: %s != %s", stage, years, cliff, sum, adjusted)
				assert.True(t, schedule[years-1].RemainingUnvested.IsZero())
			}
		}
	}
}

func TestVestedAtMonth(t *testing.T) {
	schedule := VestingSchedule(dec("100000"), 4, 12, domain.StagePublic)

	for month := 0; month < 12; month++ {
		assert.True(t, VestedAtMonth(schedule, 12, month).IsZero(), "month %d", month)
	}
	assertDecimal(t, "25000", VestedAtMonth(schedule, 12, 12))
	assertDecimal(t, "25000", VestedAtMonth(schedule, 12, 23))
	assertDecimal(t, "50000", VestedAtMonth(schedule, 12, 24))
	assertDecimal(t, "100000", VestedAtMonth(schedule, 12, 48))
	assertDecimal(t, "100000", VestedAtMonth(schedule, 12, 120))

	short := VestingSchedule(dec("100000"), 4, 6, domain.StagePublic)
	assert.True(t, VestedAtMonth(short, 6, 5).IsZero())
	assertDecimal(t, "12500", VestedAtMonth(short, 6, 6))

	assert.True(t, VestedAtMonth(nil, 12, 48).IsZero())
}

func TestFirstVestMonth(t *testing.T) {
	assert.Equal(t, 12, FirstVestMonth(12))
	assert.Equal(t, 12, FirstVestMonth(24))
	assert.Equal(t, 6, FirstVestMonth(6))
	assert.Equal(t, 1, FirstVestMonth(0))
}

func TestCompareOffers(t *testing.T) {
	t.Run("tie after risk adjustment", func(t *testing.T) {
		c := CompareOffers(
			domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4, Stage: domain.StagePublic},
			domain.EquityGrant{TotalValue: dec("200000"), VestingYears: 4, Stage: domain.StageGrowth},
		)
		assert.Equal(t, domain.WinnerTie, c.Winner)
		assert.True(t, c.MonthlyDifference.IsZero())
	})

	t.Run("offer A wins", func(t *testing.T) {
		c := CompareOffers(
			domain.EquityGrant{TotalValue: dec("120000"), VestingYears: 4, Stage: domain.StagePublic},
			domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4, Stage: domain.StagePublic},
		)
		assert.Equal(t, domain.WinnerOfferA, c.Winner)
		assertDecimalNear(t, 416.67, c.MonthlyDifference, 0.005)
		assert.Contains(t, c.Note, "$417")
	})

	t.Run("offer B wins", func(t *testing.T) {
		c := CompareOffers(
			domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4, Stage: domain.StageEarly},
			domain.EquityGrant{TotalValue: dec("100000"), VestingYears: 4, Stage: domain.StagePreIPO},
		)
		assert.Equal(t, domain.WinnerOfferB, c.Winner)
		assert.False(t, c.MonthlyDifference.IsNegative())
	})
}
