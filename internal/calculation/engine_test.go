package calculation

import (
	"testing"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/dutystation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScenario() *domain.ComparisonScenario {
	return &domain.ComparisonScenario{
		Name: "E-5 San Diego vs. Seattle offer",
		Military: domain.MilitaryInput{
			Rank:           "E-5",
			YearsOfService: 6,
			DutyStation:    "SAN DIEGO, CA",
			HasDependents:  true,
		},
		Civilian: domain.CompensationInput{
			BaseSalary:   dec("120000"),
			BonusPct:     dec("10"),
			StateCode:    "WA",
			FilingStatus: domain.FilingSingle,
		},
		Equity: domain.EquityGrant{
			TotalValue:   dec("100000"),
			VestingYears: 4,
			Stage:        domain.StagePublic,
		},
	}
}

func TestNewDefaultCalculationEngine(t *testing.T) {
	housing, err := dutystation.Embedded()
	require.NoError(t, err)
	ce, err := NewDefaultCalculationEngine(housing)
	require.NoError(t, err)
	require.NotNil(t, ce.Civilian)
	require.NotNil(t, ce.Military)
	assert.Len(t, ce.Tables.States, 51)
}

func TestLoadCalculationEngine(t *testing.T) {
	ce, err := LoadCalculationEngine("", "", "")
	require.NoError(t, err)
	require.NotNil(t, ce.Housing)
	assert.NotEmpty(t, ce.Housing.Stations())

	_, err = LoadCalculationEngine("", "missing-pay.yaml", "")
	assert.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	ce := testEngine()
	s := sampleScenario()

	out := ce.RunScenario(s)

	assertDecimal(t, "4297.8", out.Military.BasePayMonthly)
	assertDecimal(t, "3207", out.Military.BAHMonthly)

	// headline civilian includes annualized equity as RSU income
	assertDecimal(t, "25000", out.Equity.AnnualizedValue)
	assertDecimal(t, "25000", out.Civilian.RSUAnnual)
	assertDecimal(t, "157000", out.Civilian.GrossAnnual)
	require.Len(t, out.Vesting, 4)

	// projection adds vested equity to cash-only pay, once
	cashOnly := ce.Civilian.Calculate(s.Civilian)
	assert.True(t, out.Projection.CivilianCash.Equal(cashOnly.NetMonthly.Mul(twelve).Mul(dec("4"))))
	assertDecimal(t, "100000", out.Projection.CivilianEquity)
	assert.True(t, out.Projection.CliffAlert)
	assert.Equal(t, domain.DefaultProjectionYears, out.Projection.Years)
}

func TestRunScenario_ExplicitRSU(t *testing.T) {
	ce := testEngine()
	s := sampleScenario()
	s.Civilian.AnnualRSUValue = dec("30000")

	out := ce.RunScenario(s)
	assertDecimal(t, "30000", out.Civilian.RSUAnnual)
	assert.True(t, out.Projection.CivilianEquity.IsZero())
	assert.False(t, out.Projection.CliffAlert)
	assert.True(t, out.Projection.CivilianCash.Equal(out.Civilian.NetMonthly.Mul(twelve).Mul(dec("4"))))
}

func TestRunScenario_EquityFromCompensationInput(t *testing.T) {
	ce := testEngine()
	s := sampleScenario()
	s.Equity = domain.EquityGrant{VestingYears: 4, Stage: domain.StageGrowth}
	s.Civilian.TotalEquity = dec("200000")
	cliff := 6
	s.CliffMonths = &cliff
	s.ProjectionYears = 2

	out := ce.RunScenario(s)
	assertDecimal(t, "100000", out.Equity.AdjustedValue)
	assertDecimal(t, "12500", out.Vesting[0].VestedThisYear)
	assertDecimal(t, "37500", out.Projection.CivilianEquity)
	assert.False(t, out.Projection.CliffAlert)
	assert.Equal(t, 6, out.Projection.EquityFirstVests)
	assert.Equal(t, 2, out.Projection.Years)
}
