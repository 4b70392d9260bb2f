package transform

import (
	"testing"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestScenario() *domain.ComparisonScenario {
	manual := decimal.NewFromInt(2500)
	public := false
	return &domain.ComparisonScenario{
		Name: "Test Scenario",
		Military: domain.MilitaryInput{
			Rank:           "E-5",
			YearsOfService: 6,
			DutyStation:    "SAN DIEGO, CA",
			ManualBAH:      &manual,
		},
		Civilian: domain.CompensationInput{
			BaseSalary: decimal.NewFromInt(100000),
			StateCode:  "CA",
		},
		Equity: domain.EquityGrant{
			TotalValue:   decimal.NewFromInt(100000),
			VestingYears: 4,
			IsPublic:     &public,
		},
	}
}

func TestApplyTransforms_NilScenario(t *testing.T) {
	_, err := ApplyTransforms(nil, []ScenarioTransform{&Promote{Grades: 1}})
	assert.Error(t, err)
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.NotSame(t, base, result)
	assert.Equal(t, base.Name, result.Name)
	assert.NotSame(t, base.Military.ManualBAH, result.Military.ManualBAH)
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{&Promote{Grades: 1}, nil})
	assert.ErrorContains(t, err, "index 1")
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, []ScenarioTransform{
		&AddYears{Years: 4},
		&Promote{Grades: 1},
		&SetState{State: "tx"},
	})
	require.NoError(t, err)

	assert.Equal(t, "E-6", result.Military.Rank)
	assert.Equal(t, 10, result.Military.YearsOfService)
	assert.Equal(t, "TX", result.Civilian.StateCode)

	// base untouched
	assert.Equal(t, "E-5", base.Military.Rank)
	assert.Equal(t, 6, base.Military.YearsOfService)
	assert.Equal(t, "CA", base.Civilian.StateCode)
}

func TestApplyTransforms_ValidationErrorStopsChain(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{
		&AddYears{Years: 1},
		&Promote{Grades: 9},
	})
	require.Error(t, err)

	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "promote", te.TransformName)
	assert.Equal(t, "validate", te.Operation)
}

func TestPromoteRank(t *testing.T) {
	tests := []struct {
		rank    string
		n       int
		want    string
		wantErr bool
	}{
		{"E-5", 1, "E-6", false},
		{"e4", 2, "E-6", false},
		{"W-2", 1, "W-3", false},
		{"O-1E", 2, "O-3E", false},
		{"O-3E", 1, "O-4", false},
		{"O-9", 1, "O-10", false},
		{"E-9", 1, "", true},
		{"W-5", 1, "", true},
		{"captain", 1, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.rank, func(t *testing.T) {
			got, err := promoteRank(tt.rank, tt.n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddYears_Validate(t *testing.T) {
	base := createTestScenario()
	assert.NoError(t, (&AddYears{Years: -6}).Validate(base))
	assert.Error(t, (&AddYears{Years: -7}).Validate(base))
	assert.Error(t, (&AddYears{Years: 1}).Validate(nil))
}

func TestSetStation_ClearsManualBAH(t *testing.T) {
	base := createTestScenario()
	tr := &SetStation{Station: " NORFOLK, VA "}
	require.NoError(t, tr.Validate(base))

	result, err := tr.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, "NORFOLK, VA", result.Military.DutyStation)
	assert.Nil(t, result.Military.ManualBAH)
	assert.NotNil(t, base.Military.ManualBAH)

	assert.Error(t, (&SetStation{Station: "  "}).Validate(base))
}

func TestToggleDependents(t *testing.T) {
	base := createTestScenario()
	once, err := (&ToggleDependents{}).Apply(base)
	require.NoError(t, err)
	assert.True(t, once.Military.HasDependents)

	twice, err := (&ToggleDependents{}).Apply(once)
	require.NoError(t, err)
	assert.False(t, twice.Military.HasDependents)
}

func TestSetState_Validate(t *testing.T) {
	base := createTestScenario()
	assert.NoError(t, (&SetState{State: "wa"}).Validate(base))
	assert.Error(t, (&SetState{State: "Washington"}).Validate(base))
}

func TestAdjustSalary(t *testing.T) {
	base := createTestScenario()

	tests := []struct {
		name string
		tr   *AdjustSalary
		want string
	}{
		{"raise", &AdjustSalary{Percent: decimal.NewFromInt(10)}, "110000"},
		{"cut", &AdjustSalary{Percent: decimal.NewFromInt(-15)}, "85000"},
		{"fractional", &AdjustSalary{Percent: decimal.RequireFromString("2.5")}, "102500"},
		{"absolute amount wins", &AdjustSalary{Percent: decimal.NewFromInt(50), Amount: decimal.NewFromInt(130000)}, "130000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.tr.Validate(base))
			result, err := tt.tr.Apply(base)
			require.NoError(t, err)
			assert.True(t, result.Civilian.BaseSalary.Equal(decimal.RequireFromString(tt.want)), "got %s", result.Civilian.BaseSalary)
		})
	}

	assert.Error(t, (&AdjustSalary{Percent: decimal.NewFromInt(-100)}).Validate(base))
	assert.Error(t, (&AdjustSalary{Amount: decimal.NewFromInt(-1)}).Validate(base))
}

func TestSetStage_ReplacesLegacyFlag(t *testing.T) {
	base := createTestScenario()
	tr := &SetStage{Stage: domain.StagePreIPO}
	require.NoError(t, tr.Validate(base))

	result, err := tr.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePreIPO, result.Equity.EffectiveStage())
	assert.Nil(t, result.Equity.IsPublic)
	assert.Equal(t, domain.StageGrowth, base.Equity.EffectiveStage())

	assert.Error(t, (&SetStage{Stage: "unicorn"}).Validate(base))
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("promote", "apply", "cannot promote", assert.AnError)
	assert.Contains(t, err.Error(), "transform promote (apply): cannot promote")
	assert.ErrorIs(t, err, assert.AnError)

	bare := NewTransformError("set_state", "validate", "bad code", nil)
	assert.Equal(t, "transform set_state (validate): bad code", bare.Error())
}
