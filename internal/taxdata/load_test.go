package taxdata

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesLoad(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 2025, tables.Metadata.TaxYear)
	assert.Len(t, tables.States, 51, "50 states plus DC")
	assert.True(t, tables.Federal.StandardDeductionFor(domain.FilingSingle).Equal(decimal.NewFromInt(15750)))
	assert.True(t, tables.Federal.StandardDeductionFor(domain.FilingMarried).Equal(decimal.NewFromInt(31500)))
	assert.True(t, tables.FICA.SocialSecurityWageBase.Equal(decimal.NewFromInt(168600)))

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, tables, again, "tables are loaded once")
}

func TestDefaultTablesRegimes(t *testing.T) {
	tables := MustDefault()

	tests := []struct {
		code string
		kind domain.RegimeKind
	}{
		{"TX", domain.RegimeNoTax},
		{"FL", domain.RegimeNoTax},
		{"NH", domain.RegimeNoTax},
		{"NC", domain.RegimeFlat},
		{"PA", domain.RegimeFlat},
		{"CA", domain.RegimeProgressive},
		{"NY", domain.RegimeProgressive},
		{"DC", domain.RegimeProgressive},
		{"ca", domain.RegimeProgressive},
		{"ZZ", domain.RegimeNoTax},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.kind, tables.State(tt.code).Kind)
		})
	}

	assert.True(t, tables.State("NC").Rate.Equal(decimal.RequireFromString("0.0475")))
	assert.False(t, tables.HasState("ZZ"))
}

func TestBracketsForFallsBackToSingle(t *testing.T) {
	tables := MustDefault()
	ca := tables.State("CA")
	assert.Equal(t, ca.Brackets[domain.FilingSingle], ca.BracketsFor(domain.FilingStatus("head_of_household")))
	assert.Equal(t, ca.Brackets[domain.FilingMarried], ca.BracketsFor(domain.FilingStatus("MARRIED")))
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []domain.TaxBracket
		wantErr  string
	}{
		{
			name:     "valid",
			brackets: []domain.TaxBracket{domain.Bracket(1000, 0.01), domain.Bracket(5000, 0.02), domain.TopBracket(0.03)},
		},
		{
			name:     "empty",
			brackets: nil,
			wantErr:  "schedule is empty",
		},
		{
			name:     "descending bounds",
			brackets: []domain.TaxBracket{domain.Bracket(5000, 0.01), domain.Bracket(1000, 0.02), domain.TopBracket(0.03)},
			wantErr:  "is not above previous bound",
		},
		{
			name:     "equal bounds",
			brackets: []domain.TaxBracket{domain.Bracket(1000, 0.01), domain.Bracket(1000, 0.02), domain.TopBracket(0.03)},
			wantErr:  "is not above previous bound",
		},
		{
			name:     "decreasing rate",
			brackets: []domain.TaxBracket{domain.Bracket(1000, 0.04), domain.Bracket(5000, 0.05), domain.TopBracket(0.0495)},
			wantErr:  "lower than previous rate",
		},
		{
			name:     "open bracket in the middle",
			brackets: []domain.TaxBracket{domain.TopBracket(0.01), domain.TopBracket(0.02)},
			wantErr:  "only the last bracket",
		},
		{
			name:     "closed top",
			brackets: []domain.TaxBracket{domain.Bracket(1000, 0.01), domain.Bracket(5000, 0.02)},
			wantErr:  "must be open-ended",
		},
		{
			name:     "rate above one",
			brackets: []domain.TaxBracket{domain.TopBracket(1.5)},
			wantErr:  "between 0 and 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets("test", tt.brackets)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

const minimalTables = `
metadata:
  tax_year: 2025
federal:
  standard_deduction: {single: 100, married: 200}
  supplemental_withholding_rate: 0.22
  brackets:
    single: [{max: 1000, rate: 0.1}, {rate: 0.2}]
    married: [{max: 2000, rate: 0.1}, {rate: 0.2}]
fica:
  social_security_rate: 0.062
  social_security_wage_base: 1000
  medicare_rate: 0.0145
  additional_medicare_rate: 0.009
  additional_medicare_threshold: 2000
child_tax_credit:
  credit_per_child: 2000
  reduction_per_step: 50
  phase_out_step_income: 1000
  phase_out_threshold: {single: 200000, married: 400000}
states:
  zz:
    kind: flat
    rate: 0.05
`

func TestParseNormalizesStateCodes(t *testing.T) {
	tables, err := Parse([]byte(minimalTables))
	require.NoError(t, err)
	assert.True(t, tables.HasState("ZZ"))
	assert.True(t, tables.Federal.BracketsFor(domain.FilingSingle)[0].UpperBound.Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, tables.Federal.BracketsFor(domain.FilingSingle)[1].UpperBound)
}

func TestParseRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"bad yaml", "federal: [", "failed to parse"},
		{"missing federal", "fica: {social_security_wage_base: 1}", "federal.brackets.single"},
		{"unknown regime", minimalTables + "  QQ:\n    kind: sliding\n", "unknown regime"},
		{"progressive without single", minimalTables + "  QQ:\n    kind: progressive\n    brackets:\n      married: [{rate: 0.01}]\n", "states.QQ.brackets.single"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/tables.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read tax tables")
}
