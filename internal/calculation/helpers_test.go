package calculation

import (
	"testing"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/milpay"
	"github.com/rgehrsitz/compme/internal/taxdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertDecimalNear(t *testing.T, want float64, got decimal.Decimal, delta float64) {
	t.Helper()
	assert.InDelta(t, want, got.InexactFloat64(), delta)
}

// stubHousing is an in-memory BAH provider keyed by station|rank|deps
type stubHousing map[string]decimal.Decimal

func (s stubHousing) Rate(station, rank string, withDependents bool) (decimal.Decimal, bool) {
	key := station + "|" + rank
	if withDependents {
		key += "|dep"
	}
	r, ok := s[key]
	return r, ok
}

func (s stubHousing) Stations() []string { return nil }

func testTables() *domain.TaxTables {
	return taxdata.MustDefault()
}

func testEngine() *CalculationEngine {
	housing := stubHousing{
		"SAN DIEGO, CA|E-5|dep": dec("3207"),
		"SAN DIEGO, CA|E-5":     dec("2757"),
		"SAN DIEGO, CA|O-3":     dec("3153"),
	}
	return NewCalculationEngine(testTables(), milpay.MustDefault(), housing)
}
