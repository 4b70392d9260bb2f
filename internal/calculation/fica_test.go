package calculation

import (
	"testing"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testFICA() *FICACalculator {
	tables := testTables()
	return NewFICACalculator(tables.FICA, tables.Federal.SupplementalWithholdingRate)
}

func TestCalculateFICA(t *testing.T) {
	calc := testFICA()

	tests := []struct {
		name       string
		wages      string
		ss         string
		medicare   string
		additional string
		total      string
	}{
		{"zero wages", "0", "0", "0", "0", "0"},
		{"negative wages", "-10", "0", "0", "0", "0"},
		{"below wage base", "100000", "6200", "1450", "0", "7650"},
		{"exactly at wage base", "168600", "10453.2", "2444.7", "0", "12897.9"},
		{"above wage base", "200000", "10453.2", "2900", "0", "13353.2"},
		{"additional medicare", "250000", "10453.2", "4075", "450", "14528.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateFICA(dec(tt.wages))
			assertDecimal(t, tt.ss, got.SocialSecurity)
			assertDecimal(t, tt.medicare, got.Medicare)
			assertDecimal(t, tt.additional, got.AdditionalMedicare)
			assertDecimal(t, tt.total, got.Total)
		})
	}
}

func TestSocialSecurityCappedAtWageBase(t *testing.T) {
	calc := testFICA()
	atCap := calc.CalculateFICA(dec("168600")).SocialSecurity
	for _, wages := range []string{"168600.01", "200000", "500000", "10000000"} {
		assert.True(t, calc.CalculateFICA(dec(wages)).SocialSecurity.Equal(atCap), wages)
	}
}

func TestRemainingWageBase(t *testing.T) {
	calc := testFICA()
	assertDecimal(t, "168600", calc.RemainingWageBase(dec("0")))
	assertDecimal(t, "3600", calc.RemainingWageBase(dec("165000")))
	assertDecimal(t, "0", calc.RemainingWageBase(dec("168600")))
	assertDecimal(t, "0", calc.RemainingWageBase(dec("400000")))
}

func TestSupplementalWithholding(t *testing.T) {
	calc := testFICA()

	t.Run("wage base available", func(t *testing.T) {
		w := calc.SupplementalWithholding(dec("10000"), dec("100000"))
		assertDecimal(t, "10000", w.Gross)
		assertDecimal(t, "2200", w.Federal)
		assertDecimal(t, "620", w.SocialSecurity)
		assertDecimal(t, "145", w.Medicare)
		assertDecimal(t, "765", w.FICA)
		assertDecimal(t, "7035", w.Net)
	})

	t.Run("partly over wage base", func(t *testing.T) {
		w := calc.SupplementalWithholding(dec("10000"), dec("165000"))
		assertDecimal(t, "223.2", w.SocialSecurity)
	})

	t.Run("wage base exhausted", func(t *testing.T) {
		w := calc.SupplementalWithholding(dec("10000"), dec("168600"))
		assertDecimal(t, "0", w.SocialSecurity)
		assertDecimal(t, "7655", w.Net)
	})

	t.Run("zero amount", func(t *testing.T) {
		assert.Equal(t, domain.Withholding{}, calc.SupplementalWithholding(dec("0"), dec("0")))
	})

	t.Run("net floored at zero", func(t *testing.T) {
		harsh := NewFICACalculator(testTables().FICA, dec("0.99"))
		w := harsh.SupplementalWithholding(dec("1000"), dec("0"))
		assertDecimal(t, "0", w.Net)
	})
}
