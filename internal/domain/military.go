package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MilitaryInput describes a service member's current situation
type MilitaryInput struct {
	Rank           string           `yaml:"rank" json:"rank"`
	YearsOfService int              `yaml:"years_of_service" json:"years_of_service"`
	DutyStation    string           `yaml:"duty_station" json:"duty_station"`
	HasDependents  bool             `yaml:"has_dependents" json:"has_dependents"`
	FilingStatus   FilingStatus     `yaml:"filing_status" json:"filing_status"`
	ManualBAH      *decimal.Decimal `yaml:"manual_bah,omitempty" json:"manual_bah,omitempty"`
}

// RateSource records where a looked-up rate came from
type RateSource string

const (
	SourceOfficial RateSource = "official"
	SourceManual   RateSource = "manual"
	SourceNotFound RateSource = "not_found"
)

// MilitaryResult is Regular Military Compensation broken into its parts. All
// amounts are monthly.
type MilitaryResult struct {
	Rank           string `json:"rank"`
	YearsOfService int    `json:"years_of_service"`
	DutyStation    string `json:"duty_station"`

	BasePayMonthly      decimal.Decimal `json:"base_pay_monthly"`
	BasePaySource       RateSource      `json:"base_pay_source"`
	BAHMonthly          decimal.Decimal `json:"bah_monthly"`
	BAHSource           RateSource      `json:"bah_source"`
	BASMonthly          decimal.Decimal `json:"bas_monthly"`
	TaxAdvantageMonthly decimal.Decimal `json:"tax_advantage_monthly"`
	TotalMonthly        decimal.Decimal `json:"total_monthly"`
	TaxableMonthly      decimal.Decimal `json:"taxable_monthly"`
	NontaxableMonthly   decimal.Decimal `json:"nontaxable_monthly"`
}

// BAHMissing reports whether the housing allowance could not be resolved and
// the caller should warn instead of presenting $0 as a real rate.
func (r MilitaryResult) BAHMissing() bool {
	return r.BAHSource == SourceNotFound
}

var compactRank = regexp.MustCompile(`^([EWO])-?(\d{1,2})([A-Z]*)$`)

// NormalizeRank canonicalizes pay grades: "e6", "E06" and "E-6" all become "E-6".
func NormalizeRank(rank string) string {
	r := strings.ToUpper(strings.TrimSpace(rank))
	m := compactRank.FindStringSubmatch(r)
	if m == nil {
		return r
	}
	num := strings.TrimLeft(m[2], "0")
	if num == "" {
		return r
	}
	return m[1] + "-" + num + m[3]
}

// IsOfficerRank reports whether a grade draws the officer subsistence rate.
// Only commissioned (O) grades do; warrant (W) grades draw the enlisted rate.
func IsOfficerRank(rank string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(rank)), "O")
}

// IsValidRank reports whether the string looks like a pay grade
func IsValidRank(rank string) bool {
	return compactRank.MatchString(NormalizeRank(rank))
}
