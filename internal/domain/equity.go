package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CompanyStage is the maturity of the issuing company, which drives the risk
// discount applied to its equity.
type CompanyStage string

const (
	StagePublic    CompanyStage = "public"
	StagePreIPO    CompanyStage = "pre_ipo"
	StageLateStage CompanyStage = "late_stage"
	StageGrowth    CompanyStage = "growth"
	StageEarly     CompanyStage = "early"
)

type stageInfo struct {
	discount    decimal.Decimal
	label       string
	description string
}

var stages = map[CompanyStage]stageInfo{
	StagePublic:    {decimal.Zero, "Public", "Publicly traded, liquid shares"},
	StagePreIPO:    {decimal.RequireFromString("0.15"), "Pre-IPO", "IPO expected within 12-18 months"},
	StageLateStage: {decimal.RequireFromString("0.30"), "Late Stage", "Series D+ with a clear path to exit"},
	StageGrowth:    {decimal.RequireFromString("0.50"), "Growth", "Series B-C, scaling but exit uncertain"},
	StageEarly:     {decimal.RequireFromString("0.70"), "Early", "Seed to Series A, high risk of total loss"},
}

// CompanyStages lists stages from least to most risky
func CompanyStages() []CompanyStage {
	return []CompanyStage{StagePublic, StagePreIPO, StageLateStage, StageGrowth, StageEarly}
}

// ParseCompanyStage accepts the canonical names plus a few common spellings
func ParseCompanyStage(s string) (CompanyStage, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "public":
		return StagePublic, true
	case "pre_ipo", "preipo":
		return StagePreIPO, true
	case "late_stage", "late":
		return StageLateStage, true
	case "growth":
		return StageGrowth, true
	case "early", "seed":
		return StageEarly, true
	}
	return "", false
}

// FromLegacyBool maps the older public/private flag onto a stage. Private
// companies are treated as growth stage.
func FromLegacyBool(isPublic bool) CompanyStage {
	if isPublic {
		return StagePublic
	}
	return StageGrowth
}

// ResolveStage picks the explicit stage when set, otherwise the legacy flag,
// otherwise public.
func ResolveStage(stage CompanyStage, isPublic *bool) CompanyStage {
	if s, ok := ParseCompanyStage(string(stage)); ok {
		return s
	}
	if isPublic != nil {
		return FromLegacyBool(*isPublic)
	}
	return StagePublic
}

// Valid reports whether the stage is one of the known values
func (s CompanyStage) Valid() bool {
	_, ok := stages[s]
	return ok
}

// Discount returns the risk discount as a fraction. Unknown stages resolve the
// same way as an empty stage, to public.
func (s CompanyStage) Discount() decimal.Decimal {
	if info, ok := stages[ResolveStage(s, nil)]; ok {
		return info.discount
	}
	return decimal.Zero
}

// Label is the display name of the stage
func (s CompanyStage) Label() string {
	if info, ok := stages[s]; ok {
		return info.label
	}
	return string(s)
}

// Description explains what the stage means
func (s CompanyStage) Description() string {
	if info, ok := stages[s]; ok {
		return info.description
	}
	return ""
}

// EquityGrant is a total grant vesting evenly over VestingYears. IsPublic is the
// legacy flag and only applies when Stage is empty.
type EquityGrant struct {
	TotalValue   decimal.Decimal `yaml:"total_value" json:"total_value"`
	VestingYears int             `yaml:"vesting_years" json:"vesting_years"`
	Stage        CompanyStage    `yaml:"company_stage,omitempty" json:"company_stage,omitempty"`
	IsPublic     *bool           `yaml:"is_public,omitempty" json:"is_public,omitempty"`
}

// EffectiveStage resolves the stage for valuation
func (g EquityGrant) EffectiveStage() CompanyStage {
	return ResolveStage(g.Stage, g.IsPublic)
}

// EquityValuation is the risk-adjusted value of a grant. DiscountPct is a
// whole-number percentage.
type EquityValuation struct {
	Stage           CompanyStage    `json:"company_stage"`
	TotalGrant      decimal.Decimal `json:"total_grant"`
	AdjustedValue   decimal.Decimal `json:"adjusted_value"`
	AnnualizedValue decimal.Decimal `json:"annualized_value"`
	MonthlyValue    decimal.Decimal `json:"monthly_value"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	Note            string          `json:"note"`
}

// VestingScheduleEntry is one year of a vesting schedule
type VestingScheduleEntry struct {
	Year              int             `json:"year"`
	VestedThisYear    decimal.Decimal `json:"vested_this_year"`
	CumulativeVested  decimal.Decimal `json:"cumulative_vested"`
	RemainingUnvested decimal.Decimal `json:"remaining_unvested"`
}

// Offer comparison outcomes
const (
	WinnerOfferA = "Offer A"
	WinnerOfferB = "Offer B"
	WinnerTie    = "Tie"
)

// OfferComparison ranks two grants by risk-adjusted monthly value
type OfferComparison struct {
	Winner            string          `json:"winner"`
	MonthlyDifference decimal.Decimal `json:"monthly_difference"`
	OfferA            EquityValuation `json:"offer_a"`
	OfferB            EquityValuation `json:"offer_b"`
	Note              string          `json:"note"`
}
