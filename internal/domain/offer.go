package domain

import "github.com/shopspring/decimal"

// Offer parse methods
const (
	ParseMethodAI    = "ai"
	ParseMethodRegex = "regex"
)

// OfferExtraction is a best-effort reading of an offer letter. Any field may
// be zero when the letter did not mention it.
type OfferExtraction struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	SignOnBonus        decimal.Decimal `json:"sign_on_bonus"`
	AnnualBonusPercent decimal.Decimal `json:"annual_bonus_percent"`
	AnnualBonusAmount  decimal.Decimal `json:"annual_bonus_amount"`
	EquityGrant        decimal.Decimal `json:"equity_grant"`
	EquityShares       int64           `json:"equity_shares"`
	IsPublicCompany    bool            `json:"is_public_company"`
	ParsingConfidence  float64         `json:"parsing_confidence"`
	ExtractedFields    []string        `json:"extracted_fields"`
	ParseMethod        string          `json:"parse_method"`
	RawText            string          `json:"raw_text,omitempty"`
}

// CompensationInput converts the extraction into a civilian input, keeping the
// caller's location and household details.
func (o OfferExtraction) CompensationInput(state string, status FilingStatus, dependents int) CompensationInput {
	bonusPct := o.AnnualBonusPercent
	if bonusPct.IsZero() && o.AnnualBonusAmount.IsPositive() && o.BaseSalary.IsPositive() {
		bonusPct = o.AnnualBonusAmount.Div(o.BaseSalary).Mul(decimal.NewFromInt(100))
	}
	return CompensationInput{
		BaseSalary:    o.BaseSalary,
		BonusPct:      bonusPct,
		TotalEquity:   o.EquityGrant,
		StateCode:     state,
		FilingStatus:  status,
		NumDependents: dependents,
	}
}

// EquityGrantFor converts the extraction's equity into a grant
func (o OfferExtraction) EquityGrantFor(vestingYears int) EquityGrant {
	isPublic := o.IsPublicCompany
	return EquityGrant{
		TotalValue:   o.EquityGrant,
		VestingYears: vestingYears,
		IsPublic:     &isPublic,
	}
}
