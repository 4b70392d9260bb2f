package domain

import "github.com/shopspring/decimal"

// CompensationInput describes a civilian offer. BonusPct is a whole-number
// percentage of base salary (15 means 15%).
type CompensationInput struct {
	BaseSalary     decimal.Decimal `yaml:"base_salary" json:"base_salary"`
	BonusPct       decimal.Decimal `yaml:"bonus_pct" json:"bonus_pct"`
	TotalEquity    decimal.Decimal `yaml:"total_equity" json:"total_equity"`
	StateCode      string          `yaml:"state_code" json:"state_code"`
	FilingStatus   FilingStatus    `yaml:"filing_status" json:"filing_status"`
	AnnualRSUValue decimal.Decimal `yaml:"annual_rsu_value" json:"annual_rsu_value"`
	NumDependents  int             `yaml:"num_dependents" json:"num_dependents"`
}

// FICABreakdown splits payroll tax into its two programs
type FICABreakdown struct {
	SocialSecurity     decimal.Decimal `json:"social_security"`
	Medicare           decimal.Decimal `json:"medicare"`
	AdditionalMedicare decimal.Decimal `json:"additional_medicare"`
	Total              decimal.Decimal `json:"total"`
}

// Withholding estimates what is taken out of a single supplemental payment
// such as a bonus check or an RSU vest. It is for display only.
type Withholding struct {
	Gross          decimal.Decimal `json:"gross"`
	Federal        decimal.Decimal `json:"federal"`
	SocialSecurity decimal.Decimal `json:"social_security"`
	Medicare       decimal.Decimal `json:"medicare"`
	FICA           decimal.Decimal `json:"fica"`
	Net            decimal.Decimal `json:"net"`
}

// CompensationResult is the civilian after-tax picture for one year
type CompensationResult struct {
	StateCode    string       `json:"state_code"`
	FilingStatus FilingStatus `json:"filing_status"`

	GrossAnnual decimal.Decimal `json:"gross_annual"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	BonusAnnual decimal.Decimal `json:"bonus_annual"`
	BonusNet    decimal.Decimal `json:"bonus_net"`
	RSUAnnual   decimal.Decimal `json:"rsu_annual"`
	RSUNet      decimal.Decimal `json:"rsu_net"`

	FederalTax            decimal.Decimal `json:"fed_tax"`
	StateTax              decimal.Decimal `json:"state_tax"`
	FICA                  FICABreakdown   `json:"fica"`
	FICATax               decimal.Decimal `json:"fica_tax"`
	ChildTaxCredit        decimal.Decimal `json:"child_tax_credit_eligible"`
	AppliedChildTaxCredit decimal.Decimal `json:"child_tax_credit"`
	TotalTax              decimal.Decimal `json:"total_tax"`
	NetAnnual             decimal.Decimal `json:"net_annual"`
	NetMonthly            decimal.Decimal `json:"net_monthly"`

	EffectiveTaxRate     decimal.Decimal `json:"effective_tax_rate"`
	EffectiveFederalRate decimal.Decimal `json:"effective_federal_rate"`
	EffectiveStateRate   decimal.Decimal `json:"effective_state_rate"`
	EffectiveFICARate    decimal.Decimal `json:"effective_fica_rate"`
	MarginalFederalRate  decimal.Decimal `json:"marginal_federal_rate"`
	MarginalStateRate    decimal.Decimal `json:"marginal_state_rate"`

	BonusWithholding Withholding `json:"bonus_withholding"`
	RSUWithholding   Withholding `json:"rsu_withholding"`
}
