package domain

import "github.com/shopspring/decimal"

// DefaultProjectionYears is the horizon used for multi-year totals
const DefaultProjectionYears = 4

// DefaultCliffMonths is the usual one-year cliff
const DefaultCliffMonths = 12

// ComparisonScenario pairs a military situation with a civilian offer
type ComparisonScenario struct {
	Name            string            `yaml:"name" json:"name"`
	Military        MilitaryInput     `yaml:"military" json:"military"`
	Civilian        CompensationInput `yaml:"civilian" json:"civilian"`
	Equity          EquityGrant       `yaml:"equity" json:"equity"`
	CliffMonths     *int              `yaml:"cliff_months,omitempty" json:"cliff_months,omitempty"`
	ProjectionYears int               `yaml:"projection_years" json:"projection_years"`
}

// DeepCopy returns an independent copy of the scenario
func (s *ComparisonScenario) DeepCopy() *ComparisonScenario {
	if s == nil {
		return nil
	}
	c := *s
	if s.Military.ManualBAH != nil {
		v := *s.Military.ManualBAH
		c.Military.ManualBAH = &v
	}
	if s.CliffMonths != nil {
		v := *s.CliffMonths
		c.CliffMonths = &v
	}
	if s.Equity.IsPublic != nil {
		v := *s.Equity.IsPublic
		c.Equity.IsPublic = &v
	}
	return &c
}

// Horizon returns the projection length, defaulting to four years
func (s *ComparisonScenario) Horizon() int {
	if s.ProjectionYears <= 0 {
		return DefaultProjectionYears
	}
	return s.ProjectionYears
}

// Cliff returns the cliff length, defaulting to twelve months
func (s *ComparisonScenario) Cliff() int {
	if s.CliffMonths == nil {
		return DefaultCliffMonths
	}
	if *s.CliffMonths < 0 {
		return 0
	}
	return *s.CliffMonths
}

// WealthPoint is cumulative take-home wealth at the end of a year
type WealthPoint struct {
	Year     int             `json:"year"`
	Military decimal.Decimal `json:"military"`
	Civilian decimal.Decimal `json:"civilian"`
}

// WealthProjection totals both paths over a fixed horizon
type WealthProjection struct {
	Years            int             `json:"years"`
	MilitaryCash     decimal.Decimal `json:"military_cash"`
	TSPMatch         decimal.Decimal `json:"tsp_match"`
	MilitaryTotal    decimal.Decimal `json:"military_total"`
	CivilianCash     decimal.Decimal `json:"civilian_cash"`
	CivilianEquity   decimal.Decimal `json:"civilian_equity"`
	CivilianTotal    decimal.Decimal `json:"civilian_total"`
	Delta            decimal.Decimal `json:"delta"`
	Series           []WealthPoint   `json:"series"`
	CliffAlert       bool            `json:"cliff_alert"`
	CliffMonths      int             `json:"cliff_months"`
	EquityFirstVests int             `json:"equity_first_vests_month"`
}
