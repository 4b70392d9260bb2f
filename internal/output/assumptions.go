package output

// DefaultAssumptions lists the modeling assumptions rendered under every summary.
var DefaultAssumptions = []string{
	"Tax brackets, standard deduction and FICA limits: 2025 levels held constant",
	"Social Security wage base: $168,600; Additional Medicare above $200,000 for every filing status",
	"Bonuses and RSU vests withheld at the 22% federal supplemental rate",
	"Military pay: 2025 base pay table; BAH from the duty-station dataset; BAS at the 2025 rates",
	"BAH and BAS are untaxed; their tax advantage is estimated at a 15% or 22% marginal rate",
	"Military total includes a 5% TSP match on base pay; no pay raises are projected",
	"Private equity is risk-discounted by company stage and vests evenly after the cliff",
}
