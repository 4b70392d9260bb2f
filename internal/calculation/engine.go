package calculation

import (
	"fmt"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/dutystation"
	"github.com/rgehrsitz/compme/internal/milpay"
	"github.com/rgehrsitz/compme/internal/taxdata"
)

// CalculationEngine bundles the assemblers over one set of static tables. It
// holds no mutable state and may be shared across goroutines.
type CalculationEngine struct {
	Tables   *domain.TaxTables
	Pay      *milpay.PayTable
	Housing  dutystation.Provider
	Civilian *CivilianAssembler
	Military *MilitaryAssembler
}

// NewCalculationEngine creates an engine over explicitly loaded data
func NewCalculationEngine(tables *domain.TaxTables, pay *milpay.PayTable, housing dutystation.Provider) *CalculationEngine {
	return &CalculationEngine{
		Tables:   tables,
		Pay:      pay,
		Housing:  housing,
		Civilian: NewCivilianAssembler(tables),
		Military: NewMilitaryAssembler(pay, housing, tables),
	}
}

// NewDefaultCalculationEngine uses the embedded tax and pay tables
func NewDefaultCalculationEngine(housing dutystation.Provider) (*CalculationEngine, error) {
	tables, err := taxdata.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load tax tables: %w", err)
	}
	pay, err := milpay.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load pay table: %w", err)
	}
	return NewCalculationEngine(tables, pay, housing), nil
}

// LoadCalculationEngine reads the tax, pay and BAH tables from the given files.
// An empty path uses the embedded copy of that table.
func LoadCalculationEngine(taxPath, payPath, bahPath string) (*CalculationEngine, error) {
	tables, err := taxdata.LoadFile(taxPath)
	if err != nil {
		return nil, err
	}
	pay, err := milpay.LoadFile(payPath)
	if err != nil {
		return nil, err
	}
	housing, err := dutystation.Load(bahPath)
	if err != nil {
		return nil, err
	}
	return NewCalculationEngine(tables, pay, housing), nil
}

// ScenarioOutcome is everything computed for one comparison scenario
type ScenarioOutcome struct {
	Military   domain.MilitaryResult         `json:"military"`
	Civilian   domain.CompensationResult     `json:"civilian"`
	Equity     domain.EquityValuation        `json:"equity"`
	Vesting    []domain.VestingScheduleEntry `json:"vesting_schedule"`
	Projection domain.WealthProjection       `json:"projection"`
}

// RunScenario evaluates both sides of a scenario. The civilian headline figures
// include the annualized equity as RSU income; the projection adds equity from
// the vesting schedule instead so it is not counted twice.
func (ce *CalculationEngine) RunScenario(s *domain.ComparisonScenario) ScenarioOutcome {
	mil := ce.Military.Calculate(s.Military)

	grant := s.Equity
	if grant.TotalValue.IsZero() && s.Civilian.TotalEquity.IsPositive() {
		grant.TotalValue = s.Civilian.TotalEquity
	}
	equity := ValueEquityGrant(grant)
	cliff := s.Cliff()
	schedule := VestingSchedule(grant.TotalValue, grant.VestingYears, cliff, equity.Stage)

	// An explicit RSU figure is already cash income, so the projection must
	// not add the grant again.
	civIn := s.Civilian
	projSchedule := schedule
	civCash := ce.Civilian.Calculate(civIn)
	civ := civCash
	if civIn.AnnualRSUValue.IsZero() && equity.AnnualizedValue.IsPositive() {
		civIn.AnnualRSUValue = equity.AnnualizedValue
		civ = ce.Civilian.Calculate(civIn)
	} else if civIn.AnnualRSUValue.IsPositive() {
		projSchedule = nil
	}

	projection := Project(ProjectionInput{
		Military:     mil,
		Civilian:     civCash,
		Schedule:     projSchedule,
		CliffMonths:  cliff,
		Years:        s.Horizon(),
		TSPMatchRate: ce.Pay.TSPMatchRate,
	})

	return ScenarioOutcome{
		Military:   mil,
		Civilian:   civ,
		Equity:     equity,
		Vesting:    schedule,
		Projection: projection,
	}
}
