package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetState relocates the civilian offer to another state
type SetState struct {
	State string // two-letter postal code
}

func (s *SetState) Name() string {
	return "set_state"
}

func (s *SetState) Description() string {
	return fmt.Sprintf("Take the offer in %s", strings.ToUpper(s.State))
}

func (s *SetState) Validate(base *domain.ComparisonScenario) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if len(strings.TrimSpace(s.State)) != 2 {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("state must be a two-letter code, got %q", s.State), nil)
	}
	return nil
}

func (s *SetState) Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error) {
	modified := base.DeepCopy()
	modified.Civilian.StateCode = strings.ToUpper(strings.TrimSpace(s.State))
	return modified, nil
}

// AdjustSalary changes the civilian base salary, either by a percentage or to an
// absolute amount. Amount wins when both are set.
type AdjustSalary struct {
	Percent decimal.Decimal // whole-number percent, -10 means a 10% cut
	Amount  decimal.Decimal
}

func (a *AdjustSalary) Name() string {
	return "adjust_salary"
}

func (a *AdjustSalary) Description() string {
	if a.Amount.IsPositive() {
		return fmt.Sprintf("Set base salary to $%s", a.Amount.StringFixed(0))
	}
	sign := ""
	if a.Percent.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Change base salary by %s%s%%", sign, a.Percent.String())
}

func (a *AdjustSalary) Validate(base *domain.ComparisonScenario) error {
	if err := requireBase(a.Name(), base); err != nil {
		return err
	}
	if a.Amount.IsNegative() {
		return NewTransformError(a.Name(), "validate", "amount cannot be negative", nil)
	}
	if a.Amount.IsZero() && a.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(a.Name(), "validate",
			fmt.Sprintf("percent must be greater than -100, got %s", a.Percent.String()), nil)
	}
	return nil
}

func (a *AdjustSalary) Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error) {
	modified := base.DeepCopy()
	if a.Amount.IsPositive() {
		modified.Civilian.BaseSalary = a.Amount
		return modified, nil
	}
	factor := decimal.NewFromInt(1).Add(a.Percent.Div(hundred))
	modified.Civilian.BaseSalary = base.Civilian.BaseSalary.Mul(factor).Round(2)
	return modified, nil
}

// SetStage changes the company stage, and so the risk discount on the grant
type SetStage struct {
	Stage domain.CompanyStage
}

func (s *SetStage) Name() string {
	return "set_stage"
}

func (s *SetStage) Description() string {
	return fmt.Sprintf("Value equity as a %s company", s.Stage.Label())
}

func (s *SetStage) Validate(base *domain.ComparisonScenario) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if !s.Stage.Valid() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown company stage %q", s.Stage), nil)
	}
	return nil
}

func (s *SetStage) Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error) {
	modified := base.DeepCopy()
	modified.Equity.Stage = s.Stage
	modified.Equity.IsPublic = nil
	return modified, nil
}
