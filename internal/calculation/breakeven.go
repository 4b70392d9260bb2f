package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// BreakEvenError reports why a salary search could not run
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

// BreakEvenRequest asks for the base salary whose civilian net monthly pay
// reaches TargetMonthly. Offer supplies everything except the salary.
type BreakEvenRequest struct {
	Offer         domain.CompensationInput
	TargetMonthly decimal.Decimal
	Tolerance     decimal.Decimal
	MaxIterations int
}

// BreakEvenResult is the salary found by the search
type BreakEvenResult struct {
	BaseSalary decimal.Decimal           `json:"base_salary"`
	Result     domain.CompensationResult `json:"result"`
	Iterations int                       `json:"iterations"`
	Converged  bool                      `json:"converged"`
}

// BreakEvenSalary bisects over base salary. Net pay rises with salary except
// for the small steps of the child credit phase-out, so the search settles on
// a salary within Tolerance of the target.
func (a *CivilianAssembler) BreakEvenSalary(ctx context.Context, req BreakEvenRequest) (*BreakEvenResult, error) {
	if !req.TargetMonthly.IsPositive() {
		return nil, &BreakEvenError{Operation: "break_even_salary", Message: "target monthly pay must be positive"}
	}
	if req.Tolerance.LessThanOrEqual(decimal.Zero) {
		req.Tolerance = decimal.NewFromInt(1)
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = 100
	}

	netAt := func(salary decimal.Decimal) domain.CompensationResult {
		in := req.Offer
		in.BaseSalary = salary
		return a.Calculate(in)
	}

	low := decimal.Zero
	high := req.TargetMonthly.Mul(twelve)
	for i := 0; netAt(high).NetMonthly.LessThan(req.TargetMonthly); i++ {
		if i >= 40 {
			return nil, &BreakEvenError{Operation: "break_even_salary", Message: fmt.Sprintf("no salary reaches %s per month", req.TargetMonthly.StringFixed(2))}
		}
		low = high
		high = high.Mul(decimal.NewFromInt(2))
	}

	two := decimal.NewFromInt(2)
	best := &BreakEvenResult{}
	for i := 1; i <= req.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{Operation: "break_even_salary", Message: "search cancelled", Cause: ctx.Err()}
		default:
		}

		mid := low.Add(high).Div(two)
		res := netAt(mid)
		best.BaseSalary = mid
		best.Result = res
		best.Iterations = i

		diff := res.NetMonthly.Sub(req.TargetMonthly)
		if diff.Abs().LessThan(req.Tolerance) {
			best.Converged = true
			return best, nil
		}
		if diff.IsNegative() {
			low = mid
		} else {
			high = mid
		}
	}
	return best, nil
}
