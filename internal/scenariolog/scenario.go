// Package scenariolog records compared scenarios for later analysis. Logging
// is best effort: failures are reported to the logger and never reach the
// caller's result.
package scenariolog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// Scenario is one logged comparison. MonthlyDelta is military total monthly
// minus civilian net monthly.
type Scenario struct {
	ID           uuid.UUID       `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Rank         string          `json:"rank"`
	Location     string          `json:"location"`
	YearsService int             `json:"years_service"`
	CivBase      decimal.Decimal `json:"civ_base"`
	CivEquity    decimal.Decimal `json:"civ_equity"`
	MonthlyDelta decimal.Decimal `json:"monthly_delta"`
	OfferText    string          `json:"offer_text,omitempty"`
}

// FromResults builds a record from computed results
func FromResults(mil domain.MilitaryResult, civ domain.CompensationResult, civEquity decimal.Decimal, offerText string) Scenario {
	return Scenario{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Rank:         mil.Rank,
		Location:     mil.DutyStation,
		YearsService: mil.YearsOfService,
		CivBase:      civ.BaseSalary,
		CivEquity:    civEquity,
		MonthlyDelta: mil.TotalMonthly.Sub(civ.NetMonthly),
		OfferText:    offerText,
	}
}

// Fingerprint identifies the inputs of a scenario so repeats are logged once
func (s Scenario) Fingerprint() string {
	return fmt.Sprintf("%s_%s_%d_%s_%s",
		strings.ToUpper(s.Rank), strings.ToUpper(s.Location), s.YearsService,
		s.CivBase.String(), s.CivEquity.String())
}

// Sink stores scenarios
type Sink interface {
	Log(ctx context.Context, s Scenario) error
	Close() error
}

// Reader lists stored scenarios, newest first
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Scenario, error)
}

// Nop discards every scenario
type Nop struct{}

func (Nop) Log(context.Context, Scenario) error { return nil }
func (Nop) Close() error                        { return nil }

// Open creates the sink for a configured driver: none, postgres or sqlite
func Open(ctx context.Context, driver, dsn string) (Sink, error) {
	switch strings.ToLower(driver) {
	case "", "none":
		return Nop{}, nil
	case "postgres":
		return NewPostgresSink(ctx, dsn)
	case "sqlite":
		return NewSQLiteSink(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown scenario log driver %q", driver)
	}
}
