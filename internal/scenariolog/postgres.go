package scenariolog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id            UUID PRIMARY KEY,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	rank          TEXT NOT NULL,
	location      TEXT NOT NULL,
	years_service INTEGER NOT NULL,
	civ_base      NUMERIC(14,2) NOT NULL,
	civ_equity    NUMERIC(14,2) NOT NULL,
	monthly_delta NUMERIC(14,2) NOT NULL,
	offer_text    TEXT NOT NULL DEFAULT ''
)`

// PostgresSink writes scenarios to a Postgres table
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects to dsn and creates the table when missing
func NewPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN not set")
	}
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create scenarios table: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

// Log inserts one scenario
func (p *PostgresSink) Log(ctx context.Context, s Scenario) error {
	const query = `
		INSERT INTO scenarios (id, created_at, rank, location, years_service, civ_base, civ_equity, monthly_delta, offer_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`
	_, err := p.pool.Exec(ctx, query,
		s.ID, s.CreatedAt, s.Rank, s.Location, s.YearsService,
		s.CivBase.StringFixed(2), s.CivEquity.StringFixed(2), s.MonthlyDelta.StringFixed(2), s.OfferText)
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// Recent returns the newest scenarios
func (p *PostgresSink) Recent(ctx context.Context, limit int) ([]Scenario, error) {
	const query = `
		SELECT id, created_at, rank, location, years_service,
		       civ_base::text, civ_equity::text, monthly_delta::text, offer_text
		FROM scenarios ORDER BY created_at DESC LIMIT $1`
	rows, err := p.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var s Scenario
		var base, equity, delta string
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Rank, &s.Location, &s.YearsService, &base, &equity, &delta, &s.OfferText); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		if s.CivBase, err = decimal.NewFromString(base); err != nil {
			return nil, err
		}
		if s.CivEquity, err = decimal.NewFromString(equity); err != nil {
			return nil, err
		}
		if s.MonthlyDelta, err = decimal.NewFromString(delta); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close releases the connection pool
func (p *PostgresSink) Close() error {
	p.pool.Close()
	return nil
}
