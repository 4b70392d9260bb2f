package scenariolog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id            TEXT PRIMARY KEY,
	created_at    TEXT NOT NULL,
	rank          TEXT NOT NULL,
	location      TEXT NOT NULL,
	years_service INTEGER NOT NULL,
	civ_base      TEXT NOT NULL,
	civ_equity    TEXT NOT NULL,
	monthly_delta TEXT NOT NULL,
	offer_text    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_scenarios_created_at ON scenarios(created_at);`

// sqliteTime sorts lexically in timestamp order
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

// SQLiteSink writes scenarios to a local SQLite file
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens or creates the database at path
func NewSQLiteSink(ctx context.Context, path string) (*SQLiteSink, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path not set")
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases and writes consistent
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create scenarios table: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Log inserts one scenario
func (s *SQLiteSink) Log(ctx context.Context, sc Scenario) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO scenarios (id, created_at, rank, location, years_service, civ_base, civ_equity, monthly_delta, offer_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID.String(), sc.CreatedAt.UTC().Format(sqliteTime), sc.Rank, sc.Location, sc.YearsService,
		sc.CivBase.String(), sc.CivEquity.String(), sc.MonthlyDelta.String(), sc.OfferText)
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// Recent returns the newest scenarios
func (s *SQLiteSink) Recent(ctx context.Context, limit int) ([]Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, rank, location, years_service, civ_base, civ_equity, monthly_delta, offer_text
		 FROM scenarios ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var sc Scenario
		var id, created, base, eq, delta string
		if err := rows.Scan(&id, &created, &sc.Rank, &sc.Location, &sc.YearsService, &base, &eq, &delta, &sc.OfferText); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		if sc.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad scenario id %q: %w", id, err)
		}
		if sc.CreatedAt, err = time.Parse(sqliteTime, created); err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", created, err)
		}
		if sc.CivBase, err = decimal.NewFromString(base); err != nil {
			return nil, err
		}
		if sc.CivEquity, err = decimal.NewFromString(eq); err != nil {
			return nil, err
		}
		if sc.MonthlyDelta, err = decimal.NewFromString(delta); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Close closes the database
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
