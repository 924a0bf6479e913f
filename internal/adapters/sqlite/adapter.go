// Package sqlite provides a SQLite-backed implementation of the history port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements the history port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.HistoryRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS search_history (
			id           TEXT PRIMARY KEY,
			instruction  TEXT NOT NULL,
			parameters   TEXT NOT NULL,
			results      TEXT NOT NULL,
			result_count INTEGER NOT NULL,
			origin       TEXT NOT NULL,
			created_at   TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_search_history_created_at
			ON search_history (created_at DESC);
	`)
	return err
}

// Save stores one processed report. Parameters and results are stored as
// JSON blobs and read back exactly as written.
func (a *Adapter) Save(ctx context.Context, report domain.SearchReport) error {
	paramsJSON, err := json.Marshal(report.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO search_history (id, instruction, parameters, results, result_count, origin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Instruction, string(paramsJSON), string(resultsJSON),
		report.ResultCount, string(report.Origin), report.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// ListRecent returns up to limit reports, newest first.
func (a *Adapter) ListRecent(ctx context.Context, limit int) ([]domain.SearchReport, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, instruction, parameters, results, result_count, origin, created_at
		FROM search_history
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	reports := []domain.SearchReport{}
	for rows.Next() {
		var report domain.SearchReport
		var paramsJSON, resultsJSON, origin string
		var createdAt time.Time
		if err := rows.Scan(
			&report.ID,
			&report.Instruction,
			&paramsJSON,
			&resultsJSON,
			&report.ResultCount,
			&origin,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &report.Parameters); err != nil {
			return nil, fmt.Errorf("failed to decode parameters: %w", err)
		}
		if err := json.Unmarshal([]byte(resultsJSON), &report.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results: %w", err)
		}
		report.Origin = domain.ResultOrigin(origin)
		report.CreatedAt = createdAt.UTC()
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return reports, nil
}
