package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pglayout/internal/bench"
)

// Beginner starts transactions. Satisfied by *pgx.Conn.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Execer runs bare statements. Satisfied by *pgx.Conn.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Querier reads rows. Satisfied by *pgx.Conn.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PersistenceError marks a failed measurement batch. The batch's transaction
// has been rolled back in full by the time it surfaces.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting measurements: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

const metricsSchema = `
CREATE TABLE IF NOT EXISTS performance_metrics (
    id BIGSERIAL PRIMARY KEY,
    test_name TEXT NOT NULL,
    table_name TEXT NOT NULL,
    row_count BIGINT,
    query TEXT,
    execution_time_ms DOUBLE PRECISION,
    plan_time_ms DOUBLE PRECISION,
    buffers_hit BIGINT,
    buffers_read BIGINT,
    test_timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    notes TEXT
)`

const insertMetric = `
INSERT INTO performance_metrics (
    test_name, table_name, row_count, query,
    execution_time_ms, plan_time_ms,
    buffers_hit, buffers_read, notes
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Init creates the measurement table if it does not exist.
func Init(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, metricsSchema); err != nil {
		return fmt.Errorf("creating performance_metrics: %w", err)
	}
	return nil
}

// SaveRecords writes one performance_metrics row per record inside a single
// transaction: either every record lands or none does. The target table's row
// count is re-queried for each record rather than cached, since the generator
// may be appending rows while the suite runs.
func SaveRecords(ctx context.Context, db Beginner, records []bench.MeasurementRecord, tableLabel string) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	countSQL := "SELECT COUNT(*) FROM " + pgx.Identifier{tableLabel}.Sanitize()

	for _, rec := range records {
		var rowCount int64
		if err := tx.QueryRow(ctx, countSQL).Scan(&rowCount); err != nil {
			return 0, &PersistenceError{Err: fmt.Errorf("counting rows of %s: %w", tableLabel, err)}
		}

		_, err := tx.Exec(ctx, insertMetric,
			rec.QueryName,
			tableLabel,
			rowCount,
			rec.QueryText,
			rec.ExecutionTimeMs,
			rec.PlanningTimeMs,
			rec.SharedBuffersHit,
			rec.SharedBuffersRead,
			fmt.Sprintf("Iteration %d", rec.Iteration),
		)
		if err != nil {
			return 0, &PersistenceError{Err: fmt.Errorf("inserting record for %q: %w", rec.QueryName, err)}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &PersistenceError{Err: err}
	}
	return len(records), nil
}

// Metric is one persisted measurement row.
type Metric struct {
	ID              int64     `json:"id"`
	TestName        string    `json:"test_name"`
	TableName       string    `json:"table_name"`
	RowCount        int64     `json:"row_count"`
	Query           string    `json:"query"`
	ExecutionTimeMs float64   `json:"execution_time_ms"`
	PlanTimeMs      float64   `json:"plan_time_ms"`
	BuffersHit      int64     `json:"buffers_hit"`
	BuffersRead     int64     `json:"buffers_read"`
	Timestamp       time.Time `json:"test_timestamp"`
	Notes           string    `json:"notes"`
}

// FetchMetrics reads persisted measurements, most recent first. testName
// filters by exact name when non-empty; limit caps the result when positive.
func FetchMetrics(ctx context.Context, db Querier, testName string, limit int) ([]Metric, error) {
	sql := `
SELECT id, test_name, table_name, row_count, query,
       execution_time_ms, plan_time_ms, buffers_hit, buffers_read,
       test_timestamp, notes
FROM performance_metrics`

	var args []any
	if testName != "" {
		sql += " WHERE test_name = $1"
		args = append(args, testName)
	}
	sql += " ORDER BY test_timestamp DESC"
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching metrics: %w", err)
	}
	defer rows.Close()

	var metrics []Metric
	for rows.Next() {
		var m Metric
		err := rows.Scan(&m.ID, &m.TestName, &m.TableName, &m.RowCount, &m.Query,
			&m.ExecutionTimeMs, &m.PlanTimeMs, &m.BuffersHit, &m.BuffersRead,
			&m.Timestamp, &m.Notes)
		if err != nil {
			return nil, fmt.Errorf("scanning metric row: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetching metrics: %w", err)
	}
	return metrics, nil
}
