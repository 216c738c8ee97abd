package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"pglayout/internal/plan"
)

// DB is the slice of pgx.Conn the executor needs. Satisfied by *pgx.Conn and
// by pgx.Tx.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Executor runs queries against a single live connection, one at a time.
type Executor struct {
	db DB
}

func NewExecutor(db DB) *Executor {
	return &Executor{db: db}
}

// ExecuteInstrumented runs the query under
// EXPLAIN (ANALYZE, BUFFERS, FORMAT JSON), which actually executes the
// statement, and converts the engine's report into a MeasurementRecord.
// Iteration is left at zero for the caller to assign.
func (e *Executor) ExecuteInstrumented(ctx context.Context, name, sql string) (*MeasurementRecord, error) {
	instrumented := "EXPLAIN (ANALYZE, BUFFERS, FORMAT JSON) " + sql

	start := time.Now()
	var raw []byte
	if err := e.db.QueryRow(ctx, instrumented).Scan(&raw); err != nil {
		return nil, &ExecutionError{QueryName: name, Err: err}
	}
	wallClock := time.Since(start)

	outputs, err := plan.Parse(raw)
	if err != nil {
		return nil, &MalformedPlanError{QueryName: name, Err: err}
	}
	out := outputs[0]

	if out.ExecutionTime < 0 || out.PlanningTime < 0 {
		return nil, &MalformedPlanError{
			QueryName: name,
			Err:       fmt.Errorf("negative duration (execution %.3fms, planning %.3fms)", out.ExecutionTime, out.PlanningTime),
		}
	}

	totals := plan.Buffers(&out.Plan)

	rec := &MeasurementRecord{
		QueryName:         name,
		QueryText:         sql,
		ExecutionTimeMs:   round2(out.ExecutionTime),
		PlanningTimeMs:    round2(out.PlanningTime),
		WallClockTimeMs:   round2(float64(wallClock) / float64(time.Millisecond)),
		SharedBuffersHit:  totals.SharedHit,
		SharedBuffersRead: totals.SharedRead,
		BufferHitRatio:    round2(totals.HitRatio()),
		Plan:              out.Plan,
		Timestamp:         time.Now(),
	}
	// Sum after rounding so the invariant holds on the stored values.
	rec.TotalTimeMs = rec.ExecutionTimeMs + rec.PlanningTimeMs

	return rec, nil
}

// ExecuteSimple runs the query without instrumentation, keeping only the row
// count and client-side timing.
func (e *Executor) ExecuteSimple(ctx context.Context, name, sql string) (*SimpleResult, error) {
	start := time.Now()
	rows, err := e.db.Query(ctx, sql)
	if err != nil {
		return nil, &ExecutionError{QueryName: name, Err: err}
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{QueryName: name, Err: err}
	}
	elapsed := time.Since(start)

	return &SimpleResult{
		QueryName:       name,
		ExecutionTimeMs: round2(float64(elapsed) / float64(time.Millisecond)),
		RowCount:        count,
		Timestamp:       time.Now(),
	}, nil
}
