package bench

import (
	"math"
	"time"

	"pglayout/internal/plan"
)

// MeasurementRecord captures one trial of one named query. It is immutable
// once built, except for Iteration which the suite runner stamps with the
// trial's 1-based position.
//
// TotalTimeMs is always the sum of the execution and planning fields.
// WallClockTimeMs is measured client-side around the call and retained
// separately; it includes network and driver overhead the engine never sees.
type MeasurementRecord struct {
	QueryName         string    `json:"query_name"`
	QueryText         string    `json:"query"`
	ExecutionTimeMs   float64   `json:"execution_time_ms"`
	PlanningTimeMs    float64   `json:"planning_time_ms"`
	TotalTimeMs       float64   `json:"total_time_ms"`
	WallClockTimeMs   float64   `json:"wall_clock_time_ms"`
	SharedBuffersHit  int64     `json:"shared_buffers_hit"`
	SharedBuffersRead int64     `json:"shared_buffers_read"`
	BufferHitRatio    float64   `json:"buffer_hit_ratio"`
	Plan              plan.Node `json:"plan"`
	Iteration         int       `json:"iteration"`
	Timestamp         time.Time `json:"timestamp"`
}

// SimpleResult is the outcome of a plain (non-instrumented) timing run. Result
// rows are discarded after counting.
type SimpleResult struct {
	QueryName       string    `json:"query_name"`
	ExecutionTimeMs float64   `json:"execution_time_ms"`
	RowCount        int       `json:"row_count"`
	Timestamp       time.Time `json:"timestamp"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
