package report

import (
	"math"
	"testing"

	"pglayout/internal/store"
)

func metric(test, table string, execMs float64, hit, read int64) store.Metric {
	return store.Metric{TestName: test, TableName: table, ExecutionTimeMs: execMs, BuffersHit: hit, BuffersRead: read}
}

func TestByTable(t *testing.T) {
	metrics := []store.Metric{
		metric("Q1", "events", 10, 100, 10),
		metric("Q1", "events", 30, 200, 30),
		metric("Q1", "events_partitioned", 5, 50, 0),
	}

	stats := ByTable(metrics)
	if len(stats) != 2 {
		t.Fatalf("got %d groups, want 2", len(stats))
	}

	// events is slower on average, so it sorts first.
	if stats[0].TableName != "events" {
		t.Errorf("stats[0].TableName = %q, want events", stats[0].TableName)
	}
	if stats[0].TestCount != 2 {
		t.Errorf("TestCount = %d, want 2", stats[0].TestCount)
	}
	if stats[0].AvgExecutionMs != 20 {
		t.Errorf("AvgExecutionMs = %f, want 20", stats[0].AvgExecutionMs)
	}
	if stats[0].MinExecutionMs != 10 || stats[0].MaxExecutionMs != 30 {
		t.Errorf("min/max = %f/%f, want 10/30", stats[0].MinExecutionMs, stats[0].MaxExecutionMs)
	}
	if stats[0].AvgBuffersHit != 150 {
		t.Errorf("AvgBuffersHit = %f, want 150", stats[0].AvgBuffersHit)
	}
}

func TestByTest(t *testing.T) {
	metrics := []store.Metric{
		metric("Q1", "events", 10, 0, 0),
		metric("Q1", "events", 20, 0, 0),
		metric("Q1", "events", 30, 0, 0),
		metric("Q2", "events", 100, 0, 0),
	}

	stats := ByTest(metrics)
	if len(stats) != 2 {
		t.Fatalf("got %d groups, want 2", len(stats))
	}
	if stats[0].TestName != "Q2" {
		t.Errorf("stats[0].TestName = %q, want Q2 (slowest first)", stats[0].TestName)
	}

	q1 := stats[1]
	if q1.Executions != 3 || q1.AvgExecutionMs != 20 {
		t.Errorf("Q1 = %+v", q1)
	}
	if math.Abs(q1.StdDevMs-10) > 1e-9 {
		t.Errorf("Q1.StdDevMs = %f, want 10 (sample stddev)", q1.StdDevMs)
	}
	if stats[0].StdDevMs != 0 {
		t.Errorf("single-execution stddev = %f, want 0", stats[0].StdDevMs)
	}
}

func TestCompareLayouts(t *testing.T) {
	metrics := []store.Metric{
		metric("Q1", "events", 100, 0, 0),
		metric("Q1", "events", 200, 0, 0),
		metric("Q1", "events_partitioned", 60, 0, 0),
		metric("Q2", "events", 50, 0, 0),
		metric("Q2", "events_partitioned", 75, 0, 0),
		metric("Q3", "events", 10, 0, 0), // no partitioned counterpart
		metric("Q4", "other_table", 10, 0, 0),
	}

	comparisons := CompareLayouts(metrics, "events", "events_partitioned")
	if len(comparisons) != 2 {
		t.Fatalf("got %d comparisons, want 2", len(comparisons))
	}

	// Best improvement first: Q1 at (150-60)/150*100 = 60%.
	q1 := comparisons[0]
	if q1.TestName != "Q1" {
		t.Fatalf("comparisons[0].TestName = %q, want Q1", q1.TestName)
	}
	if q1.BaselineAvgMs != 150 || q1.VariantAvgMs != 60 {
		t.Errorf("Q1 averages = %f/%f, want 150/60", q1.BaselineAvgMs, q1.VariantAvgMs)
	}
	if math.Abs(q1.ImprovementPercent-60) > 1e-9 {
		t.Errorf("Q1.ImprovementPercent = %f, want 60", q1.ImprovementPercent)
	}

	q2 := comparisons[1]
	if math.Abs(q2.ImprovementPercent-(-50)) > 1e-9 {
		t.Errorf("Q2.ImprovementPercent = %f, want -50 (regression)", q2.ImprovementPercent)
	}
}

func TestCompareLayouts_ZeroBaselineOmitted(t *testing.T) {
	metrics := []store.Metric{
		metric("Q1", "events", 0, 0, 0),
		metric("Q1", "events_partitioned", 5, 0, 0),
	}

	if got := CompareLayouts(metrics, "events", "events_partitioned"); len(got) != 0 {
		t.Errorf("got %d comparisons with zero baseline, want 0", len(got))
	}
}

func TestCompareLayouts_VariantMissingOmitted(t *testing.T) {
	metrics := []store.Metric{
		metric("Q1", "events", 40, 0, 0),
	}

	if got := CompareLayouts(metrics, "events", "events_partitioned"); len(got) != 0 {
		t.Errorf("got %d comparisons without a variant, want 0", len(got))
	}
}

func TestAggregates_EmptyInput(t *testing.T) {
	if got := ByTable(nil); len(got) != 0 {
		t.Errorf("ByTable(nil) = %v", got)
	}
	if got := ByTest(nil); len(got) != 0 {
		t.Errorf("ByTest(nil) = %v", got)
	}
	if got := CompareLayouts(nil, "a", "b"); len(got) != 0 {
		t.Errorf("CompareLayouts(nil) = %v", got)
	}
}
