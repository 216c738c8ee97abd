package report

import (
	"bytes"
	"strings"
	"testing"

	"pglayout/internal/bench"
)

func TestRenderSuiteSummary(t *testing.T) {
	summaries := map[string]bench.QuerySummary{
		"Count recent events": {
			QueryName:         "Count recent events",
			Iterations:        3,
			AvgExecutionMs:    12.34,
			MinExecutionMs:    10,
			MaxExecutionMs:    15,
			AvgBufferHitRatio: 99.5,
		},
		"Hourly aggregation": {
			QueryName:      "Hourly aggregation",
			Iterations:     3,
			AvgExecutionMs: 45.67,
		},
	}

	var out bytes.Buffer
	if err := RenderSuiteSummary(&out, summaries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Count recent events") {
		t.Error("summary missing query name")
	}
	if !strings.Contains(text, "avg=12.34ms, min=10.00ms, max=15.00ms") {
		t.Errorf("summary missing execution stats:\n%s", text)
	}
	if !strings.Contains(text, "99.50%") {
		t.Error("summary missing buffer hit ratio")
	}

	// Alphabetical group order.
	if strings.Index(text, "Count recent events") > strings.Index(text, "Hourly aggregation") {
		t.Error("summary groups not sorted by name")
	}
}

func TestRenderReport(t *testing.T) {
	tables := []TableStats{{TableName: "events", TestCount: 6, AvgExecutionMs: 20}}
	tests := []TestStats{{TestName: "Q1", Executions: 1, AvgExecutionMs: 20}}
	comparisons := []LayoutComparison{{TestName: "Q1", BaselineAvgMs: 20, VariantAvgMs: 10, ImprovementPercent: 50}}

	var out bytes.Buffer
	err := RenderReport(&out, tables, tests, comparisons, "events", "events_partitioned")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"PERFORMANCE BY TABLE",
		"PERFORMANCE BY TEST",
		"EVENTS VS EVENTS_PARTITIONED",
		"Improvement:",
		"50.00%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	// Single execution: no stddev line.
	if strings.Contains(text, "Std dev") {
		t.Error("stddev printed for a single-execution test")
	}
}

func TestRenderReport_NoComparisons(t *testing.T) {
	var out bytes.Buffer
	if err := RenderReport(&out, nil, nil, nil, "events", "events_partitioned"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No paired measurements") {
		t.Error("empty comparison section not explained")
	}
}
