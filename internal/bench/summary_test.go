package bench

import (
	"math"
	"testing"
)

func rec(name string, execMs, ratio float64) MeasurementRecord {
	return MeasurementRecord{QueryName: name, ExecutionTimeMs: execMs, BufferHitRatio: ratio}
}

func TestSummarize(t *testing.T) {
	records := []MeasurementRecord{
		rec("Q1", 10, 100),
		rec("Q1", 20, 50),
		rec("Q1", 30, 0),
		rec("Q2", 5, 90),
	}

	summaries := Summarize(records)
	if len(summaries) != 2 {
		t.Fatalf("got %d groups, want 2", len(summaries))
	}

	q1 := summaries["Q1"]
	if q1.Iterations != 3 {
		t.Errorf("Q1.Iterations = %d, want 3", q1.Iterations)
	}
	if q1.AvgExecutionMs != 20 {
		t.Errorf("Q1.AvgExecutionMs = %f, want 20", q1.AvgExecutionMs)
	}
	if q1.MinExecutionMs != 10 {
		t.Errorf("Q1.MinExecutionMs = %f, want 10", q1.MinExecutionMs)
	}
	if q1.MaxExecutionMs != 30 {
		t.Errorf("Q1.MaxExecutionMs = %f, want 30", q1.MaxExecutionMs)
	}
	if q1.AvgBufferHitRatio != 50 {
		t.Errorf("Q1.AvgBufferHitRatio = %f, want 50", q1.AvgBufferHitRatio)
	}

	q2 := summaries["Q2"]
	if q2.Iterations != 1 || q2.AvgExecutionMs != 5 || q2.MinExecutionMs != 5 || q2.MaxExecutionMs != 5 {
		t.Errorf("Q2 summary = %+v", q2)
	}
}

func TestSummarize_ZeroRatioCountsInDenominator(t *testing.T) {
	// A record with ratio 0 must still divide the mean, never be dropped.
	summaries := Summarize([]MeasurementRecord{
		rec("Q", 1, 100),
		rec("Q", 1, 0),
	})
	if got := summaries["Q"].AvgBufferHitRatio; math.Abs(got-50) > 1e-9 {
		t.Errorf("AvgBufferHitRatio = %f, want 50", got)
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	summaries := Summarize(nil)
	if len(summaries) != 0 {
		t.Errorf("got %d groups for empty input, want 0", len(summaries))
	}
}

func TestSummarize_AllTrialsFailedNameOmitted(t *testing.T) {
	// A query whose every trial failed contributes no records, so it must not
	// appear in the summary at all.
	summaries := Summarize([]MeasurementRecord{rec("survivor", 2, 10)})
	if _, ok := summaries["doomed"]; ok {
		t.Error("query with zero successful records must be omitted")
	}
	if _, ok := summaries["survivor"]; !ok {
		t.Error("surviving query missing from summary")
	}
}
