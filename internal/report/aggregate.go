package report

import (
	"math"
	"sort"

	"pglayout/internal/store"
)

// TableStats aggregates every metric row sharing one table label.
type TableStats struct {
	TableName      string  `json:"table_name"`
	TestCount      int     `json:"test_count"`
	AvgExecutionMs float64 `json:"avg_execution_time"`
	MinExecutionMs float64 `json:"min_execution_time"`
	MaxExecutionMs float64 `json:"max_execution_time"`
	AvgBuffersHit  float64 `json:"avg_buffers_hit"`
	AvgBuffersRead float64 `json:"avg_buffers_read"`
}

// TestStats aggregates every metric row sharing one test name.
type TestStats struct {
	TestName       string  `json:"test_name"`
	Executions     int     `json:"execution_count"`
	AvgExecutionMs float64 `json:"avg_execution_time"`
	MinExecutionMs float64 `json:"min_execution_time"`
	MaxExecutionMs float64 `json:"max_execution_time"`
	StdDevMs       float64 `json:"stddev_execution_time"`
}

// LayoutComparison pairs one test's average execution time across two table
// layouts. A positive improvement means the variant layout was faster.
type LayoutComparison struct {
	TestName           string  `json:"test_name"`
	BaselineAvgMs      float64 `json:"baseline_avg_time"`
	VariantAvgMs       float64 `json:"variant_avg_time"`
	ImprovementPercent float64 `json:"improvement_percent"`
}

// ByTable groups metrics by table label, slowest tables first.
func ByTable(metrics []store.Metric) []TableStats {
	groups := make(map[string][]store.Metric)
	for _, m := range metrics {
		groups[m.TableName] = append(groups[m.TableName], m)
	}

	stats := make([]TableStats, 0, len(groups))
	for name, rows := range groups {
		s := TableStats{
			TableName:      name,
			TestCount:      len(rows),
			MinExecutionMs: rows[0].ExecutionTimeMs,
			MaxExecutionMs: rows[0].ExecutionTimeMs,
		}
		for _, m := range rows {
			s.AvgExecutionMs += m.ExecutionTimeMs
			s.AvgBuffersHit += float64(m.BuffersHit)
			s.AvgBuffersRead += float64(m.BuffersRead)
			s.MinExecutionMs = math.Min(s.MinExecutionMs, m.ExecutionTimeMs)
			s.MaxExecutionMs = math.Max(s.MaxExecutionMs, m.ExecutionTimeMs)
		}
		n := float64(len(rows))
		s.AvgExecutionMs /= n
		s.AvgBuffersHit /= n
		s.AvgBuffersRead /= n
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].AvgExecutionMs > stats[j].AvgExecutionMs })
	return stats
}

// ByTest groups metrics by test name, slowest tests first. StdDevMs is the
// sample standard deviation and stays zero for single-row groups.
func ByTest(metrics []store.Metric) []TestStats {
	groups := make(map[string][]store.Metric)
	for _, m := range metrics {
		groups[m.TestName] = append(groups[m.TestName], m)
	}

	stats := make([]TestStats, 0, len(groups))
	for name, rows := range groups {
		s := TestStats{
			TestName:       name,
			Executions:     len(rows),
			MinExecutionMs: rows[0].ExecutionTimeMs,
			MaxExecutionMs: rows[0].ExecutionTimeMs,
		}
		for _, m := range rows {
			s.AvgExecutionMs += m.ExecutionTimeMs
			s.MinExecutionMs = math.Min(s.MinExecutionMs, m.ExecutionTimeMs)
			s.MaxExecutionMs = math.Max(s.MaxExecutionMs, m.ExecutionTimeMs)
		}
		s.AvgExecutionMs /= float64(len(rows))

		if len(rows) > 1 {
			var sq float64
			for _, m := range rows {
				d := m.ExecutionTimeMs - s.AvgExecutionMs
				sq += d * d
			}
			s.StdDevMs = math.Sqrt(sq / float64(len(rows)-1))
		}

		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].AvgExecutionMs > stats[j].AvgExecutionMs })
	return stats
}

// CompareLayouts pairs per-test average execution times of the baseline table
// label against the variant label. Tests missing from either side, and tests
// whose baseline average is exactly zero, are omitted rather than divided by
// zero. Results are ordered by improvement, best first.
func CompareLayouts(metrics []store.Metric, baseline, variant string) []LayoutComparison {
	type acc struct {
		sum float64
		n   int
	}
	baseAvgs := make(map[string]*acc)
	varAvgs := make(map[string]*acc)

	add := func(m map[string]*acc, test string, v float64) {
		a, ok := m[test]
		if !ok {
			a = &acc{}
			m[test] = a
		}
		a.sum += v
		a.n++
	}

	var testOrder []string
	seen := make(map[string]bool)
	for _, m := range metrics {
		switch m.TableName {
		case baseline:
			add(baseAvgs, m.TestName, m.ExecutionTimeMs)
		case variant:
			add(varAvgs, m.TestName, m.ExecutionTimeMs)
		default:
			continue
		}
		if !seen[m.TestName] {
			seen[m.TestName] = true
			testOrder = append(testOrder, m.TestName)
		}
	}

	var comparisons []LayoutComparison
	for _, test := range testOrder {
		base, okBase := baseAvgs[test]
		vari, okVar := varAvgs[test]
		if !okBase || !okVar {
			continue
		}
		baseAvg := base.sum / float64(base.n)
		varAvg := vari.sum / float64(vari.n)
		if baseAvg == 0 {
			continue
		}
		comparisons = append(comparisons, LayoutComparison{
			TestName:           test,
			BaselineAvgMs:      baseAvg,
			VariantAvgMs:       varAvg,
			ImprovementPercent: (baseAvg - varAvg) / baseAvg * 100,
		})
	}

	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].ImprovementPercent > comparisons[j].ImprovementPercent
	})
	return comparisons
}
