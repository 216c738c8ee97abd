package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"pglayout/internal/bench"
	"pglayout/internal/report"
	"pglayout/internal/store"
)

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteJSON writes v to path as indented JSON, creating parent directories as
// needed. Nested fields such as the plan tree survive intact.
func WriteJSON(path string, v any) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := RenderJSON(f, v); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SummaryPath derives the summary export path from a records export path by
// appending "-summary" before the extension: results/bench.json becomes
// results/bench-summary.json.
func SummaryPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-summary" + ext
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func ms(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func count(v int64) string { return strconv.FormatInt(v, 10) }

func stamp(t time.Time) string { return t.Format(time.RFC3339) }

// WriteRecordsCSV exports measurement records as a flat table. The plan tree
// cannot be represented in CSV and is omitted; use WriteJSON to keep it.
func WriteRecordsCSV(path string, records []bench.MeasurementRecord) error {
	header := []string{
		"query_name", "iteration", "execution_time_ms", "planning_time_ms",
		"total_time_ms", "wall_clock_time_ms", "shared_buffers_hit",
		"shared_buffers_read", "buffer_hit_ratio", "timestamp", "query",
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.QueryName,
			strconv.Itoa(r.Iteration),
			ms(r.ExecutionTimeMs),
			ms(r.PlanningTimeMs),
			ms(r.TotalTimeMs),
			ms(r.WallClockTimeMs),
			count(r.SharedBuffersHit),
			count(r.SharedBuffersRead),
			ms(r.BufferHitRatio),
			stamp(r.Timestamp),
			r.QueryText,
		})
	}
	return writeCSV(path, header, rows)
}

// WriteSummariesCSV exports per-query summaries, sorted by query name.
func WriteSummariesCSV(path string, summaries map[string]bench.QuerySummary) error {
	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	header := []string{
		"query_name", "iterations", "avg_execution_ms",
		"min_execution_ms", "max_execution_ms", "avg_buffer_hit_ratio",
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		s := summaries[name]
		rows = append(rows, []string{
			s.QueryName,
			strconv.Itoa(s.Iterations),
			ms(s.AvgExecutionMs),
			ms(s.MinExecutionMs),
			ms(s.MaxExecutionMs),
			ms(s.AvgBufferHitRatio),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteMetricsCSV exports raw persisted metric rows.
func WriteMetricsCSV(path string, metrics []store.Metric) error {
	header := []string{
		"id", "test_name", "table_name", "row_count",
		"execution_time_ms", "plan_time_ms", "buffers_hit", "buffers_read",
		"test_timestamp", "notes", "query",
	}
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			count(m.ID),
			m.TestName,
			m.TableName,
			count(m.RowCount),
			ms(m.ExecutionTimeMs),
			ms(m.PlanTimeMs),
			count(m.BuffersHit),
			count(m.BuffersRead),
			stamp(m.Timestamp),
			m.Notes,
			m.Query,
		})
	}
	return writeCSV(path, header, rows)
}

// WriteTableStatsCSV exports the by-table aggregation.
func WriteTableStatsCSV(path string, stats []report.TableStats) error {
	header := []string{
		"table_name", "test_count", "avg_execution_time",
		"min_execution_time", "max_execution_time",
		"avg_buffers_hit", "avg_buffers_read",
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.TableName,
			strconv.Itoa(s.TestCount),
			ms(s.AvgExecutionMs),
			ms(s.MinExecutionMs),
			ms(s.MaxExecutionMs),
			ms(s.AvgBuffersHit),
			ms(s.AvgBuffersRead),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteTestStatsCSV exports the by-test aggregation.
func WriteTestStatsCSV(path string, stats []report.TestStats) error {
	header := []string{
		"test_name", "execution_count", "avg_execution_time",
		"min_execution_time", "max_execution_time", "stddev_execution_time",
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.TestName,
			strconv.Itoa(s.Executions),
			ms(s.AvgExecutionMs),
			ms(s.MinExecutionMs),
			ms(s.MaxExecutionMs),
			ms(s.StdDevMs),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteComparisonsCSV exports the layout comparison.
func WriteComparisonsCSV(path string, comparisons []report.LayoutComparison) error {
	header := []string{"test_name", "baseline_avg_time", "variant_avg_time", "improvement_percent"}
	rows := make([][]string, 0, len(comparisons))
	for _, c := range comparisons {
		rows = append(rows, []string{
			c.TestName,
			ms(c.BaselineAvgMs),
			ms(c.VariantAvgMs),
			ms(c.ImprovementPercent),
		})
	}
	return writeCSV(path, header, rows)
}
