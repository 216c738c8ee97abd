package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"pglayout/internal/bench"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// RenderSuiteSummary prints per-query statistics after a benchmark run,
// grouped by query name in alphabetical order.
func RenderSuiteSummary(w io.Writer, summaries map[string]bench.QuerySummary) error {
	tw := &textWriter{w: w}

	tw.printf("\n%sBenchmark Summary%s\n", colorBold, colorReset)
	tw.printf("%s\n", strings.Repeat("=", 80))

	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := summaries[name]
		tw.printf("\n%s%s%s\n", colorCyan, s.QueryName, colorReset)
		tw.printf("  Iterations: %d\n", s.Iterations)
		tw.printf("  Execution time: avg=%.2fms, min=%.2fms, max=%.2fms\n",
			s.AvgExecutionMs, s.MinExecutionMs, s.MaxExecutionMs)
		tw.printf("  Buffer hit ratio: %.2f%%\n", s.AvgBufferHitRatio)
	}

	tw.printf("\n%s\n", strings.Repeat("=", 80))
	return tw.err
}

// RenderReport prints the full analysis: per-table stats, per-test stats, and
// the layout comparison.
func RenderReport(w io.Writer, tables []TableStats, tests []TestStats, comparisons []LayoutComparison, baseline, variant string) error {
	tw := &textWriter{w: w}

	tw.printf("%s\n", strings.Repeat("=", 80))
	tw.printf("%sTABLE LAYOUT PERFORMANCE REPORT%s\n", colorBold, colorReset)
	tw.printf("Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	tw.printf("%s\n", strings.Repeat("=", 80))

	tw.printf("\n1. PERFORMANCE BY TABLE\n%s\n", strings.Repeat("-", 80))
	for _, s := range tables {
		tw.printf("\nTable: %s%s%s\n", colorCyan, s.TableName, colorReset)
		tw.printf("  Tests run: %d\n", s.TestCount)
		tw.printf("  Execution time: avg=%.2fms, min=%.2fms, max=%.2fms\n",
			s.AvgExecutionMs, s.MinExecutionMs, s.MaxExecutionMs)
		tw.printf("  Avg buffers: %.0f hit, %.0f read\n", s.AvgBuffersHit, s.AvgBuffersRead)
	}

	tw.printf("\n\n2. PERFORMANCE BY TEST\n%s\n", strings.Repeat("-", 80))
	for _, s := range tests {
		tw.printf("\nTest: %s%s%s\n", colorCyan, s.TestName, colorReset)
		tw.printf("  Executions: %d\n", s.Executions)
		tw.printf("  Execution time: avg=%.2fms, min=%.2fms, max=%.2fms\n",
			s.AvgExecutionMs, s.MinExecutionMs, s.MaxExecutionMs)
		if s.Executions > 1 {
			tw.printf("  Std dev: %.2fms\n", s.StdDevMs)
		}
	}

	tw.printf("\n\n3. %s VS %s\n%s\n", strings.ToUpper(baseline), strings.ToUpper(variant), strings.Repeat("-", 80))
	if len(comparisons) == 0 {
		tw.printf("\nNo paired measurements for both layouts.\n")
	}
	for _, c := range comparisons {
		color := colorGreen
		if c.ImprovementPercent < 0 {
			color = colorRed
		}
		tw.printf("\nTest: %s%s%s\n", colorCyan, c.TestName, colorReset)
		tw.printf("  %s: %.2fms\n", baseline, c.BaselineAvgMs)
		tw.printf("  %s: %.2fms\n", variant, c.VariantAvgMs)
		tw.printf("  Improvement: %s%.2f%%%s\n", color, c.ImprovementPercent, colorReset)
	}

	tw.printf("\n%s\n", strings.Repeat("=", 80))
	return tw.err
}
