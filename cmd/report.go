/*
Copyright © 2026 PGLAYOUT AUTHORS
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pglayout/internal/export"
	"pglayout/internal/report"
	"pglayout/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze persisted benchmark metrics",
	Long: `Aggregate the rows in performance_metrics into a comparative report:
per-table statistics, per-test statistics, and a baseline-vs-variant layout
comparison with improvement percentages.

Formats: text prints to stdout; json and csv write analysis files into the
output directory; all does everything.`,
	Example: `  # Print the report
  pglayout report

  # Export every format, plus the raw metric rows
  pglayout report --format all --export-raw

  # Compare different layout labels
  pglayout report --baseline events --variant events_hash`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		baseline, _ := cmd.Flags().GetString("baseline")
		variant, _ := cmd.Flags().GetString("variant")
		testName, _ := cmd.Flags().GetString("test-name")
		exportRaw, _ := cmd.Flags().GetBool("export-raw")
		outDir, _ := cmd.Flags().GetString("output-dir")
		limit, _ := cmd.Flags().GetInt("limit")

		switch format {
		case "text", "json", "csv", "all":
		default:
			return fmt.Errorf("invalid output format %q: must be \"text\", \"json\", \"csv\", or \"all\"", format)
		}

		ctx := cmd.Context()
		conn, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close(context.Background())

		metrics, err := store.FetchMetrics(ctx, conn, testName, limit)
		if err != nil {
			return err
		}
		if len(metrics) == 0 {
			return fmt.Errorf("no metrics found; run 'pglayout run' first")
		}

		tables := report.ByTable(metrics)
		tests := report.ByTest(metrics)
		comparisons := report.CompareLayouts(metrics, baseline, variant)

		if format == "text" || format == "all" {
			if err := report.RenderReport(os.Stdout, tables, tests, comparisons, baseline, variant); err != nil {
				return err
			}
		}

		if format == "json" || format == "all" {
			exports := map[string]any{
				"table_analysis.json":      tables,
				"test_analysis.json":       tests,
				"comparison_analysis.json": comparisons,
			}
			for name, v := range exports {
				path := filepath.Join(outDir, name)
				if err := export.WriteJSON(path, v); err != nil {
					return err
				}
				fmt.Printf("Exported %s\n", path)
			}
		}

		if format == "csv" || format == "all" {
			if err := export.WriteTableStatsCSV(filepath.Join(outDir, "table_analysis.csv"), tables); err != nil {
				return err
			}
			if err := export.WriteTestStatsCSV(filepath.Join(outDir, "test_analysis.csv"), tests); err != nil {
				return err
			}
			if err := export.WriteComparisonsCSV(filepath.Join(outDir, "comparison_analysis.csv"), comparisons); err != nil {
				return err
			}
			fmt.Printf("Exported CSV analysis to %s\n", outDir)
		}

		if exportRaw {
			if err := export.WriteJSON(filepath.Join(outDir, "raw_metrics.json"), metrics); err != nil {
				return err
			}
			if err := export.WriteMetricsCSV(filepath.Join(outDir, "raw_metrics.csv"), metrics); err != nil {
				return err
			}
			fmt.Printf("Exported %d raw metric rows to %s\n", len(metrics), outDir)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addConnFlags(reportCmd)
	reportCmd.Flags().StringP("format", "f", "text", "Output format: text, json, csv, all")
	reportCmd.Flags().String("baseline", "events", "Baseline table label")
	reportCmd.Flags().String("variant", "events_partitioned", "Variant table label")
	reportCmd.Flags().String("test-name", "", "Filter by test name")
	reportCmd.Flags().Bool("export-raw", false, "Also export raw metric rows")
	reportCmd.Flags().String("output-dir", "results", "Directory for exported files")
	reportCmd.Flags().Int("limit", 0, "Cap fetched metric rows (0 = no limit)")
}
