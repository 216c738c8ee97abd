/*
Copyright © 2026 PGLAYOUT AUTHORS
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pglayout/internal/bench"
	"pglayout/internal/export"
	"pglayout/internal/report"
	"pglayout/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite",
	Long: `Run each benchmark query under EXPLAIN (ANALYZE, BUFFERS, FORMAT JSON) and
collect execution timing and buffer-access metrics.

Queries run strictly one after another so buffer-hit counters are not
contaminated by concurrent activity. Each query runs the configured number of
iterations; a single failed trial is reported and skipped without aborting the
suite. Results are printed, exported to JSON (and optionally CSV), and saved
to the performance_metrics table. Per-query summaries are exported next to
each records file under a derived "-summary" name.

The built-in suite targets the events table shape produced by 'pglayout
generate'; use --queries to supply your own statements, delimited by
"-- Query <name>" comment headers.`,
	Example: `  # Benchmark the non-partitioned layout
  pglayout run --table events --iterations 5

  # Benchmark the partitioned layout with a custom suite
  pglayout run --table events_partitioned --queries suite.sql

  # Run a single query from the suite, skip the database save
  pglayout run --filter "Hourly aggregation" --no-store`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		iterations, _ := cmd.Flags().GetInt("iterations")
		table, _ := cmd.Flags().GetString("table")
		queriesFile, _ := cmd.Flags().GetString("queries")
		filter, _ := cmd.Flags().GetString("filter")
		output, _ := cmd.Flags().GetString("output")
		csvPath, _ := cmd.Flags().GetString("csv")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noStore, _ := cmd.Flags().GetBool("no-store")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		conn, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close(context.Background())

		queries := bench.DefaultSuite(table)
		if queriesFile != "" {
			queries, err = bench.LoadQueries(queriesFile)
			if err != nil {
				return err
			}
		}
		queries = bench.FilterQueries(queries, filter)
		if len(queries) == 0 {
			return fmt.Errorf("no queries match filter %q", filter)
		}

		runner := bench.NewRunner(conn, os.Stdout, timeout)
		records, err := runner.RunSuite(ctx, queries, iterations)
		if err != nil {
			return err
		}

		summaries := bench.Summarize(records)
		if err := report.RenderSuiteSummary(os.Stdout, summaries); err != nil {
			return err
		}

		if output != "" {
			if err := export.WriteJSON(output, records); err != nil {
				return err
			}
			fmt.Printf("Results saved to %s\n", output)

			summaryPath := export.SummaryPath(output)
			if err := export.WriteJSON(summaryPath, summaries); err != nil {
				return err
			}
			fmt.Printf("Summary saved to %s\n", summaryPath)
		}
		if csvPath != "" {
			if err := export.WriteRecordsCSV(csvPath, records); err != nil {
				return err
			}
			fmt.Printf("CSV results saved to %s\n", csvPath)

			summaryCSV := export.SummaryPath(csvPath)
			if err := export.WriteSummariesCSV(summaryCSV, summaries); err != nil {
				return err
			}
			fmt.Printf("Summary CSV saved to %s\n", summaryCSV)
		}

		if !noStore {
			// A failed save loses durability, not the results already
			// exported above, so warn instead of failing the run.
			written, err := store.SaveRecords(ctx, conn, records, table)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			} else {
				fmt.Printf("Saved %d results to performance_metrics\n", written)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addConnFlags(runCmd)
	runCmd.Flags().IntP("iterations", "i", 3, "Iterations per query")
	runCmd.Flags().StringP("table", "t", "events", "Table label the suite targets")
	runCmd.Flags().StringP("queries", "q", "", "SQL file with named queries")
	runCmd.Flags().String("filter", "", "Run only the query with this name")
	runCmd.Flags().StringP("output", "o", "results/benchmark-results.json", "Output JSON file")
	runCmd.Flags().String("csv", "", "Optional CSV output file")
	runCmd.Flags().Duration("timeout", 0, "Per-trial timeout (0 disables)")
	runCmd.Flags().Bool("no-store", false, "Skip saving results to performance_metrics")
}
