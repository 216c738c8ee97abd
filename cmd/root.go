/*
Copyright © 2026 PGLAYOUT AUTHORS
*/
package cmd

import (
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var Version = "dev"

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}
	rootCmd.Version = Version
}

var rootCmd = &cobra.Command{
	Use:          "pglayout",
	SilenceUsage: true,
	Short:        "Benchmark PostgreSQL table layouts",
	Long: `pglayout benchmarks queries against competing PostgreSQL table layouts
(partitioned vs. non-partitioned) and reports which one wins.

It generates synthetic event data with a realistic growth curve, runs each
benchmark query under EXPLAIN (ANALYZE, BUFFERS), persists the collected
metrics, and aggregates them into comparative reports.`,
	Example: `  # Create the measurement schema and both table layouts
  pglayout init --events

  # Load 10M rows into each layout
  pglayout generate --table events --rows 10000000
  pglayout generate --table events_partitioned --rows 10000000

  # Benchmark both layouts
  pglayout run --table events
  pglayout run --table events_partitioned

  # Compare
  pglayout report`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
