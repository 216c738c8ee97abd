/*
Copyright © 2026 PGLAYOUT AUTHORS
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pglayout/internal/gen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic event data",
	Long: `Generate synthetic e-commerce events into a target table.

By default rows are distributed over the time range with increasing density
toward the present, approximating organic traffic growth. The target table is
ANALYZEd afterwards so the planner works from fresh statistics.`,
	Example: `  # 10M rows over the past year into the plain layout
  pglayout generate --table events --rows 10000000

  # Same volume into the partitioned layout
  pglayout generate --table events_partitioned --rows 10000000

  # Evenly distributed rows over 90 days
  pglayout generate --rows 1000000 --days 90 --uniform`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, _ := cmd.Flags().GetInt("rows")
		table, _ := cmd.Flags().GetString("table")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		days, _ := cmd.Flags().GetInt("days")
		uniform, _ := cmd.Flags().GetBool("uniform")
		seed, _ := cmd.Flags().GetInt64("seed")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		conn, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close(context.Background())

		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		generator := gen.New(conn, os.Stdout, batchSize, seed)
		return generator.Run(ctx, table, rows, days, uniform)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addConnFlags(generateCmd)
	generateCmd.Flags().Int("rows", 10_000_000, "Total rows to generate")
	generateCmd.Flags().StringP("table", "t", "events", "Target table")
	generateCmd.Flags().Int("batch-size", 10_000, "Rows per insert batch")
	generateCmd.Flags().Int("days", 365, "Days to spread data over")
	generateCmd.Flags().Bool("uniform", false, "Uniform distribution instead of growth pattern")
	generateCmd.Flags().Int64("seed", 0, "Random seed (0 picks one)")
}
