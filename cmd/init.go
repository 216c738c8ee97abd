/*
Copyright © 2026 PGLAYOUT AUTHORS
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pglayout/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the measurement schema",
	Long: `Create the performance_metrics table that 'pglayout run' writes into.

With --events, also create the two table layouts under comparison: a plain
events table and an events_partitioned table with one range partition per
month, covering the past --months months.`,
	Example: `  # Measurement table only
  pglayout init

  # Plus both event table layouts with 13 months of partitions
  pglayout init --events --months 13`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, _ := cmd.Flags().GetBool("events")
		months, _ := cmd.Flags().GetInt("months")

		ctx := cmd.Context()
		conn, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close(context.Background())

		if err := store.Init(ctx, conn); err != nil {
			return err
		}
		fmt.Println("Created performance_metrics")

		if events {
			if err := store.CreateEventLayouts(ctx, conn, months); err != nil {
				return err
			}
			fmt.Printf("Created events and events_partitioned (%d months of partitions)\n", months)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	addConnFlags(initCmd)
	initCmd.Flags().Bool("events", false, "Also create the event table layouts")
	initCmd.Flags().Int("months", 13, "Months of partitions for events_partitioned")
}
