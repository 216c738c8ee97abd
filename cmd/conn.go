/*
Copyright © 2026 PGLAYOUT AUTHORS
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"pglayout/internal/profile"
)

func addConnFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("db", "d", "", "PostgreSQL connection string")
	cmd.Flags().StringP("profile", "p", "", "Use named profile from config")
	cmd.Flags().String("host", "localhost", "PostgreSQL host")
	cmd.Flags().Int("port", 5432, "PostgreSQL port")
	cmd.Flags().String("database", "perf_analysis", "Database name")
	cmd.Flags().String("user", "postgres", "PostgreSQL user")
	cmd.Flags().String("password", "postgres", "PostgreSQL password")
	cmd.MarkFlagsMutuallyExclusive("db", "profile")
}

func connect(ctx context.Context, cmd *cobra.Command) (*pgx.Conn, error) {
	db, _ := cmd.Flags().GetString("db")
	profileName, _ := cmd.Flags().GetString("profile")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	database, _ := cmd.Flags().GetString("database")
	user, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")

	connStr, err := profile.ResolveConnStr(db, profileName, profile.ConnParams{
		Host:     host,
		Port:     port,
		Database: database,
		User:     user,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return conn, nil
}
