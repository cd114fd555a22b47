// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/lti-service/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := migrationProvider(cmd)
		if err != nil {
			return err
		}

		results, err := provider.Up(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range results {
			cmd.Printf("applied %s\n", r.Source.Path)
		}
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := migrationProvider(cmd)
		if err != nil {
			return err
		}

		result, err := provider.Down(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("rolled back %s\n", result.Source.Path)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := migrationProvider(cmd)
		if err != nil {
			return err
		}

		statuses, err := provider.Status(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
		for _, s := range statuses {
			appliedAt := "pending"
			if s.State == goose.StateApplied {
				appliedAt = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\n", s.Source.Path, appliedAt)
		}
		return w.Flush()
	},
}

// migrationProvider opens the database named by --dsn and wraps it in a
// goose provider backed by the embedded migration files.
func migrationProvider(cmd *cobra.Command) (*goose.Provider, error) {
	dsn, _ := cmd.Flags().GetString("dsn")

	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid dsn: %w", err)
	}

	db := stdlib.OpenDB(*config)
	if err := db.PingContext(cmd.Context()); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations)
}

func init() {
	migrateCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN connection string")
	_ = migrateCmd.MarkPersistentFlagRequired("dsn")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
