package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"bookcatalog/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the book catalog database schema",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("dir", defaultMigrationsDir, "directory holding the goose migrations")

	rootCmd.AddCommand(
		dbCommand("up", "Apply all pending migrations", "Migrations applied successfully", goose.Up),
		dbCommand("down", "Roll back the latest migration", "Migrations rolled back successfully", goose.Down),
		dbCommand("status", "Print the status of every migration", "", goose.Status),
		createCommand(),
	)
	return rootCmd
}

func dbCommand(use, short, done string, run func(*sql.DB, string, ...goose.OptionsFunc) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := newMigrateConfig(cmd.Flags())
			if err != nil {
				return err
			}

			db, closeDB, err := openDB(cmd.Context(), cfg.dsn())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}
			if err := run(db, cfg.migrationsDir()); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			if done != "" {
				fmt.Fprintln(cmd.OutOrStdout(), done)
			}
			return nil
		},
	}
}

func createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new SQL migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newMigrateConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if err := goose.Create(nil, cfg.migrationsDir(), args[0], "sql"); err != nil {
				return fmt.Errorf("create: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migration created: %s\n", args[0])
			return nil
		},
	}
}

func openDB(ctx context.Context, dsn string) (*sql.DB, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database (%s): %w", config.RedactDSN(dsn), err)
	}
	db := stdlib.OpenDBFromPool(pool)
	return db, func() {
		if err := db.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
		pool.Close()
	}, nil
}
