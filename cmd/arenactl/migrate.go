package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/arena/internal/store"
)

func (a *app) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	cmd.AddCommand(
		a.newMigrateStep("up", "Apply all pending migrations", store.Migrate),
		a.newMigrateStep("down", "Roll back the most recent migration", store.MigrateDown),
		a.newMigrateStep("status", "Print the state of every migration", store.MigrationStatus),
	)
	return cmd
}

func (a *app) newMigrateStep(use, short string, step func(context.Context, *pgxpool.Pool) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := step(cmd.Context(), pool); err != nil {
				return err
			}
			slog.Info("migrate finished", "step", use)
			return nil
		},
	}
}
