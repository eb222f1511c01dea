package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/arena/internal/fixtures"
	"github.com/JonMunkholm/arena/internal/store"
)

func (a *app) newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a fixture dataset into PostgreSQL",
		Long: "Loads the YAML fixture dataset (the embedded one unless --fixtures is set) " +
			"and upserts its disciplines, competition requests and athletes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("fixtures")
			if path == "" {
				path = a.cfg.Store.FixturesPath
			}

			ds, err := fixtures.LoadPath(path)
			if err != nil {
				return err
			}

			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := store.NewPostgres(pool).Seed(cmd.Context(), ds); err != nil {
				return err
			}
			slog.Info("fixtures seeded",
				"disciplines", len(ds.Disciplines),
				"requests", len(ds.Requests),
				"athletes", len(ds.Athletes),
			)
			return nil
		},
	}

	cmd.Flags().String("fixtures", "", "YAML dataset to load (default: embedded)")
	return cmd
}
