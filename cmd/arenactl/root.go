package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/arena/internal/config"
	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/fixtures"
	"github.com/JonMunkholm/arena/internal/logging"
	"github.com/JonMunkholm/arena/internal/store"
)

var errNeedsPostgres = errors.New("command requires STORE_DRIVER=postgres")

// app carries the configuration shared by every subcommand.
type app struct {
	getenv func(string) string
	cfg    *config.Config
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv}

	root := &cobra.Command{
		Use:          "arenactl",
		Short:        "Administer the competition dashboard",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if envFile != "" {
				if err := godotenv.Overload(envFile); err != nil {
					return fmt.Errorf("load %s: %w", envFile, err)
				}
			}

			cfg, err := config.LoadFrom(a.getenv)
			if err != nil {
				return err
			}
			a.cfg = cfg

			slog.SetDefault(logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format))
			return nil
		},
	}

	root.PersistentFlags().String("env-file", "", "Load variables from this .env file first")

	root.AddCommand(
		a.newMigrateCmd(),
		a.newSeedCmd(),
		a.newResetCmd(),
		a.newExportCmd(),
	)
	return root
}

// connect opens the PostgreSQL pool of a postgres-only command.
func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if a.cfg.Store.Driver != config.DriverPostgres {
		return nil, errNeedsPostgres
	}
	pool, err := store.Connect(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	slog.Debug("connected to database", "name", store.DatabaseName(a.cfg.Database.URL))
	return pool, nil
}

// service builds a read service over the configured store. The returned
// func releases it.
func (a *app) service(ctx context.Context) (*core.Service, func(), error) {
	opts := core.Options{PageSize: a.cfg.Display.PageSize}

	if a.cfg.Store.Driver == config.DriverMemory {
		ds, err := fixtures.LoadPath(a.cfg.Store.FixturesPath)
		if err != nil {
			return nil, nil, err
		}
		return core.NewService(store.NewMemory(ds), opts), func() {}, nil
	}

	pool, err := a.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	return core.NewService(store.NewPostgres(pool), opts), pool.Close, nil
}

// output opens path for writing; "-" is the command's stdout.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
