package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/arena/internal/config"
	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/fixtures"
	"github.com/JonMunkholm/arena/internal/logging"
	"github.com/JonMunkholm/arena/internal/store"
	"github.com/JonMunkholm/arena/internal/web"
)

func main() {
	// Overload lets a local .env win over the shell environment
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
		"page_size", cfg.Display.PageSize,
		"export_max_concurrent", cfg.Export.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	st, pool, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	service := core.NewService(st, core.Options{PageSize: cfg.Display.PageSize})

	refresher, err := core.NewRankingRefresher(service, cfg.Display.RankingRefresh)
	if err != nil {
		slog.Error("failed to schedule ranking refresh", "error", err)
		os.Exit(1)
	}
	refresher.Start(ctx)

	exports := core.NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWait)
	server := web.NewServer(cfg, service, exports)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = serve(sigCtx, server, cfg.Server.ShutdownTimeout, func(shutdownCtx context.Context) {
		refresher.Stop(shutdownCtx)

		if status := exports.Status(); status.Active > 0 {
			slog.Info("waiting for exports to complete", "active", status.Active)
			if err := exports.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("exports did not complete in time", "error", err)
			}
		}
	})
	if err != nil {
		slog.Error("server failed", "error", err)
		if pool != nil {
			pool.Close()
		}
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore builds the configured data layer. The pool is nil for the
// memory driver.
func openStore(ctx context.Context, cfg *config.Config) (core.Store, *pgxpool.Pool, error) {
	if cfg.Store.Driver == config.DriverMemory {
		ds, err := fixtures.LoadPath(cfg.Store.FixturesPath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("memory store loaded",
			"requests", len(ds.Requests),
			"athletes", len(ds.Athletes),
		)
		return store.NewMemory(ds), nil, nil
	}

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("connected to database", "name", store.DatabaseName(cfg.Database.URL))

	if cfg.Database.MigrateOnStart {
		if err := store.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Info("migrations applied")
	}

	pg := store.NewPostgres(pool)
	if cfg.Store.SeedOnStart {
		ds, err := fixtures.LoadPath(cfg.Store.FixturesPath)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := pg.Seed(ctx, ds); err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Info("fixtures seeded", "requests", len(ds.Requests), "athletes", len(ds.Athletes))
	}
	return pg, pool, nil
}
