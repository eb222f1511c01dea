package core

// scheduler.go provides background job scheduling for maintenance tasks.
//
// Currently refreshes the cached athlete rating on a cron schedule. The
// refresher logs progress and errors but never stops the application when
// an individual refresh fails; the previous rating stays in place.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRefreshSpec refreshes the rating every five minutes.
const DefaultRefreshSpec = "*/5 * * * *"

// RankingRefresher periodically reloads the athlete rating cache.
type RankingRefresher struct {
	svc  *Service
	cron *cron.Cron
	spec string
}

// NewRankingRefresher schedules rating refreshes on the standard five-field
// cron spec. An empty spec selects DefaultRefreshSpec.
func NewRankingRefresher(svc *Service, spec string) (*RankingRefresher, error) {
	if spec == "" {
		spec = DefaultRefreshSpec
	}

	r := &RankingRefresher{svc: svc, cron: cron.New(), spec: spec}
	if _, err := r.cron.AddFunc(spec, func() { r.run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return r, nil
}

// Start runs one refresh immediately, then hands off to the cron schedule.
func (r *RankingRefresher) Start(ctx context.Context) {
	slog.Info("ranking refresher started", "schedule", r.spec)
	r.run(ctx)
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish or ctx
// to expire.
func (r *RankingRefresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("ranking refresher stopped")
	case <-ctx.Done():
		slog.Warn("ranking refresher stop timed out")
	}
}

func (r *RankingRefresher) run(ctx context.Context) {
	start := time.Now()
	if err := r.svc.RefreshRankings(ctx); err != nil {
		slog.Error("ranking refresh failed", "error", err)
		return
	}
	slog.Info("ranking refresh completed",
		"athletes", r.svc.RankingStatus().Athletes,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
