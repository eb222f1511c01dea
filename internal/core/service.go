package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/pagination"
)

// QueryTimeout bounds a single page load against the store.
var QueryTimeout = 15 * time.Second

// Options tunes a Service. Zero values select defaults.
type Options struct {
	PageSize int // Competition cards per page (default: 10)
}

// Service provides the core business logic behind the dashboard pages.
type Service struct {
	store    Store
	pageSize int
	ranking  *rankingCache
}

// NewService creates a new Service instance reading from store.
func NewService(store Store, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultPageSize
	}
	return &Service{
		store:    store,
		pageSize: opts.PageSize,
		ranking:  &rankingCache{},
	}
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ListCompetitions returns one page of representative requests matching f.
// Out-of-range pages are clamped to the nearest valid page.
func (s *Service) ListCompetitions(ctx context.Context, f domain.RequestFilter, page int) (*CompetitionPage, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	total, err := s.store.CountRequests(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	pager, err := pagination.New(total, s.pageSize)
	if err != nil {
		return nil, err
	}
	pager.SetPage(page)

	var requests []domain.RepresentativeRequest
	if total > 0 {
		requests, err = s.store.ListRequests(ctx, f, pager.Size(), pager.Offset())
		if err != nil {
			return nil, fmt.Errorf("list competitions: %w", err)
		}
	}

	return &CompetitionPage{Filter: f, Pager: pager, Requests: requests}, nil
}

// GetCompetition returns the details behind one request card.
func (s *Service) GetCompetition(ctx context.Context, rawID string) (*domain.CompetitionDetails, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	return s.store.GetRequest(ctx, id)
}

// AthleteStatistics loads every section of an athlete's statistics page
// concurrently. Any failing section fails the whole load.
func (s *Service) AthleteStatistics(ctx context.Context, rawID string) (*domain.AthleteStatistics, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	stats := &domain.AthleteStatistics{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := s.store.GetAthlete(gctx, id)
		if err != nil {
			return err
		}
		stats.Athlete = *a
		return nil
	})
	g.Go(func() (err error) {
		stats.Overview, err = s.store.AthleteOverview(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats.Participation, err = s.store.AthleteParticipation(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats.PointsOverTime, err = s.store.AthletePointsOverTime(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats.Achievements, err = s.store.AthleteAchievements(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats.History, err = s.store.AthleteHistory(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("athlete statistics %s: %w", id, err)
	}
	return stats, nil
}
