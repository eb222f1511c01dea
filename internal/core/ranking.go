package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/arena/internal/domain"
)

// RankingCacheStatus is a snapshot of the rating cache for monitoring.
type RankingCacheStatus struct {
	Athletes    int       `json:"athletes"`
	RefreshedAt time.Time `json:"refreshed_at"`
	LastError   string    `json:"last_error,omitempty"`
}

type rankingCache struct {
	mu          sync.RWMutex
	rows        []domain.AthleteRanking
	loaded      bool
	refreshedAt time.Time
	lastErr     error
}

func (c *rankingCache) get() ([]domain.AthleteRanking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rows, c.loaded
}

func (c *rankingCache) set(rows []domain.AthleteRanking, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = err
	if err != nil {
		return
	}
	c.rows = rows
	c.loaded = true
	c.refreshedAt = time.Now()
}

// RefreshRankings reloads the athlete rating from the store. A failed refresh
// keeps the previous rating.
func (s *Service) RefreshRankings(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	rows, err := s.store.Rankings(ctx)
	if err != nil {
		err = fmt.Errorf("refresh rankings: %w", err)
	}
	s.ranking.set(rows, err)
	return err
}

// Rankings returns the cached athlete rating, loading it on first use.
func (s *Service) Rankings(ctx context.Context) ([]domain.AthleteRanking, error) {
	if rows, ok := s.ranking.get(); ok {
		return rows, nil
	}
	if err := s.RefreshRankings(ctx); err != nil {
		return nil, err
	}
	rows, _ := s.ranking.get()
	return rows, nil
}

// RankingStatus reports the state of the rating cache.
func (s *Service) RankingStatus() RankingCacheStatus {
	s.ranking.mu.RLock()
	defer s.ranking.mu.RUnlock()

	st := RankingCacheStatus{
		Athletes:    len(s.ranking.rows),
		RefreshedAt: s.ranking.refreshedAt,
	}
	if s.ranking.lastErr != nil {
		st.LastError = s.ranking.lastErr.Error()
	}
	return st
}
