package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/fixtures"
)

// Memory is an in-memory store. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	requests []domain.CompetitionDetails
	athletes map[uuid.UUID]fixtures.AthleteData
}

// NewMemory returns a store holding ds. A nil dataset yields an empty store.
func NewMemory(ds *fixtures.Dataset) *Memory {
	m := &Memory{athletes: make(map[uuid.UUID]fixtures.AthleteData)}
	if ds != nil {
		m.load(ds)
	}
	return m
}

// Seed replaces records with the same ids and adds new ones.
func (m *Memory) Seed(_ context.Context, ds *fixtures.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.load(ds)
	return nil
}

func (m *Memory) load(ds *fixtures.Dataset) {
	byID := make(map[uuid.UUID]int, len(m.requests))
	for i, r := range m.requests {
		byID[r.ID] = i
	}
	for _, r := range ds.Requests {
		if i, ok := byID[r.ID]; ok {
			m.requests[i] = r
			continue
		}
		byID[r.ID] = len(m.requests)
		m.requests = append(m.requests, r)
	}

	// newest applications first, id as tie-breaker
	sort.SliceStable(m.requests, func(i, j int) bool {
		a, b := m.requests[i], m.requests[j]
		if !a.ApplicationTime.Equal(b.ApplicationTime) {
			return a.ApplicationTime.After(b.ApplicationTime)
		}
		return a.ID.String() < b.ID.String()
	})

	for _, a := range ds.Athletes {
		m.athletes[a.Athlete.ID] = a
	}
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) filtered(f domain.RequestFilter) []domain.CompetitionDetails {
	var out []domain.CompetitionDetails
	for _, r := range m.requests {
		if f.Status != "" && r.RequestStatus != f.Status {
			continue
		}
		if f.Level != "" && r.Level != f.Level {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CountRequests returns the number of requests matching f.
func (m *Memory) CountRequests(_ context.Context, f domain.RequestFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.filtered(f)), nil
}

// ListRequests returns one window of requests matching f.
func (m *Memory) ListRequests(_ context.Context, f domain.RequestFilter, limit, offset int) ([]domain.RepresentativeRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.filtered(f)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}

	out := make([]domain.RepresentativeRequest, 0, end-offset)
	for _, r := range rows[offset:end] {
		out = append(out, r.RepresentativeRequest)
	}
	return out, nil
}

// GetRequest returns the details of one request.
func (m *Memory) GetRequest(_ context.Context, id uuid.UUID) (*domain.CompetitionDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.requests {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Kind: "competition", ID: id.String()}
}

func (m *Memory) athlete(id uuid.UUID) (fixtures.AthleteData, error) {
	a, ok := m.athletes[id]
	if !ok {
		return a, &domain.NotFoundError{Kind: "athlete", ID: id.String()}
	}
	return a, nil
}

// GetAthlete returns an athlete profile.
func (m *Memory) GetAthlete(_ context.Context, id uuid.UUID) (*domain.Athlete, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.athlete(id)
	if err != nil {
		return nil, err
	}
	out := a.Athlete
	return &out, nil
}

// AthleteOverview returns the athlete's rank and points.
func (m *Memory) AthleteOverview(_ context.Context, id uuid.UUID) (domain.AthleteOverview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := m.athlete(id); err != nil {
		return domain.AthleteOverview{}, err
	}
	for _, r := range m.rankings() {
		if r.AthleteID == id {
			return domain.AthleteOverview{Rank: r.Rank, Points: r.Points}, nil
		}
	}
	return domain.AthleteOverview{}, &domain.NotFoundError{Kind: "athlete", ID: id.String()}
}

// AthleteParticipation returns the participation pie sections.
func (m *Memory) AthleteParticipation(_ context.Context, id uuid.UUID) ([]domain.ParticipationSlice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.athlete(id)
	return a.Participation, err
}

// AthletePointsOverTime returns the points line chart samples.
func (m *Memory) AthletePointsOverTime(_ context.Context, id uuid.UUID) ([]domain.PointsSample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.athlete(id)
	return a.PointsOverTime, err
}

// AthleteAchievements returns achievement counts.
func (m *Memory) AthleteAchievements(_ context.Context, id uuid.UUID) ([]domain.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.athlete(id)
	return a.Achievements, err
}

// AthleteHistory returns the participation history rows.
func (m *Memory) AthleteHistory(_ context.Context, id uuid.UUID) ([]domain.ParticipationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.athlete(id)
	return a.History, err
}

// Rankings returns every athlete ordered by rank.
func (m *Memory) Rankings(context.Context) ([]domain.AthleteRanking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rankings(), nil
}

func (m *Memory) rankings() []domain.AthleteRanking {
	rows := make([]domain.AthleteRanking, 0, len(m.athletes))
	for _, a := range m.athletes {
		rows = append(rows, domain.AthleteRanking{
			AthleteID:  a.Athlete.ID,
			Name:       a.Athlete.Name,
			Region:     a.Athlete.Region,
			Discipline: a.Athlete.Discipline,
			Points:     a.Points,
		})
	}
	return rank(rows)
}
