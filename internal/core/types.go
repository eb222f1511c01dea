package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/fixtures"
	"github.com/JonMunkholm/arena/internal/pagination"
)

// Store is the data layer the service reads from.
// Satisfied by both *store.Postgres and *store.Memory.
type Store interface {
	Ping(ctx context.Context) error

	CountRequests(ctx context.Context, f domain.RequestFilter) (int, error)
	ListRequests(ctx context.Context, f domain.RequestFilter, limit, offset int) ([]domain.RepresentativeRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.CompetitionDetails, error)

	GetAthlete(ctx context.Context, id uuid.UUID) (*domain.Athlete, error)
	AthleteOverview(ctx context.Context, id uuid.UUID) (domain.AthleteOverview, error)
	AthleteParticipation(ctx context.Context, id uuid.UUID) ([]domain.ParticipationSlice, error)
	AthletePointsOverTime(ctx context.Context, id uuid.UUID) ([]domain.PointsSample, error)
	AthleteAchievements(ctx context.Context, id uuid.UUID) ([]domain.Achievement, error)
	AthleteHistory(ctx context.Context, id uuid.UUID) ([]domain.ParticipationRecord, error)
	Rankings(ctx context.Context) ([]domain.AthleteRanking, error)

	Seed(ctx context.Context, ds *fixtures.Dataset) error
}

// CompetitionPage is one page of the competition card grid.
type CompetitionPage struct {
	Filter   domain.RequestFilter
	Pager    *pagination.Pager
	Requests []domain.RepresentativeRequest
}

// HealthStatus is reported by the health endpoint.
type HealthStatus struct {
	Status  string              `json:"status"`
	Store   string              `json:"store"`
	Export  ExportLimiterStatus `json:"export"`
	Ranking RankingCacheStatus  `json:"ranking"`
}
