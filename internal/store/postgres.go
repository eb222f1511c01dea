package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/fixtures"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Postgres is a store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
	db   DBTX
}

// NewPostgres returns a store using pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool, db: pool}
}

// Ping checks database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}

const requestFilter = `
WHERE ($1::text = '' OR r.request_status = $1::text)
  AND ($2::text = '' OR r.level = $2::text)`

// CountRequests returns the number of requests matching f.
func (p *Postgres) CountRequests(ctx context.Context, f domain.RequestFilter) (int, error) {
	var n int
	err := p.db.QueryRow(ctx,
		`SELECT count(*) FROM representative_requests r`+requestFilter,
		string(f.Status), string(f.Level),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}

// ListRequests returns one window of requests matching f, newest first.
func (p *Postgres) ListRequests(ctx context.Context, f domain.RequestFilter, limit, offset int) ([]domain.RepresentativeRequest, error) {
	rows, err := p.db.Query(ctx, `
SELECT r.id, r.name, d.id, d.name, r.level, r.request_status, r.application_time, r.cover
FROM representative_requests r
JOIN disciplines d ON d.id = r.discipline_id`+requestFilter+`
ORDER BY r.application_time DESC, r.id
LIMIT $3 OFFSET $4`,
		string(f.Status), string(f.Level), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []domain.RepresentativeRequest
	for rows.Next() {
		var (
			r           domain.RepresentativeRequest
			id, discID  pgtype.UUID
			level, stat string
		)
		if err := rows.Scan(&id, &r.Name, &discID, &r.Discipline.Name, &level, &stat, &r.ApplicationTime, &r.Cover); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		r.ID = id.Bytes
		r.Discipline.ID = discID.Bytes
		r.Level = domain.CompetitionLevel(level)
		r.RequestStatus = domain.RequestStatus(stat)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return out, nil
}

// GetRequest returns the details of one request.
func (p *Postgres) GetRequest(ctx context.Context, id uuid.UUID) (*domain.CompetitionDetails, error) {
	var (
		c           domain.CompetitionDetails
		discID      pgtype.UUID
		level, stat string
		start, end  pgtype.Date
	)
	err := p.db.QueryRow(ctx, `
SELECT r.name, d.id, d.name, r.level, r.request_status, r.application_time, r.cover,
       r.location, r.start_date, r.end_date, r.organizer, r.age_group, r.description
FROM representative_requests r
JOIN disciplines d ON d.id = r.discipline_id
WHERE r.id = $1`, pgUUID(id)).Scan(
		&c.Name, &discID, &c.Discipline.Name, &level, &stat, &c.ApplicationTime, &c.Cover,
		&c.Location, &start, &end, &c.Organizer, &c.AgeGroup, &c.Description,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "competition", ID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("get request %s: %w", id, err)
	}

	c.ID = id
	c.Discipline.ID = discID.Bytes
	c.Level = domain.CompetitionLevel(level)
	c.RequestStatus = domain.RequestStatus(stat)
	if start.Valid {
		c.StartDate = start.Time
	}
	if end.Valid {
		c.EndDate = end.Time
	}
	return &c, nil
}

// GetAthlete returns an athlete profile.
func (p *Postgres) GetAthlete(ctx context.Context, id uuid.UUID) (*domain.Athlete, error) {
	a := domain.Athlete{ID: id}
	err := p.db.QueryRow(ctx,
		`SELECT name, region, discipline FROM athletes WHERE id = $1`, pgUUID(id),
	).Scan(&a.Name, &a.Region, &a.Discipline)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "athlete", ID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("get athlete %s: %w", id, err)
	}
	return &a, nil
}

const rankingQuery = `
SELECT RANK() OVER (ORDER BY points DESC) AS rank, id, name, region, discipline, points
FROM athletes`

// AthleteOverview returns the athlete's rank and points.
func (p *Postgres) AthleteOverview(ctx context.Context, id uuid.UUID) (domain.AthleteOverview, error) {
	var o domain.AthleteOverview
	err := p.db.QueryRow(ctx,
		`SELECT rank, points FROM (`+rankingQuery+`) ranked WHERE id = $1`, pgUUID(id),
	).Scan(&o.Rank, &o.Points)
	if errors.Is(err, pgx.ErrNoRows) {
		return o, &domain.NotFoundError{Kind: "athlete", ID: id.String()}
	}
	if err != nil {
		return o, fmt.Errorf("athlete overview %s: %w", id, err)
	}
	return o, nil
}

// Rankings returns every athlete ordered by rank.
func (p *Postgres) Rankings(ctx context.Context) ([]domain.AthleteRanking, error) {
	rows, err := p.db.Query(ctx, rankingQuery+` ORDER BY rank, name, id`)
	if err != nil {
		return nil, fmt.Errorf("rankings: %w", err)
	}
	defer rows.Close()

	var out []domain.AthleteRanking
	for rows.Next() {
		var (
			r  domain.AthleteRanking
			id pgtype.UUID
		)
		if err := rows.Scan(&r.Rank, &id, &r.Name, &r.Region, &r.Discipline, &r.Points); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		r.AthleteID = id.Bytes
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rankings: %w", err)
	}
	return out, nil
}

// AthleteParticipation returns the participation pie sections.
func (p *Postgres) AthleteParticipation(ctx context.Context, id uuid.UUID) ([]domain.ParticipationSlice, error) {
	return queryAthlete(ctx, p, id, "participation",
		`SELECT label, value, color FROM athlete_participation WHERE athlete_id = $1 ORDER BY position`,
		func(rows pgx.Rows) (domain.ParticipationSlice, error) {
			var s domain.ParticipationSlice
			err := rows.Scan(&s.Label, &s.Value, &s.Color)
			return s, err
		})
}

// AthletePointsOverTime returns the points line chart samples.
func (p *Postgres) AthletePointsOverTime(ctx context.Context, id uuid.UUID) ([]domain.PointsSample, error) {
	return queryAthlete(ctx, p, id, "points",
		`SELECT period, points FROM athlete_points WHERE athlete_id = $1 ORDER BY position`,
		func(rows pgx.Rows) (domain.PointsSample, error) {
			var s domain.PointsSample
			err := rows.Scan(&s.Period, &s.Points)
			return s, err
		})
}

// AthleteAchievements returns achievement counts.
func (p *Postgres) AthleteAchievements(ctx context.Context, id uuid.UUID) ([]domain.Achievement, error) {
	return queryAthlete(ctx, p, id, "achievements",
		`SELECT title, count FROM athlete_achievements WHERE athlete_id = $1 ORDER BY position`,
		func(rows pgx.Rows) (domain.Achievement, error) {
			var a domain.Achievement
			err := rows.Scan(&a.Title, &a.Count)
			return a, err
		})
}

// AthleteHistory returns the participation history rows.
func (p *Postgres) AthleteHistory(ctx context.Context, id uuid.UUID) ([]domain.ParticipationRecord, error) {
	return queryAthlete(ctx, p, id, "history",
		`SELECT competition, period, place, points FROM athlete_history WHERE athlete_id = $1 ORDER BY position`,
		func(rows pgx.Rows) (domain.ParticipationRecord, error) {
			var r domain.ParticipationRecord
			err := rows.Scan(&r.Competition, &r.Period, &r.Place, &r.Points)
			return r, err
		})
}

// queryAthlete runs a per-athlete section query. An unknown athlete is a
// NotFoundError rather than an empty section.
func queryAthlete[T any](ctx context.Context, p *Postgres, id uuid.UUID, section, sql string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	var exists bool
	if err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM athletes WHERE id = $1)`, pgUUID(id)).Scan(&exists); err != nil {
		return nil, fmt.Errorf("athlete %s %s: %w", id, section, err)
	}
	if !exists {
		return nil, &domain.NotFoundError{Kind: "athlete", ID: id.String()}
	}

	rows, err := p.db.Query(ctx, sql, pgUUID(id))
	if err != nil {
		return nil, fmt.Errorf("athlete %s %s: %w", id, section, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan athlete %s: %w", section, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("athlete %s %s: %w", id, section, err)
	}
	return out, nil
}

// Seed upserts ds in a single transaction. Athlete sections are replaced
// wholesale so reseeding is idempotent.
func (p *Postgres) Seed(ctx context.Context, ds *fixtures.Dataset) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	b := &pgx.Batch{}
	for _, d := range ds.Disciplines {
		b.Queue(`
INSERT INTO disciplines (id, name) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, pgUUID(d.ID), d.Name)
	}

	for _, r := range ds.Requests {
		b.Queue(`
INSERT INTO representative_requests
    (id, name, discipline_id, level, request_status, application_time, cover,
     location, start_date, end_date, organizer, age_group, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    discipline_id = EXCLUDED.discipline_id,
    level = EXCLUDED.level,
    request_status = EXCLUDED.request_status,
    application_time = EXCLUDED.application_time,
    cover = EXCLUDED.cover,
    location = EXCLUDED.location,
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    organizer = EXCLUDED.organizer,
    age_group = EXCLUDED.age_group,
    description = EXCLUDED.description`,
			pgUUID(r.ID), r.Name, pgUUID(r.Discipline.ID), string(r.Level), string(r.RequestStatus),
			r.ApplicationTime, r.Cover, r.Location, pgDate(r.StartDate), pgDate(r.EndDate),
			r.Organizer, r.AgeGroup, r.Description,
		)
	}

	for _, a := range ds.Athletes {
		queueAthlete(b, a)
	}

	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func queueAthlete(b *pgx.Batch, a fixtures.AthleteData) {
	id := pgUUID(a.Athlete.ID)

	b.Queue(`
INSERT INTO athletes (id, name, region, discipline, points) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    region = EXCLUDED.region,
    discipline = EXCLUDED.discipline,
    points = EXCLUDED.points`,
		id, a.Athlete.Name, a.Athlete.Region, a.Athlete.Discipline, a.Points)

	for _, table := range []string{"athlete_participation", "athlete_points", "athlete_achievements", "athlete_history"} {
		b.Queue(`DELETE FROM `+table+` WHERE athlete_id = $1`, id)
	}

	for i, s := range a.Participation {
		b.Queue(`INSERT INTO athlete_participation (athlete_id, position, label, value, color) VALUES ($1, $2, $3, $4, $5)`,
			id, i, s.Label, s.Value, s.Color)
	}
	for i, s := range a.PointsOverTime {
		b.Queue(`INSERT INTO athlete_points (athlete_id, position, period, points) VALUES ($1, $2, $3, $4)`,
			id, i, s.Period, s.Points)
	}
	for i, s := range a.Achievements {
		b.Queue(`INSERT INTO athlete_achievements (athlete_id, position, title, count) VALUES ($1, $2, $3, $4)`,
			id, i, s.Title, s.Count)
	}
	for i, s := range a.History {
		b.Queue(`INSERT INTO athlete_history (athlete_id, position, competition, period, place, points) VALUES ($1, $2, $3, $4, $5, $6)`,
			id, i, s.Competition, s.Period, s.Place, s.Points)
	}
}
