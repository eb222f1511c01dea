// Package fixtures loads the seed dataset used by the in-memory store, the
// test suites, and the seed command.
package fixtures

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/arena/internal/domain"
)

//go:embed seed.yaml covers/*.png
var embedded embed.FS

// DefaultFile is the dataset file name inside the embedded filesystem.
const DefaultFile = "seed.yaml"

// File is the on-disk YAML layout.
type File struct {
	Disciplines []Discipline `yaml:"disciplines"`
	Requests    []Request    `yaml:"requests"`
	Athletes    []Athlete    `yaml:"athletes"`
}

// Discipline is a discipline entry.
type Discipline struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Request is a representative request entry. Discipline refers to a
// discipline by name; Cover is a path relative to the dataset file.
type Request struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Discipline  string `yaml:"discipline"`
	Level       string `yaml:"level"`
	Status      string `yaml:"status"`
	AppliedAt   string `yaml:"applied_at"`
	Cover       string `yaml:"cover"`
	Location    string `yaml:"location"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	Organizer   string `yaml:"organizer"`
	AgeGroup    string `yaml:"age_group"`
	Description string `yaml:"description"`
}

// Athlete is an athlete entry with every statistics section.
type Athlete struct {
	ID             string                       `yaml:"id"`
	Name           string                       `yaml:"name"`
	Region         string                       `yaml:"region"`
	Discipline     string                       `yaml:"discipline"`
	Points         int                          `yaml:"points"`
	Participation  []domain.ParticipationSlice  `yaml:"participation"`
	PointsOverTime []domain.PointsSample        `yaml:"points_over_time"`
	Achievements   []domain.Achievement         `yaml:"achievements"`
	History        []domain.ParticipationRecord `yaml:"history"`
}

// AthleteData is a resolved athlete with its statistics sections.
// Rank is not stored; it is derived from Points across all athletes.
type AthleteData struct {
	Athlete        domain.Athlete
	Points         int
	Participation  []domain.ParticipationSlice
	PointsOverTime []domain.PointsSample
	Achievements   []domain.Achievement
	History        []domain.ParticipationRecord
}

// Dataset is a fully resolved seed dataset.
type Dataset struct {
	Disciplines []domain.Discipline
	Requests    []domain.CompetitionDetails
	Athletes    []AthleteData
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Load(embedded, DefaultFile)
}

// LoadPath loads a dataset from a file on disk. Cover paths resolve relative
// to the file's directory. An empty path loads the embedded dataset.
func LoadPath(p string) (*Dataset, error) {
	if p == "" {
		return Default()
	}
	return Load(os.DirFS(filepath.Dir(p)), filepath.Base(p))
}

// Load reads and resolves a dataset from fsys.
func Load(fsys fs.FS, name string) (*Dataset, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures %s: %w", name, err)
	}

	return f.resolve(fsys, path.Dir(name))
}

func (f *File) resolve(fsys fs.FS, dir string) (*Dataset, error) {
	ds := &Dataset{}

	byName := make(map[string]domain.Discipline, len(f.Disciplines))
	for _, d := range f.Disciplines {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, fmt.Errorf("discipline %q: invalid id: %w", d.Name, err)
		}
		disc := domain.Discipline{ID: id, Name: d.Name}
		byName[d.Name] = disc
		ds.Disciplines = append(ds.Disciplines, disc)
	}

	for _, r := range f.Requests {
		req, err := r.resolve(fsys, dir, byName)
		if err != nil {
			return nil, fmt.Errorf("request %q: %w", r.Name, err)
		}
		ds.Requests = append(ds.Requests, req)
	}

	for _, a := range f.Athletes {
		id, err := uuid.Parse(a.ID)
		if err != nil {
			return nil, fmt.Errorf("athlete %q: invalid id: %w", a.Name, err)
		}
		ds.Athletes = append(ds.Athletes, AthleteData{
			Athlete: domain.Athlete{
				ID:         id,
				Name:       a.Name,
				Region:     a.Region,
				Discipline: a.Discipline,
			},
			Points:         a.Points,
			Participation:  a.Participation,
			PointsOverTime: a.PointsOverTime,
			Achievements:   a.Achievements,
			History:        a.History,
		})
	}

	return ds, nil
}

func (r Request) resolve(fsys fs.FS, dir string, disciplines map[string]domain.Discipline) (domain.CompetitionDetails, error) {
	var out domain.CompetitionDetails

	id, err := uuid.Parse(r.ID)
	if err != nil {
		return out, fmt.Errorf("invalid id: %w", err)
	}
	disc, ok := disciplines[r.Discipline]
	if !ok {
		return out, fmt.Errorf("unknown discipline %q", r.Discipline)
	}
	level, err := domain.ParseCompetitionLevel(r.Level)
	if err != nil {
		return out, err
	}
	status, err := domain.ParseRequestStatus(r.Status)
	if err != nil {
		return out, err
	}
	if status == "" {
		status = domain.StatusPending
	}
	applied, err := time.Parse(time.RFC3339, r.AppliedAt)
	if err != nil {
		return out, fmt.Errorf("applied_at: %w", err)
	}
	start, err := parseDate(r.StartDate)
	if err != nil {
		return out, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return out, fmt.Errorf("end_date: %w", err)
	}

	var cover []byte
	if r.Cover != "" {
		cover, err = fs.ReadFile(fsys, path.Join(dir, r.Cover))
		if err != nil {
			return out, fmt.Errorf("cover: %w", err)
		}
	}

	out = domain.CompetitionDetails{
		RepresentativeRequest: domain.RepresentativeRequest{
			ID:              id,
			Name:            r.Name,
			Discipline:      disc,
			Level:           level,
			RequestStatus:   status,
			ApplicationTime: applied,
			Cover:           cover,
		},
		Location:    r.Location,
		StartDate:   start,
		EndDate:     end,
		Organizer:   r.Organizer,
		AgeGroup:    r.AgeGroup,
		Description: r.Description,
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
