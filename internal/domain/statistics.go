package domain

import "github.com/google/uuid"

// Athlete is a competitor profile.
type Athlete struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Region     string    `json:"region"`
	Discipline string    `json:"discipline"`
}

// AthleteOverview is the rating card of the statistics page.
type AthleteOverview struct {
	Rank   int `json:"rank"`
	Points int `json:"points"`
}

// ParticipationSlice is one sector of the participation pie chart.
type ParticipationSlice struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

// PointsSample is one point of the points-over-time line chart.
type PointsSample struct {
	Period string `json:"period" yaml:"period"`
	Points int    `json:"points" yaml:"points"`
}

// Achievement counts awards of one kind.
type Achievement struct {
	Title string `json:"title" yaml:"title"`
	Count int    `json:"count" yaml:"count"`
}

// ParticipationRecord is one row of the participation history table.
type ParticipationRecord struct {
	Competition string `json:"competition" yaml:"competition"`
	Period      string `json:"period" yaml:"period"`
	Place       int    `json:"place" yaml:"place"`
	Points      int    `json:"points" yaml:"points"`
}

// AthleteStatistics aggregates every section of the statistics page.
type AthleteStatistics struct {
	Athlete        Athlete               `json:"athlete"`
	Overview       AthleteOverview       `json:"overview"`
	Participation  []ParticipationSlice  `json:"participation"`
	PointsOverTime []PointsSample        `json:"pointsOverTime"`
	Achievements   []Achievement         `json:"achievements"`
	History        []ParticipationRecord `json:"history"`
}

// AthleteRanking is one row of the athlete rating table.
type AthleteRanking struct {
	Rank       int       `json:"rank"`
	AthleteID  uuid.UUID `json:"athleteId"`
	Name       string    `json:"name"`
	Region     string    `json:"region"`
	Discipline string    `json:"discipline"`
	Points     int       `json:"points"`
}
