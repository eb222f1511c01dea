// Package domain holds the competition and athlete records shown by the
// dashboard, together with their display labels.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the review state of a representative request.
type RequestStatus string

const (
	StatusApproved RequestStatus = "APPROVED"
	StatusDeclined RequestStatus = "DECLINED"
	StatusPending  RequestStatus = "PENDING"
)

// CompetitionLevel is the tier a competition is held at.
type CompetitionLevel string

const (
	LevelFederal  CompetitionLevel = "FEDERAL"
	LevelOpen     CompetitionLevel = "OPEN"
	LevelRegional CompetitionLevel = "REGIONAL"
)

// Discipline is a sports discipline.
type Discipline struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RepresentativeRequest is an application to hold a competition event.
type RepresentativeRequest struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Discipline      Discipline       `json:"discipline"`
	Level           CompetitionLevel `json:"level"`
	RequestStatus   RequestStatus    `json:"requestStatus"`
	ApplicationTime time.Time        `json:"applicationTime"`
	Cover           []byte           `json:"-"`
}

// CompetitionDetails is the full record behind a request card.
type CompetitionDetails struct {
	RepresentativeRequest
	Location    string    `json:"location"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Organizer   string    `json:"organizer"`
	AgeGroup    string    `json:"ageGroup,omitempty"`
	Description string    `json:"description,omitempty"`
}

// RequestFilter narrows a request listing. Zero values match everything.
type RequestFilter struct {
	Status RequestStatus
	Level  CompetitionLevel
}

// ParseRequestStatus accepts a known status name (case-sensitive) or "".
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(s); st {
	case "", StatusApproved, StatusDeclined, StatusPending:
		return st, nil
	}
	return "", &ValidationError{Field: "status", Message: "unknown request status " + s}
}

// ParseCompetitionLevel accepts a known level name (case-sensitive) or "".
func ParseCompetitionLevel(s string) (CompetitionLevel, error) {
	switch lv := CompetitionLevel(s); lv {
	case "", LevelFederal, LevelOpen, LevelRegional:
		return lv, nil
	}
	return "", &ValidationError{Field: "level", Message: "unknown competition level " + s}
}

// ParseID parses a record identifier.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &ValidationError{Field: "id", Message: "invalid id " + s}
	}
	return id, nil
}
