package web

// handlers_api.go serves the JSON API under /api. Responses mirror the
// pages: the same service calls, the same pagination, encoded as JSON.

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/domain"
)

// healthTimeout bounds the store ping of the health check.
const healthTimeout = 2 * time.Second

// CompetitionListResponse is one page of competition requests.
type CompetitionListResponse struct {
	Items      []domain.RepresentativeRequest `json:"items"`
	Page       int                            `json:"page"`
	PageSize   int                            `json:"page_size"`
	TotalPages int                            `json:"total_pages"`
	Total      int                            `json:"total"`
}

// CompetitionResponse is a competition request with its cover inlined.
type CompetitionResponse struct {
	*domain.CompetitionDetails
	Cover string `json:"cover,omitempty"` // data: URI
}

func (s *Server) handleAPICompetitions(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	listing, err := s.service.ListCompetitions(r.Context(), f, parseIntParam(r, "page", 1))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	items := listing.Requests
	if items == nil {
		items = []domain.RepresentativeRequest{}
	}
	writeJSON(w, http.StatusOK, CompetitionListResponse{
		Items:      items,
		Page:       listing.Pager.Page(),
		PageSize:   listing.Pager.Size(),
		TotalPages: listing.Pager.TotalPages(),
		Total:      listing.Pager.Total(),
	})
}

func (s *Server) handleAPICompetition(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.GetCompetition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CompetitionResponse{CompetitionDetails: d, Cover: domain.CoverDataURI(d.Cover)})
}

func (s *Server) handleAPIRankings(w http.ResponseWriter, r *http.Request) {
	rows, err := s.service.Rankings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleAPIStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.AthleteStatistics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleHealth reports store reachability and the state of the background
// components. An unreachable store answers 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	h := core.HealthStatus{
		Status:  "ok",
		Store:   "ok",
		Export:  s.exports.Status(),
		Ranking: s.service.RankingStatus(),
	}
	status := http.StatusOK
	if err := s.service.Ping(ctx); err != nil {
		h.Status = "degraded"
		h.Store = err.Error()
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, h)
}

// writeJSON encodes v as the response body. Encoding errors can only be
// logged since the status line is already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
