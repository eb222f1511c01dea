package web

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/export"
	"github.com/JonMunkholm/arena/internal/logging"
	"github.com/JonMunkholm/arena/internal/selection"
	"github.com/JonMunkholm/arena/internal/web/templates"
)

// statisticsReportName is the download name of an exported statistics report.
const statisticsReportName = "athlete-stats"

// handleCompetitions serves the card grid. HTMX requests aimed at the drawer
// get only the drawer; other HTMX requests get the grid; browsers get the
// whole page.
func (s *Server) handleCompetitions(w http.ResponseWriter, r *http.Request) {
	drawerOnly := isHTMX(r) && hxTarget(r) == "drawer"
	s.serveCompetitions(w, r, r.URL.Query().Get("selected"), drawerOnly)
}

// handleCompetition opens the detail drawer for one request.
func (s *Server) handleCompetition(w http.ResponseWriter, r *http.Request) {
	s.serveCompetitions(w, r, chi.URLParam(r, "id"), isHTMX(r))
}

func (s *Server) serveCompetitions(w http.ResponseWriter, r *http.Request, selected string, drawerOnly bool) {
	ctx := r.Context()

	f, err := parseFilter(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	listing, err := s.service.ListCompetitions(ctx, f, parseIntParam(r, "page", 1))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	sel := selection.FromID(selected)
	page := listing.Pager.Page()
	v := templates.CompetitionsView{
		Page:      listing,
		Selection: sel,
		Location:  s.loc,
		PageURL: func(p int) string {
			id, _ := sel.Selected()
			return competitionsURL(f, p, id)
		},
		SelectURL: func(id string) string { return competitionsURL(f, page, id) },
		CloseURL:  competitionsURL(f, page, ""),
	}

	if id, open := sel.Selected(); open && (drawerOnly || !isHTMX(r)) {
		v.Details, err = s.service.GetCompetition(ctx, id)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	switch {
	case drawerOnly:
		s.render(w, r, http.StatusOK, templates.CompetitionDrawer(v))
	case isHTMX(r):
		s.render(w, r, http.StatusOK, templates.CompetitionGrid(v))
	default:
		s.render(w, r, http.StatusOK, templates.CompetitionsPage(v))
	}
}

// handleRankings serves the athlete rating table.
func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	rows, err := s.service.Rankings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tbl, err := core.RankingTable(rows, s.cfg.Display.PageSize, statisticsURL)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	tbl.SetPage(parseIntParam(r, "page", 1))

	v := templates.RankingsView{
		Table:       tbl.View(),
		PageURL:     func(p int) string { return pageURL("/athletes", p) },
		RefreshedAt: s.service.RankingStatus().RefreshedAt,
		Location:    s.loc,
	}

	if isHTMX(r) {
		s.render(w, r, http.StatusOK, templates.RankingFragment(v))
		return
	}
	s.render(w, r, http.StatusOK, templates.RankingsPage(v))
}

// handleStatistics serves an athlete's statistics page. HTMX page changes
// of the history table get only the table.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stats, err := s.service.AthleteStatistics(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tbl, err := core.HistoryTable(stats.History, s.cfg.Display.PageSize)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	tbl.SetPage(parseIntParam(r, "page", 1))

	base := "/athletes/" + url.PathEscape(id) + "/statistics"
	v := templates.StatisticsView{
		Stats:      stats,
		History:    tbl.View(),
		HistoryURL: func(p int) string { return pageURL(base, p) },
		ExportURL:  func(format string) string { return base + "/export?format=" + url.QueryEscape(format) },
	}

	if isHTMX(r) {
		s.render(w, r, http.StatusOK, templates.HistoryFragment(v))
		return
	}
	s.render(w, r, http.StatusOK, templates.StatisticsPage(v))
}

// handleExport streams the athlete's full participation history as a
// PDF or CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	exp, err := export.ForFormat(r.URL.Query().Get("format"), s.exporter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	stats, err := s.service.AthleteStatistics(ctx, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tbl, err := core.HistoryTable(stats.History, 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	doc := export.FromTable(core.StatisticsReportTitle+": "+stats.Athlete.Name, tbl)

	var buf bytes.Buffer
	err = s.exports.Do(ctx, func() error {
		return exp.Write(&buf, doc)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(ctx).Info("report exported",
		"athlete_id", id,
		"format", exp.Extension(),
		"rows", len(doc.Rows),
		"bytes", buf.Len(),
	)

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(statisticsReportName, exp)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// parseIntParam parses an integer query parameter, falling back to
// defaultVal when it is missing or malformed. Range checks are left to the
// pager, which clamps.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// parseFilter reads the status and level filters. Unknown values are
// rejected rather than ignored.
func parseFilter(r *http.Request) (domain.RequestFilter, error) {
	q := r.URL.Query()
	status, err := domain.ParseRequestStatus(q.Get("status"))
	if err != nil {
		return domain.RequestFilter{}, err
	}
	level, err := domain.ParseCompetitionLevel(q.Get("level"))
	if err != nil {
		return domain.RequestFilter{}, err
	}
	return domain.RequestFilter{Status: status, Level: level}, nil
}

// competitionsURL is the address of a listing page with an optional open
// drawer. Defaults are left out to keep URLs short.
func competitionsURL(f domain.RequestFilter, page int, selected string) string {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Level != "" {
		q.Set("level", string(f.Level))
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if selected != "" {
		q.Set("selected", selected)
	}
	if len(q) == 0 {
		return "/competitions"
	}
	return "/competitions?" + q.Encode()
}

func pageURL(base string, page int) string {
	if page <= 1 {
		return base
	}
	return base + "?page=" + strconv.Itoa(page)
}

func statisticsURL(id uuid.UUID) string {
	return "/athletes/" + id.String() + "/statistics"
}
