package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/arena/internal/config"
	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/fixtures"
	"github.com/JonMunkholm/arena/internal/store"
	"github.com/JonMunkholm/arena/internal/web/templates"
)

const (
	uralCupID = "4ef346e5-00f6-5154-8f6e-05282522cc7d"
	leaderID  = "5b9091c5-300f-5cee-bab9-ed7e9a42ef6c"
	missingID = "00000000-0000-0000-0000-000000000001"
)

type testEnv map[string]string

func (e testEnv) get(k string) string { return e[k] }

func newTestServer(t *testing.T, env testEnv, exports *core.ExportLimiter) *Server {
	t.Helper()

	vars := testEnv{"STORE_DRIVER": config.DriverMemory, "RATE_LIMIT_ENABLED": "false"}
	for k, v := range env {
		vars[k] = v
	}
	cfg, err := config.LoadFrom(vars.get)
	require.NoError(t, err)

	ds, err := fixtures.Default()
	require.NoError(t, err)
	svc := core.NewService(store.NewMemory(ds), core.Options{PageSize: cfg.Display.PageSize})

	if exports == nil {
		exports = core.NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWait)
	}
	s := NewServer(cfg, svc, exports)
	t.Cleanup(s.cancel)
	return s
}

func get(s *Server, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

var htmx = map[string]string{"HX-Request": "true"}

func htmxTarget(id string) map[string]string {
	return map[string]string{"HX-Request": "true", "HX-Target": id}
}

func TestRootRedirects(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/competitions", rec.Header().Get("Location"))
}

func TestSecurityHeaders(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/competitions", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestStaticAssets(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/static/app.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".rank-badge")
}

func TestCompetitions_FullPage(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/competitions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, `id="competition-grid"`)
	assert.Contains(t, body, `<div id="drawer"></div>`)
	assert.Contains(t, body, `href="/competitions?page=2"`, "14 requests span two pages")
	assert.Equal(t, 10, strings.Count(body, "competition-card"))
}

func TestCompetitions_GridFragment(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/competitions?page=2", htmxTarget("competition-grid"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "<html")
	assert.True(t, strings.HasPrefix(body, `<div id="competition-grid">`))
	assert.Equal(t, 4, strings.Count(body, "competition-card"))
}

func TestCompetitions_PageClamped(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/competitions?page=99", htmxTarget("competition-grid"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, strings.Count(rec.Body.String(), "competition-card"))
}

func TestCompetitions_DrawerFragment(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := get(s, "/competitions?selected="+uralCupID, htmxTarget("drawer"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "<html")
	assert.NotContains(t, body, "competition-card")
	assert.Contains(t, body, templates.DrawerTitle)
	assert.Contains(t, body, "Екатеринбург")
	assert.Contains(t, body, "юниоры 16-18")

	closed := get(s, "/competitions", htmxTarget("drawer"))
	require.Equal(t, http.StatusOK, closed.Code)
	assert.Equal(t, `<div id="drawer"></div>`, closed.Body.String())
}

func TestCompetition_DetailRoute(t *testing.T) {
	s := newTestServer(t, nil, nil)

	full := get(s, "/competitions/"+uralCupID, nil)
	require.Equal(t, http.StatusOK, full.Code)
	assert.Contains(t, full.Body.String(), "<html")
	assert.Contains(t, full.Body.String(), templates.DrawerTitle)

	fragment := get(s, "/competitions/"+uralCupID, htmx)
	require.Equal(t, http.StatusOK, fragment.Code)
	assert.True(t, strings.HasPrefix(fragment.Body.String(), `<aside id="drawer"`))
}

func TestCompetitions_Errors(t *testing.T) {
	s := newTestServer(t, nil, nil)

	tests := []struct {
		name    string
		target  string
		headers map[string]string
		status  int
		code    string
	}{
		{"unknown id", "/competitions/" + missingID, nil, http.StatusNotFound, "COMP001"},
		{"malformed id", "/competitions/not-a-uuid", nil, http.StatusBadRequest, "VAL001"},
		{"unknown status", "/competitions?status=BOGUS", nil, http.StatusBadRequest, "VAL002"},
		{"htmx drawer for unknown id", "/competitions?selected=" + missingID, htmxTarget("drawer"), http.StatusNotFound, "COMP001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(s, tt.target, tt.headers)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "Код: "+tt.code)
			if tt.headers != nil {
				assert.Equal(t, "#alerts", rec.Header().Get("HX-Retarget"))
				assert.NotContains(t, rec.Body.String(), "<html")
			} else {
				assert.Contains(t, rec.Body.String(), "<html")
			}
		})
	}
}

func TestRankings(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := get(s, "/athletes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Рейтинг спортсменов")
	assert.Contains(t, body, `<a href="/athletes/`+leaderID+`/statistics">Иванов Алексей</a>`)
	assert.Contains(t, body, `<span class="rank-badge">1</span>`)

	page2 := get(s, "/athletes?page=2", htmxTarget(templates.RankingTableID))
	require.Equal(t, http.StatusOK, page2.Code)
	assert.True(t, strings.HasPrefix(page2.Body.String(), `<div id="ranking-table"`))
	assert.Equal(t, 2, strings.Count(page2.Body.String(), "rank-badge"), "12 athletes leave two on page 2")
}

func TestStatistics(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := get(s, "/athletes/"+leaderID+"/statistics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Моя статистика")
	assert.Contains(t, body, "Скачать отчёт")
	assert.Contains(t, body, "#1")
	assert.Contains(t, body, "1840")
	assert.Contains(t, body, `stroke="#39cc7d"`)
	assert.Contains(t, body, "Кубок Урала по лыжным гонкам")

	page2 := get(s, "/athletes/"+leaderID+"/statistics?page=2", htmxTarget(templates.HistoryTableID))
	require.Equal(t, http.StatusOK, page2.Code)
	assert.True(t, strings.HasPrefix(page2.Body.String(), `<div id="history-table"`))
	assert.Contains(t, page2.Body.String(), "Чемпионат Поволжья по плаванию")
	assert.NotContains(t, page2.Body.String(), "Кубок Урала по лыжным гонкам")

	missing := get(s, "/athletes/"+missingID+"/statistics", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), "ATH001")
}

func TestExport(t *testing.T) {
	s := newTestServer(t, nil, nil)
	base := "/athletes/" + leaderID + "/statistics/export"

	csv := get(s, base+"?format=csv", nil)
	require.Equal(t, http.StatusOK, csv.Code)
	assert.Equal(t, "text/csv; charset=utf-8", csv.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="athlete-stats.csv"`, csv.Header().Get("Content-Disposition"))
	assert.Contains(t, csv.Body.String(), "Соревнование,Даты,Место,Баллы")
	assert.Contains(t, csv.Body.String(), "Чемпионат Поволжья по плаванию", "export holds every row, not one page")

	pdf := get(s, base, nil)
	require.Equal(t, http.StatusOK, pdf.Code)
	assert.Equal(t, "application/pdf", pdf.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="athlete-stats.pdf"`, pdf.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(pdf.Body.String(), "%PDF-"))

	bad := get(s, base+"?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Contains(t, bad.Body.String(), "EXP002")
}

func TestExport_Busy(t *testing.T) {
	limiter := core.NewExportLimiter(1, 10*time.Millisecond)
	require.True(t, limiter.TryAcquire())
	defer limiter.Release()

	s := newTestServer(t, nil, limiter)
	rec := get(s, "/athletes/"+leaderID+"/statistics/export?format=csv", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "EXP001")
}

func TestAPI_Competitions(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := get(s, "/api/competitions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list CompetitionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 14, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, 10, list.PageSize)
	assert.Len(t, list.Items, 10)

	one := get(s, "/api/competitions/"+uralCupID, nil)
	require.Equal(t, http.StatusOK, one.Code)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(one.Body.Bytes(), &detail))
	assert.Equal(t, "Екатеринбург", detail["location"])
	assert.True(t, strings.HasPrefix(detail["cover"].(string), "data:image/png;base64,"))

	missing := get(s, "/api/competitions/"+missingID, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	var errBody ErrorResponse
	require.NoError(t, json.Unmarshal(missing.Body.Bytes(), &errBody))
	assert.Equal(t, "COMP001", errBody.Code)
}

func TestAPI_Statistics(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/api/athletes/"+leaderID+"/statistics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	overview := body["overview"].(map[string]any)
	assert.InDelta(t, 1, overview["rank"], 0)
	assert.InDelta(t, 1840, overview["points"], 0)
}

func TestAPI_Health(t *testing.T) {
	rec := get(newTestServer(t, nil, nil), "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var h core.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 4, h.Export.MaxConcurrent)
}

func TestAPI_KeyRequired(t *testing.T) {
	s := newTestServer(t, testEnv{"REQUIRE_API_KEY": "true", "API_KEYS": "secret"}, nil)

	assert.Equal(t, http.StatusUnauthorized, get(s, "/api/competitions", nil).Code)
	assert.Equal(t, http.StatusOK, get(s, "/api/competitions", map[string]string{"X-API-Key": "secret"}).Code)
	assert.Equal(t, http.StatusOK, get(s, "/api/health", nil).Code, "health stays open")
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, testEnv{
		"RATE_LIMIT_ENABLED":             "true",
		"RATE_LIMIT_REQUESTS_PER_MINUTE": "1",
		"RATE_LIMIT_BURST":               "1",
	}, nil)

	assert.Equal(t, http.StatusOK, get(s, "/api/health", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(s, "/api/health", nil).Code)
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	s := newTestServer(t, nil, nil)

	require.NoError(t, s.Shutdown(context.Background()))
	assert.ErrorIs(t, s.Start(), http.ErrServerClosed)
}
