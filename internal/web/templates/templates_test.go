package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "maragu.dev/gomponents"

	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/pagination"
	"github.com/JonMunkholm/arena/internal/selection"
	"github.com/JonMunkholm/arena/internal/table"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func renderNode(t *testing.T, n Node) string {
	t.Helper()
	return render(t, component(n))
}

func numberedTable(t *testing.T, n int) *table.Table {
	t.Helper()
	rows := make([]table.Row, n)
	for i := range rows {
		rows[i] = table.Row{"rank": i + 1, "name": "row-" + strconv.Itoa(i+1)}
	}
	tbl, err := table.New([]table.Column{{Key: "rank", Title: "Место"}, {Key: "name", Title: "Имя"}}, rows, 10)
	require.NoError(t, err)
	return tbl
}

func pageURL(p int) string { return "/t?page=" + strconv.Itoa(p) }

func TestDataTable_LastPage(t *testing.T) {
	tbl := numberedTable(t, 25)
	tbl.SetPage(3)

	out := renderNode(t, DataTable("t", tbl.View(), pageURL))

	assert.Equal(t, 5, strings.Count(out, "<tr")-1, "header row plus five data rows")
	assert.Contains(t, out, "row-21")
	assert.Contains(t, out, "row-25")
	assert.NotContains(t, out, "row-20")
	assert.Contains(t, out, `<span class="rank-badge">25</span>`)
	assert.Contains(t, out, `hx-get="/t?page=2"`)
	assert.Contains(t, out, `aria-current="page"`)
}

func TestDataTable_NoControlForSinglePage(t *testing.T) {
	tbl := numberedTable(t, 10)
	out := renderNode(t, DataTable("t", tbl.View(), pageURL))

	assert.NotContains(t, out, "pagination")
	assert.Contains(t, out, "row-10")
}

func TestDataTable_EmptyRendersHeader(t *testing.T) {
	tbl := numberedTable(t, 0)
	out := renderNode(t, DataTable("t", tbl.View(), pageURL))

	assert.Contains(t, out, "<th")
	assert.Contains(t, out, "Имя")
	assert.NotContains(t, out, "pagination")
}

func TestDataTable_LinkCell(t *testing.T) {
	tbl, err := table.New([]table.Column{{Key: "name", Title: "Имя"}},
		[]table.Row{{"name": table.Link{Text: "Иванов", Href: "/athletes/1/statistics"}}}, 0)
	require.NoError(t, err)

	out := renderNode(t, DataTable("t", tbl.View(), pageURL))
	assert.Contains(t, out, `<a href="/athletes/1/statistics">Иванов</a>`)
}

func TestPagination_DisabledEnds(t *testing.T) {
	p, err := pagination.New(30, 10)
	require.NoError(t, err)

	out := renderNode(t, Pagination(p.Items(pagination.DefaultSiblings), "#t", pageURL))
	assert.Contains(t, out, "page-link disabled")
	assert.Contains(t, out, `hx-get="/t?page=2"`)
	assert.Contains(t, out, `hx-target="#t"`)
	assert.NotContains(t, out, `/t?page=0`)
}

func competitionsView(t *testing.T, details *domain.CompetitionDetails) CompetitionsView {
	t.Helper()
	pager, err := pagination.New(1, 10)
	require.NoError(t, err)

	id := uuid.New()
	req := domain.RepresentativeRequest{
		ID:              id,
		Name:            "Кубок области",
		Discipline:      domain.Discipline{Name: "Плавание"},
		Level:           domain.LevelOpen,
		RequestStatus:   domain.StatusApproved,
		ApplicationTime: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Cover:           []byte("\x89PNG\r\n\x1a\n"),
	}

	v := CompetitionsView{
		Page:      &core.CompetitionPage{Pager: pager, Requests: []domain.RepresentativeRequest{req}},
		Location:  time.UTC,
		PageURL:   pageURL,
		SelectURL: func(id string) string { return "/competitions?selected=" + id },
		CloseURL:  "/competitions",
	}
	if details != nil {
		v.Selection = selection.FromID(details.ID.String())
		v.Details = details
	}
	return v
}

func TestCompetitionsPage_Card(t *testing.T) {
	out := render(t, CompetitionsPage(competitionsView(t, nil)))

	assert.Contains(t, out, "Кубок области")
	assert.Contains(t, out, "Одобрено")
	assert.Contains(t, out, "Открытый")
	assert.Contains(t, out, "01.03.2025 09:30")
	assert.Contains(t, out, "data:image/png;base64,")
	assert.Contains(t, out, `<div id="drawer"></div>`)
	assert.NotContains(t, out, DrawerTitle)
}

func TestCompetitionDrawer_Open(t *testing.T) {
	d := &domain.CompetitionDetails{
		RepresentativeRequest: domain.RepresentativeRequest{
			ID:            uuid.New(),
			Name:          "Первенство России",
			Level:         domain.LevelFederal,
			RequestStatus: domain.RequestStatus("UNKNOWN"),
		},
		Location:  "Казань",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	}

	out := render(t, CompetitionDrawer(competitionsView(t, d)))

	assert.Contains(t, out, DrawerTitle)
	assert.Contains(t, out, "Первенство России")
	assert.Contains(t, out, "На рассмотрении")
	assert.Contains(t, out, "Всероссийский")
	assert.Contains(t, out, "Казань")
	assert.Contains(t, out, `hx-get="/competitions"`)
	assert.NotContains(t, out, "Организатор", "empty fields are omitted")
}

func TestStatisticsPage(t *testing.T) {
	stats := &domain.AthleteStatistics{
		Athlete:  domain.Athlete{Name: "Иванов Алексей"},
		Overview: domain.AthleteOverview{Rank: 3, Points: 1500},
		Participation: []domain.ParticipationSlice{
			{Label: "Региональные", Value: 2, Color: "#123456"},
			{Label: "Открытые", Value: 2, Color: "#654321"},
		},
		PointsOverTime: []domain.PointsSample{{Period: "Янв", Points: 10}, {Period: "Фев", Points: 30}},
		Achievements: []domain.Achievement{
			{Title: "a", Count: 1}, {Title: "b", Count: 2}, {Title: "c", Count: 3},
			{Title: "d", Count: 4}, {Title: "e", Count: 5},
		},
	}
	tbl, err := core.HistoryTable(nil, 10)
	require.NoError(t, err)

	out := render(t, StatisticsPage(StatisticsView{
		Stats:      stats,
		History:    tbl.View(),
		HistoryURL: pageURL,
		ExportURL:  func(f string) string { return "/export?format=" + f },
	}))

	assert.Contains(t, out, "Моя статистика")
	assert.Contains(t, out, "Скачать отчёт")
	assert.Contains(t, out, `href="/export?format=pdf"`)
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "баллов")
	assert.Equal(t, 2, strings.Count(out, "<path "), "one path per pie slice")
	assert.Contains(t, out, `stroke="#39cc7d"`)
	assert.Equal(t, 2, strings.Count(out, `data-lucide="medal"`), "icons rotate every four achievements")
	assert.Contains(t, out, `id="history-table"`)
	assert.Contains(t, out, "Соревнование")
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Заявка не найдена", "Вернитесь к списку", "COMP001"))

	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "Заявка не найдена")
	assert.Contains(t, out, "Код: COMP001")
}

func TestContainsExpr_JavaScriptLiteral(t *testing.T) {
	tests := []string{
		"Кубок России",
		"Кубок \U0001F600 😀",
		"bell\a tab\t quote\" back\\slash",
		"line\u2028separator",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			expr := containsExpr(name)
			require.True(t, strings.HasPrefix(expr, "$q === '' || "))
			require.True(t, strings.HasSuffix(expr, ".includes($q.toLowerCase())"))

			lit := strings.TrimSuffix(strings.TrimPrefix(expr, "$q === '' || "), ".includes($q.toLowerCase())")
			assert.NotContains(t, lit, `\U`)
			assert.NotContains(t, lit, `\a`)

			var got string
			require.NoError(t, json.Unmarshal([]byte(lit), &got))
			assert.Equal(t, strings.ToLower(name), got)
		})
	}
}
