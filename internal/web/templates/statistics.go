package templates

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/JonMunkholm/arena/internal/charts"
	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/table"
)

// HistoryTableID is the element swapped on history page changes.
const HistoryTableID = "history-table"

// LineStroke is the colour of the points-over-time line.
const LineStroke = "#39cc7d"

// achievementIcons rotate across the achievements grid.
var achievementIcons = []string{"medal", "trophy", "flag", "target"}

// StatisticsView is everything the athlete statistics page renders.
type StatisticsView struct {
	Stats      *domain.AthleteStatistics
	History    table.View
	HistoryURL PageURL
	ExportURL  func(format string) string
}

// StatisticsPage is the full athlete statistics page.
func StatisticsPage(v StatisticsView) templ.Component {
	s := v.Stats
	return component(page("Моя статистика", "athletes",
		pageHeader("Моя статистика",
			A(Class("btn btn-primary"), Href(v.ExportURL("pdf")), icon("download"), Text("Скачать отчёт")),
			A(Class("btn"), Href(v.ExportURL("csv")), Text("CSV")),
		),
		P(Class("muted"), Text(s.Athlete.Name+" · "+s.Athlete.Region+" · "+s.Athlete.Discipline)),
		Div(
			Class("stats-grid"),
			ratingCard(s.Overview),
			section("Участия", participationChart(s.Participation)),
			section("Баллы за всё время", pointsChart(s.PointsOverTime)),
		),
		section("Достижения", achievements(s.Achievements)),
		section("История участий", DataTable(HistoryTableID, v.History, v.HistoryURL)),
	))
}

// HistoryFragment is the participation history table alone.
func HistoryFragment(v StatisticsView) templ.Component {
	return component(DataTable(HistoryTableID, v.History, v.HistoryURL))
}

func section(title string, body Node) Node {
	return Section(Class("card"), H2(Class("card-heading"), Text(title)), body)
}

func ratingCard(o domain.AthleteOverview) Node {
	return section("Мой рейтинг", Div(
		Class("rating"),
		P(Class("muted"), Text("Место в рейтинге")),
		P(Class("rating-rank"), Text("#"+strconv.Itoa(o.Rank))),
		P(Class("rating-points"), Strong(Text(strconv.Itoa(o.Points))), Text(" баллов")),
	))
}

func participationChart(parts []domain.ParticipationSlice) Node {
	const size, r = 200.0, 90.0

	slices := make([]charts.Slice, len(parts))
	for i, p := range parts {
		slices[i] = charts.Slice{Label: p.Label, Value: float64(p.Value), Color: p.Color}
	}
	sectors := charts.Pie(slices, size/2, size/2, r)
	if len(sectors) == 0 {
		return P(Class("muted"), Text("Нет данных"))
	}

	shapes := make([]Node, len(sectors))
	legend := make([]Node, len(sectors))
	for i, sec := range sectors {
		tip := El("title", Text(fmt.Sprintf("%s: %.0f (%.0f%%)", sec.Label, sec.Value, sec.Percent)))
		if sec.Full {
			shapes[i] = El("circle", Attr("cx", num(size/2)), Attr("cy", num(size/2)), Attr("r", num(r)), Attr("fill", sec.Color), tip)
		} else {
			shapes[i] = El("path", Attr("d", sec.Path), Attr("fill", sec.Color), tip)
		}
		legend[i] = Li(
			Span(Class("swatch"), StyleAttr("background:"+sec.Color)),
			Text(fmt.Sprintf("%s: %.0f", sec.Label, sec.Value)),
		)
	}

	return Div(
		Class("chart pie"),
		El("svg", Attr("viewBox", "0 0 200 200"), Attr("role", "img"), Group(shapes)),
		Ul(Class("legend"), Group(legend)),
	)
}

func pointsChart(samples []domain.PointsSample) Node {
	const w, h, pad = 400.0, 200.0, 24.0

	labels := make([]string, len(samples))
	values := make([]float64, len(samples))
	for i, s := range samples {
		labels[i] = s.Period
		values[i] = float64(s.Points)
	}
	pts := charts.Line(labels, values, w, h, pad)
	if len(pts) == 0 {
		return P(Class("muted"), Text("Нет данных"))
	}

	marks := make([]Node, 0, 2*len(pts))
	for _, p := range pts {
		marks = append(marks,
			El("circle", Attr("cx", num(p.X)), Attr("cy", num(p.Y)), Attr("r", "4"), Attr("fill", LineStroke),
				El("title", Text(fmt.Sprintf("%s: %.0f", p.Label, p.Value)))),
			El("text", Attr("x", num(p.X)), Attr("y", num(h-4)), Attr("text-anchor", "middle"), Attr("class", "axis-label"), Text(p.Label)),
		)
	}

	return Div(
		Class("chart line"),
		El("svg",
			Attr("viewBox", fmt.Sprintf("0 0 %s %s", num(w), num(h))),
			Attr("role", "img"),
			El("polyline", Attr("points", charts.Polyline(pts)), Attr("fill", "none"), Attr("stroke", LineStroke), Attr("stroke-width", "3")),
			Group(marks),
		),
	)
}

func achievements(items []domain.Achievement) Node {
	if len(items) == 0 {
		return P(Class("muted"), Text("Пока нет достижений"))
	}

	cards := make([]Node, len(items))
	for i, a := range items {
		cards[i] = Div(
			Class("achievement"),
			icon(achievementIcons[i%len(achievementIcons)]),
			Span(Class("achievement-title"), Text(a.Title)),
			Span(Class("badge"), Text(strconv.Itoa(a.Count))),
		)
	}
	return Div(Class("achievements"), Group(cards))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
