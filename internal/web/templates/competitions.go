package templates

import (
	"time"

	"github.com/a-h/templ"
	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/pagination"
	"github.com/JonMunkholm/arena/internal/selection"
)

// DrawerTitle heads the competition detail drawer.
const DrawerTitle = "Заявка на проведение мероприятия"

const (
	gridID   = "competition-grid"
	drawerID = "drawer"
)

// CompetitionsView is everything the competition listing renders.
type CompetitionsView struct {
	Page      *core.CompetitionPage
	Selection selection.Disclosure
	Details   *domain.CompetitionDetails // loaded when Selection is open
	Location  *time.Location

	PageURL   PageURL
	SelectURL func(id string) string
	CloseURL  string
}

// CompetitionsPage is the full listing page with filters, cards and drawer.
func CompetitionsPage(v CompetitionsView) templ.Component {
	return component(page("Соревнования", "competitions",
		pageHeader("Соревнования"),
		filterForm(v.Page.Filter),
		Div(
			data.Signals(map[string]any{"q": ""}),
			Div(
				Class("quick-filter"),
				icon("search"),
				Input(Type("search"), data.Bind("q"), Placeholder("Поиск по названию или дисциплине")),
			),
			competitionGrid(v),
		),
		drawer(v),
	))
}

// CompetitionGrid is the card grid fragment swapped on page or filter changes.
func CompetitionGrid(v CompetitionsView) templ.Component {
	return component(competitionGrid(v))
}

// CompetitionDrawer is the detail drawer fragment. A closed drawer renders as
// an empty placeholder so it can be swapped open again.
func CompetitionDrawer(v CompetitionsView) templ.Component {
	return component(drawer(v))
}

func filterForm(f domain.RequestFilter) Node {
	statuses := []Node{Option(Value(""), Text("Все статусы"))}
	for _, s := range domain.StatusOptions {
		statuses = append(statuses, Option(Value(string(s)), If(s == f.Status, Selected()), Text(s.Label())))
	}

	levels := []Node{Option(Value(""), Text("Все уровни"))}
	for _, l := range domain.LevelOptions {
		levels = append(levels, Option(Value(string(l)), If(l == f.Level, Selected()), Text(l.Label())))
	}

	return Form(
		Class("filters"),
		Method("get"),
		Action("/competitions"),
		Attr("hx-get", "/competitions"),
		Attr("hx-target", "#"+gridID),
		Attr("hx-swap", "outerHTML"),
		Attr("hx-push-url", "true"),
		Attr("hx-trigger", "change, submit"),
		Label(Text("Статус"), Select(Name("status"), Group(statuses))),
		Label(Text("Уровень"), Select(Name("level"), Group(levels))),
		Button(Type("submit"), Class("btn"), Text("Применить")),
	)
}

func competitionGrid(v CompetitionsView) Node {
	if len(v.Page.Requests) == 0 {
		return Div(ID(gridID), P(Class("empty muted"), Text("Заявок не найдено")))
	}

	cards := make([]Node, len(v.Page.Requests))
	for i, r := range v.Page.Requests {
		cards[i] = competitionCard(r, v.Location, v.SelectURL(r.ID.String()))
	}

	return Div(
		ID(gridID),
		Div(Class("card-grid"), Group(cards)),
		Pagination(v.Page.Pager.Items(pagination.DefaultSiblings), "#"+gridID, v.PageURL),
	)
}

func competitionCard(r domain.RepresentativeRequest, loc *time.Location, selectURL string) Node {
	return Article(
		Class("card competition-card"),
		data.Show(containsExpr(r.Name+" "+r.Discipline.Name)),
		A(
			Class("card-link"),
			Href(selectURL),
			Attr("hx-get", selectURL),
			Attr("hx-target", "#"+drawerID),
			Attr("hx-swap", "outerHTML"),
			Attr("hx-push-url", "true"),
			cover(r.Cover, r.Name),
			Div(
				Class("card-body"),
				H3(Class("card-title"), Text(r.Name)),
				P(Class("muted"), Text(r.Discipline.Name)),
				Div(Class("chips"), chip(r.Level.Label(), string(r.Level.Color()))),
				P(Class("card-meta"), icon("clock"), Text(domain.FormatDatetime(r.ApplicationTime, loc))),
				Div(Class("chips"), chip(r.RequestStatus.Label(), string(r.RequestStatus.Color()))),
			),
		),
	)
}

func cover(img []byte, alt string) Node {
	src := domain.CoverDataURI(img)
	if src == "" {
		return Div(Class("cover cover-empty"), icon("image"))
	}
	return Img(Class("cover"), Src(src), Alt(alt))
}

func drawer(v CompetitionsView) Node {
	if !v.Selection.IsOpen() || v.Details == nil {
		return Div(ID(drawerID))
	}
	d := v.Details

	return Aside(
		ID(drawerID),
		Class("drawer open"),
		Role("dialog"),
		Attr("aria-modal", "true"),
		Attr("aria-labelledby", "drawer-title"),
		Div(
			Class("drawer-header"),
			H2(ID("drawer-title"), Text(DrawerTitle)),
			A(
				Class("btn btn-icon"),
				Href(v.CloseURL),
				Attr("hx-get", v.CloseURL),
				Attr("hx-target", "#"+drawerID),
				Attr("hx-swap", "outerHTML"),
				Attr("hx-push-url", "true"),
				Attr("aria-label", "Закрыть"),
				icon("x"),
			),
		),
		Div(
			Class("drawer-body"),
			cover(d.Cover, d.Name),
			H3(Text(d.Name)),
			Div(
				Class("chips"),
				chip(d.Level.Label(), string(d.Level.Color())),
				chip(d.RequestStatus.Label(), string(d.RequestStatus.Color())),
			),
			Dl(
				Class("details"),
				detail("Дисциплина", d.Discipline.Name),
				detail("Место проведения", d.Location),
				detail("Даты проведения", domain.FormatPeriod(d.StartDate, d.EndDate)),
				detail("Организатор", d.Organizer),
				detail("Возрастная группа", d.AgeGroup),
				detail("Дата подачи", domain.FormatDatetime(d.ApplicationTime, v.Location)),
			),
			If(d.Description != "", P(Class("description"), Text(d.Description))),
		),
	)
}

func detail(term, value string) Node {
	if value == "" {
		return nil
	}
	return Group{Dt(Text(term)), Dd(Text(value))}
}
