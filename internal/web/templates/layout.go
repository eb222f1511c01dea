// Package templates renders the dashboard pages and HTMX fragments.
//
// Markup is built with gomponents and exposed as templ.Component so handlers
// render every page the same way, through a pooled templ buffer.
package templates

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"
	lucideSrc   = "https://unpkg.com/lucide@0.468.0/dist/umd/lucide.min.js"
	datastarSrc = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
)

// AlertsID is the region error fragments of HTMX requests are swapped into.
const AlertsID = "alerts"

// pageScript lets HTMX swap error responses and redraws icons after swaps.
const pageScript = "if (window.htmx) { htmx.config.responseHandling = [" +
	"{code: '204', swap: false}, {code: '[23]..', swap: true}, {code: '[45]..', swap: true, error: true}]; } " +
	"if (window.lucide) { lucide.createIcons(); } " +
	"document.body.addEventListener('htmx:afterSwap', function () { if (window.lucide) { lucide.createIcons(); } });"

type navItem struct {
	Label string
	Href  string
	Key   string
	Icon  string
}

var navItems = []navItem{
	{Label: "Соревнования", Href: "/competitions", Key: "competitions", Icon: "calendar-days"},
	{Label: "Рейтинг", Href: "/athletes", Key: "athletes", Icon: "list-ordered"},
}

// component adapts a gomponents node to templ.Component.
func component(n Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if n == nil {
			return nil
		}
		return n.Render(w)
	})
}

func page(title, active string, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		className := "nav-link"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, A(
			Href(item.Href),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(item.Label)),
		))
	}

	return Doctype(HTML(
		Lang("ru"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Арена")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(Src(htmxSrc)),
			Script(Src(lucideSrc)),
			Script(Type("module"), Src(datastarSrc)),
		),
		Body(
			Header(
				Class("topbar"),
				Strong(Class("brand"), Text("Арена")),
				Nav(Class("nav"), Group(nav)),
			),
			Main(
				Class("content"),
				Div(ID(AlertsID), Attr("aria-live", "polite")),
				Group(body),
			),
			Script(Raw(pageScript)),
		),
	))
}

func pageHeader(title string, actions ...Node) Node {
	return Div(
		Class("page-header"),
		H1(Class("page-title"), Text(title)),
		If(len(actions) > 0, Div(Class("page-actions"), Group(actions))),
	)
}

// hxGet makes a link or element load url into target, replacing it, and
// records url in the browser history.
func hxGet(url, target string) Node {
	return Group{
		Attr("hx-get", url),
		Attr("hx-target", target),
		Attr("hx-swap", "outerHTML"),
		Attr("hx-push-url", "true"),
	}
}

func chip(label, color string) Node {
	return Span(Class("chip chip-"+color), Text(label))
}

func icon(name string) Node {
	return I(Class("icon"), Attr("data-lucide", name), Attr("aria-hidden", "true"))
}

// containsExpr is a datastar expression matching value against the $q
// filter signal. JSON string literals are valid JavaScript literals.
func containsExpr(value string) string {
	lit, err := json.Marshal(strings.ToLower(value))
	if err != nil {
		return "true"
	}
	return "$q === '' || " + string(lit) + ".includes($q.toLowerCase())"
}

// ErrorAlert is the inline error fragment swapped in by HTMX requests.
func ErrorAlert(message, action, code string) templ.Component {
	return component(errorAlert(message, action, code))
}

func errorAlert(message, action, code string) Node {
	return Div(
		Class("alert alert-danger"),
		Role("alert"),
		icon("circle-alert"),
		Div(
			Strong(Text(message)),
			If(action != "", P(Text(action))),
			If(code != "", P(Class("muted"), Text("Код: "+code))),
		),
	)
}

// ErrorPage is the full-page rendition of an error for plain browser requests.
func ErrorPage(title, message, action, code string) templ.Component {
	return component(page(title, "",
		pageHeader(title),
		errorAlert(message, action, code),
		P(A(Href("/competitions"), Text("Вернуться к списку соревнований"))),
	))
}
