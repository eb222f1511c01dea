package templates

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/JonMunkholm/arena/internal/pagination"
	"github.com/JonMunkholm/arena/internal/table"
)

// PageURL returns the address that loads the given page.
type PageURL func(page int) string

// DataTable renders one page of v inside an element with the given id. The
// page selector targets the same element, so a page change swaps the whole
// table.
func DataTable(id string, v table.View, pageURL PageURL) Node {
	headers := make([]Node, len(v.Columns))
	for i, c := range v.Columns {
		headers[i] = Th(Attr("scope", "col"), Text(c.Title))
	}

	rows := make([]Node, len(v.Rows))
	for i, r := range v.Rows {
		cells := make([]Node, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = Td(tableCell(c))
		}
		rows[i] = Tr(If(r.Striped, Class("striped")), Group(cells))
	}

	return Div(
		ID(id),
		Class("table-card"),
		Table(
			Class("data-table"),
			THead(Tr(Group(headers))),
			TBody(Group(rows)),
		),
		Pagination(v.Items, "#"+id, pageURL),
	)
}

func tableCell(c table.Cell) Node {
	switch {
	case c.Rank:
		return Span(Class("rank-badge"), Text(c.Text))
	case c.Href != "":
		return A(Href(c.Href), Text(c.Text))
	default:
		return Text(c.Text)
	}
}

// Pagination renders the page selector. It renders nothing when items is
// empty, which is the case for a single page.
func Pagination(items []pagination.Item, target string, pageURL PageURL) Node {
	if len(items) == 0 {
		return nil
	}

	links := make([]Node, len(items))
	for i, it := range items {
		links[i] = Li(pageItem(it, target, pageURL))
	}
	return Nav(
		Class("pagination"),
		Attr("aria-label", "Страницы"),
		Ul(Group(links)),
	)
}

func pageItem(it pagination.Item, target string, pageURL PageURL) Node {
	var label Node
	switch it.Kind {
	case pagination.ItemGap:
		return Span(Class("page-link gap"), Text("…"))
	case pagination.ItemPrev:
		label = Group{Attr("aria-label", "Предыдущая страница"), Text("‹")}
	case pagination.ItemNext:
		label = Group{Attr("aria-label", "Следующая страница"), Text("›")}
	default:
		label = Text(strconv.Itoa(it.Page))
	}

	switch {
	case it.Disabled:
		return Span(Class("page-link disabled"), label)
	case it.Active:
		return Span(Class("page-link active"), Attr("aria-current", "page"), label)
	}

	url := pageURL(it.Page)
	return A(Class("page-link"), Href(url), hxGet(url, target), label)
}
