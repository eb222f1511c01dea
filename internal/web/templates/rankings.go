package templates

import (
	"time"

	"github.com/a-h/templ"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/table"
)

// RankingTableID is the element swapped on rating page changes.
const RankingTableID = "ranking-table"

// RankingsView is the athlete rating page.
type RankingsView struct {
	Table       table.View
	PageURL     PageURL
	RefreshedAt time.Time
	Location    *time.Location
}

// RankingsPage is the full athlete rating page.
func RankingsPage(v RankingsView) templ.Component {
	return component(page("Рейтинг спортсменов", "athletes",
		pageHeader("Рейтинг спортсменов"),
		If(!v.RefreshedAt.IsZero(),
			P(Class("muted"), Text("Обновлено "+domain.FormatDatetime(v.RefreshedAt, v.Location))),
		),
		DataTable(RankingTableID, v.Table, v.PageURL),
	))
}

// RankingFragment is the rating table alone.
func RankingFragment(v RankingsView) templ.Component {
	return component(DataTable(RankingTableID, v.Table, v.PageURL))
}
