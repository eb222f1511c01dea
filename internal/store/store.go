// Package store provides the data layer behind the dashboard: a PostgreSQL
// store built on pgx and an in-memory store loaded from fixtures. Both
// satisfy core.Store.
package store

import (
	"bytes"
	"sort"

	"github.com/JonMunkholm/arena/internal/domain"
)

// rank sorts athletes by points (descending), name and id, and assigns
// competition ranks: tied points share a rank and the next rank skips.
func rank(rows []domain.AthleteRanking) []domain.AthleteRanking {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return bytes.Compare(rows[i].AthleteID[:], rows[j].AthleteID[:]) < 0
	})

	for i := range rows {
		if i > 0 && rows[i].Points == rows[i-1].Points {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
	return rows
}
