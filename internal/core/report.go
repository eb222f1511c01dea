package core

import (
	"github.com/google/uuid"

	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/table"
)

// HistoryColumns is the layout of the participation history table.
var HistoryColumns = []table.Column{
	{Key: "competition", Title: "Соревнование"},
	{Key: "period", Title: "Даты"},
	{Key: "place", Title: "Место"},
	{Key: "points", Title: "Баллы"},
}

// RankingColumns is the layout of the athlete rating table.
var RankingColumns = []table.Column{
	{Key: table.RankKey, Title: "Место"},
	{Key: "name", Title: "Спортсмен"},
	{Key: "region", Title: "Регион"},
	{Key: "discipline", Title: "Дисциплина"},
	{Key: "points", Title: "Баллы"},
}

// StatisticsReportTitle heads the exported statistics report.
const StatisticsReportTitle = "Моя статистика"

// HistoryTable lays out participation history rows.
func HistoryTable(records []domain.ParticipationRecord, pageSize int) (*table.Table, error) {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			"competition": r.Competition,
			"period":      r.Period,
			"place":       r.Place,
			"points":      r.Points,
		}
	}
	return table.New(HistoryColumns, rows, pageSize)
}

// RankingTable lays out the athlete rating. When href is non-nil, athlete
// names link to href(athleteID).
func RankingTable(rankings []domain.AthleteRanking, pageSize int, href func(uuid.UUID) string) (*table.Table, error) {
	rows := make([]table.Row, len(rankings))
	for i, r := range rankings {
		var name any = r.Name
		if href != nil {
			name = table.Link{Text: r.Name, Href: href(r.AthleteID)}
		}
		rows[i] = table.Row{
			table.RankKey: r.Rank,
			"name":        name,
			"region":      r.Region,
			"discipline":  r.Discipline,
			"points":      r.Points,
		}
	}
	return table.New(RankingColumns, rows, pageSize)
}
