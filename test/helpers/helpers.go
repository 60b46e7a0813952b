// Package helpers provides shared fixtures for integration tests.
package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/hot-streak/internal/models"
)

// GameStatsJSON renders n game log records in the provider's wire format,
// newest first, with the given per-game points and fixed supporting stats.
func GameStatsJSON(points []float64) string {
	records := make([]string, 0, len(points))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, pts := range points {
		date := base.AddDate(0, 0, (len(points)-1-i)*2)
		records = append(records, fmt.Sprintf(
			`{"pts":%g,"reb":7,"ast":6,"fg3m":3,"min":"34:00","game":{"date":"%s"}}`,
			pts, date.Format("2006-01-02"),
		))
	}
	return `{"data":[` + strings.Join(records, ",") + `]}`
}

// SeasonAverageJSON renders one season_averages record.
func SeasonAverageJSON(season int, points float64) string {
	return fmt.Sprintf(
		`{"data":[{"season":%d,"games_played":72,"pts":%g,"reb":6.5,"ast":5.5,"min":"33:30"}]}`,
		season, points,
	)
}

// PlayerJSON renders one player record.
func PlayerJSON(id int, first, last, team string) string {
	return fmt.Sprintf(
		`{"id":%d,"first_name":"%s","last_name":"%s","position":"G","team":{"abbreviation":"%s"}}`,
		id, first, last, team,
	)
}

// ConstantPoints returns n games all at the same point total.
func ConstantPoints(n int, pts float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = pts
	}
	return out
}

// Seasons builds season averages from consecutive point totals.
func Seasons(startSeason int, points ...float64) []models.SeasonAverage {
	out := make([]models.SeasonAverage, 0, len(points))
	for i, pts := range points {
		out = append(out, models.SeasonAverage{
			Season:      startSeason + i,
			GamesPlayed: 72,
			Points:      pts,
			Minutes:     33,
		})
	}
	return out
}
