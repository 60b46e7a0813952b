package models

import (
	"sort"
	"time"
)

// GameLog is one game's box-score line for a single player. Values holds
// whatever stats the upstream feed supplied; absent stats are simply not
// present in the map.
type GameLog struct {
	Date   time.Time        `db:"game_date" json:"date"`
	Values map[Stat]float64 `db:"-" json:"values"`
}

// Value returns the stat value and whether it was recorded for this game.
func (g GameLog) Value(stat Stat) (float64, bool) {
	v, ok := g.Values[stat]
	return v, ok
}

// GameSeries is a player's game logs in chronological order, oldest first.
// Position in the series, not calendar spacing, drives recency weighting.
type GameSeries []GameLog

// Sorted returns a copy of the series ordered by ascending date.
func (s GameSeries) Sorted() GameSeries {
	out := make(GameSeries, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Values extracts the series for one stat, keeping chronological order and
// dropping games where the stat was not recorded. The second return is
// false when no game carried the stat at all.
func (s GameSeries) Values(stat Stat) ([]float64, bool) {
	values := make([]float64, 0, len(s))
	found := false
	for _, g := range s {
		if v, ok := g.Values[stat]; ok {
			values = append(values, v)
			found = true
		}
	}
	return values, found
}

// SeasonAverage is one season's per-game scoring line, used for career
// phase classification and dynamic threshold derivation.
type SeasonAverage struct {
	Season      int     `db:"season" json:"season"`
	GamesPlayed int     `db:"games_played" json:"games_played"`
	Points      float64 `db:"pts" json:"pts"`
	Rebounds    float64 `db:"reb" json:"reb"`
	Assists     float64 `db:"ast" json:"ast"`
	Minutes     float64 `db:"min" json:"min"`
}

// StatAverage returns the season average for a threshold-eligible stat.
func (a SeasonAverage) StatAverage(stat Stat) (float64, bool) {
	switch stat {
	case StatPoints:
		return a.Points, true
	case StatRebounds:
		return a.Rebounds, true
	case StatAssists:
		return a.Assists, true
	}
	return 0, false
}
