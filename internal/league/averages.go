// Package league maintains per-season league-wide averages used to put a
// player's numbers in context. Values are computed (or loaded) once per
// season and memoized in an explicit table owned by the Registry, with an
// injectable loader instead of hidden process-wide state.
package league

import (
	"sync"

	"github.com/yourusername/hot-streak/internal/models"
)

// StatAverage is the league mean and spread for one stat.
type StatAverage struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Table maps each stat to its league average for one season.
type Table map[models.Stat]StatAverage

// Loader supplies the league table for a season. Implementations may hit
// a database or API; DefaultLoader returns calibrated constants.
type Loader func(season int) Table

// DefaultLoader returns the approximate league averages for the 2024
// season regardless of the requested season. It is the fallback when no
// data-backed loader is wired in.
func DefaultLoader(season int) Table {
	_ = season
	return Table{
		models.StatPoints:   {Mean: 11.5, Std: 8.5},
		models.StatRebounds: {Mean: 4.2, Std: 3.2},
		models.StatAssists:  {Mean: 2.8, Std: 2.9},
		models.StatFGPct:    {Mean: 0.462, Std: 0.087},
		models.StatFG3Pct:   {Mean: 0.367, Std: 0.112},
		models.StatFTPct:    {Mean: 0.783, Std: 0.125},
		models.StatMinutes:  {Mean: 20.5, Std: 9.8},
	}
}

// Registry memoizes league tables by season.
type Registry struct {
	mu     sync.RWMutex
	loader Loader
	tables map[int]Table
}

// NewRegistry creates a registry backed by the given loader. A nil loader
// falls back to DefaultLoader.
func NewRegistry(loader Loader) *Registry {
	if loader == nil {
		loader = DefaultLoader
	}
	return &Registry{
		loader: loader,
		tables: make(map[int]Table),
	}
}

// Averages returns the memoized league table for a season, invoking the
// loader at most once per season.
func (r *Registry) Averages(season int) Table {
	r.mu.RLock()
	table, ok := r.tables[season]
	r.mu.RUnlock()
	if ok {
		return table
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if table, ok := r.tables[season]; ok {
		return table
	}
	table = r.loader(season)
	r.tables[season] = table
	return table
}

// ZScores normalizes a player's season line against the league table.
// Stats with zero league spread report 0 rather than dividing by zero.
func (t Table) ZScores(avg models.SeasonAverage) map[models.Stat]float64 {
	scores := make(map[models.Stat]float64)
	line := map[models.Stat]float64{
		models.StatPoints:   avg.Points,
		models.StatRebounds: avg.Rebounds,
		models.StatAssists:  avg.Assists,
		models.StatMinutes:  avg.Minutes,
	}
	for stat, value := range line {
		la, ok := t[stat]
		if !ok {
			continue
		}
		if la.Std > 0 {
			scores[stat] = (value - la.Mean) / la.Std
		} else {
			scores[stat] = 0
		}
	}
	return scores
}
