package models

import "fmt"

// Stat identifies a box-score statistic tracked by the engine. Using a
// typed constant instead of raw column names means a typo fails loudly
// instead of producing an empty result set.
type Stat string

const (
	StatPoints   Stat = "pts"
	StatRebounds Stat = "reb"
	StatAssists  Stat = "ast"
	StatThrees   Stat = "fg3m"
	StatMinutes  Stat = "min"
	StatFGPct    Stat = "fg_pct"
	StatFG3Pct   Stat = "fg3_pct"
	StatFTPct    Stat = "ft_pct"
)

// AllStats lists every stat the engine understands, in display order.
func AllStats() []Stat {
	return []Stat{StatPoints, StatRebounds, StatAssists, StatThrees, StatMinutes, StatFGPct, StatFG3Pct, StatFTPct}
}

// ThresholdStats lists the stats eligible for threshold analysis.
func ThresholdStats() []Stat {
	return []Stat{StatPoints, StatRebounds, StatAssists, StatThrees}
}

// ParseStat converts a raw column name into a Stat.
func ParseStat(name string) (Stat, error) {
	for _, s := range AllStats() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStat, name)
}

// ThresholdEligible reports whether the stat supports threshold analysis.
// Shooting percentages and minutes are context stats, not threshold stats.
func (s Stat) ThresholdEligible() bool {
	switch s {
	case StatPoints, StatRebounds, StatAssists, StatThrees:
		return true
	}
	return false
}

// CoefficientOfVariation returns the calibrated per-stat CV estimate used
// to derive dynamic thresholds from a season average. The second return
// is false for stats without a calibrated estimate.
func (s Stat) CoefficientOfVariation() (float64, bool) {
	switch s {
	case StatPoints:
		return 0.35, true
	case StatRebounds:
		return 0.40, true
	case StatAssists:
		return 0.50, true
	}
	return 0, false
}

// StatOutcome distinguishes "the stat was not in the input" from
// "the stat was present but the threshold was never met".
type StatOutcome string

const (
	StatOK               StatOutcome = "ok"
	StatNotAvailable     StatOutcome = "not_available"
	StatInsufficientData StatOutcome = "insufficient_data"
)
