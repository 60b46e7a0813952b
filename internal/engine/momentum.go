package engine

import "math"

// MomentumTrend classifies the direction of recent performance.
type MomentumTrend string

const (
	TrendStable           MomentumTrend = "stable"
	TrendImproving        MomentumTrend = "improving"
	TrendDeclining        MomentumTrend = "declining"
	TrendInsufficientData MomentumTrend = "insufficient_data"
)

// MomentumResult carries the recent-window trend fit. The momentum score
// is the slope scaled by correlation strength and gated on significance,
// so noisy runs score near zero.
type MomentumResult struct {
	Trend         MomentumTrend `json:"trend"`
	MomentumScore float64       `json:"momentum_score"`
	Slope         float64       `json:"slope"`
	Correlation   float64       `json:"correlation"`
	PValue        float64       `json:"p_value"`
}

// Momentum fits a linear trend over the last window observations.
func Momentum(values []float64, window int) MomentumResult {
	if window <= 0 || len(values) < window {
		return MomentumResult{Trend: TrendInsufficientData}
	}

	fit := fitTrend(values[len(values)-window:])

	score := 0.0
	if fit.PValue < 0.05 {
		score = fit.Slope * math.Abs(fit.Correlation)
	}

	trend := TrendStable
	switch {
	case math.Abs(fit.Slope) < 0.1:
		trend = TrendStable
	case fit.Slope > 0.1:
		trend = TrendImproving
	default:
		trend = TrendDeclining
	}

	return MomentumResult{
		Trend:         trend,
		MomentumScore: score,
		Slope:         fit.Slope,
		Correlation:   fit.Correlation,
		PValue:        fit.PValue,
	}
}
