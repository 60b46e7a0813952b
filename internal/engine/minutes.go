package engine

import (
	"math"

	"github.com/yourusername/hot-streak/internal/models"
)

// AnalyzeMinutesTrend detects declining playing time, a leading indicator
// of load management or injury. The last window of minutes values is
// regressed on game index; the trend counts as declining only when the
// slope is steeper than -0.5 and the slope t-test clears p < 0.1. The
// sustainability penalty is floored at 0.3 so one bad stretch cannot
// zero out a player.
func AnalyzeMinutesTrend(minutes []float64, window int) models.MinutesTrend {
	neutral := models.MinutesTrend{SustainabilityFactor: 1, PValue: 1}
	if window <= 0 || len(minutes) < window {
		return neutral
	}

	recent := minutes[len(minutes)-window:]
	fit := fitTrend(recent)

	declining := fit.Slope < -0.5 && fit.PValue < 0.1
	sustainability := 1.0
	if declining {
		sustainability = math.Max(0.3, 1+fit.Slope/10)
	}

	return models.MinutesTrend{
		DecliningTrend:       declining,
		TrendSlope:           fit.Slope,
		SustainabilityFactor: sustainability,
		Correlation:          fit.Correlation,
		PValue:               fit.PValue,
		RecentMinutesAvg:     mean(recent),
	}
}
