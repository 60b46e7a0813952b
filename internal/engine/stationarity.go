package engine

import (
	"math"

	"github.com/yourusername/hot-streak/internal/models"
)

// DetectNonStationarity compares each threshold stat's recent lookback
// window against its full history. A recent mean more than 1.5 full-series
// standard deviations away from the full mean marks a regime change, and
// the model's confidence for that stat is dampened to 0.7. Stats with
// fewer observations than the lookback are skipped.
func DetectNonStationarity(series models.GameSeries, lookback int) map[models.Stat]models.StationarityAdjustment {
	adjustments := make(map[models.Stat]models.StationarityAdjustment)
	if lookback <= 0 {
		return adjustments
	}

	for _, stat := range []models.Stat{models.StatPoints, models.StatRebounds, models.StatAssists} {
		values, present := series.Values(stat)
		if !present || len(values) < lookback {
			continue
		}

		recent := values[len(values)-lookback:]
		recentMean := mean(recent)
		recentStd := popStd(recent)
		fullMean := mean(values)
		fullStd := popStd(values)

		var z float64
		detected := false
		if fullStd > 0 {
			z = math.Abs(recentMean-fullMean) / fullStd
			detected = z > 1.5
		}

		factor := 1.0
		if detected {
			factor = 0.7
		}

		adjustments[stat] = models.StationarityAdjustment{
			RecentMean:           recentMean,
			RecentStd:            recentStd,
			FullMean:             fullMean,
			FullStd:              fullStd,
			RegimeChangeDetected: detected,
			RegimeChangeZ:        z,
			AdjustmentFactor:     factor,
		}
	}
	return adjustments
}
