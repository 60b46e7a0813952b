package engine

import (
	"math"

	"github.com/yourusername/hot-streak/internal/models"
)

// AnalyzeFatigue measures regression risk from how hot the recent rolling
// window runs relative to the long-term baseline. The sigmoid is centered
// one standard deviation above the long-run mean, so risk stays low until
// recent performance is notably elevated. A series shorter than the
// window carries no signal: risk 0, sustainability 1.
func AnalyzeFatigue(points []float64, window int) models.FatigueAnalysis {
	neutral := models.FatigueAnalysis{SustainabilityFactor: 1}
	if window <= 0 || len(points) < window {
		return neutral
	}

	recentMean := mean(points[len(points)-window:])
	longTermMean := mean(points)
	longTermStd := popStd(points)

	var z, risk float64
	if longTermStd > 0 {
		z = (recentMean - longTermMean) / longTermStd
		risk = 1 / (1 + math.Exp(-1.5*(z-1)))
	}

	return models.FatigueAnalysis{
		RegressionRisk:       risk,
		SustainabilityFactor: 1 - risk,
		RecentRollingMean:    recentMean,
		LongTermMean:         longTermMean,
		ZScore:               z,
		PerformanceAboveMean: recentMean > longTermMean,
	}
}
