package engine

import (
	"sort"

	"github.com/yourusername/hot-streak/internal/models"
)

// ClassifyCareerPhase labels a player's trajectory from season-level
// scoring averages. The rules, applied in order: fewer than 2 seasons is
// unknown; fewer than 3 valid scoring values is early; then the OLS slope
// of points per game against season index decides between early (short
// career), late (long career in decline), rising, and peak.
func ClassifyCareerPhase(seasons []models.SeasonAverage) models.CareerPhase {
	if len(seasons) < 2 {
		return models.PhaseUnknown
	}

	ordered := make([]models.SeasonAverage, len(seasons))
	copy(ordered, seasons)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Season < ordered[j].Season })

	points := make([]float64, 0, len(ordered))
	for _, s := range ordered {
		if s.Points > 0 {
			points = append(points, s.Points)
		}
	}

	if len(points) < 3 {
		return models.PhaseEarly
	}

	fit := fitTrend(points)
	careerLength := len(points)

	switch {
	case careerLength <= 3:
		return models.PhaseEarly
	case careerLength >= 10 && fit.Slope < -0.5:
		return models.PhaseLate
	case fit.Slope > 0.5:
		return models.PhaseRising
	default:
		return models.PhasePeak
	}
}

// ApplyCareerWeighting recomputes each estimate's weighted frequency with
// the phase-selected lambda decay, annotating the base estimates in place
// of the plain alpha weighting. The input map is not mutated.
func ApplyCareerWeighting(series models.GameSeries, phase models.CareerPhase, base map[models.Stat]models.StatEstimates, overrides map[models.CareerPhase]float64) map[models.Stat]models.StatEstimates {
	lambda := PhaseLambda(phase, overrides)

	adjusted := make(map[models.Stat]models.StatEstimates, len(base))
	for stat, statResult := range base {
		if statResult.Outcome != models.StatOK {
			adjusted[stat] = statResult
			continue
		}

		values, _ := series.Values(stat)
		weights := PhaseWeights(len(values), lambda)

		thresholds := make(map[float64]models.ProbabilityEstimate, len(statResult.Thresholds))
		for cutoff, est := range statResult.Thresholds {
			freq := weightedExceedance(values, weights, cutoff)
			est.CareerWeighted = &models.CareerWeighted{
				Frequency:          freq,
				InverseProbability: 1 - freq,
				Phase:              phase,
			}
			thresholds[cutoff] = est
		}
		adjusted[stat] = models.StatEstimates{Stat: stat, Outcome: statResult.Outcome, Thresholds: thresholds}
	}
	return adjusted
}
