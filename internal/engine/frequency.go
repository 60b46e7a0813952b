package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/hot-streak/internal/models"
)

// countExceeds returns how many values meet or beat the threshold.
func countExceeds(values []float64, threshold float64) int {
	n := 0
	for _, v := range values {
		if v >= threshold {
			n++
		}
	}
	return n
}

// weightedExceedance is the weight mass on games meeting the threshold.
func weightedExceedance(values, weights []float64, threshold float64) float64 {
	sum := 0.0
	for i, v := range values {
		if v >= threshold {
			sum += weights[i]
		}
	}
	return sum
}

// EstimateThreshold computes the full probability estimate for one stat
// series against one cutoff: raw and recency-weighted exceedance
// frequency, the inverse "cool-off" probabilities, Wilson interval,
// binomial significance, and Bayesian smoothing when the sample is thin.
func EstimateThreshold(values []float64, threshold float64, p Params) models.ProbabilityEstimate {
	nGames := len(values)
	weights := RecencyWeights(nGames, p.Alpha)
	nExceeds := countExceeds(values, threshold)

	var frequency, weighted float64
	if nGames > 0 {
		frequency = float64(nExceeds) / float64(nGames)
		weighted = weightedExceedance(values, weights, threshold)
	}

	lower, upper := WilsonInterval(nExceeds, nGames, p.ConfidenceLevel)
	pValue := BinomialTest(nExceeds, nGames, 0.5)

	est := models.ProbabilityEstimate{
		Threshold:                  threshold,
		Frequency:                  frequency,
		WeightedFrequency:          weighted,
		InverseProbability:         1 - frequency,
		WeightedInverseProbability: 1 - weighted,
		NGames:                     nGames,
		NExceeds:                   nExceeds,
		CILower:                    lower,
		CIUpper:                    upper,
		PValue:                     pValue,
		Significant:                pValue < 0.05,
	}

	if nGames < p.SmallSampleThreshold {
		smoothed := SmoothProportion(nExceeds, nGames, p.PriorAlpha, p.PriorBeta)
		est.Bayesian = &smoothed
	}

	return est
}

// EstimateFrequencies evaluates every requested (stat, threshold) pair
// against the series. Stats absent from the series are reported as
// StatNotAvailable rather than silently dropped. A threshold that is not
// a finite number is a caller error.
func EstimateFrequencies(series models.GameSeries, thresholds map[models.Stat][]float64, p Params) (map[models.Stat]models.StatEstimates, error) {
	for stat, cutoffs := range thresholds {
		for _, t := range cutoffs {
			if math.IsNaN(t) || math.IsInf(t, 0) {
				return nil, fmt.Errorf("%w: stat %s", models.ErrInvalidThreshold, stat)
			}
		}
	}

	results := make(map[models.Stat]models.StatEstimates, len(thresholds))
	for stat, cutoffs := range thresholds {
		values, present := series.Values(stat)
		switch {
		case !present:
			results[stat] = models.StatEstimates{Stat: stat, Outcome: models.StatNotAvailable}
			continue
		case len(values) == 0:
			results[stat] = models.StatEstimates{Stat: stat, Outcome: models.StatInsufficientData}
			continue
		}

		estimates := make(map[float64]models.ProbabilityEstimate, len(cutoffs))
		for _, t := range cutoffs {
			estimates[t] = EstimateThreshold(values, t, p)
		}
		results[stat] = models.StatEstimates{Stat: stat, Outcome: models.StatOK, Thresholds: estimates}
	}
	return results, nil
}

// DynamicThresholds derives the mean / mean+kσ cutoff ladder from season
// averages, estimating the per-stat standard deviation with calibrated
// coefficient-of-variation constants. Stats without a calibrated CV are
// skipped.
func DynamicThresholds(season models.SeasonAverage) map[models.Stat]models.DynamicThreshold {
	ladders := make(map[models.Stat]models.DynamicThreshold)
	for _, stat := range models.ThresholdStats() {
		cv, ok := stat.CoefficientOfVariation()
		if !ok {
			continue
		}
		m, ok := season.StatAverage(stat)
		if !ok {
			continue
		}
		std := m * cv
		ladders[stat] = models.DynamicThreshold{
			Mean:     m,
			Std:      std,
			Plus1Std: m + std,
			Plus2Std: m + 2*std,
			Plus3Std: m + 3*std,
		}
	}
	return ladders
}

// EstimateDynamic evaluates the dynamic threshold ladder for each stat,
// keyed by level name (mean, plus_1_std, ...).
func EstimateDynamic(series models.GameSeries, ladders map[models.Stat]models.DynamicThreshold, p Params) map[models.Stat]map[string]models.ProbabilityEstimate {
	results := make(map[models.Stat]map[string]models.ProbabilityEstimate, len(ladders))
	for stat, ladder := range ladders {
		values, present := series.Values(stat)
		if !present || len(values) == 0 {
			continue
		}
		levels := make(map[string]models.ProbabilityEstimate, 4)
		for _, level := range ladder.Levels() {
			levels[level.Name] = EstimateThreshold(values, level.Value, p)
		}
		results[stat] = levels
	}
	return results
}
