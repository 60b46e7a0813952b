package engine

import (
	"math"

	"github.com/yourusername/hot-streak/internal/models"
)

// defaultLambda maps each career phase to its exponential decay rate.
// Late-career players decay fastest: regression is more likely, so old
// hot games should count for less.
var defaultLambda = map[models.CareerPhase]float64{
	models.PhaseEarly:   0.02,
	models.PhaseRising:  0.03,
	models.PhasePeak:    0.05,
	models.PhaseLate:    0.08,
	models.PhaseUnknown: 0.04,
}

// RecencyWeights builds the alpha-form weight vector w_i = alpha^(n-i-1),
// normalized to sum to 1. Index 0 is the oldest game; weights are
// non-decreasing toward the most recent game. An empty series yields an
// empty vector, which callers must guard before dividing by its sum.
func RecencyWeights(n int, alpha float64) []float64 {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		weights[i] = math.Pow(alpha, float64(n-i-1))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// PhaseLambda resolves the decay rate for a career phase, honoring
// per-phase overrides.
func PhaseLambda(phase models.CareerPhase, overrides map[models.CareerPhase]float64) float64 {
	if overrides != nil {
		if lambda, ok := overrides[phase]; ok {
			return lambda
		}
	}
	if lambda, ok := defaultLambda[phase]; ok {
		return lambda
	}
	return defaultLambda[models.PhaseUnknown]
}

// PhaseWeights builds the lambda-form weight vector w_i = e^(-λ(n-i-1)),
// normalized to sum to 1. Same shape contract as RecencyWeights.
func PhaseWeights(n int, lambda float64) []float64 {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		weights[i] = math.Exp(-lambda * float64(n-i-1))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}
