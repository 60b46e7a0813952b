package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// popStd returns the population standard deviation. The model's z-scores
// are descriptive, not inferential, so no Bessel correction is applied.
func popStd(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	m := stat.Mean(values, nil)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// olsFit is an ordinary-least-squares fit of values against their index
// 0..n-1, with a two-sided t-test on the slope.
type olsFit struct {
	Slope       float64
	Intercept   float64
	Correlation float64
	PValue      float64
}

// fitTrend regresses values on their position in the series. Degenerate
// inputs (fewer than 3 points, or zero variance) yield a flat fit with
// p-value 1 rather than an error.
func fitTrend(values []float64) olsFit {
	n := len(values)
	if n < 2 {
		return olsFit{PValue: 1}
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, values, nil, false)
	if math.IsNaN(slope) {
		return olsFit{PValue: 1}
	}

	r := stat.Correlation(xs, values, nil)
	if math.IsNaN(r) {
		// Constant series: slope is 0 and there is no trend to test.
		return olsFit{Intercept: intercept, PValue: 1}
	}

	fit := olsFit{Slope: slope, Intercept: intercept, Correlation: r, PValue: 1}
	if n < 3 {
		return fit
	}

	r2 := r * r
	if r2 >= 1 {
		fit.PValue = 0
		return fit
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r2))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	fit.PValue = 2 * tDist.Survival(math.Abs(t))
	return fit
}

// clamp01 restricts a probability to [0, 1].
func clamp01(p float64) float64 {
	return math.Min(1, math.Max(0, p))
}
