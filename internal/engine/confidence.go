package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// WilsonInterval returns the Wilson score confidence interval for a
// binomial proportion. It is preferred over the Wald interval because it
// stays valid for small trial counts and extreme proportions. Zero trials
// yield the degenerate interval (0, 0).
func WilsonInterval(successes, trials int, confidence float64) (lower, upper float64) {
	if trials == 0 {
		return 0, 0
	}

	n := float64(trials)
	p := float64(successes) / n
	z := distuv.UnitNormal.Quantile((1 + confidence) / 2)

	denom := 1 + z*z/n
	center := (p + z*z/(2*n)) / denom
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom

	return math.Max(0, center-margin), math.Min(1, center+margin)
}

// BinomialTest performs a two-sided exact binomial test of the observed
// success count against null proportion p0. It sums the probabilities of
// all outcomes at most as likely as the observed one. Zero trials, or a
// degenerate null, report p-value 1 ("not significant") rather than
// failing.
func BinomialTest(successes, trials int, p0 float64) float64 {
	if trials == 0 || p0 <= 0 || p0 >= 1 {
		return 1
	}

	dist := distuv.Binomial{N: float64(trials), P: p0}
	observed := dist.Prob(float64(successes))

	// Small relative slack absorbs floating-point noise when comparing
	// tail probabilities against the observed mass.
	cutoff := observed * (1 + 1e-7)

	p := 0.0
	for k := 0; k <= trials; k++ {
		if prob := dist.Prob(float64(k)); prob <= cutoff {
			p += prob
		}
	}
	return math.Min(1, p)
}
