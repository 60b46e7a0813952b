package engine

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/hot-streak/internal/models"
)

// SmoothProportion shrinks an empirical success rate toward a Beta prior
// using the Beta-Binomial conjugate update. With the default Beta(2, 2)
// prior the estimate is pulled gently toward 0.5 on thin samples; as
// trials grow the shrinkage factor vanishes and the posterior mean
// converges to the raw frequency.
func SmoothProportion(successes, trials int, priorAlpha, priorBeta float64) models.BayesianEstimate {
	if trials == 0 {
		return models.BayesianEstimate{
			SmoothedProbability: priorAlpha / (priorAlpha + priorBeta),
			CredibleLower:       0,
			CredibleUpper:       1,
			EffectiveSampleSize: priorAlpha + priorBeta,
			ShrinkageFactor:     1,
		}
	}

	postAlpha := priorAlpha + float64(successes)
	postBeta := priorBeta + float64(trials-successes)
	effectiveN := postAlpha + postBeta

	posterior := distuv.Beta{Alpha: postAlpha, Beta: postBeta}

	return models.BayesianEstimate{
		SmoothedProbability: postAlpha / effectiveN,
		CredibleLower:       posterior.Quantile(0.025),
		CredibleUpper:       posterior.Quantile(0.975),
		EffectiveSampleSize: effectiveN,
		ShrinkageFactor:     (priorAlpha + priorBeta) / effectiveN,
	}
}
