package engine

import (
	"math"
	"testing"
)

func TestSmoothProportionPosterior(t *testing.T) {
	// 2 successes in 5 trials with a Beta(2, 2) prior gives a
	// Beta(4, 5) posterior and mean 4/9.
	est := SmoothProportion(2, 5, 2, 2)
	if math.Abs(est.SmoothedProbability-4.0/9.0) > 1e-12 {
		t.Fatalf("expected smoothed probability 4/9, got %v", est.SmoothedProbability)
	}
	if est.EffectiveSampleSize != 9 {
		t.Fatalf("expected effective sample size 9, got %v", est.EffectiveSampleSize)
	}
	if math.Abs(est.ShrinkageFactor-4.0/9.0) > 1e-12 {
		t.Fatalf("expected shrinkage 4/9, got %v", est.ShrinkageFactor)
	}
	if est.CredibleLower >= est.CredibleUpper {
		t.Fatalf("credible interval inverted: (%v, %v)", est.CredibleLower, est.CredibleUpper)
	}
	if est.CredibleLower < 0 || est.CredibleUpper > 1 {
		t.Fatalf("credible interval escapes [0,1]: (%v, %v)", est.CredibleLower, est.CredibleUpper)
	}
}

func TestSmoothProportionZeroTrials(t *testing.T) {
	est := SmoothProportion(0, 0, 2, 2)
	if est.SmoothedProbability != 0.5 {
		t.Fatalf("zero trials should return the prior mean, got %v", est.SmoothedProbability)
	}
	if est.CredibleLower != 0 || est.CredibleUpper != 1 {
		t.Fatalf("zero trials should return the full interval, got (%v, %v)", est.CredibleLower, est.CredibleUpper)
	}
	if est.ShrinkageFactor != 1 {
		t.Fatalf("zero trials should carry full shrinkage, got %v", est.ShrinkageFactor)
	}
}

func TestSmoothProportionConvergence(t *testing.T) {
	// With a fixed 70% empirical rate the posterior mean converges to
	// the frequency and the shrinkage factor vanishes.
	prevDistance := math.Inf(1)
	prevShrinkage := math.Inf(1)
	for _, trials := range []int{10, 100, 1000, 10000} {
		successes := trials * 7 / 10
		est := SmoothProportion(successes, trials, 2, 2)
		distance := math.Abs(est.SmoothedProbability - 0.7)
		if distance >= prevDistance {
			t.Fatalf("smoothed probability not converging at trials=%d: distance %v", trials, distance)
		}
		if est.ShrinkageFactor >= prevShrinkage {
			t.Fatalf("shrinkage not vanishing at trials=%d", trials)
		}
		prevDistance = distance
		prevShrinkage = est.ShrinkageFactor
	}
	if prevShrinkage > 0.001 {
		t.Fatalf("shrinkage should approach zero, got %v", prevShrinkage)
	}
}
