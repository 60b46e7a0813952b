// Package engine implements the regression-to-mean probability model:
// recency-weighted threshold frequencies, Wilson confidence intervals,
// exact binomial significance tests, Beta-Binomial smoothing for small
// samples, career-phase decay selection, and the fatigue, minutes-trend
// and non-stationarity adjustments that feed the composite estimate.
//
// Everything in this package is a pure function of its inputs: no I/O,
// no clock, no randomness, no shared mutable state. Identical inputs
// always produce identical outputs.
package engine

import (
	"fmt"

	"github.com/yourusername/hot-streak/internal/models"
)

// Params holds the tunable constants of the model. Zero values are not
// usable; start from DefaultParams and override.
type Params struct {
	// Alpha is the recency decay factor for weighted frequencies,
	// in (0.5, 1.0]. Alpha of 1 degenerates to a simple mean.
	Alpha float64

	// Lambda overrides the per-phase exponential decay rates used for
	// career-weighted frequencies. Phases absent from the map keep
	// their defaults.
	Lambda map[models.CareerPhase]float64

	// WindowSize is the rolling window for fatigue and minutes-trend
	// analysis.
	WindowSize int

	// LookbackWindow is the recent-window length for regime-change
	// detection.
	LookbackWindow int

	// PriorAlpha and PriorBeta parameterize the Beta prior used for
	// small-sample smoothing.
	PriorAlpha float64
	PriorBeta  float64

	// SmallSampleThreshold is the trial count below which Bayesian
	// smoothing is applied automatically.
	SmallSampleThreshold int

	// ConfidenceLevel sets the Wilson interval coverage.
	ConfidenceLevel float64
}

// DefaultParams returns the calibrated model defaults.
func DefaultParams() Params {
	return Params{
		Alpha:                0.85,
		WindowSize:           10,
		LookbackWindow:       20,
		PriorAlpha:           2.0,
		PriorBeta:            2.0,
		SmallSampleThreshold: 10,
		ConfidenceLevel:      0.95,
	}
}

// Validate checks the parameters for structural validity. Invalid
// parameters are a caller error and are reported immediately rather
// than degraded around.
func (p Params) Validate() error {
	if p.Alpha <= 0.5 || p.Alpha > 1.0 {
		return fmt.Errorf("%w: got %v", models.ErrInvalidAlpha, p.Alpha)
	}
	if p.WindowSize <= 0 {
		return fmt.Errorf("%w: window_size %d", models.ErrInvalidWindow, p.WindowSize)
	}
	if p.LookbackWindow <= 0 {
		return fmt.Errorf("%w: lookback_window %d", models.ErrInvalidWindow, p.LookbackWindow)
	}
	if p.PriorAlpha <= 0 || p.PriorBeta <= 0 {
		return fmt.Errorf("%w: got (%v, %v)", models.ErrInvalidPrior, p.PriorAlpha, p.PriorBeta)
	}
	if p.ConfidenceLevel <= 0 || p.ConfidenceLevel >= 1 {
		return fmt.Errorf("%w: got %v", models.ErrInvalidConfidence, p.ConfidenceLevel)
	}
	for phase, lambda := range p.Lambda {
		if !phase.Valid() {
			return fmt.Errorf("unknown career phase %q in lambda overrides", phase)
		}
		if lambda <= 0 {
			return fmt.Errorf("lambda for phase %q must be positive, got %v", phase, lambda)
		}
	}
	return nil
}
