package engine

import (
	"math"

	"github.com/yourusername/hot-streak/internal/league"
	"github.com/yourusername/hot-streak/internal/models"
)

// compositeCap is the ceiling on the composite regression probability.
// The model never claims near-certainty of a cool-off.
const compositeCap = 0.95

// Evaluator runs the full regression-to-mean pipeline for one player
// series. It owns the league-averages registry so league context is
// computed at most once per season, but holds no per-evaluation state:
// every Evaluate call is independent and safe to run concurrently.
type Evaluator struct {
	params Params
	league *league.Registry
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLeague wires a league-averages registry into the evaluator so
// evaluations carry league-relative z-scores.
func WithLeague(registry *league.Registry) Option {
	return func(e *Evaluator) { e.league = registry }
}

// NewEvaluator validates the parameters and builds an evaluator.
func NewEvaluator(params Params, opts ...Option) (*Evaluator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Evaluator{params: params}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Params returns the evaluator's parameters.
func (e *Evaluator) Params() Params {
	return e.params
}

// Evaluate runs the pipeline: base inverse-frequency estimates, career
// phase weighting, then the independent fatigue, minutes and
// non-stationarity signals, combined multiplicatively into the final
// regression probability per (stat, threshold). An empty series yields
// an empty evaluation rather than an error.
func (e *Evaluator) Evaluate(series models.GameSeries, seasons []models.SeasonAverage, thresholds map[models.Stat][]float64) (*models.Evaluation, error) {
	ordered := series.Sorted()

	base, err := EstimateFrequencies(ordered, thresholds, e.params)
	if err != nil {
		return nil, err
	}

	phase := ClassifyCareerPhase(seasons)
	weighted := ApplyCareerWeighting(ordered, phase, base, e.params.Lambda)

	points, _ := ordered.Values(models.StatPoints)
	minutes, _ := ordered.Values(models.StatMinutes)

	fatigue := AnalyzeFatigue(points, e.params.WindowSize)
	minutesTrend := AnalyzeMinutesTrend(minutes, e.params.WindowSize)
	stationarity := DetectNonStationarity(ordered, e.params.LookbackWindow)

	evaluation := &models.Evaluation{
		Phase:        phase,
		NGames:       len(ordered),
		Results:      make(map[models.Stat]models.CompositeStatResult, len(weighted)),
		Fatigue:      fatigue,
		Minutes:      minutesTrend,
		Stationarity: stationarity,
	}

	for stat, statResult := range weighted {
		composite := models.CompositeStatResult{Stat: stat, Outcome: statResult.Outcome}
		if statResult.Outcome == models.StatOK {
			composite.Thresholds = make(map[float64]models.CompositeResult, len(statResult.Thresholds))
			for cutoff, est := range statResult.Thresholds {
				composite.Thresholds[cutoff] = combine(est, fatigue, minutesTrend, stationarity, stat)
			}
		}
		evaluation.Results[stat] = composite
	}

	if e.league != nil && len(seasons) > 0 {
		latest := seasons[0]
		for _, s := range seasons {
			if s.Season > latest.Season {
				latest = s
			}
		}
		evaluation.LeagueZ = e.league.Averages(latest.Season).ZScores(latest)
	}

	return evaluation, nil
}

// combine folds the adjustment signals into one composite regression
// probability. The multiplier constants are calibrated, not derived.
func combine(est models.ProbabilityEstimate, fatigue models.FatigueAnalysis, minutes models.MinutesTrend, stationarity map[models.Stat]models.StationarityAdjustment, stat models.Stat) models.CompositeResult {
	fatigueMult := 1 + 0.3*fatigue.RegressionRisk
	minutesMult := 2 - minutes.SustainabilityFactor

	stationarityMult := 1.0
	if adj, ok := stationarity[stat]; ok {
		stationarityMult = adj.AdjustmentFactor
	}

	prob := math.Min(compositeCap, est.WeightedInverseProbability*fatigueMult*minutesMult*stationarityMult)

	return models.CompositeResult{
		ProbabilityEstimate: est,
		Adjustments: models.AdjustmentFactors{
			Fatigue:      fatigueMult,
			Minutes:      minutesMult,
			Stationarity: stationarityMult,
		},
		CompositeRegressionProbability: prob,
		FinalSustainabilityScore:       1 - prob,
	}
}
