package models

// ProbabilityEstimate is the per-threshold output of the frequency
// estimator, annotated with confidence and significance. All probability
// fields lie in [0,1]; CILower <= CIUpper; NExceeds <= NGames.
type ProbabilityEstimate struct {
	Threshold                  float64           `json:"threshold"`
	Frequency                  float64           `json:"frequency"`
	WeightedFrequency          float64           `json:"weighted_frequency"`
	InverseProbability         float64           `json:"inverse_probability"`
	WeightedInverseProbability float64           `json:"weighted_inverse_probability"`
	NGames                     int               `json:"n_games"`
	NExceeds                   int               `json:"n_exceeds"`
	CILower                    float64           `json:"ci_lower"`
	CIUpper                    float64           `json:"ci_upper"`
	PValue                     float64           `json:"p_value"`
	Significant                bool              `json:"significant"`
	Bayesian                   *BayesianEstimate `json:"bayesian_smoothed,omitempty"`
	CareerWeighted             *CareerWeighted   `json:"career_weighted,omitempty"`
}

// BayesianEstimate is a Beta-Binomial smoothed probability for small
// samples. ShrinkageFactor shows how much weight the prior still carries.
type BayesianEstimate struct {
	SmoothedProbability  float64 `json:"smoothed_probability"`
	CredibleLower        float64 `json:"credible_interval_lower"`
	CredibleUpper        float64 `json:"credible_interval_upper"`
	EffectiveSampleSize  float64 `json:"effective_sample_size"`
	ShrinkageFactor      float64 `json:"shrinkage_factor"`
}

// CareerWeighted annotates an estimate with phase-decayed frequencies.
// When present it supersedes the plain alpha-weighted frequency.
type CareerWeighted struct {
	Frequency          float64     `json:"career_weighted_frequency"`
	InverseProbability float64     `json:"career_weighted_inverse_probability"`
	Phase              CareerPhase `json:"career_phase"`
}

// DynamicThreshold is the mean / mean+kσ ladder derived from a season
// average and a per-stat coefficient-of-variation estimate.
type DynamicThreshold struct {
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Plus1Std float64 `json:"plus_1_std"`
	Plus2Std float64 `json:"plus_2_std"`
	Plus3Std float64 `json:"plus_3_std"`
}

// Levels returns the ladder as (label, cutoff) pairs in ascending order.
func (d DynamicThreshold) Levels() []DynamicLevel {
	return []DynamicLevel{
		{Name: "mean", Value: d.Mean},
		{Name: "plus_1_std", Value: d.Plus1Std},
		{Name: "plus_2_std", Value: d.Plus2Std},
		{Name: "plus_3_std", Value: d.Plus3Std},
	}
}

// DynamicLevel is one rung of a dynamic threshold ladder.
type DynamicLevel struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatEstimates groups every threshold estimate for one stat. Outcome
// records whether the stat was usable at all, so callers can distinguish
// "no data" from "threshold never met".
type StatEstimates struct {
	Stat       Stat                            `json:"stat"`
	Outcome    StatOutcome                     `json:"outcome"`
	Thresholds map[float64]ProbabilityEstimate `json:"thresholds,omitempty"`
}

// FatigueAnalysis measures how far the recent rolling average has drifted
// above the long-run mean. Risk rises sharply once the recent window sits
// about one standard deviation hot.
type FatigueAnalysis struct {
	RegressionRisk       float64 `json:"regression_risk"`
	SustainabilityFactor float64 `json:"sustainability_factor"`
	RecentRollingMean    float64 `json:"recent_rolling_mean"`
	LongTermMean         float64 `json:"long_term_mean"`
	ZScore               float64 `json:"z_score"`
	PerformanceAboveMean bool    `json:"performance_above_mean"`
}

// MinutesTrend reports whether playing time is in significant decline.
type MinutesTrend struct {
	DecliningTrend       bool    `json:"declining_trend"`
	TrendSlope           float64 `json:"trend_slope"`
	SustainabilityFactor float64 `json:"sustainability_factor"`
	Correlation          float64 `json:"correlation"`
	PValue               float64 `json:"p_value"`
	RecentMinutesAvg     float64 `json:"recent_minutes_avg"`
}

// StationarityAdjustment flags a regime change: recent behavior visibly
// shifted from the historical baseline for one stat.
type StationarityAdjustment struct {
	RecentMean           float64 `json:"recent_mean"`
	RecentStd            float64 `json:"recent_std"`
	FullMean             float64 `json:"full_mean"`
	FullStd              float64 `json:"full_std"`
	RegimeChangeDetected bool    `json:"regime_change_detected"`
	RegimeChangeZ        float64 `json:"regime_change_magnitude"`
	AdjustmentFactor     float64 `json:"adjustment_factor"`
}

// AdjustmentFactors are the multiplicative corrections applied to the
// base inverse probability. Each is a positive scalar; the composite
// product is capped downstream so the result never exceeds 0.95.
type AdjustmentFactors struct {
	Fatigue      float64 `json:"fatigue_adjustment"`
	Minutes      float64 `json:"minutes_adjustment"`
	Stationarity float64 `json:"stationarity_adjustment"`
}

// CompositeResult is the terminal per-threshold output: the annotated
// base estimate plus the composed regression probability.
type CompositeResult struct {
	ProbabilityEstimate
	Adjustments                    AdjustmentFactors `json:"adjustments"`
	CompositeRegressionProbability float64           `json:"composite_regression_probability"`
	FinalSustainabilityScore       float64           `json:"final_sustainability_score"`
}

// Evaluation is everything one engine invocation produces for a player:
// composite results keyed by stat and threshold plus the intermediate
// diagnostics the dashboard layer displays.
type Evaluation struct {
	Phase        CareerPhase                        `json:"career_phase"`
	NGames       int                                `json:"n_games_analyzed"`
	Results      map[Stat]CompositeStatResult       `json:"results"`
	Fatigue      FatigueAnalysis                    `json:"fatigue_analysis"`
	Minutes      MinutesTrend                       `json:"minutes_analysis"`
	Stationarity map[Stat]StationarityAdjustment    `json:"stationarity_adjustments"`
	LeagueZ      map[Stat]float64                   `json:"league_z_scores,omitempty"`
}

// CompositeStatResult groups composite results for one stat.
type CompositeStatResult struct {
	Stat       Stat                        `json:"stat"`
	Outcome    StatOutcome                 `json:"outcome"`
	Thresholds map[float64]CompositeResult `json:"thresholds,omitempty"`
}
