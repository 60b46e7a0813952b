package engine

import (
	"math"
	"sort"
)

// ConsistencyMetrics summarizes how steady a stat series is. The
// consistency score is the inverse of the coefficient of variation,
// mapped into (0, 1].
type ConsistencyMetrics struct {
	Mean        float64 `json:"mean"`
	Std         float64 `json:"std"`
	CV          float64 `json:"cv"`
	Median      float64 `json:"median"`
	Range       float64 `json:"range"`
	Consistency float64 `json:"consistency"`
}

// Consistency computes consistency metrics for a stat series. An empty
// series returns the zero value.
func Consistency(values []float64) ConsistencyMetrics {
	if len(values) == 0 {
		return ConsistencyMetrics{}
	}

	m := mean(values)
	std := popStd(values)

	cv := 0.0
	if m > 0 {
		cv = std / m
	}
	consistency := 1.0
	if cv > 0 {
		consistency = 1 / (1 + cv)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return ConsistencyMetrics{
		Mean:        m,
		Std:         std,
		CV:          cv,
		Median:      median(sorted),
		Range:       sorted[len(sorted)-1] - sorted[0],
		Consistency: consistency,
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// OutlierMethod selects the outlier detection rule.
type OutlierMethod string

const (
	OutlierIQR       OutlierMethod = "iqr"
	OutlierZScore    OutlierMethod = "zscore"
	OutlierModifiedZ OutlierMethod = "modified_z"
)

// DetectOutliers flags anomalous games in a performance series. Fewer
// than 4 observations cannot support an outlier call, so every point is
// reported as inlier.
func DetectOutliers(values []float64, method OutlierMethod) []bool {
	flags := make([]bool, len(values))
	if len(values) < 4 {
		return flags
	}

	switch method {
	case OutlierZScore:
		m := mean(values)
		std := popStd(values)
		if std == 0 {
			return flags
		}
		for i, v := range values {
			flags[i] = math.Abs((v-m)/std) > 2.5
		}

	case OutlierModifiedZ:
		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)
		med := median(sorted)

		deviations := make([]float64, len(values))
		for i, v := range values {
			deviations[i] = math.Abs(v - med)
		}
		sort.Float64s(deviations)
		mad := median(deviations)
		if mad == 0 {
			return flags
		}
		for i, v := range values {
			flags[i] = math.Abs(0.6745*(v-med)/mad) > 3.5
		}

	default: // IQR
		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)
		q1 := percentile(sorted, 0.25)
		q3 := percentile(sorted, 0.75)
		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr
		for i, v := range values {
			flags[i] = v < lower || v > upper
		}
	}
	return flags
}

// percentile interpolates the q-th percentile of a sorted slice.
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	idx := int(math.Floor(pos))
	if idx >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(idx)
	return sorted[idx]*(1-frac) + sorted[idx+1]*frac
}
