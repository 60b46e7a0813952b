package engine

import (
	"math"
	"testing"

	"github.com/yourusername/hot-streak/internal/models"
)

func TestAnalyzeFatigueShortSeries(t *testing.T) {
	got := AnalyzeFatigue([]float64{20, 22, 25}, 10)
	if got.RegressionRisk != 0 || got.SustainabilityFactor != 1 {
		t.Fatalf("short series must be neutral, got %+v", got)
	}
}

func TestAnalyzeFatigueHotStreak(t *testing.T) {
	// 20 ordinary games followed by a 10-game heater.
	points := make([]float64, 0, 30)
	for i := 0; i < 20; i++ {
		points = append(points, 15)
	}
	for i := 0; i < 10; i++ {
		points = append(points, 32)
	}
	got := AnalyzeFatigue(points, 10)
	if got.RegressionRisk <= 0.5 {
		t.Fatalf("a sustained heater should carry elevated regression risk, got %v", got.RegressionRisk)
	}
	if !got.PerformanceAboveMean {
		t.Fatalf("recent mean is above long-term mean")
	}
	if math.Abs(got.RegressionRisk+got.SustainabilityFactor-1) > 1e-12 {
		t.Fatalf("risk and sustainability must sum to 1")
	}
}

func TestAnalyzeFatigueColdStretchIsLowRisk(t *testing.T) {
	points := make([]float64, 0, 30)
	for i := 0; i < 20; i++ {
		points = append(points, 25)
	}
	for i := 0; i < 10; i++ {
		points = append(points, 12)
	}
	got := AnalyzeFatigue(points, 10)
	if got.RegressionRisk >= 0.5 {
		t.Fatalf("a cold stretch is not regression risk, got %v", got.RegressionRisk)
	}
}

func TestAnalyzeFatigueZeroVariance(t *testing.T) {
	points := make([]float64, 15)
	for i := range points {
		points[i] = 20
	}
	got := AnalyzeFatigue(points, 10)
	if got.RegressionRisk != 0 || got.ZScore != 0 {
		t.Fatalf("zero variance must not divide by zero, got %+v", got)
	}
}

func TestAnalyzeMinutesTrendShortSeries(t *testing.T) {
	got := AnalyzeMinutesTrend([]float64{34, 33}, 10)
	if got.DecliningTrend || got.TrendSlope != 0 || got.SustainabilityFactor != 1 {
		t.Fatalf("short series must be neutral, got %+v", got)
	}
}

func TestAnalyzeMinutesTrendDecline(t *testing.T) {
	// Minutes dropping by exactly 2 per game over the window.
	minutes := []float64{38, 36, 34, 32, 30, 28, 26, 24, 22, 20}
	got := AnalyzeMinutesTrend(minutes, 10)
	if !got.DecliningTrend {
		t.Fatalf("strictly decreasing minutes should flag a decline: %+v", got)
	}
	if math.Abs(got.TrendSlope+2) > 1e-9 {
		t.Fatalf("expected slope -2, got %v", got.TrendSlope)
	}
	if math.Abs(got.SustainabilityFactor-0.8) > 1e-9 {
		t.Fatalf("expected sustainability 0.8, got %v", got.SustainabilityFactor)
	}
	if got.PValue >= 0.1 {
		t.Fatalf("perfect linear decline should be significant, got p=%v", got.PValue)
	}
}

func TestAnalyzeMinutesTrendFloor(t *testing.T) {
	// A cliff-like drop hits the 0.3 sustainability floor.
	minutes := []float64{80, 71, 62, 53, 44, 35, 26, 17, 8, 0}
	got := AnalyzeMinutesTrend(minutes, 10)
	if !got.DecliningTrend {
		t.Fatalf("expected declining trend")
	}
	if got.SustainabilityFactor != 0.3 {
		t.Fatalf("expected floor 0.3, got %v", got.SustainabilityFactor)
	}
}

func TestAnalyzeMinutesTrendStable(t *testing.T) {
	minutes := []float64{34, 35, 33, 34, 36, 34, 35, 33, 34, 35}
	got := AnalyzeMinutesTrend(minutes, 10)
	if got.DecliningTrend {
		t.Fatalf("stable minutes must not flag a decline: %+v", got)
	}
	if got.SustainabilityFactor != 1 {
		t.Fatalf("stable minutes keep sustainability 1, got %v", got.SustainabilityFactor)
	}
}

func TestDetectNonStationarityRegimeChange(t *testing.T) {
	// 80 games at one level then a 20-game shift: the recent window sits
	// two full-series standard deviations from the baseline.
	points := make([]float64, 0, 100)
	for i := 0; i < 80; i++ {
		points = append(points, 10)
	}
	for i := 0; i < 20; i++ {
		points = append(points, 30)
	}
	adjustments := DetectNonStationarity(pointsSeries(points), 20)

	adj, ok := adjustments[models.StatPoints]
	if !ok {
		t.Fatalf("expected a points adjustment")
	}
	if !adj.RegimeChangeDetected {
		t.Fatalf("expected regime change, z=%v", adj.RegimeChangeZ)
	}
	if adj.AdjustmentFactor != 0.7 {
		t.Fatalf("expected damping factor 0.7, got %v", adj.AdjustmentFactor)
	}
}

func TestDetectNonStationarityStableSeries(t *testing.T) {
	points := make([]float64, 40)
	for i := range points {
		points[i] = 20 + float64(i%3)
	}
	adjustments := DetectNonStationarity(pointsSeries(points), 20)
	adj := adjustments[models.StatPoints]
	if adj.RegimeChangeDetected {
		t.Fatalf("stable series must not flag a regime change")
	}
	if adj.AdjustmentFactor != 1 {
		t.Fatalf("expected neutral factor, got %v", adj.AdjustmentFactor)
	}
}

func TestDetectNonStationaritySkipsThinStats(t *testing.T) {
	adjustments := DetectNonStationarity(pointsSeries([]float64{10, 12, 14}), 20)
	if len(adjustments) != 0 {
		t.Fatalf("stats with fewer observations than the lookback are skipped")
	}
}

func TestMomentumImproving(t *testing.T) {
	got := Momentum([]float64{10, 14, 18, 22, 26}, 5)
	if got.Trend != TrendImproving {
		t.Fatalf("expected improving trend, got %s", got.Trend)
	}
	if got.MomentumScore <= 0 {
		t.Fatalf("perfect upward line should score positive momentum, got %v", got.MomentumScore)
	}
}

func TestMomentumInsufficientData(t *testing.T) {
	got := Momentum([]float64{10, 12}, 5)
	if got.Trend != TrendInsufficientData {
		t.Fatalf("expected insufficient_data, got %s", got.Trend)
	}
}

func TestConsistencyMetrics(t *testing.T) {
	got := Consistency([]float64{20, 20, 20, 20})
	if got.CV != 0 || got.Consistency != 1 {
		t.Fatalf("constant series is perfectly consistent, got %+v", got)
	}

	noisy := Consistency([]float64{5, 35, 10, 40, 8, 33})
	if noisy.Consistency >= got.Consistency {
		t.Fatalf("noisy series must score lower consistency")
	}
	if noisy.Range != 35 {
		t.Fatalf("expected range 35, got %v", noisy.Range)
	}
}

func TestDetectOutliersIQR(t *testing.T) {
	values := []float64{20, 21, 19, 22, 20, 21, 95}
	flags := DetectOutliers(values, OutlierIQR)
	if !flags[len(flags)-1] {
		t.Fatalf("the 95-point game is an outlier")
	}
	for i := 0; i < len(flags)-1; i++ {
		if flags[i] {
			t.Fatalf("ordinary game %d flagged as outlier", i)
		}
	}
}

func TestDetectOutliersTinySample(t *testing.T) {
	flags := DetectOutliers([]float64{10, 50, 90}, OutlierZScore)
	for _, f := range flags {
		if f {
			t.Fatalf("fewer than 4 points cannot support an outlier call")
		}
	}
}
