// Package metrics provides the centralized Prometheus metrics registry for the engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hot_streak",
		Name:      "evaluations_total",
		Help:      "Total number of player evaluations run",
	})
	PicksGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hot_streak",
		Name:      "picks_generated_total",
		Help:      "Total number of picks generated",
	})
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hot_streak",
		Name:      "api_requests_total",
		Help:      "Total number of upstream API requests by outcome",
	}, []string{"status"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hot_streak",
		Name:      "cache_hits_total",
		Help:      "Total number of data source cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hot_streak",
		Name:      "cache_misses_total",
		Help:      "Total number of data source cache misses",
	})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hot_streak",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of upstream circuit breaker trips",
	})
)

// Gauge metrics
var (
	LastPickRefresh = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hot_streak",
		Name:      "last_pick_refresh_timestamp",
		Help:      "Unix timestamp of the last successful pick refresh",
	})
	PickConfidenceScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hot_streak",
		Name:      "pick_confidence_score",
		Help:      "Confidence score for each generated pick",
	}, []string{"player", "stat"})
)

// Histogram metrics
var (
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hot_streak",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of a single player evaluation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	PickRefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hot_streak",
		Name:      "pick_refresh_duration_seconds",
		Help:      "Duration of a full pick refresh in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(PicksGeneratedTotal)
		registry.MustRegister(APIRequestsTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		// Register gauge metrics
		registry.MustRegister(LastPickRefresh)
		registry.MustRegister(PickConfidenceScore)

		// Register histogram metrics
		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(PickRefreshDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEvaluation records a player evaluation event.
func RecordEvaluation(durationSeconds float64) {
	EvaluationsTotal.Inc()
	EvaluationDuration.Observe(durationSeconds)
}

// RecordPickGenerated records a generated pick.
func RecordPickGenerated() {
	PicksGeneratedTotal.Inc()
}

// RecordAPIRequest records an upstream API request by outcome status.
func RecordAPIRequest(status string) {
	APIRequestsTotal.WithLabelValues(status).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordPickRefresh records the duration and completion time of a pick refresh.
func RecordPickRefresh(durationSeconds float64, completedAt float64) {
	PickRefreshDuration.Observe(durationSeconds)
	LastPickRefresh.Set(completedAt)
}
