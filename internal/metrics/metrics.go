// Package metrics provides the centralized Prometheus metrics registry.
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
	IngestionRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "betlab",
		Name:      "ingestion_rows_total",
		Help:      "Total number of rows processed by the ingestion pipeline",
	}, []string{"outcome"})
	SourceFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "betlab",
		Name:      "source_fetches_total",
		Help:      "Total number of fetches per data source",
	}, []string{"source", "status"})
	BacktestRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betlab",
		Name:      "backtest_runs_total",
		Help:      "Total number of rule evaluations",
	})
	BacktestBetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betlab",
		Name:      "backtest_bets_total",
		Help:      "Total number of simulated bets settled",
	})
	AnalysisCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "betlab",
		Name:      "analysis_cache_total",
		Help:      "Insight report cache lookups",
	}, []string{"result"})
)

// Gauge metrics
var (
	TeamsTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betlab",
		Name:      "teams_tracked",
		Help:      "Number of canonical teams in the match store",
	})
	LastSyncQuarantined = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betlab",
		Name:      "last_sync_quarantined",
		Help:      "Records quarantined during the last sync run",
	})
)

// Histogram metrics
var (
	SourceFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "betlab",
		Name:      "source_fetch_duration_seconds",
		Help:      "Duration of data source fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "betlab",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of rule evaluations in seconds",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30},
	})
	LeaderboardDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "betlab",
		Name:      "leaderboard_duration_seconds",
		Help:      "Duration of leaderboard fan-out runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(IngestionRowsTotal)
		registry.MustRegister(SourceFetchesTotal)
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestBetsTotal)
		registry.MustRegister(AnalysisCacheTotal)

		registry.MustRegister(TeamsTracked)
		registry.MustRegister(LastSyncQuarantined)

		registry.MustRegister(SourceFetchDuration)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(LeaderboardDuration)
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

// RecordIngestedRow records a processed row by outcome (inserted, updated, quarantined).
func RecordIngestedRow(outcome string) {
	IngestionRowsTotal.WithLabelValues(outcome).Inc()
}

// RecordSourceFetch records a data source fetch with its duration.
func RecordSourceFetch(source, status string, durationSeconds float64) {
	SourceFetchesTotal.WithLabelValues(source, status).Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordBacktestRun records a rule evaluation with its duration and bet count.
func RecordBacktestRun(durationSeconds float64, bets int) {
	BacktestRunsTotal.Inc()
	BacktestBetsTotal.Add(float64(bets))
	BacktestDuration.Observe(durationSeconds)
}

// RecordCacheLookup records an insight cache lookup (hit or miss).
func RecordCacheLookup(result string) {
	AnalysisCacheTotal.WithLabelValues(result).Inc()
}

// RecordLeaderboardRun records a leaderboard fan-out duration.
func RecordLeaderboardRun(durationSeconds float64) {
	LeaderboardDuration.Observe(durationSeconds)
}

// UpdateTeamsTracked updates the canonical team count gauge.
func UpdateTeamsTracked(count int) {
	TeamsTracked.Set(float64(count))
}

// UpdateLastSyncQuarantined updates the quarantine gauge after a sync run.
func UpdateLastSyncQuarantined(count int) {
	LastSyncQuarantined.Set(float64(count))
}
