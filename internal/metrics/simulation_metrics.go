// Package metrics defines simulation-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Counter vectors
var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clever_parlay",
		Name:      "simulation_runs_total",
		Help:      "Total number of simulation runs by mode and status",
	}, []string{"mode", "status"})

	TrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clever_parlay",
		Name:      "trials_total",
		Help:      "Total number of Monte Carlo trials simulated",
	})

	CombinationsEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clever_parlay",
		Name:      "combinations_evaluated_total",
		Help:      "Total number of parlay combinations evaluated",
	})

	TheoryCacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clever_parlay",
		Name:      "theory_cache_lookups_total",
		Help:      "Closed-form cache lookups by result",
	}, []string{"result"})
)

// Histograms
var (
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clever_parlay",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of a single combination evaluation in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clever_parlay",
		Name:      "run_duration_seconds",
		Help:      "Duration of a full simulation run in seconds by mode",
		Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"mode"})
)

// Gauges
var (
	BestEV = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "clever_parlay",
		Name:      "best_ev",
		Help:      "EV per unit stake of the best combination in the last run",
	}, []string{"basis"})
)

// RecordRun records a run event.
// mode should be one of: "simulate", "rank"
// status should be one of: "success", "failure"
func RecordRun(mode, status string, durationSeconds float64) {
	SimulationRunsTotal.WithLabelValues(mode, status).Inc()
	RunDuration.WithLabelValues(mode).Observe(durationSeconds)
}

// RecordEvaluation records one evaluated combination.
func RecordEvaluation(trials int, durationSeconds float64) {
	CombinationsEvaluatedTotal.Inc()
	TrialsTotal.Add(float64(trials))
	EvaluationDuration.Observe(durationSeconds)
}

// UpdateBestEV sets the best EV for the given basis ("simulated" or "theoretical").
func UpdateBestEV(basis string, ev float64) {
	BestEV.WithLabelValues(basis).Set(ev)
}

// RecordCacheStats adds closed-form cache hits and misses.
func RecordCacheStats(hits, misses uint64) {
	TheoryCacheLookupsTotal.WithLabelValues("hit").Add(float64(hits))
	TheoryCacheLookupsTotal.WithLabelValues("miss").Add(float64(misses))
}
