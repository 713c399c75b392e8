// Package metrics provides centralized Prometheus metrics registry for the parlay simulator.
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

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(TrialsTotal)
		registry.MustRegister(CombinationsEvaluatedTotal)
		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(RunDuration)
		registry.MustRegister(BestEV)
		registry.MustRegister(TheoryCacheLookupsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}
