// Package logger provides simulation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for simulation runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger bound to a run.
func NewSimulationLogger(baseLogger *logrus.Logger, runID string) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "simulation",
			"run_id":    runID,
		}),
	}
}

// LogRunStarted logs the start of a simulation run.
func (sl *SimulationLogger) LogRunStarted(mode string, matchups, combinations, trialCount int, multiplier, stake float64, workers int) {
	sl.WithFields(logrus.Fields{
		"mode":         mode,
		"matchups":     matchups,
		"combinations": combinations,
		"trial_count":  trialCount,
		"multiplier":   multiplier,
		"stake":        stake,
		"workers":      workers,
	}).Info("Simulation run started")
}

// LogCombinationEvaluated logs one evaluated combination at debug level.
func (sl *SimulationLogger) LogCombinationEvaluated(index int, combination string, wins, losses int, simulatedEV, theoreticalEV float64) {
	sl.WithFields(logrus.Fields{
		"index":          index,
		"combination":    combination,
		"wins":           wins,
		"losses":         losses,
		"simulated_ev":   simulatedEV,
		"theoretical_ev": theoreticalEV,
	}).Debug("Combination evaluated")
}

// LogSingleCompleted logs the outcome of a single-combination run.
func (sl *SimulationLogger) LogSingleCompleted(combination string, simulatedEV, theoreticalEV, netProfit, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"combination":    combination,
		"simulated_ev":   simulatedEV,
		"theoretical_ev": theoreticalEV,
		"net_profit":     netProfit,
		"duration_ms":    durationMs,
	}).Info("Parlay simulation completed")
}

// LogRankingCompleted logs the outcome of a full ranking.
func (sl *SimulationLogger) LogRankingCompleted(total int, rankBy, best string, bestEV float64, worst string, worstEV float64, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"total_combinations": total,
		"rank_by":            rankBy,
		"best":               best,
		"best_ev":            bestEV,
		"worst":              worst,
		"worst_ev":           worstEV,
		"duration_ms":        durationMs,
	}).Info("Ranking completed")
}

// LogCacheStats logs closed-form cache usage.
func (sl *SimulationLogger) LogCacheStats(hits, misses uint64, entries int) {
	sl.WithFields(logrus.Fields{
		"cache_hits":    hits,
		"cache_misses":  misses,
		"cache_entries": entries,
	}).Debug("Theory cache statistics")
}

// LogRunFailed logs a failed run.
func (sl *SimulationLogger) LogRunFailed(mode string, err error) {
	sl.WithFields(logrus.Fields{
		"mode":  mode,
		"error": err.Error(),
	}).Error("Simulation run failed")
}
