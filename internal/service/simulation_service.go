// Package service provides parlay simulation orchestration.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-parlay/internal/logger"
	"github.com/yourusername/clever-parlay/internal/metrics"
	"github.com/yourusername/clever-parlay/internal/models"
	"github.com/yourusername/clever-parlay/internal/simulation"
)

// Run modes
const (
	ModeSimulate = "simulate"
	ModeRank     = "rank"
)

// Options configures a SimulationService.
type Options struct {
	RunID         string
	Seed          int64
	Workers       int
	RankBy        simulation.RankBy
	Cache         *simulation.TheoryCache
	RecordMetrics bool
}

// SimulationService runs single-combination and ranking simulations, adding
// logging and metrics around the engine.
type SimulationService struct {
	opts      Options
	evaluator *simulation.Evaluator
	log       *logger.SimulationLogger
	audit     *logger.AuditLogger

	// cache counters already published to metrics
	statsMu     sync.Mutex
	flushedHits uint64
	flushedMiss uint64
}

// NewSimulationService creates a new simulation service
func NewSimulationService(base *logrus.Logger, opts Options) *SimulationService {
	var evalOpts []simulation.EvaluatorOption
	if opts.Cache != nil {
		evalOpts = append(evalOpts, simulation.WithTheoryCache(opts.Cache))
	}
	if opts.RankBy == "" {
		opts.RankBy = simulation.RankBySimulated
	}
	svc := &SimulationService{
		opts:      opts,
		evaluator: simulation.NewEvaluator(evalOpts...),
		log:       logger.NewSimulationLogger(base, opts.RunID),
		audit:     logger.NewAuditLogger(base),
	}
	if opts.Cache != nil {
		svc.flushedHits, svc.flushedMiss = opts.Cache.Stats()
	}
	return svc
}

// RunSingle picks one combination (favourites unless overridden) and evaluates it.
func (s *SimulationService) RunSingle(ctx context.Context, matchups []models.Matchup, picks []string, cfg simulation.SimulationConfig) (simulation.EvaluationResult, error) {
	start := time.Now()

	combo, err := PickFavourites(matchups, picks)
	if err != nil {
		return s.failSingle(start, err)
	}
	s.auditOverrides(matchups, combo)

	s.log.LogRunStarted(ModeSimulate, len(matchups), 1, cfg.TrialCount, cfg.Multiplier, cfg.Stake, 1)
	if err := ctx.Err(); err != nil {
		return s.failSingle(start, err)
	}

	seed := s.opts.Seed
	if seed == 0 {
		seed = simulation.EntropySeed()
	}
	evalStart := time.Now()
	result, err := s.evaluator.Evaluate(combo, cfg, simulation.NewSeededSource(seed))
	if err != nil {
		return s.failSingle(start, err)
	}
	evalElapsed := time.Since(evalStart)

	elapsed := time.Since(start)
	s.log.LogSingleCompleted(combo.Label(), result.SimulatedEVPerUnitStake, result.TheoreticalEVPerUnitStake, result.NetProfit, durationMs(elapsed))
	if s.opts.RecordMetrics {
		metrics.RecordEvaluation(cfg.TrialCount, evalElapsed.Seconds())
		metrics.UpdateBestEV(string(simulation.RankBySimulated), result.SimulatedEVPerUnitStake)
		metrics.RecordRun(ModeSimulate, "success", elapsed.Seconds())
	}
	s.flushCacheStats()
	return result, nil
}

// RunRanking evaluates and ranks every combination of the matchups.
func (s *SimulationService) RunRanking(ctx context.Context, matchups []models.Matchup, cfg simulation.SimulationConfig) (simulation.Ranking, error) {
	start := time.Now()

	total, err := simulation.CountCombinations(matchups)
	if err != nil {
		return s.failRanking(start, err)
	}
	s.log.LogRunStarted(ModeRank, len(matchups), total, cfg.TrialCount, cfg.Multiplier, cfg.Stake, s.opts.Workers)

	ranker := simulation.NewRanker(s.evaluator,
		simulation.WithRankBy(s.opts.RankBy),
		simulation.WithWorkers(s.opts.Workers),
		simulation.WithSeed(s.opts.Seed),
		simulation.WithObserver(func(i int, r simulation.EvaluationResult, evalElapsed time.Duration) {
			s.log.LogCombinationEvaluated(i, r.Combination.Label(), r.SimulatedWins, r.SimulatedLosses,
				r.SimulatedEVPerUnitStake, r.TheoreticalEVPerUnitStake)
			if s.opts.RecordMetrics {
				metrics.RecordEvaluation(cfg.TrialCount, evalElapsed.Seconds())
			}
		}),
	)

	ranking, err := ranker.Rank(ctx, matchups, cfg)
	if err != nil {
		return s.failRanking(start, err)
	}

	elapsed := time.Since(start)
	best, _ := ranking.Best()
	worst, _ := ranking.Worst()
	s.log.LogRankingCompleted(ranking.TotalCombinations, string(ranking.RankBy),
		best.Combination.Label(), ranking.RankBy.EV(best),
		worst.Combination.Label(), ranking.RankBy.EV(worst),
		durationMs(elapsed),
	)

	if s.opts.RecordMetrics {
		metrics.UpdateBestEV(string(ranking.RankBy), ranking.RankBy.EV(best))
		metrics.RecordRun(ModeRank, "success", elapsed.Seconds())
	}
	s.flushCacheStats()
	return ranking, nil
}

func (s *SimulationService) auditOverrides(matchups []models.Matchup, combo models.Combination) {
	for i, leg := range combo {
		fav := matchups[i].Favourite()
		if leg.Outcome.Name != fav.Name {
			s.audit.LogPickOverride(s.opts.RunID, i+1, leg.Outcome.Name, fav.Name)
		}
	}
}

func (s *SimulationService) flushCacheStats() {
	if s.opts.Cache == nil {
		return
	}
	hits, misses := s.opts.Cache.Stats()
	s.log.LogCacheStats(hits, misses, s.opts.Cache.Len())
	if !s.opts.RecordMetrics {
		return
	}

	// Stats are cumulative for the cache's lifetime; publish only the
	// lookups made since the previous flush.
	s.statsMu.Lock()
	newHits, newMisses := hits-s.flushedHits, misses-s.flushedMiss
	s.flushedHits, s.flushedMiss = hits, misses
	s.statsMu.Unlock()
	metrics.RecordCacheStats(newHits, newMisses)
}

func (s *SimulationService) failSingle(start time.Time, err error) (simulation.EvaluationResult, error) {
	s.fail(ModeSimulate, start, err)
	return simulation.EvaluationResult{}, fmt.Errorf("simulate parlay: %w", err)
}

func (s *SimulationService) failRanking(start time.Time, err error) (simulation.Ranking, error) {
	s.fail(ModeRank, start, err)
	return simulation.Ranking{}, fmt.Errorf("rank combinations: %w", err)
}

func (s *SimulationService) fail(mode string, start time.Time, err error) {
	s.log.LogRunFailed(mode, err)
	if s.opts.RecordMetrics {
		metrics.RecordRun(mode, "failure", time.Since(start).Seconds())
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
