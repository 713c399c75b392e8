package simulation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/clever-parlay/internal/models"
)

// RankBy selects the EV used to order a ranking.
type RankBy string

const (
	RankBySimulated   RankBy = "simulated"
	RankByTheoretical RankBy = "theoretical"
)

// ParseRankBy converts a config value to a RankBy. Empty means simulated.
func ParseRankBy(s string) (RankBy, error) {
	switch RankBy(s) {
	case "", RankBySimulated:
		return RankBySimulated, nil
	case RankByTheoretical:
		return RankByTheoretical, nil
	default:
		return "", fmt.Errorf("%w: unknown rank key %q", models.ErrValidation, s)
	}
}

// EV returns the figure r is ranked by.
func (rb RankBy) EV(r EvaluationResult) float64 {
	if rb == RankByTheoretical {
		return r.TheoreticalEVPerUnitStake
	}
	return r.SimulatedEVPerUnitStake
}

// Ranking is the ordered outcome of evaluating every combination.
type Ranking struct {
	Results           []EvaluationResult `json:"results" yaml:"results"`
	TotalCombinations int                `json:"total_combinations" yaml:"total_combinations"`
	RankBy            RankBy             `json:"rank_by" yaml:"rank_by"`
}

// Best returns the top-ranked result.
func (r Ranking) Best() (EvaluationResult, bool) {
	if len(r.Results) == 0 {
		return EvaluationResult{}, false
	}
	return r.Results[0], true
}

// Worst returns the bottom-ranked result.
func (r Ranking) Worst() (EvaluationResult, bool) {
	if len(r.Results) == 0 {
		return EvaluationResult{}, false
	}
	return r.Results[len(r.Results)-1], true
}

// RankingSummary describes the spread of EVs across a ranking.
type RankingSummary struct {
	MeanEV         float64 `json:"mean_ev" yaml:"mean_ev"`
	StdEV          float64 `json:"std_ev" yaml:"std_ev"`
	PositiveEV     int     `json:"positive_ev" yaml:"positive_ev"`
	TotalNetProfit float64 `json:"total_net_profit" yaml:"total_net_profit"`
}

// Summary computes EV statistics on the ranking's key.
func (r Ranking) Summary() RankingSummary {
	if len(r.Results) == 0 {
		return RankingSummary{}
	}
	evs := make([]float64, len(r.Results))
	summary := RankingSummary{}
	for i, res := range r.Results {
		evs[i] = r.RankBy.EV(res)
		if evs[i] >= 0 {
			summary.PositiveEV++
		}
		summary.TotalNetProfit += res.NetProfit
	}
	summary.MeanEV = stat.Mean(evs, nil)
	if len(evs) > 1 {
		summary.StdEV = stat.StdDev(evs, nil)
	}
	if math.IsNaN(summary.StdEV) {
		summary.StdEV = 0
	}
	return summary
}

// SortResults orders results by EV descending. Ties keep their input order.
func SortResults(results []EvaluationResult, by RankBy) {
	sort.SliceStable(results, func(i, j int) bool {
		return by.EV(results[i]) > by.EV(results[j])
	})
}

// Ranker evaluates every combination of a matchup set and orders the results.
type Ranker struct {
	evaluator *Evaluator
	rankBy    RankBy
	workers   int
	seed      int64
	observer  Observer
}

// Observer receives each evaluated combination with its index in enumeration
// order and the time its evaluation took.
type Observer func(index int, result EvaluationResult, elapsed time.Duration)

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithRankBy sets the ordering key.
func WithRankBy(by RankBy) RankerOption {
	return func(r *Ranker) {
		r.rankBy = by
	}
}

// WithWorkers evaluates up to n combinations concurrently.
func WithWorkers(n int) RankerOption {
	return func(r *Ranker) {
		r.workers = n
	}
}

// WithSeed fixes the base seed. Zero seeds each run from system entropy.
func WithSeed(seed int64) RankerOption {
	return func(r *Ranker) {
		r.seed = seed
	}
}

// WithObserver is called once per evaluated combination. Calls are serialised.
func WithObserver(fn Observer) RankerOption {
	return func(r *Ranker) {
		r.observer = fn
	}
}

// NewRanker creates a ranker around an evaluator.
func NewRanker(evaluator *Evaluator, opts ...RankerOption) *Ranker {
	if evaluator == nil {
		evaluator = NewEvaluator()
	}
	r := &Ranker{evaluator: evaluator, rankBy: RankBySimulated, workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}
	return r
}

// Rank enumerates the matchups and ranks every combination.
func (r *Ranker) Rank(ctx context.Context, matchups []models.Matchup, cfg SimulationConfig) (Ranking, error) {
	if err := cfg.Validate(); err != nil {
		return Ranking{}, err
	}
	combos, err := Enumerate(matchups)
	if err != nil {
		return Ranking{}, err
	}
	return r.RankCombinations(ctx, combos, cfg)
}

// RankCombinations evaluates the given combinations and ranks them. The first
// failure aborts the whole ranking.
func (r *Ranker) RankCombinations(ctx context.Context, combos []models.Combination, cfg SimulationConfig) (Ranking, error) {
	if len(combos) == 0 {
		return Ranking{}, models.ErrNoMatchups
	}

	seeds := NewSeedSequence(r.seed)
	taskSeeds := make([]int64, len(combos))
	for i := range taskSeeds {
		taskSeeds[i] = seeds.Next()
	}

	results := make([]EvaluationResult, len(combos))
	var err error
	if r.workers == 1 {
		err = r.evaluateSequential(ctx, combos, cfg, taskSeeds, results)
	} else {
		err = r.evaluateParallel(ctx, combos, cfg, taskSeeds, results)
	}
	if err != nil {
		return Ranking{}, err
	}

	SortResults(results, r.rankBy)
	return Ranking{Results: results, TotalCombinations: len(combos), RankBy: r.rankBy}, nil
}

func (r *Ranker) evaluateSequential(ctx context.Context, combos []models.Combination, cfg SimulationConfig, seeds []int64, results []EvaluationResult) error {
	for i, combo := range combos {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, elapsed, err := r.evaluateOne(i, combo, cfg, seeds[i])
		if err != nil {
			return err
		}
		results[i] = res
		if r.observer != nil {
			r.observer(i, res, elapsed)
		}
	}
	return nil
}

func (r *Ranker) evaluateParallel(ctx context.Context, combos []models.Combination, cfg SimulationConfig, seeds []int64, results []EvaluationResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	var mu sync.Mutex
	for i, combo := range combos {
		i, combo := i, combo
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, elapsed, err := r.evaluateOne(i, combo, cfg, seeds[i])
			if err != nil {
				return err
			}
			results[i] = res
			if r.observer != nil {
				mu.Lock()
				r.observer(i, res, elapsed)
				mu.Unlock()
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Ranker) evaluateOne(i int, combo models.Combination, cfg SimulationConfig, seed int64) (EvaluationResult, time.Duration, error) {
	start := time.Now()
	res, err := r.evaluator.Evaluate(combo, cfg, NewSeededSource(seed))
	if err != nil {
		return EvaluationResult{}, 0, fmt.Errorf("combination %d (%s): %w", i+1, combo.Label(), err)
	}
	return res, time.Since(start), nil
}
