package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yourusername/clever-parlay/internal/models"
)

// EvaluationResult is the simulated and theoretical assessment of one combination.
type EvaluationResult struct {
	Combination               models.Combination `json:"combination" yaml:"combination"`
	SimulatedWins             int                `json:"simulated_wins" yaml:"simulated_wins"`
	SimulatedLosses           int                `json:"simulated_losses" yaml:"simulated_losses"`
	SimulatedWinRate          float64            `json:"simulated_win_rate" yaml:"simulated_win_rate"`
	WinRateInterval           Interval           `json:"win_rate_interval" yaml:"win_rate_interval"`
	TheoreticalWinProbability float64            `json:"theoretical_win_probability" yaml:"theoretical_win_probability"`
	TheoreticalEVPerUnitStake float64            `json:"theoretical_ev_per_unit_stake" yaml:"theoretical_ev_per_unit_stake"`
	SimulatedEVPerUnitStake   float64            `json:"simulated_ev_per_unit_stake" yaml:"simulated_ev_per_unit_stake"`
	MoneyWon                  float64            `json:"money_won" yaml:"money_won"`
	MoneyLost                 float64            `json:"money_lost" yaml:"money_lost"`
	NetProfit                 float64            `json:"net_profit" yaml:"net_profit"`
}

// IsPositiveEV reports whether the simulated EV is non-negative.
func (r EvaluationResult) IsPositiveEV() bool {
	return r.SimulatedEVPerUnitStake >= 0
}

// Evaluator runs Monte Carlo trials and the closed-form calculation for a
// combination. An Evaluator holds no per-call state and is safe to share;
// random sources are not.
type Evaluator struct {
	theory *TheoryCache
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithTheoryCache memoises the closed-form figures.
func WithTheoryCache(tc *TheoryCache) EvaluatorOption {
	return func(e *Evaluator) {
		e.theory = tc
	}
}

// NewEvaluator creates an evaluator.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate assesses combo under cfg, drawing from src.
func (e *Evaluator) Evaluate(combo models.Combination, cfg SimulationConfig, src RandomSource) (EvaluationResult, error) {
	if err := cfg.Validate(); err != nil {
		return EvaluationResult{}, err
	}
	if len(combo) == 0 {
		return EvaluationResult{}, models.ErrEmptyCombination
	}
	if src == nil {
		return EvaluationResult{}, fmt.Errorf("random source is required")
	}

	for _, leg := range combo {
		if _, err := models.NewOutcome(leg.Outcome.Name, leg.Outcome.Probability); err != nil {
			return EvaluationResult{}, err
		}
	}

	probabilities := combo.Probabilities()
	theory := e.theoretical(probabilities, cfg.Multiplier)

	wins := simulateWins(probabilities, cfg.TrialCount, src)
	losses := cfg.TrialCount - wins
	trials := float64(cfg.TrialCount)

	won, lost, net := settle(wins, losses, cfg.Stake, cfg.Multiplier)

	return EvaluationResult{
		Combination:               combo.Clone(),
		SimulatedWins:             wins,
		SimulatedLosses:           losses,
		SimulatedWinRate:          float64(wins) / trials,
		WinRateInterval:           WilsonInterval(wins, cfg.TrialCount, cfg.confidenceLevel()),
		TheoreticalWinProbability: theory.WinProbability,
		TheoreticalEVPerUnitStake: theory.EVPerUnitStake,
		SimulatedEVPerUnitStake:   (float64(wins)*theory.WinPayout + float64(losses)*theory.LossPayout) / trials,
		MoneyWon:                  won,
		MoneyLost:                 lost,
		NetProfit:                 net,
	}, nil
}

func (e *Evaluator) theoretical(probabilities []float64, multiplier float64) Theoretical {
	if e.theory != nil {
		return e.theory.Get(probabilities, multiplier)
	}
	return ComputeTheoretical(probabilities, multiplier)
}

// simulateWins counts trials in which every leg hits. A leg fails when its
// draw is strictly greater than its probability.
func simulateWins(probabilities []float64, trials int, src RandomSource) int {
	wins := 0
	for i := 0; i < trials; i++ {
		hit := true
		for _, p := range probabilities {
			if src.Float64() > p {
				hit = false
				break
			}
		}
		if hit {
			wins++
		}
	}
	return wins
}

// settle converts win/loss counts into money at the given per-trial stake.
func settle(wins, losses int, stake, multiplier float64) (won, lost, net float64) {
	bet := decimal.NewFromFloat(stake)
	profit := decimal.NewFromFloat(multiplier).Sub(decimal.NewFromInt(1))

	moneyWon := decimal.NewFromInt(int64(wins)).Mul(bet).Mul(profit)
	moneyLost := decimal.NewFromInt(int64(losses)).Mul(bet)

	return moneyWon.InexactFloat64(), moneyLost.InexactFloat64(), moneyWon.Sub(moneyLost).InexactFloat64()
}
