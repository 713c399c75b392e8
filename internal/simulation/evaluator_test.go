package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-parlay/internal/models"
)

func TestComputeTheoretical(t *testing.T) {
	tests := []struct {
		name       string
		probs      []float64
		multiplier float64
		wantProb   float64
		wantEV     float64
	}{
		{name: "fair two leg", probs: []float64{0.5, 0.5}, multiplier: 4.0, wantProb: 0.25, wantEV: 0.0},
		{name: "negative ev", probs: []float64{0.6, 0.6}, multiplier: 2.5, wantProb: 0.36, wantEV: -0.1},
		{name: "three leg", probs: []float64{0.9, 0.8, 0.7}, multiplier: 2.0, wantProb: 0.504, wantEV: 0.008},
		{name: "certain", probs: []float64{1, 1}, multiplier: 1.5, wantProb: 1, wantEV: 0.5},
		{name: "impossible", probs: []float64{0, 0.5}, multiplier: 10, wantProb: 0, wantEV: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := ComputeTheoretical(tt.probs, tt.multiplier)
			assert.InDelta(t, tt.wantProb, th.WinProbability, 1e-9)
			assert.InDelta(t, tt.wantEV, th.EVPerUnitStake, 1e-9)
			assert.InDelta(t, tt.multiplier-1, th.WinPayout, 1e-12)
			assert.Equal(t, -1.0, th.LossPayout)
		})
	}
}

func TestEvaluateWinsPlusLossesEqualsTrials(t *testing.T) {
	e := NewEvaluator()
	for _, trials := range []int{1, 2, 17, 1000} {
		cfg := baseConfig()
		cfg.TrialCount = trials
		res, err := e.Evaluate(mustCombination(t, 0.5, 0.7), cfg, NewSeededSource(int64(trials)))
		require.NoError(t, err)
		assert.Equal(t, trials, res.SimulatedWins+res.SimulatedLosses)
	}
}

func TestEvaluateSingleTrial(t *testing.T) {
	cfg := baseConfig()
	cfg.TrialCount = 1

	res, err := NewEvaluator().Evaluate(mustCombination(t, 0.5), cfg, NewSeededSource(7))
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, res.SimulatedWins)
	assert.Contains(t, []int{0, 1}, res.SimulatedLosses)
	assert.Equal(t, 1, res.SimulatedWins+res.SimulatedLosses)
	assert.Contains(t, []float64{0, 1}, res.SimulatedWinRate)
}

func TestEvaluateBoundaryConvention(t *testing.T) {
	cfg := baseConfig()
	cfg.TrialCount = 1
	e := NewEvaluator()

	// a draw equal to the probability hits the leg
	res, err := e.Evaluate(mustCombination(t, 0.5), cfg, &scriptedSource{draws: []float64{0.5}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SimulatedWins)

	// a draw just above fails it
	res, err = e.Evaluate(mustCombination(t, 0.5), cfg, &scriptedSource{draws: []float64{math.Nextafter(0.5, 1)}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.SimulatedWins)

	// probability zero only hits on an exact zero draw
	res, err = e.Evaluate(mustCombination(t, 0), cfg, &scriptedSource{draws: []float64{0}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SimulatedWins)
}

func TestEvaluateShortCircuitsOnFailedLeg(t *testing.T) {
	cfg := baseConfig()
	cfg.TrialCount = 1
	src := &scriptedSource{draws: []float64{0.9, 0.1, 0.1}}

	res, err := NewEvaluator().Evaluate(mustCombination(t, 0.5, 0.5, 0.5), cfg, src)
	require.NoError(t, err)
	assert.Equal(t, 0, res.SimulatedWins)
	assert.Equal(t, 1, src.next)
}

func TestEvaluateCertainLegs(t *testing.T) {
	cfg := SimulationConfig{Multiplier: 3, TrialCount: 500, Stake: 10}

	res, err := NewEvaluator().Evaluate(mustCombination(t, 1, 1), cfg, NewSeededSource(1))
	require.NoError(t, err)
	assert.Equal(t, 500, res.SimulatedWins)
	assert.Equal(t, 0, res.SimulatedLosses)
	assert.InDelta(t, 2.0, res.SimulatedEVPerUnitStake, 1e-12)
	assert.InDelta(t, 500*10*2.0, res.MoneyWon, 1e-9)
	assert.Equal(t, 0.0, res.MoneyLost)
}

func TestEvaluateMoneyAggregation(t *testing.T) {
	cfg := SimulationConfig{Multiplier: 8.5, TrialCount: 4, Stake: 100}
	// trial 1 wins, trials 2-4 lose on the first leg
	src := &scriptedSource{draws: []float64{0.1, 0.1, 0.9, 0.9, 0.9}}

	res, err := NewEvaluator().Evaluate(mustCombination(t, 0.5, 0.5), cfg, src)
	require.NoError(t, err)
	require.Equal(t, 1, res.SimulatedWins)
	require.Equal(t, 3, res.SimulatedLosses)

	assert.InDelta(t, 750.0, res.MoneyWon, 1e-9)
	assert.InDelta(t, 300.0, res.MoneyLost, 1e-9)
	assert.InDelta(t, 450.0, res.NetProfit, 1e-9)
	assert.InDelta(t, (1*7.5-3)/4.0, res.SimulatedEVPerUnitStake, 1e-12)
	assert.InDelta(t, 0.25, res.SimulatedWinRate, 1e-12)
}

func TestEvaluateConvergesToTheory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence test in short mode")
	}
	cfg := SimulationConfig{Multiplier: 4, TrialCount: 1_000_000, Stake: 1}
	combo := mustCombination(t, 0.5, 0.5)
	e := NewEvaluator()

	for _, seed := range []int64{1, 2, 3} {
		res, err := e.Evaluate(combo, cfg, NewSeededSource(seed))
		require.NoError(t, err)
		assert.Less(t, math.Abs(res.SimulatedWinRate-res.TheoreticalWinProbability), 0.01)
		assert.True(t, res.WinRateInterval.Contains(res.SimulatedWinRate))
	}
}

func TestEvaluateDeterministicForSeed(t *testing.T) {
	combo := mustCombination(t, 0.6, 0.4, 0.8)
	cfg := baseConfig()
	e := NewEvaluator()

	a, err := e.Evaluate(combo, cfg, NewSeededSource(42))
	require.NoError(t, err)
	b, err := e.Evaluate(combo, cfg, NewSeededSource(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluateValidation(t *testing.T) {
	e := NewEvaluator()
	combo := mustCombination(t, 0.5)

	tests := []struct {
		name    string
		combo   models.Combination
		cfg     SimulationConfig
		wantErr error
	}{
		{name: "zero trials", combo: combo, cfg: SimulationConfig{Multiplier: 2, TrialCount: 0, Stake: 1}, wantErr: models.ErrInvalidTrialCount},
		{name: "negative trials", combo: combo, cfg: SimulationConfig{Multiplier: 2, TrialCount: -5, Stake: 1}, wantErr: models.ErrInvalidTrialCount},
		{name: "multiplier one", combo: combo, cfg: SimulationConfig{Multiplier: 1.0, TrialCount: 10, Stake: 1}, wantErr: models.ErrInvalidMultiplier},
		{name: "multiplier nan", combo: combo, cfg: SimulationConfig{Multiplier: math.NaN(), TrialCount: 10, Stake: 1}, wantErr: models.ErrInvalidMultiplier},
		{name: "zero stake", combo: combo, cfg: SimulationConfig{Multiplier: 2, TrialCount: 10, Stake: 0}, wantErr: models.ErrInvalidStake},
		{name: "empty combination", combo: models.Combination{}, cfg: baseConfig(), wantErr: models.ErrEmptyCombination},
		{
			name:    "hand built bad leg",
			combo:   models.Combination{{Outcome: models.Outcome{Name: "X", Probability: 1.5}}},
			cfg:     baseConfig(),
			wantErr: models.ErrInvalidProbability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(tt.combo, tt.cfg, NewSeededSource(1))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestSimulationConfigConfidenceLevel(t *testing.T) {
	cfg := baseConfig()

	cfg.ConfidenceLevel = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultConfidenceLevel, cfg.confidenceLevel())

	cfg.ConfidenceLevel = 0.99
	require.NoError(t, cfg.Validate())

	for _, level := range []float64{-0.1, 1} {
		cfg.ConfidenceLevel = level
		err := cfg.Validate()
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "[0,1)")
	}
}

func TestEvaluateResultOwnsCombination(t *testing.T) {
	combo := mustCombination(t, 0.5, 0.5)
	res, err := NewEvaluator().Evaluate(combo, baseConfig(), NewSeededSource(3))
	require.NoError(t, err)

	combo[0].Outcome.Name = "changed"
	assert.Equal(t, "A", res.Combination[0].Outcome.Name)
}

func TestEvaluatorWithTheoryCache(t *testing.T) {
	tc := NewTheoryCache(DefaultTheoryTTL, 10)
	e := NewEvaluator(WithTheoryCache(tc))
	combo := mustCombination(t, 0.6, 0.6)
	cfg := SimulationConfig{Multiplier: 2.5, TrialCount: 10, Stake: 1}

	for i := 0; i < 3; i++ {
		res, err := e.Evaluate(combo, cfg, NewSeededSource(int64(i)))
		require.NoError(t, err)
		assert.InDelta(t, -0.1, res.TheoreticalEVPerUnitStake, 1e-9)
	}

	hits, misses := tc.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 1, tc.Len())
}

func TestTheoryCacheMaxEntries(t *testing.T) {
	tc := NewTheoryCache(DefaultTheoryTTL, 1)
	tc.Get([]float64{0.5}, 2)
	tc.Get([]float64{0.4}, 2)

	assert.Equal(t, 1, tc.Len())
	th := tc.Get([]float64{0.4}, 2)
	assert.InDelta(t, 0.4*1-0.6, th.EVPerUnitStake, 1e-12)
}

func TestWilsonInterval(t *testing.T) {
	iv := WilsonInterval(50, 100, 0.95)
	assert.InDelta(t, 0.4038, iv.Lower, 1e-3)
	assert.InDelta(t, 0.5962, iv.Upper, 1e-3)
	assert.Equal(t, 0.95, iv.Level)

	zero := WilsonInterval(0, 10, 0.95)
	assert.InDelta(t, 0.0, zero.Lower, 1e-12)
	assert.Greater(t, zero.Upper, 0.0)

	all := WilsonInterval(10, 10, 0.95)
	assert.InDelta(t, 1.0, all.Upper, 1e-12)
	assert.Less(t, all.Lower, 1.0)
}
