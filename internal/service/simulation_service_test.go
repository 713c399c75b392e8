package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-parlay/internal/metrics"
	"github.com/yourusername/clever-parlay/internal/models"
	"github.com/yourusername/clever-parlay/internal/simulation"
)

func testLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func testMatchups(t *testing.T) []models.Matchup {
	t.Helper()
	build := func(a, b models.Outcome) models.Matchup {
		m, err := models.NewMatchup(a, b)
		require.NoError(t, err)
		return m
	}
	return []models.Matchup{
		build(models.Outcome{Name: "Red", Probability: 0.6}, models.Outcome{Name: "Blue", Probability: 0.4}),
		build(models.Outcome{Name: "Green", Probability: 0.3}, models.Outcome{Name: "Yellow", Probability: 0.7}),
	}
}

func TestPickFavourites(t *testing.T) {
	combo, err := PickFavourites(testMatchups(t), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red", "Yellow"}, combo.Names())

	combo, err = PickFavourites(testMatchups(t), []string{"", "Green"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Red", "Green"}, combo.Names())
}

func TestPickFavouritesErrors(t *testing.T) {
	_, err := PickFavourites(nil, nil)
	assert.ErrorIs(t, err, models.ErrNoMatchups)

	_, err = PickFavourites(testMatchups(t), []string{"Purple"})
	assert.ErrorIs(t, err, models.ErrUnknownOutcome)

	_, err = PickFavourites(testMatchups(t), []string{"Red", "Green", "Extra"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRunSingle(t *testing.T) {
	log, buf := testLogger()
	svc := NewSimulationService(log, Options{RunID: "run-1", Seed: 7})
	cfg := simulation.SimulationConfig{Multiplier: 2.5, TrialCount: 2000, Stake: 10}

	result, err := svc.RunSingle(context.Background(), testMatchups(t), []string{"Blue"}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "Blue + Yellow", result.Combination.Label())
	assert.InDelta(t, 0.28, result.TheoreticalWinProbability, 1e-9)
	assert.Equal(t, cfg.TrialCount, result.SimulatedWins+result.SimulatedLosses)
	assert.Contains(t, buf.String(), "Pick override recorded")
	assert.Contains(t, buf.String(), "Parlay simulation completed")
}

func TestRunSingleFailureIsLogged(t *testing.T) {
	log, buf := testLogger()
	svc := NewSimulationService(log, Options{RunID: "run-2", Seed: 1})
	cfg := simulation.SimulationConfig{Multiplier: 1, TrialCount: 10, Stake: 1}

	_, err := svc.RunSingle(context.Background(), testMatchups(t), nil, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidMultiplier)
	assert.Contains(t, buf.String(), "Simulation run failed")
}

func TestRunRanking(t *testing.T) {
	log, buf := testLogger()
	cache := simulation.NewTheoryCache(simulation.DefaultTheoryTTL, 100)
	metrics.InitRegistry()
	before := testutil.ToFloat64(metrics.SimulationRunsTotal.WithLabelValues(ModeRank, "success"))

	svc := NewSimulationService(log, Options{
		RunID:         "run-3",
		Seed:          11,
		Workers:       2,
		RankBy:        simulation.RankByTheoretical,
		Cache:         cache,
		RecordMetrics: true,
	})
	cfg := simulation.SimulationConfig{Multiplier: 4, TrialCount: 500, Stake: 1}

	ranking, err := svc.RunRanking(context.Background(), testMatchups(t), cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, ranking.TotalCombinations)
	best, ok := ranking.Best()
	require.True(t, ok)
	assert.Equal(t, "Red + Yellow", best.Combination.Label())
	assert.Equal(t, 4, cache.Len())

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SimulationRunsTotal.WithLabelValues(ModeRank, "success")))
	assert.Contains(t, buf.String(), "Ranking completed")
	assert.Contains(t, buf.String(), "Combination evaluated")
}

func TestRunRankingNoMatchups(t *testing.T) {
	log, _ := testLogger()
	svc := NewSimulationService(log, Options{RunID: "run-4"})

	_, err := svc.RunRanking(context.Background(), nil, simulation.SimulationConfig{Multiplier: 2, TrialCount: 1, Stake: 1})
	assert.ErrorIs(t, err, models.ErrNoMatchups)
}

func TestRunRankingPublishesCacheDeltas(t *testing.T) {
	log, _ := testLogger()
	metrics.InitRegistry()
	cache := simulation.NewTheoryCache(simulation.DefaultTheoryTTL, 100)
	svc := NewSimulationService(log, Options{RunID: "run-5", Seed: 3, Cache: cache, RecordMetrics: true})
	cfg := simulation.SimulationConfig{Multiplier: 3, TrialCount: 100, Stake: 1}

	hitsBefore := testutil.ToFloat64(metrics.TheoryCacheLookupsTotal.WithLabelValues("hit"))
	missesBefore := testutil.ToFloat64(metrics.TheoryCacheLookupsTotal.WithLabelValues("miss"))

	for run := 0; run < 2; run++ {
		_, err := svc.RunRanking(context.Background(), testMatchups(t), cfg)
		require.NoError(t, err)
	}

	hits, misses := cache.Stats()
	assert.Equal(t, uint64(4), hits)
	assert.Equal(t, uint64(4), misses)
	assert.Equal(t, hitsBefore+4, testutil.ToFloat64(metrics.TheoryCacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, missesBefore+4, testutil.ToFloat64(metrics.TheoryCacheLookupsTotal.WithLabelValues("miss")))
}

func TestNewServiceIgnoresEarlierCacheLookups(t *testing.T) {
	log, _ := testLogger()
	metrics.InitRegistry()
	cache := simulation.NewTheoryCache(simulation.DefaultTheoryTTL, 100)
	cache.Get([]float64{0.5}, 2)
	cache.Get([]float64{0.5}, 2)

	missesBefore := testutil.ToFloat64(metrics.TheoryCacheLookupsTotal.WithLabelValues("miss"))
	svc := NewSimulationService(log, Options{RunID: "run-6", Seed: 3, Cache: cache, RecordMetrics: true})
	_, err := svc.RunSingle(context.Background(), testMatchups(t), nil, simulation.SimulationConfig{Multiplier: 3, TrialCount: 10, Stake: 1})
	require.NoError(t, err)

	assert.Equal(t, missesBefore+1, testutil.ToFloat64(metrics.TheoryCacheLookupsTotal.WithLabelValues("miss")))
}

func TestRunRankingRecordsOneEvaluationPerCombination(t *testing.T) {
	log, _ := testLogger()
	metrics.InitRegistry()
	svc := NewSimulationService(log, Options{RunID: "run-7", Seed: 5, Workers: 2, RecordMetrics: true})
	cfg := simulation.SimulationConfig{Multiplier: 3, TrialCount: 50, Stake: 1}

	combosBefore := testutil.ToFloat64(metrics.CombinationsEvaluatedTotal)
	trialsBefore := testutil.ToFloat64(metrics.TrialsTotal)

	_, err := svc.RunRanking(context.Background(), testMatchups(t), cfg)
	require.NoError(t, err)

	assert.Equal(t, combosBefore+4, testutil.ToFloat64(metrics.CombinationsEvaluatedTotal))
	assert.Equal(t, trialsBefore+200, testutil.ToFloat64(metrics.TrialsTotal))
}
