package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-parlay/internal/models"
)

// scriptedSource replays fixed draws and counts how many were consumed.
type scriptedSource struct {
	draws []float64
	next  int
}

func (s *scriptedSource) Float64() float64 {
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

func mustCombination(t *testing.T, probs ...float64) models.Combination {
	t.Helper()
	picks := make([]models.Outcome, len(probs))
	for i, p := range probs {
		picks[i] = models.Outcome{Name: string(rune('A' + i)), Probability: p}
	}
	combo, err := models.NewCombination(picks...)
	require.NoError(t, err)
	return combo
}

func mustMatchup(t *testing.T, outcomes ...models.Outcome) models.Matchup {
	t.Helper()
	m, err := models.NewMatchup(outcomes...)
	require.NoError(t, err)
	return m
}

func baseConfig() SimulationConfig {
	return SimulationConfig{Multiplier: 4.0, TrialCount: 1000, Stake: 1}
}
