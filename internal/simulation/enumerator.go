package simulation

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-parlay/internal/models"
)

// CountCombinations returns the number of combinations Enumerate would produce.
func CountCombinations(matchups []models.Matchup) (int, error) {
	if err := validateMatchups(matchups); err != nil {
		return 0, err
	}
	total := 1
	for i, m := range matchups {
		if total > math.MaxInt/m.Len() {
			return 0, fmt.Errorf("%w: overflow at matchup %d", models.ErrTooManyCombinations, i+1)
		}
		total *= m.Len()
	}
	return total, nil
}

// Enumerate returns every way of picking one outcome per matchup. Ordering
// follows matchup order then outcome order, with the last matchup varying
// fastest.
func Enumerate(matchups []models.Matchup) ([]models.Combination, error) {
	total, err := CountCombinations(matchups)
	if err != nil {
		return nil, err
	}

	combos := make([]models.Combination, 0, total)
	indices := make([]int, len(matchups))
	for {
		combo := make(models.Combination, len(matchups))
		for i, m := range matchups {
			combo[i] = models.Leg{MatchupIndex: i, Outcome: m.Outcome(indices[i])}
		}
		combos = append(combos, combo)

		// odometer increment, rightmost matchup first
		pos := len(matchups) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < matchups[pos].Len() {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return combos, nil
		}
	}
}

func validateMatchups(matchups []models.Matchup) error {
	if len(matchups) == 0 {
		return models.ErrNoMatchups
	}
	for i, m := range matchups {
		if m.Len() == 0 {
			return fmt.Errorf("%w: matchup %d", models.ErrEmptyMatchupSet, i+1)
		}
	}
	return nil
}
