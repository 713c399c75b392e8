package service

import (
	"fmt"

	"github.com/yourusername/clever-parlay/internal/models"
)

// PickFavourites collapses matchups into one combination by picking the
// highest-probability outcome of each. A non-empty entry in picks selects that
// outcome by name instead. This is a caller-side shortcut; ranking every
// combination does not rely on it.
func PickFavourites(matchups []models.Matchup, picks []string) (models.Combination, error) {
	if len(matchups) == 0 {
		return nil, models.ErrNoMatchups
	}
	if len(picks) > len(matchups) {
		return nil, fmt.Errorf("%w: %d picks for %d matchups", models.ErrValidation, len(picks), len(matchups))
	}

	chosen := make([]models.Outcome, len(matchups))
	for i, m := range matchups {
		if m.Len() == 0 {
			return nil, fmt.Errorf("%w: matchup %d", models.ErrEmptyMatchupSet, i+1)
		}
		if i < len(picks) && picks[i] != "" {
			o, ok := m.Lookup(picks[i])
			if !ok {
				return nil, fmt.Errorf("%w: %q in matchup %d", models.ErrUnknownOutcome, picks[i], i+1)
			}
			chosen[i] = o
			continue
		}
		chosen[i] = m.Favourite()
	}
	return models.NewCombination(chosen...)
}
