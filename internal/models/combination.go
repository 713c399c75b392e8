package models

import (
	"strings"
)

// Leg is the outcome chosen for one matchup.
type Leg struct {
	MatchupIndex int     `json:"matchup_index" yaml:"matchup_index"`
	Outcome      Outcome `json:"outcome" yaml:"outcome"`
}

// Combination assigns exactly one outcome to each matchup, in matchup order.
// Combinations are treated as read-only once built.
type Combination []Leg

// NewCombination builds a combination from one chosen outcome per matchup.
func NewCombination(picks ...Outcome) (Combination, error) {
	if len(picks) == 0 {
		return nil, ErrEmptyCombination
	}
	combo := make(Combination, len(picks))
	for i, p := range picks {
		o, err := NewOutcome(p.Name, p.Probability)
		if err != nil {
			return nil, err
		}
		combo[i] = Leg{MatchupIndex: i, Outcome: o}
	}
	return combo, nil
}

// Names returns the picked outcome names in leg order.
func (c Combination) Names() []string {
	names := make([]string, len(c))
	for i, leg := range c {
		names[i] = leg.Outcome.Name
	}
	return names
}

// Probabilities returns the picked outcome probabilities in leg order.
func (c Combination) Probabilities() []float64 {
	probs := make([]float64, len(c))
	for i, leg := range c {
		probs[i] = leg.Outcome.Probability
	}
	return probs
}

// Label joins the picked names, e.g. "Red + Blue".
func (c Combination) Label() string {
	return strings.Join(c.Names(), " + ")
}

// Clone returns an independent copy.
func (c Combination) Clone() Combination {
	return append(Combination(nil), c...)
}
