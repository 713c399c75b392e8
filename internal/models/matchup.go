package models

import "fmt"

// Matchup is a single event and its candidate outcomes. Exactly one outcome is
// picked per matchup when building a combination.
type Matchup struct {
	outcomes []Outcome
}

// NewMatchup validates the outcomes and creates a matchup. Outcome order is kept.
func NewMatchup(outcomes ...Outcome) (Matchup, error) {
	if len(outcomes) == 0 {
		return Matchup{}, ErrEmptyMatchup
	}
	seen := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		if _, err := NewOutcome(o.Name, o.Probability); err != nil {
			return Matchup{}, err
		}
		if _, ok := seen[o.Name]; ok {
			return Matchup{}, fmt.Errorf("%w: %q", ErrDuplicateOutcomeName, o.Name)
		}
		seen[o.Name] = struct{}{}
	}
	return Matchup{outcomes: append([]Outcome(nil), outcomes...)}, nil
}

// Outcomes returns a copy of the matchup's outcomes in input order.
func (m Matchup) Outcomes() []Outcome {
	return append([]Outcome(nil), m.outcomes...)
}

// Len returns the number of outcomes.
func (m Matchup) Len() int {
	return len(m.outcomes)
}

// Outcome returns the outcome at index i.
func (m Matchup) Outcome(i int) Outcome {
	return m.outcomes[i]
}

// Lookup finds an outcome by name.
func (m Matchup) Lookup(name string) (Outcome, bool) {
	for _, o := range m.outcomes {
		if o.Name == name {
			return o, true
		}
	}
	return Outcome{}, false
}

// Favourite returns the outcome with the highest probability. Ties go to the
// earlier outcome.
func (m Matchup) Favourite() Outcome {
	best := m.outcomes[0]
	for _, o := range m.outcomes[1:] {
		if o.Probability > best.Probability {
			best = o
		}
	}
	return best
}
