package models

import (
	"fmt"
	"math"
)

// Outcome is one side of a matchup together with its win probability.
type Outcome struct {
	Name        string  `json:"name" yaml:"name"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// NewOutcome validates and creates an outcome
func NewOutcome(name string, probability float64) (Outcome, error) {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return Outcome{}, fmt.Errorf("%w: %q has probability %v, want [0,1]", ErrInvalidProbability, name, probability)
	}
	return Outcome{Name: name, Probability: probability}, nil
}

// String renders the outcome as "name (p%)".
func (o Outcome) String() string {
	return fmt.Sprintf("%s (%.2f%%)", o.Name, o.Probability*100)
}
