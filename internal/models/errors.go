package models

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every caller-input error raised by the engine.
var ErrValidation = errors.New("validation error")

// Validation errors
var (
	ErrInvalidProbability   = fmt.Errorf("%w: invalid probability", ErrValidation)
	ErrDuplicateOutcomeName = fmt.Errorf("%w: duplicate outcome name", ErrValidation)
	ErrEmptyMatchup         = fmt.Errorf("%w: matchup has no outcomes", ErrValidation)
	ErrEmptyMatchupSet      = fmt.Errorf("%w: matchup set contains an empty matchup", ErrValidation)
	ErrNoMatchups           = fmt.Errorf("%w: no matchups", ErrValidation)
	ErrEmptyCombination     = fmt.Errorf("%w: empty combination", ErrValidation)
	ErrInvalidTrialCount    = fmt.Errorf("%w: trial count must be positive", ErrValidation)
	ErrInvalidMultiplier    = fmt.Errorf("%w: multiplier must be greater than 1", ErrValidation)
	ErrInvalidStake         = fmt.Errorf("%w: stake must be positive", ErrValidation)
	ErrUnknownOutcome       = fmt.Errorf("%w: unknown outcome", ErrValidation)
	ErrTooManyCombinations  = fmt.Errorf("%w: too many combinations", ErrValidation)
)
