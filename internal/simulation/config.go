package simulation

import (
	"fmt"

	"github.com/yourusername/clever-parlay/internal/config"
	"github.com/yourusername/clever-parlay/internal/models"
)

// DefaultConfidenceLevel is used for win-rate intervals when none is configured.
const DefaultConfidenceLevel = 0.95

// SimulationConfig holds the per-run evaluation parameters.
type SimulationConfig struct {
	Multiplier      float64
	TrialCount      int
	Stake           float64
	ConfidenceLevel float64
}

// FromConfig converts app config to a simulation config
func FromConfig(cfg *config.SimulationConfig) (SimulationConfig, error) {
	if cfg == nil {
		return SimulationConfig{}, fmt.Errorf("simulation config is required")
	}
	sc := SimulationConfig{
		Multiplier:      cfg.Multiplier,
		TrialCount:      cfg.TrialCount,
		Stake:           cfg.Stake,
		ConfidenceLevel: cfg.ConfidenceLevel,
	}
	return sc, sc.Validate()
}

// Validate checks the parameters. Bad values are reported, never clamped.
func (c SimulationConfig) Validate() error {
	if c.TrialCount <= 0 {
		return fmt.Errorf("%w: got %d", models.ErrInvalidTrialCount, c.TrialCount)
	}
	if !(c.Multiplier > 1) {
		return fmt.Errorf("%w: got %v", models.ErrInvalidMultiplier, c.Multiplier)
	}
	if !(c.Stake > 0) {
		return fmt.Errorf("%w: got %v", models.ErrInvalidStake, c.Stake)
	}
	if c.ConfidenceLevel < 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("%w: confidence level must be in [0,1), got %v", models.ErrValidation, c.ConfidenceLevel)
	}
	return nil
}

func (c SimulationConfig) confidenceLevel() float64 {
	if c.ConfidenceLevel == 0 {
		return DefaultConfidenceLevel
	}
	return c.ConfidenceLevel
}
