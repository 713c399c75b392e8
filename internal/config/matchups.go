package config

import (
	"fmt"

	"github.com/yourusername/clever-parlay/internal/models"
)

// DefaultProbability is assigned to outcomes entered without a probability.
const DefaultProbability = 0.5

// defaultNames fills in blank outcome names, in order.
var defaultNames = []string{
	"Red", "Blue", "Green", "Yellow", "Orange", "Purple", "Pink", "Cyan",
	"Magenta", "Lime", "Indigo", "Violet", "Turquoise", "Gold", "Silver",
	"Maroon", "Navy", "Teal", "Olive", "Coral", "Salmon", "Khaki", "Plum",
}

// ApplyOutcomeDefaults gives every blank outcome the next unused colour name
// and every missing probability the default of 0.5.
func (c *Config) ApplyOutcomeDefaults() error {
	used := make(map[string]bool)
	for _, m := range c.Matchups {
		for _, o := range m.Outcomes {
			if o.Name != "" {
				used[o.Name] = true
			}
		}
	}

	next := 0
	for i := range c.Matchups {
		for j := range c.Matchups[i].Outcomes {
			o := &c.Matchups[i].Outcomes[j]
			if o.Name == "" {
				for next < len(defaultNames) && used[defaultNames[next]] {
					next++
				}
				if next >= len(defaultNames) {
					return fmt.Errorf("too many unnamed outcomes: ran out of default names")
				}
				o.Name = defaultNames[next]
				used[o.Name] = true
				next++
			}
			if o.Probability == nil {
				p := DefaultProbability
				o.Probability = &p
			}
		}
	}
	return nil
}

// BuildMatchups converts the configured matchups into validated models.
func (c *Config) BuildMatchups() ([]models.Matchup, error) {
	if err := c.ApplyOutcomeDefaults(); err != nil {
		return nil, err
	}
	if len(c.Matchups) == 0 {
		return nil, models.ErrNoMatchups
	}

	matchups := make([]models.Matchup, 0, len(c.Matchups))
	for i, mc := range c.Matchups {
		outcomes := make([]models.Outcome, 0, len(mc.Outcomes))
		for _, oc := range mc.Outcomes {
			o, err := models.NewOutcome(oc.Name, *oc.Probability)
			if err != nil {
				return nil, fmt.Errorf("matchup %d: %w", i+1, err)
			}
			outcomes = append(outcomes, o)
		}
		m, err := models.NewMatchup(outcomes...)
		if err != nil {
			return nil, fmt.Errorf("matchup %d: %w", i+1, err)
		}
		matchups = append(matchups, m)
	}
	return matchups, nil
}
