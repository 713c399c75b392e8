// Package config provides configuration management for the Clever Parlay application.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Report     ReportConfig     `mapstructure:"report"`
	Matchups   []MatchupConfig  `mapstructure:"matchups" validate:"required,min=1,dive"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SimulationConfig represents the Monte Carlo run parameters
type SimulationConfig struct {
	Multiplier      float64 `mapstructure:"multiplier" validate:"required,gt=1"`
	TrialCount      int     `mapstructure:"trial_count" validate:"required,gt=0"`
	Stake           float64 `mapstructure:"stake" validate:"required,gt=0"`
	RankBy          string  `mapstructure:"rank_by" validate:"omitempty,rankby"`
	Workers         int     `mapstructure:"workers" validate:"gte=0"`
	Seed            int64   `mapstructure:"seed"`
	ConfidenceLevel float64 `mapstructure:"confidence_level" validate:"gte=0,lt=1"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// CacheConfig controls memoisation of closed-form results
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"gte=0"`
	MaxEntries int  `mapstructure:"max_entries" validate:"gte=0"`
}

// ReportConfig controls ranking export
type ReportConfig struct {
	Format     string `mapstructure:"format" validate:"omitempty,reportformat"`
	OutputPath string `mapstructure:"output_path"`
}

// MatchupConfig represents one matchup as entered by the user
type MatchupConfig struct {
	Outcomes []OutcomeConfig `mapstructure:"outcomes" validate:"required,min=1,dive"`
}

// OutcomeConfig represents one outcome. A blank name or missing probability is
// filled in by ApplyOutcomeDefaults.
type OutcomeConfig struct {
	Name        string   `mapstructure:"name"`
	Probability *float64 `mapstructure:"probability" validate:"omitempty,gte=0,lte=1"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
