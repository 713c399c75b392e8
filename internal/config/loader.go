// Package config provides configuration management for the Clever Parlay application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CLEVER_PARLAY"

// LoadOption adjusts the viper instance before unmarshalling, e.g. to bind
// command-line flags.
type LoadOption func(v *viper.Viper) error

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string, opts ...LoadOption) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v, opts)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string, opts ...LoadOption) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v, opts)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults registers default values for optional settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "clever-parlay")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("simulation.multiplier", 8.5)
	v.SetDefault("simulation.trial_count", 100000)
	v.SetDefault("simulation.stake", 100.0)
	v.SetDefault("simulation.rank_by", "simulated")
	v.SetDefault("simulation.workers", 1)
	v.SetDefault("simulation.confidence_level", 0.95)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 600)
	v.SetDefault("cache.max_entries", 10000)
	v.SetDefault("report.output_path", "./output/parlay_report.json")
}

func unmarshal(v *viper.Viper, opts []LoadOption) (*Config, error) {
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("failed to apply config option: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
