// Package config provides configuration management for the Clever Parlay application.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("rankby", validateRankBy)
	_ = v.RegisterValidation("reportformat", validateReportFormat)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateRankBy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "simulated", "theoretical":
		return true
	default:
		return false
	}
}

func validateReportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "json", "yaml", "csv":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Report.Format != "" && cfg.Report.OutputPath == "" {
		return fmt.Errorf("report output_path is required when report format is set")
	}

	for i, m := range cfg.Matchups {
		seen := make(map[string]bool, len(m.Outcomes))
		for _, o := range m.Outcomes {
			if o.Name == "" {
				continue
			}
			if seen[o.Name] {
				return fmt.Errorf("matchup %d: duplicate outcome name %q", i+1, o.Name)
			}
			seen[o.Name] = true
		}
	}

	if cfg.IsProduction() && cfg.App.LogLevel == "debug" {
		return fmt.Errorf("production environment should not log at debug level")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			b.WriteString(fmt.Sprintf("- Field '%s' is required\n", field))
		case "min", "max":
			b.WriteString(fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag))
		case "gt", "gte", "lt", "lte":
			b.WriteString(fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated, got '%v'\n", field, tag, value))
		case "environment":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field))
		case "loglevel":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field))
		case "rankby":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: simulated, theoretical\n", field))
		case "reportformat":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: json, yaml, csv\n", field))
		default:
			b.WriteString(fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag))
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}
