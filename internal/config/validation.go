// Package config provides configuration management for the odds-falcon application.
package config

import (
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

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
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

// validateCrossField applies checks that span multiple sections
func validateCrossField(cfg *Config) error {
	if cfg.History.Source == "postgres" {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("history.source is postgres but database host/name/user are not configured")
		}
	}
	if cfg.History.Source == "csv" && cfg.History.CSVPath == "" {
		return fmt.Errorf("history.source is csv but history.csv_path is empty")
	}
	if cfg.Telegram.Enabled && (cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram is enabled but token or chat_id is missing")
	}

	known := make(map[string]bool, len(DefaultStrategyOrder))
	for _, name := range DefaultStrategyOrder {
		known[name] = true
	}
	known["tactical_duel"] = true
	for _, name := range cfg.Strategies.Enabled {
		if !known[name] {
			return fmt.Errorf("unknown strategy %q in strategies.enabled", name)
		}
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(parts, "; "))
}
