package config

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error

	// Image.Name must not be empty
	if cfg.Image.Name == "" {
		errs = append(errs, &ValidationError{
			Field:   "image.name",
			Value:   cfg.Image.Name,
			Message: "must not be empty",
		})
	}

	// Image.Tag must not be empty; existence checks compare name:tag
	if cfg.Image.Tag == "" {
		errs = append(errs, &ValidationError{
			Field:   "image.tag",
			Value:   cfg.Image.Tag,
			Message: "must not be empty",
		})
	}

	// Runtime.SettleDelay must be a valid Go duration string
	if _, err := time.ParseDuration(cfg.Runtime.SettleDelay); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "runtime.settle_delay",
			Value:   cfg.Runtime.SettleDelay,
			Message: fmt.Sprintf("invalid duration: %v", err),
		})
	}

	// Runtime.ConnectBackoff must be a valid Go duration string
	if _, err := time.ParseDuration(cfg.Runtime.ConnectBackoff); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "runtime.connect_backoff",
			Value:   cfg.Runtime.ConnectBackoff,
			Message: fmt.Sprintf("invalid duration: %v", err),
		})
	}

	// Runtime.ConnectAttempts must be >= 1
	if cfg.Runtime.ConnectAttempts < 1 {
		errs = append(errs, &ValidationError{
			Field:   "runtime.connect_attempts",
			Value:   cfg.Runtime.ConnectAttempts,
			Message: "must be at least 1",
		})
	}

	// Database.Host must not be empty
	if cfg.Database.Host == "" {
		errs = append(errs, &ValidationError{
			Field:   "database.host",
			Value:   cfg.Database.Host,
			Message: "must not be empty",
		})
	}

	// Database.Port must be a valid TCP port
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		errs = append(errs, &ValidationError{
			Field:   "database.port",
			Value:   cfg.Database.Port,
			Message: "must be between 1 and 65535",
		})
	}

	// Database.ContainerPort must be a valid TCP port
	if cfg.Database.ContainerPort < 1 || cfg.Database.ContainerPort > 65535 {
		errs = append(errs, &ValidationError{
			Field:   "database.container_port",
			Value:   cfg.Database.ContainerPort,
			Message: "must be between 1 and 65535",
		})
	}

	// Database.Name and Database.User must not be empty
	if cfg.Database.Name == "" {
		errs = append(errs, &ValidationError{
			Field:   "database.name",
			Value:   cfg.Database.Name,
			Message: "must not be empty",
		})
	}
	if cfg.Database.User == "" {
		errs = append(errs, &ValidationError{
			Field:   "database.user",
			Value:   cfg.Database.User,
			Message: "must not be empty",
		})
	}

	// LogLevel must be one of: debug, info, warn, error (case-sensitive)
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		errs = append(errs, &ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: "must be one of: debug, info, warn, error",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
