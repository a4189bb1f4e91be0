package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable in the current
// environment. The Gemini API key is deliberately not required: a
// missing key degrades recipe generation to an instructional response
// instead of preventing startup.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "ServerPort", Message: "must not be empty"}
	}
	if cfg.DataDir == "" {
		return ValidationError{Field: "DataDir", Message: "must not be empty"}
	}

	// A guessable signing secret is acceptable for local development
	// only.
	if cfg.JWTSecret == "" {
		if IsProduction() {
			return ValidationError{Field: "JWTSecret", Message: "required in production"}
		}
		cfg.JWTSecret = "dev-secret"
	}

	return nil
}
