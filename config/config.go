package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Storage configuration
	DataDir string

	// JWT configuration
	JWTSecret string

	// Gemini configuration
	GeminiAPIKey  string
	GeminiBaseURL string

	// Open Food Facts configuration
	OpenFoodFactsBaseURL string

	// Redis configuration (optional barcode cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// LoadConfig creates a new Config instance from environment variables.
// Secrets may alternatively be provided as *_FILE paths.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:           getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DataDir:              getEnv("DATA_DIR", "data"),
		JWTSecret:            getSecret("JWT_SECRET"),
		GeminiAPIKey:         getSecret("GEMINI_API_KEY"),
		GeminiBaseURL:        getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
		OpenFoodFactsBaseURL: getEnv("OPENFOODFACTS_URL", "https://world.openfoodfacts.org"),
		RedisHost:            os.Getenv("REDIS_HOST"),
		RedisPort:            getEnv("REDIS_PORT", "6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of name, or fallback if unset or empty.
func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// getSecret resolves name from the environment, or from the file named
// by NAME_FILE (Docker secrets style, as used for API keys).
func getSecret(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if path := os.Getenv(name + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
