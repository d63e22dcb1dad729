package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the ordering client
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	API      APIConfig
	Country  string
	LogLevel string
}

type APIConfig struct {
	// OrderHost and TrackHost override the country's production hosts
	// when non-empty, e.g. to point the client at a local test double.
	OrderHost      string
	TrackHost      string
	RequestTimeout int // seconds
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			OrderHost:      getEnv("ORDER_HOST", ""),
			TrackHost:      getEnv("TRACK_HOST", ""),
			RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT", 15),
		},
		Country:  getEnv("COUNTRY", "us"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validCountries := map[string]bool{"us": true, "ca": true}
	if !validCountries[strings.ToLower(c.Country)] {
		return fmt.Errorf("unsupported country: %s (must be us or ca)", c.Country)
	}

	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
