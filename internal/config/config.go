package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Storage configuration
	DBPath    string
	IndexPath string

	// MITRE rule table
	RulesPath string

	// Page fetch behaviour
	FetchTimeout     time.Duration
	SummaryThreshold int

	// Summarizer configuration
	SummaryMaxChars int
	HFAPIToken      string
	HFModel         string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		DBPath:    getEnv("DB_PATH", "threatintel.db"),
		IndexPath: getEnv("INDEX_PATH", "reports.bleve"),
		RulesPath: getEnv("MITRE_RULES_PATH", "mitre_rules.json"),

		FetchTimeout:     time.Duration(getIntEnv("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		SummaryThreshold: getIntEnv("SUMMARY_THRESHOLD", 200),

		SummaryMaxChars: getIntEnv("SUMMARY_MAX_CHARS", 400),
		HFAPIToken:      getEnv("HF_API_TOKEN", ""),
		HFModel:         getEnv("HF_MODEL", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RulesPath == "" {
		return fmt.Errorf("MITRE_RULES_PATH must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
