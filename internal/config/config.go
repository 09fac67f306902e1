// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Database
	DatabaseURL string // PostgreSQL connection string (optional, uses in-memory if not set)

	// Pricing settings
	DefaultStrategy string // "interactive" or "multiplicative"
	JitterDisabled  bool   // fixes the multiplicative fluctuation at 1.0

	// Population settings
	DefaultPopulationSize int
	MaxPopulationSize     int

	// Security
	RateLimitRPM int

	// Observability
	OTLPEndpoint string // OTel collector endpoint (optional, tracing off if not set)
}

const (
	DefaultPort         = "8080"
	DefaultEnv          = "development"
	DefaultLogLevel     = "info"
	DefaultRateLimit    = 300
	DefaultPopSize      = 50
	DefaultMaxPopSize   = 1000
	DefaultStrategyName = "interactive"
)

// Load reads configuration from environment variables
// It loads .env file if present (for local development)
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", DefaultPort),
		Env:                   getEnv("ENV", DefaultEnv),
		LogLevel:              getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL:           os.Getenv("DATABASE_URL"), // Optional, uses in-memory if not set
		DefaultStrategy:       getEnv("DEFAULT_STRATEGY", DefaultStrategyName),
		JitterDisabled:        getEnvBool("JITTER_DISABLED", false),
		DefaultPopulationSize: int(getEnvInt64("DEFAULT_POPULATION_SIZE", DefaultPopSize)),
		MaxPopulationSize:     int(getEnvInt64("MAX_POPULATION_SIZE", DefaultMaxPopSize)),
		RateLimitRPM:          int(getEnvInt64("RATE_LIMIT_RPM", DefaultRateLimit)),
		OTLPEndpoint:          os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is coherent
func (c *Config) Validate() error {
	switch c.DefaultStrategy {
	case "interactive", "multiplicative":
	default:
		return fmt.Errorf("DEFAULT_STRATEGY must be interactive or multiplicative, got %q", c.DefaultStrategy)
	}

	if c.DefaultPopulationSize <= 0 {
		return fmt.Errorf("DEFAULT_POPULATION_SIZE must be positive, got %d", c.DefaultPopulationSize)
	}
	if c.MaxPopulationSize < c.DefaultPopulationSize {
		return fmt.Errorf("MAX_POPULATION_SIZE (%d) must be >= DEFAULT_POPULATION_SIZE (%d)",
			c.MaxPopulationSize, c.DefaultPopulationSize)
	}

	if c.RateLimitRPM <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must be positive, got %d", c.RateLimitRPM)
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
