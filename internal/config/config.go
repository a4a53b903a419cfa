package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultStackingWindowHours = 48
	defaultChecksPerMinute     = 30
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	LogFormat   string

	// Knowledge file override paths; empty falls through to the loader's
	// own env vars and then the bundled defaults.
	AllergenTaxonomyPath   string
	FunctionalRegistryPath string
	AdviceRegistryPath     string

	StackingWindowHours int
	ChecksPerMinute     int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		Port:                   getEnv("PORT", "8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		RedisURL:               getEnv("REDIS_URL", ""),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
		AllergenTaxonomyPath:   getEnv("ALLERGEN_TAXONOMY_PATH", ""),
		FunctionalRegistryPath: getEnv("FUNCTIONAL_REGISTRY_PATH", ""),
		AdviceRegistryPath:     getEnv("ADVICE_REGISTRY_PATH", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	cfg.StackingWindowHours, err = getEnvInt("STACKING_WINDOW_HOURS", defaultStackingWindowHours)
	if err != nil {
		return nil, err
	}
	if cfg.StackingWindowHours <= 0 {
		return nil, fmt.Errorf("STACKING_WINDOW_HOURS must be positive, got %d", cfg.StackingWindowHours)
	}

	cfg.ChecksPerMinute, err = getEnvInt("CHECKS_PER_MINUTE", defaultChecksPerMinute)
	if err != nil {
		return nil, err
	}
	if cfg.ChecksPerMinute <= 0 {
		return nil, fmt.Errorf("CHECKS_PER_MINUTE must be positive, got %d", cfg.ChecksPerMinute)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
