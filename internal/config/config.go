// Package config loads the dashboard configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds server settings.
type Config struct {
	Port        string `validate:"required,numeric"`
	Env         string `validate:"oneof=development production test"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	Locale      string `validate:"required"`
	UseTestData bool

	API     APIConfig
	Cache   CacheConfig
	Session SessionConfig
}

// APIConfig configures the game API client.
type APIConfig struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

// CacheConfig configures the list cache.
type CacheConfig struct {
	Size int           `validate:"min=1"`
	TTL  time.Duration `validate:"gte=0"`
}

// SessionConfig configures the form session store.
type SessionConfig struct {
	Max int           `validate:"min=1"`
	TTL time.Duration `validate:"gt=0"`
}

// Development reports whether the server runs in development mode.
func (c Config) Development() bool {
	return c.Env == "development"
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("APP_PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Locale:      getEnv("LOCALE", "en-US"),
		UseTestData: getEnvBool("USE_TEST_DATA", false),
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5111/api"),
			Timeout: getEnvDuration("API_TIMEOUT", 15*time.Second),
		},
		Cache: CacheConfig{
			Size: getEnvInt("LIST_CACHE_SIZE", 64),
			TTL:  getEnvDuration("LIST_CACHE_TTL", 30*time.Second),
		},
		Session: SessionConfig{
			Max: getEnvInt("FORM_SESSION_MAX", 1024),
			TTL: getEnvDuration("FORM_SESSION_TTL", 30*time.Minute),
		},
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct rules.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
