package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "APP_ENV", "LOG_LEVEL", "LOCALE", "USE_TEST_DATA", "API_BASE_URL",
		"API_TIMEOUT", "LIST_CACHE_SIZE", "LIST_CACHE_TTL", "FORM_SESSION_MAX", "FORM_SESSION_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Development())
	assert.Equal(t, "http://localhost:5111/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.False(t, cfg.UseTestData)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("USE_TEST_DATA", "true")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Development())
	assert.True(t, cfg.UseTestData)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad url", "API_BASE_URL", "not a url"},
		{"bad env", "APP_ENV", "staging"},
		{"bad port", "APP_PORT", "http"},
		{"zero sessions", "FORM_SESSION_MAX", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
