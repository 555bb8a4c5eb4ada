package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2, cfg.LockRetryAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.LockRetryDelay)
	assert.Equal(t, 5*time.Second, cfg.DBLockTimeout)
	assert.Equal(t, 5, cfg.RentDueDay)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, "Cash", cfg.DefaultPaymentMethod)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LOCK_RETRY_DELAY", "1s")
	t.Setenv("RENT_DUE_DAY", "1")
	t.Setenv("DEFAULT_CURRENCY", "eur")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.LockRetryDelay)
	assert.Equal(t, 1, cfg.RentDueDay)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"due day past 28", "RENT_DUE_DAY", "31"},
		{"zero attempts", "LOCK_RETRY_ATTEMPTS", "0"},
		{"bad delay", "LOCK_RETRY_DELAY", "soon"},
		{"bad currency", "DEFAULT_CURRENCY", "DOLLARS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
