package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/config"
)

func TestLoadRequiresCoreVariables(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379/0",
		"JWT_SECRET":   "secret",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"DATABASE_URL":            "postgres://localhost:5432/quotes",
		"REDIS_URL":               "redis://localhost:6379/0",
		"JWT_SECRET":              "secret",
		"QUOTE_VALIDITY_MAX_DAYS": "",
		"QUOTE_CURRENCY_DEFAULT":  "",
		"PORT":                    "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "MXN", cfg.CurrencyDefault)
	require.Equal(t, 365, cfg.QuoteValidityMaxDays)
	require.Equal(t, 10*time.Minute, cfg.CatalogCacheTTL)
	require.False(t, cfg.QuoteStrictKeys)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"DATABASE_URL":            "postgres://localhost:5432/quotes",
		"REDIS_URL":               "redis://localhost:6379/0",
		"JWT_SECRET":              "secret",
		"PORT":                    "9090",
		"QUOTE_STRICT_KEYS":       "true",
		"QUOTE_VALIDITY_MAX_DAYS": "90",
		"CORS_ALLOWED_ORIGINS":    "https://aumatic.mx, https://www.aumatic.mx",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.True(t, cfg.QuoteStrictKeys)
	require.Equal(t, 90, cfg.QuoteValidityMaxDays)
	require.Equal(t, []string{"https://aumatic.mx", "https://www.aumatic.mx"}, cfg.CORSAllowedOrigins)
}
