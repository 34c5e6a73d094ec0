package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	AdminEmail         string
	AdminPasswordHash  string
	CORSAllowedOrigins []string

	CatalogCacheTTL time.Duration
	IdempotencyTTL  time.Duration

	CurrencyDefault          string
	QuoteValidityMaxDays     int
	QuoteValidityDefaultDays int
	QuoteStrictKeys          bool
	QuoteRateWindow          time.Duration
	QuoteRateMax             int
	GlobalRateFormatted      string

	AccessTokenTTL time.Duration

	NotifyEmailEnabled bool
	NotifyEmailFrom    string
	NotifyEmailTo      string
	DocWebhookURL      string
	DocWebhookTimeout  time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		JWTSecret:          k.String("JWT_SECRET"),
		AdminEmail:         strings.TrimSpace(k.String("ADMIN_EMAIL")),
		AdminPasswordHash:  strings.TrimSpace(k.String("ADMIN_PASSWORD_HASH")),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		CatalogCacheTTL: parseDuration(k.String("CATALOG_CACHE_TTL"), "10m"),
		IdempotencyTTL:  parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),

		CurrencyDefault:          valueOrDefault(k.String("QUOTE_CURRENCY_DEFAULT"), "MXN"),
		QuoteValidityMaxDays:     parseInt(k.String("QUOTE_VALIDITY_MAX_DAYS"), 365),
		QuoteValidityDefaultDays: parseInt(k.String("QUOTE_VALIDITY_DEFAULT_DAYS"), 30),
		QuoteStrictKeys:          parseBool(k.String("QUOTE_STRICT_KEYS")),
		QuoteRateWindow:          parseDuration(k.String("QUOTE_RATE_WINDOW"), "1m"),
		QuoteRateMax:             parseInt(k.String("QUOTE_RATE_MAX"), 30),
		GlobalRateFormatted:      valueOrDefault(k.String("GLOBAL_RATE_LIMIT"), "300-M"),

		AccessTokenTTL: parseDuration(k.String("ACCESS_TOKEN_TTL"), "1h"),

		NotifyEmailEnabled: parseBool(k.String("NOTIFY_EMAIL_ENABLED")),
		NotifyEmailFrom:    strings.TrimSpace(k.String("NOTIFY_EMAIL_FROM")),
		NotifyEmailTo:      strings.TrimSpace(k.String("NOTIFY_EMAIL_TO")),
		DocWebhookURL:      strings.TrimSpace(k.String("DOC_WEBHOOK_URL")),
		DocWebhookTimeout:  parseDuration(k.String("DOC_WEBHOOK_TIMEOUT"), "10s"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.QuoteValidityMaxDays < 1 {
		return nil, errors.New("QUOTE_VALIDITY_MAX_DAYS must be a positive integer")
	}
	if cfg.QuoteValidityDefaultDays < 1 || cfg.QuoteValidityDefaultDays > cfg.QuoteValidityMaxDays {
		return nil, errors.New("QUOTE_VALIDITY_DEFAULT_DAYS must be between 1 and QUOTE_VALIDITY_MAX_DAYS")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
