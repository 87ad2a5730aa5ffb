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
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	CatalogCacheTTL time.Duration
	ReportCacheTTL  time.Duration
	IdempotencyTTL  time.Duration

	LegacyMultiplier    decimal.Decimal
	ReportTopN          int
	ReportTopCategories int
	CurrencyCode        string
	OrdersPerPage       int

	MigrateOnStart bool
	SeedPriceList  bool

	MaxBodyBytes     int64
	ExportRateLimit  int
	ExportRateWindow time.Duration
	SecurityHeaders  bool
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	multiplier, err := parseDecimal(k.String("PRICING_LEGACY_MULTIPLIER"), "0.90")
	if err != nil {
		return nil, fmt.Errorf("PRICING_LEGACY_MULTIPLIER: %w", err)
	}

	cfg := &Config{
		AppEnv:              valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:         strings.TrimSpace(k.String("DATABASE_URL")),
		RedisURL:            strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins:  splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		CatalogCacheTTL:     parseDuration(k.String("CATALOG_CACHE_TTL"), "10m"),
		ReportCacheTTL:      parseDuration(k.String("REPORT_CACHE_TTL"), "1m"),
		IdempotencyTTL:      parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		LegacyMultiplier:    multiplier,
		ReportTopN:          parseInt(k.String("REPORT_TOP_N"), 5),
		ReportTopCategories: parseInt(k.String("REPORT_TOP_CATEGORIES"), 10),
		CurrencyCode:        valueOrDefault(k.String("CURRENCY_CODE"), "IRR"),
		OrdersPerPage:       parseInt(k.String("ORDERS_PER_PAGE"), 50),
		MigrateOnStart:      parseBool(k.String("MIGRATE_ON_START"), true),
		SeedPriceList:       parseBool(k.String("SEED_PRICE_LIST"), true),
		MaxBodyBytes:        int64(parseInt(k.String("HTTP_MAX_BODY_BYTES"), 1<<20)),
		ExportRateLimit:     parseInt(k.String("EXPORT_RATE_LIMIT"), 30),
		ExportRateWindow:    parseDuration(k.String("EXPORT_RATE_WINDOW"), "1m"),
		SecurityHeaders:     parseBool(k.String("SECURITY_HEADERS"), true),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.LegacyMultiplier.IsNegative() || cfg.LegacyMultiplier.GreaterThan(decimal.NewFromInt(1)) {
		return nil, errors.New("PRICING_LEGACY_MULTIPLIER must be between 0 and 1")
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

// RedisEnabled reports whether a Redis URL was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
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
		return strings.TrimSpace(value)
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

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseDecimal(value, fallback string) (decimal.Decimal, error) {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	return decimal.NewFromString(base)
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
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
