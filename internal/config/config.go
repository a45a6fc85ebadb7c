// Package config loads process settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"kaitori/internal/adapters/storage"
)

// Environments recognised by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Errors returned by Load.
var (
	ErrInvalidCSRFKey = errors.New("CSRF_KEY must be 64 hex characters (32 bytes)")
	ErrMissingCSRFKey = errors.New("CSRF_KEY is required in production")
)

// Config is the resolved process configuration.
type Config struct {
	Env      string
	HTTPAddr string

	DB DBConfig

	AdminUsername string
	AdminPassword string

	Location *time.Location

	RequestTimeout     time.Duration
	RateLimitPerSecond int
	SlowQueryMs        int
	SlowRequestMs      int

	// CSRFKey is always 32 bytes. GeneratedCSRFKey reports a per-process random key.
	CSRFKey          []byte
	GeneratedCSRFKey bool

	NotifyFrom string

	Logging LoggingConfig
}

// DBConfig selects and sizes the database.
type DBConfig struct {
	Dialect      storage.Dialect
	DSN          string
	MaxOpenConns int
}

// LoggingConfig feeds logging.New.
type LoggingConfig struct {
	Level  string
	Format string
}

// DefaultAdminPassword is seeded when ADMIN_PASSWORD is unset.
const DefaultAdminPassword = "admin123"

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// UsesDefaultAdminPassword reports whether the seed credential was left at its default.
func (c Config) UsesDefaultAdminPassword() bool {
	return c.AdminPassword == DefaultAdminPassword
}

// Load reads the environment.
// PRE: godotenv has already merged any .env file
// POST: returns an error for an unknown driver, a bad CSRF key, an unknown timezone or a malformed number
func Load() (Config, error) {
	cfg := Config{
		Env:           strings.ToLower(getEnvOrDefault("APP_ENV", EnvDevelopment)),
		HTTPAddr:      getEnvOrDefault("HTTP_ADDR", ":8080"),
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", DefaultAdminPassword),
		NotifyFrom:    getEnvOrDefault("NOTIFY_FROM", "出張買取予約 <noreply@example.jp>"),
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	dialect, err := storage.DialectFor(os.Getenv("DB_DRIVER"))
	if err != nil {
		return Config{}, err
	}
	cfg.DB = DBConfig{Dialect: dialect, DSN: getEnvOrDefault("DB_DSN", "kaitori.db")}

	tz := getEnvOrDefault("BOOKING_TIMEZONE", "Asia/Tokyo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"DB_MAX_OPEN_CONNS", 25, &cfg.DB.MaxOpenConns},
		{"RATE_LIMIT_PER_SECOND", 10, &cfg.RateLimitPerSecond},
		{"SLOW_QUERY_MS", storage.DefaultSlowQueryMs, &cfg.SlowQueryMs},
		{"SLOW_REQUEST_MS", 200, &cfg.SlowRequestMs},
	}
	for _, v := range ints {
		n, err := getEnvInt(v.key, v.def)
		if err != nil {
			return Config{}, err
		}
		*v.dest = n
	}
	timeoutMs, err := getEnvInt("REQUEST_TIMEOUT_MS", 5000)
	if err != nil {
		return Config{}, err
	}
	cfg.RequestTimeout = time.Duration(timeoutMs) * time.Millisecond

	cfg.CSRFKey, cfg.GeneratedCSRFKey, err = loadCSRFKey(os.Getenv("CSRF_KEY"), cfg.IsProduction())
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadCSRFKey decodes a hex key, or generates one outside production.
func loadCSRFKey(keyHex string, production bool) ([]byte, bool, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, false, ErrInvalidCSRFKey
		}
		return key, false, nil
	}
	if production {
		return nil, false, ErrMissingCSRFKey
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("failed to generate CSRF key: %w", err)
	}
	return key, true, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvInt parses a positive integer, using fallback when unset.
func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}
