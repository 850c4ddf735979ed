// Package config loads runtime settings from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// Store backends
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds the application configuration
type Config struct {
	Store          string
	DatabaseDSN    string
	RedisURL       string
	OllamaHost     string
	Model          string
	Timeout        time.Duration
	Concurrency    int
	ModelsCacheTTL time.Duration
	LogLevel       string
	LogFormat      string
}

// Load reads a .env file when present, then the environment
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Store:       strings.ToLower(getEnv("LOOT_STORE", StoreSQLite)),
		DatabaseDSN: getEnv("LOOT_DATABASE_DSN", "loot.db"),
		RedisURL:    getEnv("LOOT_REDIS_URL", "redis://localhost:6379/0"),
		OllamaHost:  getEnv("OLLAMA_HOST", "http://localhost:11434"),
		Model:       getEnv("LOOT_MODEL", "llama3.2"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.Timeout, err = getDuration("LOOT_GENERATION_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ModelsCacheTTL, err = getDuration("LOOT_MODELS_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = getInt("LOOT_CONCURRENCY", 1); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("LOOT_STORE", c.Store, []string{StoreSQLite, StorePostgres, StoreRedis}, vb)
	switch c.Store {
	case StoreSQLite, StorePostgres:
		errors.ValidateRequired("LOOT_DATABASE_DSN", c.DatabaseDSN, vb)
	case StoreRedis:
		errors.ValidateRequired("LOOT_REDIS_URL", c.RedisURL, vb)
	}
	errors.ValidateRequired("OLLAMA_HOST", c.OllamaHost, vb)
	errors.ValidateRequired("LOOT_MODEL", c.Model, vb)
	errors.ValidatePositive("LOOT_GENERATION_TIMEOUT", int64(c.Timeout), vb)
	errors.ValidatePositive("LOOT_CONCURRENCY", int64(c.Concurrency), vb)
	errors.ValidatePositive("LOOT_MODELS_CACHE_TTL", int64(c.ModelsCacheTTL), vb)

	return vb.Build()
}

// getEnv retrieves an environment variable or returns a default value when
// it is unset or empty
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("invalid %s value %q: %v", key, raw, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("invalid %s value %q: %v", key, raw, err)
	}
	return n, nil
}

// String renders the config without credentials
func (c *Config) String() string {
	target := c.DatabaseDSN
	if c.Store == StoreRedis {
		target = c.RedisURL
	}
	return fmt.Sprintf("store=%s target=%s model=%s host=%s timeout=%s concurrency=%d",
		c.Store, redact(target), c.Model, c.OllamaHost, c.Timeout, c.Concurrency)
}

// redact hides a password in URL-style connection strings
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	userInfo := dsn[scheme+3 : at]
	if colon := strings.Index(userInfo, ":"); colon >= 0 {
		return dsn[:scheme+3] + userInfo[:colon] + ":***" + dsn[at:]
	}
	return dsn
}
