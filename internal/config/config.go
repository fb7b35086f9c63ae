// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup
type Config struct {
	Env  string
	Port string

	GeminiAPIKey string
	GeminiModel  string
	DemoMode     bool

	HistoryBackend   string
	HistoryDir       string
	RedisURL         string
	SQLitePath       string
	SessionCacheSize int

	AllowedOrigins []string

	RateLimitPerSecond float64
	RateLimitBurst     int
	DailyQuota         int64
}

// IsProduction reports whether ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadDotEnv loads .env.local if it exists. Variables already set win.
func LoadDotEnv() {
	godotenv.Load(".env.local")
}

// Load builds a Config from the process environment
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to read variables
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Env:            get("ENV", "development"),
		Port:           get("PORT", "8080"),
		GeminiAPIKey:   get("GEMINI_API_KEY", ""),
		GeminiModel:    get("GEMINI_MODEL", ""),
		HistoryBackend: get("HISTORY_BACKEND", "memory"),
		HistoryDir:     get("HISTORY_DIR", "data/history"),
		RedisURL:       get("REDIS_URL", ""),
		SQLitePath:     get("SQLITE_PATH", "data/history.sqlite"),
	}

	var err error
	if cfg.DemoMode, err = strconv.ParseBool(get("DEMO_MODE", "false")); err != nil {
		return nil, fmt.Errorf("invalid DEMO_MODE: %w", err)
	}
	if cfg.SessionCacheSize, err = strconv.Atoi(get("SESSION_CACHE_SIZE", "1024")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_CACHE_SIZE: %w", err)
	}
	if cfg.RateLimitPerSecond, err = strconv.ParseFloat(get("RATE_LIMIT_PER_SECOND", "0.2"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_SECOND: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(get("RATE_LIMIT_BURST", "3")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	if cfg.DailyQuota, err = strconv.ParseInt(get("DAILY_QUOTA", "1000"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid DAILY_QUOTA: %w", err)
	}

	if !cfg.IsProduction() {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, "http://localhost:5173")
	}
	if cloudRunURL := get("CLOUD_RUN_URL", ""); cloudRunURL != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, cloudRunURL)
	}
	if extra := get("ALLOWED_ORIGINS", ""); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}
