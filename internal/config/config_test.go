package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.HistoryBackend)
	assert.Equal(t, 1024, cfg.SessionCacheSize)
	assert.False(t, cfg.DemoMode)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"ENV":                   "production",
		"PORT":                  "9000",
		"GEMINI_API_KEY":        "key",
		"GEMINI_MODEL":          "gemini-2.5-flash",
		"DEMO_MODE":             "true",
		"HISTORY_BACKEND":       "redis",
		"REDIS_URL":             "redis://cache:6379/1",
		"SESSION_CACHE_SIZE":    "10",
		"RATE_LIMIT_PER_SECOND": "2.5",
		"RATE_LIMIT_BURST":      "5",
		"DAILY_QUOTA":           "50",
		"CLOUD_RUN_URL":         "https://books.example.run.app",
		"ALLOWED_ORIGINS":       "https://a.example, https://b.example,",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.True(t, cfg.DemoMode)
	assert.Equal(t, "redis", cfg.HistoryBackend)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 10, cfg.SessionCacheSize)
	assert.Equal(t, 2.5, cfg.RateLimitPerSecond)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, int64(50), cfg.DailyQuota)
	assert.Equal(t, []string{"https://books.example.run.app", "https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestFromLookup_InvalidNumbers(t *testing.T) {
	for _, key := range []string{"SESSION_CACHE_SIZE", "RATE_LIMIT_PER_SECOND", "RATE_LIMIT_BURST", "DAILY_QUOTA", "DEMO_MODE"} {
		_, err := FromLookup(lookupFrom(map[string]string{key: "lots"}))
		assert.Error(t, err, key)
	}
}
