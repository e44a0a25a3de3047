package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HUB_REDIS_ADDR", "")
	t.Setenv("HUB_SESSION_TTL", "")
	t.Setenv("HUB_TOKEN", "")

	cfg := Load()
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.Token)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HUB_REDIS_ADDR", "redis:6380")
	t.Setenv("HUB_SESSION_TTL", "30m")
	t.Setenv("HUB_CACHE_TTL", "not-a-duration")
	t.Setenv("HUB_TOKEN", "abc")

	cfg := Load()
	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL, "bad values fall back")
	assert.Equal(t, "abc", cfg.Token)
}
