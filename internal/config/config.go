package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by every hub command. Values come
// from the environment (optionally a .env file) and are then overridden
// by command-line flags.
type Config struct {
	RedisAddr  string
	BadgerPath string
	HTTPAddr   string

	// Admin client settings.
	APIURL string
	Token  string

	SessionTTL time.Duration
	CacheTTL   time.Duration

	// Bootstrap admin, created on server start when both are set.
	AdminUsername string
	AdminPassword string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	// A missing .env file is fine.
	_ = godotenv.Load()

	return Config{
		RedisAddr:     getEnv("HUB_REDIS_ADDR", "localhost:6379"),
		BadgerPath:    getEnv("HUB_BADGER_PATH", "./badger-data"),
		HTTPAddr:      getEnv("HUB_HTTP_ADDR", ":8080"),
		APIURL:        getEnv("HUB_API_URL", "http://localhost:8080/api"),
		Token:         os.Getenv("HUB_TOKEN"),
		SessionTTL:    getDuration("HUB_SESSION_TTL", 24*time.Hour),
		CacheTTL:      getDuration("HUB_CACHE_TTL", 5*time.Minute),
		AdminUsername: os.Getenv("HUB_ADMIN_USERNAME"),
		AdminPassword: os.Getenv("HUB_ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
