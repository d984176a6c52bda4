package config

import (
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	SyncBufferSize int
	RateLimitRPS   float64
}

// NewConfig creates a new Config instance, loading values from environment
// variables. An empty REDIS_URL leaves the counter store unconfigured and
// the service runs on the durable store alone.
func NewConfig() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SyncBufferSize: getEnvAsInt("SYNC_BUFFER_SIZE", 256),
		RateLimitRPS:   float64(getEnvAsInt("RATE_LIMIT_RPS", 10)),
	}
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
