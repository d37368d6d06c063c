// Package config reads application configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort string
	DBPath   string
	LogLevel string
}

// Load reads configuration from environment variables with reasonable
// defaults. A .env file in the working directory is loaded first when
// present.
func Load() Config {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	port := getEnv("HTTP_PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		slog.Warn("Invalid HTTP_PORT value, defaulting to 8080", "value", port)
		port = "8080"
	}

	return Config{
		HTTPPort: port,
		DBPath:   getEnv("DB_PATH", "./data/stockroom.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
