package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// Kafka brokers for domain event publishing; empty disables publishing.
	KafkaBrokers []string

	JWT JWTConfig

	// Bootstrap admin account, created on startup if missing.
	AdminEmail    string
	AdminPassword string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// LoadConfig reads configuration from the environment, with .env support
// for local development.
func LoadConfig() (*Config, error) {
	// Ignore missing .env; environment variables take precedence anyway.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    parseDuration(getEnv("JWT_TTL", "24h")),
		},

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@school.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
