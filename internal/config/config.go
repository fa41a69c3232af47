// Package config handles application configuration loading from
// environment variables, with an optional .env file for development.
// It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection. DatabaseURL, when set, wins over the
	// individual POSTGRES_* pieces.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Valkey (Redis-compatible cache). Optional: an empty host disables
	// the list cache entirely.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// UploadDir is where submitted images are stored on disk.
	UploadDir string
}

// Load reads configuration from a .env file (if present) and the
// environment, applying defaults for development. Returns an error if
// critical values are missing in production mode.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "5000"),
		Env:  envOrDefault("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:      envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:      envOrDefault("POSTGRES_USER", "osman"),
		DBPassword:  envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:      envOrDefault("POSTGRES_DB", "osman"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		UploadDir: envOrDefault("UPLOAD_DIR", "public/uploads/timeline"),
	}

	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD or DATABASE_URL must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
