// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/marwanedjibo1-droid/facturio/internal/logger"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Log      logger.LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds database connection settings.
// Driver is "sqlite" or "postgres"; DSN is the matching connection string.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Migrations    bool
	MigrationsDir string
	SessionSecret string
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DATABASE_DSN", "file:facturio.db?_busy_timeout=5000"),
		},
		App: AppConfig{
			Migrations:    getEnvBool("RUN_MIGRATIONS", true),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
			SessionSecret: getEnv("SESSION_SECRET", ""),
		},
		Log: logger.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
