package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	// Seconds a session may sit in_progress with no activity before a
	// sweeper could end it. Read but not enforced yet; no policy is
	// specified upstream.
	SessionIdleTimeout string
}

// Load reads configuration from the environment (.env if present).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "vibelink"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-me"),
		SessionIdleTimeout: getEnv("SESSION_IDLE_TIMEOUT", "3600"),
	}
}

// Validate checks required fields and production safety.
func (c *Config) Validate() error {
	if c.DBHost == "" {
		return errors.New("config: DB_HOST is required")
	}
	if c.DBUser == "" {
		return errors.New("config: DB_USER is required")
	}
	if c.DBName == "" {
		return errors.New("config: DB_NAME is required")
	}
	if c.AppEnv == "production" && c.JWTSecret == "super-secret-key-change-me" {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	return nil
}

// DSN returns the PostgreSQL connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
