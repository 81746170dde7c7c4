// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// HTTP server
	Port string

	// Storage backend: "memory", "sqlite" or "redis"
	StorageBackend string
	SQLiteDBPath   string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Days before stored calculations and groups expire
	TTLDays int

	// Simulated receipt-scan processing delay
	ScanDelay time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		SQLiteDBPath:   getEnv("DB_PATH", "./data/billsplit.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		TTLDays:        getEnvInt("TTL_DAYS", 30),
		ScanDelay:      getEnvDuration("SCAN_DELAY", 2*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
