// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the knobs read from the environment at startup.
type Config struct {
	HTTPAddr        string
	AppEnv          string
	DatabaseURL     string
	StoreBackend    string // "postgres" or "memory"
	JWTSecret       string
	APISecretHash   string // bcrypt hash of the shared API secret
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		AppEnv:          getenv("APP_ENV", "production"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		StoreBackend:    getenv("STORE_BACKEND", "postgres"),
		JWTSecret:       getenv("JWT_SECRET", ""),
		APISecretHash:   getenv("API_SECRET_HASH", ""),
		ShutdownTimeout: time.Duration(atoienv("SHUTDOWN_TIMEOUT", 15)) * time.Second,
	}
}
