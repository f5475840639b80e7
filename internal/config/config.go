// Package config reads server settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the server settings.
type Config struct {
	Port       int
	DBPath     string
	StaticPath string

	// TokenSecret signs session tokens. When TOKEN_SECRET is unset a random
	// secret is generated and GeneratedSecret is true; tokens then stop
	// working after a restart, which matches the in-memory store.
	TokenSecret     string
	GeneratedSecret bool
	TokenTTL        time.Duration

	LogLevel string
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:      getEnv("DB_PATH", ":memory:"),
		StaticPath:  getEnv("STATIC_PATH", "../frontend/static"),
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: must be positive", os.Getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	if cfg.TokenSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		cfg.TokenSecret = secret
		cfg.GeneratedSecret = true
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
