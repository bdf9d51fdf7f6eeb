// nti-admin/config/config.go

// Package config loads the process configuration and owns the database
// and Redis connections. Everything is returned explicitly; there is
// no package-level connection state.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the full set of environment-driven settings.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   []byte

	// Bootstrap credentials for the first superadmin account, used
	// only when the users table is empty.
	AdminLogin    string
	AdminEmail    string
	AdminPassword string
}

// Load reads the .env file when present and then the environment.
// DB_URL and JWT_SECRET are mandatory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DB_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		AdminLogin:    getenv("ADMIN_LOGIN", "superadmin"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@nti.local"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("environment variable DB_URL is not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET is not set")
	}
	cfg.JWTSecret = []byte(secret)

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
