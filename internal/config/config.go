package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	DatabaseURL   string
	JWTSecret     string
	TokenDuration time.Duration
	Port          string
	AMQPURL       string
	ResendAPIKey  string
	SendFrom      string
	SentryDSN     string
	Env           string
}

// Load reads configuration from the environment. DATABASE_URL wins; the
// discrete DB_* variables are the fallback for local setups.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenDuration: 24 * time.Hour,
		Port:          getEnv("PORT", "8080"),
		AMQPURL:       os.Getenv("AMQP_URL"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		SendFrom:      getEnv("SEND_FROM", "outreach@coldpilot.io"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		Env:           getEnv("APP_ENV", "development"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
		)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if d := os.Getenv("TOKEN_DURATION"); d != "" {
		dur, err := time.ParseDuration(d)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_DURATION: %w", err)
		}
		cfg.TokenDuration = dur
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
