// Package config parses the service configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"ffuser"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"secret"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"fantasy_assistant"`

	// Web server
	Port int `env:"PORT" envDefault:"3000"`

	// Auth + credential storage
	JWTSecret        string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	EncryptionSecret string `env:"ENCRYPTION_SECRET" envDefault:"change-me-in-production"`

	// ESPN needs to know which season to query.
	SeasonYear int `env:"SEASON_YEAR" envDefault:"2025"`

	// Text generation. Empty GROQ_API_KEY disables LLM features; the
	// service falls back to deterministic analysis.
	GroqAPIKey string `env:"GROQ_API_KEY"`
	GroqModel  string `env:"GROQ_MODEL"`

	// Background jobs
	TradeExpiryFrequency time.Duration `env:"TRADE_EXPIRY_FREQUENCY" envDefault:"1h"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	if c.EncryptionSecret == "change-me-in-production" {
		return fmt.Errorf("ENCRYPTION_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.EncryptionSecret) < 32 {
		return fmt.Errorf("ENCRYPTION_SECRET is too short (%d chars); minimum 32 characters required", len(c.EncryptionSecret))
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
