package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	ListenAddr string
	DBDSN      string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration

	// LegacyClearOnUpdate reproduces the historical update behavior where
	// description and hostname were wiped before applying the request body,
	// so omitting them cleared the stored values. Off by default; updates
	// then retain any field absent from the request.
	LegacyClearOnUpdate bool
}

func Load() *Config {
	config := &Config{
		ListenAddr:          ":" + getEnv("PORT", "8080"),
		DBDSN:               os.Getenv("DB_DSN"),
		JWTSecret:           getEnv("JWT_SECRET", defaultJWTSecret),
		JWTIssuer:           getEnv("JWT_ISS", "asset-inventory-api"),
		JWTAudience:         getEnv("JWT_AUD", "asset-inventory-api"),
		JWTExpiry:           24 * time.Hour, // Default to 24 hours
		LegacyClearOnUpdate: os.Getenv("LEGACY_CLEAR_ON_UPDATE") == "true",
	}

	// Parse JWT expiry from environment if provided
	if expiryStr := os.Getenv("JWT_EXPIRY"); expiryStr != "" {
		if expiry, err := time.ParseDuration(expiryStr); err == nil {
			config.JWTExpiry = expiry
		}
	}

	return config
}

// Validate rejects configurations that would be unsafe or unusable at
// runtime. The default JWT secret is refused when ENVIRONMENT=production.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if strings.EqualFold(os.Getenv("ENVIRONMENT"), "production") && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be changed from the default in production")
	}
	if c.JWTIssuer == "" {
		return fmt.Errorf("JWT_ISS must not be empty")
	}
	if c.JWTAudience == "" {
		return fmt.Errorf("JWT_AUD must not be empty")
	}
	if c.JWTExpiry < time.Minute {
		return fmt.Errorf("JWT_EXPIRY must be at least one minute")
	}
	if c.JWTExpiry > 30*24*time.Hour {
		return fmt.Errorf("JWT_EXPIRY must be at most 30 days")
	}
	return nil
}

func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
