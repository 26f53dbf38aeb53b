package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL            string
	Port                   string
	IsProduction           bool
	JWTSecret              string
	JWTIssuer              string
	JWTExpiryDuration      time.Duration
	RateLimit              string
	ReconciliationSchedule string
	CORSAllowedOrigins     []string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_ISSUER", "school_finance_app")
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("RECONCILIATION_SCHEDULE", "@every 1h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable not set")
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return &Config{
		DatabaseURL:            dbURL,
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		JWTSecret:              jwtSecret,
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		JWTExpiryDuration:      time.Duration(v.GetInt("JWT_EXPIRY_MINUTES")) * time.Minute,
		RateLimit:              v.GetString("RATE_LIMIT"),
		ReconciliationSchedule: v.GetString("RECONCILIATION_SCHEDULE"),
		CORSAllowedOrigins:     v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
	}, nil
}
