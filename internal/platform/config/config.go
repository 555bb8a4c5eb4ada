package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// Unit-of-work retry on lock contention
	LockRetryAttempts int
	LockRetryDelay    time.Duration
	DBLockTimeout     time.Duration

	// Ledger defaults applied when a request leaves a field empty
	RentDueDay           int
	DefaultCurrency      string
	DefaultPaymentMethod string

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "property-ledger")
	viper.SetDefault("LOCK_RETRY_ATTEMPTS", 2)
	viper.SetDefault("LOCK_RETRY_DELAY", "250ms")
	viper.SetDefault("DB_LOCK_TIMEOUT", "5s")
	viper.SetDefault("RENT_DUE_DAY", 5)
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("DEFAULT_PAYMENT_METHOD", "Cash")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("PGSQL_URL"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:       viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		JWTIssuer:            viper.GetString("JWT_ISSUER"),
		LockRetryAttempts:    viper.GetInt("LOCK_RETRY_ATTEMPTS"),
		RentDueDay:           viper.GetInt("RENT_DUE_DAY"),
		DefaultCurrency:      strings.ToUpper(viper.GetString("DEFAULT_CURRENCY")),
		DefaultPaymentMethod: viper.GetString("DEFAULT_PAYMENT_METHOD"),
		RateLimit:            viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:   splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	var err error
	if cfg.LockRetryDelay, err = parseDuration("LOCK_RETRY_DELAY"); err != nil {
		return nil, err
	}
	if cfg.DBLockTimeout, err = parseDuration("DB_LOCK_TIMEOUT"); err != nil {
		return nil, err
	}

	if cfg.LockRetryAttempts < 1 {
		return nil, fmt.Errorf("LOCK_RETRY_ATTEMPTS must be at least 1, got %d", cfg.LockRetryAttempts)
	}
	if cfg.RentDueDay < 1 || cfg.RentDueDay > 28 {
		return nil, fmt.Errorf("RENT_DUE_DAY must be between 1 and 28, got %d", cfg.RentDueDay)
	}
	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code, got %q", cfg.DefaultCurrency)
	}

	return cfg, nil
}

func parseDuration(key string) (time.Duration, error) {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s cannot be negative", key)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
