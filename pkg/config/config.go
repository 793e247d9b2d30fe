package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Environment          string
	DB                   DBConfig
	BcryptCost           int
	AllowLegacyPasswords bool
	LogLevel             string
	SessionSecret        string
	SessionTTL           time.Duration
}

// DBConfig holds the backing-store connection settings. Driver is the
// database driver identifier; only "postgres" is compiled in.
type DBConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing required values are a startup-fatal error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbHost, err := requireEnv("DB_HOST")
	if err != nil {
		return nil, err
	}
	dbUser, err := requireEnv("DB_USER")
	if err != nil {
		return nil, err
	}
	dbPassword, err := requireEnv("DB_PASSWORD")
	if err != nil {
		return nil, err
	}
	dbName, err := requireEnv("DB_NAME")
	if err != nil {
		return nil, err
	}
	sessionSecret, err := requireEnv("SESSION_SECRET")
	if err != nil {
		return nil, err
	}

	driver := getEnv("DB_DRIVER", "postgres")
	if driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (only postgres is compiled in)", driver)
	}

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	sessionTTLHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		DB: DBConfig{
			Driver:          driver,
			Host:            dbHost,
			Port:            port,
			User:            dbUser,
			Password:        dbPassword,
			Name:            dbName,
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		BcryptCost:           bcryptCost,
		AllowLegacyPasswords: getEnv("ALLOW_LEGACY_PASSWORDS", "false") == "true",
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		SessionSecret:        sessionSecret,
		SessionTTL:           time.Duration(sessionTTLHours) * time.Hour,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("missing required setting %s", key)
	}
	return value, nil
}
