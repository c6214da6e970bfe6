package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration. It is built once in main and
// passed explicitly into the services that need it.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	TestMode     bool // lowers hashing cost for fast tests
}

// Load loads configuration from environment variables or sets defaults.
// Outside test mode a SECRET_KEY is mandatory; there is no fallback secret.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	testMode := getEnv("TEST_MODE", "false") == "true"

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		if !testMode {
			return nil, errors.New("SECRET_KEY must be set")
		}
		secret = "test-secret"
	}

	cost := 12
	if testMode {
		cost = bcrypt.MinCost
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./readinglist.db"),
		JWTSecret:    secret,
		TokenTTL:     24 * time.Hour,
		BcryptCost:   cost,
		TestMode:     testMode,
	}, nil
}

// Test returns a configuration suitable for tests: in-memory database,
// minimum hashing cost, fixed secret.
func Test() *Config {
	return &Config{
		ServerPort:   0,
		DatabasePath: ":memory:",
		JWTSecret:    "test-secret",
		TokenTTL:     24 * time.Hour,
		BcryptCost:   bcrypt.MinCost,
		TestMode:     true,
	}
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
