package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = 30 * time.Minute
	defaultBcryptCost = 12
)

type Config struct {
	Port       string
	JwtSecret  string
	DbURL      string
	TokenTTL   time.Duration
	BcryptCost int
}

// Load reads the configuration from a .env file or environment variables and
// returns a Config struct. It returns an error if any required variable is
// missing. The JWT secret is injected here and nowhere else; it must never be
// logged or sent to a client.
func Load() (*Config, error) {
	// Try to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	jwtSecret := os.Getenv("JWT_SECRET")
	dbURL := os.Getenv("DATABASE_URL")

	if port == "" || jwtSecret == "" || dbURL == "" {
		return nil, fmt.Errorf("missing required environment variables: PORT, JWT_SECRET or DATABASE_URL")
	}

	tokenTTL := defaultTokenTTL
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %q", v)
		}
		tokenTTL = time.Duration(minutes) * time.Minute
	}

	cost := defaultBcryptCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c < bcrypt.MinCost || c > bcrypt.MaxCost {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %q", v)
		}
		cost = c
	}

	cfg := &Config{
		Port:       port,
		JwtSecret:  jwtSecret,
		DbURL:      dbURL,
		TokenTTL:   tokenTTL,
		BcryptCost: cost,
	}
	return cfg, nil
}
