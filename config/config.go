package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every runtime setting. Secret material and the token
// lifetime are threaded from here into the auth controller and middleware
// instead of living in a package-level variable, so each test run can use
// its own secret.
type Config struct {
	Port         string
	GinMode      string
	DBDriver     string // "mysql" or "sqlite"
	DSN          string // mysql DSN or sqlite file path
	JWTSecret    []byte
	TokenTTL     time.Duration
	CookieSecure bool
	CORSOrigin   string
	SeedData     bool
}

// Load reads configuration from environment variables with development
// defaults. godotenv is expected to have populated the environment already.
func Load() *Config {
	ttlHours := getEnvInt("TOKEN_TTL_HOURS", 168) // 7 days

	return &Config{
		Port:         getEnv("PORT", "4000"),
		GinMode:      getEnv("GIN_MODE", ""),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DSN:          getEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/reservation?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "restaurant-reservation-secret-key-2024")),
		TokenTTL:     time.Duration(ttlHours) * time.Hour,
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:5173"),
		SeedData:     getEnvBool("SEED_DATA", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
