package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string
	PricingConfigPath string
	BaseURL           string
	ChromePath        string
	GoogleCredentials string
	ImageCacheDir     string
	SessionTTL        time.Duration
	SweepInterval     time.Duration
	CommitRatePerSec  float64
	CommitBurst       int
}

// LoadDotEnv loads .env outside production. Values in .env override the
// process environment.
func LoadDotEnv(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		log.Printf("⚠️  .env file not found at %s, using system environment variables", path)
		return
	}
	log.Printf("✓ Loaded environment variables from %s", path)
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Env:               getenv("ENV", "development"),
		Port:              strings.TrimPrefix(getenv("PORT", "8080"), ":"),
		PricingConfigPath: os.Getenv("PRICING_CONFIG"),
		BaseURL:           strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ImageCacheDir:     getenv("IMAGE_CACHE_DIR", "cache/images"),
	}

	var err error
	if cfg.DatabaseURL, err = databaseURL(); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = durationEnv("SESSION_SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.CommitRatePerSec, err = floatEnv("COMMIT_RATE_PER_SEC", 2); err != nil {
		return nil, err
	}
	if cfg.CommitBurst, err = intEnv("COMMIT_BURST", 5); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// databaseURL uses DATABASE_URL or builds a DSN from the DB_* variables
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getenv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname, getenv("DB_SSLMODE", "disable")), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, v)
	}
	return d, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", key, v)
	}
	return f, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}
