// Package config holds runtime configuration and the criteria
// resolution logic (flags, presets, city-code table).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds fetcher and output configuration.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration
	RetryBackoffMax time.Duration
	UserAgent       string
	CitiesFile      string
	MetricsAddr     string
	Verbose         bool
}

// DefaultConfig returns conservative defaults for the rw.by target.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://pass.rw.by",
		Timeout:         10 * time.Second,
		MaxRetries:      2,
		RetryBackoff:    200 * time.Millisecond,
		RetryBackoffMax: 2 * time.Second,
		UserAgent:       "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		CitiesFile:      "cities.csv",
		MetricsAddr:     "",
		Verbose:         false,
	}
}

// Load builds the default config with environment overrides applied.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v, ok := EnvString("RWSCHED_BASE_URL"); ok {
		cfg.BaseURL = v
	}
	if v, ok := EnvString("RWSCHED_CITIES_FILE"); ok {
		cfg.CitiesFile = v
	}
	if v, ok := EnvString("RWSCHED_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok, err := EnvInt("RWSCHED_MAX_RETRIES"); err != nil {
		return nil, fmt.Errorf("invalid RWSCHED_MAX_RETRIES: %w", err)
	} else if ok {
		cfg.MaxRetries = v
	}
	if v, ok, err := EnvInt("RWSCHED_TIMEOUT_MS"); err != nil {
		return nil, fmt.Errorf("invalid RWSCHED_TIMEOUT_MS: %w", err)
	} else if ok {
		cfg.Timeout = time.Duration(v) * time.Millisecond
	}
	return cfg, nil
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff cannot be negative")
	}
	if c.RetryBackoffMax < 0 {
		return fmt.Errorf("retry backoff max cannot be negative")
	}
	if c.RetryBackoffMax > 0 && c.RetryBackoff > c.RetryBackoffMax {
		return fmt.Errorf("retry backoff (%s) cannot exceed retry backoff max (%s)", c.RetryBackoff, c.RetryBackoffMax)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.CitiesFile == "" {
		return fmt.Errorf("cities file cannot be empty")
	}

	return nil
}

// EnvString reads a string environment variable.
func EnvString(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// EnvInt reads an integer environment variable.
func EnvInt(key string) (int, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
