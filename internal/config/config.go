package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates console configuration loaded from environment
// variables (optionally seeded from a .env file).
type Config struct {
	Env            string
	APIBaseURL     string
	PerPage        int
	HTTPTimeout    time.Duration
	SearchDebounce time.Duration
	SessionFile    string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:        getEnv("APP_ENV", "dev"),
		APIBaseURL: os.Getenv("API_BASE_URL"),
	}

	perPage, err := parseIntEnv("PER_PAGE", 15)
	if err != nil {
		return Config{}, err
	}
	cfg.PerPage = perPage

	timeout, err := parseDurationEnv("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTPTimeout = timeout

	debounce, err := parseDurationEnv("SEARCH_DEBOUNCE", 300*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.SearchDebounce = debounce

	cfg.SessionFile = os.Getenv("SESSION_FILE")
	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolve session file location: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "adminctl", "session.json")
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s value: %q", key, raw)
	}
	return n, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
