package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all service settings, populated from environment variables.
type AppConfig struct {
	// OpenWeatherMap API key. Required; its absence is a startup failure,
	// never a per-request error.
	APIKey string

	Port        string
	HTTPTimeout time.Duration // per outbound call, shared http.Client

	// Transport session retry policy for transient 5xx responses.
	RetryMax     int
	RetryBackoff time.Duration

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment with sensible defaults,
// loading a .env file first when one exists.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		APIKey:    os.Getenv("OWM_API_KEY"),
		Port:      getenvDefault("PORT", "8080"),
		LogLevel:  getenvDefault("LOG_LEVEL", "info"),
		LogFormat: getenvDefault("LOG_FORMAT", "text"),
	}

	if cfg.APIKey == "" {
		return nil, errors.New("OWM_API_KEY is required")
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	backoff, err := getenvDuration("RETRY_BACKOFF", "1s")
	if err != nil {
		return nil, err
	}
	cfg.RetryBackoff = backoff

	shutdown, err := getenvDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = shutdown

	cfg.RetryMax = getenvInt("RETRY_MAX", 3)
	if cfg.RetryMax < 0 {
		return nil, errors.New("RETRY_MAX must not be negative")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
