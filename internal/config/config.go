package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Chrome-like user agent; the HKO page serves a stripped variant to
// clients it does not recognize.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0 Safari/537.36"

const defaultURL = "https://www.hko.gov.hk/en/wxinfo/pastwx/ryes.htm"

// Config holds all tool settings, populated from environment variables.
type Config struct {
	URL         string
	UserAgent   string
	HTTPTimeout time.Duration

	DataDir    string
	OutputsDir string

	LogLevel  string
	LogFormat string

	// MetricsFile, when set, receives the run metrics in Prometheus
	// textfile-collector format.
	MetricsFile string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when
// present.
func Load() (*Config, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	timeoutStr := envOrDefault("HTTP_TIMEOUT", "20s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q", timeoutStr)
	}

	cfg := &Config{
		URL:         envOrDefault("HKO_URL", defaultURL),
		UserAgent:   envOrDefault("USER_AGENT", defaultUserAgent),
		HTTPTimeout: timeout,
		DataDir:     envOrDefault("DATA_DIR", "data"),
		OutputsDir:  envOrDefault("OUTPUTS_DIR", "outputs"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "text"),
		MetricsFile: os.Getenv("METRICS_FILE"),
	}

	if cfg.URL == "" {
		return nil, errors.New("HKO_URL is required")
	}
	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.OutputsDir == "" {
		return nil, errors.New("OUTPUTS_DIR is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
