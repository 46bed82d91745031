package newsapi

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the external news provider client.
type Config struct {
	// BaseURL is the provider API root, e.g. "https://newsapi.org/v2".
	BaseURL string

	// APIKey authenticates requests against the provider. Required.
	APIKey string

	// Language restricts results to a single language code.
	// Default: "en"
	Language string

	// Timeout is the maximum duration of a single provider request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize caps how much of a provider response is read, in bytes.
	// Default: 5242880 (5MB)
	MaxBodySize int64

	// MaxPageSize caps the pageSize parameter sent to the provider.
	// The provider rejects larger values. Default: 100
	MaxPageSize int
}

// DefaultConfig returns the default client configuration. APIKey is left
// empty and must be supplied before the config validates.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://newsapi.org/v2",
		Language:    "en",
		Timeout:     10 * time.Second,
		MaxBodySize: 5 * 1024 * 1024,
		MaxPageSize: 100,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url must be http or https, got %q", parsed.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("max page size must be positive, got %d", c.MaxPageSize)
	}
	return nil
}

// LoadConfigFromEnv loads the client configuration from environment
// variables, falling back to defaults for anything unset.
//
// Environment variables:
//   - NEWSAPI_API_KEY: provider API key (required)
//   - NEWSAPI_BASE_URL: provider API root (default: https://newsapi.org/v2)
//   - NEWSAPI_LANGUAGE: result language code (default: en)
//   - NEWSAPI_TIMEOUT: duration string, e.g. "10s" (default: 10s)
//   - NEWSAPI_MAX_BODY_SIZE: integer in bytes (default: 5242880)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("NEWSAPI_API_KEY")

	if val := os.Getenv("NEWSAPI_BASE_URL"); val != "" {
		cfg.BaseURL = val
	}

	if val := os.Getenv("NEWSAPI_LANGUAGE"); val != "" {
		cfg.Language = val
	}

	if val := os.Getenv("NEWSAPI_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid NEWSAPI_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("NEWSAPI_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid NEWSAPI_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
