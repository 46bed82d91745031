package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WorkerConfig controls the feed warming worker: which topics to refresh,
// how often, and with how much parallelism.
type WorkerConfig struct {
	CronSchedule   string        `yaml:"cron_schedule"`
	Timezone       string        `yaml:"timezone"`
	Topics         []string      `yaml:"topics"`
	ArticlesPerRun int           `yaml:"articles_per_run"`
	MaxConcurrent  int           `yaml:"max_concurrent"`
	WarmTimeout    time.Duration `yaml:"warm_timeout"`
	WarmFeatured   bool          `yaml:"warm_featured"`
}

// DefaultWorkerConfig returns the worker defaults: refresh the common topics
// every 30 minutes, three topics at a time.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:   "*/30 * * * *",
		Timezone:       "UTC",
		Topics:         []string{"technology", "business", "science"},
		ArticlesPerRun: 50,
		MaxConcurrent:  3,
		WarmTimeout:    2 * time.Minute,
		WarmFeatured:   true,
	}
}

// LoadWorkerConfig builds the worker configuration. A YAML file named by
// WORKER_CONFIG_FILE is loaded first when set; individual environment
// variables then override file values.
//
// Environment variables:
//   - WORKER_CRON_SCHEDULE: cron expression (default: */30 * * * *)
//   - WORKER_TIMEZONE: IANA timezone name (default: UTC)
//   - WORKER_TOPICS: comma-separated topic list
//   - WORKER_ARTICLES_PER_RUN: articles fetched per topic per run
//   - WORKER_MAX_CONCURRENT: topics refreshed in parallel
//   - WORKER_WARM_TIMEOUT: per-run timeout (default: 2m)
//   - WORKER_WARM_FEATURED: also refresh the featured article (default: true)
func LoadWorkerConfig() (*WorkerConfig, error) {
	cfg := DefaultWorkerConfig()

	if path := os.Getenv("WORKER_CONFIG_FILE"); path != "" {
		// #nosec G304 -- path comes from the deployment environment, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read worker config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse worker config file: %w", err)
		}
	}

	cfg.CronSchedule = GetEnvString("WORKER_CRON_SCHEDULE", cfg.CronSchedule)
	cfg.Timezone = GetEnvString("WORKER_TIMEZONE", cfg.Timezone)
	cfg.Topics = GetEnvStringList("WORKER_TOPICS", cfg.Topics)
	cfg.ArticlesPerRun = GetEnvInt("WORKER_ARTICLES_PER_RUN", cfg.ArticlesPerRun)
	cfg.MaxConcurrent = GetEnvInt("WORKER_MAX_CONCURRENT", cfg.MaxConcurrent)
	cfg.WarmTimeout = GetEnvDuration("WORKER_WARM_TIMEOUT", cfg.WarmTimeout)
	cfg.WarmFeatured = GetEnvBool("WORKER_WARM_FEATURED", cfg.WarmFeatured)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("worker config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the worker cannot run with.
func (c *WorkerConfig) Validate() error {
	if c.CronSchedule == "" {
		return fmt.Errorf("cron_schedule is required")
	}
	if len(c.Topics) == 0 {
		return fmt.Errorf("at least one topic is required")
	}
	if c.ArticlesPerRun <= 0 {
		return fmt.Errorf("articles_per_run must be positive, got %d", c.ArticlesPerRun)
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max_concurrent must be positive, got %d", c.MaxConcurrent)
	}
	if c.WarmTimeout <= 0 {
		return fmt.Errorf("warm_timeout must be positive, got %v", c.WarmTimeout)
	}
	return nil
}
