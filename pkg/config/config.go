package config

import "time"

// Config is the root configuration structure.
type Config struct {
	API       APIConfig       `yaml:"api"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Retry     RetryConfig     `yaml:"retry"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	History   HistoryConfig   `yaml:"history"`
}

// APIConfig configures the connection to the catalog API.
type APIConfig struct {
	// BaseURL is the API root.
	BaseURL string `yaml:"base_url"`

	// Token is the personal access token. Usually supplied via the
	// CRATEDIG_API_TOKEN environment variable rather than the file.
	Token string `yaml:"token"`

	// UserAgent identifies this client to the API.
	UserAgent string `yaml:"user_agent"`

	// Timeout bounds each transport send.
	Timeout time.Duration `yaml:"timeout"`

	// TransportRetries is the connection-level retry count inside a
	// single dispatch.
	TransportRetries int `yaml:"transport_retries"`

	// MaxConcurrent caps simultaneous in-flight dispatches. Zero means
	// unlimited.
	MaxConcurrent int `yaml:"max_concurrent"`

	// Connection pool tuning.
	MaxIdleConns        int           `yaml:"max_idle_conns"`
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host"`
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout"`
}

// RateLimitConfig configures the sliding window admission control.
type RateLimitConfig struct {
	// MaxRequests is the number of requests admitted per window.
	MaxRequests int `yaml:"max_requests"`

	// Window is the sliding window span.
	Window time.Duration `yaml:"window"`
}

// RetryConfig configures the caller-facing retry policy.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int `yaml:"max_retries"`

	// BackoffFactor is the exponential base for the delay schedule.
	BackoffFactor float64 `yaml:"backoff_factor"`

	// MaxDelay caps a single backoff delay.
	MaxDelay time.Duration `yaml:"max_delay"`

	// RetryableStatus is the status-code allow-list. Empty means the
	// built-in default set.
	RetryableStatus []int `yaml:"retryable_status"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is one of text, json.
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// HistoryConfig configures the local request history store.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`

	// RetentionDays drops history entries older than this many days.
	RetentionDays int `yaml:"retention_days"`

	// MaxEntries caps the table size; the oldest rows are pruned first.
	MaxEntries int `yaml:"max_entries"`

	// PruneSchedule is a cron expression for the retention job.
	PruneSchedule string `yaml:"prune_schedule"`
}
