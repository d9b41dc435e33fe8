package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values applied to unset fields.
const (
	DefaultBaseURL          = "https://api.discogs.com"
	DefaultUserAgent        = "cratedig/1.0 +https://github.com/cratedig-hq/cratedig"
	DefaultTimeout          = 30 * time.Second
	DefaultTransportRetries = 3
	DefaultMaxRequests      = 60
	DefaultWindow           = 60 * time.Second
	DefaultMaxRetries       = 3
	DefaultBackoffFactor    = 2.0
	DefaultMaxDelay         = 60 * time.Second
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultMetricsNamespace = "cratedig"
	DefaultRetentionDays    = 90
	DefaultMaxEntries       = 10000
	DefaultPruneSchedule    = "0 3 * * *"
)

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with default values. Explicit zero values
// the user cannot express (e.g. MaxRequests 0) are treated as unset.
func ApplyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = DefaultUserAgent
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.API.TransportRetries == 0 {
		cfg.API.TransportRetries = DefaultTransportRetries
	}
	if cfg.API.MaxIdleConns == 0 {
		cfg.API.MaxIdleConns = 10
	}
	if cfg.API.MaxIdleConnsPerHost == 0 {
		cfg.API.MaxIdleConnsPerHost = 10
	}
	if cfg.API.IdleConnTimeout == 0 {
		cfg.API.IdleConnTimeout = 90 * time.Second
	}

	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = DefaultMaxRequests
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = DefaultWindow
	}

	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = DefaultMaxRetries
	}
	if cfg.Retry.BackoffFactor == 0 {
		cfg.Retry.BackoffFactor = DefaultBackoffFactor
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = DefaultMaxDelay
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.History.Path == "" {
		cfg.History.Path = defaultHistoryPath()
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultRetentionDays
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = DefaultMaxEntries
	}
	if cfg.History.PruneSchedule == "" {
		cfg.History.PruneSchedule = DefaultPruneSchedule
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cratedig-history.db"
	}
	return filepath.Join(home, ".cratedig", "history.db")
}
