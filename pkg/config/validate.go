package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validLogFormats = map[string]bool{"text": true, "json": true}

// Validate checks the configuration for invalid values. It returns the
// first problem found.
func Validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", cfg.API.BaseURL)
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if cfg.API.TransportRetries < 0 {
		return fmt.Errorf("api.transport_retries must not be negative")
	}
	if cfg.API.MaxConcurrent < 0 {
		return fmt.Errorf("api.max_concurrent must not be negative")
	}

	if cfg.RateLimit.MaxRequests < 1 {
		return fmt.Errorf("rate_limit.max_requests must be at least 1")
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}

	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative")
	}
	if cfg.Retry.BackoffFactor <= 0 {
		return fmt.Errorf("retry.backoff_factor must be positive")
	}
	if cfg.Retry.MaxDelay <= 0 {
		return fmt.Errorf("retry.max_delay must be positive")
	}
	for _, code := range cfg.Retry.RetryableStatus {
		if code < 100 || code > 599 {
			return fmt.Errorf("retry.retryable_status contains invalid status %d", code)
		}
	}

	if !validLogLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(cfg.Logging.Format)] {
		return fmt.Errorf("logging.format %q is not one of text, json", cfg.Logging.Format)
	}

	if cfg.History.Enabled {
		if cfg.History.Path == "" {
			return fmt.Errorf("history.path is required when history is enabled")
		}
		if cfg.History.RetentionDays < 1 {
			return fmt.Errorf("history.retention_days must be at least 1")
		}
		if cfg.History.MaxEntries < 1 {
			return fmt.Errorf("history.max_entries must be at least 1")
		}
	}

	return nil
}
