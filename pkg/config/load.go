package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path. It
// applies default values and validates the result. Environment variables
// are not consulted; use LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// CRATEDIG_SECTION_FIELD (e.g. CRATEDIG_API_TOKEN) and always take
// precedence over file values.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a configuration from defaults plus environment variables,
// for running without a config file at all.
func FromEnv() (*Config, error) {
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides using the
// CRATEDIG_SECTION_FIELD format.
func applyEnvOverrides(cfg *Config) {
	// API overrides
	if val := os.Getenv("CRATEDIG_API_BASE_URL"); val != "" {
		cfg.API.BaseURL = val
	}
	if val := os.Getenv("CRATEDIG_API_TOKEN"); val != "" {
		cfg.API.Token = val
	}
	if val := os.Getenv("CRATEDIG_API_USER_AGENT"); val != "" {
		cfg.API.UserAgent = val
	}
	if val := os.Getenv("CRATEDIG_API_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.API.Timeout = d
		}
	}
	if val := os.Getenv("CRATEDIG_API_TRANSPORT_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.API.TransportRetries = i
		}
	}
	if val := os.Getenv("CRATEDIG_API_MAX_CONCURRENT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.API.MaxConcurrent = i
		}
	}

	// Rate limit overrides
	if val := os.Getenv("CRATEDIG_RATE_LIMIT_MAX_REQUESTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.MaxRequests = i
		}
	}
	if val := os.Getenv("CRATEDIG_RATE_LIMIT_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.Window = d
		}
	}

	// Retry overrides
	if val := os.Getenv("CRATEDIG_RETRY_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retry.MaxRetries = i
		}
	}
	if val := os.Getenv("CRATEDIG_RETRY_BACKOFF_FACTOR"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Retry.BackoffFactor = f
		}
	}
	if val := os.Getenv("CRATEDIG_RETRY_MAX_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.MaxDelay = d
		}
	}
	if val := os.Getenv("CRATEDIG_RETRY_RETRYABLE_STATUS"); val != "" {
		var codes []int
		for _, part := range strings.Split(val, ",") {
			if i, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				codes = append(codes, i)
			}
		}
		if len(codes) > 0 {
			cfg.Retry.RetryableStatus = codes
		}
	}

	// Logging overrides
	if val := os.Getenv("CRATEDIG_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("CRATEDIG_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	// Metrics overrides
	if val := os.Getenv("CRATEDIG_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}

	// History overrides
	if val := os.Getenv("CRATEDIG_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("CRATEDIG_HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
	if val := os.Getenv("CRATEDIG_HISTORY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.RetentionDays = i
		}
	}
	if val := os.Getenv("CRATEDIG_HISTORY_MAX_ENTRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.MaxEntries = i
		}
	}
}
