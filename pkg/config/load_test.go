package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Complete(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://api.example.com
  token: secret-token
  timeout: 10s
  max_concurrent: 8
rate_limit:
  max_requests: 25
  window: 30s
retry:
  max_retries: 5
  backoff_factor: 1.5
  max_delay: 20s
  retryable_status: [429, 503]
logging:
  level: debug
  format: json
history:
  enabled: true
  path: /tmp/history.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.API.BaseURL != "https://api.example.com" || cfg.API.Token != "secret-token" {
		t.Errorf("API section not loaded: %+v", cfg.API)
	}
	if cfg.API.Timeout != 10*time.Second || cfg.API.MaxConcurrent != 8 {
		t.Errorf("API tuning not loaded: %+v", cfg.API)
	}
	if cfg.RateLimit.MaxRequests != 25 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("Rate limit section not loaded: %+v", cfg.RateLimit)
	}
	if cfg.Retry.MaxRetries != 5 || cfg.Retry.BackoffFactor != 1.5 {
		t.Errorf("Retry section not loaded: %+v", cfg.Retry)
	}
	if len(cfg.Retry.RetryableStatus) != 2 {
		t.Errorf("Retryable status not loaded: %v", cfg.Retry.RetryableStatus)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging section not loaded: %+v", cfg.Logging)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/history.db" {
		t.Errorf("History section not loaded: %+v", cfg.History)
	}
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, `
api:
  token: t
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout, got %v", cfg.API.Timeout)
	}
	if cfg.RateLimit.MaxRequests != DefaultMaxRequests || cfg.RateLimit.Window != DefaultWindow {
		t.Errorf("Expected default rate limit, got %+v", cfg.RateLimit)
	}
	if cfg.Retry.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected default retries, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Expected default logging, got %+v", cfg.Logging)
	}
	if cfg.History.PruneSchedule != DefaultPruneSchedule {
		t.Errorf("Expected default prune schedule, got %q", cfg.History.PruneSchedule)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "api: [not: a: map")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://file.example.com
  token: file-token
rate_limit:
  max_requests: 10
`)

	t.Setenv("CRATEDIG_API_TOKEN", "env-token")
	t.Setenv("CRATEDIG_RATE_LIMIT_MAX_REQUESTS", "99")
	t.Setenv("CRATEDIG_RETRY_MAX_DELAY", "5s")
	t.Setenv("CRATEDIG_RETRY_RETRYABLE_STATUS", "429, 503")
	t.Setenv("CRATEDIG_LOGGING_LEVEL", "warn")

	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatal(err)
	}

	// Environment wins over the file.
	if cfg.API.Token != "env-token" {
		t.Errorf("Token override not applied: %q", cfg.API.Token)
	}
	if cfg.RateLimit.MaxRequests != 99 {
		t.Errorf("Rate limit override not applied: %d", cfg.RateLimit.MaxRequests)
	}
	if cfg.Retry.MaxDelay != 5*time.Second {
		t.Errorf("Duration override not applied: %v", cfg.Retry.MaxDelay)
	}
	if len(cfg.Retry.RetryableStatus) != 2 || cfg.Retry.RetryableStatus[1] != 503 {
		t.Errorf("Status list override not applied: %v", cfg.Retry.RetryableStatus)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging override not applied: %q", cfg.Logging.Level)
	}
	// File values without overrides survive.
	if cfg.API.BaseURL != "https://file.example.com" {
		t.Errorf("File value lost: %q", cfg.API.BaseURL)
	}
}

func TestLoadWithEnvOverrides_InvalidOverrideRejected(t *testing.T) {
	path := writeConfig(t, "api:\n  token: t\n")
	t.Setenv("CRATEDIG_LOGGING_LEVEL", "shouting")

	_, err := LoadWithEnvOverrides(path)
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("Expected post-override validation error, got %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CRATEDIG_API_TOKEN", "env-only")
	t.Setenv("CRATEDIG_API_TIMEOUT", "7s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.Token != "env-only" || cfg.API.Timeout != 7*time.Second {
		t.Errorf("Env-only config wrong: %+v", cfg.API)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("Defaults should apply: %q", cfg.API.BaseURL)
	}
}
