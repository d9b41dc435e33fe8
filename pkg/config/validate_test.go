package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return DefaultConfig()
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Default configuration must validate, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantSub: "base_url",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "api.example.com/v2" },
			wantSub: "absolute URL",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.Timeout = -1 },
			wantSub: "timeout",
		},
		{
			name:    "zero max requests",
			mutate:  func(c *Config) { c.RateLimit.MaxRequests = 0 },
			wantSub: "max_requests",
		},
		{
			name:    "negative window",
			mutate:  func(c *Config) { c.RateLimit.Window = -1 },
			wantSub: "window",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.Retry.MaxRetries = -1 },
			wantSub: "max_retries",
		},
		{
			name:    "zero backoff factor",
			mutate:  func(c *Config) { c.Retry.BackoffFactor = 0 },
			wantSub: "backoff_factor",
		},
		{
			name:    "bogus status code",
			mutate:  func(c *Config) { c.Retry.RetryableStatus = []int{999} },
			wantSub: "invalid status",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantSub: "logging.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantSub: "logging.format",
		},
		{
			name: "history enabled without path",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.Path = ""
			},
			wantSub: "history.path",
		},
		{
			name: "history zero retention",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.RetentionDays = -5
			},
			wantSub: "retention_days",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("Error %q should mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestValidate_HistoryDisabledSkipsHistoryChecks(t *testing.T) {
	cfg := validConfig()
	cfg.History.Enabled = false
	cfg.History.Path = ""
	cfg.History.RetentionDays = -1

	if err := Validate(cfg); err != nil {
		t.Errorf("Disabled history must not be validated, got %v", err)
	}
}
