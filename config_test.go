package iacrm

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults with base url valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "base url missing",
			mutate: func(c *Config) {
				c.API.BaseURL = "   "
			},
			wantValid: false,
		},
		{
			name: "base url relative",
			mutate: func(c *Config) {
				c.API.BaseURL = "/crm"
			},
			wantValid: false,
		},
		{
			name: "login path without leading slash",
			mutate: func(c *Config) {
				c.API.LoginPath = "api/v1/auth/login"
			},
			wantValid: false,
		},
		{
			name: "refresh path without leading slash",
			mutate: func(c *Config) {
				c.API.RefreshPath = "api/v1/auth/refresh"
			},
			wantValid: false,
		},
		{
			name: "login and refresh paths collide",
			mutate: func(c *Config) {
				c.API.RefreshPath = c.API.LoginPath
			},
			wantValid: false,
		},
		{
			name: "negative api timeout",
			mutate: func(c *Config) {
				c.API.Timeout = -time.Second
			},
			wantValid: false,
		},
		{
			name: "zero refresh timeout",
			mutate: func(c *Config) {
				c.Refresh.Timeout = 0
			},
			wantValid: false,
		},
		{
			name: "expiry skew valid",
			mutate: func(c *Config) {
				c.Credentials.ExpirySkew = 30 * time.Second
			},
			wantValid: true,
		},
		{
			name: "expiry skew too large",
			mutate: func(c *Config) {
				c.Credentials.ExpirySkew = 3 * time.Minute
			},
			wantValid: false,
		},
		{
			name: "expiry skew negative",
			mutate: func(c *Config) {
				c.Credentials.ExpirySkew = -time.Second
			},
			wantValid: false,
		},
		{
			name: "audit buffer negative",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = -1
			},
			wantValid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.API.BaseURL = "https://crm.example.test"
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
