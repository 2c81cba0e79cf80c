package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "recharge-proxy",
			Version:     "1.0.0",
			Environment: "test",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    105 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  100 * time.Second,
			MaxRequestSize:  1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				InsecureSkipVerify:  true,
			},
		},
		Upstream: UpstreamConfig{
			BaseURL:        "https://chongzhi.pro",
			Name:           "chongzhi",
			UserAgent:      "ua",
			AcceptLanguage: "zh-CN",
			SessionCookie:  "ios_gpt_session",
			ErrorService:   "openai",
		},
		Session: SessionConfig{
			Backend:    SessionBackendMemory,
			TTL:        30 * time.Minute,
			CookieName: "rp_session",
		},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 2, Burst: 10},
		I18n:      I18nConfig{DefaultLanguage: "zh-Hans"},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		contains []string
	}{
		{
			name:     "missing app name",
			mutate:   func(c *Config) { c.App.Name = "" },
			contains: []string{"app.name", "required"},
		},
		{
			name:     "invalid environment",
			mutate:   func(c *Config) { c.App.Environment = "staging" },
			contains: []string{"app.environment", "must be one of"},
		},
		{
			name:     "port too high",
			mutate:   func(c *Config) { c.Server.Port = 65536 },
			contains: []string{"server.port", "at most"},
		},
		{
			name:     "read timeout below minimum",
			mutate:   func(c *Config) { c.Server.ReadTimeout = 500 * time.Millisecond },
			contains: []string{"server.readtimeout"},
		},
		{
			name:     "unknown log level",
			mutate:   func(c *Config) { c.Log.Level = "verbose" },
			contains: []string{"log.level"},
		},
		{
			name: "log file enabled without path",
			mutate: func(c *Config) {
				c.Log.File.Enabled = true
				c.Log.File.Path = ""
			},
			contains: []string{"log.file.path", "required when"},
		},
		{
			name:     "retry attempts zero",
			mutate:   func(c *Config) { c.Client.Retry.MaxAttempts = 0 },
			contains: []string{"client.retry.maxattempts"},
		},
		{
			name:     "upstream base url not a url",
			mutate:   func(c *Config) { c.Upstream.BaseURL = "chongzhi" },
			contains: []string{"upstream.baseurl", "valid URL"},
		},
		{
			name:     "unknown error service",
			mutate:   func(c *Config) { c.Upstream.ErrorService = "stripe" },
			contains: []string{"upstream.errorservice"},
		},
		{
			name:     "unknown session backend",
			mutate:   func(c *Config) { c.Session.Backend = "file" },
			contains: []string{"session.backend"},
		},
		{
			name:     "cookie backend needs a secret",
			mutate:   func(c *Config) { c.Session.Backend = SessionBackendCookie },
			contains: []string{"session.secret", "required when"},
		},
		{
			name: "cookie secret too short",
			mutate: func(c *Config) {
				c.Session.Backend = SessionBackendCookie
				c.Session.Secret = "short"
			},
			contains: []string{"session.secret", "at least 16"},
		},
		{
			name:     "redis backend needs an address",
			mutate:   func(c *Config) { c.Session.Backend = SessionBackendRedis },
			contains: []string{"session.redis.addr"},
		},
		{
			name:     "rate limit needs rps",
			mutate:   func(c *Config) { c.RateLimit.RPS = 0 },
			contains: []string{"ratelimit.rps"},
		},
		{
			name:     "unsupported default language",
			mutate:   func(c *Config) { c.I18n.DefaultLanguage = "fr" },
			contains: []string{"i18n.defaultlanguage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestConfig_Validate_AcceptedVariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"trace level", func(c *Config) { c.Log.Level = "trace" }},
		{"pretty format", func(c *Config) { c.Log.Format = "pretty" }},
		{"breaker disabled", func(c *Config) { c.Client.CircuitBreaker.MaxFailures = 0 }},
		{"rate limit disabled without values", func(c *Config) { c.RateLimit = RateLimitConfig{} }},
		{"english default", func(c *Config) { c.I18n.DefaultLanguage = "en" }},
		{"redis backend", func(c *Config) {
			c.Session.Backend = SessionBackendRedis
			c.Session.Redis.Addr = "localhost:6379"
		}},
		{"cookie backend", func(c *Config) {
			c.Session.Backend = SessionBackendCookie
			c.Session.Secret = "0123456789abcdef"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestFormatFieldPath(t *testing.T) {
	assert.Equal(t, "server.port", formatFieldPath("Config.Server.Port"))
	assert.Equal(t, "port", formatFieldPath("Port"))
}
