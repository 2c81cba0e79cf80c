// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize caps request bodies; account tokens are a few KB.
	DefaultMaxRequestSize = 1 << 20

	// DefaultClientRetryMaxAttempts is one: recharge POSTs must not be replayed.
	DefaultClientRetryMaxAttempts = 1

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is zero: the breaker is off unless configured.
	// The client is shared by every caller, so an open circuit would fail
	// unrelated recharges.
	DefaultClientCircuitMaxFailures = 0

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultUpstreamBaseURL is the recharge site.
	DefaultUpstreamBaseURL = "https://chongzhi.pro"

	// DefaultUpstreamUserAgent is the mobile Safari identity the upstream expects.
	DefaultUpstreamUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 18_5 like Mac OS X) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.5 Mobile/15E148 Safari/604.1"

	// DefaultSessionTTL is how long a caller session lives.
	DefaultSessionTTL = 1800 * time.Second

	// DefaultRateLimitBurst is the per-IP burst on /api.
	DefaultRateLimitBurst = 10
)

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"        validate:"required"`
	Server    ServerConfig    `koanf:"server"     validate:"required"`
	Log       LogConfig       `koanf:"log"        validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"     validate:"required"`
	Upstream  UpstreamConfig  `koanf:"upstream"   validate:"required"`
	Session   SessionConfig   `koanf:"session"    validate:"required"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	I18n      I18nConfig      `koanf:"i18n"       validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for the upstream.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for idempotent upstream requests.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings. Zero max_failures
// disables the breaker.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"min=0"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
	InsecureSkipVerify  bool          `koanf:"insecure_skip_verify"`
}

// UpstreamConfig describes the recharge site.
type UpstreamConfig struct {
	BaseURL        string `koanf:"base_url"        validate:"required,url"`
	Name           string `koanf:"name"            validate:"required"`
	UserAgent      string `koanf:"user_agent"      validate:"required"`
	AcceptLanguage string `koanf:"accept_language" validate:"required"`
	SessionCookie  string `koanf:"session_cookie"  validate:"required"`
	ErrorService   string `koanf:"error_service"   validate:"required,oneof=openai revenuecat"`
}

// SessionConfig configures caller session persistence.
type SessionConfig struct {
	Backend    string        `koanf:"backend"     validate:"required,oneof=memory cookie redis"`
	TTL        time.Duration `koanf:"ttl"         validate:"required,min=1s"`
	CookieName string        `koanf:"cookie_name" validate:"required"`
	Secret     string        `koanf:"secret"      validate:"required_if=Backend cookie,omitempty,min=16"`
	Secure     bool          `koanf:"secure"`
	Redis      RedisConfig   `koanf:"redis"`
}

// RedisConfig configures the redis session backend.
type RedisConfig struct {
	Addr      string `koanf:"addr"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db"         validate:"min=0,max=15"`
	KeyPrefix string `koanf:"key_prefix"`
}

// RateLimitConfig configures per-client-IP limiting of /api.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"   validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst   int     `koanf:"burst" validate:"required_if=Enabled true,omitempty,min=1"`
}

// I18nConfig configures message localization.
type I18nConfig struct {
	DefaultLanguage string `koanf:"default_language" validate:"required,oneof=zh-Hans en"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "recharge-proxy",
		"app.version":     "1.0.0",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "105s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "100s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "recharge-proxy",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",
		"client.transport.insecure_skip_verify":    true,

		"upstream.base_url":        DefaultUpstreamBaseURL,
		"upstream.name":            "chongzhi",
		"upstream.user_agent":      DefaultUpstreamUserAgent,
		"upstream.accept_language": "zh-CN,zh-Hans;q=0.9",
		"upstream.session_cookie":  "ios_gpt_session",
		"upstream.error_service":   "openai",

		"session.backend":          SessionBackendMemory,
		"session.ttl":              DefaultSessionTTL.String(),
		"session.cookie_name":      "rp_session",
		"session.secret":           "",
		"session.secure":           false,
		"session.redis.addr":       "",
		"session.redis.password":   "",
		"session.redis.db":         0,
		"session.redis.key_prefix": "recharge:session:",

		"rate_limit.enabled": true,
		"rate_limit.rps":     2.0,
		"rate_limit.burst":   DefaultRateLimitBurst,

		"i18n.default_language": "zh-Hans",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Legacy SECRET_KEY / SESSION_TIMEOUT variables
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	defs := defaults()

	err := k.Load(confmap.Provider(defs, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	err = k.Load(confmap.Provider(legacyEnv(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading legacy env vars: %w", err)
	}

	err = k.Load(env.Provider("APP_", ".", envKeyMapper(defs)), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKeyMapper maps APP_SESSION_COOKIE_NAME to session.cookie_name by
// matching against the known keys, so keys containing underscores survive.
// Unknown variables fall back to replacing every underscore with a dot.
func envKeyMapper(known map[string]any) func(string) string {
	flat := make(map[string]string, len(known))
	for key := range known {
		flat[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, "APP_"))
		if key, ok := flat[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

// legacyEnv honors the variables older deployments of the recharge front end set.
func legacyEnv() map[string]any {
	out := map[string]any{}

	if v := os.Getenv("SECRET_KEY"); v != "" {
		out["session.secret"] = v
	}

	if v := os.Getenv("SESSION_TIMEOUT"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			out["session.ttl"] = v
		} else {
			out["session.ttl"] = v + "s"
		}
	}

	return out
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
