// Package config loads fetch client configuration from defaults, an
// optional YAML file, and environment variables, and assembles a client
// from the result.
package config

import "time"

// Config describes a fetch client.
type Config struct {
	Client ClientConfig `koanf:"client"`
	Log    LogConfig    `koanf:"log"`
}

// ClientConfig holds the request defaults and resilience policies.
type ClientConfig struct {
	BaseURL string        `koanf:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
	// Headers are sent with every request; request-level writes override them.
	Headers   map[string]string `koanf:"headers"`
	Retry     RetryConfig       `koanf:"retry"`
	RateLimit RateLimitConfig   `koanf:"rate_limit"`
	Breaker   BreakerConfig     `koanf:"breaker"`
	// LogPayloads enables header/body logging of requests and responses.
	LogPayloads bool `koanf:"log_payloads"`
	// MaxPayloadLogBytes caps logged body sizes when LogPayloads is set.
	MaxPayloadLogBytes int `koanf:"max_payload_log_bytes" validate:"gte=0"`
}

// RetryConfig configures the bounded retry loop.
type RetryConfig struct {
	// Count is the number of additional attempts beyond the first.
	Count int `koanf:"count" validate:"gte=0"`
	// Delay is the linear backoff base unit.
	Delay time.Duration `koanf:"delay" validate:"gte=0"`
}

// RateLimitConfig configures client-side request throttling.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// BreakerConfig configures per-resource circuit breaking.
type BreakerConfig struct {
	Enabled             bool          `koanf:"enabled"`
	MaxRequests         uint32        `koanf:"max_requests"`
	ConsecutiveFailures uint32        `koanf:"consecutive_failures"`
	Interval            time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout             time.Duration `koanf:"timeout" validate:"gte=0"`
}

// LogConfig configures the client logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}
