package config

import (
	"github.com/gaborage/go-fetch/fetch"
	"github.com/gaborage/go-fetch/logger"
)

// NewClient assembles a fetch client from cfg. Pass a nil log to build one
// from cfg.Log.
func NewClient(cfg *Config, log logger.Logger) (*fetch.Client, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
	}

	builder := fetch.NewBuilder(log).
		WithBaseURL(cfg.Client.BaseURL).
		WithDefaultTimeout(cfg.Client.Timeout).
		WithRetry(cfg.Client.Retry.Count, cfg.Client.Retry.Delay)

	for name, value := range cfg.Client.Headers {
		builder = builder.WithDefaultHeader(name, value)
	}
	if cfg.Client.LogPayloads {
		builder = builder.WithPayloadLogging(cfg.Client.MaxPayloadLogBytes)
	}
	if cfg.Client.RateLimit.Enabled {
		builder = builder.WithRateLimit(cfg.Client.RateLimit.RequestsPerSecond, cfg.Client.RateLimit.Burst)
	}
	if cfg.Client.Breaker.Enabled {
		builder = builder.WithBreaker(fetch.BreakerSettings{
			MaxRequests:         cfg.Client.Breaker.MaxRequests,
			ConsecutiveFailures: cfg.Client.Breaker.ConsecutiveFailures,
			Interval:            cfg.Client.Breaker.Interval,
			Timeout:             cfg.Client.Breaker.Timeout,
		})
	}

	return builder.Build(), nil
}
