package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the per-resource circuit breakers.
type BreakerSettings struct {
	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32
	// ConsecutiveFailures trips the breaker once reached.
	ConsecutiveFailures uint32
	// Interval is the cyclic period for clearing counts while closed.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
}

// BreakerTransport wraps a Transport with one circuit breaker per resource,
// where a resource is METHOD plus URL path. Breakers are created lazily on
// first use, so unrelated endpoints trip independently.
type BreakerTransport struct {
	next     Transport
	settings BreakerSettings
	breakers sync.Map
}

// NewBreakerTransport decorates next with per-resource circuit breakers.
func NewBreakerTransport(next Transport, settings BreakerSettings) *BreakerTransport {
	return &BreakerTransport{next: next, settings: settings}
}

// RoundTrip routes the call through the breaker for its resource. A
// rejected call (open breaker or half-open overflow) surfaces as a
// network-kind error, which the send loop treats as retryable.
func (t *BreakerTransport) RoundTrip(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	resource := resourceKey(req)
	cb := t.breaker(resource)

	resp, err := cb.Execute(func() (*TransportResponse, error) {
		return t.next.RoundTrip(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, NewNetworkError(fmt.Sprintf("circuit breaker rejected request to %s", resource), err)
		}
		return nil, err
	}
	return resp, nil
}

func (t *BreakerTransport) breaker(resource string) *gobreaker.CircuitBreaker[*TransportResponse] {
	if cb, ok := t.breakers.Load(resource); ok {
		return cb.(*gobreaker.CircuitBreaker[*TransportResponse])
	}
	cb, _ := t.breakers.LoadOrStore(resource, t.newBreaker(resource))
	return cb.(*gobreaker.CircuitBreaker[*TransportResponse])
}

func (t *BreakerTransport) newBreaker(resource string) *gobreaker.CircuitBreaker[*TransportResponse] {
	threshold := t.settings.ConsecutiveFailures
	if threshold == 0 {
		threshold = 1
	}
	return gobreaker.NewCircuitBreaker[*TransportResponse](gobreaker.Settings{
		Name:        fmt.Sprintf("fetch circuit breaker for resource %s", resource),
		MaxRequests: t.settings.MaxRequests,
		Interval:    t.settings.Interval,
		Timeout:     t.settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
}

// resourceKey derives the breaker key from method and URL path. Unparseable
// URLs fall back to the raw URL so they still get a dedicated breaker.
func resourceKey(req *TransportRequest) string {
	u, err := url.Parse(req.URL)
	if err != nil {
		return req.Method + "_" + req.URL
	}
	return req.Method + "_" + u.Path
}
