package fetch

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// RateLimitTransport caps outgoing attempts using a token bucket. Every
// attempt, including retries, waits for a token before reaching the next
// transport, so the limiter bounds QPS across concurrent Send calls.
type RateLimitTransport struct {
	next    Transport
	limiter *rate.Limiter
}

// NewRateLimitTransport decorates next with the given limiter.
func NewRateLimitTransport(next Transport, limiter *rate.Limiter) *RateLimitTransport {
	return &RateLimitTransport{next: next, limiter: limiter}
}

// RoundTrip waits for the limiter, honoring ctx, then forwards the call.
func (t *RateLimitTransport) RoundTrip(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, NewCancelledError(err)
		}
		// Wait reports a plain error both when the deadline cannot be met
		// and when the burst can never satisfy the request; only the latter
		// is a configuration problem.
		if t.limiter.Burst() < 1 {
			return nil, NewConfigurationError("rate limiter cannot admit request", err)
		}
		return nil, NewTimeoutError("rate limiter wait exceeded deadline", 0)
	}
	return t.next.RoundTrip(ctx, req)
}
