package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/gaborage/go-fetch/trace"
)

// SleepFunc suspends between retry attempts. Tests inject a recorder so
// backoff schedules stay deterministic and instant.
type SleepFunc func(ctx context.Context, d time.Duration) error

// defaultSleep waits for d or until ctx is done, whichever comes first.
func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Send freezes the configuration and executes the request through the
// client's retry loop. It consumes the builder: a second Send on the same
// builder fails with a configuration-kind error.
//
// When the loader flag is set, exactly one EnableLoader and one
// DisableLoader event bracket the whole call regardless of how many
// attempts run. The outcome notification, when enabled, is emitted at most
// once, for the terminal result only.
func (b *RequestBuilder) Send(ctx context.Context) (*Response, error) {
	if b.sent {
		err := NewConfigurationError("request builder already consumed by Send", nil)
		stampCallName(err, b.config.CallName)
		return nil, err
	}
	b.sent = true
	c := b.client
	cfg := b.Config()

	if cfg.WithLoader {
		c.notifier.EnableLoader()
		defer c.notifier.DisableLoader()
	}

	resp, err := c.execute(ctx, &cfg)

	if cfg.WithNotifications {
		if err != nil {
			c.notifier.Notify(fmt.Sprintf("Request failed: %v", err))
		} else {
			c.notifier.Notify(fmt.Sprintf("Request completed successfully (%d)", resp.Status))
		}
	}
	return resp, err
}

// execute validates the frozen configuration, encodes the body once, and
// runs the bounded retry loop. Attempts are strictly sequential; attempt
// n+1 never starts before attempt n has been fully classified.
func (c *Client) execute(ctx context.Context, cfg *RequestConfig) (*Response, error) {
	if cfg.URL == "" {
		err := NewInvalidURLError("")
		stampCallName(err, cfg.CallName)
		return nil, err
	}

	contentType, payload, err := cfg.Body.encode()
	if err != nil {
		stampCallName(err, cfg.CallName)
		return nil, err
	}

	headers := cfg.Headers.Clone()
	if contentType != "" {
		// Multipart bodies carry their boundary in the content type, so the
		// encoded value wins over anything set earlier.
		headers.Set("Content-Type", contentType)
	}
	if !headers.Has(trace.HeaderRequestID) {
		headers.Set(trace.HeaderRequestID, trace.EnsureRequestID(ctx))
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.RetryCount; attempt++ {
		if attempt > 0 {
			// Linear backoff: attempt n waits n times the base delay.
			delay := cfg.RetryDelay * time.Duration(attempt)
			c.logRetry(cfg, attempt, delay, lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				lastErr = NewCancelledError(err)
				break
			}
		}

		resp, err := c.attempt(ctx, cfg, headers, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isRetryable(err) {
			break
		}
	}

	if lastErr == nil {
		lastErr = NewNetworkError("unknown error", nil)
	}
	stampCallName(lastErr, cfg.CallName)
	return nil, lastErr
}

// attempt performs one transport call and classifies its outcome. Non-2xx
// statuses never reach the caller as a Response; they are folded into an
// HTTP-kind error carrying the status and raw body.
func (c *Client) attempt(ctx context.Context, cfg *RequestConfig, headers Headers, payload []byte) (*Response, error) {
	if cfg.WithProgress {
		c.notifier.UpdateProgress(0)
	}

	treq := &TransportRequest{
		Method:  cfg.Method,
		URL:     cfg.URL,
		Headers: headers.Clone(),
		Body:    payload,
		Timeout: cfg.Timeout,
	}
	c.logRequest(cfg, treq)

	if cfg.WithProgress {
		c.notifier.UpdateProgress(0.5)
	}

	start := time.Now()
	tresp, err := c.transport.RoundTrip(ctx, treq)
	if err != nil {
		stampCallName(err, cfg.CallName)
		return nil, err
	}

	if tresp.Status < 100 || tresp.Status > 599 {
		return nil, NewInvalidResponseError(fmt.Sprintf("status code %d outside 100-599", tresp.Status))
	}

	resp := &Response{
		Status:   tresp.Status,
		Headers:  tresp.Headers,
		Body:     tresp.Body,
		URL:      cfg.URL,
		CallName: cfg.CallName,
	}
	c.logResponse(cfg, resp, time.Since(start))

	if !resp.IsSuccess() {
		return nil, NewHTTPError(fmt.Sprintf("HTTP error %d", resp.Status), resp.Status, resp.Body)
	}

	if cfg.WithProgress {
		c.notifier.UpdateProgress(1.0)
	}
	return resp, nil
}

// isRetryable decides retry eligibility per error kind. Cancellation, bad
// URLs, and configuration mistakes never retry; HTTP errors retry only for
// statuses outside [400, 500).
func isRetryable(err error) bool {
	switch {
	case IsKind(err, KindCancelled), IsKind(err, KindInvalidURL), IsKind(err, KindConfiguration):
		return false
	case IsKind(err, KindHTTP):
		status, _ := HTTPStatusFromError(err)
		return status < 400 || status >= 500
	default:
		return true
	}
}
