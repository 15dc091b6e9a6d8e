package fetch

import "time"

// logRequest logs the outgoing request. Headers and body are only logged
// when payload logging is enabled; the logger masks sensitive headers.
func (c *Client) logRequest(cfg *RequestConfig, treq *TransportRequest) {
	ev := c.log.Info().
		Str("direction", "outbound").
		Str("method", treq.Method).
		Str("url", treq.URL)

	if cfg.CallName != "" {
		ev = ev.Str("call_name", cfg.CallName)
	}
	if c.logPayloads {
		if len(treq.Headers) > 0 {
			ev = ev.Interface("headers", map[string]string(treq.Headers))
		}
		if len(treq.Body) > 0 {
			ev = ev.Bytes("body", capPayload(treq.Body, c.maxPayloadLogBytes))
		}
	}

	ev.Msg("fetch client request")
}

// logResponse logs the completed transport call.
func (c *Client) logResponse(cfg *RequestConfig, resp *Response, elapsed time.Duration) {
	ev := c.log.Info().
		Str("direction", "inbound").
		Str("url", resp.URL).
		Int("status", resp.Status).
		Dur("elapsed", elapsed)

	if cfg.CallName != "" {
		ev = ev.Str("call_name", cfg.CallName)
	}
	if c.logPayloads && resp.Body != "" {
		ev = ev.Bytes("body", capPayload([]byte(resp.Body), c.maxPayloadLogBytes))
	}

	ev.Msg("fetch client response")
}

// logRetry logs a scheduled retry before the backoff sleep.
func (c *Client) logRetry(cfg *RequestConfig, attempt int, delay time.Duration, lastErr error) {
	ev := c.log.Warn().
		Str("method", cfg.Method).
		Str("url", cfg.URL).
		Int("attempt", attempt).
		Int("max_attempts", cfg.RetryCount+1).
		Dur("backoff", delay).
		Err(lastErr)

	if cfg.CallName != "" {
		ev = ev.Str("call_name", cfg.CallName)
	}

	ev.Msg("fetch client retrying request")
}

func capPayload(b []byte, maxLen int) []byte {
	if maxLen <= 0 || len(b) <= maxLen {
		return b
	}
	return b[:maxLen]
}
