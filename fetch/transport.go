package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"time"
)

// TransportRequest is the flattened form of a request handed to a Transport:
// one method, one URL, encoded headers and body, and an advisory timeout.
type TransportRequest struct {
	Method  string
	URL     string
	Headers Headers
	Body    []byte
	// Timeout bounds the whole transport call. Zero disables the bound.
	Timeout time.Duration
}

// TransportResponse is the raw outcome of a transport call before
// classification.
type TransportResponse struct {
	Status  int
	Headers Headers
	Body    string
}

// Transport sends one request and returns the raw status/headers/body or a
// classified error. Implementations must be safe for concurrent use; the
// send loop may call RoundTrip from independent attempt loops.
type Transport interface {
	RoundTrip(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}

// HTTPTransport is the default Transport, backed by net/http. The request
// timeout is applied per call through the context so concurrent requests
// with different timeouts can share one underlying client.
type HTTPTransport struct {
	client *nethttp.Client
}

// NewHTTPTransport creates a Transport over a default net/http client.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{client: &nethttp.Client{}}
}

// NewHTTPTransportWithClient creates a Transport over the given net/http
// client, for callers that need custom TLS, proxies, or connection pooling.
func NewHTTPTransportWithClient(client *nethttp.Client) *HTTPTransport {
	if client == nil {
		client = &nethttp.Client{}
	}
	return &HTTPTransport{client: client}
}

// RoundTrip performs the HTTP call and normalizes the outcome.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, NewInvalidURLError(req.URL)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, t.classify(req, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	headers := NewHeaders()
	for name := range httpResp.Header {
		headers.Set(name, httpResp.Header.Get(name))
	}

	return &TransportResponse{
		Status:  httpResp.StatusCode,
		Headers: headers,
		Body:    string(respBody),
	}, nil
}

// classify maps a net/http error onto the client error taxonomy. A deadline
// hit on the per-request context counts as a timeout even when the parent
// context is still live.
func (t *HTTPTransport) classify(req *TransportRequest, err error) error {
	if errors.Is(err, context.Canceled) {
		return NewCancelledError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("request timed out", req.Timeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError("request timed out", req.Timeout)
	}
	return NewNetworkError("request execution failed", err)
}
