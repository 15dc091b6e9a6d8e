package fetch

import (
	nethttp "net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/gaborage/go-fetch/logger"
)

const defaultMaxPayloadLogBytes = 2048

// Client holds shared defaults (base URL, default headers, default timeout,
// retry policy, notification sink) and manufactures pre-configured request
// builders. A Client is immutable after construction and safe for
// concurrent use; concurrent Send calls share only the transport and the
// notifier, both of which must tolerate interleaving.
type Client struct {
	baseURL            string
	defaultHeaders     Headers
	defaultTimeout     time.Duration
	retryCount         int
	retryDelay         time.Duration
	transport          Transport
	notifier           Notifier
	log                logger.Logger
	sleep              SleepFunc
	logPayloads        bool
	maxPayloadLogBytes int
}

// NewClient creates a client with default configuration: no base URL, the
// default timeout, no retries, a net/http transport, and a discarding
// notification sink.
func NewClient(log logger.Logger) *Client {
	return NewBuilder(log).Build()
}

// ClientBuilder assembles a Client through chained configuration calls.
type ClientBuilder struct {
	baseURL            string
	defaultHeaders     Headers
	defaultTimeout     time.Duration
	retryCount         int
	retryDelay         time.Duration
	transport          Transport
	notifier           Notifier
	log                logger.Logger
	sleep              SleepFunc
	logPayloads        bool
	maxPayloadLogBytes int
	limiter            *rate.Limiter
	breaker            *BreakerSettings
}

// NewBuilder creates a client builder with default configuration.
func NewBuilder(log logger.Logger) *ClientBuilder {
	return &ClientBuilder{
		defaultHeaders:     NewHeaders(),
		defaultTimeout:     DefaultTimeout,
		retryDelay:         DefaultRetryDelay,
		maxPayloadLogBytes: defaultMaxPayloadLogBytes,
		log:                log,
	}
}

// WithBaseURL sets the base URL relative request paths are resolved against.
func (b *ClientBuilder) WithBaseURL(baseURL string) *ClientBuilder {
	b.baseURL = baseURL
	return b
}

// WithDefaultHeader adds a header sent with every request. Request-level
// writes of the same name override it.
func (b *ClientBuilder) WithDefaultHeader(name, value string) *ClientBuilder {
	b.defaultHeaders.Set(name, value)
	return b
}

// WithDefaultTimeout sets the per-request timeout applied to every builder.
// Zero disables the timeout.
func (b *ClientBuilder) WithDefaultTimeout(d time.Duration) *ClientBuilder {
	b.defaultTimeout = d
	return b
}

// WithRetry sets the retry policy applied to every builder: count extra
// attempts with a linear backoff based on delay. Individual requests can
// override it.
func (b *ClientBuilder) WithRetry(count int, delay time.Duration) *ClientBuilder {
	b.retryCount = count
	b.retryDelay = delay
	return b
}

// WithTransport replaces the transport. The default is a net/http transport.
func (b *ClientBuilder) WithTransport(t Transport) *ClientBuilder {
	b.transport = t
	return b
}

// WithHTTPClient uses the given net/http client for the default transport.
func (b *ClientBuilder) WithHTTPClient(client *nethttp.Client) *ClientBuilder {
	b.transport = NewHTTPTransportWithClient(client)
	return b
}

// WithNotifier sets the notification sink receiving lifecycle events.
func (b *ClientBuilder) WithNotifier(n Notifier) *ClientBuilder {
	b.notifier = n
	return b
}

// WithSleep replaces the inter-attempt sleep function.
func (b *ClientBuilder) WithSleep(sleep SleepFunc) *ClientBuilder {
	b.sleep = sleep
	return b
}

// WithPayloadLogging enables debug logging of request/response headers and
// bodies, capped at maxBytes per body (<= 0 keeps the default cap).
func (b *ClientBuilder) WithPayloadLogging(maxBytes int) *ClientBuilder {
	b.logPayloads = true
	if maxBytes > 0 {
		b.maxPayloadLogBytes = maxBytes
	}
	return b
}

// WithRateLimit caps outgoing attempts at rps requests per second with the
// given burst, waiting (context-aware) before each transport call.
func (b *ClientBuilder) WithRateLimit(rps float64, burst int) *ClientBuilder {
	b.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return b
}

// WithBreaker wraps the transport in per-resource circuit breakers.
func (b *ClientBuilder) WithBreaker(settings BreakerSettings) *ClientBuilder {
	s := settings
	b.breaker = &s
	return b
}

// Build assembles the client. Transport decorators are layered so the rate
// limiter gates every attempt before the circuit breaker sees it.
func (b *ClientBuilder) Build() *Client {
	transport := b.transport
	if transport == nil {
		transport = NewHTTPTransport()
	}
	if b.breaker != nil {
		transport = NewBreakerTransport(transport, *b.breaker)
	}
	if b.limiter != nil {
		transport = NewRateLimitTransport(transport, b.limiter)
	}

	notifier := b.notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	log := b.log
	if log == nil {
		log = logger.New("info", false)
	}
	sleep := b.sleep
	if sleep == nil {
		sleep = defaultSleep
	}

	return &Client{
		baseURL:            b.baseURL,
		defaultHeaders:     b.defaultHeaders.Clone(),
		defaultTimeout:     b.defaultTimeout,
		retryCount:         b.retryCount,
		retryDelay:         b.retryDelay,
		transport:          transport,
		notifier:           notifier,
		log:                log,
		sleep:              sleep,
		logPayloads:        b.logPayloads,
		maxPayloadLogBytes: b.maxPayloadLogBytes,
	}
}

// Get creates a GET request builder.
func (c *Client) Get(path string) *RequestBuilder {
	return c.newRequest(nethttp.MethodGet, path)
}

// Post creates a POST request builder.
func (c *Client) Post(path string) *RequestBuilder {
	return c.newRequest(nethttp.MethodPost, path)
}

// Put creates a PUT request builder.
func (c *Client) Put(path string) *RequestBuilder {
	return c.newRequest(nethttp.MethodPut, path)
}

// Delete creates a DELETE request builder.
func (c *Client) Delete(path string) *RequestBuilder {
	return c.newRequest(nethttp.MethodDelete, path)
}

// Patch creates a PATCH request builder.
func (c *Client) Patch(path string) *RequestBuilder {
	return c.newRequest(nethttp.MethodPatch, path)
}

// Head creates a HEAD request builder.
func (c *Client) Head(path string) *RequestBuilder {
	return c.newRequest(nethttp.MethodHead, path)
}

// Options creates an OPTIONS request builder.
func (c *Client) Options(path string) *RequestBuilder {
	return c.newRequest(nethttp.MethodOptions, path)
}

// newRequest resolves the path against the base URL and seeds the builder
// with the client defaults.
func (c *Client) newRequest(method, path string) *RequestBuilder {
	cfg := newRequestConfig(method, JoinURL(c.baseURL, path))
	cfg.Headers.Merge(c.defaultHeaders)
	cfg.Timeout = c.defaultTimeout
	cfg.RetryCount = c.retryCount
	if c.retryDelay > 0 {
		cfg.RetryDelay = c.retryDelay
	}
	return &RequestBuilder{config: cfg, client: c}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BuildURL resolves path the same way request builders do.
func (c *Client) BuildURL(path string) string {
	return JoinURL(c.baseURL, path)
}
