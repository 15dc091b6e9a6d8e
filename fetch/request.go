package fetch

import (
	"encoding/json"
	"time"
)

const (
	// DefaultTimeout bounds requests that never configured one.
	DefaultTimeout = 30 * time.Second

	// DefaultRetryDelay is the base backoff unit when retries are enabled
	// without an explicit delay.
	DefaultRetryDelay = 1 * time.Second
)

// RequestConfig is the frozen description of one request. It is built
// incrementally through RequestBuilder and consumed exactly once by Send;
// nothing mutates it after the send loop starts.
type RequestConfig struct {
	Method  string
	URL     string
	Headers Headers
	Body    Body
	// Timeout bounds each transport call. Zero means no timeout.
	Timeout           time.Duration
	WithLoader        bool
	WithProgress      bool
	WithNotifications bool
	// CallName is an opaque correlation label echoed on responses and errors.
	CallName string
	// RetryCount is the number of additional attempts beyond the first.
	RetryCount int
	// RetryDelay is the base unit of the linear backoff schedule: attempt n
	// waits n times this value.
	RetryDelay time.Duration
}

func newRequestConfig(method, url string) RequestConfig {
	return RequestConfig{
		Method:     method,
		URL:        url,
		Headers:    NewHeaders(),
		Body:       NoBody,
		Timeout:    DefaultTimeout,
		RetryDelay: DefaultRetryDelay,
	}
}

// RequestBuilder configures one request through chained calls terminated by
// Send. Builders are cheap, single-use, and not safe for concurrent use.
type RequestBuilder struct {
	config RequestConfig
	client *Client
	sent   bool
}

// Header sets a request header. Later writes of the same name (in any case)
// overwrite earlier ones, including client defaults.
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	b.config.Headers.Set(name, value)
	return b
}

// Headers sets multiple request headers at once.
func (b *RequestBuilder) Headers(headers map[string]string) *RequestBuilder {
	b.config.Headers.Merge(headers)
	return b
}

// JSON serializes data as the request body and sets
// Content-Type: application/json. Serialization failures are returned
// immediately and leave both body and headers untouched, so callers must
// check the error before chaining further.
func (b *RequestBuilder) JSON(data any) (*RequestBuilder, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		serr := NewSerializationError("failed to serialize JSON body", err)
		stampCallName(serr, b.config.CallName)
		return b, serr
	}
	b.config.Headers.Set("Content-Type", "application/json")
	b.config.Body = jsonBody{data: encoded}
	return b, nil
}

// Text sets a plain text body, replacing any previous body.
func (b *RequestBuilder) Text(text string) *RequestBuilder {
	b.config.Body = textBody{text: text}
	return b
}

// Binary sets a raw binary body, replacing any previous body.
func (b *RequestBuilder) Binary(data []byte) *RequestBuilder {
	b.config.Body = binaryBody{data: data}
	return b
}

// Form sets a multipart form body, replacing any previous body. The form is
// encoded when the request is sent; malformed construction surfaces there as
// a configuration-kind error.
func (b *RequestBuilder) Form(form *Form) *RequestBuilder {
	b.config.Body = formBody{form: form}
	return b
}

// WithLoader toggles loader events on the notification sink for this request.
func (b *RequestBuilder) WithLoader(enabled bool) *RequestBuilder {
	b.config.WithLoader = enabled
	return b
}

// WithProgress toggles progress events on the notification sink.
func (b *RequestBuilder) WithProgress(enabled bool) *RequestBuilder {
	b.config.WithProgress = enabled
	return b
}

// WithNotifications toggles the user-facing outcome message.
func (b *RequestBuilder) WithNotifications(enabled bool) *RequestBuilder {
	b.config.WithNotifications = enabled
	return b
}

// CallName attaches a correlation label to the request. The label is opaque
// to the client and only echoed back for observability.
func (b *RequestBuilder) CallName(name string) *RequestBuilder {
	b.config.CallName = name
	return b
}

// Timeout bounds each transport call of this request.
func (b *RequestBuilder) Timeout(d time.Duration) *RequestBuilder {
	b.config.Timeout = d
	return b
}

// NoTimeout removes the transport call bound.
func (b *RequestBuilder) NoTimeout() *RequestBuilder {
	b.config.Timeout = 0
	return b
}

// Retry configures count additional attempts beyond the first, with a linear
// backoff of delay times the attempt number between attempts.
func (b *RequestBuilder) Retry(count int, delay time.Duration) *RequestBuilder {
	b.config.RetryCount = count
	b.config.RetryDelay = delay
	return b
}

// Config returns a copy of the accumulated configuration.
func (b *RequestBuilder) Config() RequestConfig {
	cfg := b.config
	cfg.Headers = b.config.Headers.Clone()
	return cfg
}
