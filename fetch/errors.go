package fetch

import (
	"errors"
	"fmt"
	"time"
)

// ClientError is the error contract for everything the client returns.
// The set of kinds is closed; callers branch on Kind for programmatic
// handling while Error() stays human-readable.
type ClientError interface {
	error
	Kind() ErrorKind
	// CallName returns the correlation label of the request that produced
	// the error, or "" when none was set.
	CallName() string
}

// ErrorKind categorizes client errors.
type ErrorKind string

const (
	KindNetwork         ErrorKind = "network"
	KindTimeout         ErrorKind = "timeout"
	KindInvalidURL      ErrorKind = "invalid_url"
	KindSerialization   ErrorKind = "serialization"
	KindHTTP            ErrorKind = "http"
	KindCancelled       ErrorKind = "cancelled"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindConfiguration   ErrorKind = "configuration"
)

// callNamed lets the send loop stamp the request's correlation label onto
// errors produced deeper in the pipeline.
type callNamed interface {
	setCallName(name string)
}

type baseError struct {
	callName string
}

func (e *baseError) CallName() string     { return e.callName }
func (e *baseError) setCallName(n string) { e.callName = n }

// networkError represents transport-level failures.
type networkError struct {
	baseError
	message string
	wrapped error
}

func (e *networkError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("network error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("network error: %s", e.message)
}

func (e *networkError) Kind() ErrorKind { return KindNetwork }
func (e *networkError) Unwrap() error   { return e.wrapped }

// timeoutError represents request timeouts.
type timeoutError struct {
	baseError
	message string
	timeout time.Duration
}

func (e *timeoutError) Error() string {
	if e.timeout > 0 {
		return fmt.Sprintf("timeout error: %s (timeout: %v)", e.message, e.timeout)
	}
	return fmt.Sprintf("timeout error: %s", e.message)
}

func (e *timeoutError) Kind() ErrorKind { return KindTimeout }

// invalidURLError represents an empty or unparseable request URL.
type invalidURLError struct {
	baseError
	url string
}

func (e *invalidURLError) Error() string {
	if e.url == "" {
		return "invalid URL: empty"
	}
	return fmt.Sprintf("invalid URL: %s", e.url)
}

func (e *invalidURLError) Kind() ErrorKind { return KindInvalidURL }

// serializationError represents body encoding or response decoding failures.
type serializationError struct {
	baseError
	message string
	wrapped error
}

func (e *serializationError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("serialization error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("serialization error: %s", e.message)
}

func (e *serializationError) Kind() ErrorKind { return KindSerialization }
func (e *serializationError) Unwrap() error   { return e.wrapped }

// httpError represents a completed request whose status was outside 2xx.
type httpError struct {
	baseError
	message string
	status  int
	body    string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP error: %s (status: %d)", e.message, e.status)
}

func (e *httpError) Kind() ErrorKind { return KindHTTP }

// StatusCode returns the HTTP status that produced the error.
func (e *httpError) StatusCode() int { return e.status }

// Body returns the raw response body captured with the error.
func (e *httpError) Body() string { return e.body }

// cancelledError represents caller-driven cancellation.
type cancelledError struct {
	baseError
	wrapped error
}

func (e *cancelledError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("request cancelled: %v", e.wrapped)
	}
	return "request cancelled"
}

func (e *cancelledError) Kind() ErrorKind { return KindCancelled }
func (e *cancelledError) Unwrap() error   { return e.wrapped }

// invalidResponseError represents a transport result the client cannot represent.
type invalidResponseError struct {
	baseError
	message string
}

func (e *invalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: %s", e.message)
}

func (e *invalidResponseError) Kind() ErrorKind { return KindInvalidResponse }

// configurationError represents builder or client misuse.
type configurationError struct {
	baseError
	message string
	wrapped error
}

func (e *configurationError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("configuration error: %s", e.message)
}

func (e *configurationError) Kind() ErrorKind { return KindConfiguration }
func (e *configurationError) Unwrap() error   { return e.wrapped }

// NewNetworkError creates a transport-failure error.
func NewNetworkError(message string, wrapped error) ClientError {
	return &networkError{message: message, wrapped: wrapped}
}

// NewTimeoutError creates a timeout error. A zero timeout is omitted from the message.
func NewTimeoutError(message string, timeout time.Duration) ClientError {
	return &timeoutError{message: message, timeout: timeout}
}

// NewInvalidURLError creates an error for an empty or unparseable URL.
func NewInvalidURLError(url string) ClientError {
	return &invalidURLError{url: url}
}

// NewSerializationError creates a body encoding/decoding error.
func NewSerializationError(message string, wrapped error) ClientError {
	return &serializationError{message: message, wrapped: wrapped}
}

// NewHTTPError creates an error for a non-2xx response, keeping the raw body.
func NewHTTPError(message string, status int, body string) ClientError {
	return &httpError{message: message, status: status, body: body}
}

// NewCancelledError creates a cancellation error wrapping the context cause.
func NewCancelledError(wrapped error) ClientError {
	return &cancelledError{wrapped: wrapped}
}

// NewInvalidResponseError creates an error for an unrepresentable transport result.
func NewInvalidResponseError(message string) ClientError {
	return &invalidResponseError{message: message}
}

// NewConfigurationError creates a builder/client misuse error.
func NewConfigurationError(message string, wrapped error) ClientError {
	return &configurationError{message: message, wrapped: wrapped}
}

// IsKind checks whether err is a ClientError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind() == kind
	}
	return false
}

// IsHTTPStatusError checks whether err is an HTTP-kind error with the given status.
func IsHTTPStatusError(err error, status int) bool {
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode() == status
	}
	return false
}

// HTTPStatusFromError returns the status carried by an HTTP-kind error.
func HTTPStatusFromError(err error) (int, bool) {
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode(), true
	}
	return 0, false
}

// HTTPBodyFromError returns the body snapshot carried by an HTTP-kind error.
func HTTPBodyFromError(err error) (string, bool) {
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		return httpErr.Body(), true
	}
	return "", false
}

// CallNameFromError returns the correlation label attached to err, if any.
func CallNameFromError(err error) string {
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.CallName()
	}
	return ""
}

func stampCallName(err error, name string) {
	if name == "" {
		return
	}
	var named callNamed
	if errors.As(err, &named) {
		named.setCallName(name)
	}
}

// IsSuccessStatus checks whether a status code represents success (2xx).
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
