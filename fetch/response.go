package fetch

import (
	"encoding/json"
	"fmt"
)

// Response is the normalized result of a completed request. Callers only
// ever receive one for 2xx outcomes; any other status surfaces as an
// HTTP-kind error instead. A Response is not mutated after Send returns it.
type Response struct {
	// Status is the HTTP status code, always within 100-599.
	Status int
	// Headers holds the response headers, readable case-insensitively.
	Headers Headers
	// Body is the response body text.
	Body string
	// URL is the URL the request was sent to.
	URL string
	// CallName echoes the correlation label set on the request, if any.
	CallName string
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// IsClientError reports whether the status is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.Status >= 400 && r.Status < 500
}

// IsServerError reports whether the status is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.Status >= 500 && r.Status < 600
}

// Header reads a response header case-insensitively.
func (r *Response) Header(name string) (string, bool) {
	return r.Headers.Get(name)
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return r.Body
}

// Bytes returns the body as raw bytes.
func (r *Response) Bytes() []byte {
	return []byte(r.Body)
}

// JSON decodes the body into out, returning a serialization-kind error on failure.
func (r *Response) JSON(out any) error {
	if err := json.Unmarshal([]byte(r.Body), out); err != nil {
		serr := NewSerializationError(fmt.Sprintf("failed to decode JSON response from %s", r.URL), err)
		stampCallName(serr, r.CallName)
		return serr
	}
	return nil
}
