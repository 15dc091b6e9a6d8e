package logger

import "strings"

// RedactedValue replaces sensitive header values in log output.
const RedactedValue = "[REDACTED]"

// defaultSensitiveHeaders are always masked. Matching is case-insensitive.
var defaultSensitiveHeaders = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
	"x-auth-token",
}

// HeaderMask redacts sensitive header values before they reach log output.
type HeaderMask struct {
	sensitive map[string]struct{}
}

// NewHeaderMask builds a mask covering the default sensitive headers plus
// any extra names the caller supplies.
func NewHeaderMask(extra []string) *HeaderMask {
	m := &HeaderMask{sensitive: make(map[string]struct{}, len(defaultSensitiveHeaders)+len(extra))}
	for _, name := range defaultSensitiveHeaders {
		m.sensitive[name] = struct{}{}
	}
	for _, name := range extra {
		m.sensitive[strings.ToLower(name)] = struct{}{}
	}
	return m
}

// IsSensitive reports whether the header name is masked.
func (m *HeaderMask) IsSensitive(name string) bool {
	_, ok := m.sensitive[strings.ToLower(name)]
	return ok
}

// Apply returns a copy of headers with sensitive values redacted.
// The input map is never modified.
func (m *HeaderMask) Apply(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return headers
	}
	masked := make(map[string]string, len(headers))
	for k, v := range headers {
		if m.IsSensitive(k) {
			masked[k] = RedactedValue
		} else {
			masked[k] = v
		}
	}
	return masked
}
