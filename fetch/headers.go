package fetch

import "strings"

// Headers is a header map that preserves the case names were written with
// while reading case-insensitively. Writing a name that already exists under
// a different case replaces the previous entry.
type Headers map[string]string

// NewHeaders returns an empty header map.
func NewHeaders() Headers {
	return make(Headers)
}

// Set writes a header, replacing any existing entry whose name matches
// case-insensitively. The given case is preserved.
func (h Headers) Set(name, value string) {
	for k := range h {
		if strings.EqualFold(k, name) {
			delete(h, k)
		}
	}
	h[name] = value
}

// Get reads a header case-insensitively.
func (h Headers) Get(name string) (string, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Has reports whether a header is present, matching case-insensitively.
func (h Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Clone returns an independent copy of the headers.
func (h Headers) Clone() Headers {
	c := make(Headers, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}

// Merge writes every entry of other into h; entries from other win.
func (h Headers) Merge(other map[string]string) {
	for k, v := range other {
		h.Set(k, v)
	}
}
