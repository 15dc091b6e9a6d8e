package fetch

import "strings"

// JoinURL resolves path against base. Absolute paths (recognized scheme
// prefix) pass through unchanged regardless of base; otherwise exactly one
// trailing slash is trimmed from base and one leading slash from path, and
// the two are joined with a single "/". With no base, path passes through.
func JoinURL(base, path string) string {
	if base == "" || IsAbsoluteURL(path) {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// IsAbsoluteURL reports whether s carries a recognized scheme prefix.
func IsAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
