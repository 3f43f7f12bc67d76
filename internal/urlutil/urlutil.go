// Package urlutil joins the verification target's base URL with application
// routes without producing doubled or missing slashes.
package urlutil

import "strings"

// BuildAbsolute builds an absolute URL from a base origin and a path. Paths
// that are already absolute URLs pass through unchanged.
func BuildAbsolute(base, path string) string {
	base = NormalizeBaseURL(base)
	if path == "" {
		return base
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}

// NormalizeBaseURL trims whitespace and trailing slashes from a base URL.
func NormalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/")
}
