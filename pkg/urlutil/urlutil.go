package urlutil

import (
	"net/url"
	"strings"
)

// ParseHTTPURL parses raw as an absolute http or https URL.
// Anything else, including local file paths, reports false.
func ParseHTTPURL(raw string) (url.URL, bool) {
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return url.URL{}, false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return url.URL{}, false
	}
	return *parsed, true
}

// Canonicalize applies a deterministic normalization to a URL, producing a canonical form.
// It maps equivalent URL spellings to a single canonical representation.
//
// The normalization follows these rules:
//   - Scheme and host are lowercased
//   - Path is cleaned (trailing slashes removed, except for root "/")
//   - Fragments are removed
//   - Query parameters are kept, sorted by key
//   - Default ports are omitted (e.g., :80 for http, :443 for https)
//
// Batch output filenames are derived from the canonical form, so two spellings
// of one page land in the same file.
func Canonicalize(sourceUrl url.URL) url.URL {
	// Create a copy to avoid mutating the original
	canonical := sourceUrl

	// Lowercase scheme and host
	canonical.Scheme = lowerASCII(canonical.Scheme)
	canonical.Host = lowerASCII(canonical.Host)

	// Remove default port if present
	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	// Clean the path: remove trailing slashes (except root)
	if len(canonical.Path) > 1 {
		canonical.Path = stripTrailingSlash(canonical.Path)
	}

	// Remove fragment (anchor)
	canonical.Fragment = ""
	canonical.RawFragment = ""

	// Sort query parameters; an unparsable query is kept verbatim
	if canonical.RawQuery != "" {
		if values, err := url.ParseQuery(canonical.RawQuery); err == nil {
			canonical.RawQuery = values.Encode()
		}
	}
	canonical.ForceQuery = false

	return canonical
}

// lowerASCII lowercases ASCII letters and leaves other bytes untouched.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// stripTrailingSlash removes trailing slashes from a path.
func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
