package urlutil_test

import (
	"net/url"
	"testing"

	"github.com/rohmanhakim/justext/pkg/urlutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase scheme and host", input: "HTTPS://Example.COM/Docs", expected: "https://example.com/Docs"},
		{name: "strip default https port", input: "https://example.com:443/a", expected: "https://example.com/a"},
		{name: "keep custom port", input: "http://example.com:8080/a", expected: "http://example.com:8080/a"},
		{name: "strip trailing slash", input: "https://example.com/a/b///", expected: "https://example.com/a/b"},
		{name: "keep root slash", input: "https://example.com/", expected: "https://example.com/"},
		{name: "drop fragment", input: "https://example.com/a#top", expected: "https://example.com/a"},
		{name: "sort query", input: "https://example.com/a?y=2&x=1#top", expected: "https://example.com/a?x=1&y=2"},
		{name: "empty query marker", input: "https://example.com/a?", expected: "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := url.Parse(tt.input)
			require.NoError(t, err)
			canonical := urlutil.Canonicalize(*parsed)
			assert.Equal(t, tt.expected, canonical.String())
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	parsed, err := url.Parse("HTTP://Example.com:80/news/?page=2#c")
	require.NoError(t, err)

	once := urlutil.Canonicalize(*parsed)
	twice := urlutil.Canonicalize(once)
	assert.Equal(t, once.String(), twice.String())
}

func TestParseHTTPURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "https url", input: "https://example.com/article", ok: true},
		{name: "uppercase scheme", input: "HTTP://example.com", ok: true},
		{name: "relative file path", input: "pages/index.html", ok: false},
		{name: "absolute file path", input: "/tmp/index.html", ok: false},
		{name: "stdin marker", input: "-", ok: false},
		{name: "missing host", input: "https://", ok: false},
		{name: "other scheme", input: "ftp://example.com/file", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := urlutil.ParseHTTPURL(tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
