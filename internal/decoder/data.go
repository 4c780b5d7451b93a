package decoder

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens to bytes the chosen encoding cannot decode.
type ErrorPolicy string

const (
	PolicyStrict  ErrorPolicy = "strict"
	PolicyIgnore  ErrorPolicy = "ignore"
	PolicyReplace ErrorPolicy = "replace"
)

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicyIgnore:
		return PolicyIgnore, nil
	case PolicyReplace:
		return PolicyReplace, nil
	default:
		return "", fmt.Errorf("unknown encoding error policy %q", s)
	}
}

const DefaultEncoding = "utf-8"

type DecodeParam struct {
	// Encoding forces a charset and skips detection.
	Encoding string
	// DefaultEncoding is the last resort when nothing else applies.
	DefaultEncoding string
	// ContentType is the HTTP Content-Type header, if the document was fetched.
	ContentType string
	Policy      ErrorPolicy
}

func NewDecodeParam(encoding, defaultEncoding, contentType string, policy ErrorPolicy) DecodeParam {
	return DecodeParam{
		Encoding:        encoding,
		DefaultEncoding: defaultEncoding,
		ContentType:     contentType,
		Policy:          policy,
	}
}

// DecodeResult is the decoded document with the canonical name of the
// encoding that produced it.
type DecodeResult struct {
	Text     string
	Encoding string
}
