package decoder

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/pkg/failure"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

/*
Responsibilities
- Turn raw document bytes into text

Detection order
 1. Encoding given by the caller
 2. Byte order mark or Content-Type charset
 3. First <meta ... charset=...> declaration with a known label
 4. Valid UTF-8
 5. Default encoding

Under the strict policy undecodable bytes fail with a DecodeError; ignore
drops them and replace substitutes U+FFFD.
*/

var metaCharsetPattern = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?([^'"/>\s]+)`)

type Decoder struct {
	metadataSink metadata.MetadataSink
}

func NewDecoder(metadataSink metadata.MetadataSink) Decoder {
	return Decoder{
		metadataSink: metadataSink,
	}
}

func (d *Decoder) Decode(source string, raw []byte, param DecodeParam) (DecodeResult, failure.ClassifiedError) {
	result, err := Decode(raw, param)
	if err != nil {
		d.metadataSink.RecordError(
			time.Now(),
			"decoder",
			"Decoder.Decode",
			mapDecodeErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, source),
				metadata.NewAttr(metadata.AttrEncoding, err.Encoding),
			},
		)
		return DecodeResult{}, err
	}
	return result, nil
}

// Decode applies the detection order to raw.
func Decode(raw []byte, param DecodeParam) (DecodeResult, *DecodeError) {
	policy := param.Policy
	if policy == "" {
		policy = PolicyStrict
	}

	if param.Encoding != "" {
		enc, name, ok := LookupEncoding(param.Encoding)
		if !ok {
			return DecodeResult{}, &DecodeError{
				Message:   "encoding label is not recognized",
				Retryable: false,
				Cause:     ErrCauseUnknownEncoding,
				Encoding:  param.Encoding,
			}
		}
		return decodeWith(raw, enc, name, policy)
	}

	if enc, name, certain := charset.DetermineEncoding(raw, param.ContentType); certain && enc != nil {
		return decodeWith(stripBOM(raw, name), enc, name, policy)
	}

	if match := metaCharsetPattern.FindSubmatch(raw); match != nil {
		if enc, name, ok := LookupEncoding(string(match[1])); ok {
			return decodeWith(raw, enc, name, policy)
		}
	}

	if utf8.Valid(raw) {
		return DecodeResult{Text: string(raw), Encoding: DefaultEncoding}, nil
	}

	fallback := param.DefaultEncoding
	if fallback == "" {
		fallback = DefaultEncoding
	}
	enc, name, ok := LookupEncoding(fallback)
	if !ok {
		return DecodeResult{}, &DecodeError{
			Message:   "default encoding label is not recognized",
			Retryable: false,
			Cause:     ErrCauseUnknownEncoding,
			Encoding:  fallback,
		}
	}
	return decodeWith(raw, enc, name, policy)
}

// LookupEncoding resolves a WHATWG encoding label such as "latin1" or
// "Shift_JIS" to its canonical name.
func LookupEncoding(label string) (encoding.Encoding, string, bool) {
	enc, name := charset.Lookup(strings.TrimSpace(label))
	if enc == nil {
		return nil, "", false
	}
	return enc, name, true
}

func decodeWith(raw []byte, enc encoding.Encoding, name string, policy ErrorPolicy) (DecodeResult, *DecodeError) {
	if name == DefaultEncoding {
		return decodeUTF8(raw, policy)
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	text := strings.TrimPrefix(string(decoded), "\ufeff")
	invalid := err != nil || strings.ContainsRune(text, utf8.RuneError)

	if invalid && policy == PolicyStrict {
		message := "input contains bytes that are not valid " + name
		if err != nil {
			message = err.Error()
		}
		return DecodeResult{}, &DecodeError{
			Message:   message,
			Retryable: false,
			Cause:     ErrCauseUndecodable,
			Encoding:  name,
		}
	}
	if invalid && policy == PolicyIgnore {
		text = strings.ReplaceAll(text, string(utf8.RuneError), "")
	}
	return DecodeResult{Text: text, Encoding: name}, nil
}

func decodeUTF8(raw []byte, policy ErrorPolicy) (DecodeResult, *DecodeError) {
	raw = stripBOM(raw, DefaultEncoding)
	if utf8.Valid(raw) {
		return DecodeResult{Text: string(raw), Encoding: DefaultEncoding}, nil
	}

	switch policy {
	case PolicyIgnore:
		return DecodeResult{Text: strings.ToValidUTF8(string(raw), ""), Encoding: DefaultEncoding}, nil
	case PolicyReplace:
		return DecodeResult{Text: strings.ToValidUTF8(string(raw), string(utf8.RuneError)), Encoding: DefaultEncoding}, nil
	default:
		return DecodeResult{}, &DecodeError{
			Message:   "input is not valid utf-8",
			Retryable: false,
			Cause:     ErrCauseUndecodable,
			Encoding:  DefaultEncoding,
		}
	}
}

func stripBOM(raw []byte, name string) []byte {
	if name == DefaultEncoding {
		return []byte(strings.TrimPrefix(string(raw), "\xef\xbb\xbf"))
	}
	return raw
}
