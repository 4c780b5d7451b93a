package output

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatDefault     Format = "default"
	FormatBoilerplate Format = "boilerplate"
	FormatDetailed    Format = "detailed"
	FormatKrdwrd      Format = "krdwrd"
	FormatMarkdown    Format = "markdown"
	FormatJSON        Format = "json"
)

var formats = []Format{
	FormatDefault,
	FormatBoilerplate,
	FormatDetailed,
	FormatKrdwrd,
	FormatMarkdown,
	FormatJSON,
}

func Formats() []Format {
	return append([]Format(nil), formats...)
}

func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range formats {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Extension is the file extension used when the format is written to disk.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}
