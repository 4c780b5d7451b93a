package pipeline

import (
	"net/url"
	"path/filepath"

	"github.com/rohmanhakim/justext/internal/paragraph"
	"github.com/rohmanhakim/justext/pkg/fileutil"
	"github.com/rohmanhakim/justext/pkg/urlutil"
)

type SourceKind int

const (
	SourceStdin SourceKind = iota
	SourceFile
	SourceURL
)

// Source is one document argument: "-", a file path or an http(s) URL.
type Source struct {
	raw  string
	kind SourceKind
	url  url.URL
}

func ParseSource(raw string) Source {
	if raw == "" || raw == fileutil.StdinPath {
		return Source{raw: fileutil.StdinPath, kind: SourceStdin}
	}
	if u, ok := urlutil.ParseHTTPURL(raw); ok {
		return Source{raw: raw, kind: SourceURL, url: u}
	}
	return Source{raw: raw, kind: SourceFile}
}

func (s Source) Name() string {
	return s.raw
}

func (s Source) Kind() SourceKind {
	return s.kind
}

func (s Source) URL() url.URL {
	return s.url
}

// Identity is the canonical spelling of the source: the canonical URL or
// the absolute file path. Equal identities mean the same document.
func (s Source) Identity() string {
	switch s.kind {
	case SourceURL:
		canonical := urlutil.Canonicalize(s.url)
		return canonical.String()
	case SourceFile:
		if abs, err := filepath.Abs(s.raw); err == nil {
			return abs
		}
		return s.raw
	default:
		return s.raw
	}
}

// Input is a loaded, still undecoded document.
type Input struct {
	Source      Source
	Raw         []byte
	ContentType string
}

// Result is the classified document.
type Result struct {
	Source     string
	Encoding   string
	Paragraphs []*paragraph.Paragraph
}

// Good returns the paragraphs that are not boilerplate.
func (r Result) Good() []*paragraph.Paragraph {
	var good []*paragraph.Paragraph
	for _, p := range r.Paragraphs {
		if !p.IsBoilerplate() {
			good = append(good, p)
		}
	}
	return good
}
