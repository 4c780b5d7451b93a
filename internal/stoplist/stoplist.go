package stoplist

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/rohmanhakim/justext/pkg/failure"
)

// NoneSelector selects language-independent mode: no stop-words at all.
const NoneSelector = "None"

//go:embed data/*.txt
var bundled embed.FS

// Set is an immutable-by-convention set of lowercase stop-words.
type Set map[string]struct{}

func (s Set) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Available lists the bundled languages in alphabetical order,
// capitalized as they are accepted on the command line.
func Available() []string {
	entries, err := bundled.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".txt")
		names = append(names, strings.ToUpper(name[:1])+name[1:])
	}
	sort.Strings(names)
	return names
}

// Load returns the bundled stop-words of language. The lookup ignores case.
func Load(language string) (Set, failure.ClassifiedError) {
	name := strings.ToLower(strings.TrimSpace(language))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, unknownLanguage(language)
	}
	f, err := bundled.Open(path.Join("data", name+".txt"))
	if err != nil {
		return nil, unknownLanguage(language)
	}
	defer f.Close()
	return parse(f)
}

// LoadFile reads a stoplist with one word per line. Blank lines and lines
// starting with '#' are skipped.
func LoadFile(filePath string) (Set, failure.ClassifiedError) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, &StoplistError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
		}
	}
	defer f.Close()
	return parse(f)
}

// IsFileSelector reports whether selector names a file rather than a
// bundled language.
func IsFileSelector(selector string) bool {
	return strings.ContainsAny(selector, `/\`) || strings.HasSuffix(strings.ToLower(selector), ".txt")
}

// IsNone reports whether selector asks for language-independent mode.
func IsNone(selector string) bool {
	return strings.EqualFold(strings.TrimSpace(selector), NoneSelector)
}

// Resolve turns a command-line selector into a stop-word set. "None" gives
// an empty set, a path-like selector is read from disk and anything else is
// a bundled language.
func Resolve(selector string) (Set, failure.ClassifiedError) {
	switch {
	case IsNone(selector):
		return Set{}, nil
	case IsFileSelector(selector):
		return LoadFile(selector)
	default:
		return Load(selector)
	}
}

func parse(r io.Reader) (Set, failure.ClassifiedError) {
	set := Set{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[strings.ToLower(word)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, &StoplistError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
		}
	}
	return set, nil
}

func unknownLanguage(language string) *StoplistError {
	return &StoplistError{
		Message:   fmt.Sprintf("no bundled stoplist for %q (available: %s)", language, strings.Join(Available(), ", ")),
		Retryable: false,
		Cause:     ErrCauseUnknownLanguage,
	}
}
