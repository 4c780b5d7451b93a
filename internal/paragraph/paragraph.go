package paragraph

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	headingPathPattern = regexp.MustCompile(`(^|\.)h[1-6](\.|$)`)
	inlineTagPattern   = regexp.MustCompile(`<[^<>]*>`)
)

// Paragraph is one contiguous block of text taken from sibling block-level
// DOM nodes, together with the statistics the classifiers need.
type Paragraph struct {
	// DOMPath is the dotted tag path of the originating element, e.g. "html.body.div.p".
	DOMPath string
	// XPath is the 1-indexed path of the originating element, e.g. "/html[1]/body[1]/p[2]".
	XPath string
	// TextNodes holds the whitespace-normalized text fragments in document order.
	TextNodes []string
	// CharsCountInLinks counts characters of fragments found inside <a>.
	CharsCountInLinks int
	// TagsCount counts inline tags entered while the paragraph was open.
	TagsCount int

	// CFClass is the context-free class. It is not changed by revision.
	CFClass Class
	// ClassType is the final class after context-sensitive revision.
	ClassType Class
	// Heading is set by the context-free pass when headings are enabled.
	Heading bool
}

// New starts an empty paragraph located at the given paths.
func New(domPath, xpath string) *Paragraph {
	return &Paragraph{
		DOMPath: domPath,
		XPath:   xpath,
	}
}

// AppendText normalizes text and adds it as a new text node.
func (p *Paragraph) AppendText(text string) string {
	text = NormalizeWhitespace(text)
	p.TextNodes = append(p.TextNodes, text)
	return text
}

// ContainsText reports whether any text node was appended.
// A blank separator is only ever appended after real text, so this also
// means "non-blank".
func (p *Paragraph) ContainsText() bool {
	return len(p.TextNodes) > 0
}

// Text joins the text nodes and normalizes the result.
func (p *Paragraph) Text() string {
	return NormalizeWhitespace(strings.TrimSpace(strings.Join(p.TextNodes, "")))
}

// TextWithoutTags is Text with markup-like sequences removed.
func (p *Paragraph) TextWithoutTags() string {
	stripped := inlineTagPattern.ReplaceAllString(p.Text(), "")
	return NormalizeWhitespace(strings.TrimSpace(stripped))
}

// Len is the length of Text in characters.
func (p *Paragraph) Len() int {
	return utf8.RuneCountInString(p.Text())
}

func (p *Paragraph) WordsCount() int {
	return len(strings.Fields(p.Text()))
}

// StopwordsCount counts words of Text found, lowercased, in stopwords.
func (p *Paragraph) StopwordsCount(stopwords map[string]struct{}) int {
	return countStopwords(strings.Fields(p.Text()), stopwords)
}

// StopwordsDensity is the fraction of words that are stop-words, in [0, 1].
func (p *Paragraph) StopwordsDensity(stopwords map[string]struct{}) float64 {
	return p.Stats(stopwords).StopwordsDensity
}

// LinksDensity is the fraction of characters inside links, clamped to [0, 1].
func (p *Paragraph) LinksDensity() float64 {
	return linksDensity(p.CharsCountInLinks, p.Len())
}

// Stats holds the Text-derived features of a paragraph.
type Stats struct {
	Text             string
	Length           int
	WordsCount       int
	StopwordsCount   int
	StopwordsDensity float64
	LinksDensity     float64
}

// Stats builds Text once and derives every feature from it.
func (p *Paragraph) Stats(stopwords map[string]struct{}) Stats {
	text := p.Text()
	words := strings.Fields(text)
	s := Stats{
		Text:           text,
		Length:         utf8.RuneCountInString(text),
		WordsCount:     len(words),
		StopwordsCount: countStopwords(words, stopwords),
	}
	if s.WordsCount > 0 {
		s.StopwordsDensity = float64(s.StopwordsCount) / float64(s.WordsCount)
	}
	s.LinksDensity = linksDensity(p.CharsCountInLinks, s.Length)
	return s
}

func countStopwords(words []string, stopwords map[string]struct{}) int {
	count := 0
	for _, word := range words {
		if _, ok := stopwords[strings.ToLower(word)]; ok {
			count++
		}
	}
	return count
}

func linksDensity(charsInLinks, length int) float64 {
	if length == 0 {
		return 0
	}
	density := float64(charsInLinks) / float64(length)
	if density > 1 {
		return 1
	}
	if density < 0 {
		return 0
	}
	return density
}

// IsHeading reports whether an h1..h6 element is part of DOMPath.
func (p *Paragraph) IsHeading() bool {
	return headingPathPattern.MatchString(p.DOMPath)
}

func (p *Paragraph) IsBoilerplate() bool {
	return p.ClassType != ClassGood
}

// NormalizeWhitespace collapses every run of Unicode whitespace into one space.
func NormalizeWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		b.WriteRune(r)
		inSpace = false
	}
	return b.String()
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimFunc(text, unicode.IsSpace) == ""
}
