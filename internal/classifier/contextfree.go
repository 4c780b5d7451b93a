package classifier

import (
	"regexp"
	"strings"

	"github.com/rohmanhakim/justext/internal/paragraph"
)

/*
Responsibilities
- Label every paragraph from its own features only
- Mark headings unless headings are disabled

The rules are evaluated in a fixed order; the first one that applies wins.
*/

var selectPathPattern = regexp.MustCompile(`^select|\.select`)

// ClassifyParagraphs sets CFClass and Heading on every paragraph.
// Stop-words are matched case-insensitively.
func ClassifyParagraphs(paragraphs []*paragraph.Paragraph, stopwords map[string]struct{}, params Params) {
	lowered := lowerStopwords(stopwords)
	for _, p := range paragraphs {
		p.Heading = !params.NoHeadings && p.IsHeading()
		p.CFClass = classifyParagraph(p, lowered, params)
	}
}

func classifyParagraph(p *paragraph.Paragraph, stopwords map[string]struct{}, params Params) paragraph.Class {
	stats := p.Stats(stopwords)
	length := stats.Length
	text := stats.Text

	switch {
	case stats.LinksDensity > params.MaxLinkDensity:
		return paragraph.ClassBad
	case strings.Contains(text, "©") || strings.Contains(text, "&copy"):
		return paragraph.ClassBad
	case selectPathPattern.MatchString(p.DOMPath):
		return paragraph.ClassBad
	case length < params.LengthLow:
		if p.CharsCountInLinks > 0 {
			return paragraph.ClassBad
		}
		return paragraph.ClassShort
	}

	density := stats.StopwordsDensity
	switch {
	case density >= params.StopwordsHigh:
		if length > params.LengthHigh {
			return paragraph.ClassGood
		}
		return paragraph.ClassNearGood
	case density >= params.StopwordsLow:
		return paragraph.ClassNearGood
	default:
		return paragraph.ClassBad
	}
}

func lowerStopwords(stopwords map[string]struct{}) map[string]struct{} {
	lowered := make(map[string]struct{}, len(stopwords))
	for word := range stopwords {
		lowered[strings.ToLower(word)] = struct{}{}
	}
	return lowered
}
