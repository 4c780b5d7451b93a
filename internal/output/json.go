package output

import (
	"encoding/json"
	"io"

	"github.com/rohmanhakim/justext/internal/paragraph"
)

type paragraphRecord struct {
	Text              string  `json:"text"`
	Class             string  `json:"class"`
	CFClass           string  `json:"cf_class"`
	Heading           bool    `json:"heading"`
	Boilerplate       bool    `json:"boilerplate"`
	DOMPath           string  `json:"dom_path"`
	XPath             string  `json:"xpath"`
	WordsCount        int     `json:"words_count"`
	LinksDensity      float64 `json:"links_density"`
	CharsCountInLinks int     `json:"chars_count_in_links"`
	TagsCount         int     `json:"tags_count"`
}

func writeJSON(w io.Writer, paragraphs []*paragraph.Paragraph) error {
	records := make([]paragraphRecord, 0, len(paragraphs))
	for _, p := range paragraphs {
		records = append(records, paragraphRecord{
			Text:              p.Text(),
			Class:             p.ClassType.String(),
			CFClass:           p.CFClass.String(),
			Heading:           p.Heading,
			Boilerplate:       p.IsBoilerplate(),
			DOMPath:           p.DOMPath,
			XPath:             p.XPath,
			WordsCount:        p.WordsCount(),
			LinksDensity:      p.LinksDensity(),
			CharsCountInLinks: p.CharsCountInLinks,
			TagsCount:         p.TagsCount,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
