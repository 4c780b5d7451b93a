package extractor

import (
	"strings"
	"time"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/internal/paragraph"
	"github.com/rohmanhakim/justext/pkg/failure"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse decoded HTML into a DOM tree
- Split the tree into paragraphs at block-level boundaries
- Track DOM and XPath locations, inline tag counts and link characters

Extraction Semantics
- Parsing is tolerant: malformed markup never fails
- Paragraphs without text are dropped
- Order of paragraphs equals document order
*/

type DomExtractor struct {
	metadataSink metadata.MetadataSink
}

func NewDomExtractor(metadataSink metadata.MetadataSink) DomExtractor {
	return DomExtractor{
		metadataSink: metadataSink,
	}
}

// Parse builds a DOM tree from decoded markup.
func (d *DomExtractor) Parse(source string, content string) (*html.Node, failure.ClassifiedError) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil || root == nil {
		extractionErr := &ExtractionError{
			Message:   "cannot parse document",
			Retryable: false,
			Cause:     ErrCauseNotHTML,
			Source:    source,
		}
		if err != nil {
			extractionErr.Message = err.Error()
		}
		d.metadataSink.RecordError(
			time.Now(),
			"extractor",
			"DomExtractor.Parse",
			mapExtractionErrorToMetadataCause(extractionErr),
			extractionErr.Message,
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, source),
			},
		)
		return nil, extractionErr
	}
	return root, nil
}

// Paragraphs is MakeParagraphs bound to the extractor.
func (d *DomExtractor) Paragraphs(root *html.Node) []*paragraph.Paragraph {
	return MakeParagraphs(root)
}
