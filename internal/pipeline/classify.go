package pipeline

import (
	"github.com/rohmanhakim/justext/internal/classifier"
	"github.com/rohmanhakim/justext/internal/extractor"
	"github.com/rohmanhakim/justext/internal/paragraph"
	"github.com/rohmanhakim/justext/internal/sanitizer"
	"golang.org/x/net/html"
)

// Classify runs preprocessing, paragraph extraction, context-free
// classification and revision on an already parsed tree. A nil
// preprocessor means the default cleaner. The tree is modified in place.
//
// Classify has no failure mode: every returned paragraph carries a final
// ClassType.
func Classify(
	root *html.Node,
	stopwords map[string]struct{},
	params classifier.Params,
	preprocessor sanitizer.Preprocessor,
) []*paragraph.Paragraph {
	if preprocessor == nil {
		preprocessor = sanitizer.NewCleaner()
	}

	root = preprocessor.Clean(root)
	paragraphs := extractor.MakeParagraphs(root)
	classifier.ClassifyParagraphs(paragraphs, stopwords, params)
	classifier.Revise(paragraphs, params.MaxHeadingDistance)

	return paragraphs
}
