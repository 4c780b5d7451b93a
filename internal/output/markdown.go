package output

import (
	"io"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/rohmanhakim/justext/internal/paragraph"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

/*
Markdown output
- Only good paragraphs are kept, in document order
- Headings become level-two ATX headings, everything else a plain paragraph
- Inline markup is not reconstructed; the classified text is the content
*/

func writeMarkdown(w io.Writer, paragraphs []*paragraph.Paragraph) error {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	markdown, err := conv.ConvertNode(contentTree(paragraphs))
	if err != nil {
		return err
	}
	if len(markdown) == 0 {
		return nil
	}
	if _, err := w.Write(markdown); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// contentTree rebuilds a minimal body holding the good paragraphs.
func contentTree(paragraphs []*paragraph.Paragraph) *html.Node {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, p := range paragraphs {
		if p.ClassType != paragraph.ClassGood {
			continue
		}
		el := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
		if p.Heading {
			el = &html.Node{Type: html.ElementNode, Data: "h2", DataAtom: atom.H2}
		}
		el.AppendChild(&html.Node{Type: html.TextNode, Data: p.Text()})
		body.AppendChild(el)
	}
	return body
}
