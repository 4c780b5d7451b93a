package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/rohmanhakim/justext/internal/paragraph"
	"golang.org/x/net/html"
)

// BlockTags force a paragraph boundary when entered and when left.
var BlockTags = map[string]bool{
	"body": true, "blockquote": true, "caption": true, "center": true,
	"col": true, "colgroup": true, "dd": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "form": true, "legend": true,
	"optgroup": true, "option": true, "p": true, "pre": true,
	"table": true, "td": true, "textarea": true, "tfoot": true,
	"th": true, "thead": true, "tr": true, "ul": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

type eventKind int

const (
	eventEnter eventKind = iota
	eventText
	eventExit
)

type event struct {
	kind eventKind
	// tag for enter/exit, character data for text
	data string
}

// paragraphMaker turns a stream of traversal events into paragraphs.
type paragraphMaker struct {
	path       *pathInfo
	paragraphs []*paragraph.Paragraph
	current    *paragraph.Paragraph
	linkDepth  int
	br         bool
}

// MakeParagraphs splits the tree under root into paragraphs, in document
// order, leaving out paragraphs without text.
func MakeParagraphs(root *html.Node) []*paragraph.Paragraph {
	m := &paragraphMaker{path: newPathInfo()}
	m.current = paragraph.New(m.path.dom(), m.path.xpath())

	if root != nil {
		walk(root, m.handle)
	}
	m.startNewParagraph()

	return m.paragraphs
}

// walk visits n depth-first. Comments and doctypes produce no events.
func walk(n *html.Node, emit func(event)) {
	switch n.Type {
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		emit(event{kind: eventEnter, data: tag})
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, emit)
		}
		emit(event{kind: eventExit, data: tag})
	case html.TextNode:
		emit(event{kind: eventText, data: n.Data})
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, emit)
		}
	}
}

func (m *paragraphMaker) handle(ev event) {
	switch ev.kind {
	case eventEnter:
		m.enter(ev.data)
	case eventText:
		m.text(ev.data)
	case eventExit:
		m.exit(ev.data)
	}
}

func (m *paragraphMaker) enter(tag string) {
	m.path.push(tag)

	if BlockTags[tag] || (tag == "br" && m.br) {
		if tag == "br" {
			// <br><br> only separates; undo the count of the first <br>.
			if m.current.TagsCount > 0 {
				m.current.TagsCount--
			}
		}
		m.startNewParagraph()
		return
	}

	m.br = tag == "br"
	if m.br && m.current.ContainsText() {
		// keep the words on both sides of a line break apart
		m.current.AppendText(" ")
	}
	if tag == "a" {
		m.linkDepth++
	}
	m.current.TagsCount++
}

func (m *paragraphMaker) exit(tag string) {
	m.path.pop()

	if BlockTags[tag] {
		m.startNewParagraph()
	}
	if tag == "a" && m.linkDepth > 0 {
		m.linkDepth--
	}
}

func (m *paragraphMaker) text(data string) {
	if paragraph.IsBlank(data) {
		return
	}

	normalized := m.current.AppendText(data)
	if m.linkDepth > 0 {
		m.current.CharsCountInLinks += utf8.RuneCountInString(normalized)
	}
	m.br = false
}

func (m *paragraphMaker) startNewParagraph() {
	if m.current != nil && m.current.ContainsText() {
		m.paragraphs = append(m.paragraphs, m.current)
	}
	m.current = paragraph.New(m.path.dom(), m.path.xpath())
}
