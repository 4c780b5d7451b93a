package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rohmanhakim/justext/internal/paragraph"
)

// escaper escapes text for the tagged line formats. Quotes are left alone.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// writeTagged prints "<h> text" or "<p> text" for good paragraphs and, when
// withBoilerplate is set, "<b> text" for the rest.
func writeTagged(w io.Writer, paragraphs []*paragraph.Paragraph, withBoilerplate bool) error {
	for _, p := range paragraphs {
		var tag string
		switch {
		case p.ClassType == paragraph.ClassGood && p.Heading:
			tag = "h"
		case p.ClassType == paragraph.ClassGood:
			tag = "p"
		case withBoilerplate:
			tag = "b"
		default:
			continue
		}
		if _, err := fmt.Fprintf(w, "<%s> %s\n", tag, escaper.Replace(p.Text())); err != nil {
			return err
		}
	}
	return nil
}

func writeDetailed(w io.Writer, paragraphs []*paragraph.Paragraph) error {
	for _, p := range paragraphs {
		heading := 0
		if p.Heading {
			heading = 1
		}
		_, err := fmt.Fprintf(w, "<p class=\"%s\" cfclass=\"%s\" heading=\"%d\" xpath=\"%s\"> %s\n",
			p.ClassType, p.CFClass, heading, p.XPath, escaper.Replace(p.Text()))
		if err != nil {
			return err
		}
	}
	return nil
}

// writeKrdwrd prints one line per text node labelled 1 for boilerplate,
// 2 for content headings and 3 for content text.
func writeKrdwrd(w io.Writer, paragraphs []*paragraph.Paragraph) error {
	for _, p := range paragraphs {
		label := 1
		if p.ClassType == paragraph.ClassGood || p.ClassType == paragraph.ClassNearGood {
			label = 3
			if p.Heading {
				label = 2
			}
		}
		for _, node := range p.TextNodes {
			if _, err := fmt.Fprintf(w, "%d\t%s\n", label, strings.TrimSpace(node)); err != nil {
				return err
			}
		}
	}
	return nil
}
