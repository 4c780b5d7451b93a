package extractor

import (
	"fmt"
	"strings"
)

// pathInfo is the element stack of one traversal. Each entry remembers how
// many children of each tag name it has seen so far, which gives the
// 1-based sibling index used in XPath segments.
type pathInfo struct {
	elements     []pathElement
	rootChildren map[string]int
}

type pathElement struct {
	tag      string
	order    int
	children map[string]int
}

func newPathInfo() *pathInfo {
	return &pathInfo{
		rootChildren: make(map[string]int),
	}
}

func (p *pathInfo) push(tag string) {
	siblings := p.rootChildren
	if len(p.elements) > 0 {
		siblings = p.elements[len(p.elements)-1].children
	}
	siblings[tag]++
	p.elements = append(p.elements, pathElement{
		tag:      tag,
		order:    siblings[tag],
		children: make(map[string]int),
	})
}

func (p *pathInfo) pop() {
	if len(p.elements) == 0 {
		return
	}
	p.elements = p.elements[:len(p.elements)-1]
}

// dom returns the dotted tag path, e.g. "html.body.div.p".
func (p *pathInfo) dom() string {
	tags := make([]string, len(p.elements))
	for i, e := range p.elements {
		tags[i] = e.tag
	}
	return strings.Join(tags, ".")
}

// xpath returns the indexed path, e.g. "/html[1]/body[1]/div[2]/p[1]".
func (p *pathInfo) xpath() string {
	parts := make([]string, len(p.elements))
	for i, e := range p.elements {
		parts[i] = fmt.Sprintf("%s[%d]", e.tag, e.order)
	}
	return "/" + strings.Join(parts, "/")
}
