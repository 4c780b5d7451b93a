/*
Responsibilities
- Drop non-content subtrees: scripts, styles, <head>, forms, embedded objects, frames
- <noscript> and <iframe> hold raw text after parsing, so they are dropped whole
- Drop comment nodes (processing instructions are parsed as comments)
- Leave every other element, attribute and text node untouched

Cleaning is idempotent: a cleaned tree passes through a second run unchanged.
*/
package sanitizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Preprocessor turns a parsed DOM into the tree the paragraph maker walks.
// Implementations may modify the tree in place and return its root.
type Preprocessor interface {
	Clean(root *html.Node) *html.Node
}

// Compile-time interface check
var _ Preprocessor = Cleaner{}

// DefaultKillTags are removed together with their whole subtree.
var DefaultKillTags = []string{
	"script",
	"style",
	"head",
	"link",
	"form",
	"object",
	"embed",
	"applet",
	"iframe",
	"noscript",
	"frame",
	"frameset",
}

type Cleaner struct {
	killTags []string
	selector string
}

// NewCleaner returns a cleaner removing DefaultKillTags plus extraTags.
// Tag names are matched case-insensitively; duplicates are ignored.
func NewCleaner(extraTags ...string) Cleaner {
	seen := make(map[string]bool)
	var tags []string
	for _, tag := range append(append([]string{}, DefaultKillTags...), extraTags...) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return Cleaner{
		killTags: tags,
		selector: strings.Join(tags, ", "),
	}
}

// KillTags returns the tag names this cleaner removes.
func (c Cleaner) KillTags() []string {
	tags := make([]string, len(c.killTags))
	copy(tags, c.killTags)
	return tags
}

// Clean removes comments and kill-tag subtrees from root in place.
// A nil root is returned as is.
func (c Cleaner) Clean(root *html.Node) *html.Node {
	if root == nil {
		return nil
	}

	removeComments(root)

	if c.selector == "" {
		return root
	}
	goquery.NewDocumentFromNode(root).Find(c.selector).Remove()

	return root
}

// Preprocess cleans root with the default cleaner.
func Preprocess(root *html.Node) *html.Node {
	return NewCleaner().Clean(root)
}

// removeComments performs a post-order traversal removing comment nodes.
// Children are snapshotted first because removal rewires the sibling list.
func removeComments(node *html.Node) {
	var children []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}

	for _, child := range children {
		if child.Type == html.CommentNode {
			node.RemoveChild(child)
			continue
		}
		removeComments(child)
	}
}
