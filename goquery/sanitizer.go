// Package goquery implements HTML processing on top of goquery: the
// sanitizer that isolates a page's primary content, and the rules engine
// that extracts ranked products from it.
package goquery

import (
	"slices"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/listicle"
	"golang.org/x/net/html"
)

// Ensure Sanitizer implements listicle.Sanitizer at compile time.
var _ listicle.Sanitizer = (*Sanitizer)(nil)

// StrippedElements are removed together with their content. They are page
// chrome, never content.
var StrippedElements = []string{
	"script", "style", "noscript", "iframe", "svg",
	"nav", "footer", "header", "aside",
	"form", "input", "button", "select", "textarea",
}

// contentRoots are tried in order; the first match becomes the output root.
var contentRoots = []string{"main", "article", "body"}

// Sanitizer strips scripts, chrome, comments and hidden elements from a page
// and returns its primary content region.
//
// The source tree is never modified. The cleaned tree is a fresh copy that
// only contains the nodes that survived filtering, so concurrent calls share
// nothing.
type Sanitizer struct {
	stripped map[string]bool
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	s := &Sanitizer{stripped: make(map[string]bool, len(StrippedElements))}
	for _, name := range StrippedElements {
		s.stripped[name] = true
	}
	return s
}

// Sanitize parses raw HTML and returns the serialized content root and the
// trimmed document title.
func (s *Sanitizer) Sanitize(rawHTML string) (string, string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", "", listicle.Errorf(listicle.EINVALID, "empty HTML input")
	}

	src, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", "", listicle.Errorf(listicle.EINVALID, "failed to parse HTML: %v", err)
	}

	// Title is read from the source tree: <head> content may not survive.
	title := strings.TrimSpace(goquery.NewDocumentFromNode(src).Find("title").First().Text())

	doc := goquery.NewDocumentFromNode(s.filter(src))
	cleaned, err := goquery.OuterHtml(contentRoot(doc))
	if err != nil {
		return "", "", listicle.Errorf(listicle.EINTERNAL, "failed to render HTML: %v", err)
	}

	return cleaned, title, nil
}

// filter returns a deep copy of n without the nodes rejected by drop.
func (s *Sanitizer) filter(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if s.drop(child) {
			continue
		}
		c.AppendChild(s.filter(child))
	}
	return c
}

func (s *Sanitizer) drop(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode:
		return true
	case html.ElementNode:
		return s.stripped[n.Data] || isHidden(n)
	}
	return false
}

// isHidden reports whether an element carries the hidden attribute or an
// inline display:none style. Whitespace and case inside the style value are
// ignored.
func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			if strings.Contains(compact(a.Val), "display:none") {
				return true
			}
		}
	}
	return false
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// contentRoot returns the first main, article or body element, or the whole
// document when none exists.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentRoots {
		if root := doc.Find(sel).First(); root.Length() > 0 {
			return root
		}
	}
	return doc.Selection
}
