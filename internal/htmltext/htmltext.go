// Package htmltext extracts visible text from HTML note drops, so pasted or
// exported HTML charts can flow through the same pipeline as plain text.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// skipElements never contribute visible text.
var skipElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"head":   {},
}

// blockElements get a newline boundary so section lines survive extraction.
var blockElements = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "li": {}, "tr": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
}

// Extract returns the visible text of an HTML document. Unparseable input
// falls back to the raw string.
func Extract(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skipElements[n.Data]; skip {
				return
			}
			if _, block := blockElements[n.Data]; block {
				buf.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}

// Looks reports whether the input smells like an HTML document rather than a
// plain-text or markdown note.
func Looks(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
