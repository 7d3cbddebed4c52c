// Package htmlq holds the small HTML querying helpers shared by the
// fetcher and the headless document: a selector matcher covering the
// subset the engine needs ("#id", ".class", element names) and fragment
// rendering.
package htmlq

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Matcher reports whether an element node matches a selector.
type Matcher func(*html.Node) bool

// MatcherFor compiles a selector. Supported forms: "#id", ".class" and
// plain element names.
func MatcherFor(selector string) (Matcher, error) {
	sel := strings.TrimSpace(selector)
	switch {
	case sel == "":
		return nil, fmt.Errorf("empty selector")
	case strings.HasPrefix(sel, "#"):
		id := sel[1:]
		return func(n *html.Node) bool { return Attr(n, "id") == id }, nil
	case strings.HasPrefix(sel, "."):
		class := sel[1:]
		return func(n *html.Node) bool { return HasClass(n, class) }, nil
	default:
		return func(n *html.Node) bool { return strings.EqualFold(n.Data, sel) }, nil
	}
}

// FindFirst walks the tree depth-first and returns the first element node
// satisfying match, or nil.
func FindFirst(n *html.Node, match Matcher) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element node satisfying match, in document order.
func FindAll(n *html.Node, match Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Attr returns the value of an attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether the node's class attribute contains class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// InnerHTML renders the children of a node back to markup. A nil node
// renders to "".
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Render only fails on unrenderable node types, which cannot
		// appear under a parsed element.
		_ = html.Render(&sb, c)
	}
	return strings.TrimSpace(sb.String())
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
