// Package dom provides small read helpers over golang.org/x/net/html nodes.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// TagName returns the lower-case tag name of an element node, or "" for any
// other node.
func TagName(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	if n.DataAtom != 0 {
		return n.DataAtom.String()
	}
	return strings.ToLower(n.Data)
}

// ParentElement returns the nearest element at or above n, or nil.
func ParentElement(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// ParentRuby returns the enclosing ruby container when n sits inside a ruby
// annotation: its nearest element is an rt node whose parent is a ruby
// element. Returns nil otherwise.
func ParentRuby(n *html.Node) *html.Node {
	el := ParentElement(n)
	if el == nil || el.DataAtom != atom.Rt {
		return nil
	}
	p := el.Parent
	if p != nil && p.Type == html.ElementNode && p.DataAtom == atom.Ruby {
		return p
	}
	return nil
}

// Attr returns the value of the named attribute on an element, or "".
func Attr(n *html.Node, name string) string {
	if !IsElement(n) {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

// ParseString parses a complete HTML document from a string.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// Body returns the body element of a parsed document, or nil.
func Body(doc *html.Node) *html.Node {
	return findElement(doc, atom.Body)
}

func findElement(root *html.Node, a atom.Atom) *html.Node {
	for n := range descendants(root) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			return n
		}
	}
	return nil
}

// FirstText returns the first text node under root containing a
// non-whitespace character, or nil.
func FirstText(root *html.Node) *html.Node {
	for n := range descendants(root) {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			return n
		}
	}
	return nil
}

// FindText returns the first text node under root whose data contains sub,
// or nil.
func FindText(root *html.Node, sub string) *html.Node {
	for n := range descendants(root) {
		if n.Type == html.TextNode && strings.Contains(n.Data, sub) {
			return n
		}
	}
	return nil
}

// descendants iterates root and all nodes below it in document order using
// an explicit stack.
func descendants(root *html.Node) func(yield func(*html.Node) bool) {
	return func(yield func(*html.Node) bool) {
		if root == nil {
			return
		}
		stack := []*html.Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			for c := n.LastChild; c != nil; c = c.PrevSibling {
				stack = append(stack, c)
			}
		}
	}
}
