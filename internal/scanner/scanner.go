package scanner

import (
	"golang.org/x/net/html"

	"github.com/jbukl/yomitan/internal/dom"
	"github.com/jbukl/yomitan/internal/style"
)

// Styler computes the effective style of an element. It stands in for the
// host environment's style engine. Returning nil for an element means "no
// style information"; the scanner then fails open and treats the element as
// visible inline content.
type Styler interface {
	Computed(el *html.Node) *style.Computed
}

// Scanner is a seekable cursor over a document tree. Create one with New,
// call Seek one or more times with a consistent direction, then read the
// results with Content, Node, Offset and Remainder.
type Scanner struct {
	styler Styler

	node    *html.Node
	offset  int
	content string

	remainder int
	newlines  int

	lineHasWhitespace bool
	lineHasContent    bool
	resetOffset       bool

	forcePreserveWhitespace bool
	generateLayoutContent   bool
}

// Option configures a Scanner during creation.
type Option func(*Scanner)

// WithStyler sets the style engine consulted for visibility, whitespace
// handling and layout breaks. The default is a fresh style.Resolver over
// the node's document.
func WithStyler(st Styler) Option {
	return func(s *Scanner) {
		s.styler = st
	}
}

// WithForcePreserveWhitespace makes the scanner keep all whitespace and
// newlines regardless of computed white-space values, as inside a textarea.
func WithForcePreserveWhitespace() Option {
	return func(s *Scanner) {
		s.forcePreserveWhitespace = true
	}
}

// WithoutLayoutContent disables synthesized newlines at element boundaries;
// only literal preserved newlines appear in the content.
func WithoutLayoutContent() Option {
	return func(s *Scanner) {
		s.generateLayoutContent = false
	}
}

// WithPrecedingContent marks the line as already holding content at the
// starting position, the way it would mid-line during an ongoing scan. A
// collapsible whitespace run at the cursor can then still become a space
// in front of the first character scanned. Used when the scan continues
// text accumulated by another scanner across the same position.
func WithPrecedingContent() Option {
	return func(s *Scanner) {
		s.lineHasContent = true
	}
}

// New creates a scanner positioned at a byte offset inside node. The offset
// is only meaningful for text nodes; the caller is responsible for keeping
// it within the node's data.
//
// A position inside a ruby annotation is normalized: the cursor moves to
// the enclosing ruby container and the offset reset carries over to the
// next text node entered, so annotation text never leaks into the output.
func New(node *html.Node, offset int, opts ...Option) *Scanner {
	s := &Scanner{
		node:                  node,
		offset:                offset,
		generateLayoutContent: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.styler == nil {
		s.styler = style.NewResolver()
	}
	if ruby := dom.ParentRuby(node); ruby != nil {
		s.node = ruby
		s.resetOffset = true
	}
	return s
}

// Node returns the node the cursor stopped on.
func (s *Scanner) Node() *html.Node {
	return s.node
}

// Offset returns the byte offset within the current node. It is 0 when the
// cursor rests on a non-text node.
func (s *Scanner) Offset() int {
	return s.offset
}

// Content returns the text accumulated by all Seek calls so far.
func (s *Scanner) Content() string {
	return s.content
}

// Remainder returns how many characters the most recent Seek could not
// provide before the document was exhausted. Zero means the request was
// fully satisfied.
func (s *Scanner) Remainder() int {
	return s.remainder
}
