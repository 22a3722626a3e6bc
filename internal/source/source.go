// Package source tracks a text selection range over a document, grown and
// shrunk in character counts by way of the scanner.
//
// A Range keeps an anchor position (where a lookup was triggered) and a
// start and end position around it. Setting the start or end offset
// re-scans from the anchor, so repeated calls with different lengths are
// independent rather than cumulative.
package source

import (
	"golang.org/x/net/html"

	"github.com/jbukl/yomitan/internal/scanner"
)

// Range is a selection around an anchor position. The zero value is not
// usable; create one with NewRange.
type Range struct {
	opts []scanner.Option

	anchorNode   *html.Node
	anchorOffset int

	startNode   *html.Node
	startOffset int
	startText   string
	startLen    int
	hasStart    bool

	endNode   *html.Node
	endOffset int
	endText   string
	endLen    int
	hasEnd    bool
}

// NewRange creates a collapsed range anchored at a byte offset inside node.
// The options are forwarded to every scanner the range creates.
func NewRange(node *html.Node, offset int, opts ...scanner.Option) *Range {
	return &Range{
		opts:         opts,
		anchorNode:   node,
		anchorOffset: offset,
		startNode:    node,
		startOffset:  offset,
		endNode:      node,
		endOffset:    offset,
	}
}

// SetEndOffset scans forward n characters from the anchor and moves the end
// position there, replacing any previous end. Returns the number of
// characters actually obtained.
func (r *Range) SetEndOffset(n int) int {
	r.endLen, r.hasEnd = n, true
	got := r.scanEnd()
	// The start side's junction handling depends on whether the end side
	// now has text; bring it up to date.
	if r.hasStart {
		r.scanStart()
	}
	return got
}

// SetStartOffset scans backward n characters from the anchor and moves the
// start position there, replacing any previous start. Returns the number of
// characters actually obtained.
func (r *Range) SetStartOffset(n int) int {
	r.startLen, r.hasStart = n, true
	got := r.scanStart()
	if r.hasEnd {
		r.scanEnd()
	}
	return got
}

// scanEnd recomputes the end side from the anchor. When the start side
// already produced text, the anchor sits mid-line and a whitespace run
// right after it may still collapse to a space; a fresh scanner is told so.
func (r *Range) scanEnd() int {
	s := scanner.New(r.anchorNode, r.anchorOffset, r.sideOptions(r.startText)...)
	s.Seek(r.endLen)
	r.endNode = s.Node()
	r.endOffset = s.Offset()
	r.endText = s.Content()
	return r.endLen - s.Remainder()
}

// scanStart recomputes the start side from the anchor, mirroring scanEnd.
func (r *Range) scanStart() int {
	s := scanner.New(r.anchorNode, r.anchorOffset, r.sideOptions(r.endText)...)
	s.Seek(-r.startLen)
	r.startNode = s.Node()
	r.startOffset = s.Offset()
	r.startText = s.Content()
	return r.startLen - s.Remainder()
}

func (r *Range) sideOptions(oppositeText string) []scanner.Option {
	if oppositeText == "" {
		return r.opts
	}
	opts := r.opts[:len(r.opts):len(r.opts)]
	return append(opts, scanner.WithPrecedingContent())
}

// Text returns the selected text: the part scanned backward from the
// anchor followed by the part scanned forward.
func (r *Range) Text() string {
	return r.startText + r.endText
}

// Start returns the range's start position.
func (r *Range) Start() (*html.Node, int) {
	return r.startNode, r.startOffset
}

// End returns the range's end position.
func (r *Range) End() (*html.Node, int) {
	return r.endNode, r.endOffset
}
