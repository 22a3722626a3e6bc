package scanner

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/jbukl/yomitan/internal/textutil"
)

// Seek extends the accumulated content by up to |length| characters read
// from the document, forward for positive lengths and backward for
// negative ones, and advances the cursor position accordingly. Seek(0) is
// a no-op. Returns the scanner for chaining.
//
// When the document is exhausted before the request is satisfied, the
// cursor rests on the last node visited and Remainder reports the
// shortfall.
func (s *Scanner) Seek(length int) *Scanner {
	forward := length >= 0
	if forward {
		s.remainder = length
	} else {
		s.remainder = -length
	}
	if length == 0 {
		return s
	}

	node := s.node
	lastNode := node
	resetOffset := s.resetOffset
	atStart := true
	exited := make([]*html.Node, 0, 8)

loop:
	for node != nil {
		enterable := false
		switch node.Type {
		case html.TextNode:
			lastNode = node
			// Only the node the cursor started on honors the stored
			// offset; every text node entered mid-seek starts at its
			// directional edge, as does a pending ruby reset.
			fromEdge := resetOffset || !atStart
			resetOffset = false
			if !s.seekText(node, fromEdge, forward) {
				break loop
			}
		case html.ElementNode:
			lastNode = node
			s.offset = 0
			var newlines int
			enterable, newlines = ElementSeekInfo(node, s.styler)
			s.raiseNewlines(newlines)
		}
		atStart = false

		exited = exited[:0]
		node = nextNode(node, forward, enterable, &exited)
		for _, ex := range exited {
			if ex.Type != html.ElementNode {
				continue
			}
			_, newlines := ElementSeekInfo(ex, s.styler)
			s.raiseNewlines(newlines)
		}
	}

	s.node = lastNode
	s.resetOffset = resetOffset
	return s
}

// raiseNewlines lifts the pending layout newline count, never lowering it.
// Pending newlines materialize lazily: only when content follows, and only
// as many as the remaining length allows.
func (s *Scanner) raiseNewlines(n int) {
	if s.generateLayoutContent && n > s.newlines {
		s.newlines = n
	}
}

// seekText consumes characters of a text node in the seek direction,
// one code point at a time, applying the whitespace collapsing state
// machine. fromEdge starts at the node's directional boundary instead of
// the stored offset. Returns true while the seek still needs characters.
func (s *Scanner) seekText(node *html.Node, fromEdge, forward bool) bool {
	text := node.Data
	preserveNewlines, preserveWhitespace := s.whitespaceSettings(node)

	lineHasWhitespace := s.lineHasWhitespace
	lineHasContent := s.lineHasContent
	content := s.content
	remainder := s.remainder
	newlines := s.newlines

	offset := s.offset
	if fromEdge {
		if forward {
			offset = 0
		} else {
			offset = len(text)
		}
	}

	for {
		var ch string
		if forward {
			if offset >= len(text) {
				break
			}
			ch = textutil.ReadCodePointsForward(text, offset, 1)
			offset += len(ch)
		} else {
			if offset <= 0 {
				break
			}
			ch = textutil.ReadCodePointsBackward(text, offset, 1)
			offset -= len(ch)
		}

		r, _ := utf8.DecodeRuneInString(ch)
		class := CharacterClass(r, preserveNewlines, preserveWhitespace)
		if class == ClassIgnorable {
			continue
		}
		if class == ClassWhitespace {
			lineHasWhitespace = true
			continue
		}

		// Content or a preserved newline. Materialize pending layout
		// newlines first; a leading run with no content yet is dropped.
		if newlines > 0 {
			if len(content) > 0 {
				use := min(remainder, newlines)
				content = emit(content, strings.Repeat("\n", use), forward)
				remainder -= use
				newlines -= use
			} else {
				newlines = 0
			}
			lineHasContent = false
			lineHasWhitespace = false
			if remainder <= 0 {
				// The character itself was not emitted; put it back.
				offset = revert(offset, len(ch), forward)
				break
			}
		}

		isContent := class == ClassContent
		wasContent := lineHasContent
		lineHasContent = isContent

		if lineHasWhitespace {
			lineHasWhitespace = false
			// A collapsed run becomes one space only between content on
			// the same line, never at a line edge.
			if wasContent && isContent {
				content = emit(content, " ", forward)
				remainder--
				if remainder <= 0 {
					offset = revert(offset, len(ch), forward)
					break
				}
			}
		}

		content = emit(content, ch, forward)
		remainder--
		if remainder <= 0 {
			break
		}
	}

	s.lineHasWhitespace = lineHasWhitespace
	s.lineHasContent = lineHasContent
	s.content = content
	s.offset = offset
	s.remainder = remainder
	s.newlines = newlines
	return remainder > 0
}

func emit(content, piece string, forward bool) string {
	if forward {
		return content + piece
	}
	return piece + content
}

func revert(offset, size int, forward bool) int {
	if forward {
		return offset - size
	}
	return offset + size
}

// nextNode advances to the next node in document order (or reverse order),
// descending into enterable elements. Nodes left behind while moving
// sideways or upward are appended to exited so the caller can account for
// the layout boundaries of subtrees whose content was empty or skipped.
func nextNode(node *html.Node, forward, enterable bool, exited *[]*html.Node) *html.Node {
	var next *html.Node
	if enterable {
		if forward {
			next = node.FirstChild
		} else {
			next = node.LastChild
		}
	}
	if next == nil {
		for {
			*exited = append(*exited, node)
			if forward {
				next = node.NextSibling
			} else {
				next = node.PrevSibling
			}
			if next != nil {
				break
			}
			node = node.Parent
			if node == nil {
				break
			}
		}
	}
	return next
}
