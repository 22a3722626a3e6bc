package scanner

import (
	"golang.org/x/net/html"

	"github.com/jbukl/yomitan/internal/dom"
	"github.com/jbukl/yomitan/internal/style"
)

// CharClass categorizes a single code point for the seek state machine.
type CharClass int

const (
	// ClassIgnorable characters contribute nothing and do not count
	// against the seek length.
	ClassIgnorable CharClass = iota

	// ClassWhitespace characters are collapsible: a run becomes at most
	// one space, emitted lazily between content.
	ClassWhitespace

	// ClassContent characters are emitted as-is and count against the
	// seek length.
	ClassContent

	// ClassNewline is a literal newline kept by the white-space style.
	// It is emitted and counted like content but ends the current line.
	ClassNewline
)

// CharacterClass classifies ch under the given whitespace preservation
// flags.
func CharacterClass(ch rune, preserveNewlines, preserveWhitespace bool) CharClass {
	switch ch {
	case '\t', '\f', '\r', ' ':
		if preserveWhitespace {
			return ClassContent
		}
		return ClassWhitespace
	case '\n':
		if preserveNewlines {
			return ClassNewline
		}
		return ClassWhitespace
	case '\u200b', '\u200c': // zero-width space, zero-width non-joiner
		return ClassIgnorable
	default:
		return ClassContent
	}
}

// ElementSeekInfo reports whether the scanner may descend into an element
// and how many layout newlines its boundary implies.
//
// Non-content elements (head, ruby annotations, script, style) are never
// entered and imply nothing. A br implies one newline. Form controls are
// leaves but still participate in layout. Everything else is entered when
// visible; invisible subtrees are skipped entirely. Visible elements imply
// two newlines when positioned out of flow, one when their display value
// breaks inline flow, and zero otherwise.
func ElementSeekInfo(el *html.Node, styler Styler) (enterable bool, newlines int) {
	enterable = true
	switch dom.TagName(el) {
	case "head", "rt", "script", "style":
		return false, 0
	case "br":
		return false, 1
	case "textarea", "input", "button":
		enterable = false
	}

	var c *style.Computed
	if styler != nil {
		c = styler.Computed(el)
	}
	if c == nil {
		// No style information; fail open and treat as inline.
		return enterable, 0
	}
	if c.Display == "none" || !c.Visible() {
		return false, 0
	}
	if style.OutOfFlowPosition(c.Position) {
		return enterable, 2
	}
	if style.LayoutBreakingDisplay(c.Display) {
		return enterable, 1
	}
	return enterable, 0
}

// whitespaceSettings resolves the preservation flags for a text node from
// its parent element's white-space style.
func (s *Scanner) whitespaceSettings(textNode *html.Node) (preserveNewlines, preserveWhitespace bool) {
	if s.forcePreserveWhitespace {
		return true, true
	}
	el := dom.ParentElement(textNode)
	if el == nil || s.styler == nil {
		return false, false
	}
	return s.styler.Computed(el).WhitespaceSettings()
}
