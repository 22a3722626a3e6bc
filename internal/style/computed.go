// Package style models computed style snapshots for document elements.
//
// The scanner only needs a handful of properties: display, position,
// visibility, opacity, font-size, the text colors, white-space handling and
// user-select. A Computed value carries them as strings, the way a host
// style engine would report them. Missing or malformed values always fall
// back to permissive defaults (visible, default whitespace handling) so
// content is never lost to bad style data.
package style

import (
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Computed is a snapshot of the effective visual properties of one element.
// The zero value means "everything unset" and is treated as visible.
type Computed struct {
	Display             string
	Position            string
	Visibility          string
	Opacity             string
	FontSize            string
	Color               string
	WebkitTextFillColor string
	WhiteSpace          string
	UserSelect          string
	WebkitUserSelect    string
	MozUserSelect       string
	MsUserSelect        string
}

// Visible reports whether text inside the element can be seen. An element is
// visible unless its visibility is hidden, its opacity or font size is zero,
// or its text is unselectable while both text colors are fully transparent.
// A nil snapshot is visible.
func (c *Computed) Visible() bool {
	if c == nil {
		return true
	}
	if c.Visibility == "hidden" {
		return false
	}
	if v, ok := parseNumericPrefix(c.Opacity); ok && v <= 0 {
		return false
	}
	if v, ok := parseNumericPrefix(c.FontSize); ok && v <= 0 {
		return false
	}
	fill := c.WebkitTextFillColor
	if fill == "" {
		// -webkit-text-fill-color computes to the text color unless
		// explicitly declared.
		fill = c.Color
	}
	if !c.Selectable() && ColorTransparent(c.Color) && ColorTransparent(fill) {
		return false
	}
	return true
}

// Selectable reports whether text inside the element can be selected by the
// user. Any user-select variant equal to "none" makes it unselectable.
func (c *Computed) Selectable() bool {
	if c == nil {
		return true
	}
	return c.UserSelect != "none" &&
		c.WebkitUserSelect != "none" &&
		c.MozUserSelect != "none" &&
		c.MsUserSelect != "none"
}

// WhitespaceSettings maps the white-space property to the two preservation
// flags the scanner's character classifier needs.
func (c *Computed) WhitespaceSettings() (preserveNewlines, preserveWhitespace bool) {
	if c == nil {
		return false, false
	}
	switch c.WhiteSpace {
	case "pre", "pre-wrap", "break-spaces":
		return true, true
	case "pre-line":
		return true, false
	default:
		return false, false
	}
}

// parseNumericPrefix parses the leading number of a CSS value such as "0.5"
// or "16px". Returns false for empty or non-numeric values.
func parseNumericPrefix(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, n := pstrconv.ParseFloat([]byte(s))
	if n == 0 {
		return 0, false
	}
	return v, true
}
