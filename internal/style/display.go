package style

import "strings"

// LayoutBreakingDisplay reports whether a computed display value breaks the
// inline flow of text, meaning a line break belongs between the element's
// content and its surroundings. Only the first token of multi-keyword
// values matters. "ruby" counts as breaking for the container value only;
// ruby-text and the inline values do not.
func LayoutBreakingDisplay(display string) bool {
	first, _, _ := strings.Cut(strings.TrimSpace(display), " ")
	switch first {
	case "block", "flex", "grid", "list-item", "table", "ruby":
		return true
	default:
		return strings.HasPrefix(first, "table-")
	}
}

// OutOfFlowPosition reports whether a computed position value takes the
// element out of the normal document flow.
func OutOfFlowPosition(position string) bool {
	switch position {
	case "absolute", "fixed", "sticky":
		return true
	default:
		return false
	}
}
