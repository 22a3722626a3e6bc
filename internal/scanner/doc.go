// Package scanner extracts the visible text around a position in a parsed
// HTML document.
//
// A Scanner is a cursor over the document tree: a node plus a byte offset
// into that node's text. Seek walks the tree forward or backward by a
// requested number of characters, accumulating the text a reader would
// actually see. Along the way it collapses insignificant whitespace the way
// CSS rendering does, synthesizes newlines at block-level and out-of-flow
// element boundaries, skips invisible subtrees and non-content elements
// (script, style, ruby annotations), and keeps character-accurate track of
// where it stopped.
//
// Key behaviors:
//   - Runs of collapsible whitespace become a single space, and only
//     between content on the same line; leading and trailing runs vanish.
//   - Block boundaries become "\n", out-of-flow boundaries "\n\n", but a
//     newline is only materialized when content exists on both sides.
//   - Content accumulates across Seek calls with a consistent direction,
//     so a selection can be grown incrementally.
//   - Remainder reports how many requested characters the document could
//     not provide; it is the only failure signal.
//
// A Scanner never mutates the tree and assumes the tree is stable for the
// duration of a Seek call. It is not safe for concurrent use.
package scanner
