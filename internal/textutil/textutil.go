// Package textutil provides code point and grapheme cluster primitives for
// text scanning.
//
// Scanner offsets are byte offsets into UTF-8 strings. The readers in this
// package move those offsets by whole code points so a seek can never split
// a multi-byte sequence, and the grapheme helpers keep user-perceived
// characters intact when text is truncated for display.
package textutil

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ReadCodePointsForward returns up to count code points of s starting at the
// byte offset. Offsets outside [0, len(s)] are clamped. Invalid bytes are
// consumed one at a time.
func ReadCodePointsForward(s string, offset, count int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s) {
		offset = len(s)
	}
	start := offset
	for i := 0; i < count && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return s[start:offset]
}

// ReadCodePointsBackward returns up to count code points of s ending at the
// byte offset, reading toward the start of the string.
func ReadCodePointsBackward(s string, offset, count int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s) {
		offset = len(s)
	}
	end := offset
	for i := 0; i < count && offset > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:offset])
		offset -= size
	}
	return s[offset:end]
}

// CodePointCount returns the number of code points in s.
func CodePointCount(s string) int {
	return utf8.RuneCountInString(s)
}

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// TruncateGraphemes returns at most max grapheme clusters of s. A cluster is
// never split, so combining sequences and emoji survive truncation whole.
func TruncateGraphemes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if max >= len(s) {
		// A cluster is at least one byte; the whole string fits.
		return s
	}
	end := 0
	g := uniseg.NewGraphemes(s)
	for i := 0; i < max && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}
