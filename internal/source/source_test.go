package source

import (
	"testing"

	"github.com/jbukl/yomitan/internal/dom"
	"github.com/jbukl/yomitan/internal/scanner"
)

func anchorAt(t *testing.T, markup, sub string, offset int, opts ...scanner.Option) *Range {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	node := dom.FindText(doc, sub)
	if node == nil {
		t.Fatalf("text %q not found", sub)
	}
	return NewRange(node, offset, opts...)
}

func TestSetEndOffset(t *testing.T) {
	r := anchorAt(t, `<p>hello world</p>`, "hello", 0)
	if got := r.SetEndOffset(5); got != 5 {
		t.Errorf("SetEndOffset = %d, want 5", got)
	}
	if got := r.Text(); got != "hello" {
		t.Errorf("Text = %q, want %q", got, "hello")
	}
	_, off := r.End()
	if off != 5 {
		t.Errorf("end offset = %d, want 5", off)
	}
}

func TestSetStartOffset(t *testing.T) {
	r := anchorAt(t, `<p>hello world</p>`, "hello", 11)
	if got := r.SetStartOffset(5); got != 5 {
		t.Errorf("SetStartOffset = %d, want 5", got)
	}
	if got := r.Text(); got != "world" {
		t.Errorf("Text = %q, want %q", got, "world")
	}
	_, off := r.Start()
	if off != 6 {
		t.Errorf("start offset = %d, want 6", off)
	}
}

func TestTextCombinesBothSides(t *testing.T) {
	r := anchorAt(t, `<p>hello world</p>`, "hello", 5)
	r.SetStartOffset(5)
	r.SetEndOffset(6)
	if got := r.Text(); got != "hello world" {
		t.Errorf("Text = %q, want %q", got, "hello world")
	}
}

func TestTextCombinesEitherOrder(t *testing.T) {
	// Growing the end before the start must produce the same text; the
	// space at the anchor belongs between the sides either way.
	r := anchorAt(t, `<p>hello world</p>`, "hello", 5)
	r.SetEndOffset(6)
	r.SetStartOffset(5)
	if got := r.Text(); got != "hello world" {
		t.Errorf("Text = %q, want %q", got, "hello world")
	}
}

func TestSpaceBeforeAnchorKept(t *testing.T) {
	// Anchored just after the space: the backward side meets the run
	// first and still collapses it between the two sides.
	r := anchorAt(t, `<p>hello world</p>`, "hello", 6)
	r.SetEndOffset(5)
	r.SetStartOffset(6)
	if got := r.Text(); got != "hello world" {
		t.Errorf("Text = %q, want %q", got, "hello world")
	}
}

func TestSetEndOffsetReplacesPrevious(t *testing.T) {
	r := anchorAt(t, `<p>hello world</p>`, "hello", 0)
	r.SetEndOffset(11)
	// A shorter request re-scans from the anchor instead of accumulating.
	if got := r.SetEndOffset(5); got != 5 {
		t.Errorf("SetEndOffset = %d, want 5", got)
	}
	if got := r.Text(); got != "hello" {
		t.Errorf("Text = %q, want %q", got, "hello")
	}
}

func TestShortfall(t *testing.T) {
	r := anchorAt(t, `<p>abc</p>`, "abc", 0)
	if got := r.SetEndOffset(10); got != 3 {
		t.Errorf("SetEndOffset = %d, want 3 obtained", got)
	}
	if got := r.Text(); got != "abc" {
		t.Errorf("Text = %q, want %q", got, "abc")
	}
}

func TestRangeOptionsForwarded(t *testing.T) {
	r := anchorAt(t, `<div>foo</div><div>bar</div>`, "foo", 0, scanner.WithoutLayoutContent())
	r.SetEndOffset(6)
	if got := r.Text(); got != "foobar" {
		t.Errorf("Text = %q, want %q (layout content disabled)", got, "foobar")
	}
}

func TestRangeAcrossBlocks(t *testing.T) {
	r := anchorAt(t, `<div>foo</div><div>bar</div>`, "bar", 1)
	r.SetStartOffset(5)
	r.SetEndOffset(2)
	if got := r.Text(); got != "foo\nbar" {
		t.Errorf("Text = %q, want %q", got, "foo\nbar")
	}
}
