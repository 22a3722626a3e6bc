package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func mustParse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := ParseString(s)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestTagName(t *testing.T) {
	doc := mustParse(t, `<div><custom-tag>x</custom-tag></div>`)
	div := findElementByName(doc, "div")
	if div == nil {
		t.Fatal("div not found")
	}
	if got := TagName(div); got != "div" {
		t.Errorf("TagName(div) = %q", got)
	}
	custom := findElementByName(doc, "custom-tag")
	if custom == nil {
		t.Fatal("custom-tag not found")
	}
	if got := TagName(custom); got != "custom-tag" {
		t.Errorf("TagName(custom-tag) = %q", got)
	}
	text := FindText(doc, "x")
	if got := TagName(text); got != "" {
		t.Errorf("TagName(text) = %q, want empty", got)
	}
}

func TestParentElement(t *testing.T) {
	doc := mustParse(t, `<p><b>bold</b></p>`)
	text := FindText(doc, "bold")
	if text == nil {
		t.Fatal("text not found")
	}
	el := ParentElement(text)
	if TagName(el) != "b" {
		t.Errorf("ParentElement = %q, want b", TagName(el))
	}
	// An element is its own nearest element.
	if ParentElement(el) != el {
		t.Error("ParentElement(element) should return the element itself")
	}
}

func TestParentRuby(t *testing.T) {
	doc := mustParse(t, `<ruby>漢字<rt>かんじ</rt></ruby><p>plain</p>`)

	annotation := FindText(doc, "かんじ")
	if annotation == nil {
		t.Fatal("annotation text not found")
	}
	ruby := ParentRuby(annotation)
	if ruby == nil || TagName(ruby) != "ruby" {
		t.Fatalf("ParentRuby(annotation) = %v, want ruby element", ruby)
	}

	base := FindText(doc, "漢字")
	if got := ParentRuby(base); got != nil {
		t.Errorf("ParentRuby(base text) = %v, want nil", got)
	}

	plain := FindText(doc, "plain")
	if got := ParentRuby(plain); got != nil {
		t.Errorf("ParentRuby(plain text) = %v, want nil", got)
	}
}

func TestAttr(t *testing.T) {
	doc := mustParse(t, `<div style="color: red" id="a">x</div>`)
	div := findElementByName(doc, "div")
	if got := Attr(div, "style"); got != "color: red" {
		t.Errorf("Attr(style) = %q", got)
	}
	if got := Attr(div, "missing"); got != "" {
		t.Errorf("Attr(missing) = %q, want empty", got)
	}
}

func TestBodyAndFirstText(t *testing.T) {
	doc := mustParse(t, `<html><head><title>t</title></head><body>  <p>first</p></body></html>`)
	body := Body(doc)
	if body == nil || TagName(body) != "body" {
		t.Fatalf("Body = %v", body)
	}
	first := FirstText(body)
	if first == nil || first.Data != "first" {
		t.Errorf("FirstText = %v, want the p text", first)
	}
}

func TestFindTextMissing(t *testing.T) {
	doc := mustParse(t, `<p>abc</p>`)
	if got := FindText(doc, "zzz"); got != nil {
		t.Errorf("FindText(missing) = %v, want nil", got)
	}
}

func findElementByName(root *html.Node, name string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && TagName(n) == name {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}
