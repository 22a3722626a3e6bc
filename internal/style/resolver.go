package style

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"

	"github.com/jbukl/yomitan/internal/dom"
)

// Resolver computes style snapshots for elements of a parsed document. It
// stands in for a host style engine: user-agent defaults by tag name,
// inline style attribute declarations on top, and inheritance of the
// inherited properties down the element chain. Results are cached per node;
// a Resolver is bound to one stable document snapshot and is not safe for
// concurrent use.
type Resolver struct {
	cache map[*html.Node]*Computed
}

// NewResolver creates a resolver with an empty cache.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[*html.Node]*Computed)}
}

// Computed returns the computed style for an element node, or nil for any
// other node.
func (r *Resolver) Computed(el *html.Node) *Computed {
	if el == nil || el.Type != html.ElementNode {
		return nil
	}
	if c, ok := r.cache[el]; ok {
		return c
	}

	// Collect the uncached part of the ancestor chain, then resolve from
	// the top down so each element sees its parent's inherited values.
	var chain []*html.Node
	for n := el; n != nil; n = dom.ParentElement(n.Parent) {
		if _, ok := r.cache[n]; ok {
			break
		}
		chain = append(chain, n)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		var parent *Computed
		if p := dom.ParentElement(n.Parent); p != nil {
			parent = r.cache[p]
		}
		r.cache[n] = resolve(parent, n)
	}
	return r.cache[el]
}

func resolve(parent *Computed, el *html.Node) *Computed {
	c := inherited(parent)
	applyDefaults(c, dom.TagName(el))
	applyDeclarations(c, dom.Attr(el, "style"))
	return c
}

// inherited seeds a snapshot with the root defaults, then carries the
// inherited properties down from the parent.
func inherited(parent *Computed) *Computed {
	c := &Computed{
		Display:    "inline",
		Position:   "static",
		Visibility: "visible",
		Opacity:    "1",
		FontSize:   "16px",
		Color:      "rgb(0, 0, 0)",
		WhiteSpace: "normal",
	}
	if parent == nil {
		return c
	}
	c.Visibility = parent.Visibility
	c.FontSize = parent.FontSize
	c.Color = parent.Color
	c.WebkitTextFillColor = parent.WebkitTextFillColor
	c.WhiteSpace = parent.WhiteSpace
	c.UserSelect = parent.UserSelect
	c.WebkitUserSelect = parent.WebkitUserSelect
	c.MozUserSelect = parent.MozUserSelect
	c.MsUserSelect = parent.MsUserSelect
	return c
}

// displayDefaults is the user-agent display value per tag. Tags not listed
// default to inline.
var displayDefaults = map[string]string{
	"head": "none", "script": "none", "style": "none", "meta": "none",
	"link": "none", "title": "none", "base": "none", "template": "none",
	"rp": "none",

	"html": "block", "body": "block", "div": "block", "p": "block",
	"h1": "block", "h2": "block", "h3": "block", "h4": "block",
	"h5": "block", "h6": "block", "ul": "block", "ol": "block",
	"dl": "block", "dt": "block", "dd": "block", "blockquote": "block",
	"pre": "block", "address": "block", "article": "block",
	"aside": "block", "footer": "block", "header": "block",
	"hgroup": "block", "main": "block", "nav": "block",
	"section": "block", "figure": "block", "figcaption": "block",
	"fieldset": "block", "form": "block", "hr": "block",
	"details": "block", "dialog": "block",

	"li": "list-item", "summary": "list-item",

	"table": "table", "caption": "table-caption", "colgroup": "table-column-group",
	"col": "table-column", "thead": "table-header-group", "tbody": "table-row-group",
	"tfoot": "table-footer-group", "tr": "table-row", "td": "table-cell",
	"th": "table-cell",

	"ruby": "ruby", "rt": "ruby-text",

	"textarea": "inline-block", "input": "inline-block",
	"button": "inline-block", "select": "inline-block",
}

var whiteSpaceDefaults = map[string]string{
	"pre":      "pre",
	"textarea": "pre-wrap",
}

func applyDefaults(c *Computed, tag string) {
	if d, ok := displayDefaults[tag]; ok {
		c.Display = d
	} else {
		c.Display = "inline"
	}
	if ws, ok := whiteSpaceDefaults[tag]; ok {
		c.WhiteSpace = ws
	}
}

// applyDeclarations parses an inline style attribute and applies the
// properties the snapshot tracks. Unknown properties and parse errors are
// ignored.
func applyDeclarations(c *Computed, inline string) {
	if strings.TrimSpace(inline) == "" {
		return
	}
	p := css.NewParser(parse.NewInputString(inline), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			return
		}
		if gt != css.DeclarationGrammar && gt != css.CustomPropertyGrammar {
			continue
		}
		var b strings.Builder
		for _, val := range p.Values() {
			b.Write(val.Data)
		}
		setProperty(c, strings.ToLower(string(data)), strings.TrimSpace(b.String()))
	}
}

func setProperty(c *Computed, prop, value string) {
	keyword := strings.ToLower(value)
	switch prop {
	case "display":
		c.Display = keyword
	case "position":
		c.Position = keyword
	case "visibility":
		c.Visibility = keyword
	case "opacity":
		c.Opacity = value
	case "font-size":
		c.FontSize = value
	case "color":
		c.Color = NormalizeColor(value)
	case "-webkit-text-fill-color":
		c.WebkitTextFillColor = NormalizeColor(value)
	case "white-space":
		c.WhiteSpace = keyword
	case "user-select":
		c.UserSelect = keyword
	case "-webkit-user-select":
		c.WebkitUserSelect = keyword
	case "-moz-user-select":
		c.MozUserSelect = keyword
	case "-ms-user-select":
		c.MsUserSelect = keyword
	}
}
