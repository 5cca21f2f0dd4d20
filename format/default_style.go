package format

import "github.com/cozy/contentmodel-go/dom"

// defaultStyles holds the declarations a browser applies to a tag without
// any author style, limited to the properties the handlers read.
var defaultStyles = map[string]dom.Declarations{
	"b":          {{Property: "font-weight", Value: "bold"}},
	"strong":     {{Property: "font-weight", Value: "bold"}},
	"i":          {{Property: "font-style", Value: "italic"}},
	"em":         {{Property: "font-style", Value: "italic"}},
	"cite":       {{Property: "font-style", Value: "italic"}},
	"u":          {{Property: "text-decoration", Value: "underline"}},
	"ins":        {{Property: "text-decoration", Value: "underline"}},
	"s":          {{Property: "text-decoration", Value: "line-through"}},
	"strike":     {{Property: "text-decoration", Value: "line-through"}},
	"del":        {{Property: "text-decoration", Value: "line-through"}},
	"sub":        {{Property: "vertical-align", Value: "sub"}},
	"sup":        {{Property: "vertical-align", Value: "super"}},
	"code":       {{Property: "font-family", Value: "monospace"}},
	"pre":        {{Property: "display", Value: "block"}, {Property: "font-family", Value: "monospace"}, {Property: "white-space", Value: "pre"}},
	"center":     {{Property: "display", Value: "block"}, {Property: "text-align", Value: "center"}},
	"p":          {{Property: "display", Value: "block"}},
	"div":        {{Property: "display", Value: "block"}},
	"blockquote": {{Property: "display", Value: "block"}},
	"li":         {{Property: "display", Value: "list-item"}},
	"ol":         {{Property: "display", Value: "block"}},
	"ul":         {{Property: "display", Value: "block"}},
	"table":      {{Property: "display", Value: "table"}},
	"tr":         {{Property: "display", Value: "table-row"}},
	"td":         {{Property: "display", Value: "table-cell"}},
	"th":         {{Property: "display", Value: "table-cell"}},
	"hr":         {{Property: "display", Value: "block"}},
	"h1":         heading("2em"),
	"h2":         heading("1.5em"),
	"h3":         heading("1.17em"),
	"h4":         heading("1em"),
	"h5":         heading("0.83em"),
	"h6":         heading("0.67em"),
}

func heading(size string) dom.Declarations {
	return dom.Declarations{
		{Property: "display", Value: "block"},
		{Property: "font-size", Value: size},
		{Property: "font-weight", Value: "bold"},
	}
}

var blockDisplayTags = []string{
	"address", "article", "aside", "dd", "details", "dialog", "dl", "dt",
	"fieldset", "figcaption", "figure", "footer", "form", "header", "hgroup",
	"main", "nav", "section", "summary",
}

func init() {
	for _, tag := range blockDisplayTags {
		defaultStyles[tag] = dom.Declarations{{Property: "display", Value: "block"}}
	}
}

// DefaultStyle returns a copy of the declarations implied by a tag.
func DefaultStyle(tag string) dom.Declarations {
	return append(dom.Declarations(nil), defaultStyles[tag]...)
}

// IsBlockDisplay reports whether a display value starts a new block.
func IsBlockDisplay(display string) bool {
	switch display {
	case "block", "flex", "grid", "list-item", "table", "table-row", "table-cell", "flow-root":
		return true
	}
	return false
}
