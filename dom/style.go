package dom

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/net/html"
)

// Declaration is a single CSS property/value pair of an inline style.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered list of CSS declarations, as found in a style
// attribute. Property names are lower case; a property appears at most once.
type Declarations []Declaration

// Get returns the value of a property, or "" if it is not declared.
func (d Declarations) Get(property string) string {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value
		}
	}
	return ""
}

// Has reports whether the property is declared.
func (d Declarations) Has(property string) bool {
	for _, decl := range d {
		if decl.Property == property {
			return true
		}
	}
	return false
}

// Set declares a property, replacing a previous value in place. An empty
// value removes the property.
func (d Declarations) Set(property, value string) Declarations {
	if value == "" {
		return d.Remove(property)
	}
	for i, decl := range d {
		if decl.Property == property {
			d[i].Value = value
			return d
		}
	}
	return append(d, Declaration{Property: property, Value: value})
}

// Remove drops a property.
func (d Declarations) Remove(property string) Declarations {
	for i, decl := range d {
		if decl.Property == property {
			return append(d[:i:i], d[i+1:]...)
		}
	}
	return d
}

// String renders the declarations back to style attribute syntax.
func (d Declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		parts = append(parts, decl.Property+": "+decl.Value)
	}
	return strings.Join(parts, "; ")
}

// Merge returns a copy of d where every declaration of other overrides or is
// appended.
func (d Declarations) Merge(other Declarations) Declarations {
	result := append(Declarations(nil), d...)
	for _, decl := range other {
		result = result.Set(decl.Property, decl.Value)
	}
	return result
}

// Parsed style attributes are memoised: pasted documents repeat the same
// style strings on thousands of elements.
var styleCache = cache.New(10*time.Minute, 20*time.Minute)

// ParseStyle splits a style attribute into declarations. Semicolons inside
// quotes or parentheses do not end a declaration. Malformed declarations are
// skipped.
func ParseStyle(style string) Declarations {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	if cached, ok := styleCache.Get(style); ok {
		return append(Declarations(nil), cached.(Declarations)...)
	}
	var result Declarations
	for _, part := range splitDeclarations(style) {
		idx := strings.Index(part, ":")
		if idx <= 0 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(part[:idx]))
		value := strings.TrimSpace(part[idx+1:])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if property == "" || value == "" {
			continue
		}
		result = result.Set(property, value)
	}
	styleCache.SetDefault(style, result)
	return append(Declarations(nil), result...)
}

func splitDeclarations(style string) []string {
	var parts []string
	var quote rune
	depth := 0
	start := 0
	for i, r := range style {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			parts = append(parts, style[start:i])
			start = i + 1
		}
	}
	return append(parts, style[start:])
}

// Style returns the parsed inline style of an element.
func Style(n *html.Node) Declarations {
	return ParseStyle(Attr(n, "style"))
}

// StyleValue returns one inline style property of an element.
func StyleValue(n *html.Node, property string) string {
	return Style(n).Get(property)
}

// SetStyle sets one inline style property. An empty value removes it, and
// the style attribute itself is removed once empty.
func SetStyle(n *html.Node, property, value string) {
	WriteStyle(n, Style(n).Set(property, value))
}

// WriteStyle replaces the style attribute of an element.
func WriteStyle(n *html.Node, decls Declarations) {
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", decls.String())
}
