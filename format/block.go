package format

import (
	"slices"
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// BlockBackgroundColor is the background-color of a block. The bgcolor
// attribute of table elements is read too.
var BlockBackgroundColor = Handler[model.BackgroundColorFormat]{
	Parse: func(f *model.BackgroundColorFormat, el *html.Node, _ *State, _ dom.Declarations) {
		v := inline(el, "background-color")
		if v == "" {
			v = dom.Attr(el, "bgcolor")
		}
		if v != "" && v != "transparent" {
			f.BackgroundColor = v
		}
	},
	Apply: func(f *model.BackgroundColorFormat, el *html.Node, _ *State) {
		if f.BackgroundColor != "" {
			dom.SetStyle(el, "background-color", f.BackgroundColor)
		}
	},
}

// CellTextColor is the color of a table cell.
var CellTextColor = styleProperty("color", func(f *model.TextColorFormat) *string { return &f.TextColor }, false)

// Direction reads the dir attribute and the direction property.
var Direction = Handler[model.DirectionFormat]{
	Parse: func(f *model.DirectionFormat, el *html.Node, _ *State, _ dom.Declarations) {
		v := inline(el, "direction")
		if v == "" {
			v = strings.ToLower(dom.Attr(el, "dir"))
		}
		if v == "rtl" || v == "ltr" {
			f.Direction = v
		}
	},
	Apply: func(f *model.DirectionFormat, el *html.Node, _ *State) {
		if f.Direction != "" {
			dom.SetStyle(el, "direction", f.Direction)
		}
	},
}

// TextAlign reads text-align and the align attribute. start and end are
// resolved to left or right with the inherited direction.
var TextAlign = Handler[model.TextAlignFormat]{
	Parse: func(f *model.TextAlignFormat, el *html.Node, st *State, defaultStyle dom.Declarations) {
		v := strings.ToLower(declared(el, "text-align", defaultStyle))
		if v == "" {
			v = strings.ToLower(dom.Attr(el, "align"))
		}
		rtl := st.Direction == "rtl"
		switch v {
		case "start":
			v = "left"
			if rtl {
				v = "right"
			}
		case "end":
			v = "right"
			if rtl {
				v = "left"
			}
		case "middle", "-webkit-center":
			v = "center"
		case "left", "right", "center", "justify":
		default:
			return
		}
		f.TextAlign = v
	},
	Apply: func(f *model.TextAlignFormat, el *html.Node, _ *State) {
		if f.TextAlign != "" {
			dom.SetStyle(el, "text-align", f.TextAlign)
		}
	},
}

var sides = [4]string{"top", "right", "bottom", "left"}

// expandBox expands a 1 to 4 value box shorthand into top, right, bottom,
// left.
func expandBox(value string) ([4]string, bool) {
	var result [4]string
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		result = [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		result = [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		result = [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		result = [4]string{parts[0], parts[1], parts[2], parts[3]}
	default:
		return result, false
	}
	return result, true
}

func zeroPx(v string) string {
	if v == "0" {
		return "0px"
	}
	return v
}

// boxHandler reads a box property (margin or padding) from its shorthand
// and longhands. Only inline styles count.
func boxHandler[T any](property string, fields func(*T) [4]*string) Handler[T] {
	return Handler[T]{
		Parse: func(f *T, el *html.Node, _ *State, _ dom.Declarations) {
			targets := fields(f)
			if shorthand := inline(el, property); shorthand != "" {
				if values, ok := expandBox(shorthand); ok {
					for i, v := range values {
						*targets[i] = zeroPx(v)
					}
				}
			}
			for i, side := range sides {
				if v := inline(el, property+"-"+side); v != "" {
					*targets[i] = zeroPx(v)
				}
			}
		},
		Apply: func(f *T, el *html.Node, _ *State) {
			for i, target := range fields(f) {
				if *target != "" {
					dom.SetStyle(el, property+"-"+sides[i], *target)
				}
			}
		},
	}
}

// Margin is the margin of each side.
var Margin = boxHandler("margin", func(f *model.MarginFormat) [4]*string {
	return [4]*string{&f.MarginTop, &f.MarginRight, &f.MarginBottom, &f.MarginLeft}
})

// Padding is the padding of each side.
var Padding = boxHandler("padding", func(f *model.PaddingFormat) [4]*string {
	return [4]*string{&f.PaddingTop, &f.PaddingRight, &f.PaddingBottom, &f.PaddingLeft}
})

// Border reads the border shorthands of each side and the radius. A side
// declared through longhands is composed back into a shorthand.
var Border = Handler[model.BorderFormat]{
	Parse: func(f *model.BorderFormat, el *html.Node, _ *State, _ dom.Declarations) {
		targets := [4]*string{&f.BorderTop, &f.BorderRight, &f.BorderBottom, &f.BorderLeft}
		if all := inline(el, "border"); all != "" {
			for _, t := range targets {
				*t = all
			}
		}
		width, _ := expandBox(inline(el, "border-width"))
		style, _ := expandBox(inline(el, "border-style"))
		color, _ := expandBox(inline(el, "border-color"))
		for i, side := range sides {
			if v := inline(el, "border-"+side); v != "" {
				*targets[i] = v
				continue
			}
			parts := []string{
				first(inline(el, "border-"+side+"-width"), width[i]),
				first(inline(el, "border-"+side+"-style"), style[i]),
				first(inline(el, "border-"+side+"-color"), color[i]),
			}
			if composed := strings.Join(nonEmpty(parts), " "); composed != "" {
				*targets[i] = composed
			}
		}
		if v := inline(el, "border-radius"); v != "" {
			f.BorderRadius = v
		}
	},
	Apply: func(f *model.BorderFormat, el *html.Node, _ *State) {
		for i, v := range [4]string{f.BorderTop, f.BorderRight, f.BorderBottom, f.BorderLeft} {
			if v != "" {
				dom.SetStyle(el, "border-"+sides[i], v)
			}
		}
		if f.BorderRadius != "" {
			dom.SetStyle(el, "border-radius", f.BorderRadius)
		}
	},
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(values []string) []string {
	var result []string
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

// HasBorder reports whether any side of a border format is visible.
func HasBorder(f model.BorderFormat) bool {
	for _, v := range []string{f.BorderTop, f.BorderRight, f.BorderBottom, f.BorderLeft} {
		if v != "" && !strings.Contains(v, "none") && !strings.HasPrefix(v, "0px") && v != "0" {
			return true
		}
	}
	return false
}

// LineHeight is the line-height of a block.
var LineHeight = styleProperty("line-height", func(f *model.LineHeightFormat) *string { return &f.LineHeight }, false)

// WhiteSpace is the white-space property.
var WhiteSpace = styleProperty("white-space", func(f *model.WhiteSpaceFormat) *string { return &f.WhiteSpace }, false)

// TextIndent is the text-indent property.
var TextIndent = styleProperty("text-indent", func(f *model.TextIndentFormat) *string { return &f.TextIndent }, false)

// Display is the display property.
var Display = styleProperty("display", func(f *model.DisplayFormat) *string { return &f.Display }, false)

// Size reads width, height and their bounds. Width and height attributes
// are read as pixels.
var Size = Handler[model.SizeFormat]{
	Parse: func(f *model.SizeFormat, el *html.Node, _ *State, _ dom.Declarations) {
		read := func(property string, target *string, attr bool) {
			if v := inline(el, property); v != "" {
				*target = v
			} else if attr {
				if a := dom.Attr(el, property); a != "" {
					if _, unit, ok := splitUnit(a); ok && unit == "" {
						a += "px"
					}
					*target = a
				}
			}
		}
		read("width", &f.Width, true)
		read("height", &f.Height, true)
		read("min-width", &f.MinWidth, false)
		read("max-width", &f.MaxWidth, false)
		read("min-height", &f.MinHeight, false)
		read("max-height", &f.MaxHeight, false)
	},
	Apply: func(f *model.SizeFormat, el *html.Node, _ *State) {
		for _, p := range []struct{ property, value string }{
			{"width", f.Width}, {"height", f.Height},
			{"min-width", f.MinWidth}, {"max-width", f.MaxWidth},
			{"min-height", f.MinHeight}, {"max-height", f.MaxHeight},
		} {
			if p.value != "" {
				dom.SetStyle(el, p.property, p.value)
			}
		}
	},
}

// VerticalAlign is the vertical alignment of a table cell, from
// vertical-align or the valign attribute.
var VerticalAlign = Handler[model.VerticalAlignFormat]{
	Parse: func(f *model.VerticalAlignFormat, el *html.Node, _ *State, _ dom.Declarations) {
		v := inline(el, "vertical-align")
		if v == "" {
			v = strings.ToLower(dom.Attr(el, "valign"))
		}
		switch v {
		case "top", "bottom":
			f.VerticalAlign = v
		case "middle", "center":
			f.VerticalAlign = "middle"
		}
	},
	Apply: func(f *model.VerticalAlignFormat, el *html.Node, _ *State) {
		if f.VerticalAlign != "" {
			dom.SetStyle(el, "vertical-align", f.VerticalAlign)
		}
	},
}

// WordBreak is the word-break property.
var WordBreak = styleProperty("word-break", func(f *model.WordBreakFormat) *string { return &f.WordBreak }, false)

// BoxShadow is the box-shadow property.
var BoxShadow = styleProperty("box-shadow", func(f *model.BoxShadowFormat) *string { return &f.BoxShadow }, false)

// Float is the float property.
var Float = styleProperty("float", func(f *model.FloatFormat) *string { return &f.Float }, false)

// ID is the id attribute.
var ID = Handler[model.IDFormat]{
	Parse: func(f *model.IDFormat, el *html.Node, _ *State, _ dom.Declarations) {
		if v := dom.Attr(el, "id"); v != "" {
			f.ID = v
		}
	},
	Apply: func(f *model.IDFormat, el *html.Node, _ *State) {
		if f.ID != "" {
			dom.SetAttr(el, "id", f.ID)
		}
	},
}

// TableLayout reads border-collapse, border-spacing and table-layout.
var TableLayout = Handler[model.TableFormat]{
	Parse: func(f *model.TableFormat, el *html.Node, _ *State, _ dom.Declarations) {
		if inline(el, "border-collapse") == "collapse" {
			f.BorderCollapse = true
		}
		if v := inline(el, "border-spacing"); v != "" {
			f.BorderSpacing = zeroPx(v)
		} else if v := dom.Attr(el, "cellspacing"); v != "" {
			f.BorderSpacing = zeroPx(v)
			if _, unit, ok := splitUnit(v); ok && unit == "" && v != "0" {
				f.BorderSpacing = v + "px"
			}
		}
		if v := inline(el, "table-layout"); v != "" {
			f.TableLayout = v
		}
	},
	Apply: func(f *model.TableFormat, el *html.Node, _ *State) {
		if f.BorderCollapse {
			dom.SetStyle(el, "border-collapse", "collapse")
		}
		if f.BorderSpacing != "" {
			dom.SetStyle(el, "border-spacing", f.BorderSpacing)
		}
		if f.TableLayout != "" {
			dom.SetStyle(el, "table-layout", f.TableLayout)
		}
	},
}

// Dataset reads the data-* attributes of an element.
func Dataset(el *html.Node) map[string]string {
	result := map[string]string{}
	for k, v := range dom.Dataset(el) {
		result[k] = v
	}
	return result
}

// ApplyDataset writes dataset entries as data-* attributes.
func ApplyDataset(dataset map[string]string, el *html.Node) {
	keys := make([]string, 0, len(dataset))
	for k := range dataset {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		dom.SetDataset(el, k, dataset[k])
	}
}
