package format

import (
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// declared returns the inline value of a property, falling back to the
// tag's default style. "inherit" and "initial" count as unset.
func declared(el *html.Node, property string, defaultStyle dom.Declarations) string {
	v := dom.StyleValue(el, property)
	if v == "" {
		v = defaultStyle.Get(property)
	}
	switch v {
	case "inherit", "initial", "unset":
		return ""
	}
	return v
}

// inline returns the inline value of a property only.
func inline(el *html.Node, property string) string {
	return declared(el, property, nil)
}

// styleProperty is a handler for a single CSS property stored as is in a
// string field.
func styleProperty[T any](property string, field func(*T) *string, useDefault bool) Handler[T] {
	return Handler[T]{
		Parse: func(f *T, el *html.Node, _ *State, defaultStyle dom.Declarations) {
			if !useDefault {
				defaultStyle = nil
			}
			if v := declared(el, property, defaultStyle); v != "" {
				*field(f) = v
			}
		},
		Apply: func(f *T, el *html.Node, _ *State) {
			if v := *field(f); v != "" {
				dom.SetStyle(el, property, v)
			}
		},
	}
}

// TextColor is the color property. <font color> is read too.
var TextColor = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		v := declared(el, "color", defaultStyle)
		if v == "" && dom.IsElement(el, "font") {
			v = dom.Attr(el, "color")
		}
		if v != "" {
			f.TextColor = v
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if f.TextColor != "" {
			dom.SetStyle(el, "color", f.TextColor)
		}
	},
}

// BackgroundColor is the background-color property of inline content.
var BackgroundColor = styleProperty("background-color", func(f *model.SegmentFormat) *string { return &f.BackgroundColor }, true)

// FontFamily is the font-family property. <font face> is read too.
var FontFamily = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		v := declared(el, "font-family", defaultStyle)
		if v == "" && dom.IsElement(el, "font") {
			v = dom.Attr(el, "face")
		}
		if v != "" {
			f.FontFamily = v
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if f.FontFamily != "" {
			dom.SetStyle(el, "font-family", f.FontFamily)
		}
	},
}

var fontSizeAttr = map[string]string{
	"1": "10px", "2": "13px", "3": "16px", "4": "18px",
	"5": "24px", "6": "32px", "7": "48px",
}

// FontSize is the font-size property. Relative inline sizes are resolved
// against the inherited size already in the format; sizes from a tag default
// are kept as written.
var FontSize = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		v := inline(el, "font-size")
		switch {
		case v == "smaller" || v == "larger" || v == "medium":
		case v != "" && IsRelativeLength(v):
			base := ParseValueWithUnit(f.FontSize, DefaultFontSizePx, "px")
			f.FontSize = FormatPx(ParseValueWithUnit(v, base, "px"))
		case v != "":
			f.FontSize = v
		case dom.IsElement(el, "font") && fontSizeAttr[dom.Attr(el, "size")] != "":
			f.FontSize = fontSizeAttr[dom.Attr(el, "size")]
		default:
			if d := defaultStyle.Get("font-size"); d != "" {
				f.FontSize = d
			}
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if f.FontSize != "" {
			dom.SetStyle(el, "font-size", f.FontSize)
		}
	},
}

// Bold is the font-weight property. "bold" renders as a <b> wrapper.
var Bold = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		if v := declared(el, "font-weight", defaultStyle); v != "" {
			f.FontWeight = v
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		switch f.FontWeight {
		case "":
		case "bold":
			dom.WrapChildren(el, "b")
		default:
			dom.SetStyle(el, "font-weight", f.FontWeight)
		}
	},
}

// IsBoldWeight reports whether a font weight renders bold.
func IsBoldWeight(weight string) bool {
	switch weight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// Italic is the font-style property. Italic renders as an <i> wrapper.
var Italic = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		switch declared(el, "font-style", defaultStyle) {
		case "italic", "oblique":
			f.Italic = model.Bool(true)
		case "normal":
			f.Italic = model.Bool(false)
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if f.Italic == nil {
			return
		}
		if *f.Italic {
			dom.WrapChildren(el, "i")
		} else {
			dom.SetStyle(el, "font-style", "normal")
		}
	},
}

func textDecoration(el *html.Node, defaultStyle dom.Declarations) string {
	v := declared(el, "text-decoration", defaultStyle)
	if line := inline(el, "text-decoration-line"); line != "" {
		v += " " + line
	}
	return v
}

// Underline reads text-decoration. Underline renders as a <u> wrapper.
var Underline = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		if strings.Contains(textDecoration(el, defaultStyle), "underline") {
			f.Underline = model.Bool(true)
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if model.IsTrue(f.Underline) {
			dom.WrapChildren(el, "u")
		}
	},
}

// Strikethrough reads text-decoration. It renders as an <s> wrapper.
var Strikethrough = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		if strings.Contains(textDecoration(el, defaultStyle), "line-through") {
			f.Strikethrough = model.Bool(true)
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if model.IsTrue(f.Strikethrough) {
			dom.WrapChildren(el, "s")
		}
	},
}

// SuperOrSubScript collects nested vertical-align super/sub values. Each
// value renders as a <sup> or <sub> wrapper, outermost first.
var SuperOrSubScript = Handler[model.SegmentFormat]{
	Parse: func(f *model.SegmentFormat, el *html.Node, _ *State, defaultStyle dom.Declarations) {
		switch v := declared(el, "vertical-align", defaultStyle); v {
		case "super", "sub":
			f.SuperOrSubScriptSequence = strings.TrimSpace(f.SuperOrSubScriptSequence + " " + v)
		case "baseline":
			f.SuperOrSubScriptSequence = ""
		}
	},
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		seq := strings.Fields(f.SuperOrSubScriptSequence)
		for i := len(seq) - 1; i >= 0; i-- {
			switch seq[i] {
			case "super":
				dom.WrapChildren(el, "sup")
			case "sub":
				dom.WrapChildren(el, "sub")
			}
		}
	},
}

// ScriptPosition returns the effective super/sub position of a sequence,
// the innermost value.
func ScriptPosition(seq string) string {
	fields := strings.Fields(seq)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// LetterSpacing is the letter-spacing property.
var LetterSpacing = styleProperty("letter-spacing", func(f *model.SegmentFormat) *string { return &f.LetterSpacing }, false)

// SegmentLineHeight is the line-height of inline content.
var SegmentLineHeight = styleProperty("line-height", func(f *model.SegmentFormat) *string { return &f.LineHeight }, false)

// The handlers below parse like Bold, Italic, Underline and Strikethrough
// but apply as inline style, for formats carried by block elements whose
// children are rendered separately.

// BlockBold writes font-weight as a style.
var BlockBold = Handler[model.SegmentFormat]{
	Parse: Bold.Parse,
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if f.FontWeight != "" {
			dom.SetStyle(el, "font-weight", f.FontWeight)
		}
	},
}

// BlockItalic writes font-style as a style.
var BlockItalic = Handler[model.SegmentFormat]{
	Parse: Italic.Parse,
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		switch {
		case f.Italic == nil:
		case *f.Italic:
			dom.SetStyle(el, "font-style", "italic")
		default:
			dom.SetStyle(el, "font-style", "normal")
		}
	},
}

func addDecoration(el *html.Node, line string) {
	current := dom.StyleValue(el, "text-decoration")
	if strings.Contains(current, line) {
		return
	}
	dom.SetStyle(el, "text-decoration", strings.TrimSpace(current+" "+line))
}

// BlockUnderline writes text-decoration as a style.
var BlockUnderline = Handler[model.SegmentFormat]{
	Parse: Underline.Parse,
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if model.IsTrue(f.Underline) {
			addDecoration(el, "underline")
		}
	},
}

// BlockStrikethrough writes text-decoration as a style.
var BlockStrikethrough = Handler[model.SegmentFormat]{
	Parse: Strikethrough.Parse,
	Apply: func(f *model.SegmentFormat, el *html.Node, _ *State) {
		if model.IsTrue(f.Strikethrough) {
			addDecoration(el, "line-through")
		}
	},
}
