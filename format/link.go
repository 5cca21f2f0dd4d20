package format

import (
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// Link reads the anchor attributes, its color and its underline.
var Link = Handler[model.LinkFormat]{
	Parse: func(f *model.LinkFormat, el *html.Node, _ *State, _ dom.Declarations) {
		for _, a := range []struct {
			key    string
			target *string
		}{
			{"href", &f.Href}, {"target", &f.Target}, {"title", &f.Title},
			{"name", &f.Name}, {"rel", &f.Rel},
		} {
			if v := dom.Attr(el, a.key); v != "" {
				*a.target = v
			}
		}
		if v := inline(el, "color"); v != "" {
			f.TextColor = v
		}
		switch decoration := inline(el, "text-decoration"); {
		case strings.Contains(decoration, "underline"):
			f.Underline = model.Bool(true)
		case decoration == "none":
			f.Underline = model.Bool(false)
		}
	},
	Apply: func(f *model.LinkFormat, el *html.Node, _ *State) {
		for _, a := range []struct{ key, value string }{
			{"href", f.Href}, {"target", f.Target}, {"title", f.Title},
			{"name", f.Name}, {"rel", f.Rel},
		} {
			if a.value != "" {
				dom.SetAttr(el, a.key, a.value)
			}
		}
		if f.TextColor != "" {
			dom.SetStyle(el, "color", f.TextColor)
		}
		if f.Underline != nil {
			if *f.Underline {
				dom.SetStyle(el, "text-decoration", "underline")
			} else {
				dom.SetStyle(el, "text-decoration", "none")
			}
		}
	},
}

// CodeFontFamily is the font of inline code. The monospace default is not
// stored.
var CodeFontFamily = Handler[model.CodeFormat]{
	Parse: func(f *model.CodeFormat, el *html.Node, _ *State, _ dom.Declarations) {
		if v := inline(el, "font-family"); v != "" && v != "monospace" {
			f.FontFamily = v
		}
	},
	Apply: func(f *model.CodeFormat, el *html.Node, _ *State) {
		if f.FontFamily != "" {
			dom.SetStyle(el, "font-family", f.FontFamily)
		}
	},
}

// Entity reads the entity classes of a wrapper.
var Entity = Handler[model.EntityFormat]{
	Parse: func(f *model.EntityFormat, el *html.Node, _ *State, _ dom.Declarations) {
		if info, ok := dom.ParseEntity(el); ok {
			f.EntityType = info.Type
			f.ID = info.ID
			f.IsReadonly = info.IsReadonly
		}
	},
	Apply: func(f *model.EntityFormat, el *html.Node, _ *State) {
		if f.EntityType != "" {
			dom.MarkEntity(el, dom.EntityInfo{Type: f.EntityType, ID: f.ID, IsReadonly: f.IsReadonly})
		}
	},
}
