// Package format converts between element styles and model formats.
//
// A Handler reads one group of CSS-like properties from an element into a
// format value (Parse) and writes it back (Apply). Handlers are bound to the
// category formats embedding their property group with Bind, and each
// category has an ordered Chain of named parts. Chains run in order, each part
// mutating the shared format value in place; a later part may overwrite what
// an earlier one wrote.
//
// Handlers never fail. A missing or unparseable value is left unset.
package format

import (
	"github.com/cozy/contentmodel-go/dom"
	"golang.org/x/net/html"
)

// State is the part of the parser or renderer state handlers can consult.
type State struct {
	// Direction is the text direction inherited by the element being
	// processed, "" meaning ltr.
	Direction string
	// ListDepth is the depth, from 0, of the list level being processed.
	ListDepth int
	// ListThread holds the number of items seen at each list depth. It
	// threads numbering across lists that are not adjacent.
	ListThread []int
}

// ParseFunc reads an element into a format value. defaultStyle holds the
// declarations implied by the element's tag.
type ParseFunc[T any] func(f *T, el *html.Node, st *State, defaultStyle dom.Declarations)

// ApplyFunc writes a format value onto an element.
type ApplyFunc[T any] func(f *T, el *html.Node, st *State)

// Handler is a parse/apply pair for one property group. Either side may be
// nil.
type Handler[T any] struct {
	Parse ParseFunc[T]
	Apply ApplyFunc[T]
}

// Part is a named handler working on a category format C.
type Part[C any] struct {
	Name  string
	Parse ParseFunc[C]
	Apply ApplyFunc[C]
}

// Bind projects a handler on T onto the category format C.
func Bind[C, T any](name string, h Handler[T], get func(*C) *T) Part[C] {
	part := Part[C]{Name: name}
	if h.Parse != nil {
		part.Parse = func(f *C, el *html.Node, st *State, defaultStyle dom.Declarations) {
			h.Parse(get(f), el, st, defaultStyle)
		}
	}
	if h.Apply != nil {
		part.Apply = func(f *C, el *html.Node, st *State) {
			h.Apply(get(f), el, st)
		}
	}
	return part
}

func self[T any](f *T) *T { return f }

// Chain is an ordered list of parts for one category.
type Chain[C any] []Part[C]

// Parse runs every parser of the chain, in order.
func (c Chain[C]) Parse(f *C, el *html.Node, st *State, defaultStyle dom.Declarations) {
	if st == nil {
		st = &State{}
	}
	for _, part := range c {
		if part.Parse != nil {
			part.Parse(f, el, st, defaultStyle)
		}
	}
}

// Apply runs every applier of the chain, in order.
func (c Chain[C]) Apply(f *C, el *html.Node, st *State) {
	if st == nil {
		st = &State{}
	}
	for _, part := range c {
		if part.Apply != nil {
			part.Apply(f, el, st)
		}
	}
}

// Names lists the part names, in order.
func (c Chain[C]) Names() []string {
	names := make([]string, len(c))
	for i, part := range c {
		names[i] = part.Name
	}
	return names
}

// With returns a copy of the chain with parts appended.
func (c Chain[C]) With(parts ...Part[C]) Chain[C] {
	result := make(Chain[C], 0, len(c)+len(parts))
	result = append(result, c...)
	return append(result, parts...)
}

// Without returns a copy of the chain without the named parts.
func (c Chain[C]) Without(names ...string) Chain[C] {
	result := make(Chain[C], 0, len(c))
	for _, part := range c {
		skip := false
		for _, name := range names {
			if part.Name == name {
				skip = true
				break
			}
		}
		if !skip {
			result = append(result, part)
		}
	}
	return result
}

// Override returns a copy of the chain where the part with the same name is
// replaced. A part with an unknown name is appended.
func (c Chain[C]) Override(part Part[C]) Chain[C] {
	result := c.With()
	for i := range result {
		if result[i].Name == part.Name {
			result[i] = part
			return result
		}
	}
	return append(result, part)
}
