// Package dom2model parses an HTML tree into a Content Model document.
//
// Parsing walks the tree depth first. Each element is dispatched by tag to an
// ElementProcessor, which reads formats through the chains of the context and
// adds blocks and segments to the current group. The context carries the
// format inherited from ancestors, the open list levels and the selection
// being stamped onto the produced nodes.
package dom2model

import (
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// ElementProcessor adds the model of a DOM node to a group.
type ElementProcessor func(group model.BlockGroup, node *html.Node, ctx *Context)

// Keys of the processors that are not bound to a tag.
const (
	ProcessorElement = "#element"
	ProcessorChild   = "#child"
	ProcessorText    = "#text"
	ProcessorEntity  = "#entity"
	ProcessorGeneral = "#general"
	ProcessorBlock   = "#block"
	ProcessorFormat  = "#format"
)

// Selection is the DOM selection stamped onto the parsed model.
type Selection interface {
	isSelection()
}

// RangeSelection is a text selection between two boundary points.
type RangeSelection struct {
	Range *dom.Range
}

// TableSelection is a rectangle of cells in a table element, in grid
// coordinates.
type TableSelection struct {
	Table       *html.Node
	FirstRow    int
	FirstColumn int
	LastRow     int
	LastColumn  int
}

// ImageSelection selects a single image element.
type ImageSelection struct {
	Image *html.Node
}

func (RangeSelection) isSelection() {}
func (TableSelection) isSelection() {}
func (ImageSelection) isSelection() {}

// ListFormat is the list state of the parser.
type ListFormat struct {
	// Levels are the lists open around the current node, outermost first.
	Levels []*model.ListLevel
	// ListParent is the group receiving list items. Nested lists are
	// flattened into it.
	ListParent model.BlockGroup

	elements []*html.Node
}

// DomIndexer is notified of the DOM nodes backing parsed content, so that a
// caller can map later DOM changes back to the model.
type DomIndexer interface {
	OnParagraph(el *html.Node, paragraph *model.Paragraph)
	OnSegment(node *html.Node, paragraph *model.Paragraph, segments []model.Segment)
	OnTable(el *html.Node, table *model.Table)
}

// Option customises a parser context. Options are applied in order.
type Option struct {
	// AdditionalFormatParsers are appended to the default chains.
	AdditionalFormatParsers *format.Chains
	// FormatParserOverride replaces default handlers by name.
	FormatParserOverride *format.Chains
	// ProcessorOverride replaces processors by tag or processor key.
	ProcessorOverride map[string]ElementProcessor
	// AdditionalAllowedTags are parsed even when disallowed by default.
	AdditionalAllowedTags []string
	// AdditionalDisallowedTags are skipped with their subtree.
	AdditionalDisallowedTags []string
	// AllowCacheElement records the element backing each block in the
	// document cache so the reconciler can reuse it.
	AllowCacheElement bool
	// DefaultFormat is the document default segment format.
	DefaultFormat *model.SegmentFormat
	DomIndexer    DomIndexer
}

// DefaultDisallowedTags are skipped, subtree included.
var DefaultDisallowedTags = []string{
	"script", "style", "head", "meta", "title", "link", "template", "noscript",
	"iframe", "object", "embed", "xml",
}

// Context is the mutable state of a parse.
type Context struct {
	format.State

	// Inherited formats.
	SegmentFormat model.SegmentFormat
	BlockFormat   model.BlockFormat
	Link          *model.Link
	Code          *model.CodeDecorator
	ListFormat    ListFormat

	// Selection stamping.
	Selection     Selection
	IsInSelection bool

	FormatParsers     *format.Chains
	ElementProcessors map[string]ElementProcessor
	DomIndexer        DomIndexer
	DefaultFormat     model.SegmentFormat
	AllowCacheElement bool
	Cache             *model.ElementCache

	disallowed map[string]bool
	inCode     bool
}

// NewContext creates a parser context with the default processors and
// chains, customised by options.
func NewContext(selection Selection, options ...Option) *Context {
	ctx := &Context{
		Selection:         selection,
		FormatParsers:     format.DefaultChains(),
		ElementProcessors: DefaultProcessors(),
		disallowed:        map[string]bool{},
	}
	for _, tag := range DefaultDisallowedTags {
		ctx.disallowed[tag] = true
	}
	for _, opt := range options {
		ctx.FormatParsers.Extend(opt.AdditionalFormatParsers)
		ctx.FormatParsers.Override(opt.FormatParserOverride)
		for key, p := range opt.ProcessorOverride {
			ctx.ElementProcessors[key] = p
		}
		for _, tag := range opt.AdditionalAllowedTags {
			delete(ctx.disallowed, strings.ToLower(tag))
		}
		for _, tag := range opt.AdditionalDisallowedTags {
			ctx.disallowed[strings.ToLower(tag)] = true
		}
		if opt.AllowCacheElement {
			ctx.AllowCacheElement = true
		}
		if opt.DefaultFormat != nil {
			ctx.DefaultFormat = *opt.DefaultFormat
		}
		if opt.DomIndexer != nil {
			ctx.DomIndexer = opt.DomIndexer
		}
	}
	return ctx
}

// IsDisallowed reports whether a tag is skipped.
func (ctx *Context) IsDisallowed(tag string) bool {
	return ctx.disallowed[tag]
}

// Scope runs fn and restores the inherited formats, list state and
// direction that fn may change. The selection flag is not restored: it
// follows the selection boundaries crossed by fn.
func (ctx *Context) Scope(fn func()) {
	segment := ctx.SegmentFormat
	block := ctx.BlockFormat
	link := ctx.Link
	code := ctx.Code
	list := ctx.ListFormat
	list.Levels = append([]*model.ListLevel(nil), list.Levels...)
	list.elements = append([]*html.Node(nil), list.elements...)
	direction := ctx.Direction
	depth := ctx.ListDepth
	inCode := ctx.inCode

	fn()

	ctx.SegmentFormat = segment
	ctx.BlockFormat = block
	ctx.Link = link
	ctx.Code = code
	ctx.ListFormat = list
	ctx.Direction = direction
	ctx.ListDepth = depth
	ctx.inCode = inCode
}

// ProcessChildren runs the child processor on a node.
func (ctx *Context) ProcessChildren(group model.BlockGroup, node *html.Node) {
	ctx.ElementProcessors[ProcessorChild](group, node, ctx)
}

// ProcessNode dispatches a single node to the element or text processor.
func (ctx *Context) ProcessNode(group model.BlockGroup, node *html.Node) {
	switch node.Type {
	case html.ElementNode:
		ctx.ElementProcessors[ProcessorElement](group, node, ctx)
	case html.TextNode:
		ctx.ElementProcessors[ProcessorText](group, node, ctx)
	}
}

// WhiteSpacePreserved reports whether text is kept as written.
func (ctx *Context) WhiteSpacePreserved() bool {
	return ctx.inCode || strings.HasPrefix(ctx.BlockFormat.WhiteSpace, "pre")
}

// cache records the element backing a node when caching is allowed.
func (ctx *Context) cache(node interface{}, el *html.Node) {
	if ctx.AllowCacheElement && ctx.Cache != nil {
		ctx.Cache.Set(node, el)
	}
}

// inheritable keeps the block properties that flow into nested blocks.
func inheritable(f model.BlockFormat) model.BlockFormat {
	return model.BlockFormat{
		DirectionFormat:  f.DirectionFormat,
		TextAlignFormat:  f.TextAlignFormat,
		LineHeightFormat: f.LineHeightFormat,
		WhiteSpaceFormat: f.WhiteSpaceFormat,
	}
}
