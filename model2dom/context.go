// Package model2dom renders a Content Model document into an HTML tree.
//
// Rendering is a reconciliation: the children of the target element are
// walked along with the blocks of the group, elements recorded in the
// document cache are moved into place instead of being created again, and
// whatever the model no longer holds is removed. The context collects the
// elements added and removed, and the DOM selection matching the selected
// part of the model.
package model2dom

import (
	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// BlockHandler renders a block into parent before refNode and returns the
// next DOM sibling that has not been reconciled yet.
type BlockHandler func(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node

// SegmentHandler renders a segment into parent before refNode. A nil refNode
// appends.
type SegmentHandler func(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node)

// Keys of the block handlers. Block groups are keyed by their group type,
// other blocks by their block type.
const (
	HandlerParagraph       = string(model.BlockTypeParagraph)
	HandlerTable           = string(model.BlockTypeTable)
	HandlerDivider         = string(model.BlockTypeDivider)
	HandlerEntity          = string(model.BlockTypeEntity)
	HandlerListItem        = string(model.GroupListItem)
	HandlerGeneral         = string(model.GroupGeneral)
	HandlerFormatContainer = string(model.GroupFormatContainer)
	HandlerCode            = string(model.GroupCode)
)

// ListStackEntry is one open list element while rendering list items. The
// first entry of a stack is the parent of the outermost list.
type ListStackEntry struct {
	Node     *html.Node
	ListType string
	// EditingInfo is the numbering metadata of the level, compared to
	// decide whether a following item can share the element.
	EditingInfo string
	// RefNode is the next child of Node to reconcile.
	RefNode *html.Node
	reused  bool
}

// ListFormat is the list state of the renderer.
type ListFormat struct {
	NodeStack []*ListStackEntry
}

// DomModification lists the block elements inserted and removed while
// rendering.
type DomModification struct {
	AddedBlockElements   []*html.Node
	RemovedBlockElements []*html.Node
}

// Option customises a renderer context.
type Option struct {
	// AdditionalFormatAppliers are appended to the default chains.
	AdditionalFormatAppliers *format.Chains
	// FormatApplierOverride replaces default handlers by name.
	FormatApplierOverride *format.Chains
	// BlockHandlerOverride replaces block handlers by key.
	BlockHandlerOverride map[string]BlockHandler
	// SegmentHandlerOverride replaces segment handlers by segment type.
	SegmentHandlerOverride map[model.SegmentType]SegmentHandler
}

// Context is the mutable state of a render.
type Context struct {
	format.State

	FormatAppliers  *format.Chains
	BlockHandlers   map[string]BlockHandler
	SegmentHandlers map[model.SegmentType]SegmentHandler
	ListFormat      ListFormat
	DomModification DomModification
	// Cache holds the elements that can be reused. It defaults to the cache
	// of the rendered document.
	Cache *model.ElementCache
	// Selection is the DOM selection of the rendered model, set by
	// ContentModelToDOM: a range, an image or a rectangle of table cells.
	Selection dom2model.Selection

	rangeStart *dom.Position
	rangeEnd   *dom.Position
	image      *html.Node
	table      *dom2model.TableSelection
	usedLists  map[*html.Node]bool
}

// NewContext creates a renderer context with the default handlers and
// chains, customised by options.
func NewContext(options ...Option) *Context {
	ctx := &Context{
		FormatAppliers:  format.DefaultChains(),
		BlockHandlers:   DefaultBlockHandlers(),
		SegmentHandlers: DefaultSegmentHandlers(),
		usedLists:       map[*html.Node]bool{},
	}
	for _, opt := range options {
		ctx.FormatAppliers.Extend(opt.AdditionalFormatAppliers)
		ctx.FormatAppliers.Override(opt.FormatApplierOverride)
		for key, h := range opt.BlockHandlerOverride {
			ctx.BlockHandlers[key] = h
		}
		for key, h := range opt.SegmentHandlerOverride {
			ctx.SegmentHandlers[key] = h
		}
	}
	return ctx
}

// DefaultBlockHandlers returns a fresh map of the built-in block handlers.
func DefaultBlockHandlers() map[string]BlockHandler {
	return map[string]BlockHandler{
		HandlerParagraph:       handleParagraphBlock,
		HandlerTable:           handleTableBlock,
		HandlerDivider:         handleDividerBlock,
		HandlerEntity:          handleEntityBlock,
		HandlerListItem:        handleListItemBlock,
		HandlerGeneral:         handleGeneralBlock,
		HandlerFormatContainer: handleFormatContainerBlock,
		HandlerCode:            handleCodeBlock,
	}
}

// DefaultSegmentHandlers returns a fresh map of the built-in segment
// handlers.
func DefaultSegmentHandlers() map[model.SegmentType]SegmentHandler {
	return map[model.SegmentType]SegmentHandler{
		model.SegmentText:            HandleText,
		model.SegmentBr:              HandleBr,
		model.SegmentImage:           HandleImage,
		model.SegmentSelectionMarker: HandleSelectionMarker,
		model.SegmentGeneral:         HandleGeneralSegment,
		model.SegmentEntity:          HandleEntitySegment,
	}
}

// selectRange extends the recorded range selection to cover start..end.
func (ctx *Context) selectRange(start, end dom.Position) {
	if ctx.rangeStart == nil {
		ctx.rangeStart = &start
	}
	ctx.rangeEnd = &end
}

// selectCell extends the recorded table selection with a cell.
func (ctx *Context) selectCell(table *html.Node, r, c int) {
	if ctx.table == nil || ctx.table.Table != table {
		if ctx.table != nil {
			return
		}
		ctx.table = &dom2model.TableSelection{Table: table, FirstRow: r, FirstColumn: c, LastRow: r, LastColumn: c}
		return
	}
	ctx.table.FirstRow = min(ctx.table.FirstRow, r)
	ctx.table.FirstColumn = min(ctx.table.FirstColumn, c)
	ctx.table.LastRow = max(ctx.table.LastRow, r)
	ctx.table.LastColumn = max(ctx.table.LastColumn, c)
}

// rangeSelection returns the recorded range, or nil.
func (ctx *Context) rangeSelection() *dom.Range {
	if ctx.rangeStart == nil {
		return nil
	}
	return &dom.Range{Start: *ctx.rangeStart, End: *ctx.rangeEnd}
}

// resolveSelection sets Selection from what was recorded. Table selections
// win over image selections, which win over ranges.
func (ctx *Context) resolveSelection() {
	switch {
	case ctx.table != nil:
		ctx.Selection = *ctx.table
	case ctx.image != nil:
		ctx.Selection = dom2model.ImageSelection{Image: ctx.image}
	case ctx.rangeStart != nil:
		ctx.Selection = dom2model.RangeSelection{Range: ctx.rangeSelection()}
	default:
		ctx.Selection = nil
	}
}

func (ctx *Context) added(el *html.Node) {
	ctx.DomModification.AddedBlockElements = append(ctx.DomModification.AddedBlockElements, el)
}

func (ctx *Context) removed(el *html.Node) {
	ctx.DomModification.RemovedBlockElements = append(ctx.DomModification.RemovedBlockElements, el)
}

// positionBefore returns the boundary point before ref in parent, or the end
// of parent when ref is nil.
func positionBefore(parent, ref *html.Node) dom.Position {
	if ref == nil || ref.Parent != parent {
		return dom.Position{Node: parent, Offset: dom.ChildCount(parent)}
	}
	return dom.Position{Node: parent, Offset: dom.ChildIndex(ref)}
}
