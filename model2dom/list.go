package model2dom

import (
	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// closeLists drops the stack entries from keep on. The children of reused
// list elements that were not reconciled are stale and removed. keep == 0
// clears the stack.
func (ctx *Context) closeLists(keep int) {
	stack := ctx.ListFormat.NodeStack
	for i := len(stack) - 1; i >= max(keep, 1); i-- {
		entry := stack[i]
		if !entry.reused {
			continue
		}
		for n := entry.RefNode; n != nil && n.Parent == entry.Node; {
			next := n.NextSibling
			entry.Node.RemoveChild(n)
			ctx.removed(n)
			n = next
		}
		entry.RefNode = nil
	}
	if keep == 0 {
		ctx.ListFormat.NodeStack = nil
	} else if len(stack) > keep {
		ctx.ListFormat.NodeStack = stack[:keep]
	}
}

// sameList reports whether an open list element can hold a level of the
// next item.
func sameList(entry *ListStackEntry, level *model.ListLevel) bool {
	if entry.ListType != level.ListType || entry.EditingInfo != level.Dataset[format.EditingInfoKey] {
		return false
	}
	return level.ListType != "OL" || level.Format.StartNumberOverride == 0
}

func listTag(listType string) string {
	if listType == "OL" {
		return "ol"
	}
	return "ul"
}

// HandleList opens the list elements of an item. The open lists matching
// the item's outer levels are kept, the others are closed and new ones are
// created (or reused from the cache) for the remaining levels. It returns
// the next node of parent to reconcile.
func HandleList(parent *html.Node, item *model.ListItem, ctx *Context, refNode *html.Node) *html.Node {
	if len(ctx.ListFormat.NodeStack) == 0 {
		ctx.ListFormat.NodeStack = []*ListStackEntry{{Node: parent}}
	}
	ctx.ListFormat.NodeStack[0].RefNode = refNode

	layer := 0
	for ; layer < len(item.Levels) && layer+1 < len(ctx.ListFormat.NodeStack); layer++ {
		if !sameList(ctx.ListFormat.NodeStack[layer+1], item.Levels[layer]) {
			break
		}
	}
	ctx.closeLists(layer + 1)

	for ; layer < len(item.Levels); layer++ {
		level := item.Levels[layer]
		last := ctx.ListFormat.NodeStack[len(ctx.ListFormat.NodeStack)-1]
		entry := &ListStackEntry{
			ListType:    level.ListType,
			EditingInfo: level.Dataset[format.EditingInfoKey],
		}
		ctx.ListDepth = layer

		if list := ctx.Cache.Get(level); list != nil && !ctx.usedLists[list] && dom.IsElement(list, listTag(level.ListType)) {
			// The element is unchanged but the numbering thread may have
			// moved.
			dom.RemoveAttr(list, "start")
			format.StartNumber.Apply(&level.Format, list, &ctx.State)
			last.RefNode = reuseCachedElement(last.Node, list, last.RefNode, ctx)
			entry.Node = list
			entry.RefNode = list.FirstChild
			entry.reused = true
		} else {
			list = dom.NewElement(listTag(level.ListType))
			ctx.FormatAppliers.ListLevel.Apply(&level.Format, list, &ctx.State)
			format.ApplyListMetadata(level, list, &ctx.State)
			format.ApplyDataset(level.Dataset, list)
			dom.InsertBefore(last.Node, list, last.RefNode)
			if layer == 0 {
				ctx.added(list)
			}
			ctx.Cache.Set(level, list)
			entry.Node = list
		}
		ctx.usedLists[entry.Node] = true
		ctx.ListFormat.NodeStack = append(ctx.ListFormat.NodeStack, entry)
	}
	return ctx.ListFormat.NodeStack[0].RefNode
}

func handleListItemBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	return HandleListItem(parent, block.(*model.ListItem), ctx, refNode)
}

// HandleListItem renders a list item as an <li> in its innermost list. An
// item without levels is unwrapped: its blocks are rendered in place, and
// its implicit paragraphs become explicit so each keeps its own line.
func HandleListItem(parent *html.Node, item *model.ListItem, ctx *Context, refNode *html.Node) *html.Node {
	if len(item.Levels) == 0 {
		ctx.closeLists(0)
		for _, block := range item.Blocks {
			if p, ok := block.(*model.Paragraph); ok && p.IsImplicit {
				ctx.Cache.Invalidate(p)
				p.IsImplicit = false
			}
			refNode = HandleBlock(parent, block, ctx, refNode)
		}
		return refNode
	}

	refNode = HandleList(parent, item, ctx, refNode)
	top := ctx.ListFormat.NodeStack[len(ctx.ListFormat.NodeStack)-1]

	li := ctx.Cache.Get(item)
	if li != nil && li.Parent == top.Node {
		top.RefNode = reuseCachedElement(top.Node, li, top.RefNode, ctx)
	} else {
		li = dom.NewElement("li")
		if item.FormatHolder != nil {
			ctx.FormatAppliers.SegmentOnBlock.Apply(&item.FormatHolder.Format, li, &ctx.State)
		}
		ctx.FormatAppliers.ListItemElement.Apply(&item.Format, li, &ctx.State)
		dom.InsertBefore(top.Node, li, top.RefNode)
		ctx.Cache.Set(item, li)
	}

	depth := len(item.Levels) - 1
	if item.Levels[depth].ListType == "OL" {
		ctx.CountListItem(depth)
	}

	HandleBlockGroupChildren(li, item, ctx)
	return refNode
}
