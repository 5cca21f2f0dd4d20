package dom2model

import (
	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// ProcessList opens a list level for an <ol> or <ul>. Its items are added
// to the list parent, so nested lists end up flattened next to their
// ancestors' items.
func ProcessList(group model.BlockGroup, el *html.Node, ctx *Context) {
	listType := "UL"
	if dom.IsElement(el, "ol") {
		listType = "OL"
	}
	ctx.Scope(func() {
		ctx.ListDepth = len(ctx.ListFormat.Levels)
		level := model.NewListLevel(listType, model.ListLevelFormat{}, format.Dataset(el))
		ctx.FormatParsers.ListLevel.Parse(&level.Format, el, &ctx.State, nil)
		if d := level.Format.Direction; d != "" {
			ctx.Direction = d
		}

		ctx.ListFormat.Levels = append(ctx.ListFormat.Levels, level)
		ctx.ListFormat.elements = append(ctx.ListFormat.elements, el)
		if ctx.ListFormat.ListParent == nil {
			ctx.ListFormat.ListParent = group
		}
		ctx.FormatParsers.SegmentOnBlock.Parse(&ctx.SegmentFormat, el, &ctx.State, nil)
		ctx.ProcessChildren(group, el)
	})
}

// ProcessListItem adds a list item carrying copies of the open levels. An
// <li> outside of any list is parsed as a plain block.
func ProcessListItem(group model.BlockGroup, el *html.Node, ctx *Context) {
	levels := ctx.ListFormat.Levels
	if len(levels) == 0 {
		ctx.ElementProcessors[ProcessorBlock](group, el, ctx)
		return
	}
	parent := ctx.ListFormat.ListParent
	if parent == nil {
		parent = group
	}

	ctx.Scope(func() {
		ctx.FormatParsers.SegmentOnBlock.Parse(&ctx.SegmentFormat, el, &ctx.State, nil)
		item := model.NewListItem(levels, ctx.SegmentFormat)
		ctx.FormatParsers.ListItemElement.Parse(&item.Format, el, &ctx.State, nil)
		model.AddBlock(parent, item)

		ctx.cache(item, el)
		for i, level := range item.Levels {
			if i < len(ctx.ListFormat.elements) {
				ctx.cache(level, ctx.ListFormat.elements[i])
			}
		}

		// Only the first item of a list restarts numbering.
		innermost := levels[len(levels)-1]
		innermost.Format.StartNumberOverride = 0
		if innermost.ListType == "OL" {
			ctx.CountListItem(len(levels) - 1)
		}

		if d := item.Format.Direction; d != "" {
			ctx.Direction = d
		}
		ctx.BlockFormat = model.BlockFormat{}
		ctx.ProcessChildren(item, el)
	})
}
