package model2dom

import (
	"unicode/utf8"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// HandleBlockGroupChildren reconciles the children of parent with the blocks
// of a group. DOM children left over once every block is rendered are
// removed.
func HandleBlockGroupChildren(parent *html.Node, group model.BlockGroup, ctx *Context) {
	stack := ctx.ListFormat.NodeStack
	ctx.ListFormat.NodeStack = nil
	defer func() { ctx.ListFormat.NodeStack = stack }()

	refNode := parent.FirstChild
	for i, block := range group.ChildBlocks() {
		// Consecutive list items share their list elements.
		if i == 0 || !model.IsGroupOfType(block, model.GroupListItem) {
			ctx.closeLists(0)
		}
		refNode = HandleBlock(parent, block, ctx, refNode)
	}
	ctx.closeLists(0)

	for refNode != nil {
		next := refNode.NextSibling
		parent.RemoveChild(refNode)
		ctx.removed(refNode)
		refNode = next
	}
}

// HandleBlock renders a block with the handler registered for its type.
func HandleBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	key := string(block.BlockType())
	if group, ok := model.AsBlockGroup(block); ok {
		key = string(group.BlockGroupType())
	}
	if h, ok := ctx.BlockHandlers[key]; ok {
		return h(parent, block, ctx, refNode)
	}
	logger.L().Debug("no block handler", zap.String("type", key))
	return refNode
}

// HandleSegment renders a segment with the handler registered for its type.
func HandleSegment(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node) {
	if h, ok := ctx.SegmentHandlers[segment.SegmentType()]; ok {
		h(parent, segment, ctx, refNode)
	}
}

// reuseCachedElement moves a cached element to the position of refNode and
// returns the next node to reconcile. Nodes met before the element are
// stale and removed, except entity wrappers which keep their place until
// the end of the group.
func reuseCachedElement(parent, element, refNode *html.Node, ctx *Context) *html.Node {
	if element.Parent == parent {
		for refNode != nil && refNode != element && !isEntity(refNode) {
			next := refNode.NextSibling
			parent.RemoveChild(refNode)
			ctx.removed(refNode)
			refNode = next
		}
		if refNode == element {
			return refNode.NextSibling
		}
	}
	dom.InsertBefore(parent, element, refNode)
	return refNode
}

func isEntity(n *html.Node) bool {
	_, ok := dom.ParseEntity(n)
	return ok
}

// insertBlock inserts a new block element.
func insertBlock(parent, el, refNode *html.Node, ctx *Context) {
	dom.InsertBefore(parent, el, refNode)
	ctx.added(el)
}

// selectNode records a range around an element child of its parent.
func (ctx *Context) selectNode(n *html.Node) {
	if n.Parent == nil {
		return
	}
	i := dom.ChildIndex(n)
	ctx.selectRange(dom.Position{Node: n.Parent, Offset: i}, dom.Position{Node: n.Parent, Offset: i + 1})
}

func handleParagraphBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	return HandleParagraph(parent, block.(*model.Paragraph), ctx, refNode)
}

func hasSelectedSegment(p *model.Paragraph) bool {
	for _, s := range p.Segments {
		if s.Selected() {
			return true
		}
	}
	return false
}

// IsInlineParagraph reports whether a paragraph renders its segments
// without a wrapper element.
func IsInlineParagraph(p *model.Paragraph) bool {
	return p.IsImplicit && p.Decorator == nil && p.SegmentFormat == nil && p.Format == model.BlockFormat{}
}

// HandleParagraph renders a paragraph. A cached paragraph is reused as is
// unless it holds the selection, which has to be recorded again.
func HandleParagraph(parent *html.Node, paragraph *model.Paragraph, ctx *Context, refNode *html.Node) *html.Node {
	if el := ctx.Cache.Get(paragraph); el != nil && !hasSelectedSegment(paragraph) {
		return reuseCachedElement(parent, el, refNode, ctx)
	}

	if IsInlineParagraph(paragraph) {
		for _, segment := range paragraph.Segments {
			if e, ok := segment.(*model.Entity); ok && e.Wrapper != nil && e.Wrapper == refNode {
				refNode = refNode.NextSibling
			}
			HandleSegment(parent, segment, ctx, refNode)
		}
		return refNode
	}

	tag := "div"
	if paragraph.Decorator != nil && paragraph.Decorator.TagName != "" {
		tag = paragraph.Decorator.TagName
	}
	el := dom.NewElement(tag)
	ctx.FormatAppliers.Block.Apply(&paragraph.Format, el, &ctx.State)
	if paragraph.SegmentFormat != nil {
		ctx.FormatAppliers.SegmentOnBlock.Apply(paragraph.SegmentFormat, el, &ctx.State)
	}
	insertBlock(parent, el, refNode, ctx)

	for _, segment := range paragraph.Segments {
		HandleSegment(el, segment, ctx, nil)
	}
	ctx.Cache.Set(paragraph, el)
	return refNode
}

// wrapDecorators puts inner into <code> and <a> elements for the decorators
// of a segment, innermost first.
func wrapDecorators(inner *html.Node, link *model.Link, code *model.CodeDecorator, ctx *Context) *html.Node {
	if code != nil {
		el := dom.NewElement("code")
		el.AppendChild(inner)
		ctx.FormatAppliers.Code.Apply(&code.Format, el, &ctx.State)
		inner = el
	}
	if link != nil {
		a := dom.NewElement("a")
		a.AppendChild(inner)
		ctx.FormatAppliers.Link.Apply(&link.Format, a, &ctx.State)
		format.ApplyDataset(link.Dataset, a)
		inner = a
	}
	return inner
}

// wrapFormat puts inner into a <span> carrying a segment format.
func wrapFormat(inner *html.Node, f *model.SegmentFormat, ctx *Context) *html.Node {
	span := dom.NewElement("span")
	span.AppendChild(inner)
	ctx.FormatAppliers.Segment.Apply(f, span, &ctx.State)
	return span
}

func hasSegmentFormat(f model.SegmentFormat) bool {
	return !model.SameSegmentFormat(f, model.SegmentFormat{})
}

// HandleText renders a text segment as a <span>.
func HandleText(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node) {
	t := segment.(*model.Text)
	txt := dom.NewText(t.Text)
	dom.InsertBefore(parent, wrapFormat(wrapDecorators(txt, t.Link, t.Code, ctx), &t.Format, ctx), refNode)
	if t.IsSelected {
		ctx.selectRange(dom.Position{Node: txt}, dom.Position{Node: txt, Offset: utf8.RuneCountInString(t.Text)})
	}
}

// HandleBr renders a line break.
func HandleBr(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node) {
	br := segment.(*model.Br)
	node := wrapDecorators(dom.NewElement("br"), br.Link, nil, ctx)
	if hasSegmentFormat(br.Format) {
		node = wrapFormat(node, &br.Format, ctx)
	}
	dom.InsertBefore(parent, node, refNode)
	if br.IsSelected {
		ctx.selectNode(node)
	}
}

// HandleImage renders an image. A <span> carries its segment format when
// it has one.
func HandleImage(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node) {
	image := segment.(*model.Image)
	img := dom.NewElement("img")
	dom.SetAttr(img, "src", image.Src)
	if image.Alt != "" {
		dom.SetAttr(img, "alt", image.Alt)
	}
	if image.Title != "" {
		dom.SetAttr(img, "title", image.Title)
	}
	ctx.FormatAppliers.Image.Apply(&image.Format, img, &ctx.State)
	format.ApplyDataset(image.Dataset, img)

	node := wrapDecorators(img, image.Link, nil, ctx)
	if hasSegmentFormat(image.Format.SegmentFormat) {
		node = wrapFormat(node, &image.Format.SegmentFormat, ctx)
	}
	dom.InsertBefore(parent, node, refNode)

	if image.IsSelectedAsImageSelection {
		ctx.image = img
	}
	if image.IsSelected {
		ctx.selectNode(node)
	}
}

// HandleSelectionMarker renders nothing. A selected marker records a
// collapsed position.
func HandleSelectionMarker(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node) {
	if segment.Selected() {
		pos := positionBefore(parent, refNode)
		ctx.selectRange(pos, pos)
	}
}

// HandleGeneralSegment renders a copy of the wrapped element with its
// content.
func HandleGeneralSegment(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node) {
	general := segment.(*model.GeneralSegment)
	el := cloneOr(general.Element, "span")
	HandleBlockGroupChildren(el, general, ctx)

	node := wrapDecorators(el, general.Link, nil, ctx)
	if hasSegmentFormat(general.Format) {
		node = wrapFormat(node, &general.Format, ctx)
	}
	dom.InsertBefore(parent, node, refNode)
	if general.IsSelected {
		ctx.selectNode(node)
	}
}

// HandleEntitySegment moves the wrapper of an inline entity into place.
func HandleEntitySegment(parent *html.Node, segment model.Segment, ctx *Context, refNode *html.Node) {
	entity := segment.(*model.Entity)
	if entity.Wrapper == nil {
		return
	}
	ctx.FormatAppliers.Entity.Apply(&entity.Entity, entity.Wrapper, &ctx.State)
	dom.InsertBefore(parent, entity.Wrapper, refNode)
	if entity.IsSelected {
		ctx.selectNode(entity.Wrapper)
	}
}

func handleEntityBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	entity := block.(*model.Entity)
	if entity.Wrapper == nil {
		return refNode
	}
	ctx.FormatAppliers.Entity.Apply(&entity.Entity, entity.Wrapper, &ctx.State)
	refNode = reuseCachedElement(parent, entity.Wrapper, refNode, ctx)
	if entity.IsSelected {
		ctx.selectNode(entity.Wrapper)
	}
	return refNode
}

func handleDividerBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	divider := block.(*model.Divider)
	el := ctx.Cache.Get(divider)
	if el != nil {
		refNode = reuseCachedElement(parent, el, refNode, ctx)
	} else {
		tag := divider.TagName
		if tag == "" {
			tag = "hr"
		}
		el = dom.NewElement(tag)
		ctx.FormatAppliers.Divider.Apply(&divider.Format, el, &ctx.State)
		insertBlock(parent, el, refNode, ctx)
		ctx.Cache.Set(divider, el)
	}
	if divider.IsSelected {
		ctx.selectNode(el)
	}
	return refNode
}

func handleFormatContainerBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	container := block.(*model.FormatContainer)
	if len(container.Blocks) == 0 {
		return refNode
	}
	el := ctx.Cache.Get(container)
	if el != nil {
		refNode = reuseCachedElement(parent, el, refNode, ctx)
	} else {
		tag := container.TagName
		if tag == "" {
			tag = "div"
		}
		el = dom.NewElement(tag)
		ctx.FormatAppliers.Container.Apply(&container.Format, el, &ctx.State)
		insertBlock(parent, el, refNode, ctx)
		ctx.Cache.Set(container, el)
	}
	HandleBlockGroupChildren(el, container, ctx)
	return refNode
}

// handleCodeBlock renders <pre><code class="language-x">.
func handleCodeBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	code := block.(*model.Code)
	pre := ctx.Cache.Get(code)
	var inner *html.Node
	if pre != nil {
		refNode = reuseCachedElement(parent, pre, refNode, ctx)
		inner = dom.FindFirst(pre, func(n *html.Node) bool { return dom.IsElement(n, "code") })
	} else {
		pre = dom.NewElement("pre")
		ctx.FormatAppliers.Block.Apply(&code.Format, pre, &ctx.State)
		insertBlock(parent, pre, refNode, ctx)
		ctx.Cache.Set(code, pre)
	}
	if inner == nil {
		inner = dom.NewElement("code")
		if code.Language != "" {
			dom.SetAttr(inner, "class", "language-"+code.Language)
		}
		for pre.FirstChild != nil {
			pre.RemoveChild(pre.FirstChild)
		}
		pre.AppendChild(inner)
	}
	HandleBlockGroupChildren(inner, code, ctx)
	return refNode
}

// cloneOr copies the wrapped element of a general node, or creates one.
func cloneOr(el *html.Node, tag string) *html.Node {
	if el == nil {
		return dom.NewElement(tag)
	}
	return dom.ShallowClone(el)
}

func handleGeneralBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	general := block.(*model.GeneralBlock)
	el := ctx.Cache.Get(general)
	if el != nil {
		refNode = reuseCachedElement(parent, el, refNode, ctx)
	} else {
		el = cloneOr(general.Element, "div")
		ctx.FormatAppliers.Block.Apply(&general.Format, el, &ctx.State)
		insertBlock(parent, el, refNode, ctx)
		ctx.Cache.Set(general, el)
	}
	HandleBlockGroupChildren(el, general, ctx)
	if general.IsSelected {
		ctx.selectNode(el)
	}
	return refNode
}
