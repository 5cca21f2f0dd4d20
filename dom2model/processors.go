package dom2model

import (
	"regexp"
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultProcessors returns a fresh map of the built-in processors.
func DefaultProcessors() map[string]ElementProcessor {
	return map[string]ElementProcessor{
		ProcessorElement: ProcessElement,
		ProcessorChild:   ProcessChildren,
		ProcessorText:    ProcessText,
		ProcessorEntity:  ProcessEntity,
		ProcessorGeneral: ProcessGeneral,
		ProcessorBlock:   ProcessBlock,
		ProcessorFormat:  ProcessFormat,

		"br":         ProcessBr,
		"img":        ProcessImage,
		"hr":         ProcessDivider,
		"table":      ProcessTable,
		"ol":         ProcessList,
		"ul":         ProcessList,
		"li":         ProcessListItem,
		"a":          ProcessLink,
		"code":       ProcessCode,
		"pre":        ProcessPre,
		"blockquote": ProcessFormatContainer,
		"html":       ProcessTransparent,
		"body":       ProcessTransparent,
	}
}

// formatTags only carry segment format.
var formatTags = map[string]bool{
	"span": true, "b": true, "strong": true, "i": true, "em": true, "cite": true,
	"dfn": true, "var": true, "u": true, "ins": true, "s": true, "strike": true,
	"del": true, "sub": true, "sup": true, "font": true, "small": true, "big": true,
	"mark": true, "abbr": true, "acronym": true, "label": true, "q": true,
	"bdi": true, "bdo": true, "time": true, "nobr": true, "tt": true, "kbd": true,
	"samp": true, "o:p": true,
}

func display(el *html.Node) string {
	if v := dom.StyleValue(el, "display"); v != "" {
		return v
	}
	return format.DefaultStyle(dom.Tag(el)).Get("display")
}

func isBlockElement(el *html.Node) bool {
	return format.IsBlockDisplay(display(el))
}

func hasBlockChildren(el *html.Node) bool {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlockElement(c) {
			return true
		}
	}
	return false
}

// ProcessElement dispatches an element to its processor.
func ProcessElement(group model.BlockGroup, el *html.Node, ctx *Context) {
	tag := dom.Tag(el)
	if ctx.IsDisallowed(tag) || dom.StyleValue(el, "display") == "none" {
		return
	}
	if _, ok := dom.ParseEntity(el); ok {
		ctx.ElementProcessors[ProcessorEntity](group, el, ctx)
		return
	}
	if p, ok := ctx.ElementProcessors[tag]; ok {
		p(group, el, ctx)
		return
	}
	switch {
	case isBlockElement(el):
		ctx.ElementProcessors[ProcessorBlock](group, el, ctx)
	case formatTags[tag]:
		ctx.ElementProcessors[ProcessorFormat](group, el, ctx)
	default:
		ctx.ElementProcessors[ProcessorGeneral](group, el, ctx)
	}
}

// ProcessChildren processes the children of a node in order, opening and
// closing the range selection at child boundaries.
func ProcessChildren(group model.BlockGroup, parent *html.Node, ctx *Context) {
	index := 0
	for child := parent.FirstChild; child != nil; {
		next := child.NextSibling
		handleSelectionAt(group, parent, index, ctx)
		ctx.ProcessNode(group, child)
		child = next
		index++
	}
	handleSelectionAt(group, parent, index, ctx)
}

func (ctx *Context) rangeSelection() *dom.Range {
	if sel, ok := ctx.Selection.(RangeSelection); ok {
		return sel.Range
	}
	return nil
}

func handleSelectionAt(group model.BlockGroup, parent *html.Node, index int, ctx *Context) {
	r := ctx.rangeSelection()
	if r == nil {
		return
	}
	if r.Start.Node == parent && r.Start.Offset == index {
		ctx.IsInSelection = true
		AddSelectionMarker(group, ctx)
	}
	if r.End.Node == parent && r.End.Offset == index {
		if !r.Collapsed() {
			AddSelectionMarker(group, ctx)
		}
		ctx.IsInSelection = false
	}
}

// AddSelectionMarker adds a selected marker with the current format.
func AddSelectionMarker(group model.BlockGroup, ctx *Context) *model.SelectionMarker {
	marker := model.NewSelectionMarker(ctx.SegmentFormat)
	marker.Link = model.CloneLink(ctx.Link)
	marker.Code = model.CloneCode(ctx.Code)
	model.AddSegment(group, marker, ctx.BlockFormat)
	return marker
}

// ProcessText adds the text of a text node, split where the range selection
// starts and ends inside it. Offsets count characters.
func ProcessText(group model.BlockGroup, node *html.Node, ctx *Context) {
	text := []rune(node.Data)
	start := 0
	var segments []model.Segment
	var paragraph *model.Paragraph
	add := func(s []rune) {
		if t, p := addTextSegment(group, string(s), ctx); t != nil {
			segments = append(segments, t)
			paragraph = p
		}
	}

	if r := ctx.rangeSelection(); r != nil {
		if r.Start.Node == node {
			offset := clamp(r.Start.Offset, 0, len(text))
			add(text[:offset])
			ctx.IsInSelection = true
			AddSelectionMarker(group, ctx)
			start = offset
		}
		if r.End.Node == node {
			offset := clamp(r.End.Offset, start, len(text))
			if !r.Collapsed() {
				add(text[start:offset])
				AddSelectionMarker(group, ctx)
			}
			ctx.IsInSelection = false
			start = offset
		}
	}
	add(text[start:])

	if ctx.DomIndexer != nil && paragraph != nil {
		ctx.DomIndexer.OnSegment(node, paragraph, segments)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var spaceRun = regexp.MustCompile(`[ \t\n\r\f]+`)

func isSpaceOnly(s string) bool {
	return strings.Trim(s, " \t\n\r\f") == ""
}

// AddTextSegment adds text with the current format to the group. The text
// is merged into the previous text segment when format, link, code and
// selection state agree. Runs of white space collapse unless preserved.
func AddTextSegment(group model.BlockGroup, text string, ctx *Context) *model.Text {
	t, _ := addTextSegment(group, text, ctx)
	return t
}

func addTextSegment(group model.BlockGroup, text string, ctx *Context) (*model.Text, *model.Paragraph) {
	if text == "" {
		return nil, nil
	}
	preserve := ctx.WhiteSpacePreserved()
	if !preserve {
		text = spaceRun.ReplaceAllString(text, " ")
	}

	var paragraph *model.Paragraph
	if blocks := group.ChildBlocks(); len(blocks) > 0 {
		paragraph, _ = blocks[len(blocks)-1].(*model.Paragraph)
	}
	if paragraph != nil && len(paragraph.Segments) > 0 {
		last, ok := paragraph.Segments[len(paragraph.Segments)-1].(*model.Text)
		if ok && !preserve && strings.HasSuffix(last.Text, " ") {
			text = strings.TrimPrefix(text, " ")
			if text == "" {
				return nil, nil
			}
		}
		if ok && last.IsSelected == ctx.IsInSelection &&
			model.SameSegmentFormat(last.Format, ctx.SegmentFormat) &&
			model.SameLink(last.Link, ctx.Link) &&
			model.SameCode(last.Code, ctx.Code) {
			last.Text += text
			return last, paragraph
		}
	}
	if !preserve && isSpaceOnly(text) && (paragraph == nil || len(paragraph.Segments) == 0) {
		return nil, nil
	}

	t := model.NewText(text, ctx.SegmentFormat, ctx.Link, ctx.Code)
	t.IsSelected = ctx.IsInSelection
	return t, model.AddSegment(group, t, ctx.BlockFormat)
}

// ProcessTransparent processes the children of an element that has no
// model of its own.
func ProcessTransparent(group model.BlockGroup, el *html.Node, ctx *Context) {
	ctx.ProcessChildren(group, el)
}

// ProcessFormat processes an inline element carrying segment format only.
func ProcessFormat(group model.BlockGroup, el *html.Node, ctx *Context) {
	ctx.Scope(func() {
		ctx.FormatParsers.Segment.Parse(&ctx.SegmentFormat, el, &ctx.State, format.DefaultStyle(dom.Tag(el)))
		ctx.ProcessChildren(group, el)
	})
}

var decoratorTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// HeadingLevel returns the level of an h1 to h6 tag, or 0.
func HeadingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// DecoratorFormat is the segment format a decorator tag implies.
func DecoratorFormat(chains *format.Chains, tag string) model.SegmentFormat {
	var f model.SegmentFormat
	chains.SegmentOnBlock.Parse(&f, dom.NewElement(tag), &format.State{}, format.DefaultStyle(tag))
	return f
}

// ProcessBlock processes a block element. An element without block
// children becomes a paragraph. An element with block children becomes a
// format container when it carries box format, and is transparent
// otherwise.
func ProcessBlock(group model.BlockGroup, el *html.Node, ctx *Context) {
	tag := dom.Tag(el)
	outer := ctx.BlockFormat
	bf := inheritable(outer)
	ctx.FormatParsers.Block.Parse(&bf, el, &ctx.State, format.DefaultStyle(tag))

	nested := hasBlockChildren(el)
	if nested && bf != inheritable(bf) {
		ProcessFormatContainer(group, el, ctx)
		return
	}

	ctx.Scope(func() {
		if bf.Direction != "" {
			ctx.Direction = bf.Direction
		}
		before := ctx.SegmentFormat
		ctx.FormatParsers.SegmentOnBlock.Parse(&ctx.SegmentFormat, el, &ctx.State, nil)

		if nested {
			ctx.BlockFormat = inheritable(bf)
			ctx.ProcessChildren(group, el)
			return
		}

		own := changedFormat(before, ctx.SegmentFormat)
		var decorator *model.ParagraphDecorator
		if decoratorTags[tag] {
			decorator = &model.ParagraphDecorator{TagName: tag, Format: DecoratorFormat(ctx.FormatParsers, tag)}
		}
		paragraph := model.NewParagraph(false, bf, &own, decorator)
		model.AddBlock(group, paragraph)
		ctx.cache(paragraph, el)
		if ctx.DomIndexer != nil {
			ctx.DomIndexer.OnParagraph(el, paragraph)
		}

		ctx.BlockFormat = bf
		ctx.ProcessChildren(group, el)
	})
	model.AddBlock(group, model.NewParagraph(true, outer, nil, nil))
}

// changedFormat returns the fields of after that differ from before.
func changedFormat(before, after model.SegmentFormat) model.SegmentFormat {
	var f model.SegmentFormat
	pick := func(b, a string, dst *string) {
		if a != b {
			*dst = a
		}
	}
	pick(before.TextColor, after.TextColor, &f.TextColor)
	pick(before.BackgroundColor, after.BackgroundColor, &f.BackgroundColor)
	pick(before.FontFamily, after.FontFamily, &f.FontFamily)
	pick(before.FontSize, after.FontSize, &f.FontSize)
	pick(before.FontWeight, after.FontWeight, &f.FontWeight)
	pick(before.SuperOrSubScriptSequence, after.SuperOrSubScriptSequence, &f.SuperOrSubScriptSequence)
	pick(before.LetterSpacing, after.LetterSpacing, &f.LetterSpacing)
	pick(before.LineHeight, after.LineHeight, &f.LineHeight)
	flag := func(b, a *bool, dst **bool) {
		if a != nil && (b == nil || *a != *b) {
			*dst = model.Bool(*a)
		}
	}
	flag(before.Italic, after.Italic, &f.Italic)
	flag(before.Underline, after.Underline, &f.Underline)
	flag(before.Strikethrough, after.Strikethrough, &f.Strikethrough)
	return f
}

// ProcessFormatContainer processes a blockquote or another block element
// holding blocks under a box format.
func ProcessFormatContainer(group model.BlockGroup, el *html.Node, ctx *Context) {
	tag := dom.Tag(el)
	container := model.NewFormatContainer(tag, model.ContainerFormat{})
	ctx.FormatParsers.Container.Parse(&container.Format, el, &ctx.State, format.DefaultStyle(tag))
	model.AddBlock(group, container)
	ctx.cache(container, el)

	ctx.Scope(func() {
		if d := container.Format.Direction; d != "" {
			ctx.Direction = d
		}
		ctx.BlockFormat = model.BlockFormat{}
		ctx.ListFormat = ListFormat{}
		ctx.FormatParsers.SegmentOnBlock.Parse(&ctx.SegmentFormat, el, &ctx.State, nil)
		ctx.ProcessChildren(container, el)
	})
}

// ProcessPre processes a <pre> into a code block. The language is read from
// a "language-*" class of an inner <code>.
func ProcessPre(group model.BlockGroup, el *html.Node, ctx *Context) {
	code := model.NewCode(model.BlockFormat{})
	ctx.FormatParsers.Block.Parse(&code.Format, el, &ctx.State, nil)
	if inner := dom.FindFirst(el, func(n *html.Node) bool { return dom.IsElement(n, "code") }); inner != nil {
		for _, class := range dom.Classes(inner) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok {
				code.Language = lang
				break
			}
		}
	}
	model.AddBlock(group, code)
	ctx.cache(code, el)

	ctx.Scope(func() {
		ctx.inCode = true
		ctx.BlockFormat = model.BlockFormat{}
		ctx.ListFormat = ListFormat{}
		ctx.Code = nil
		ctx.FormatParsers.Segment.Parse(&ctx.SegmentFormat, el, &ctx.State, nil)
		ctx.ProcessChildren(code, el)
	})
}

// ProcessCode processes inline <code>. Inside a code block it only carries
// its children.
func ProcessCode(group model.BlockGroup, el *html.Node, ctx *Context) {
	ctx.Scope(func() {
		if !ctx.inCode {
			code := &model.CodeDecorator{}
			ctx.FormatParsers.Code.Parse(&code.Format, el, &ctx.State, nil)
			ctx.Code = code
		}
		ctx.FormatParsers.Segment.Parse(&ctx.SegmentFormat, el, &ctx.State, nil)
		ctx.ProcessChildren(group, el)
	})
}

// ProcessLink processes an anchor. Anchors without href carry no link.
func ProcessLink(group model.BlockGroup, el *html.Node, ctx *Context) {
	ctx.Scope(func() {
		if dom.HasAttr(el, "href") {
			link := &model.Link{}
			ctx.FormatParsers.Link.Parse(&link.Format, el, &ctx.State, nil)
			if dataset := format.Dataset(el); len(dataset) > 0 {
				link.Dataset = dataset
			}
			ctx.Link = link
		}
		ctx.FormatParsers.Segment.Without("textColor", "underline").Parse(&ctx.SegmentFormat, el, &ctx.State, nil)
		ctx.ProcessChildren(group, el)
	})
}

// ProcessBr adds a line break.
func ProcessBr(group model.BlockGroup, el *html.Node, ctx *Context) {
	br := model.NewBr(ctx.SegmentFormat)
	br.Link = model.CloneLink(ctx.Link)
	br.IsSelected = ctx.IsInSelection
	paragraph := model.AddSegment(group, br, ctx.BlockFormat)
	if ctx.DomIndexer != nil {
		ctx.DomIndexer.OnSegment(el, paragraph, []model.Segment{br})
	}
}

// ProcessImage adds an image segment.
func ProcessImage(group model.BlockGroup, el *html.Node, ctx *Context) {
	img := model.NewImage(dom.Attr(el, "src"), ctx.SegmentFormat)
	ctx.FormatParsers.Image.Parse(&img.Format, el, &ctx.State, nil)
	img.Alt = dom.Attr(el, "alt")
	img.Title = dom.Attr(el, "title")
	if dataset := format.Dataset(el); len(dataset) > 0 {
		img.Dataset = dataset
	}
	img.Link = model.CloneLink(ctx.Link)
	img.IsSelected = ctx.IsInSelection
	if sel, ok := ctx.Selection.(ImageSelection); ok && sel.Image == el {
		img.IsSelected = true
		img.IsSelectedAsImageSelection = true
	}
	paragraph := model.AddSegment(group, img, ctx.BlockFormat)
	if ctx.DomIndexer != nil {
		ctx.DomIndexer.OnSegment(el, paragraph, []model.Segment{img})
	}
}

// ProcessDivider adds a divider for <hr>.
func ProcessDivider(group model.BlockGroup, el *html.Node, ctx *Context) {
	divider := model.NewDivider(dom.Tag(el), model.DividerFormat{})
	ctx.FormatParsers.Divider.Parse(&divider.Format, el, &ctx.State, nil)
	divider.IsSelected = ctx.IsInSelection
	model.AddBlock(group, divider)
	ctx.cache(divider, el)
}

// ProcessEntity adds an entity. Block level wrappers become blocks and
// inline ones segments. The wrapper subtree is not parsed.
func ProcessEntity(group model.BlockGroup, el *html.Node, ctx *Context) {
	var info model.EntityFormat
	ctx.FormatParsers.Entity.Parse(&info, el, &ctx.State, nil)
	entity := model.NewEntity(el, info, ctx.SegmentFormat)
	entity.IsSelected = ctx.IsInSelection
	if isBlockElement(el) {
		model.AddBlock(group, entity)
	} else {
		model.AddSegment(group, entity, ctx.BlockFormat)
	}
	ctx.cache(entity, el)
}

// ProcessGeneral keeps an element the model does not understand as a
// shallow copy and parses its children inside it.
func ProcessGeneral(group model.BlockGroup, el *html.Node, ctx *Context) {
	clone := dom.ShallowClone(el)
	logger.L().Debug("general element", zap.String("tag", dom.Tag(el)))

	if isBlockElement(el) {
		block := model.NewGeneralBlock(clone)
		block.IsSelected = ctx.IsInSelection
		model.AddBlock(group, block)
		ctx.Scope(func() {
			ctx.BlockFormat = model.BlockFormat{}
			ctx.ListFormat = ListFormat{}
			ctx.ProcessChildren(block, el)
		})
		return
	}

	segment := model.NewGeneralSegment(clone, ctx.SegmentFormat)
	segment.Link = model.CloneLink(ctx.Link)
	segment.IsSelected = ctx.IsInSelection
	model.AddSegment(group, segment, ctx.BlockFormat)
	ctx.Scope(func() {
		ctx.BlockFormat = model.BlockFormat{}
		ctx.ListFormat = ListFormat{}
		ctx.ProcessChildren(segment, el)
	})
}
