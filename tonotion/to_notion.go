// Package tonotion exports Content Model documents as Notion blocks.
package tonotion

import (
	"strings"

	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"github.com/dstotijn/go-notion"
	"go.uber.org/zap"
)

// DefaultCodeLanguage is the language of code blocks without one.
const DefaultCodeLanguage = "plain text"

// ToNotionBlock serializes one block. It may return several Notion blocks
// or none.
type ToNotionBlock func(s *Serializer, block model.Block) []notion.Block

// Serializer converts Content Model blocks into Notion blocks. Blocks are
// keyed by block type, or block group type for block groups.
type Serializer struct {
	Blocks map[string]ToNotionBlock
}

// CreatePageContent returns the children of a Notion page holding doc.
func CreatePageContent(doc *model.Document) []notion.Block {
	return DefaultSerializer().SerializePage(doc)
}

// DefaultSerializer returns a serializer with the default block functions.
func DefaultSerializer() *Serializer {
	return &Serializer{Blocks: map[string]ToNotionBlock{
		string(model.BlockTypeParagraph):   paragraphBlocks,
		string(model.BlockTypeDivider):     dividerBlocks,
		string(model.BlockTypeTable):       tableBlocks,
		string(model.GroupFormatContainer): containerBlocks,
		string(model.GroupCode):            codeBlocks,
		string(model.GroupGeneral): func(s *Serializer, block model.Block) []notion.Block {
			return s.SerializePage(block.(*model.GeneralBlock))
		},
	}}
}

func blockKey(block model.Block) string {
	if g, ok := model.AsBlockGroup(block); ok {
		return string(g.BlockGroupType())
	}
	return string(block.BlockType())
}

// SerializePage serializes the children of a group. Runs of list items
// become nested Notion list items.
func (s *Serializer) SerializePage(group model.BlockGroup) []notion.Block {
	result := s.serializeBlocks(group.ChildBlocks())
	logger.L().Debug("serialized notion blocks", zap.Int("blocks", len(result)))
	return result
}

func (s *Serializer) serializeBlocks(blocks []model.Block) []notion.Block {
	var result []notion.Block
	var stack []*[]notion.Block
	for _, block := range blocks {
		item, ok := block.(*model.ListItem)
		if !ok {
			stack = nil
			result = append(result, s.SerializeBlock(block)...)
			continue
		}

		depth := len(item.Levels)
		if depth < 1 {
			depth = 1
		}
		if len(stack) > depth-1 {
			stack = stack[:depth-1]
		}
		target := &result
		if len(stack) > 0 {
			target = stack[len(stack)-1]
		}
		listBlock, children := s.listItem(item)
		*target = append(*target, listBlock)
		stack = append(stack, children)
	}
	return result
}

// SerializeBlock serializes one block. Blocks without a function are
// dropped.
func (s *Serializer) SerializeBlock(block model.Block) []notion.Block {
	fn, ok := s.Blocks[blockKey(block)]
	if !ok {
		logger.L().Debug("no notion block", zap.String("type", blockKey(block)))
		return nil
	}
	return fn(s, block)
}

// headAndRest splits the blocks of a group into the rich text of its first
// paragraph and the serialized remaining blocks.
func (s *Serializer) headAndRest(group model.BlockGroup) ([]notion.RichText, []notion.Block) {
	blocks := group.ChildBlocks()
	if len(blocks) == 0 {
		return []notion.RichText{}, nil
	}
	p, ok := blocks[0].(*model.Paragraph)
	if !ok {
		return []notion.RichText{}, s.serializeBlocks(blocks)
	}
	return RichText(p.Segments), append(imageBlocks(p.Segments), s.serializeBlocks(blocks[1:])...)
}

func (s *Serializer) listItem(item *model.ListItem) (notion.Block, *[]notion.Block) {
	text, children := s.headAndRest(item)
	numbered := len(item.Levels) > 0 && item.Levels[len(item.Levels)-1].ListType == "OL"
	if numbered {
		b := &notion.NumberedListItemBlock{RichText: text, Children: children}
		return b, &b.Children
	}
	b := &notion.BulletedListItemBlock{RichText: text, Children: children}
	return b, &b.Children
}

func paragraphBlocks(_ *Serializer, block model.Block) []notion.Block {
	p := block.(*model.Paragraph)
	text := RichText(p.Segments)
	images := imageBlocks(p.Segments)
	if len(text) == 0 && len(images) > 0 {
		return images
	}

	var result notion.Block
	tag := ""
	if p.Decorator != nil {
		tag = p.Decorator.TagName
	}
	switch tag {
	case "h1":
		result = &notion.Heading1Block{RichText: text}
	case "h2":
		result = &notion.Heading2Block{RichText: text}
	case "h3", "h4", "h5", "h6":
		result = &notion.Heading3Block{RichText: text}
	default:
		result = &notion.ParagraphBlock{RichText: text}
	}
	return append([]notion.Block{result}, images...)
}

func imageBlocks(segments []model.Segment) []notion.Block {
	var result []notion.Block
	for _, segment := range segments {
		img, ok := segment.(*model.Image)
		if !ok || img.Src == "" {
			continue
		}
		b := &notion.ImageBlock{
			Type:     notion.FileTypeExternal,
			External: &notion.FileExternal{URL: img.Src},
		}
		if img.Alt != "" {
			b.Caption = []notion.RichText{plainRichText(img.Alt)}
		}
		result = append(result, b)
	}
	return result
}

func dividerBlocks(_ *Serializer, block model.Block) []notion.Block {
	if block.(*model.Divider).TagName != "hr" {
		return nil
	}
	return []notion.Block{&notion.DividerBlock{}}
}

func containerBlocks(s *Serializer, block model.Block) []notion.Block {
	container := block.(*model.FormatContainer)
	if container.TagName != "blockquote" {
		return s.SerializePage(container)
	}
	text, children := s.headAndRest(container)
	return []notion.Block{&notion.QuoteBlock{RichText: text, Children: children}}
}

func codeBlocks(_ *Serializer, block model.Block) []notion.Block {
	code := block.(*model.Code)
	var lines []string
	for _, b := range code.Blocks {
		if p, ok := b.(*model.Paragraph); ok {
			var line strings.Builder
			for _, rt := range RichText(p.Segments) {
				line.WriteString(rt.PlainText)
			}
			lines = append(lines, line.String())
		}
	}
	language := code.Language
	if language == "" {
		language = DefaultCodeLanguage
	}
	return []notion.Block{&notion.CodeBlock{
		RichText: []notion.RichText{plainRichText(strings.Join(lines, "\n"))},
		Language: &language,
	}}
}

func tableBlocks(_ *Serializer, block model.Block) []notion.Block {
	t := block.(*model.Table)
	width := 0
	for _, row := range t.Rows {
		if len(row.Cells) > width {
			width = len(row.Cells)
		}
	}
	if width == 0 {
		return nil
	}

	hasHeader := len(t.Rows[0].Cells) > 0
	var rows []notion.Block
	for r, row := range t.Rows {
		cells := make([][]notion.RichText, width)
		for c := range cells {
			cells[c] = []notion.RichText{}
			if c >= len(row.Cells) {
				continue
			}
			cell := row.Cells[c]
			if r == 0 && !cell.IsHeader {
				hasHeader = false
			}
			if !cell.SpanLeft && !cell.SpanAbove {
				cells[c] = cellText(cell)
			}
		}
		rows = append(rows, &notion.TableRowBlock{Cells: cells})
	}
	return []notion.Block{&notion.TableBlock{
		TableWidth:      width,
		HasColumnHeader: hasHeader,
		Children:        rows,
	}}
}

// cellText joins the paragraphs of a cell with line breaks.
func cellText(cell *model.TableCell) []notion.RichText {
	result := []notion.RichText{}
	for _, block := range cell.Blocks {
		p, ok := block.(*model.Paragraph)
		if !ok {
			continue
		}
		if len(result) > 0 {
			result = appendRichText(result, plainRichText("\n"))
		}
		for _, rt := range RichText(p.Segments) {
			result = appendRichText(result, rt)
		}
	}
	return result
}

func plainRichText(text string) notion.RichText {
	return notion.RichText{
		Type:      notion.RichTextTypeText,
		PlainText: text,
		Text:      &notion.Text{Content: text},
	}
}

// annotations returns the Notion annotations of a segment, nil when it has
// none.
func annotations(segment model.Segment) *notion.Annotations {
	f := segment.SegmentFormat()
	a := notion.Annotations{
		Bold:          format.IsBoldWeight(f.FontWeight),
		Italic:        model.IsTrue(f.Italic),
		Strikethrough: model.IsTrue(f.Strikethrough),
		Underline:     model.IsTrue(f.Underline),
		Code:          model.SegmentCode(segment) != nil,
	}
	if a == (notion.Annotations{}) {
		return nil
	}
	return &a
}

// RichText converts the inline segments of a paragraph. Adjacent segments
// with the same annotations and link are joined.
func RichText(segments []model.Segment) []notion.RichText {
	result := []notion.RichText{}
	for _, segment := range segments {
		var content string
		switch s := segment.(type) {
		case *model.Text:
			content = s.Text
		case *model.Br:
			content = "\n"
		case *model.GeneralSegment:
			content = plainText(s)
		default:
			continue
		}
		if content == "" {
			continue
		}
		rt := plainRichText(content)
		rt.Annotations = annotations(segment)
		if link := model.SegmentLink(segment); link != nil && link.Format.Href != "" {
			href := link.Format.Href
			rt.HRef = &href
			rt.Text.Link = &notion.Link{URL: href}
		}
		result = appendRichText(result, rt)
	}
	return result
}

func appendRichText(result []notion.RichText, rt notion.RichText) []notion.RichText {
	if n := len(result); n > 0 {
		last := &result[n-1]
		if sameAnnotations(last.Annotations, rt.Annotations) && sameHRef(last.HRef, rt.HRef) {
			last.PlainText += rt.PlainText
			last.Text.Content += rt.Text.Content
			return result
		}
	}
	return append(result, rt)
}

func sameAnnotations(a, b *notion.Annotations) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameHRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func plainText(group model.BlockGroup) string {
	var b strings.Builder
	for _, block := range group.ChildBlocks() {
		if p, ok := block.(*model.Paragraph); ok {
			for _, segment := range p.Segments {
				if t, ok := segment.(*model.Text); ok {
					b.WriteString(t.Text)
				}
			}
		}
	}
	return b.String()
}
