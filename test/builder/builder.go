// Package builder has short constructors for Content Model trees, used by
// the tests of every package.
package builder

import (
	"fmt"
	"strings"

	"github.com/cozy/contentmodel-go/model"
)

// Doc builds a document from blocks.
func Doc(args ...interface{}) *model.Document {
	doc := model.NewDocument()
	for _, b := range blocks(args) {
		model.AddBlock(doc, b)
	}
	return doc
}

// P builds an explicit paragraph, rendered as a <div>. Arguments are
// strings (plain text), segments and formats.
func P(args ...interface{}) *model.Paragraph {
	return paragraph(false, args)
}

// Implicit builds an implicit paragraph.
func Implicit(args ...interface{}) *model.Paragraph {
	return paragraph(true, args)
}

// H builds a heading of the given level.
func H(level int, args ...interface{}) *model.Paragraph {
	p := paragraph(false, args)
	p.Decorator = &model.ParagraphDecorator{
		TagName: fmt.Sprintf("h%d", level),
		Format:  HeadingFormat(level),
	}
	return p
}

// HeadingFormat is the segment format implied by a heading tag.
func HeadingFormat(level int) model.SegmentFormat {
	sizes := []string{"2em", "1.5em", "1.17em", "1em", "0.83em", "0.67em"}
	return model.SegmentFormat{FontWeight: "bold", FontSize: sizes[level-1]}
}

func paragraph(implicit bool, args []interface{}) *model.Paragraph {
	p := model.NewParagraph(implicit, model.BlockFormat{}, nil, nil)
	for _, arg := range args {
		switch a := arg.(type) {
		case string:
			p.Segments = append(p.Segments, Text(a))
		case model.Segment:
			p.Segments = append(p.Segments, a)
		case model.BlockFormat:
			p.Format = a
		case model.SegmentFormat:
			f := a
			p.SegmentFormat = &f
		default:
			panic(fmt.Sprintf("builder: unexpected paragraph argument %T", arg))
		}
	}
	return p
}

// Text builds a text segment. Extra arguments are a format, a *model.Link or
// a *model.CodeDecorator.
func Text(text string, args ...interface{}) *model.Text {
	t := model.NewText(text, model.SegmentFormat{}, nil, nil)
	for _, arg := range args {
		switch a := arg.(type) {
		case model.SegmentFormat:
			t.Format = a
		case *model.Link:
			t.Link = a
		case *model.CodeDecorator:
			t.Code = a
		default:
			panic(fmt.Sprintf("builder: unexpected text argument %T", arg))
		}
	}
	return t
}

// Bold builds a bold text segment.
func Bold(text string) *model.Text {
	return Text(text, model.SegmentFormat{FontWeight: "bold"})
}

// Italic builds an italic text segment.
func Italic(text string) *model.Text {
	return Text(text, model.SegmentFormat{Italic: model.Bool(true)})
}

// Link builds a link decorator.
func Link(href string) *model.Link {
	return &model.Link{Format: model.LinkFormat{Href: href}}
}

// Br builds a line break.
func Br() *model.Br {
	return model.NewBr(model.SegmentFormat{})
}

// Img builds an image.
func Img(src string) *model.Image {
	return model.NewImage(src, model.SegmentFormat{})
}

// Marker builds a selected selection marker.
func Marker() *model.SelectionMarker {
	return model.NewSelectionMarker(model.SegmentFormat{})
}

// Sel marks a node as selected and returns it.
func Sel[T model.SelectableNode](node T) T {
	node.SetSelected(true)
	return node
}

// Li builds a list item. types lists the level types from the outermost,
// e.g. "OL" or "UL OL".
func Li(types string, args ...interface{}) *model.ListItem {
	var levels []*model.ListLevel
	for _, typ := range strings.Fields(types) {
		levels = append(levels, model.NewListLevel(typ, model.ListLevelFormat{}, nil))
	}
	item := model.NewListItem(levels, model.SegmentFormat{})
	item.Blocks = blocks(args)
	return item
}

// Quote builds a blockquote container.
func Quote(args ...interface{}) *model.FormatContainer {
	c := model.NewFormatContainer("blockquote", model.ContainerFormat{})
	c.Blocks = blocks(args)
	return c
}

// Code builds a code block.
func Code(args ...interface{}) *model.Code {
	c := model.NewCode(model.BlockFormat{})
	c.Blocks = blocks(args)
	return c
}

// Hr builds a divider.
func Hr() *model.Divider {
	return model.NewDivider("hr", model.DividerFormat{})
}

// Table builds a table from rows of cells.
func Table(rows ...[]*model.TableCell) *model.Table {
	t := model.NewTable(len(rows), model.TableFormat{})
	for i, cells := range rows {
		t.Rows[i].Cells = cells
	}
	return t
}

// Row groups cells.
func Row(cells ...*model.TableCell) []*model.TableCell {
	return cells
}

// Td builds a table cell.
func Td(args ...interface{}) *model.TableCell {
	cell := model.NewTableCell(false, false, false, model.TableCellFormat{})
	cell.Blocks = blocks(args)
	return cell
}

// Th builds a header cell.
func Th(args ...interface{}) *model.TableCell {
	cell := Td(args...)
	cell.IsHeader = true
	return cell
}

// SpanLeft builds a cell merged into its left neighbour.
func SpanLeft() *model.TableCell {
	return model.NewTableCell(true, false, false, model.TableCellFormat{})
}

// SpanAbove builds a cell merged into the cell above.
func SpanAbove() *model.TableCell {
	return model.NewTableCell(false, true, false, model.TableCellFormat{})
}

// blocks converts builder arguments into blocks. Strings and segments are
// collected into implicit paragraphs.
func blocks(args []interface{}) []model.Block {
	var result []model.Block
	var current *model.Paragraph
	for _, arg := range args {
		switch a := arg.(type) {
		case model.Block:
			result = append(result, a)
			current = nil
		case string, model.Segment:
			if current == nil {
				current = model.NewParagraph(true, model.BlockFormat{}, nil, nil)
				result = append(result, current)
			}
			if s, ok := a.(string); ok {
				current.Segments = append(current.Segments, Text(s))
			} else {
				current.Segments = append(current.Segments, a.(model.Segment))
			}
		default:
			panic(fmt.Sprintf("builder: unexpected block argument %T", arg))
		}
	}
	return result
}
