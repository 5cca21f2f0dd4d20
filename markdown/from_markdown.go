package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.uber.org/zap"
)

// ErrUnsupportedNode is returned for a markdown block the Content Model has
// no counterpart for.
var ErrUnsupportedNode = errors.New("markdown: unsupported node")

// ParseMarkdown parses markdown source with a goldmark parser and converts
// its syntax tree to a Content Model document. Tables and strikethrough are
// converted when the parser has the GFM extensions.
func ParseMarkdown(p parser.Parser, source []byte) (*model.Document, error) {
	root := p.Parse(text.NewReader(source))
	c := &converter{source: source, chains: format.DefaultChains()}
	doc := model.NewDocument()
	if err := c.blocks(doc, root, nil); err != nil {
		return nil, err
	}
	logger.L().Debug("parsed markdown", zap.Int("blocks", len(doc.Blocks)))
	return doc, nil
}

type converter struct {
	source []byte
	chains *format.Chains
}

// inline is the decoration inherited by the segments of an inline node.
type inline struct {
	format model.SegmentFormat
	link   *model.Link
	code   bool
}

func (c *converter) blocks(group model.BlockGroup, parent ast.Node, levels []*model.ListLevel) error {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if err := c.block(group, n, levels); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) block(group model.BlockGroup, n ast.Node, levels []*model.ListLevel) error {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		p := model.NewParagraph(false, model.BlockFormat{}, nil, nil)
		c.inlines(p, n, inline{})
		model.AddBlock(group, p)
	case *ast.Heading:
		tag := fmt.Sprintf("h%d", n.Level)
		p := model.NewParagraph(false, model.BlockFormat{}, nil, &model.ParagraphDecorator{
			TagName: tag,
			Format:  dom2model.DecoratorFormat(c.chains, tag),
		})
		c.inlines(p, n, inline{})
		model.AddBlock(group, p)
	case *ast.Blockquote:
		quote := model.NewFormatContainer("blockquote", model.ContainerFormat{})
		if err := c.blocks(quote, n, nil); err != nil {
			return err
		}
		model.AddBlock(group, quote)
	case *ast.List:
		return c.list(group, n, levels)
	case *ast.FencedCodeBlock:
		code := c.code(n)
		code.Language = string(n.Language(c.source))
		model.AddBlock(group, code)
	case *ast.CodeBlock:
		model.AddBlock(group, c.code(n))
	case *ast.ThematicBreak:
		model.AddBlock(group, model.NewDivider("hr", model.DividerFormat{}))
	case *ast.HTMLBlock:
		logger.L().Debug("skipped markdown html block")
	case *east.Table:
		model.AddBlock(group, c.table(n))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind())
	}
	return nil
}

// list flattens a list into list items of group. Nested lists follow the
// item holding them with one more level.
func (c *converter) list(group model.BlockGroup, list *ast.List, levels []*model.ListLevel) error {
	listType := "UL"
	if list.IsOrdered() {
		listType = "OL"
	}
	first := true
	for n := list.FirstChild(); n != nil; n = n.NextSibling() {
		level := model.NewListLevel(listType, model.ListLevelFormat{}, nil)
		if first && list.IsOrdered() && list.Start != 1 {
			level.Format.StartNumberOverride = list.Start
		}
		first = false

		itemLevels := append(append([]*model.ListLevel(nil), levels...), level)
		item := model.NewListItem(itemLevels, model.SegmentFormat{})
		model.AddBlock(group, item)
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				if err := c.list(group, nested, itemLevels); err != nil {
					return err
				}
				continue
			}
			if err := c.block(item, child, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *converter) code(n ast.Node) *model.Code {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(c.source))
	}
	content := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	code := model.NewCode(model.BlockFormat{})
	p := model.NewParagraph(true, model.BlockFormat{}, nil, nil)
	p.Segments = append(p.Segments, model.NewText(string(content), model.SegmentFormat{}, nil, nil))
	model.AddBlock(code, p)
	return code
}

func (c *converter) table(n *east.Table) *model.Table {
	var rows []ast.Node
	for r := n.FirstChild(); r != nil; r = r.NextSibling() {
		rows = append(rows, r)
	}
	t := model.NewTable(len(rows), model.TableFormat{})
	for i, r := range rows {
		_, header := r.(*east.TableHeader)
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			tc := model.NewTableCell(false, false, header, model.TableCellFormat{})
			p := model.NewParagraph(true, model.BlockFormat{}, nil, nil)
			c.inlines(p, cell, inline{})
			if len(p.Segments) > 0 {
				model.AddBlock(tc, p)
			}
			t.Rows[i].Cells = append(t.Rows[i].Cells, tc)
		}
	}
	return t
}

func (c *converter) inlines(p *model.Paragraph, parent ast.Node, in inline) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		c.inline(p, n, in)
	}
}

func (c *converter) inline(p *model.Paragraph, n ast.Node, in inline) {
	switch n := n.(type) {
	case *ast.Text:
		value := n.Segment.Value(c.source)
		if !n.IsRaw() && !in.code {
			value = util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(value)))
		}
		c.text(p, string(value), in)
		switch {
		case n.HardLineBreak():
			br := model.NewBr(in.format)
			br.Link = in.link
			p.Segments = append(p.Segments, br)
		case n.SoftLineBreak():
			c.text(p, " ", in)
		}
	case *ast.String:
		c.text(p, string(n.Value), in)
	case *ast.Emphasis:
		if n.Level >= 2 {
			in.format.FontWeight = "bold"
		} else {
			in.format.Italic = model.Bool(true)
		}
		c.inlines(p, n, in)
	case *east.Strikethrough:
		in.format.Strikethrough = model.Bool(true)
		c.inlines(p, n, in)
	case *ast.CodeSpan:
		in.code = true
		c.inlines(p, n, in)
	case *ast.Link:
		in.link = &model.Link{Format: model.LinkFormat{Href: string(n.Destination), Title: string(n.Title)}}
		c.inlines(p, n, in)
	case *ast.AutoLink:
		in.link = &model.Link{Format: model.LinkFormat{Href: string(n.URL(c.source))}}
		c.text(p, string(n.Label(c.source)), in)
	case *ast.Image:
		img := model.NewImage(string(n.Destination), in.format)
		img.Alt = c.plain(n)
		img.Title = string(n.Title)
		img.Link = in.link
		p.Segments = append(p.Segments, img)
	case *ast.RawHTML:
	default:
		c.inlines(p, n, in)
	}
}

// text appends text, merged into the previous segment when it has the
// same decoration.
func (c *converter) text(p *model.Paragraph, value string, in inline) {
	if value == "" {
		return
	}
	if n := len(p.Segments); n > 0 {
		if last, ok := p.Segments[n-1].(*model.Text); ok && sameLink(last.Link, in.link) &&
			(last.Code != nil) == in.code && model.SameSegmentFormat(last.Format, in.format) {
			last.Text += value
			return
		}
	}
	var code *model.CodeDecorator
	if in.code {
		code = &model.CodeDecorator{}
	}
	p.Segments = append(p.Segments, model.NewText(value, in.format, in.link, code))
}

func sameLink(a, b *model.Link) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Format.Href == b.Format.Href && a.Format.Title == b.Format.Title
}

// plain is the text content of an inline node, used for image alt texts.
func (c *converter) plain(n ast.Node) string {
	var b bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			b.Write(util.UnescapePunctuations(child.Segment.Value(c.source)))
		case *ast.String:
			b.Write(child.Value)
		default:
			b.WriteString(c.plain(child))
		}
	}
	return b.String()
}
