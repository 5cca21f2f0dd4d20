// Package docx imports Word documents into the Content Model.
package docx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
	"go.uber.org/zap"
)

// ErrNoBody is returned for a document without a body element.
var ErrNoBody = errors.New("docx: document has no body")

// Import reads a .docx document of the given size from r. Paragraph styles
// Heading1 to Heading6 become heading decorators and List* styles become
// list items. Bold and italic runs keep their format. Tables keep their
// cells and merged cells.
func Import(r io.ReaderAt, size int64) (*model.Document, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		logger.L().Warn("unreadable docx", zap.Int64("size", size), zap.Error(err))
		return nil, fmt.Errorf("docx: read: %w", err)
	}

	body := doc.X().Body
	if body == nil {
		return nil, ErrNoBody
	}

	paragraphs := make(map[*wml.CT_P]document.Paragraph)
	for _, p := range doc.Paragraphs() {
		paragraphs[p.X()] = p
	}
	tables := make(map[*wml.CT_Tbl]document.Table)
	for _, t := range doc.Tables() {
		tables[t.X()] = t
	}

	i := &importer{chains: format.DefaultChains()}
	result := model.NewDocument()
	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				if p, ok := paragraphs[cp]; ok {
					model.AddBlock(result, i.paragraph(p, false))
				}
			}
			for _, ct := range c.Tbl {
				if t, ok := tables[ct]; ok {
					model.AddBlock(result, i.table(t))
				}
			}
		}
	}
	logger.L().Debug("imported docx", zap.Int("blocks", len(result.Blocks)))
	return result, nil
}

type importer struct {
	chains *format.Chains
}

// styleLevel splits a style name such as "ListBullet2" into its prefix and
// trailing level, 1 when the name has no number.
func styleLevel(style, prefix string) (int, bool) {
	if !strings.HasPrefix(style, prefix) {
		return 0, false
	}
	rest := style[len(prefix):]
	if rest == "" {
		return 1, true
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (i *importer) paragraph(p document.Paragraph, implicit bool) model.Block {
	style := p.Style()
	result := model.NewParagraph(implicit, model.BlockFormat{}, nil, nil)
	result.Segments = runs(p)
	if len(result.Segments) == 0 {
		result.Segments = append(result.Segments, model.NewBr(model.SegmentFormat{}))
	}

	if style == "Title" {
		style = "Heading1"
	}
	if n, ok := styleLevel(style, "Heading"); ok && n <= 6 {
		tag := "h" + strconv.Itoa(n)
		result.Decorator = &model.ParagraphDecorator{
			TagName: tag,
			Format:  dom2model.DecoratorFormat(i.chains, tag),
		}
		return result
	}

	listType := ""
	level := 0
	if n, ok := styleLevel(style, "ListBullet"); ok {
		listType, level = "UL", n
	} else if n, ok := styleLevel(style, "ListNumber"); ok {
		listType, level = "OL", n
	} else if style == "ListParagraph" {
		listType, level = "UL", 1
	}
	if listType == "" {
		return result
	}

	levels := make([]*model.ListLevel, level)
	for l := range levels {
		levels[l] = model.NewListLevel(listType, model.ListLevelFormat{}, nil)
	}
	item := model.NewListItem(levels, model.SegmentFormat{})
	result.IsImplicit = true
	item.Blocks = []model.Block{result}
	return item
}

// runs converts the runs of a paragraph into text segments, joining runs
// of the same format.
func runs(p document.Paragraph) []model.Segment {
	var result []model.Segment
	for _, run := range p.Runs() {
		text := run.Text()
		if text == "" {
			continue
		}
		var f model.SegmentFormat
		props := run.Properties()
		if props.IsBold() {
			f.FontWeight = "bold"
		}
		if props.IsItalic() {
			f.Italic = model.Bool(true)
		}

		if n := len(result); n > 0 {
			if last, ok := result[n-1].(*model.Text); ok && model.SameSegmentFormat(last.Format, f) {
				last.Text += text
				continue
			}
		}
		result = append(result, model.NewText(text, f, nil, nil))
	}
	return result
}

func (i *importer) table(t document.Table) *model.Table {
	rows := t.Rows()
	result := model.NewTable(len(rows), model.TableFormat{})
	for r, row := range rows {
		var cells []*model.TableCell
		for _, cell := range row.Cells() {
			span := 1
			spanAbove := false
			if pr := cell.Properties().X(); pr != nil {
				if pr.GridSpan != nil && pr.GridSpan.ValAttr > 1 {
					span = int(pr.GridSpan.ValAttr)
				}
				spanAbove = pr.VMerge != nil && pr.VMerge.ValAttr != wml.ST_MergeRestart
			}

			c := model.NewTableCell(false, spanAbove, false, model.TableCellFormat{})
			if !spanAbove {
				ps := cell.Paragraphs()
				for _, p := range ps {
					c.Blocks = append(c.Blocks, i.paragraph(p, len(ps) == 1))
				}
			}
			cells = append(cells, c)
			for s := 1; s < span; s++ {
				cells = append(cells, model.NewTableCell(true, spanAbove, false, model.TableCellFormat{}))
			}
		}
		result.Rows[r].Cells = cells
	}
	return result
}
