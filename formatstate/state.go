// Package formatstate computes the formatting shared by the selected part
// of a Content Model document, as shown by toolbar buttons.
package formatstate

import (
	"strconv"
	"strings"

	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/selection"
)

// FormatState is the format of the selection. Character properties are nil
// when the selected segments disagree or when no segment is selected.
// Structural properties describe the first selected location.
type FormatState struct {
	IsBold          *bool
	IsItalic        *bool
	IsUnderline     *bool
	IsStrikeThrough *bool
	IsSuperscript   *bool
	IsSubscript     *bool
	IsCodeInline    *bool
	FontName        *string
	// FontSize is in points.
	FontSize        *string
	FontWeight      *string
	TextColor       *string
	BackgroundColor *string
	LetterSpacing   *string
	LineHeight      *string

	IsBullet       bool
	IsNumbering    bool
	IsBlockQuote   bool
	IsCodeBlock    bool
	HeadingLevel   int
	Direction      string
	TextAlign      string
	IsInTable      bool
	TableHasHeader bool
	TableFormat    *TableFormatState

	IsMultilineSelection bool
	CanMergeTableCell    bool
	CanUnlink            bool
	CanAddImageAltText   bool
	ImageFormat          *ImageFormatState
}

// ImageFormatState is the format of a single selected image.
type ImageFormatState struct {
	BorderColor  string
	BorderWidth  string
	BorderStyle  string
	BorderRadius string
	BoxShadow    string
}

// TableFormatState describes the table of the first selected cell.
type TableFormatState struct {
	Rows           int
	Columns        int
	HasHeaderRow   bool
	BorderCollapse bool
	TableLayout    string
}

// RetrieveModelFormatState returns the format of the selection of a
// document. The effective format of each selected segment is built from
// the document default, the paragraph, the heading decorator, the segment,
// its code and link decorators and last the pending format. Selected table
// cells report the table flags only; their content counts when it is
// selected itself.
func RetrieveModelFormatState(doc *model.Document, pending *model.SegmentFormat) FormatState {
	var (
		result       FormatState
		firstBlock   model.Block
		firstTable   *selection.TableContext
		firstSegment = true
		firstImage   = true
		structured   bool
		m            = merger{state: &result}
	)

	selection.IterateSelections(doc, func(path []model.BlockGroup, table *selection.TableContext, block model.Block, segments []model.Segment) bool {
		if t, ok := block.(*model.Table); ok && table == nil {
			table = &selection.TableContext{Table: t, IsWholeTableSelected: true}
			block = nil
		}
		if !structured {
			retrieveStructure(&result, path, block)
			structured = true
		}

		if block != nil {
			if firstBlock == nil {
				firstBlock = block
			} else {
				result.IsMultilineSelection = true
			}
		}

		if table != nil {
			if firstTable == nil {
				retrieveTable(&result, table)
				firstTable = table
				if table.IsWholeTableSelected && cellCount(table.Table) > 1 {
					result.CanMergeTableCell = true
					result.IsMultilineSelection = true
				}
			} else if table.Table == firstTable.Table &&
				(table.RowIndex != firstTable.RowIndex || table.ColumnIndex != firstTable.ColumnIndex) {
				result.CanMergeTableCell = true
				result.IsMultilineSelection = true
			}
		}

		paragraph, _ := block.(*model.Paragraph)
		for _, segment := range segments {
			// A marker after other selected segments usually starts the
			// next line of a full line selection and has no meaningful
			// format.
			if firstSegment || segment.SegmentType() != model.SegmentSelectionMarker {
				m.segment(effectiveFormat(doc, paragraph, segment, pending), model.SegmentCode(segment) != nil)
			}
			firstSegment = false

			if model.SegmentLink(segment) != nil {
				result.CanUnlink = true
			}
			if image, ok := segment.(*model.Image); ok {
				result.CanAddImageAltText = true
				if firstImage {
					result.ImageFormat = imageFormat(image)
					firstImage = false
				} else {
					result.ImageFormat = nil
				}
			}
		}
		return false
	}, selection.Option{
		IncludeListFormatHolder:       selection.Never,
		ContentUnderSelectedTableCell: selection.IgnoreForTableOrCell,
	})

	if result.FontSize != nil {
		if pt, ok := format.NormalizeFontSizeToPt(*result.FontSize, 0); ok {
			result.FontSize = stringPtr(format.FormatPt(pt))
		}
	}
	return result
}

// effectiveFormat layers the formats applying to a segment, lowest
// priority first.
func effectiveFormat(doc *model.Document, p *model.Paragraph, segment model.Segment, pending *model.SegmentFormat) model.SegmentFormat {
	f := doc.Format
	if p != nil {
		if p.SegmentFormat != nil {
			f = model.MergeSegmentFormat(f, *p.SegmentFormat)
		}
		if p.Decorator != nil {
			f = model.MergeSegmentFormat(f, p.Decorator.Format)
		}
	}
	f = model.MergeSegmentFormat(f, *segment.SegmentFormat())
	if code := model.SegmentCode(segment); code != nil && code.Format.FontFamily != "" {
		f.FontFamily = code.Format.FontFamily
	}
	if link := model.SegmentLink(segment); link != nil {
		if link.Format.TextColor != "" {
			f.TextColor = link.Format.TextColor
		}
		if link.Format.Underline != nil {
			f.Underline = model.Bool(*link.Format.Underline)
		}
	}
	if pending != nil {
		f = model.MergeSegmentFormat(f, *pending)
	}
	return f
}

func retrieveStructure(result *FormatState, path []model.BlockGroup, block model.Block) {
	for _, g := range path {
		switch g := g.(type) {
		case *model.ListItem:
			if !result.IsBullet && !result.IsNumbering && len(g.Levels) > 0 {
				listType := g.Levels[len(g.Levels)-1].ListType
				result.IsBullet = listType == "UL"
				result.IsNumbering = listType == "OL"
			}
		case *model.FormatContainer:
			if g.TagName == "blockquote" {
				result.IsBlockQuote = true
			}
		case *model.Code:
			result.IsCodeBlock = true
		}
	}
	if p, ok := block.(*model.Paragraph); ok {
		result.HeadingLevel = headingLevel(p)
		result.Direction = p.Format.Direction
		result.TextAlign = p.Format.TextAlign
	}
}

func headingLevel(p *model.Paragraph) int {
	if p.Decorator == nil {
		return 0
	}
	tag := p.Decorator.TagName
	if len(tag) != 2 || tag[0] != 'h' {
		return 0
	}
	level, err := strconv.Atoi(tag[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

func retrieveTable(result *FormatState, table *selection.TableContext) {
	result.IsInTable = true
	t := table.Table
	headerRow := len(t.Rows) > 0 && len(t.Rows[0].Cells) > 0
	for r, row := range t.Rows {
		for _, cell := range row.Cells {
			if cell.IsHeader {
				result.TableHasHeader = true
			} else if r == 0 {
				headerRow = false
			}
		}
	}
	result.TableFormat = &TableFormatState{
		Rows:           len(t.Rows),
		Columns:        model.TableColumnCount(t),
		HasHeaderRow:   headerRow,
		BorderCollapse: t.Format.BorderCollapse,
		TableLayout:    t.Format.TableLayout,
	}
}

func cellCount(t *model.Table) int {
	count := 0
	for _, row := range t.Rows {
		count += len(row.Cells)
	}
	return count
}

// imageFormat splits the top border shorthand of an image.
func imageFormat(image *model.Image) *ImageFormatState {
	state := &ImageFormatState{
		BorderRadius: image.Format.BorderRadius,
		BoxShadow:    image.Format.BoxShadow,
	}
	for _, part := range strings.Fields(image.Format.BorderTop) {
		switch {
		case borderStyles[part]:
			state.BorderStyle = part
		case state.BorderWidth == "" && startsWithDigit(part):
			state.BorderWidth = part
		default:
			state.BorderColor = part
		}
	}
	return state
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

func startsWithDigit(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.')
}

func stringPtr(s string) *string {
	return &s
}
