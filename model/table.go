package model

// Default sizes given to table columns and rows whose size is unknown, in
// pixels.
const (
	DefaultColumnWidth = 120.0
	DefaultRowHeight   = 22.0
)

// NormalizeTable turns a table into a full grid:
//
//   - every row gets as many cells as the widest row, and Widths one entry
//     per column;
//   - cells of the first row cannot span above, cells of the first column
//     cannot span left;
//   - content of spanned cells moves to the cell they are merged into,
//     paragraphs holding only line breaks stay where they are;
//   - each cell without content, spanned or not, gets an explicit paragraph
//     holding a line break in the default format.
func NormalizeTable(t *Table, defaultFormat *SegmentFormat) {
	columns := 0
	for _, row := range t.Rows {
		if len(row.Cells) > columns {
			columns = len(row.Cells)
		}
	}
	for _, row := range t.Rows {
		for len(row.Cells) < columns {
			row.Cells = append(row.Cells, NewTableCell(false, false, false, TableCellFormat{}))
		}
	}
	for len(t.Widths) < columns {
		t.Widths = append(t.Widths, DefaultColumnWidth)
	}
	if len(t.Widths) > columns {
		t.Widths = t.Widths[:columns]
	}

	for r, row := range t.Rows {
		for c, cell := range row.Cells {
			if r == 0 {
				cell.SpanAbove = false
			}
			if c == 0 {
				cell.SpanLeft = false
			}
		}
	}

	for r, row := range t.Rows {
		for c, cell := range row.Cells {
			if cell.SpanLeft || cell.SpanAbove {
				moveCellContent(headCell(t, r, c), cell)
			}
		}
	}

	seen := map[Block]bool{}
	format := SegmentFormat{}
	if defaultFormat != nil {
		format = *defaultFormat
	}
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			blocks := cell.Blocks[:0]
			for _, b := range cell.Blocks {
				if !seen[b] {
					seen[b] = true
					blocks = append(blocks, b)
				}
			}
			cell.Blocks = blocks
			if len(cell.Blocks) == 0 {
				p := NewParagraph(false, BlockFormat{}, nil, nil)
				p.Segments = append(p.Segments, NewBr(format))
				AddBlock(cell, p)
			}
		}
	}
}

// headCell returns the cell a spanned cell at (r, c) is merged into.
func headCell(t *Table, r, c int) *TableCell {
	cell := t.Rows[r].Cells[c]
	for cell.SpanLeft || cell.SpanAbove {
		if cell.SpanLeft {
			c--
		} else {
			r--
		}
		cell = t.Rows[r].Cells[c]
	}
	return cell
}

// moveCellContent appends the visible blocks of a spanned cell to the cell
// it is merged into. Empty paragraphs are kept in the spanned cell.
func moveCellContent(target, spanned *TableCell) {
	var kept []Block
	for _, b := range spanned.Blocks {
		if p, ok := b.(*Paragraph); ok && IsEmptyParagraph(p) {
			kept = append(kept, b)
			continue
		}
		target.Blocks = append(target.Blocks, b)
	}
	spanned.Blocks = kept
}

// TableColumnCount returns the number of cells of the widest row.
func TableColumnCount(t *Table) int {
	columns := 0
	for _, row := range t.Rows {
		if len(row.Cells) > columns {
			columns = len(row.Cells)
		}
	}
	return columns
}

// TableCellCoordinates returns the row and column of a cell, or -1, -1.
func TableCellCoordinates(t *Table, cell *TableCell) (int, int) {
	for r, row := range t.Rows {
		for c, candidate := range row.Cells {
			if candidate == cell {
				return r, c
			}
		}
	}
	return -1, -1
}
