package dom2model

import (
	"strconv"
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

const maxSpan = 1000

// tableRows returns the rows of a table element, looking through its row
// groups.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case dom.IsElement(c, "tr"):
			rows = append(rows, c)
		case dom.IsElement(c, "thead", "tbody", "tfoot"):
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if dom.IsElement(r, "tr") {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

func span(el *html.Node, attr string) int {
	n, err := strconv.Atoi(strings.TrimSpace(dom.Attr(el, attr)))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxSpan)
}

// ProcessTable adds a table. Cells spanning several columns or rows are
// expanded into a grid where the covered cells are flagged SpanLeft or
// SpanAbove.
func ProcessTable(group model.BlockGroup, el *html.Node, ctx *Context) {
	table := model.NewTable(0, model.TableFormat{})
	ctx.FormatParsers.Table.Parse(&table.Format, el, &ctx.State, nil)
	table.Dataset = format.Dataset(el)
	model.AddBlock(group, table)
	ctx.cache(table, el)

	var grid [][]*model.TableCell
	place := func(r, c int, cell *model.TableCell) {
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], nil)
		}
		if grid[r][c] == nil {
			grid[r][c] = cell
		}
	}

	rows := tableRows(el)
	grid = make([][]*model.TableCell, len(rows))
	for r, tr := range rows {
		row := &model.TableRow{}
		ctx.FormatParsers.Block.Parse(&row.Format, tr, &ctx.State, nil)
		if h := dom.StyleValue(tr, "height"); h != "" {
			row.Height = format.ParseValueWithUnit(h, 0, "px")
		}
		table.Rows = append(table.Rows, row)

		col := 0
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if !dom.IsElement(td, "td", "th") {
				continue
			}
			for col < len(grid[r]) && grid[r][col] != nil {
				col++
			}
			colSpan, rowSpan := span(td, "colspan"), span(td, "rowspan")
			isHeader := dom.IsElement(td, "th")
			for dr := 0; dr < rowSpan && r+dr < len(rows); dr++ {
				for dc := 0; dc < colSpan; dc++ {
					if dr == 0 && dc == 0 {
						place(r, col, parseCell(td, ctx))
					} else {
						place(r+dr, col+dc, model.NewTableCell(dc > 0, dr > 0, isHeader, model.TableCellFormat{}))
					}
				}
			}
			col += colSpan
		}
	}

	sel, selected := ctx.Selection.(TableSelection)
	selected = selected && sel.Table == el
	for r, row := range table.Rows {
		for c, cell := range grid[r] {
			if cell == nil {
				cell = model.NewTableCell(false, false, false, model.TableCellFormat{})
			}
			if selected && r >= sel.FirstRow && r <= sel.LastRow && c >= sel.FirstColumn && c <= sel.LastColumn {
				cell.IsSelected = true
			}
			row.Cells = append(row.Cells, cell)
		}
	}

	cols := columnWidths(el)
	for c := 0; c < model.TableColumnCount(table); c++ {
		width := 0.0
		if c < len(cols) {
			width = cols[c]
		}
		for _, row := range table.Rows {
			if width > 0 {
				break
			}
			if c < len(row.Cells) && !row.Cells[c].SpanLeft && !row.Cells[c].SpanAbove {
				width = format.ParseValueWithUnit(row.Cells[c].Format.Width, 0, "px")
				break
			}
		}
		if width <= 0 {
			width = model.DefaultColumnWidth
		}
		table.Widths = append(table.Widths, width)
	}

	if ctx.DomIndexer != nil {
		ctx.DomIndexer.OnTable(el, table)
	}
}

// columnWidths reads the widths declared by <col> elements, 0 when unset.
func columnWidths(table *html.Node) []float64 {
	var widths []float64
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsElement(c, "colgroup") {
			continue
		}
		for col := c.FirstChild; col != nil; col = col.NextSibling {
			if !dom.IsElement(col, "col") {
				continue
			}
			width := format.ParseValueWithUnit(dom.StyleValue(col, "width"), 0, "px")
			for i := 0; i < span(col, "span"); i++ {
				widths = append(widths, width)
			}
		}
	}
	return widths
}

func parseCell(td *html.Node, ctx *Context) *model.TableCell {
	cell := model.NewTableCell(false, false, dom.IsElement(td, "th"), model.TableCellFormat{})
	ctx.FormatParsers.TableCell.Parse(&cell.Format, td, &ctx.State, nil)
	cell.Dataset = format.Dataset(td)

	_, tableSelection := ctx.Selection.(TableSelection)
	ctx.Scope(func() {
		if d := cell.Format.Direction; d != "" {
			ctx.Direction = d
		}
		ctx.BlockFormat = model.BlockFormat{}
		ctx.ListFormat = ListFormat{}
		ctx.FormatParsers.SegmentOnTableCell.Parse(&ctx.SegmentFormat, td, &ctx.State, nil)
		if tableSelection {
			ctx.IsInSelection = false
		}
		ctx.ProcessChildren(cell, td)
	})
	return cell
}
