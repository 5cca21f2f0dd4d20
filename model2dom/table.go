package model2dom

import (
	"strconv"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

func handleTableBlock(parent *html.Node, block model.Block, ctx *Context, refNode *html.Node) *html.Node {
	return HandleTable(parent, block.(*model.Table), ctx, refNode)
}

// HandleTable renders a table. Rows and cells are always rendered again: a
// cached table element is reused but emptied first. Cells flagged SpanLeft or
// SpanAbove are folded into the colspan and rowspan of the cell they are
// merged into.
func HandleTable(parent *html.Node, table *model.Table, ctx *Context, refNode *html.Node) *html.Node {
	if len(table.Rows) == 0 {
		return refNode
	}
	el := ctx.Cache.Get(table)
	if el != nil {
		refNode = reuseCachedElement(parent, el, refNode, ctx)
		for el.FirstChild != nil {
			el.RemoveChild(el.FirstChild)
		}
	} else {
		el = dom.NewElement("table")
		ctx.FormatAppliers.Table.Apply(&table.Format, el, &ctx.State)
		format.ApplyDataset(table.Dataset, el)
		insertBlock(parent, el, refNode, ctx)
		ctx.Cache.Set(table, el)
	}

	if colgroup := columnGroup(table.Widths); colgroup != nil {
		el.AppendChild(colgroup)
	}
	tbody := dom.NewElement("tbody")
	el.AppendChild(tbody)

	for r, row := range table.Rows {
		tr := dom.NewElement("tr")
		ctx.FormatAppliers.Block.Apply(&row.Format, tr, &ctx.State)
		if row.Height > 0 {
			dom.SetStyle(tr, "height", format.FormatPx(row.Height))
		}
		tbody.AppendChild(tr)

		for c, cell := range row.Cells {
			if cell.IsSelected {
				ctx.selectCell(el, r, c)
			}
			if cell.SpanLeft || cell.SpanAbove {
				continue
			}
			tag := "td"
			if cell.IsHeader {
				tag = "th"
			}
			td := dom.NewElement(tag)
			if n := colSpan(row, c); n > 1 {
				dom.SetAttr(td, "colspan", strconv.Itoa(n))
			}
			if n := rowSpan(table, r, c); n > 1 {
				dom.SetAttr(td, "rowspan", strconv.Itoa(n))
			}
			ctx.FormatAppliers.TableCell.Apply(&cell.Format, td, &ctx.State)
			format.ApplyDataset(cell.Dataset, td)
			tr.AppendChild(td)

			HandleBlockGroupChildren(td, cell, ctx)
		}
	}
	return refNode
}

func colSpan(row *model.TableRow, c int) int {
	n := 1
	for c+n < len(row.Cells) && row.Cells[c+n].SpanLeft {
		n++
	}
	return n
}

func rowSpan(table *model.Table, r, c int) int {
	n := 1
	for r+n < len(table.Rows) && c < len(table.Rows[r+n].Cells) {
		cell := table.Rows[r+n].Cells[c]
		if !cell.SpanAbove || cell.SpanLeft {
			break
		}
		n++
	}
	return n
}

// columnGroup returns a <colgroup> declaring the column widths, or nil when
// every column has the default width.
func columnGroup(widths []float64) *html.Node {
	custom := false
	for _, w := range widths {
		if w != model.DefaultColumnWidth {
			custom = true
			break
		}
	}
	if !custom {
		return nil
	}
	colgroup := dom.NewElement("colgroup")
	for _, w := range widths {
		col := dom.NewElement("col")
		dom.SetStyle(col, "width", format.FormatPx(w))
		colgroup.AppendChild(col)
	}
	return colgroup
}
