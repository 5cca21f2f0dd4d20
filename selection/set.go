package selection

import "github.com/cozy/contentmodel-go/model"

// anchors are the nodes bounding a selection, compared by identity.
type anchors struct {
	start, end interface{}
}

// SetSelection clears every selection flag of a group, then selects the
// nodes from the first anchor to the last one, both included. Anchors are
// segments, blocks or table cells of the tree. Two cells of the same table
// select the rectangle between them. Without anchors the selection is only
// cleared; when an anchor cannot be found the selection is left cleared.
//
// Unselected selection markers are removed from their paragraph unless they
// are its only segment.
func SetSelection(group model.BlockGroup, nodes ...interface{}) {
	a := anchors{}
	switch len(nodes) {
	case 0:
	case 1:
		a.start, a.end = nodes[0], nodes[0]
	default:
		a.start, a.end = nodes[0], nodes[len(nodes)-1]
	}
	if a.start != nil && (!holds(group, a.start) || !holds(group, a.end)) {
		a = anchors{}
	}
	a.setGroup(group, false)
}

// holds reports whether node is group or one of its descendants.
func holds(group model.BlockGroup, node interface{}) bool {
	if group == node {
		return true
	}
	for _, block := range group.ChildBlocks() {
		if block == node {
			return true
		}
		switch b := block.(type) {
		case *model.Paragraph:
			for _, segment := range b.Segments {
				if segment == node {
					return true
				}
				if g, ok := segment.(*model.GeneralSegment); ok && holds(g, node) {
					return true
				}
			}
		case *model.Table:
			for _, row := range b.Rows {
				for _, cell := range row.Cells {
					if holds(cell, node) {
						return true
					}
				}
			}
		default:
			if g, ok := model.AsBlockGroup(b); ok && holds(g, node) {
				return true
			}
		}
	}
	return false
}

// handle runs fn on a node, entering the selection at the start anchor and
// leaving it after the end anchor.
func (a anchors) handle(inSelection bool, node interface{}, fn func(bool) bool) bool {
	inSelection = inSelection || (a.start != nil && node == a.start)
	inSelection = fn(inSelection)
	return inSelection && node != a.end
}

func (a anchors) setGroup(group model.BlockGroup, inSelection bool) bool {
	return a.handle(inSelection, group, func(inSelection bool) bool {
		was := inSelection
		inSelection = a.setBlocks(group, inSelection)
		switch g := group.(type) {
		case *model.GeneralSegment:
			g.IsSelected = was && inSelection
		case *model.GeneralBlock:
			g.IsSelected = was && inSelection
		case *model.ListItem:
			g.IsSelected = was && inSelection
		}
		return inSelection
	})
}

func (a anchors) setBlocks(group model.BlockGroup, inSelection bool) bool {
	for _, block := range group.ChildBlocks() {
		inSelection = a.handle(inSelection, block, func(inSelection bool) bool {
			switch b := block.(type) {
			case *model.Paragraph:
				return a.setParagraph(b, inSelection)
			case *model.Table:
				return a.setTable(b, inSelection)
			case *model.Divider:
				b.IsSelected = inSelection
			case *model.Entity:
				b.IsSelected = inSelection
			case *model.ListItem, *model.FormatContainer, *model.Code, *model.GeneralBlock:
				g, _ := model.AsBlockGroup(b)
				return a.setGroup(g, inSelection)
			default:
				model.Unreachable(b)
			}
			return inSelection
		})
	}
	return inSelection
}

func (a anchors) setParagraph(p *model.Paragraph, inSelection bool) bool {
	for i, segment := range p.Segments {
		inSelection = a.handle(inSelection, segment, func(inSelection bool) bool {
			switch s := segment.(type) {
			case *model.SelectionMarker:
				// Inside a range only an anchor or a leading marker stays.
				s.IsSelected = inSelection && (i == 0 || segment == a.start || segment == a.end)
			case *model.GeneralSegment:
				return a.setGroup(s, inSelection)
			case *model.Image:
				s.IsSelected = inSelection
				s.IsSelectedAsImageSelection = segment == a.start && segment == a.end
			default:
				segment.SetSelected(inSelection)
			}
			return inSelection
		})
	}
	model.RemoveUnselectedMarkers(p)
	return inSelection
}

func (a anchors) setTable(t *model.Table, inSelection bool) bool {
	startRow, startCol := -1, -1
	if cell, ok := a.start.(*model.TableCell); ok {
		startRow, startCol = model.TableCellCoordinates(t, cell)
	}
	endRow, endCol := -1, -1
	if cell, ok := a.end.(*model.TableCell); ok {
		endRow, endCol = model.TableCellCoordinates(t, cell)
	}

	if !inSelection && startRow >= 0 && endRow >= 0 {
		firstRow, lastRow := min(startRow, endRow), max(startRow, endRow)
		firstCol, lastCol := min(startCol, endCol), max(startCol, endCol)
		for r, row := range t.Rows {
			for c, cell := range row.Cells {
				cell.IsSelected = r >= firstRow && r <= lastRow && c >= firstCol && c <= lastCol
				clearGroup(cell)
			}
		}
		return false
	}

	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			in := inSelection || cell == a.start
			out := a.setBlocks(cell, in)
			cell.IsSelected = in && out
			inSelection = out && cell != a.end
		}
	}
	return inSelection
}

// clearGroup clears the content of a group without looking for anchors.
func clearGroup(group model.BlockGroup) {
	anchors{}.setBlocks(group, false)
}
