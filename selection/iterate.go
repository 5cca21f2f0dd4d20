// Package selection reads and writes the selection flags of a Content Model
// tree.
package selection

import "github.com/cozy/contentmodel-go/model"

// ListFormatHolderMode tells when the format holder of a list item is
// reported along with its selected segments.
type ListFormatHolderMode int

// List format holder modes.
const (
	// AllSegments reports the holder when every segment of the item is
	// selected.
	AllSegments ListFormatHolderMode = iota
	// AnySegment reports the holder when any segment of the item is
	// selected.
	AnySegment
	// Never skips the holder.
	Never
)

// TableCellMode tells how the content of a selected table cell is visited.
type TableCellMode int

// Table cell modes.
const (
	// Include visits the content of selected cells as selected.
	Include TableCellMode = iota
	// IgnoreForTable reports a fully selected table as a single block
	// instead of visiting its cells.
	IgnoreForTable
	// IgnoreForTableOrCell also skips the content of selected cells.
	IgnoreForTableOrCell
)

// GeneralElementMode tells how a selected general segment or block is
// reported.
type GeneralElementMode int

// General element modes.
const (
	// ContentOnly visits the content of the element.
	ContentOnly GeneralElementMode = iota
	// GeneralElementOnly reports the element itself.
	GeneralElementOnly
	// Both reports the element and visits its content.
	Both
)

// Option customises IterateSelections. The zero value is the default.
type Option struct {
	IncludeListFormatHolder            ListFormatHolderMode
	ContentUnderSelectedTableCell      TableCellMode
	ContentUnderSelectedGeneralElement GeneralElementMode
}

// TableContext locates a table cell.
type TableContext struct {
	Table                *model.Table
	RowIndex             int
	ColumnIndex          int
	IsWholeTableSelected bool
}

// Callback is invoked for each selected location. path lists the groups
// from the innermost, holding block, to the root. block is nil for a
// selected table cell and for a list format holder. segments holds the
// selected segments of a paragraph. Returning true stops the iteration.
type Callback func(path []model.BlockGroup, table *TableContext, block model.Block, segments []model.Segment) bool

// IterateSelections walks the selected parts of a group depth first.
func IterateSelections(group model.BlockGroup, fn Callback, opts ...Option) {
	var opt Option
	if len(opts) > 0 {
		opt = opts[0]
	}
	iterate([]model.BlockGroup{group}, fn, opt, nil, false)
}

func handleGeneralContent(mode GeneralElementMode, selected bool) bool {
	return mode != GeneralElementOnly || !selected
}

func handleGeneralElement(mode GeneralElementMode) bool {
	return mode != ContentOnly
}

func withGroup(path []model.BlockGroup, group model.BlockGroup) []model.BlockGroup {
	return append([]model.BlockGroup{group}, path...)
}

// iterate returns true when fn stopped the iteration. treatAllAsSelect is
// set inside a selected cell or general element.
func iterate(path []model.BlockGroup, fn Callback, opt Option, table *TableContext, treatAllAsSelect bool) bool {
	parent := path[0]
	hasSelected, hasUnselected := false, false

	for _, block := range parent.ChildBlocks() {
		switch b := block.(type) {
		case *model.Paragraph:
			var segments []model.Segment
			for _, segment := range b.Segments {
				selected := treatAllAsSelect || segment.Selected()
				if general, ok := segment.(*model.GeneralSegment); ok {
					mode := opt.ContentUnderSelectedGeneralElement
					content := handleGeneralContent(mode, selected)
					if selected && handleGeneralElement(mode) {
						segments = append(segments, segment)
					}
					if content && iterate(withGroup(path, general), fn, opt, table, selected) {
						return true
					}
				} else if selected {
					segments = append(segments, segment)
				}
				if selected {
					hasSelected = true
				} else {
					hasUnselected = true
				}
			}
			if len(segments) > 0 && fn(path, table, b, segments) {
				return true
			}

		case *model.Table:
			if iterateTable(path, b, fn, opt, treatAllAsSelect) {
				return true
			}

		case *model.GeneralBlock:
			selected := treatAllAsSelect || b.IsSelected
			mode := opt.ContentUnderSelectedGeneralElement
			content := handleGeneralContent(mode, selected)
			newPath := withGroup(path, b)
			if selected && handleGeneralElement(mode) && fn(newPath, table, b, nil) {
				return true
			}
			if content && iterate(newPath, fn, opt, table, selected && content) {
				return true
			}

		case *model.ListItem, *model.FormatContainer, *model.Code:
			group, _ := model.AsBlockGroup(b)
			if iterate(withGroup(path, group), fn, opt, table, treatAllAsSelect) {
				return true
			}

		case *model.Divider:
			if (treatAllAsSelect || b.IsSelected) && fn(path, table, b, nil) {
				return true
			}

		case *model.Entity:
			if (treatAllAsSelect || b.IsSelected) && fn(path, table, b, nil) {
				return true
			}

		default:
			model.Unreachable(b)
		}
	}

	if item, ok := parent.(*model.ListItem); ok && item.FormatHolder != nil &&
		opt.IncludeListFormatHolder != Never && hasSelected &&
		(!hasUnselected || opt.IncludeListFormatHolder == AnySegment) {
		return fn(path, table, nil, []model.Segment{item.FormatHolder})
	}
	return false
}

func iterateTable(path []model.BlockGroup, t *model.Table, fn Callback, opt Option, treatAllAsSelect bool) bool {
	whole := len(t.Rows) > 0
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			if cell == nil || !cell.IsSelected {
				whole = false
			}
		}
	}
	if opt.ContentUnderSelectedTableCell != Include && whole {
		return fn(path, nil, t, nil)
	}

	for r, row := range t.Rows {
		for c, cell := range row.Cells {
			if cell == nil {
				continue
			}
			ctx := &TableContext{Table: t, RowIndex: r, ColumnIndex: c, IsWholeTableSelected: whole}
			if cell.IsSelected && fn(path, ctx, nil, nil) {
				return true
			}
			if !cell.IsSelected || opt.ContentUnderSelectedTableCell != IgnoreForTableOrCell {
				selected := treatAllAsSelect || cell.IsSelected
				if iterate(withGroup(path, cell), fn, opt, ctx, selected) {
					return true
				}
			}
		}
	}
	return false
}
