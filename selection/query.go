package selection

import "github.com/cozy/contentmodel-go/model"

// HasSelectionInBlock reports whether a block or anything inside it is
// selected.
func HasSelectionInBlock(block model.Block) bool {
	switch b := block.(type) {
	case *model.Paragraph:
		for _, segment := range b.Segments {
			if HasSelectionInSegment(segment) {
				return true
			}
		}
		return false
	case *model.Table:
		for _, row := range b.Rows {
			for _, cell := range row.Cells {
				if cell != nil && HasSelectionInBlockGroup(cell) {
					return true
				}
			}
		}
		return false
	case *model.Divider:
		return b.IsSelected
	case *model.Entity:
		return b.IsSelected
	case *model.ListItem, *model.FormatContainer, *model.Code, *model.GeneralBlock:
		g, _ := model.AsBlockGroup(b)
		return HasSelectionInBlockGroup(g)
	default:
		model.Unreachable(b)
		return false
	}
}

// HasSelectionInSegment reports whether a segment, or the content of a
// general segment, is selected.
func HasSelectionInSegment(segment model.Segment) bool {
	if segment.Selected() {
		return true
	}
	if general, ok := segment.(*model.GeneralSegment); ok {
		return HasSelectionInBlockGroup(general)
	}
	return false
}

// HasSelectionInBlockGroup reports whether a group is selected or holds a
// selection.
func HasSelectionInBlockGroup(group model.BlockGroup) bool {
	if s, ok := group.(model.SelectableNode); ok && s.Selected() {
		return true
	}
	for _, block := range group.ChildBlocks() {
		if HasSelectionInBlock(block) {
			return true
		}
	}
	return false
}

// Location is one selected location reported by IterateSelections.
type Location struct {
	Path     []model.BlockGroup
	Table    *TableContext
	Block    model.Block
	Segments []model.Segment
}

func collect(group model.BlockGroup, opt Option) []Location {
	var result []Location
	IterateSelections(group, func(path []model.BlockGroup, table *TableContext, block model.Block, segments []model.Segment) bool {
		result = append(result, Location{Path: path, Table: table, Block: block, Segments: segments})
		return false
	}, opt)
	return result
}

// SelectedSegment is a selected segment with the paragraph holding it, nil
// for a list format holder.
type SelectedSegment struct {
	Segment   model.Segment
	Paragraph *model.Paragraph
	Path      []model.BlockGroup
}

// GetSelectedSegmentsAndParagraphs returns the selected segments in
// document order. List format holders are included when requested.
// Read-only entities are skipped unless includeEntity is set.
func GetSelectedSegmentsAndParagraphs(group model.BlockGroup, includeFormatHolder, includeEntity bool) []SelectedSegment {
	mode := Never
	if includeFormatHolder {
		mode = AllSegments
	}
	var result []SelectedSegment
	for _, loc := range collect(group, Option{IncludeListFormatHolder: mode}) {
		p, isParagraph := loc.Block.(*model.Paragraph)
		if loc.Segments == nil || !(isParagraph || (includeFormatHolder && loc.Block == nil)) {
			continue
		}
		for _, segment := range loc.Segments {
			if e, ok := segment.(*model.Entity); ok && e.Entity.IsReadonly && !includeEntity {
				continue
			}
			result = append(result, SelectedSegment{Segment: segment, Paragraph: p, Path: loc.Path})
		}
	}
	return result
}

// GetSelectedSegments returns the selected segments in document order.
func GetSelectedSegments(group model.BlockGroup, includeFormatHolder bool) []model.Segment {
	var result []model.Segment
	for _, s := range GetSelectedSegmentsAndParagraphs(group, includeFormatHolder, false) {
		result = append(result, s.Segment)
	}
	return result
}

// GetSelectedParagraphs returns the paragraphs holding selected segments.
// A selection ending on a marker at the start of a paragraph, or starting on
// a marker at the end of one, does not count that paragraph.
func GetSelectedParagraphs(group model.BlockGroup) []*model.Paragraph {
	locations := trimMarkerOnly(collect(group, Option{IncludeListFormatHolder: Never}))
	var result []*model.Paragraph
	for _, loc := range locations {
		if p, ok := loc.Block.(*model.Paragraph); ok {
			result = append(result, p)
		}
	}
	return result
}

// OperationalBlock is a block an operation applies to, with its parent.
type OperationalBlock struct {
	Parent model.BlockGroup
	Block  model.Block
	Path   []model.BlockGroup
}

// GetOperationalBlocks returns, for each selected location, its closest
// ancestor group of one of the given types, or the selected block itself
// when there is none. The search stops at groups of stopTypes. Each group
// is returned once.
func GetOperationalBlocks(group model.BlockGroup, types []model.BlockGroupType, stopTypes []model.BlockGroupType) []OperationalBlock {
	locations := trimMarkerOnly(collect(group, Option{
		IncludeListFormatHolder:       Never,
		ContentUnderSelectedTableCell: IgnoreForTable,
	}))

	var result []OperationalBlock
	seen := map[model.BlockGroup]bool{}
	for _, loc := range locations {
		if i := closestAncestor(loc.Path, types, stopTypes); i >= 0 {
			ancestor := loc.Path[i]
			if seen[ancestor] {
				continue
			}
			seen[ancestor] = true
			block, _ := ancestor.(model.Block)
			var parent model.BlockGroup
			if i+1 < len(loc.Path) {
				parent = loc.Path[i+1]
			}
			result = append(result, OperationalBlock{Parent: parent, Block: block, Path: loc.Path})
		} else if loc.Block != nil {
			result = append(result, OperationalBlock{Parent: loc.Path[0], Block: loc.Block, Path: loc.Path})
		}
	}
	return result
}

// closestAncestor returns the index in path of the closest group of one of
// types, or -1 when a group of stopTypes comes first.
func closestAncestor(path []model.BlockGroup, types, stopTypes []model.BlockGroupType) int {
	for i, g := range path {
		t := g.BlockGroupType()
		for _, want := range types {
			if t == want {
				return i
			}
		}
		for _, stop := range stopTypes {
			if t == stop {
				return -1
			}
		}
	}
	return -1
}

// trimMarkerOnly drops a last location holding only a marker at the start
// of its paragraph and a first location holding only a marker at its end.
func trimMarkerOnly(locations []Location) []Location {
	if len(locations) > 1 && markerOnly(locations[len(locations)-1], false) {
		locations = locations[:len(locations)-1]
	}
	if len(locations) > 1 && markerOnly(locations[0], true) {
		locations = locations[1:]
	}
	return locations
}

func markerOnly(loc Location, atEnd bool) bool {
	p, ok := loc.Block.(*model.Paragraph)
	if !ok || len(loc.Segments) != 1 || len(p.Segments) == 0 {
		return false
	}
	if loc.Segments[0].SegmentType() != model.SegmentSelectionMarker {
		return false
	}
	edge := p.Segments[0]
	if atEnd {
		edge = p.Segments[len(p.Segments)-1]
	}
	return loc.Segments[0] == edge
}
