package paste

import (
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/selection"
	"go.uber.org/zap"
)

// MergePastedModel inserts the blocks of a pasted document at the selection
// of target. A selected range is deleted first. The selection is left
// collapsed after the inserted content. It reports whether target changed.
func MergePastedModel(target, pasted *model.Document) bool {
	if pasted == nil || len(pasted.Blocks) == 0 {
		return false
	}
	selected := selection.GetSelectedSegmentsAndParagraphs(target, false, true)
	if len(selected) == 0 || selected[0].Paragraph == nil || len(selected[0].Path) == 0 {
		return false
	}

	p, group := selected[0].Paragraph, selected[0].Path[0]
	index := collapse(target, selected)
	if index < 0 {
		return false
	}

	blocks := pasted.Blocks
	if first, ok := blocks[0].(*model.Paragraph); ok && len(blocks) == 1 {
		p.Segments = insertSegments(p.Segments, index, first.Segments)
		target.Cache.Invalidate(p)
		logger.L().Debug("pasted inline", zap.Int("segments", len(first.Segments)))
		return true
	}

	head := append([]model.Segment(nil), p.Segments[:index]...)
	tail := append([]model.Segment(nil), p.Segments[index:]...)

	var inserted []model.Block
	if first, ok := blocks[0].(*model.Paragraph); ok {
		p.Segments = append(head, first.Segments...)
		inserted = append(inserted, p)
		blocks = blocks[1:]
	} else if len(head) > 0 {
		p.Segments = head
		inserted = append(inserted, p)
	}
	inserted = append(inserted, blocks...)

	if last, ok := inserted[len(inserted)-1].(*model.Paragraph); ok && last != p {
		last.Segments = append(last.Segments, tail...)
	} else {
		rest := model.NewParagraph(false, p.Format, p.SegmentFormat, p.Decorator)
		rest.Segments = tail
		inserted = append(inserted, rest)
	}

	children := group.ChildBlocks()
	at := blockIndex(children, p)
	if at < 0 {
		return false
	}
	merged := make([]model.Block, 0, len(children)+len(inserted))
	merged = append(merged, children[:at]...)
	merged = append(merged, inserted...)
	merged = append(merged, children[at+1:]...)
	group.SetChildBlocks(merged)

	target.Cache.Invalidate(p)
	target.Cache.Invalidate(group)
	logger.L().Debug("pasted blocks", zap.Int("blocks", len(inserted)))
	return true
}

// collapse deletes the selected segments and leaves a selection marker
// where the first of them was. It returns the index of the marker in the
// first selected paragraph, or -1.
func collapse(doc *model.Document, selected []selection.SelectedSegment) int {
	first := selected[0]
	if len(selected) == 1 {
		if _, ok := first.Segment.(*model.SelectionMarker); ok {
			return segmentIndex(first.Paragraph.Segments, first.Segment)
		}
	}

	p := first.Paragraph
	index := segmentIndex(p.Segments, first.Segment)
	if index < 0 {
		return -1
	}
	marker := model.NewSelectionMarker(*first.Segment.SegmentFormat())

	touched := []*model.Paragraph{}
	parents := map[*model.Paragraph]model.BlockGroup{}
	for _, s := range selected {
		if s.Paragraph == nil {
			continue
		}
		if i := segmentIndex(s.Paragraph.Segments, s.Segment); i >= 0 {
			s.Paragraph.Segments = append(s.Paragraph.Segments[:i], s.Paragraph.Segments[i+1:]...)
		}
		if _, seen := parents[s.Paragraph]; !seen && len(s.Path) > 0 {
			parents[s.Paragraph] = s.Path[0]
			touched = append(touched, s.Paragraph)
		}
	}
	p.Segments = insertSegments(p.Segments, index, []model.Segment{marker})
	doc.Cache.Invalidate(p)

	// The rest of the last paragraph joins the first one. Paragraphs in
	// between are emptied by the deletion and removed.
	for i, other := range touched {
		if other == p {
			continue
		}
		if i == len(touched)-1 {
			p.Segments = append(p.Segments, other.Segments...)
		}
		removeBlock(parents[other], other)
		doc.Cache.Invalidate(other)
	}
	return index
}

func insertSegments(segments []model.Segment, index int, inserted []model.Segment) []model.Segment {
	result := make([]model.Segment, 0, len(segments)+len(inserted))
	result = append(result, segments[:index]...)
	result = append(result, inserted...)
	return append(result, segments[index:]...)
}

func segmentIndex(segments []model.Segment, segment model.Segment) int {
	for i, s := range segments {
		if s == segment {
			return i
		}
	}
	return -1
}

func blockIndex(blocks []model.Block, block model.Block) int {
	for i, b := range blocks {
		if b == block {
			return i
		}
	}
	return -1
}

func removeBlock(group model.BlockGroup, block model.Block) {
	blocks := group.ChildBlocks()
	if i := blockIndex(blocks, block); i >= 0 {
		group.SetChildBlocks(append(blocks[:i], blocks[i+1:]...))
	}
}
