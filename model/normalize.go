package model

import (
	"strings"
)

// AddBlock appends a block to a group.
func AddBlock(group BlockGroup, block Block) {
	group.SetChildBlocks(append(group.ChildBlocks(), block))
}

// EnsureParagraph returns the last block of the group when it is a
// paragraph, or appends a new implicit paragraph with the given format.
func EnsureParagraph(group BlockGroup, format BlockFormat) *Paragraph {
	blocks := group.ChildBlocks()
	if n := len(blocks); n > 0 {
		if p, ok := blocks[n-1].(*Paragraph); ok {
			return p
		}
	}
	p := NewParagraph(true, format, nil, nil)
	AddBlock(group, p)
	return p
}

// AddSegment appends a segment to the last paragraph of the group, creating
// an implicit paragraph when needed, and returns that paragraph.
//
// Selection markers follow two rules: a selected marker is dropped when the
// previous segment is already selected, and a selected marker is replaced by
// a selected segment that follows it.
func AddSegment(group BlockGroup, segment Segment, format BlockFormat) *Paragraph {
	p := EnsureParagraph(group, format)
	var last Segment
	if n := len(p.Segments); n > 0 {
		last = p.Segments[n-1]
	}
	if segment.SegmentType() == SegmentSelectionMarker {
		if last == nil || !last.Selected() || !segment.Selected() {
			p.Segments = append(p.Segments, segment)
		}
		return p
	}
	if last != nil && last.SegmentType() == SegmentSelectionMarker && last.Selected() && segment.Selected() {
		p.Segments = p.Segments[:len(p.Segments)-1]
	}
	p.Segments = append(p.Segments, segment)
	return p
}

// NormalizeContentModel cleans up a freshly built or edited group: empty
// text segments and empty paragraphs are removed, insignificant white space at
// line boundaries is trimmed, empty containers are dropped and tables are
// normalized.
func NormalizeContentModel(group BlockGroup) {
	normalizeGroup(group, group.BlockGroupType() == GroupCode)
}

func normalizeGroup(group BlockGroup, preserveSpace bool) {
	blocks := group.ChildBlocks()
	result := blocks[:0]
	for _, block := range blocks {
		if normalizeBlock(block, preserveSpace) {
			result = append(result, block)
		}
	}
	for i := len(result); i < len(blocks); i++ {
		blocks[i] = nil
	}
	group.SetChildBlocks(result)
}

// normalizeBlock normalizes a block in place and reports whether it should
// be kept.
func normalizeBlock(block Block, preserveSpace bool) bool {
	switch b := block.(type) {
	case *Paragraph:
		normalizeParagraph(b, preserveSpace)
		return len(b.Segments) > 0
	case *Table:
		for _, row := range b.Rows {
			for _, cell := range row.Cells {
				normalizeGroup(cell, preserveSpace)
			}
		}
		NormalizeTable(b, nil)
		return len(b.Rows) > 0
	case *ListItem:
		normalizeGroup(b, preserveSpace)
		return len(b.Blocks) > 0
	case *FormatContainer:
		normalizeGroup(b, preserveSpace)
		return len(b.Blocks) > 0
	case *Code:
		normalizeGroup(b, true)
		return len(b.Blocks) > 0
	case *GeneralBlock:
		normalizeGroup(b, preserveSpace)
		return true
	case *Divider, *Entity:
		return true
	default:
		Unreachable(b)
		return false
	}
}

const collapsibleSpace = " \t\n\r\f"

// NormalizeParagraph trims white space a browser would not render and drops
// empty text segments. Paragraphs with a "pre" white space format only lose
// their empty text.
func NormalizeParagraph(p *Paragraph) {
	normalizeParagraph(p, false)
}

func normalizeParagraph(p *Paragraph, preserveSpace bool) {
	if !preserveSpace && !strings.HasPrefix(p.Format.WhiteSpace, "pre") {
		lineStart := true
		for i, seg := range p.Segments {
			switch s := seg.(type) {
			case *Text:
				if lineStart {
					s.Text = strings.TrimLeft(s.Text, collapsibleSpace)
				}
				if s.Text != "" {
					lineStart = strings.HasSuffix(s.Text, " ")
				}
				if endsLine(p.Segments, i) {
					s.Text = strings.TrimRight(s.Text, collapsibleSpace)
				}
			case *Br:
				lineStart = true
			case *SelectionMarker:
			default:
				lineStart = false
			}
		}
	}
	segments := p.Segments[:0]
	for _, seg := range p.Segments {
		if t, ok := seg.(*Text); ok && t.Text == "" {
			continue
		}
		segments = append(segments, seg)
	}
	for i := len(segments); i < len(p.Segments); i++ {
		p.Segments[i] = nil
	}
	p.Segments = segments
	if len(p.Segments) > 1 {
		RemoveUnselectedMarkers(p)
	}
}

// endsLine reports whether only markers or empty text follow segment i before
// a line break or the end of the paragraph.
func endsLine(segments []Segment, i int) bool {
	for _, seg := range segments[i+1:] {
		switch s := seg.(type) {
		case *Br:
			return true
		case *SelectionMarker:
		case *Text:
			if s.Text != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// RemoveUnselectedMarkers drops the unselected selection markers of a
// paragraph, unless nothing else would be left.
func RemoveUnselectedMarkers(p *Paragraph) {
	segments := p.Segments[:0]
	for _, seg := range p.Segments {
		if m, ok := seg.(*SelectionMarker); ok && !m.IsSelected {
			continue
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return
	}
	p.Segments = segments
}

// IsEmptyParagraph reports whether a paragraph has no visible content: only
// line breaks and unselected markers.
func IsEmptyParagraph(p *Paragraph) bool {
	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case *Br:
		case *SelectionMarker:
			if s.IsSelected {
				return false
			}
		case *Text:
			if strings.Trim(s.Text, collapsibleSpace) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
