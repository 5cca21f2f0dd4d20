package transform

import (
	"strings"

	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/selection"
)

// TabRun is the text inserted by the tab key inside a paragraph.
const TabRun = "    "

// caret returns the paragraph and index of the marker of a collapsed
// selection. ok is false for a range or an empty selection.
func caret(doc *model.Document) (p *model.Paragraph, index int, ok bool) {
	selected := selection.GetSelectedSegmentsAndParagraphs(doc, false, true)
	if len(selected) != 1 || selected[0].Paragraph == nil {
		return nil, 0, false
	}
	marker, isMarker := selected[0].Segment.(*model.SelectionMarker)
	if !isMarker {
		return nil, 0, false
	}
	p = selected[0].Paragraph
	for i, segment := range p.Segments {
		if segment == marker {
			return p, i, true
		}
	}
	return nil, 0, false
}

// HandleTabKey handles the tab key, shift+tab when shift is set. List items
// and selections over several paragraphs are indented or outdented, as is
// a paragraph with the caret at its start. Elsewhere tab inserts TabRun at
// the caret and shift+tab removes the spaces before it, up to a run. It
// reports whether the document changed.
func HandleTabKey(doc *model.Document, shift bool) bool {
	op := Indent
	if shift {
		op = Outdent
	}

	blocks := selection.GetOperationalBlocks(doc, listItemTypes, cellTypes)
	if len(blocks) == 0 {
		return false
	}
	for _, ob := range blocks {
		if _, ok := ob.Block.(*model.ListItem); ok {
			return SetModelIndentation(doc, op, 0)
		}
	}

	p, index, collapsed := caret(doc)
	if !collapsed || len(blocks) > 1 || index == 0 {
		return SetModelIndentation(doc, op, 0)
	}

	marker := p.Segments[index].(*model.SelectionMarker)
	if shift {
		prev, ok := p.Segments[index-1].(*model.Text)
		if !ok {
			return false
		}
		trimmed := strings.TrimRight(prev.Text, " ")
		if n := len(prev.Text) - len(trimmed); n > len(TabRun) {
			trimmed = prev.Text[:len(prev.Text)-len(TabRun)]
		}
		if trimmed == prev.Text {
			return false
		}
		prev.Text = trimmed
		if prev.Text == "" {
			p.Segments = append(p.Segments[:index-1], p.Segments[index:]...)
		}
	} else {
		tab := model.NewText(TabRun, marker.Format, nil, nil)
		p.Segments = append(p.Segments[:index], append([]model.Segment{tab}, p.Segments[index:]...)...)
	}
	doc.Cache.Invalidate(p)
	return true
}

// HandleBackspaceOnListItem outdents the list item holding a caret at the
// start of its first paragraph. It reports whether the document changed.
func HandleBackspaceOnListItem(doc *model.Document) bool {
	p, index, collapsed := caret(doc)
	if !collapsed || index != 0 {
		return false
	}
	blocks := selection.GetOperationalBlocks(doc, listItemTypes, cellTypes)
	if len(blocks) != 1 {
		return false
	}
	item, ok := blocks[0].Block.(*model.ListItem)
	if !ok || len(item.Levels) == 0 || len(item.Blocks) == 0 || item.Blocks[0] != model.Block(p) {
		return false
	}
	return SetModelIndentation(doc, Outdent, 0)
}
