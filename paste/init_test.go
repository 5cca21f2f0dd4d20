package paste_test

import (
	"strings"

	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
)

var (
	doc    = builder.Doc
	p      = builder.P
	text   = builder.Text
	marker = builder.Marker
	table  = builder.Table
	row    = builder.Row
	td     = builder.Td
	sel    = builder.Sel[*model.Text]

	plainAndHTML = []string{"text/plain", "text/html"}
)

// segments describes the segments of a paragraph, "|" standing for a
// selection marker.
func segments(paragraph *model.Paragraph) []string {
	var result []string
	for _, s := range paragraph.Segments {
		switch s := s.(type) {
		case *model.Text:
			result = append(result, s.Text)
		case *model.SelectionMarker:
			result = append(result, "|")
		default:
			result = append(result, string(s.SegmentType()))
		}
	}
	return result
}

// plainText joins the text of all paragraphs under a group.
func plainText(group model.BlockGroup) string {
	var parts []string
	for _, block := range group.ChildBlocks() {
		switch b := block.(type) {
		case *model.Paragraph:
			for _, s := range b.Segments {
				if t, ok := s.(*model.Text); ok {
					parts = append(parts, t.Text)
				}
			}
		default:
			if g, ok := model.AsBlockGroup(block); ok {
				parts = append(parts, plainText(g))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
