package selection_test

import (
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
)

var (
	doc    = builder.Doc
	p      = builder.P
	text   = builder.Text
	img    = builder.Img
	marker = builder.Marker
	li     = builder.Li
	quote  = builder.Quote
	table  = builder.Table
	row    = builder.Row
	td     = builder.Td
	sel    = builder.Sel[*model.Text]
)

// selected returns the texts of the selected text segments of a paragraph.
func selected(paragraph *model.Paragraph) []string {
	var result []string
	for _, s := range paragraph.Segments {
		if t, ok := s.(*model.Text); ok && t.IsSelected {
			result = append(result, t.Text)
		}
	}
	return result
}
