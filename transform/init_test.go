package transform_test

import (
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
)

var (
	doc    = builder.Doc
	p      = builder.P
	text   = builder.Text
	li     = builder.Li
	quote  = builder.Quote
	marker = builder.Marker
	table  = builder.Table
	row    = builder.Row
	td     = builder.Td
	sel    = builder.Sel[*model.Text]
)

func margin(left string) model.BlockFormat {
	return model.BlockFormat{MarginFormat: model.MarginFormat{MarginLeft: left}}
}

// texts returns the text of each text segment of a paragraph.
func texts(paragraph *model.Paragraph) []string {
	var result []string
	for _, s := range paragraph.Segments {
		if t, ok := s.(*model.Text); ok {
			result = append(result, t.Text)
		}
	}
	return result
}
