package dom2model_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	. "github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var (
	doc      = builder.Doc
	p        = builder.P
	implicit = builder.Implicit
	h        = builder.H
	text     = builder.Text
	bold     = builder.Bold
	img      = builder.Img
	marker   = builder.Marker
	li       = builder.Li
	quote    = builder.Quote
	code     = builder.Code
	table    = builder.Table
	row      = builder.Row
	td       = builder.Td
	th       = builder.Th
	spanLeft = builder.SpanLeft

	red = model.SegmentFormat{TextColor: "red"}
)

// parse parses an HTML fragment. select, when given, builds the selection
// from the parsed body.
func parse(t *testing.T, source string, selection func(body *html.Node) Selection, options ...Option) (*model.Document, *html.Node) {
	t.Helper()
	body, err := dom.ParseBody(source)
	require.NoError(t, err)
	var sel Selection
	if selection != nil {
		sel = selection(body)
	}
	return ParseDOM(body, NewContext(sel, options...)), body
}

func byID(root *html.Node, id string) *html.Node {
	return dom.FindFirst(root, func(n *html.Node) bool { return dom.Attr(n, "id") == id })
}

func decorated(paragraph *model.Paragraph, tag string) *model.Paragraph {
	paragraph.Decorator = &model.ParagraphDecorator{TagName: tag}
	return paragraph
}
