package model2dom_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/dom2model"
	. "github.com/cozy/contentmodel-go/model2dom"
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
	hr       = builder.Hr
	table    = builder.Table
	row      = builder.Row
	td       = builder.Td
	th       = builder.Th
	spanLeft = builder.SpanLeft
)

// render renders a document into a new root element.
func render(d *model.Document, options ...Option) (*html.Node, *Context) {
	root := dom.NewElement("div")
	ctx := NewContext(options...)
	ContentModelToDOM(root, d, ctx)
	return root, ctx
}

// parse parses an HTML fragment into a document and returns its body.
func parse(t *testing.T, source string, options ...dom2model.Option) (*model.Document, *html.Node) {
	t.Helper()
	body, err := dom.ParseBody(source)
	require.NoError(t, err)
	return dom2model.ParseDOM(body, dom2model.NewContext(nil, options...)), body
}

func olWithStart(start int, args ...interface{}) *model.ListItem {
	item := li("OL", args...)
	item.Levels[0].Format.StartNumberOverride = start
	return item
}
