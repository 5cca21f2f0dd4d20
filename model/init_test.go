package model_test

import (
	. "github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
)

var (
	doc      = builder.Doc
	p        = builder.P
	implicit = builder.Implicit
	text     = builder.Text
	br       = builder.Br
	img      = builder.Img
	marker   = builder.Marker
	li       = builder.Li
	quote    = builder.Quote
	code     = builder.Code
	table    = builder.Table
	row      = builder.Row
	td       = builder.Td
	spanLeft = builder.SpanLeft
	spanAbv  = builder.SpanAbove

	bold = SegmentFormat{FontWeight: "bold"}
	red  = SegmentFormat{TextColor: "red"}
)
