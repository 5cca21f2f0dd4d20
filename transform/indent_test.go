package transform_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	. "github.com/cozy/contentmodel-go/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutdentThenIndent(t *testing.T) {
	para := p(margin("40px"), sel(text("a")))
	d := doc(para)

	assert.True(t, SetModelIndentation(d, Outdent, 0))
	assert.Equal(t, "", para.Format.MarginLeft)
	assert.True(t, SetModelIndentation(d, Indent, 0))
	assert.Equal(t, "40px", para.Format.MarginLeft)

	assert.True(t, SetModelIndentation(d, Outdent, 0))
	assert.False(t, SetModelIndentation(d, Outdent, 0), "margin is clamped at 0")
	assert.Equal(t, "", para.Format.MarginLeft)
}

func TestIndentationGrid(t *testing.T) {
	for _, tc := range []struct {
		name     string
		original string
		op       Indentation
		length   float64
		expected string
	}{
		{"indent from zero", "", Indent, 0, "40px"},
		{"indent snaps up", "30px", Indent, 0, "40px"},
		{"outdent snaps down", "50px", Outdent, 0, "40px"},
		{"custom step", "20px", Indent, 20, "40px"},
		{"points", "30pt", Indent, 0, "80px"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			para := p(margin(tc.original), sel(text("a")))
			assert.True(t, SetModelIndentation(doc(para), tc.op, tc.length))
			assert.Equal(t, tc.expected, para.Format.MarginLeft)
		})
	}
}

func TestIndentRightToLeft(t *testing.T) {
	para := p(model.BlockFormat{DirectionFormat: model.DirectionFormat{Direction: "rtl"}}, sel(text("a")))
	assert.True(t, SetModelIndentation(doc(para), Indent, 0))
	assert.Equal(t, "40px", para.Format.MarginRight)
	assert.Equal(t, "", para.Format.MarginLeft)
}

func TestIndentNothingSelected(t *testing.T) {
	para := p(text("a"))
	assert.False(t, SetModelIndentation(doc(para), Indent, 0))
	assert.Equal(t, "", para.Format.MarginLeft)
}

func TestIndentListItem(t *testing.T) {
	item := li("OL", sel(text("a")))
	d := doc(item)

	require.True(t, SetModelIndentation(d, Indent, 0))
	require.Len(t, item.Levels, 2)
	assert.Equal(t, "OL", item.Levels[1].ListType)
	meta, ok := format.ReadListMetadata(item.Levels[1].Dataset)
	require.True(t, ok)
	assert.True(t, meta.ApplyListStyleFromLevel)
	assert.Equal(t, "", item.Blocks[0].(*model.Paragraph).Format.MarginLeft)

	assert.True(t, SetModelIndentation(d, Outdent, 0))
	assert.True(t, SetModelIndentation(d, Outdent, 0))
	assert.Empty(t, item.Levels)
	assert.False(t, SetModelIndentation(d, Outdent, 0))
	assert.False(t, SetModelIndentation(d, Indent, 0))
}

func TestIndentAdjacentListItems(t *testing.T) {
	first, second := li("UL", sel(text("a"))), li("UL", sel(text("b")))
	d := doc(first, second)

	assert.True(t, SetModelIndentation(d, Indent, 0))
	assert.Len(t, first.Levels, 2)
	assert.Len(t, second.Levels, 2)
	assert.Len(t, d.Blocks, 2, "items are not merged")
}

func TestIndentFormatContainer(t *testing.T) {
	inner := p(sel(text("a")))
	container := quote(inner)
	assert.True(t, SetModelIndentation(doc(container), Indent, 0))
	assert.Equal(t, "40px", container.Format.MarginLeft)
	assert.Equal(t, "", inner.Format.MarginLeft)

	first, second := p(sel(text("a"))), p(text("b"))
	shared := quote(first, second)
	assert.True(t, SetModelIndentation(doc(shared), Indent, 0))
	assert.Equal(t, "", shared.Format.MarginLeft)
	assert.Equal(t, "40px", first.Format.MarginLeft)
}

func TestIndentInsideTableCell(t *testing.T) {
	para := p(sel(text("a")))
	d := doc(table(row(td(para), td("b"))))
	assert.True(t, SetModelIndentation(d, Indent, 0))
	assert.Equal(t, "40px", para.Format.MarginLeft)
}

func TestIndentInvalidatesCache(t *testing.T) {
	para, other := p(sel(text("a"))), p(text("b"))
	d := doc(para, other)
	d.Cache = model.NewElementCache()
	d.Cache.Set(para, dom.NewElement("div"))
	d.Cache.Set(other, dom.NewElement("div"))

	assert.True(t, SetModelIndentation(d, Indent, 0))
	assert.Nil(t, d.Cache.Get(para))
	assert.NotNil(t, d.Cache.Get(other))
}
