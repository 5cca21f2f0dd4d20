package transform_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/model"
	. "github.com/cozy/contentmodel-go/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentFormatStep(t *testing.T) {
	a := sel(text("a", model.SegmentFormat{TextColor: "red"}))
	b := sel(text("b"))
	c := text("c")
	para := p(a, b, c)
	d := doc(para)
	d.Cache = model.NewElementCache()
	d.Cache.Set(para, dom.NewElement("div"))

	inverse, result := ApplyStep(d, NewSegmentFormatStep(model.SegmentFormat{FontWeight: "bold"}))
	require.Empty(t, result.Failed)
	assert.Equal(t, model.SegmentFormat{TextColor: "red", FontWeight: "bold"}, a.Format)
	assert.Equal(t, model.SegmentFormat{FontWeight: "bold"}, b.Format)
	assert.Equal(t, model.SegmentFormat{}, c.Format)
	assert.Nil(t, d.Cache.Get(para))

	assert.Empty(t, inverse.Apply(d).Failed)
	assert.Equal(t, model.SegmentFormat{TextColor: "red"}, a.Format)
	assert.Equal(t, model.SegmentFormat{}, b.Format)
}

func TestSegmentFormatStepOnMarker(t *testing.T) {
	m := marker()
	d := doc(p(text("a"), m))
	result := NewSegmentFormatStep(model.SegmentFormat{Underline: model.Bool(true)}).Apply(d)
	require.Empty(t, result.Failed)
	assert.True(t, model.IsTrue(m.Format.Underline))
}

func TestSegmentFormatStepOnListItem(t *testing.T) {
	item := li("OL", sel(text("a")))
	require.NotNil(t, item.FormatHolder)
	NewSegmentFormatStep(model.SegmentFormat{FontSize: "20px"}).Apply(doc(item))
	assert.Equal(t, "20px", item.FormatHolder.Format.FontSize)

	partial := li("OL", sel(text("a")), text("b"))
	NewSegmentFormatStep(model.SegmentFormat{FontSize: "20px"}).Apply(doc(partial))
	assert.Equal(t, "", partial.FormatHolder.Format.FontSize)
}

func TestSegmentFormatStepWithoutSelection(t *testing.T) {
	result := NewSegmentFormatStep(model.SegmentFormat{FontWeight: "bold"}).Apply(doc(p(text("a"))))
	assert.Equal(t, "no selected segment", result.Failed)
}

func TestBlockFormatStep(t *testing.T) {
	first, second := p(margin("40px"), sel(text("a"))), p(sel(text("b")))
	other := p(text("c"))
	d := doc(first, second, other)

	inverse, result := ApplyStep(d, &BlockFormatStep{TextAlign: "center", Direction: "rtl"})
	require.Empty(t, result.Failed)
	assert.Equal(t, "center", first.Format.TextAlign)
	assert.Equal(t, "rtl", second.Format.Direction)
	assert.Equal(t, "", first.Format.MarginLeft)
	assert.Equal(t, "40px", first.Format.MarginRight)
	assert.Equal(t, model.BlockFormat{}, other.Format)

	assert.Empty(t, inverse.Apply(d).Failed)
	assert.Equal(t, margin("40px"), first.Format)
	assert.Equal(t, model.BlockFormat{}, second.Format)

	result = (&BlockFormatStep{LineHeight: "2"}).Apply(doc(p(text("x"))))
	assert.Equal(t, "no selected paragraph", result.Failed)
}
