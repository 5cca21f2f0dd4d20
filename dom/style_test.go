package dom_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	decls := dom.ParseStyle(`font-family: "Segoe UI; Bold", Arial; color:red;;background:url(data:image/png;base64,AA==) ; margin-left: 10px !important`)
	assert.Equal(t, `"Segoe UI; Bold", Arial`, decls.Get("font-family"))
	assert.Equal(t, "red", decls.Get("color"))
	assert.Equal(t, "url(data:image/png;base64,AA==)", decls.Get("background"))
	assert.Equal(t, "10px", decls.Get("margin-left"))
	assert.Len(t, decls, 4)

	assert.Nil(t, dom.ParseStyle("  "))
	assert.Len(t, dom.ParseStyle("color; :red; width: 1px"), 1)
}

func TestParseStyleReturnsCopies(t *testing.T) {
	first := dom.ParseStyle("color: red")
	first.Set("color", "blue")
	assert.Equal(t, "red", dom.ParseStyle("color: red").Get("color"))
}

func TestDeclarationsSetRemove(t *testing.T) {
	var decls dom.Declarations
	decls = decls.Set("color", "red").Set("width", "10px").Set("color", "blue")
	assert.Equal(t, "color: blue; width: 10px", decls.String())
	decls = decls.Set("color", "")
	assert.Equal(t, "width: 10px", decls.String())
	assert.False(t, decls.Has("color"))
}

func TestSetStyle(t *testing.T) {
	div := dom.NewElement("div")
	dom.SetStyle(div, "margin-left", "40px")
	dom.SetStyle(div, "color", "red")
	assert.Equal(t, "margin-left: 40px; color: red", dom.Attr(div, "style"))
	dom.SetStyle(div, "margin-left", "")
	dom.SetStyle(div, "color", "")
	assert.False(t, dom.HasAttr(div, "style"))
}

func TestDataset(t *testing.T) {
	body, err := dom.ParseBody(`<ol data-editing-info='{"orderedStyleType":1}' data-x="1"></ol>`)
	require.NoError(t, err)
	ol := body.FirstChild
	assert.Equal(t, map[string]string{
		"editingInfo": `{"orderedStyleType":1}`,
		"x":           "1",
	}, dom.Dataset(ol))

	dom.SetDataset(ol, "listId", "3")
	assert.Equal(t, "3", dom.Attr(ol, "data-list-id"))
}

func TestWrapAndUnwrap(t *testing.T) {
	body, err := dom.ParseBody(`<span>a<i>b</i></span>`)
	require.NoError(t, err)
	span := body.FirstChild
	dom.WrapChildren(span, "b")
	assert.Equal(t, "<span><b>a<i>b</i></b></span>", dom.OuterHTML(span))

	dom.Unwrap(span.FirstChild)
	assert.Equal(t, "<span>a<i>b</i></span>", dom.OuterHTML(span))

	dom.Wrap(span, "u")
	assert.Equal(t, "<u><span>a<i>b</i></span></u>", dom.InnerHTML(body))
}

func TestEntity(t *testing.T) {
	body, err := dom.ParseBody(`<div class="x _Entity _EType_mention _EId_m1 _EReadonly_1">@bob</div><div class="_Entity">no type</div>`)
	require.NoError(t, err)
	info, ok := dom.ParseEntity(body.FirstChild)
	assert.True(t, ok)
	assert.Equal(t, dom.EntityInfo{Type: "mention", ID: "m1", IsReadonly: true}, info)

	_, ok = dom.ParseEntity(body.LastChild)
	assert.False(t, ok)

	span := dom.NewElement("span")
	dom.MarkEntity(span, dom.EntityInfo{Type: "chip", ID: "c1"})
	assert.Equal(t, "_Entity _EType_chip _EId_c1", dom.Attr(span, "class"))
}
