package model2dom_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/format"
	. "github.com/cozy/contentmodel-go/model2dom"
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestRenderParagraphs(t *testing.T) {
	root, ctx := render(doc(
		p(text("a"), bold("b")),
		h(1, "T"),
		implicit("x"),
		hr(),
	))
	assert.Equal(t, `<div><span>a</span><span><b>b</b></span></div><h1><span>T</span></h1><span>x</span><hr/>`, dom.InnerHTML(root))
	assert.Len(t, ctx.DomModification.AddedBlockElements, 3)
	assert.Empty(t, ctx.DomModification.RemovedBlockElements)
}

func TestRenderFormats(t *testing.T) {
	red := model.SegmentFormat{TextColor: "red"}
	italicRed := model.SegmentFormat{TextColor: "red", Italic: model.Bool(true)}
	margin := model.BlockFormat{MarginFormat: model.MarginFormat{MarginLeft: "40px"}}

	assert.Equal(t,
		`<div style="margin-left: 40px; color: red"><span style="color: red"><i>a</i></span></div>`,
		RenderHTML(doc(p(margin, red, text("a", italicRed)))),
	)
	assert.Equal(t,
		`<span><a href="https://x.y">l</a></span><span><code>c</code></span>`,
		RenderHTML(doc(text("l", builder.Link("https://x.y")), text("c", &model.CodeDecorator{}))),
	)

	image := img("a.png")
	image.Alt = "A"
	image.Format.Width = "10px"
	assert.Equal(t, `<img src="a.png" alt="A" style="width: 10px"/>`, RenderHTML(doc(image)))
}

func TestRenderLists(t *testing.T) {
	t.Run("adjacent items share a list", func(t *testing.T) {
		assert.Equal(t,
			`<ol><li><span>a</span></li><li><span>b</span></li></ol>`,
			RenderHTML(doc(li("OL", "a"), li("OL", "b"))),
		)
	})

	t.Run("nested levels", func(t *testing.T) {
		assert.Equal(t,
			`<ol><li><span>a</span></li><ul><li><span>n</span></li></ul><li><span>b</span></li></ol>`,
			RenderHTML(doc(li("OL", "a"), li("OL UL", "n"), li("OL", "b"))),
		)
	})

	t.Run("list type change", func(t *testing.T) {
		assert.Equal(t,
			`<ol><li><span>a</span></li></ol><ul><li><span>b</span></li></ul>`,
			RenderHTML(doc(li("OL", "a"), li("UL", "b"))),
		)
	})

	t.Run("numbering continues across lists", func(t *testing.T) {
		assert.Equal(t,
			`<ol><li><span>a</span></li></ol><div><span>x</span></div><ol start="2"><li><span>b</span></li></ol>`,
			RenderHTML(doc(li("OL", "a"), p("x"), li("OL", "b"))),
		)
	})

	t.Run("start override opens a new list", func(t *testing.T) {
		assert.Equal(t,
			`<ol><li><span>a</span></li></ol><ol start="5"><li><span>b</span></li></ol>`,
			RenderHTML(doc(li("OL", "a"), olWithStart(5, "b"))),
		)
	})

	t.Run("metadata style", func(t *testing.T) {
		item := li("OL", "a")
		format.WriteListMetadata(item.Levels[0].Dataset, format.ListMetadata{OrderedStyleType: 3})
		assert.Equal(t,
			`<ol style="list-style-type: lower-roman" data-editing-info="{&#34;orderedStyleType&#34;:3}"><li><span>a</span></li></ol>`,
			RenderHTML(doc(item)),
		)
	})

	t.Run("item without levels is unwrapped", func(t *testing.T) {
		item := li("", "a")
		assert.Equal(t, `<div><span>a</span></div>`, RenderHTML(doc(item)))
		assert.False(t, item.Blocks[0].(*model.Paragraph).IsImplicit)
	})
}

func TestRenderTable(t *testing.T) {
	tbl := table(
		row(td("a"), spanLeft()),
		row(td("b"), th("c")),
	)
	tbl.Rows[1].Height = 30
	assert.Equal(t,
		`<table><tbody><tr><td colspan="2"><span>a</span></td></tr><tr style="height: 30px"><td><span>b</span></td><th><span>c</span></th></tr></tbody></table>`,
		RenderHTML(doc(tbl)),
	)

	t.Run("row span and widths", func(t *testing.T) {
		tbl := table(
			row(td("a"), td("b")),
			row(builder.SpanAbove(), td("c")),
		)
		tbl.Widths = []float64{50, model.DefaultColumnWidth}
		assert.Equal(t,
			`<table><colgroup><col style="width: 50px"/><col style="width: 120px"/></colgroup><tbody><tr><td rowspan="2"><span>a</span></td><td><span>b</span></td></tr><tr><td><span>c</span></td></tr></tbody></table>`,
			RenderHTML(doc(tbl)),
		)
	})
}

func TestRenderCodeAndContainers(t *testing.T) {
	block := code("x := 1")
	block.Language = "go"
	assert.Equal(t,
		`<pre><code class="language-go"><span>x := 1</span></code></pre><blockquote><div><span>q</span></div></blockquote>`,
		RenderHTML(doc(block, quote(p("q")), quote())),
	)
}

func TestRoundTrip(t *testing.T) {
	for _, source := range []string{
		`<div>hello <b>world</b></div><p>second</p><h1>Title</h1>`,
		`<div style="color: red">a<span style="font-size: 2em">b</span></div>`,
		`<ol><li>one</li><li>two<ul><li>nested</li></ul></li></ol>`,
		`<ol><li>a</li></ol><div>x</div><ol start="2"><li>b</li></ol><ol><li>c</li></ol>`,
		`<table><tr><td colspan="2">a</td></tr><tr><td>b</td><th>c</th></tr></table>`,
		`<table><tr><td rowspan="2">a</td><td>b</td></tr><tr><td>c</td></tr></table>`,
		`<blockquote><div>q</div></blockquote><div style="margin-left: 40px"><div>in</div></div>`,
		`<a href="https://x.y" style="color: red">link</a> <code>c</code>`,
		`<pre>  keep
  this</pre>`,
	} {
		t.Run(source, func(t *testing.T) {
			want, _ := parse(t, source)
			root, _ := render(want)
			got := dom2model.ParseDOM(root, dom2model.NewContext(nil))
			assert.Equal(t, want, got)
		})
	}
}

func TestReuseCachedElements(t *testing.T) {
	d, body := parse(t, `<div>a</div><hr><div>b</div>`, dom2model.Option{AllowCacheElement: true})
	require.Len(t, d.Blocks, 3)
	first, divider := body.FirstChild, body.FirstChild.NextSibling

	ctx := NewContext()
	ContentModelToDOM(body, d, ctx)
	assert.Equal(t, `<div>a</div><hr/><div>b</div>`, dom.InnerHTML(body))
	assert.Empty(t, ctx.DomModification.AddedBlockElements)
	assert.Empty(t, ctx.DomModification.RemovedBlockElements)

	d.Blocks = d.Blocks[1:]
	ctx = NewContext()
	ContentModelToDOM(body, d, ctx)
	assert.Equal(t, `<hr/><div>b</div>`, dom.InnerHTML(body))
	assert.Same(t, divider, body.FirstChild)
	assert.Equal(t, []*html.Node{first}, ctx.DomModification.RemovedBlockElements)

	t.Run("invalidated paragraph is rendered again", func(t *testing.T) {
		paragraph := d.Blocks[1].(*model.Paragraph)
		d.Cache.Invalidate(paragraph)
		paragraph.Segments[0].(*model.Text).Text = "c"

		ctx := NewContext()
		ContentModelToDOM(body, d, ctx)
		assert.Equal(t, `<hr/><div><span>c</span></div>`, dom.InnerHTML(body))
		assert.Len(t, ctx.DomModification.AddedBlockElements, 1)
		assert.Len(t, ctx.DomModification.RemovedBlockElements, 1)
	})
}

func TestReuseCachedLists(t *testing.T) {
	d, body := parse(t, `<ol><li>a</li><li>b</li><li>c</li></ol>`, dom2model.Option{AllowCacheElement: true})
	require.Len(t, d.Blocks, 3)
	list := body.FirstChild
	first, third := list.FirstChild, list.LastChild

	d.Blocks = d.Blocks[:2]
	ctx := NewContext()
	ContentModelToDOM(body, d, ctx)
	// Implicit paragraphs are not cached, the content of each item is
	// rendered again.
	assert.Equal(t, `<ol><li><span>a</span></li><li><span>b</span></li></ol>`, dom.InnerHTML(body))
	assert.Same(t, list, body.FirstChild)
	assert.Same(t, first, list.FirstChild)
	assert.Empty(t, ctx.DomModification.AddedBlockElements)
	assert.Contains(t, ctx.DomModification.RemovedBlockElements, third)
}

func TestRenderSelection(t *testing.T) {
	t.Run("text range", func(t *testing.T) {
		root, ctx := render(doc(p(text("he"), builder.Sel(text("llo")), text(" world"))))
		sel, ok := ctx.Selection.(dom2model.RangeSelection)
		require.True(t, ok)
		assert.Equal(t, "llo", sel.Range.Start.Node.Data)
		assert.Equal(t, 0, sel.Range.Start.Offset)
		assert.Same(t, sel.Range.Start.Node, sel.Range.End.Node)
		assert.Equal(t, 3, sel.Range.End.Offset)

		reparsed := dom2model.ParseDOM(root, dom2model.NewContext(ctx.Selection))
		assert.Equal(t, doc(p(text("he"), builder.Sel(text("llo")), text(" world"))), reparsed)
	})

	t.Run("collapsed marker", func(t *testing.T) {
		root, ctx := render(doc(p(text("ab"), marker())))
		r := ContentModelToDOM(dom.NewElement("div"), doc(p(text("ab"), marker())), NewContext())
		require.NotNil(t, r)
		assert.True(t, r.Collapsed())
		assert.Equal(t, 1, r.Start.Offset)

		reparsed := dom2model.ParseDOM(root, dom2model.NewContext(ctx.Selection))
		assert.Equal(t, doc(p(text("ab"), marker())), reparsed)
	})

	t.Run("image", func(t *testing.T) {
		image := builder.Sel(img("a.png"))
		image.IsSelectedAsImageSelection = true
		_, ctx := render(doc(image))
		sel, ok := ctx.Selection.(dom2model.ImageSelection)
		require.True(t, ok)
		assert.Equal(t, "a.png", dom.Attr(sel.Image, "src"))
	})

	t.Run("table cells", func(t *testing.T) {
		_, ctx := render(doc(table(
			row(builder.Sel(td("a")), builder.Sel(td("b"))),
			row(td("c"), td("d")),
		)))
		sel, ok := ctx.Selection.(dom2model.TableSelection)
		require.True(t, ok)
		assert.Equal(t, "table", dom.Tag(sel.Table))
		assert.Equal(t, dom2model.TableSelection{Table: sel.Table, LastColumn: 1}, sel)
	})

	t.Run("nothing selected", func(t *testing.T) {
		_, ctx := render(doc(p("a")))
		assert.Nil(t, ctx.Selection)
	})
}

func TestHandlerOverride(t *testing.T) {
	got := RenderHTML(doc(p("a"), hr()), Option{
		BlockHandlerOverride: map[string]BlockHandler{
			HandlerDivider: func(parent *html.Node, _ model.Block, _ *Context, refNode *html.Node) *html.Node {
				dom.InsertBefore(parent, dom.NewElement("br"), refNode)
				return refNode
			},
		},
	})
	assert.Equal(t, `<div><span>a</span></div><br/>`, got)
}
