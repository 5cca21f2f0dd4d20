package dom2model_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	. "github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParseBlocks(t *testing.T) {
	got, _ := parse(t, `<div>hello <b>world</b></div><p>second</p><h1>Title</h1>`, nil)
	assert.Equal(t, doc(
		p(text("hello "), bold("world")),
		decorated(p("second"), "p"),
		h(1, "Title"),
	), got)
}

func TestParseWhiteSpace(t *testing.T) {
	got, _ := parse(t, "<div>  a   b  </div>\n<div><span>x </span> y</div><pre>  keep\n  this</pre>", nil)
	assert.Equal(t, doc(
		p("a b"),
		p("x y"),
		code("  keep\n  this"),
	), got)
}

func TestParseInheritedFormat(t *testing.T) {
	got, _ := parse(t, `<div style="color: red">a<span style="font-size: 2em">b</span></div>`, nil)
	assert.Equal(t, doc(
		p(red, text("a", red), text("b", model.SegmentFormat{TextColor: "red", FontSize: "32px"})),
	), got)
}

func TestParseFormatContainer(t *testing.T) {
	got, _ := parse(t, `<blockquote><div>q</div></blockquote><div style="margin-left: 40px"><div>in</div></div>`, nil)

	indented := model.NewFormatContainer("div", model.ContainerFormat{
		BlockFormat: model.BlockFormat{MarginFormat: model.MarginFormat{MarginLeft: "40px"}},
	})
	indented.Blocks = []model.Block{p("in")}
	assert.Equal(t, doc(quote(p("q")), indented), got)
}

func TestParseLists(t *testing.T) {
	got, _ := parse(t, `<ol><li>one</li><li>two<ul><li>nested</li></ul></li></ol>`, nil)
	assert.Equal(t, doc(
		li("OL", "one"),
		li("OL", "two"),
		li("OL UL", "nested"),
	), got)

	t.Run("restarted numbering", func(t *testing.T) {
		got, _ := parse(t, `<ol><li>a</li></ol><div>x</div><ol start="2"><li>b</li></ol><ol><li>c</li></ol>`, nil)
		require.Len(t, got.Blocks, 4)
		assert.Zero(t, got.Blocks[2].(*model.ListItem).Levels[0].Format.StartNumberOverride)
		assert.Equal(t, 1, got.Blocks[3].(*model.ListItem).Levels[0].Format.StartNumberOverride)
	})

	t.Run("li outside a list", func(t *testing.T) {
		got, _ := parse(t, `<li>alone</li>`, nil)
		assert.Equal(t, doc(p("alone")), got)
	})
}

func TestParseTable(t *testing.T) {
	got, _ := parse(t, `<table><tr><td colspan="2">a</td></tr><tr><td>b</td><th>c</th></tr></table>`, nil)

	spanned := spanLeft()
	spanned.Blocks = []model.Block{p(builder.Br())}
	want := table(
		row(td("a"), spanned),
		row(td("b"), th("c")),
	)
	want.Widths = []float64{model.DefaultColumnWidth, model.DefaultColumnWidth}
	assert.Equal(t, doc(want), got)
}

func TestParseTableRowSpan(t *testing.T) {
	got, _ := parse(t, `<table><tr><td rowspan="2">a</td><td>b</td></tr><tr><td>c</td></tr></table>`, nil)
	require.Len(t, got.Blocks, 1)
	tbl := got.Blocks[0].(*model.Table)
	require.Len(t, tbl.Rows, 2)
	require.Len(t, tbl.Rows[1].Cells, 2)
	assert.True(t, tbl.Rows[1].Cells[0].SpanAbove)
	assert.NotEmpty(t, tbl.Rows[1].Cells[0].Blocks)
	assert.Equal(t, []model.Block{implicit("c")}, tbl.Rows[1].Cells[1].Blocks)
}

func TestParseLinkAndCode(t *testing.T) {
	got, _ := parse(t, `<a href="https://x.y" style="color: red">link</a> <code>c</code>`, nil)
	link := &model.Link{Format: model.LinkFormat{Href: "https://x.y", TextColor: "red"}}
	assert.Equal(t, doc(
		text("link", link), " ", text("c", &model.CodeDecorator{}),
	), got)
}

func TestParseRangeSelection(t *testing.T) {
	got, _ := parse(t, `<div id="d">hello world</div>`, func(body *html.Node) Selection {
		txt := byID(body, "d").FirstChild
		return RangeSelection{Range: dom.NewRange(txt, 2, txt, 5)}
	})
	assert.Equal(t, doc(
		p(text("he"), builder.Sel(text("llo")), text(" world")),
	), got)

	t.Run("collapsed in an empty element", func(t *testing.T) {
		got, _ := parse(t, `<div id="e"></div>`, func(body *html.Node) Selection {
			return RangeSelection{Range: dom.Collapse(byID(body, "e"), 0)}
		})
		assert.Equal(t, doc(p(marker())), got)
	})

	t.Run("outside of the selection", func(t *testing.T) {
		got, _ := parse(t, `<div id="a">a</div><div id="b">b</div>`, func(body *html.Node) Selection {
			txt := byID(body, "b").FirstChild
			return RangeSelection{Range: dom.NewRange(txt, 0, txt, 1)}
		})
		assert.Equal(t, doc(p("a"), p(builder.Sel(text("b")))), got)
	})
}

func TestParseImageSelection(t *testing.T) {
	got, _ := parse(t, `<img id="i" src="a.png" alt="A">`, func(body *html.Node) Selection {
		return ImageSelection{Image: byID(body, "i")}
	})
	want := img("a.png")
	want.Alt = "A"
	want.Format.ID = "i"
	want.IsSelected = true
	want.IsSelectedAsImageSelection = true
	assert.Equal(t, doc(want), got)
}

func TestParseTableSelection(t *testing.T) {
	got, _ := parse(t, `<table id="t"><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>`, func(body *html.Node) Selection {
		return TableSelection{Table: byID(body, "t"), LastColumn: 1}
	})
	tbl := got.Blocks[0].(*model.Table)
	assert.True(t, tbl.Rows[0].Cells[0].IsSelected)
	assert.True(t, tbl.Rows[0].Cells[1].IsSelected)
	assert.False(t, tbl.Rows[1].Cells[0].IsSelected)
	assert.False(t, tbl.Rows[0].Cells[0].Blocks[0].(*model.Paragraph).Segments[0].Selected())
}

func TestParseGeneralAndDisallowed(t *testing.T) {
	got, _ := parse(t, `<script>x</script><button>b</button>`, nil)
	require.Len(t, got.Blocks, 1)
	paragraph := got.Blocks[0].(*model.Paragraph)
	require.Len(t, paragraph.Segments, 1)
	general := paragraph.Segments[0].(*model.GeneralSegment)
	assert.Equal(t, "button", dom.Tag(general.Element))
	assert.Nil(t, general.Element.FirstChild)
	assert.Equal(t, []model.Block{implicit("b")}, general.Blocks)

	got, _ = parse(t, `<button>b</button>`, nil, Option{AdditionalDisallowedTags: []string{"BUTTON"}})
	assert.Empty(t, got.Blocks)

	got, _ = parse(t, `<iframe></iframe>`, nil, Option{AdditionalAllowedTags: []string{"iframe"}})
	assert.Len(t, got.Blocks, 1)
}

func TestProcessorOverride(t *testing.T) {
	got, _ := parse(t, `<div>a<b>bb</b></div>`, nil, Option{
		ProcessorOverride: map[string]ElementProcessor{
			"b": func(group model.BlockGroup, _ *html.Node, ctx *Context) {
				AddTextSegment(group, "X", ctx)
			},
		},
	})
	assert.Equal(t, doc(p("aX")), got)
}

func TestAdditionalFormatParsers(t *testing.T) {
	highlight := format.Chain[model.SegmentFormat]{{
		Name: "highlight",
		Parse: func(f *model.SegmentFormat, el *html.Node, _ *format.State, _ dom.Declarations) {
			if dom.IsElement(el, "mark") {
				f.BackgroundColor = "yellow"
			}
		},
	}}
	got, _ := parse(t, `<mark>m</mark>`, nil, Option{
		AdditionalFormatParsers: &format.Chains{Segment: highlight},
	})
	assert.Equal(t, doc(text("m", model.SegmentFormat{BackgroundColor: "yellow"})), got)
}

func TestAllowCacheElement(t *testing.T) {
	got, body := parse(t, `<div>a</div><hr>`, nil, Option{AllowCacheElement: true})
	require.NotNil(t, got.Cache)
	require.Len(t, got.Blocks, 2)
	assert.Same(t, body.FirstChild, got.Cache.Get(got.Blocks[0]))
	assert.Same(t, body.LastChild, got.Cache.Get(got.Blocks[1]))
}

type recordingIndexer struct {
	paragraphs int
	segments   []string
	tables     int
}

func (r *recordingIndexer) OnParagraph(*html.Node, *model.Paragraph) { r.paragraphs++ }

func (r *recordingIndexer) OnSegment(node *html.Node, _ *model.Paragraph, _ []model.Segment) {
	if node.Type == html.TextNode {
		r.segments = append(r.segments, node.Data)
	} else {
		r.segments = append(r.segments, dom.Tag(node))
	}
}

func (r *recordingIndexer) OnTable(*html.Node, *model.Table) { r.tables++ }

func TestDomIndexer(t *testing.T) {
	indexer := &recordingIndexer{}
	parse(t, `<div>a<br>b</div><table><tr><td>c</td></tr></table>`, nil, Option{DomIndexer: indexer})
	assert.Equal(t, 1, indexer.paragraphs)
	assert.Equal(t, []string{"a", "br", "b", "c"}, indexer.segments)
	assert.Equal(t, 1, indexer.tables)
}

func TestEntity(t *testing.T) {
	got, body := parse(t, `<div class="_Entity _EType_mention _EId_m1">@ann</div><span class="_Entity _EType_tag">#x</span>`, nil)
	require.Len(t, got.Blocks, 2)

	block := got.Blocks[0].(*model.Entity)
	assert.Equal(t, "mention", block.Entity.EntityType)
	assert.Equal(t, "m1", block.Entity.ID)
	assert.Same(t, body.FirstChild, block.Wrapper)

	inline := got.Blocks[1].(*model.Paragraph).Segments[0].(*model.Entity)
	assert.Equal(t, "tag", inline.Entity.EntityType)
}
