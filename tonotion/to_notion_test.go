package tonotion_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/test/builder"
	. "github.com/cozy/contentmodel-go/tonotion"
	"github.com/dstotijn/go-notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	doc   = builder.Doc
	p     = builder.P
	h     = builder.H
	text  = builder.Text
	bold  = builder.Bold
	img   = builder.Img
	br    = builder.Br
	li    = builder.Li
	quote = builder.Quote
	code  = builder.Code
	hr    = builder.Hr
	table = builder.Table
	row   = builder.Row
	td    = builder.Td
	th    = builder.Th
)

func plain(rts []notion.RichText) []string {
	result := []string{}
	for _, rt := range rts {
		result = append(result, rt.PlainText)
	}
	return result
}

func TestCreatePageContent(t *testing.T) {
	t.Run("paragraph", func(t *testing.T) {
		blocks := CreatePageContent(doc(p("hello")))
		require.Len(t, blocks, 1)
		paragraph, ok := blocks[0].(*notion.ParagraphBlock)
		require.True(t, ok)
		require.Len(t, paragraph.RichText, 1)
		assert.Equal(t, notion.RichTextTypeText, paragraph.RichText[0].Type)
		assert.Equal(t, "hello", paragraph.RichText[0].Text.Content)
		assert.Nil(t, paragraph.RichText[0].Annotations)
	})

	t.Run("line break joins the text", func(t *testing.T) {
		blocks := CreatePageContent(doc(p("hi", br(), "there")))
		paragraph := blocks[0].(*notion.ParagraphBlock)
		assert.Equal(t, []string{"hi\nthere"}, plain(paragraph.RichText))
	})

	t.Run("annotations", func(t *testing.T) {
		italic := builder.Italic("three")
		italic.Format.FontWeight = "bold"
		blocks := CreatePageContent(doc(p("one", bold("two"), italic, text("four", &model.CodeDecorator{}))))
		rts := blocks[0].(*notion.ParagraphBlock).RichText
		require.Len(t, rts, 4)
		assert.Nil(t, rts[0].Annotations)
		assert.Equal(t, &notion.Annotations{Bold: true}, rts[1].Annotations)
		assert.Equal(t, &notion.Annotations{Bold: true, Italic: true}, rts[2].Annotations)
		assert.Equal(t, &notion.Annotations{Code: true}, rts[3].Annotations)
	})

	t.Run("same styles are joined", func(t *testing.T) {
		blocks := CreatePageContent(doc(p(bold("a"), bold("b"), "c")))
		assert.Equal(t, []string{"ab", "c"}, plain(blocks[0].(*notion.ParagraphBlock).RichText))
	})

	t.Run("links", func(t *testing.T) {
		blocks := CreatePageContent(doc(p(text("site", builder.Link("https://cozy.io")))))
		rt := blocks[0].(*notion.ParagraphBlock).RichText[0]
		require.NotNil(t, rt.HRef)
		assert.Equal(t, "https://cozy.io", *rt.HRef)
		assert.Equal(t, "https://cozy.io", rt.Text.Link.URL)
	})

	t.Run("headings", func(t *testing.T) {
		blocks := CreatePageContent(doc(h(1, "a"), h(2, "b"), h(4, "c")))
		require.Len(t, blocks, 3)
		assert.IsType(t, &notion.Heading1Block{}, blocks[0])
		assert.IsType(t, &notion.Heading2Block{}, blocks[1])
		assert.IsType(t, &notion.Heading3Block{}, blocks[2])
	})

	t.Run("images", func(t *testing.T) {
		image := img("https://cozy.io/a.png")
		image.Alt = "a"
		blocks := CreatePageContent(doc(p("see", image), p(img("b.png"))))
		require.Len(t, blocks, 3)
		assert.IsType(t, &notion.ParagraphBlock{}, blocks[0])
		first := blocks[1].(*notion.ImageBlock)
		assert.Equal(t, notion.FileTypeExternal, first.Type)
		assert.Equal(t, "https://cozy.io/a.png", first.External.URL)
		assert.Equal(t, []string{"a"}, plain(first.Caption))
		assert.Equal(t, "b.png", blocks[2].(*notion.ImageBlock).External.URL)
	})

	t.Run("nested lists", func(t *testing.T) {
		blocks := CreatePageContent(doc(
			li("UL", p("one")),
			li("UL OL", p("one.a")),
			li("UL OL", p("one.b")),
			li("UL", p("two")),
			p("after"),
		))
		require.Len(t, blocks, 3)
		one := blocks[0].(*notion.BulletedListItemBlock)
		assert.Equal(t, []string{"one"}, plain(one.RichText))
		require.Len(t, one.Children, 2)
		nested := one.Children[0].(*notion.NumberedListItemBlock)
		assert.Equal(t, []string{"one.a"}, plain(nested.RichText))
		assert.IsType(t, &notion.NumberedListItemBlock{}, one.Children[1])
		assert.Equal(t, []string{"two"}, plain(blocks[1].(*notion.BulletedListItemBlock).RichText))
		assert.IsType(t, &notion.ParagraphBlock{}, blocks[2])
	})

	t.Run("quote", func(t *testing.T) {
		blocks := CreatePageContent(doc(quote(p("said"), p("more"))))
		require.Len(t, blocks, 1)
		q := blocks[0].(*notion.QuoteBlock)
		assert.Equal(t, []string{"said"}, plain(q.RichText))
		require.Len(t, q.Children, 1)
		assert.IsType(t, &notion.ParagraphBlock{}, q.Children[0])
	})

	t.Run("code", func(t *testing.T) {
		c := code("x := 1")
		blocks := CreatePageContent(doc(c, hr()))
		require.Len(t, blocks, 2)
		block := blocks[0].(*notion.CodeBlock)
		assert.Equal(t, []string{"x := 1"}, plain(block.RichText))
		assert.Equal(t, DefaultCodeLanguage, *block.Language)
		assert.IsType(t, &notion.DividerBlock{}, blocks[1])
	})

	t.Run("table", func(t *testing.T) {
		blocks := CreatePageContent(doc(table(
			row(th("a"), th("b")),
			row(td("1"), builder.SpanLeft()),
		)))
		require.Len(t, blocks, 1)
		tbl := blocks[0].(*notion.TableBlock)
		assert.Equal(t, 2, tbl.TableWidth)
		assert.True(t, tbl.HasColumnHeader)
		require.Len(t, tbl.Children, 2)
		second := tbl.Children[1].(*notion.TableRowBlock)
		assert.Equal(t, []string{"1"}, plain(second.Cells[0]))
		assert.Empty(t, second.Cells[1])
	})
}
