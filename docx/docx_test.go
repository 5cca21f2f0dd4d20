package docx_test

import (
	"bytes"
	"testing"

	. "github.com/cozy/contentmodel-go/docx"
	"github.com/cozy/contentmodel-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

func TestImport(t *testing.T) {
	build := func(t *testing.T, fill func(doc *document.Document)) *model.Document {
		doc := document.New()
		fill(doc)
		var buf bytes.Buffer
		require.NoError(t, doc.Save(&buf))
		result, err := Import(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		return result
	}
	para := func(doc *document.Document, style string, texts ...string) document.Paragraph {
		p := doc.AddParagraph()
		if style != "" {
			p.SetStyle(style)
		}
		for _, text := range texts {
			p.AddRun().AddText(text)
		}
		return p
	}
	texts := func(p *model.Paragraph) []string {
		result := []string{}
		for _, s := range p.Segments {
			if text, ok := s.(*model.Text); ok {
				result = append(result, text.Text)
			}
		}
		return result
	}

	t.Run("paragraphs", func(t *testing.T) {
		result := build(t, func(doc *document.Document) {
			para(doc, "", "hello ", "world")
			para(doc, "")
		})
		require.Len(t, result.Blocks, 2)
		p := result.Blocks[0].(*model.Paragraph)
		assert.False(t, p.IsImplicit)
		assert.Equal(t, []string{"hello world"}, texts(p))
		empty := result.Blocks[1].(*model.Paragraph)
		require.Len(t, empty.Segments, 1)
		assert.Equal(t, model.SegmentBr, empty.Segments[0].SegmentType())
	})

	t.Run("run formats", func(t *testing.T) {
		result := build(t, func(doc *document.Document) {
			p := doc.AddParagraph()
			p.AddRun().AddText("plain ")
			for _, text := range []string{"bo", "ld"} {
				r := p.AddRun()
				r.Properties().SetBold(true)
				r.AddText(text)
			}
			r := p.AddRun()
			r.Properties().SetItalic(true)
			r.AddText(" italic")
		})
		p := result.Blocks[0].(*model.Paragraph)
		assert.Equal(t, []string{"plain ", "bold", " italic"}, texts(p))
		assert.Equal(t, "bold", p.Segments[1].SegmentFormat().FontWeight)
		assert.Empty(t, p.Segments[0].SegmentFormat().FontWeight)
		assert.True(t, model.IsTrue(p.Segments[2].SegmentFormat().Italic))
	})

	t.Run("headings", func(t *testing.T) {
		result := build(t, func(doc *document.Document) {
			para(doc, "Title", "title")
			para(doc, "Heading2", "two")
			para(doc, "Heading6", "six")
			para(doc, "Heading7", "seven")
		})
		require.Len(t, result.Blocks, 4)
		for i, tag := range []string{"h1", "h2", "h6"} {
			p := result.Blocks[i].(*model.Paragraph)
			require.NotNil(t, p.Decorator)
			assert.Equal(t, tag, p.Decorator.TagName)
			assert.Equal(t, "bold", p.Decorator.Format.FontWeight)
		}
		assert.Nil(t, result.Blocks[3].(*model.Paragraph).Decorator)
	})

	t.Run("lists", func(t *testing.T) {
		result := build(t, func(doc *document.Document) {
			para(doc, "ListBullet", "one")
			para(doc, "ListNumber2", "nested")
			para(doc, "ListParagraph", "two")
		})
		require.Len(t, result.Blocks, 3)
		one := result.Blocks[0].(*model.ListItem)
		require.Len(t, one.Levels, 1)
		assert.Equal(t, "UL", one.Levels[0].ListType)
		p := one.Blocks[0].(*model.Paragraph)
		assert.True(t, p.IsImplicit)
		assert.Equal(t, []string{"one"}, texts(p))

		nested := result.Blocks[1].(*model.ListItem)
		require.Len(t, nested.Levels, 2)
		assert.Equal(t, "OL", nested.Levels[1].ListType)
		assert.Equal(t, "UL", result.Blocks[2].(*model.ListItem).Levels[0].ListType)
	})

	t.Run("tables", func(t *testing.T) {
		result := build(t, func(doc *document.Document) {
			tbl := doc.AddTable()
			first := tbl.AddRow()
			wide := first.AddCell()
			wide.Properties().SetColumnSpan(2)
			wide.AddParagraph().AddRun().AddText("wide")
			tall := first.AddCell()
			tall.Properties().SetVerticalMerge(wml.ST_MergeRestart)
			tall.AddParagraph().AddRun().AddText("tall")

			second := tbl.AddRow()
			second.AddCell().AddParagraph().AddRun().AddText("a")
			second.AddCell().AddParagraph().AddRun().AddText("b")
			below := second.AddCell()
			below.Properties().SetVerticalMerge(wml.ST_MergeContinue)
			below.AddParagraph()
		})
		require.Len(t, result.Blocks, 1)
		tbl := result.Blocks[0].(*model.Table)
		require.Len(t, tbl.Rows, 2)

		first := tbl.Rows[0].Cells
		require.Len(t, first, 3)
		assert.Equal(t, []string{"wide"}, texts(first[0].Blocks[0].(*model.Paragraph)))
		assert.True(t, first[0].Blocks[0].(*model.Paragraph).IsImplicit)
		assert.True(t, first[1].SpanLeft)
		assert.False(t, first[2].SpanAbove)

		second := tbl.Rows[1].Cells
		require.Len(t, second, 3)
		assert.Equal(t, []string{"b"}, texts(second[1].Blocks[0].(*model.Paragraph)))
		assert.True(t, second[2].SpanAbove)
		assert.Empty(t, second[2].Blocks)
	})

	t.Run("unreadable", func(t *testing.T) {
		data := []byte("not a word document")
		_, err := Import(bytes.NewReader(data), int64(len(data)))
		assert.Error(t, err)
	})
}
