package transform_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/model"
	. "github.com/cozy/contentmodel-go/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTabKey(t *testing.T) {
	t.Run("inserts a tab run at the caret", func(t *testing.T) {
		m := model.NewSelectionMarker(model.SegmentFormat{FontWeight: "bold"})
		para := p(text("ab"), m, text("c"))
		require.True(t, HandleTabKey(doc(para), false))
		require.Len(t, para.Segments, 4)
		assert.Equal(t, []string{"ab", TabRun, "c"}, texts(para))
		assert.Equal(t, "bold", para.Segments[1].(*model.Text).Format.FontWeight)
		assert.Same(t, m, para.Segments[2])
		assert.Equal(t, "", para.Format.MarginLeft)
	})

	t.Run("shift removes spaces before the caret", func(t *testing.T) {
		para := p(text("a      "), marker())
		require.True(t, HandleTabKey(doc(para), true))
		assert.Equal(t, []string{"a  "}, texts(para))

		only := p(text("    "), marker())
		require.True(t, HandleTabKey(doc(only), true))
		assert.Len(t, only.Segments, 1)

		assert.False(t, HandleTabKey(doc(p(text("a"), marker())), true))
	})

	t.Run("indents at the start of a paragraph", func(t *testing.T) {
		para := p(marker(), text("a"))
		d := doc(para)
		require.True(t, HandleTabKey(d, false))
		assert.Equal(t, "40px", para.Format.MarginLeft)
		require.True(t, HandleTabKey(d, true))
		assert.Equal(t, "", para.Format.MarginLeft)
	})

	t.Run("indents several paragraphs", func(t *testing.T) {
		first, second := p(sel(text("a"))), p(sel(text("b")))
		require.True(t, HandleTabKey(doc(first, second), false))
		assert.Equal(t, "40px", first.Format.MarginLeft)
		assert.Equal(t, "40px", second.Format.MarginLeft)
	})

	t.Run("changes the level of a list item", func(t *testing.T) {
		item := li("UL", text("a"), marker())
		d := doc(item)
		require.True(t, HandleTabKey(d, false))
		assert.Len(t, item.Levels, 2)
		require.True(t, HandleTabKey(d, true))
		assert.Len(t, item.Levels, 1)
	})

	t.Run("does nothing without selection", func(t *testing.T) {
		assert.False(t, HandleTabKey(doc(p(text("a"))), false))
	})
}

func TestHandleBackspaceOnListItem(t *testing.T) {
	item := li("OL UL", marker(), text("a"))
	d := doc(item)
	require.True(t, HandleBackspaceOnListItem(d))
	require.Len(t, item.Levels, 1)
	assert.Equal(t, "OL", item.Levels[0].ListType)

	assert.True(t, HandleBackspaceOnListItem(d))
	assert.Empty(t, item.Levels)
	assert.False(t, HandleBackspaceOnListItem(d))

	assert.False(t, HandleBackspaceOnListItem(doc(li("OL", text("a"), marker()))))
	assert.False(t, HandleBackspaceOnListItem(doc(p(marker(), text("a")))))
	assert.False(t, HandleBackspaceOnListItem(doc(li("OL", sel(text("a")), sel(text("b"))))))
}
