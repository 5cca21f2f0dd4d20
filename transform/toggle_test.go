package transform_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/model"
	. "github.com/cozy/contentmodel-go/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleBold(t *testing.T) {
	a := sel(text("a", model.SegmentFormat{FontWeight: "bold"}))
	b := sel(text("b"))
	d := doc(p(a, b))

	undo, result := ToggleBold(d)
	require.Empty(t, result.Failed)
	assert.Equal(t, "bold", a.Format.FontWeight)
	assert.Equal(t, "bold", b.Format.FontWeight)

	_, result = ToggleBold(d)
	require.Empty(t, result.Failed)
	assert.Equal(t, "normal", a.Format.FontWeight)
	assert.Equal(t, "normal", b.Format.FontWeight)

	undo.Apply(d)
	assert.Equal(t, "bold", a.Format.FontWeight)
	assert.Equal(t, "", b.Format.FontWeight)
}

func TestToggleFlags(t *testing.T) {
	for _, tc := range []struct {
		name   string
		toggle func(*model.Document) (Step, StepResult)
		flag   func(model.SegmentFormat) *bool
	}{
		{"italic", ToggleItalic, func(f model.SegmentFormat) *bool { return f.Italic }},
		{"underline", ToggleUnderline, func(f model.SegmentFormat) *bool { return f.Underline }},
		{"strikethrough", ToggleStrikethrough, func(f model.SegmentFormat) *bool { return f.Strikethrough }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := marker()
			d := doc(p(text("a"), m))

			_, result := tc.toggle(d)
			require.Empty(t, result.Failed)
			assert.Equal(t, model.Bool(true), tc.flag(m.Format))

			tc.toggle(d)
			assert.Equal(t, model.Bool(false), tc.flag(m.Format))
		})
	}
}

func TestToggleWithoutSelection(t *testing.T) {
	undo, result := ToggleBold(doc(p(text("a"))))
	assert.Nil(t, undo)
	assert.NotEmpty(t, result.Failed)
}
