package paste_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	. "github.com/cozy/contentmodel-go/paste"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func fragment(t *testing.T, source string) *html.Node {
	t.Helper()
	body, err := dom.ParseBody(source)
	require.NoError(t, err)
	return body
}

func TestGetDocumentSource(t *testing.T) {
	wac := `<ul class="BulletListStyle1"><li class="OutlineElement">x</li></ul>`
	sheets := `<google-sheets-html-origin><table><tr><td>1</td></tr></table></google-sheets-html-origin>`

	tests := []struct {
		name string
		in   GetSourceInput
		want KnownPasteSource
	}{
		{"word namespace", GetSourceInput{HTMLAttributes: map[string]string{"xmlns:w": "urn:schemas-microsoft-com:office:word"}}, SourceWordDesktop},
		{"word prog id", GetSourceInput{HTMLAttributes: map[string]string{"ProgId": "Word.Document"}}, SourceWordDesktop},
		{"excel namespace", GetSourceInput{HTMLAttributes: map[string]string{"xmlns:x": "urn:schemas-microsoft-com:office:excel"}}, SourceExcelDesktop},
		{"excel online", GetSourceInput{HTMLAttributes: map[string]string{"ProgId": "Excel.Sheet"}}, SourceExcelOnline},
		{"powerpoint", GetSourceInput{HTMLAttributes: map[string]string{"ProgId": "PowerPoint.Slide"}}, SourcePowerPointDesktop},
		{"onenote", GetSourceInput{HTMLAttributes: map[string]string{"ProgId": "OneNote.File"}}, SourceOneNoteDesktop},
		{"wac list", GetSourceInput{Fragment: fragment(t, wac)}, SourceWacComponents},
		{"wac image", GetSourceInput{Fragment: fragment(t, `<span class="WACImageContainer"><img src="a.png"></span>`)}, SourceWacComponents},
		{"google sheets", GetSourceInput{Fragment: fragment(t, sheets)}, SourceGoogleSheets},
		{"single image", GetSourceInput{HTMLFirstLevelChildTags: []string{"IMG"}, ShouldConvertSingleImage: true}, SourceSingleImage},
		{"single image not converted", GetSourceInput{HTMLFirstLevelChildTags: []string{"IMG"}}, SourceDefault},
		{"excel rows", GetSourceInput{ClipboardItemTypes: plainAndHTML, RawHTML: `<tr><td>a</td></tr>`}, SourceExcelNonNativeEvent},
		{"excel rows with attributes", GetSourceInput{ClipboardItemTypes: plainAndHTML, RawHTML: `<TR height=20><td>a</td></TR>`}, SourceExcelNonNativeEvent},
		{"track is not a row", GetSourceInput{ClipboardItemTypes: plainAndHTML, RawHTML: `<video><track src="a.vtt"></video>`}, SourceDefault},
		{"rows with a table", GetSourceInput{ClipboardItemTypes: plainAndHTML, RawHTML: `<table><tr><td>a</td></tr></table>`}, SourceDefault},
		{"rows with more types", GetSourceInput{ClipboardItemTypes: []string{"text/plain", "text/html", "image/png"}, RawHTML: `<tr><td>a</td></tr>`}, SourceDefault},
		{"plain list", GetSourceInput{Fragment: fragment(t, `<ul><li>x</li></ul>`)}, SourceDefault},
		{"nothing", GetSourceInput{}, SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetDocumentSource(tt.in))
		})
	}
}

func TestSourcePriority(t *testing.T) {
	assert.Equal(t, []KnownPasteSource{
		SourceWordDesktop,
		SourceExcelDesktop,
		SourceExcelOnline,
		SourcePowerPointDesktop,
		SourceWacComponents,
		SourceGoogleSheets,
		SourceSingleImage,
		SourceExcelNonNativeEvent,
		SourceOneNoteDesktop,
	}, SourcePriority())

	t.Run("first match wins", func(t *testing.T) {
		in := GetSourceInput{
			HTMLAttributes: map[string]string{"xmlns:w": "urn:schemas-microsoft-com:office:word"},
			Fragment:       fragment(t, `<google-sheets-html-origin></google-sheets-html-origin>`),
		}
		assert.Equal(t, SourceWordDesktop, GetDocumentSource(in))

		in = GetSourceInput{
			HTMLAttributes: map[string]string{"ProgId": "OneNote.File"},
			Fragment:       fragment(t, `<span class="WACImageBorder"></span>`),
		}
		assert.Equal(t, SourceWacComponents, GetDocumentSource(in))
	})
}
