package format_test

import (
	"testing"

	"github.com/cozy/contentmodel-go/dom"
	. "github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func element(tag, style string, attrs ...string) *html.Node {
	el := dom.NewElement(tag)
	if style != "" {
		dom.SetAttr(el, "style", style)
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		dom.SetAttr(el, attrs[i], attrs[i+1])
	}
	return el
}

func TestParseValueWithUnit(t *testing.T) {
	tests := []struct {
		value string
		base  float64
		unit  string
		want  float64
	}{
		{"12px", 0, "px", 12},
		{"12pt", 0, "px", 16},
		{"16px", 0, "pt", 12},
		{"2em", 0, "px", 32},
		{"2em", 10, "px", 20},
		{"50%", 20, "px", 10},
		{"1in", 0, "px", 96},
		{"bogus", 0, "px", 0},
		{"3", 0, "px", 3},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseValueWithUnit(tt.value, tt.base, tt.unit), 0.001)
		})
	}
}

func TestNormalizeFontSizeToPt(t *testing.T) {
	a, ok := NormalizeFontSizeToPt("16pt", 0)
	require.True(t, ok)
	b, ok := NormalizeFontSizeToPt("21.3333px", 0)
	require.True(t, ok)
	assert.Equal(t, a, b)
	assert.Equal(t, "16pt", FormatPt(b))

	_, ok = NormalizeFontSizeToPt("large", 0)
	assert.False(t, ok)
	assert.Equal(t, "40px", FormatPx(40))
	assert.Equal(t, "26.67px", FormatPx(26.666666))
}

func TestSegmentChain(t *testing.T) {
	chains := DefaultChains()
	assert.Equal(t, []string{
		"textColor", "backgroundColor", "fontFamily", "fontSize", "bold", "italic",
		"underline", "strikethrough", "superOrSubScript", "letterSpacing", "lineHeight",
	}, chains.Segment.Names())

	var f model.SegmentFormat
	el := element("span", "color: red; font-size: 12pt; font-style: normal; text-decoration: underline line-through")
	chains.Segment.Parse(&f, el, nil, nil)
	assert.Equal(t, "red", f.TextColor)
	assert.Equal(t, "12pt", f.FontSize)
	assert.False(t, model.IsTrue(f.Italic))
	assert.NotNil(t, f.Italic)
	assert.True(t, model.IsTrue(f.Underline))
	assert.True(t, model.IsTrue(f.Strikethrough))

	// tag defaults
	f = model.SegmentFormat{}
	chains.Segment.Parse(&f, element("b", ""), nil, DefaultStyle("b"))
	assert.Equal(t, "bold", f.FontWeight)

	// nested scripts
	f = model.SegmentFormat{}
	chains.Segment.Parse(&f, element("sup", ""), nil, DefaultStyle("sup"))
	chains.Segment.Parse(&f, element("sub", ""), nil, DefaultStyle("sub"))
	assert.Equal(t, "super sub", f.SuperOrSubScriptSequence)
	assert.Equal(t, "sub", ScriptPosition(f.SuperOrSubScriptSequence))
}

func TestRelativeFontSize(t *testing.T) {
	f := model.SegmentFormat{FontSize: "10px"}
	FontSize.Parse(&f, element("span", "font-size: 2em"), &State{}, nil)
	assert.Equal(t, "20px", f.FontSize)

	// heading defaults are kept as written
	f = model.SegmentFormat{}
	FontSize.Parse(&f, element("h1", ""), &State{}, DefaultStyle("h1"))
	assert.Equal(t, "2em", f.FontSize)
}

func TestSegmentApply(t *testing.T) {
	span := element("span", "")
	span.AppendChild(dom.NewText("x"))
	f := model.SegmentFormat{
		TextColor:                "red",
		FontWeight:               "bold",
		Italic:                   model.Bool(true),
		SuperOrSubScriptSequence: "super sub",
	}
	DefaultChains().Segment.Apply(&f, span, nil)
	assert.Equal(t, `<span style="color: red"><sup><sub><i><b>x</b></i></sub></sup></span>`, dom.OuterHTML(span))
}

func TestBlockChain(t *testing.T) {
	var f model.BlockFormat
	el := element("div", "margin: 0 10px; padding-left: 4px; direction: rtl; text-align: start; border: 1px solid red; border-left-color: blue")
	DefaultChains().Block.Parse(&f, el, &State{Direction: "rtl"}, DefaultStyle("div"))

	assert.Equal(t, "0px", f.MarginTop)
	assert.Equal(t, "10px", f.MarginRight)
	assert.Equal(t, "10px", f.MarginLeft)
	assert.Equal(t, "4px", f.PaddingLeft)
	assert.Equal(t, "rtl", f.Direction)
	assert.Equal(t, "right", f.TextAlign)
	assert.Equal(t, "1px solid red", f.BorderTop)

	out := dom.NewElement("div")
	DefaultChains().Block.Apply(&f, out, nil)
	styles := dom.Style(out)
	assert.Equal(t, "rtl", styles.Get("direction"))
	assert.Equal(t, "10px", styles.Get("margin-left"))
	assert.Equal(t, "4px", styles.Get("padding-left"))
	assert.False(t, styles.Has("padding-top"))
}

func TestBorderLonghands(t *testing.T) {
	var f model.BorderFormat
	Border.Parse(&f, element("td", "border-width: 1px; border-style: solid; border-top-color: red"), &State{}, nil)
	assert.Equal(t, "1px solid red", f.BorderTop)
	assert.Equal(t, "1px solid", f.BorderLeft)
	assert.True(t, HasBorder(f))
	assert.False(t, HasBorder(model.BorderFormat{BorderTop: "none"}))
}

func TestSizeAttributes(t *testing.T) {
	var f model.SizeFormat
	Size.Parse(&f, element("img", "height: 20px", "width", "100", "height", "30"), &State{}, nil)
	assert.Equal(t, "100px", f.Width)
	assert.Equal(t, "20px", f.Height)
}

func TestChainOverride(t *testing.T) {
	chains := DefaultChains()
	called := false
	chains.Override(&Chains{
		Segment: Chain[model.SegmentFormat]{{
			Name: "bold",
			Parse: func(f *model.SegmentFormat, _ *html.Node, _ *State, _ dom.Declarations) {
				called = true
			},
		}},
	})
	chains.Extend(&Chains{
		Segment: Chain[model.SegmentFormat]{{Name: "extra"}},
	})

	names := chains.Segment.Names()
	assert.Equal(t, "bold", names[4])
	assert.Equal(t, "extra", names[len(names)-1])

	var f model.SegmentFormat
	chains.Segment.Parse(&f, element("b", ""), nil, DefaultStyle("b"))
	assert.True(t, called)
	assert.Empty(t, f.FontWeight)

	// the defaults are untouched
	assert.NotEqual(t, names, DefaultChains().Segment.Names())
}

func TestLink(t *testing.T) {
	var f model.LinkFormat
	Link.Parse(&f, element("a", "text-decoration: none", "href", "https://example.com", "target", "_blank"), &State{}, nil)
	assert.Equal(t, "https://example.com", f.Href)
	assert.Equal(t, "_blank", f.Target)
	require.NotNil(t, f.Underline)
	assert.False(t, *f.Underline)

	a := dom.NewElement("a")
	Link.Apply(&f, a, &State{})
	assert.Equal(t, `<a href="https://example.com" target="_blank" style="text-decoration: none"></a>`, dom.OuterHTML(a))
}

func TestListMetadata(t *testing.T) {
	dataset := map[string]string{}
	WriteListMetadata(dataset, ListMetadata{ApplyListStyleFromLevel: true})
	assert.Equal(t, `{"applyListStyleFromLevel":true}`, dataset[EditingInfoKey])

	meta, ok := ReadListMetadata(dataset)
	require.True(t, ok)
	assert.Equal(t, "decimal", MetadataListStyle(meta, "OL", 0))
	assert.Equal(t, "lower-alpha", MetadataListStyle(meta, "OL", 1))
	assert.Equal(t, "lower-roman", MetadataListStyle(meta, "OL", 2))
	assert.Equal(t, "decimal", MetadataListStyle(meta, "OL", 3))
	assert.Equal(t, "circle", MetadataListStyle(meta, "UL", 1))
	assert.Equal(t, "upper-roman", MetadataListStyle(ListMetadata{OrderedStyleType: 5}, "OL", 0))

	_, ok = ReadListMetadata(map[string]string{EditingInfoKey: "{"})
	assert.False(t, ok)
}

func TestStartNumberThread(t *testing.T) {
	st := &State{}
	parse := func(el *html.Node) model.ListLevelFormat {
		var f model.ListLevelFormat
		StartNumber.Parse(&f, el, st, nil)
		return f
	}

	// a first list starting at 1 needs no override
	assert.Zero(t, parse(element("ol", "")).StartNumberOverride)
	st.CountListItem(0)
	st.CountListItem(0)

	// a list continuing the thread needs none either
	assert.Zero(t, parse(element("ol", "", "start", "3")).StartNumberOverride)
	st.CountListItem(0)

	// restarting is an override
	assert.Equal(t, 1, parse(element("ol", "")).StartNumberOverride)
	assert.Equal(t, 7, parse(element("ol", "", "start", "7")).StartNumberOverride)

	// rendering continues the thread
	st = &State{ListThread: []int{2}}
	ol := dom.NewElement("ol")
	StartNumber.Apply(&model.ListLevelFormat{}, ol, st)
	assert.Equal(t, "3", dom.Attr(ol, "start"))

	st = &State{ListThread: []int{2}}
	ol = dom.NewElement("ol")
	StartNumber.Apply(&model.ListLevelFormat{StartNumberOverride: 1}, ol, st)
	assert.False(t, dom.HasAttr(ol, "start"))
	assert.Equal(t, []int{0}, st.ListThread)
}

func TestListStyleTypeFromMetadataIsNotStored(t *testing.T) {
	ol := element("ol", "list-style-type: lower-alpha", "data-editing-info", `{"applyListStyleFromLevel":true}`)
	var f model.ListLevelFormat
	ListStyleType.Parse(&f, ol, &State{ListDepth: 1}, nil)
	assert.Empty(t, f.ListStyleType)

	ListStyleType.Parse(&f, element("ol", "", "type", "I"), &State{}, nil)
	assert.Equal(t, "upper-roman", f.ListStyleType)
}
