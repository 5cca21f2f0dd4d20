package formatstate

import (
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
)

// merger intersects the effective formats of the selected segments. A
// property keeps its value while every segment agrees and is dropped for
// good at the first disagreement.
type merger struct {
	state   *FormatState
	started bool
	dropped map[string]bool
}

func (m *merger) segment(f model.SegmentFormat, inCode bool) {
	script := format.ScriptPosition(f.SuperOrSubScriptSequence)
	s := m.state

	m.flag("bold", &s.IsBold, format.IsBoldWeight(f.FontWeight))
	m.flag("italic", &s.IsItalic, model.IsTrue(f.Italic))
	m.flag("underline", &s.IsUnderline, model.IsTrue(f.Underline))
	m.flag("strikethrough", &s.IsStrikeThrough, model.IsTrue(f.Strikethrough))
	m.flag("superscript", &s.IsSuperscript, script == "super")
	m.flag("subscript", &s.IsSubscript, script == "sub")
	m.flag("code", &s.IsCodeInline, inCode)
	m.value("fontName", &s.FontName, f.FontFamily, nil)
	m.value("fontSize", &s.FontSize, f.FontSize, fontSizeKey)
	m.value("fontWeight", &s.FontWeight, f.FontWeight, nil)
	m.value("textColor", &s.TextColor, f.TextColor, nil)
	m.value("backgroundColor", &s.BackgroundColor, f.BackgroundColor, nil)
	m.value("letterSpacing", &s.LetterSpacing, f.LetterSpacing, nil)
	m.value("lineHeight", &s.LineHeight, f.LineHeight, nil)
	m.started = true
}

func (m *merger) drop(key string) {
	if m.dropped == nil {
		m.dropped = map[string]bool{}
	}
	m.dropped[key] = true
}

func (m *merger) flag(key string, field **bool, v bool) {
	switch {
	case m.dropped[key]:
	case !m.started:
		*field = model.Bool(v)
	case *field == nil || **field != v:
		*field = nil
		m.drop(key)
	}
}

// value merges a string property. An empty value is unknown: it sets
// nothing on the first segment and disagrees with any value after.
func (m *merger) value(key string, field **string, v string, normalize func(string) string) {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	switch {
	case m.dropped[key]:
	case !m.started:
		if v != "" {
			*field = stringPtr(v)
		} else {
			m.drop(key)
		}
	case *field == nil || normalize(**field) != normalize(v):
		*field = nil
		m.drop(key)
	}
}

// fontSizeKey compares font sizes by their value in points.
func fontSizeKey(size string) string {
	if pt, ok := format.NormalizeFontSizeToPt(size, 0); ok {
		return format.FormatPt(pt)
	}
	return size
}
