package model

// Format values are flat records of CSS-like properties. String fields hold
// CSS values as written ("40px", "bold", "#ff0000"); an empty string means the
// property is not set. Tri-state flags use *bool so that an explicit false
// (e.g. font-style: normal under an italic ancestor) differs from "not set".
//
// Category formats are composed by embedding the property groups below, so a
// format handler written for one group serves every category embedding it.

// BackgroundColorFormat is the background-color property.
type BackgroundColorFormat struct {
	BackgroundColor string
}

// TextColorFormat is the color property.
type TextColorFormat struct {
	TextColor string
}

// DirectionFormat is the text direction, "ltr" or "rtl".
type DirectionFormat struct {
	Direction string
}

// TextAlignFormat is the text-align property.
type TextAlignFormat struct {
	TextAlign string
}

// MarginFormat is the margin of each side.
type MarginFormat struct {
	MarginTop    string
	MarginRight  string
	MarginBottom string
	MarginLeft   string
}

// PaddingFormat is the padding of each side.
type PaddingFormat struct {
	PaddingTop    string
	PaddingRight  string
	PaddingBottom string
	PaddingLeft   string
}

// BorderFormat holds border shorthands per side and the radius.
type BorderFormat struct {
	BorderTop    string
	BorderRight  string
	BorderBottom string
	BorderLeft   string
	BorderRadius string
}

// LineHeightFormat is the line-height property.
type LineHeightFormat struct {
	LineHeight string
}

// WhiteSpaceFormat is the white-space property.
type WhiteSpaceFormat struct {
	WhiteSpace string
}

// TextIndentFormat is the text-indent property.
type TextIndentFormat struct {
	TextIndent string
}

// DisplayFormat is the display property.
type DisplayFormat struct {
	Display string
}

// SizeFormat holds the box size properties.
type SizeFormat struct {
	Width     string
	Height    string
	MinWidth  string
	MaxWidth  string
	MinHeight string
	MaxHeight string
}

// VerticalAlignFormat is the vertical-align property for cells.
type VerticalAlignFormat struct {
	VerticalAlign string
}

// IDFormat is the id attribute.
type IDFormat struct {
	ID string
}

// BoxShadowFormat is the box-shadow property.
type BoxShadowFormat struct {
	BoxShadow string
}

// FloatFormat is the float property.
type FloatFormat struct {
	Float string
}

// WordBreakFormat is the word-break property.
type WordBreakFormat struct {
	WordBreak string
}

// SegmentFormat is the format of inline content.
type SegmentFormat struct {
	TextColor       string
	BackgroundColor string
	FontFamily      string
	FontSize        string
	FontWeight      string
	Italic          *bool
	Underline       *bool
	Strikethrough   *bool
	// SuperOrSubScriptSequence lists "super"/"sub" from outer to inner,
	// space separated. The innermost one wins.
	SuperOrSubScriptSequence string
	LetterSpacing            string
	LineHeight               string
}

// BlockFormat is the format of a paragraph and the base of other block
// formats.
type BlockFormat struct {
	BackgroundColorFormat
	DirectionFormat
	TextAlignFormat
	MarginFormat
	PaddingFormat
	BorderFormat
	LineHeightFormat
	WhiteSpaceFormat
	TextIndentFormat
}

// ContainerFormat is the format of a format container.
type ContainerFormat struct {
	BlockFormat
	SizeFormat
	DisplayFormat
}

// TableFormat is the format of a table element.
type TableFormat struct {
	BlockFormat
	IDFormat
	SizeFormat
	BorderCollapse bool
	BorderSpacing  string
	TableLayout    string
}

// TableCellFormat is the format of a td/th element.
type TableCellFormat struct {
	BlockFormat
	TextColorFormat
	SizeFormat
	VerticalAlignFormat
	WordBreakFormat
}

// ListLevelFormat is the format of an ol/ul element.
type ListLevelFormat struct {
	DirectionFormat
	TextAlignFormat
	MarginFormat
	PaddingFormat
	BackgroundColorFormat
	ListStyleType string
	// StartNumberOverride is the explicit start number of an ordered list,
	// 0 when the list continues its thread.
	StartNumberOverride int
}

// ListItemFormat is the format of an li element.
type ListItemFormat struct {
	DirectionFormat
	TextAlignFormat
	MarginFormat
	LineHeightFormat
	ListStyleType string
}

// ImageFormat is the format of an img element.
type ImageFormat struct {
	SegmentFormat
	IDFormat
	SizeFormat
	MarginFormat
	PaddingFormat
	BorderFormat
	BoxShadowFormat
	DisplayFormat
	FloatFormat
	VerticalAlign string
}

// DividerFormat is the format of an hr element.
type DividerFormat struct {
	BlockFormat
	DisplayFormat
	SizeFormat
}

// LinkFormat is the format of an anchor.
type LinkFormat struct {
	Href      string
	Target    string
	Title     string
	Name      string
	Rel       string
	TextColor string
	Underline *bool
}

// CodeFormat is the format of inline code.
type CodeFormat struct {
	FontFamily string
}

// EntityFormat describes an entity wrapper.
type EntityFormat struct {
	ID         string
	EntityType string
	IsReadonly bool
}

// Bool returns a pointer to b, for tri-state format fields.
func Bool(b bool) *bool {
	return &b
}

// IsTrue reports whether a tri-state flag is set to true.
func IsTrue(b *bool) bool {
	return b != nil && *b
}

// MergeSegmentFormat returns base overlaid with every field set in top.
func MergeSegmentFormat(base, top SegmentFormat) SegmentFormat {
	result := base
	if top.TextColor != "" {
		result.TextColor = top.TextColor
	}
	if top.BackgroundColor != "" {
		result.BackgroundColor = top.BackgroundColor
	}
	if top.FontFamily != "" {
		result.FontFamily = top.FontFamily
	}
	if top.FontSize != "" {
		result.FontSize = top.FontSize
	}
	if top.FontWeight != "" {
		result.FontWeight = top.FontWeight
	}
	if top.Italic != nil {
		result.Italic = Bool(*top.Italic)
	}
	if top.Underline != nil {
		result.Underline = Bool(*top.Underline)
	}
	if top.Strikethrough != nil {
		result.Strikethrough = Bool(*top.Strikethrough)
	}
	if top.SuperOrSubScriptSequence != "" {
		result.SuperOrSubScriptSequence = top.SuperOrSubScriptSequence
	}
	if top.LetterSpacing != "" {
		result.LetterSpacing = top.LetterSpacing
	}
	if top.LineHeight != "" {
		result.LineHeight = top.LineHeight
	}
	return result
}

// CloneSegmentFormat copies a segment format, including its flags.
func CloneSegmentFormat(f SegmentFormat) SegmentFormat {
	return MergeSegmentFormat(SegmentFormat{}, f)
}

// SameSegmentFormat compares two segment formats by value.
func SameSegmentFormat(a, b SegmentFormat) bool {
	return a.TextColor == b.TextColor &&
		a.BackgroundColor == b.BackgroundColor &&
		a.FontFamily == b.FontFamily &&
		a.FontSize == b.FontSize &&
		a.FontWeight == b.FontWeight &&
		sameFlag(a.Italic, b.Italic) &&
		sameFlag(a.Underline, b.Underline) &&
		sameFlag(a.Strikethrough, b.Strikethrough) &&
		a.SuperOrSubScriptSequence == b.SuperOrSubScriptSequence &&
		a.LetterSpacing == b.LetterSpacing &&
		a.LineHeight == b.LineHeight
}

func sameFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
