package model

import "golang.org/x/net/html"

// NewDocument creates an empty document with an optional default format.
func NewDocument(defaultFormat ...SegmentFormat) *Document {
	doc := &Document{}
	if len(defaultFormat) > 0 {
		doc.Format = CloneSegmentFormat(defaultFormat[0])
	}
	return doc
}

// NewParagraph creates a paragraph. The formats are copied.
func NewParagraph(isImplicit bool, format BlockFormat, segmentFormat *SegmentFormat, decorator *ParagraphDecorator) *Paragraph {
	p := &Paragraph{IsImplicit: isImplicit, Format: format}
	if segmentFormat != nil && !SameSegmentFormat(*segmentFormat, SegmentFormat{}) {
		f := CloneSegmentFormat(*segmentFormat)
		p.SegmentFormat = &f
	}
	if decorator != nil {
		p.Decorator = &ParagraphDecorator{
			TagName: decorator.TagName,
			Format:  CloneSegmentFormat(decorator.Format),
		}
	}
	return p
}

// NewText creates a text segment. Format and decorators are copied.
func NewText(text string, format SegmentFormat, link *Link, code *CodeDecorator) *Text {
	return &Text{
		Text:   text,
		Format: CloneSegmentFormat(format),
		Link:   CloneLink(link),
		Code:   CloneCode(code),
	}
}

// NewBr creates a line break segment.
func NewBr(format SegmentFormat) *Br {
	return &Br{Format: CloneSegmentFormat(format)}
}

// NewImage creates an image segment.
func NewImage(src string, format SegmentFormat) *Image {
	return &Image{
		Src:    src,
		Format: ImageFormat{SegmentFormat: CloneSegmentFormat(format)},
	}
}

// NewSelectionMarker creates a selected caret marker.
func NewSelectionMarker(format SegmentFormat) *SelectionMarker {
	return &SelectionMarker{
		Selectable: Selectable{IsSelected: true},
		Format:     CloneSegmentFormat(format),
	}
}

// NewTable creates a table with empty rows.
func NewTable(rowCount int, format TableFormat) *Table {
	t := &Table{Format: format, Dataset: map[string]string{}}
	for i := 0; i < rowCount; i++ {
		t.Rows = append(t.Rows, &TableRow{})
	}
	return t
}

// NewTableCell creates an empty table cell.
func NewTableCell(spanLeft, spanAbove, isHeader bool, format TableCellFormat) *TableCell {
	return &TableCell{
		SpanLeft:  spanLeft,
		SpanAbove: spanAbove,
		IsHeader:  isHeader,
		Format:    format,
		Dataset:   map[string]string{},
	}
}

// NewListLevel creates a list level of type "OL" or "UL".
func NewListLevel(listType string, format ListLevelFormat, dataset map[string]string) *ListLevel {
	level := &ListLevel{ListType: listType, Format: format, Dataset: map[string]string{}}
	for k, v := range dataset {
		level.Dataset[k] = v
	}
	return level
}

// CloneListLevel copies a list level.
func CloneListLevel(level *ListLevel) *ListLevel {
	return NewListLevel(level.ListType, level.Format, level.Dataset)
}

// NewListItem creates a list item with copies of the given levels.
func NewListItem(levels []*ListLevel, formatHolder SegmentFormat) *ListItem {
	item := &ListItem{
		FormatHolder: &SelectionMarker{Format: CloneSegmentFormat(formatHolder)},
	}
	for _, level := range levels {
		item.Levels = append(item.Levels, CloneListLevel(level))
	}
	return item
}

// NewDivider creates a divider, "hr" unless another tag is given.
func NewDivider(tagName string, format DividerFormat) *Divider {
	if tagName == "" {
		tagName = "hr"
	}
	return &Divider{TagName: tagName, Format: format}
}

// NewEntity creates an entity around an existing wrapper element.
func NewEntity(wrapper *html.Node, info EntityFormat, format SegmentFormat) *Entity {
	return &Entity{Wrapper: wrapper, Entity: info, Format: CloneSegmentFormat(format)}
}

// NewGeneralBlock creates a general block around an element.
func NewGeneralBlock(element *html.Node) *GeneralBlock {
	return &GeneralBlock{Element: element}
}

// NewGeneralSegment creates a general segment around an element.
func NewGeneralSegment(element *html.Node, format SegmentFormat) *GeneralSegment {
	return &GeneralSegment{Element: element, Format: CloneSegmentFormat(format)}
}

// NewFormatContainer creates a container such as a blockquote.
func NewFormatContainer(tagName string, format ContainerFormat) *FormatContainer {
	return &FormatContainer{TagName: tagName, Format: format}
}

// NewCode creates a code block.
func NewCode(format BlockFormat) *Code {
	return &Code{Format: format}
}

// CloneLink copies a link decorator.
func CloneLink(link *Link) *Link {
	if link == nil {
		return nil
	}
	result := &Link{Format: link.Format}
	if link.Format.Underline != nil {
		result.Format.Underline = Bool(*link.Format.Underline)
	}
	if len(link.Dataset) > 0 {
		result.Dataset = map[string]string{}
		for k, v := range link.Dataset {
			result.Dataset[k] = v
		}
	}
	return result
}

// CloneCode copies a code decorator.
func CloneCode(code *CodeDecorator) *CodeDecorator {
	if code == nil {
		return nil
	}
	c := *code
	return &c
}

// SameLink compares two link decorators by value.
func SameLink(a, b *Link) bool {
	if a == nil || b == nil {
		return a == b
	}
	fa, fb := a.Format, b.Format
	if fa.Href != fb.Href || fa.Target != fb.Target || fa.Title != fb.Title ||
		fa.Name != fb.Name || fa.Rel != fb.Rel || fa.TextColor != fb.TextColor ||
		!sameFlag(fa.Underline, fb.Underline) || len(a.Dataset) != len(b.Dataset) {
		return false
	}
	for k, v := range a.Dataset {
		if b.Dataset[k] != v {
			return false
		}
	}
	return true
}

// SameCode compares two code decorators by value.
func SameCode(a, b *CodeDecorator) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
