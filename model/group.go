package model

import "golang.org/x/net/html"

// Document is the root block group.
type Document struct {
	Group
	// Format is the default segment format of the document, the lowest
	// priority layer of every effective format.
	Format SegmentFormat
	// Cache, when set, records the DOM element last rendered for each node.
	Cache *ElementCache `json:"-"`
}

// BlockGroupType implements BlockGroup.
func (*Document) BlockGroupType() BlockGroupType { return GroupDocument }
func (*Document) isBlockGroup()                  {}

// ListLevel is one nesting tier of a list item.
type ListLevel struct {
	ListType string // "OL" or "UL"
	Format   ListLevelFormat
	Dataset  map[string]string
}

// ListItem is a block group rendered as an <li>. Nested lists are flattened:
// an item carries all list levels from the outermost list to its own.
type ListItem struct {
	Group
	Selectable
	Levels []*ListLevel
	// FormatHolder carries the format of the list marker and of content
	// typed into an empty item.
	FormatHolder *SelectionMarker
	Format       ListItemFormat
}

// BlockType implements Block.
func (*ListItem) BlockType() BlockType { return BlockTypeBlockGroup }
func (*ListItem) isBlock()             {}

// BlockGroupType implements BlockGroup.
func (*ListItem) BlockGroupType() BlockGroupType { return GroupListItem }
func (*ListItem) isBlockGroup()                  {}

// TableCell is a block group inside a table row.
type TableCell struct {
	Group
	Selectable
	Format    TableCellFormat
	SpanLeft  bool
	SpanAbove bool
	IsHeader  bool
	Dataset   map[string]string
}

// BlockGroupType implements BlockGroup.
func (*TableCell) BlockGroupType() BlockGroupType { return GroupTableCell }
func (*TableCell) isBlockGroup()                  {}

// GeneralBlock wraps a DOM element the model does not understand. Element is
// a shallow copy of the original, without children; its children are parsed
// into the group.
type GeneralBlock struct {
	Group
	Selectable
	Element *html.Node `json:"-"`
	Format  BlockFormat
}

// BlockType implements Block.
func (*GeneralBlock) BlockType() BlockType { return BlockTypeBlockGroup }
func (*GeneralBlock) isBlock()             {}

// BlockGroupType implements BlockGroup.
func (*GeneralBlock) BlockGroupType() BlockGroupType { return GroupGeneral }
func (*GeneralBlock) isBlockGroup()                  {}

// FormatContainer groups blocks under a formatted wrapper such as a
// blockquote.
type FormatContainer struct {
	Group
	TagName string
	Format  ContainerFormat
}

// BlockType implements Block.
func (*FormatContainer) BlockType() BlockType { return BlockTypeBlockGroup }
func (*FormatContainer) isBlock()             {}

// BlockGroupType implements BlockGroup.
func (*FormatContainer) BlockGroupType() BlockGroupType { return GroupFormatContainer }
func (*FormatContainer) isBlockGroup()                  {}

// Code is a preformatted code block. Its paragraphs keep white space.
type Code struct {
	Group
	Format   BlockFormat
	Language string
}

// BlockType implements Block.
func (*Code) BlockType() BlockType { return BlockTypeBlockGroup }
func (*Code) isBlock()             {}

// BlockGroupType implements BlockGroup.
func (*Code) BlockGroupType() BlockGroupType { return GroupCode }
func (*Code) isBlockGroup()                  {}

var (
	_ BlockGroup = &Document{}
	_ BlockGroup = &ListItem{}
	_ BlockGroup = &TableCell{}
	_ BlockGroup = &GeneralBlock{}
	_ BlockGroup = &FormatContainer{}
	_ BlockGroup = &Code{}
	_ Block      = &ListItem{}
	_ Block      = &GeneralBlock{}
	_ Block      = &FormatContainer{}
	_ Block      = &Code{}
	_ Block      = &Paragraph{}
	_ Block      = &Table{}
	_ Block      = &Divider{}
	_ Block      = &Entity{}
)
