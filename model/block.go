package model

import "golang.org/x/net/html"

// ParagraphDecorator turns a paragraph into a heading or an explicit <p>.
// Its format holds the segment format implied by the tag (a heading is bold
// and larger), which segments inherit without storing it.
type ParagraphDecorator struct {
	TagName string
	Format  SegmentFormat
}

// Paragraph is a block of inline segments.
type Paragraph struct {
	Segments []Segment
	Format   BlockFormat
	// SegmentFormat is the format set on the paragraph element itself and
	// inherited by its segments.
	SegmentFormat *SegmentFormat
	Decorator     *ParagraphDecorator
	// IsImplicit marks a paragraph created for inline content that had no
	// block element of its own. It renders without a wrapper element unless
	// it has a format or a decorator.
	IsImplicit bool
}

// BlockType implements Block.
func (*Paragraph) BlockType() BlockType { return BlockTypeParagraph }
func (*Paragraph) isBlock()             {}

// TableRow is one row of a table.
type TableRow struct {
	Height float64
	Format BlockFormat
	Cells  []*TableCell
}

// Table is a matrix of table cells. Merged cells are expressed with the
// SpanLeft/SpanAbove flags of the cells they cover, so every row has one
// cell per column.
type Table struct {
	Rows    []*TableRow
	Widths  []float64
	Format  TableFormat
	Dataset map[string]string
}

// BlockType implements Block.
func (*Table) BlockType() BlockType { return BlockTypeTable }
func (*Table) isBlock()             {}

// Divider is a horizontal rule or an empty separator block.
type Divider struct {
	Selectable
	TagName string
	Format  DividerFormat
}

// BlockType implements Block.
func (*Divider) BlockType() BlockType { return BlockTypeDivider }
func (*Divider) isBlock()             {}

// Entity is a piece of host-controlled content. The model keeps the wrapper
// element as is and never looks inside it.
type Entity struct {
	Selectable
	Wrapper *html.Node `json:"-"`
	Entity  EntityFormat
	Format  SegmentFormat
}

// BlockType implements Block.
func (*Entity) BlockType() BlockType { return BlockTypeEntity }
func (*Entity) isBlock()             {}

// SegmentType implements Segment, for entities inlined in a paragraph.
func (*Entity) SegmentType() SegmentType { return SegmentEntity }

// SegmentFormat implements Segment.
func (e *Entity) SegmentFormat() *SegmentFormat { return &e.Format }
func (*Entity) isSegment()                      {}
