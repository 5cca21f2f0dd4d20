// Package model defines the Content Model: a DOM independent tree describing
// a rich-text document. A Document is a group of Blocks; a Paragraph holds
// Segments; tables hold cells which are groups again.
//
// Blocks, block groups and segments are closed tagged unions. Each node type
// reports its tag (BlockType, BlockGroupType, SegmentType), and the interfaces
// are sealed by unexported methods so that a type switch over the tags listed
// here is exhaustive. Consumers end such switches with Unreachable.
//
// The tree is mutated in place. A node that has been rendered to the DOM may
// have an entry in an ElementCache; code that mutates a node must invalidate
// that entry first so the reconciler renders the node again.
package model

import "fmt"

// BlockType is the tag of a Block.
type BlockType string

// The block types.
const (
	BlockTypeParagraph  BlockType = "Paragraph"
	BlockTypeTable      BlockType = "Table"
	BlockTypeDivider    BlockType = "Divider"
	BlockTypeEntity     BlockType = "Entity"
	BlockTypeBlockGroup BlockType = "BlockGroup"
)

// BlockGroupType is the tag of a BlockGroup.
type BlockGroupType string

// The block group types.
const (
	GroupDocument        BlockGroupType = "Document"
	GroupListItem        BlockGroupType = "ListItem"
	GroupTableCell       BlockGroupType = "TableCell"
	GroupGeneral         BlockGroupType = "General"
	GroupFormatContainer BlockGroupType = "FormatContainer"
	GroupCode            BlockGroupType = "Code"
)

// SegmentType is the tag of a Segment.
type SegmentType string

// The segment types.
const (
	SegmentText            SegmentType = "Text"
	SegmentBr              SegmentType = "Br"
	SegmentImage           SegmentType = "Image"
	SegmentSelectionMarker SegmentType = "SelectionMarker"
	SegmentGeneral         SegmentType = "General"
	SegmentEntity          SegmentType = "Entity"
)

// Block is a node that can appear directly in a block group.
type Block interface {
	BlockType() BlockType
	isBlock()
}

// BlockGroup is a node owning an ordered list of child blocks. Every block
// group except the Document and TableCell is also a Block.
type BlockGroup interface {
	BlockGroupType() BlockGroupType
	ChildBlocks() []Block
	SetChildBlocks(blocks []Block)
	isBlockGroup()
}

// Segment is an inline node of a Paragraph.
type Segment interface {
	SegmentType() SegmentType
	Selected() bool
	SetSelected(selected bool)
	// SegmentFormat returns the format of the segment for in place updates.
	SegmentFormat() *SegmentFormat
	isSegment()
}

// Selectable is embedded by every node that carries a selection flag.
type Selectable struct {
	IsSelected bool
}

// Selected reports the selection flag.
func (s *Selectable) Selected() bool { return s.IsSelected }

// SetSelected writes the selection flag.
func (s *Selectable) SetSelected(selected bool) { s.IsSelected = selected }

// SelectableNode is implemented by all nodes embedding Selectable.
type SelectableNode interface {
	Selected() bool
	SetSelected(selected bool)
}

// Group holds the children of a block group. It is embedded by every block
// group type.
type Group struct {
	Blocks []Block
}

// ChildBlocks returns the children.
func (g *Group) ChildBlocks() []Block { return g.Blocks }

// SetChildBlocks replaces the children.
func (g *Group) SetChildBlocks(blocks []Block) { g.Blocks = blocks }

// Unreachable panics for a node type missing from an exhaustive switch. It
// marks a programming error: the unions are sealed in this package.
func Unreachable(v interface{}) {
	panic(fmt.Sprintf("contentmodel: unhandled node type %T", v))
}

// AsBlockGroup returns the block as a block group when it is one.
func AsBlockGroup(b Block) (BlockGroup, bool) {
	if b == nil || b.BlockType() != BlockTypeBlockGroup {
		return nil, false
	}
	g, ok := b.(BlockGroup)
	return g, ok
}

// IsGroupOfType reports whether b is a block group of the given type.
func IsGroupOfType(b Block, typ BlockGroupType) bool {
	g, ok := AsBlockGroup(b)
	return ok && g.BlockGroupType() == typ
}
