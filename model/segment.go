package model

import "golang.org/x/net/html"

// Link decorates a segment rendered inside an anchor.
type Link struct {
	Format  LinkFormat
	Dataset map[string]string
}

// CodeDecorator decorates a segment rendered inside <code>.
type CodeDecorator struct {
	Format CodeFormat
}

// Text is a run of text with a single format.
type Text struct {
	Selectable
	Text   string
	Format SegmentFormat
	Link   *Link
	Code   *CodeDecorator
}

// SegmentType implements Segment.
func (*Text) SegmentType() SegmentType { return SegmentText }

// SegmentFormat implements Segment.
func (t *Text) SegmentFormat() *SegmentFormat { return &t.Format }
func (*Text) isSegment()                      {}

// Br is a line break.
type Br struct {
	Selectable
	Format SegmentFormat
	Link   *Link
}

// SegmentType implements Segment.
func (*Br) SegmentType() SegmentType { return SegmentBr }

// SegmentFormat implements Segment.
func (b *Br) SegmentFormat() *SegmentFormat { return &b.Format }
func (*Br) isSegment()                      {}

// Image is an inline image.
type Image struct {
	Selectable
	Src     string
	Alt     string
	Title   string
	Format  ImageFormat
	Dataset map[string]string
	Link    *Link
	// IsSelectedAsImageSelection is set when the image alone is selected as
	// an object rather than as part of a text range.
	IsSelectedAsImageSelection bool
}

// SegmentType implements Segment.
func (*Image) SegmentType() SegmentType { return SegmentImage }

// SegmentFormat implements Segment.
func (i *Image) SegmentFormat() *SegmentFormat { return &i.Format.SegmentFormat }
func (*Image) isSegment()                      {}

// SelectionMarker is a zero width caret anchor. Its format is the pending
// format applied to the next typed character.
type SelectionMarker struct {
	Selectable
	Format SegmentFormat
	Link   *Link
	Code   *CodeDecorator
}

// SegmentType implements Segment.
func (*SelectionMarker) SegmentType() SegmentType { return SegmentSelectionMarker }

// SegmentFormat implements Segment.
func (m *SelectionMarker) SegmentFormat() *SegmentFormat { return &m.Format }
func (*SelectionMarker) isSegment()                      {}

// GeneralSegment wraps an inline DOM element the model does not understand.
// It is a segment and a block group at once.
type GeneralSegment struct {
	Group
	Selectable
	Element *html.Node `json:"-"`
	Format  SegmentFormat
	Link    *Link
}

// SegmentType implements Segment.
func (*GeneralSegment) SegmentType() SegmentType { return SegmentGeneral }

// SegmentFormat implements Segment.
func (g *GeneralSegment) SegmentFormat() *SegmentFormat { return &g.Format }
func (*GeneralSegment) isSegment()                      {}

// BlockGroupType implements BlockGroup.
func (*GeneralSegment) BlockGroupType() BlockGroupType { return GroupGeneral }
func (*GeneralSegment) isBlockGroup()                  {}

var (
	_ Segment    = &Text{}
	_ Segment    = &Br{}
	_ Segment    = &Image{}
	_ Segment    = &SelectionMarker{}
	_ Segment    = &GeneralSegment{}
	_ Segment    = &Entity{}
	_ BlockGroup = &GeneralSegment{}
)

// SegmentLink returns the link decorator of a segment, if any.
func SegmentLink(s Segment) *Link {
	switch s := s.(type) {
	case *Text:
		return s.Link
	case *Br:
		return s.Link
	case *Image:
		return s.Link
	case *SelectionMarker:
		return s.Link
	case *GeneralSegment:
		return s.Link
	case *Entity:
		return nil
	default:
		Unreachable(s)
		return nil
	}
}

// SegmentCode returns the code decorator of a segment, if any.
func SegmentCode(s Segment) *CodeDecorator {
	switch s := s.(type) {
	case *Text:
		return s.Code
	case *SelectionMarker:
		return s.Code
	default:
		return nil
	}
}
