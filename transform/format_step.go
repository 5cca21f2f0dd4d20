package transform

import (
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/selection"
)

// segmentTarget is a selected segment with the node owning it in the
// element cache: its paragraph, or the list item of a format holder.
type segmentTarget struct {
	segment model.Segment
	owner   interface{}
}

func selectedSegments(doc *model.Document) []segmentTarget {
	var targets []segmentTarget
	for _, s := range selection.GetSelectedSegmentsAndParagraphs(doc, true, false) {
		var owner interface{} = s.Paragraph
		if s.Paragraph == nil && len(s.Path) > 0 {
			owner = s.Path[0]
		}
		targets = append(targets, segmentTarget{segment: s.Segment, owner: owner})
	}
	return targets
}

// SegmentFormatStep overlays a format on the selected segments. A collapsed
// selection formats its marker, so the format applies to the next typed
// text. Fields left empty in Format are kept.
type SegmentFormatStep struct {
	Format model.SegmentFormat
}

// NewSegmentFormatStep is the constructor for SegmentFormatStep.
func NewSegmentFormatStep(f model.SegmentFormat) *SegmentFormatStep {
	return &SegmentFormatStep{Format: model.CloneSegmentFormat(f)}
}

// Apply is a method of the Step interface.
func (s *SegmentFormatStep) Apply(doc *model.Document) StepResult {
	targets := selectedSegments(doc)
	if len(targets) == 0 {
		return Fail("no selected segment")
	}
	for _, t := range targets {
		f := t.segment.SegmentFormat()
		*f = model.MergeSegmentFormat(*f, s.Format)
		doc.Cache.Invalidate(t.owner)
	}
	return OK(doc)
}

// Invert is a method of the Step interface.
func (s *SegmentFormatStep) Invert(doc *model.Document) Step {
	restore := &RestoreSegmentFormatStep{}
	for _, t := range selectedSegments(doc) {
		restore.targets = append(restore.targets, t)
		restore.formats = append(restore.formats, model.CloneSegmentFormat(*t.segment.SegmentFormat()))
	}
	return restore
}

// Merge is a method of the Step interface. Two format steps over the same
// selection merge into one, the later format winning.
func (s *SegmentFormatStep) Merge(other Step) (Step, bool) {
	next, ok := other.(*SegmentFormatStep)
	if !ok {
		return nil, false
	}
	return NewSegmentFormatStep(model.MergeSegmentFormat(s.Format, next.Format)), true
}

var _ Step = &SegmentFormatStep{}

// RestoreSegmentFormatStep puts back the formats recorded before a
// SegmentFormatStep.
type RestoreSegmentFormatStep struct {
	targets []segmentTarget
	formats []model.SegmentFormat
}

// Apply is a method of the Step interface.
func (s *RestoreSegmentFormatStep) Apply(doc *model.Document) StepResult {
	if len(s.targets) == 0 {
		return Fail("nothing to restore")
	}
	for i, t := range s.targets {
		*t.segment.SegmentFormat() = model.CloneSegmentFormat(s.formats[i])
		doc.Cache.Invalidate(t.owner)
	}
	return OK(doc)
}

// Invert is a method of the Step interface.
func (s *RestoreSegmentFormatStep) Invert(doc *model.Document) Step {
	inverse := &RestoreSegmentFormatStep{targets: s.targets}
	for _, t := range s.targets {
		inverse.formats = append(inverse.formats, model.CloneSegmentFormat(*t.segment.SegmentFormat()))
	}
	return inverse
}

// Merge is a method of the Step interface.
func (s *RestoreSegmentFormatStep) Merge(other Step) (Step, bool) {
	return nil, false
}

var _ Step = &RestoreSegmentFormatStep{}

// BlockFormatStep sets the alignment, direction or line height of the
// selected paragraphs. Empty fields are kept.
type BlockFormatStep struct {
	TextAlign  string
	Direction  string
	LineHeight string
}

// Apply is a method of the Step interface.
func (s *BlockFormatStep) Apply(doc *model.Document) StepResult {
	paragraphs := selection.GetSelectedParagraphs(doc)
	if len(paragraphs) == 0 {
		return Fail("no selected paragraph")
	}
	for _, p := range paragraphs {
		if s.TextAlign != "" {
			p.Format.TextAlign = s.TextAlign
		}
		if s.Direction != "" {
			if p.Format.Direction != s.Direction {
				// The start margin follows the text direction.
				p.Format.MarginLeft, p.Format.MarginRight = p.Format.MarginRight, p.Format.MarginLeft
			}
			p.Format.Direction = s.Direction
		}
		if s.LineHeight != "" {
			p.Format.LineHeight = s.LineHeight
		}
		doc.Cache.Invalidate(p)
	}
	return OK(doc)
}

// Invert is a method of the Step interface.
func (s *BlockFormatStep) Invert(doc *model.Document) Step {
	restore := &RestoreBlockFormatStep{}
	for _, p := range selection.GetSelectedParagraphs(doc) {
		restore.paragraphs = append(restore.paragraphs, p)
		restore.formats = append(restore.formats, p.Format)
	}
	return restore
}

// Merge is a method of the Step interface.
func (s *BlockFormatStep) Merge(other Step) (Step, bool) {
	next, ok := other.(*BlockFormatStep)
	if !ok {
		return nil, false
	}
	merged := *s
	if next.TextAlign != "" {
		merged.TextAlign = next.TextAlign
	}
	if next.Direction != "" {
		merged.Direction = next.Direction
	}
	if next.LineHeight != "" {
		merged.LineHeight = next.LineHeight
	}
	return &merged, true
}

var _ Step = &BlockFormatStep{}

// RestoreBlockFormatStep puts back the paragraph formats recorded before a
// BlockFormatStep.
type RestoreBlockFormatStep struct {
	paragraphs []*model.Paragraph
	formats    []model.BlockFormat
}

// Apply is a method of the Step interface.
func (s *RestoreBlockFormatStep) Apply(doc *model.Document) StepResult {
	if len(s.paragraphs) == 0 {
		return Fail("nothing to restore")
	}
	for i, p := range s.paragraphs {
		p.Format = s.formats[i]
		doc.Cache.Invalidate(p)
	}
	return OK(doc)
}

// Invert is a method of the Step interface.
func (s *RestoreBlockFormatStep) Invert(doc *model.Document) Step {
	inverse := &RestoreBlockFormatStep{paragraphs: s.paragraphs}
	for _, p := range s.paragraphs {
		inverse.formats = append(inverse.formats, p.Format)
	}
	return inverse
}

// Merge is a method of the Step interface.
func (s *RestoreBlockFormatStep) Merge(other Step) (Step, bool) {
	return nil, false
}

var _ Step = &RestoreBlockFormatStep{}
