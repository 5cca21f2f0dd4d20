package transform

import (
	"math"

	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/selection"
	"go.uber.org/zap"
)

// DefaultIndentPx is the indentation step used when none is given.
const DefaultIndentPx = 40.0

// Indentation is the direction of an indentation change.
type Indentation int

// Indentation directions.
const (
	Indent Indentation = iota
	Outdent
)

func (i Indentation) String() string {
	if i == Outdent {
		return "outdent"
	}
	return "indent"
}

var (
	listItemTypes = []model.BlockGroupType{model.GroupListItem}
	cellTypes     = []model.BlockGroupType{model.GroupTableCell}
)

// SetModelIndentation indents or outdents the selected blocks. A list item
// gains or loses its innermost level. Other blocks have their start margin
// moved to the next multiple of lengthPx, clamped at 0. A format container
// holding nothing but the block is moved instead. lengthPx defaults to
// DefaultIndentPx. It reports whether a block changed.
func SetModelIndentation(doc *model.Document, op Indentation, lengthPx float64) bool {
	if lengthPx <= 0 {
		lengthPx = DefaultIndentPx
	}
	changed := 0
	for _, ob := range selection.GetOperationalBlocks(doc, listItemTypes, cellTypes) {
		var ok bool
		if item, isItem := ob.Block.(*model.ListItem); isItem {
			ok = setListItemIndentation(item, op)
			if ok {
				doc.Cache.Invalidate(item)
			}
		} else {
			target := indentTarget(ob)
			if f := blockFormatOf(target); f != nil {
				ok = setMargin(f, op, lengthPx)
			}
			if ok {
				doc.Cache.Invalidate(target)
			}
		}
		if ok {
			changed++
		}
	}
	logger.L().Debug("set indentation",
		zap.Stringer("op", op),
		zap.Int("changed", changed))
	return changed > 0
}

// indentTarget climbs from a block through the format containers holding
// only it.
func indentTarget(ob selection.OperationalBlock) model.Block {
	target := ob.Block
	for _, g := range ob.Path {
		container, ok := g.(*model.FormatContainer)
		if !ok || len(container.Blocks) != 1 || container.Blocks[0] != target {
			break
		}
		target = container
	}
	return target
}

func setListItemIndentation(item *model.ListItem, op Indentation) bool {
	if len(item.Levels) == 0 {
		return false
	}
	if op == Outdent {
		item.Levels[len(item.Levels)-1] = nil
		item.Levels = item.Levels[:len(item.Levels)-1]
		return true
	}
	last := item.Levels[len(item.Levels)-1]
	level := model.NewListLevel(last.ListType, model.ListLevelFormat{
		DirectionFormat: last.Format.DirectionFormat,
		TextAlignFormat: last.Format.TextAlignFormat,
	}, nil)
	format.WriteListMetadata(level.Dataset, format.ListMetadata{ApplyListStyleFromLevel: true})
	item.Levels = append(item.Levels, level)
	return true
}

// blockFormatOf returns the format holding the margins of a block.
func blockFormatOf(block model.Block) *model.BlockFormat {
	switch b := block.(type) {
	case *model.Paragraph:
		return &b.Format
	case *model.Table:
		return &b.Format.BlockFormat
	case *model.Divider:
		return &b.Format.BlockFormat
	case *model.FormatContainer:
		return &b.Format.BlockFormat
	case *model.Code:
		return &b.Format
	}
	return nil
}

// setMargin moves the start margin of a block to the next step of the
// indentation grid.
func setMargin(f *model.BlockFormat, op Indentation, lengthPx float64) bool {
	margin := &f.MarginLeft
	if f.Direction == "rtl" {
		margin = &f.MarginRight
	}
	original := format.ParseValueWithUnit(*margin, 0, "px")

	var value float64
	if op == Indent {
		value = math.Ceil(original/lengthPx) * lengthPx
		if value == original {
			value += lengthPx
		}
	} else {
		value = math.Floor(original/lengthPx) * lengthPx
		if value == original {
			value = math.Max(value-lengthPx, 0)
		}
	}
	if value == original {
		return false
	}
	if value == 0 {
		*margin = ""
	} else {
		*margin = format.FormatPx(value)
	}
	return true
}

// IndentStep indents or outdents the selection.
type IndentStep struct {
	Op       Indentation
	LengthPx float64
}

// NewIndentStep is the constructor for IndentStep.
func NewIndentStep(op Indentation, lengthPx float64) *IndentStep {
	return &IndentStep{Op: op, LengthPx: lengthPx}
}

// Apply is a method of the Step interface.
func (s *IndentStep) Apply(doc *model.Document) StepResult {
	if !SetModelIndentation(doc, s.Op, s.LengthPx) {
		return Fail("nothing to " + s.Op.String())
	}
	return OK(doc)
}

// Invert is a method of the Step interface. The inverse restores the
// levels and margins of the blocks the step is about to change.
func (s *IndentStep) Invert(doc *model.Document) Step {
	restore := &RestoreIndentationStep{}
	for _, ob := range selection.GetOperationalBlocks(doc, listItemTypes, cellTypes) {
		if item, ok := ob.Block.(*model.ListItem); ok {
			restore.items = append(restore.items, listItemState{
				item:   item,
				levels: append([]*model.ListLevel(nil), item.Levels...),
			})
			continue
		}
		target := indentTarget(ob)
		if f := blockFormatOf(target); f != nil {
			restore.blocks = append(restore.blocks, marginState{
				block: target,
				left:  f.MarginLeft,
				right: f.MarginRight,
			})
		}
	}
	return restore
}

// Merge is a method of the Step interface.
func (s *IndentStep) Merge(other Step) (Step, bool) {
	return nil, false
}

var _ Step = &IndentStep{}

type listItemState struct {
	item   *model.ListItem
	levels []*model.ListLevel
}

type marginState struct {
	block       model.Block
	left, right string
}

// RestoreIndentationStep puts back the list levels and margins recorded
// before an IndentStep.
type RestoreIndentationStep struct {
	items  []listItemState
	blocks []marginState
}

// Apply is a method of the Step interface.
func (s *RestoreIndentationStep) Apply(doc *model.Document) StepResult {
	if len(s.items) == 0 && len(s.blocks) == 0 {
		return Fail("nothing to restore")
	}
	for _, state := range s.items {
		state.item.Levels = append([]*model.ListLevel(nil), state.levels...)
		doc.Cache.Invalidate(state.item)
	}
	for _, state := range s.blocks {
		f := blockFormatOf(state.block)
		f.MarginLeft, f.MarginRight = state.left, state.right
		doc.Cache.Invalidate(state.block)
	}
	return OK(doc)
}

// Invert is a method of the Step interface.
func (s *RestoreIndentationStep) Invert(doc *model.Document) Step {
	inverse := &RestoreIndentationStep{}
	for _, state := range s.items {
		inverse.items = append(inverse.items, listItemState{
			item:   state.item,
			levels: append([]*model.ListLevel(nil), state.item.Levels...),
		})
	}
	for _, state := range s.blocks {
		f := blockFormatOf(state.block)
		inverse.blocks = append(inverse.blocks, marginState{block: state.block, left: f.MarginLeft, right: f.MarginRight})
	}
	return inverse
}

// Merge is a method of the Step interface.
func (s *RestoreIndentationStep) Merge(other Step) (Step, bool) {
	return nil, false
}

var _ Step = &RestoreIndentationStep{}
