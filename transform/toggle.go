package transform

import (
	"github.com/cozy/contentmodel-go/formatstate"
	"github.com/cozy/contentmodel-go/model"
)

// toggle applies on when the whole selection does not have the property
// yet, off otherwise. It returns the inverse step, nil when nothing is
// selected.
func toggle(doc *model.Document, current func(formatstate.FormatState) *bool, on, off model.SegmentFormat) (Step, StepResult) {
	f := on
	if v := current(formatstate.RetrieveModelFormatState(doc, nil)); v != nil && *v {
		f = off
	}
	return ApplyStep(doc, NewSegmentFormatStep(f))
}

// ToggleBold makes the selection bold, or normal when it is all bold.
func ToggleBold(doc *model.Document) (Step, StepResult) {
	return toggle(doc, func(s formatstate.FormatState) *bool { return s.IsBold },
		model.SegmentFormat{FontWeight: "bold"},
		model.SegmentFormat{FontWeight: "normal"})
}

// ToggleItalic switches the italic style of the selection.
func ToggleItalic(doc *model.Document) (Step, StepResult) {
	return toggle(doc, func(s formatstate.FormatState) *bool { return s.IsItalic },
		model.SegmentFormat{Italic: model.Bool(true)},
		model.SegmentFormat{Italic: model.Bool(false)})
}

// ToggleUnderline switches the underline of the selection.
func ToggleUnderline(doc *model.Document) (Step, StepResult) {
	return toggle(doc, func(s formatstate.FormatState) *bool { return s.IsUnderline },
		model.SegmentFormat{Underline: model.Bool(true)},
		model.SegmentFormat{Underline: model.Bool(false)})
}

// ToggleStrikethrough switches the line through the selection.
func ToggleStrikethrough(doc *model.Document) (Step, StepResult) {
	return toggle(doc, func(s formatstate.FormatState) *bool { return s.IsStrikeThrough },
		model.SegmentFormat{Strikethrough: model.Bool(true)},
		model.SegmentFormat{Strikethrough: model.Bool(false)})
}
