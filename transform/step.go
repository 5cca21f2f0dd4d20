// Package transform implements the structural changes made to a Content
// Model document by editing commands. Changes are expressed as steps, which
// can be applied, inverted for undo and merged with the step that follows.
package transform

import "github.com/cozy/contentmodel-go/model"

// Step objects represent an atomic change of a document. Steps mutate the
// document in place and invalidate the cached DOM element of every node
// they change.
type Step interface {
	// Applies this step to the given document, returning a result object
	// that either indicates failure, if the step can not be applied to this
	// document, or indicates success by containing the changed document.
	Apply(doc *model.Document) StepResult

	// Invert creates an inverted version of this step. Needs the document as
	// it was before the step as argument.
	Invert(doc *model.Document) Step

	// Merge tries to merge this step with another one, to be applied
	// directly after it. Returns the merged step when possible.
	Merge(other Step) (Step, bool)
}

// StepResult is the result of applying a step. Contains either a document
// or a failure value.
type StepResult struct {
	Doc *model.Document
	// Failed gives information about a failed step.
	Failed string
}

// OK creates a successful step result.
func OK(doc *model.Document) StepResult {
	return StepResult{Doc: doc}
}

// Fail creates a failed step result.
func Fail(message string) StepResult {
	return StepResult{Failed: message}
}

// ApplyStep applies a step and returns its inverse, nil when the step
// failed.
func ApplyStep(doc *model.Document, step Step) (Step, StepResult) {
	inverse := step.Invert(doc)
	result := step.Apply(doc)
	if result.Failed != "" {
		return nil, result
	}
	return inverse, result
}
