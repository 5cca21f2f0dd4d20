package model2dom

import (
	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ContentModelToDOM reconciles the children of root with a document and
// returns the range selection recorded while rendering, or nil. The full
// selection, image and table selections included, is left in ctx.Selection.
func ContentModelToDOM(root *html.Node, doc *model.Document, ctx *Context) *dom.Range {
	if ctx.Cache == nil {
		ctx.Cache = doc.Cache
	}
	ctx.ListThread = nil

	HandleBlockGroupChildren(root, doc, ctx)
	ctx.resolveSelection()

	logger.L().Debug("rendered model",
		zap.Int("added", len(ctx.DomModification.AddedBlockElements)),
		zap.Int("removed", len(ctx.DomModification.RemovedBlockElements)),
	)
	return ctx.rangeSelection()
}

// RenderHTML renders a document into a new fragment and returns its HTML.
// Cached elements are left where they are.
func RenderHTML(doc *model.Document, options ...Option) string {
	root := dom.NewElement("div")
	ctx := NewContext(options...)
	ctx.Cache = model.NewElementCache()
	ContentModelToDOM(root, doc, ctx)
	return dom.InnerHTML(root)
}
