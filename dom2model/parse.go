package dom2model

import (
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ParseDOM parses the children of root into a new document and normalizes
// it. When the context allows caching, the document cache records the
// element backing each parsed block.
func ParseDOM(root *html.Node, ctx *Context) *model.Document {
	doc := model.NewDocument(ctx.DefaultFormat)
	if ctx.AllowCacheElement {
		if ctx.Cache == nil {
			ctx.Cache = model.NewElementCache()
		}
		doc.Cache = ctx.Cache
	}

	ctx.ProcessChildren(doc, root)
	model.NormalizeContentModel(doc)

	logger.L().Debug("parsed dom", zap.Int("blocks", len(doc.Blocks)))
	return doc
}
