// Package paste converts clipboard content into a Content Model document.
// The source application is recognised first, and the parser is adapted to
// the markup that application produces.
package paste

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// ErrEmptyPaste is returned when the clipboard holds neither HTML nor text.
var ErrEmptyPaste = errors.New("paste: nothing to paste")

// PasteInput is the content of the clipboard.
type PasteInput struct {
	HTML               string
	Text               string
	ClipboardItemTypes []string
	Environment        Environment
}

// Option configures ProcessPaste.
type Option struct {
	// Sanitize runs the HTML through the sanitizer policy before parsing.
	Sanitize bool
	// ConvertSingleImage pastes a lone image as an image segment only.
	ConvertSingleImage bool
	// DefaultFormat is the default segment format of the pasted model.
	DefaultFormat *model.SegmentFormat
	// ParserOptions are applied after the options of the source.
	ParserOptions []dom2model.Option
}

// PasteResult is the parsed clipboard content.
type PasteResult struct {
	Source         KnownPasteSource
	HTMLAttributes map[string]string
	Model          *model.Document
}

// Policy is the sanitizer policy of pasted HTML. It keeps the styles,
// classes and data attributes the parser and the source normalizers read.
var Policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowDataURIImages()
	p.AllowDataAttributes()
	p.AllowAttrs("style", "class", "dir", "lang", "align", "valign", "width", "height").Globally()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowAttrs("span", "width").OnElements("col", "colgroup")
	p.AllowAttrs("start", "type").OnElements("ol", "ul", "li")
	p.AllowAttrs("target", "title", "name").OnElements("a")
	p.AllowElements("span", "div", "font", "u", "s", "strike", "colgroup", "col", googleSheetsTag)
	return p
}

// ProcessPaste classifies and parses clipboard content. The HTML is
// preferred; plain text is pasted as one paragraph per line.
func ProcessPaste(ctx context.Context, in PasteInput, opt Option) (*PasteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.HTML) == "" {
		if in.Text == "" {
			return nil, ErrEmptyPaste
		}
		return &PasteResult{Source: SourceDefault, Model: textModel(in.Text, opt.DefaultFormat)}, nil
	}

	// Rows copied out of a spreadsheet come without their table and would
	// be dropped by the HTML parser.
	raw := in.HTML
	if isBareTableRows(raw) {
		raw = wrapTableRows(raw)
	}
	info, err := retrieveHTMLInfo(raw)
	if err != nil {
		return nil, fmt.Errorf("paste: parse html: %w", err)
	}

	source := GetDocumentSource(GetSourceInput{
		HTMLAttributes:           info.attributes,
		Fragment:                 info.body,
		ClipboardItemTypes:       in.ClipboardItemTypes,
		HTMLFirstLevelChildTags:  firstLevelChildTags(info.body),
		RawHTML:                  in.HTML,
		ShouldConvertSingleImage: opt.ConvertSingleImage,
		Environment:              in.Environment,
	})
	logger.L().Debug("paste source", zap.String("source", string(source)))

	n := normalizerFor(source, info)
	body := info.body
	if opt.Sanitize {
		if body, err = dom.ParseBody(Policy.Sanitize(dom.InnerHTML(body))); err != nil {
			return nil, fmt.Errorf("paste: parse sanitized html: %w", err)
		}
	}
	if n.prepare != nil {
		n.prepare(body)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := []dom2model.Option{{DefaultFormat: opt.DefaultFormat}}
	if n.options != nil {
		options = append(options, n.options(dom2model.DefaultProcessors()))
	}
	options = append(options, opt.ParserOptions...)
	doc := dom2model.ParseDOM(body, dom2model.NewContext(nil, options...))
	if n.finish != nil {
		n.finish(doc)
	}

	return &PasteResult{Source: source, HTMLAttributes: info.attributes, Model: doc}, nil
}

// textModel builds a document with one paragraph per line of text.
func textModel(text string, defaultFormat *model.SegmentFormat) *model.Document {
	var f model.SegmentFormat
	if defaultFormat != nil {
		f = *defaultFormat
	}
	doc := model.NewDocument(f)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		p := model.NewParagraph(false, model.BlockFormat{}, nil, nil)
		if line == "" {
			p.Segments = append(p.Segments, model.NewBr(model.SegmentFormat{}))
		} else {
			p.Segments = append(p.Segments, model.NewText(line, model.SegmentFormat{}, nil, nil))
		}
		model.AddBlock(doc, p)
	}
	return doc
}

