package paste

import (
	"strconv"
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// normalizer adapts the parsing of content pasted from one source. Every
// hook is optional.
type normalizer struct {
	// prepare rewrites the parsed DOM before it is converted.
	prepare func(root *html.Node)
	// options customises the parser. base holds the processors the
	// overrides can delegate to.
	options func(base map[string]dom2model.ElementProcessor) dom2model.Option
	// finish rewrites the parsed model.
	finish func(doc *model.Document)
}

func normalizerFor(source KnownPasteSource, info htmlInfo) normalizer {
	switch source {
	case SourceWordDesktop:
		return wordNormalizer(info)
	case SourceExcelDesktop, SourceExcelOnline, SourceExcelNonNativeEvent:
		return excelNormalizer()
	case SourcePowerPointDesktop:
		return powerPointNormalizer()
	case SourceWacComponents:
		return wacNormalizer()
	case SourceGoogleSheets:
		return googleSheetsNormalizer()
	case SourceOneNoteDesktop:
		return oneNoteNormalizer()
	case SourceSingleImage:
		return normalizer{finish: keepSingleImage}
	}
	return normalizer{}
}

// DefaultCellBorder is given to pasted spreadsheet cells without border.
const DefaultCellBorder = "1px solid #d4d4d4"

var defaultCellBorder = format.Part[model.TableCellFormat]{
	Name: "pasteCellBorder",
	Parse: func(f *model.TableCellFormat, _ *html.Node, _ *format.State, _ dom.Declarations) {
		if f.BorderTop == "" && f.BorderRight == "" && f.BorderBottom == "" && f.BorderLeft == "" {
			f.BorderTop = DefaultCellBorder
			f.BorderRight = DefaultCellBorder
			f.BorderBottom = DefaultCellBorder
			f.BorderLeft = DefaultCellBorder
		}
	},
}

func cellBorderOption(map[string]dom2model.ElementProcessor) dom2model.Option {
	return dom2model.Option{
		AdditionalFormatParsers: &format.Chains{TableCell: format.Chain[model.TableCellFormat]{defaultCellBorder}},
	}
}

func excelNormalizer() normalizer {
	return normalizer{options: cellBorderOption}
}

// removeStyles drops properties from the inline style of every element.
func removeStyles(root *html.Node, properties ...string) {
	dom.Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && dom.HasAttr(n, "style") {
			decls := dom.Style(n)
			for _, property := range properties {
				decls = decls.Remove(property)
			}
			dom.WriteStyle(n, decls)
		}
		return true
	})
}

func powerPointNormalizer() normalizer {
	noWhiteSpace := &format.Chains{
		Block:     format.Chain[model.BlockFormat]{{Name: "whiteSpace"}},
		Container: format.Chain[model.ContainerFormat]{{Name: "whiteSpace"}},
	}
	return normalizer{
		prepare: func(root *html.Node) {
			removeStyles(root, "position", "top", "left", "right", "bottom")
		},
		options: func(map[string]dom2model.ElementProcessor) dom2model.Option {
			return dom2model.Option{FormatParserOverride: noWhiteSpace}
		},
	}
}

// wacLists levels Word Online list items, which come each in their own
// list element, by their aria level.
type wacLists struct {
	last []*model.ListLevel
}

func (w *wacLists) processListItem(next dom2model.ElementProcessor) dom2model.ElementProcessor {
	return func(group model.BlockGroup, el *html.Node, ctx *dom2model.Context) {
		depth, err := strconv.Atoi(dom.Attr(el, "data-aria-level"))
		levels := ctx.ListFormat.Levels
		if err != nil || depth < 1 || len(levels) == 0 {
			next(group, el, ctx)
			return
		}
		innermost := levels[len(levels)-1]
		adjusted := make([]*model.ListLevel, 0, depth)
		for i := 0; i < depth-1; i++ {
			if i < len(w.last) {
				adjusted = append(adjusted, w.last[i])
			} else {
				adjusted = append(adjusted, model.NewListLevel(innermost.ListType, model.ListLevelFormat{}, nil))
			}
		}
		adjusted = append(adjusted, innermost)
		w.last = adjusted

		ctx.Scope(func() {
			ctx.ListFormat.Levels = adjusted
			next(group, el, ctx)
		})
	}
}

func wacNormalizer() normalizer {
	lists := &wacLists{}
	return normalizer{
		options: func(base map[string]dom2model.ElementProcessor) dom2model.Option {
			block, formatSpan := base[dom2model.ProcessorBlock], base[dom2model.ProcessorFormat]
			overrides := map[string]dom2model.ElementProcessor{
				"li": lists.processListItem(base["li"]),
			}
			overrides[dom2model.ProcessorBlock] = func(group model.BlockGroup, el *html.Node, ctx *dom2model.Context) {
				if dom.HasClass(el, "ListContainerWrapper") {
					ctx.ProcessChildren(group, el)
					return
				}
				block(group, el, ctx)
			}
			overrides[dom2model.ProcessorFormat] = func(group model.BlockGroup, el *html.Node, ctx *dom2model.Context) {
				if dom.HasClass(el, "WACImageBorder") ||
					(dom.HasClass(el, "EOP") && strings.TrimSpace(dom.TextContent(el)) == "") {
					return
				}
				formatSpan(group, el, ctx)
			}
			return dom2model.Option{ProcessorOverride: overrides}
		},
	}
}

func googleSheetsNormalizer() normalizer {
	return normalizer{
		prepare: func(root *html.Node) {
			dom.Walk(root, func(n *html.Node) bool {
				kept := n.Attr[:0]
				for _, attr := range n.Attr {
					if !strings.HasPrefix(attr.Key, "data-sheets-") {
						kept = append(kept, attr)
					}
				}
				n.Attr = kept
				return true
			})
		},
		options: func(base map[string]dom2model.ElementProcessor) dom2model.Option {
			opt := cellBorderOption(base)
			opt.ProcessorOverride = map[string]dom2model.ElementProcessor{
				googleSheetsTag: dom2model.ProcessTransparent,
			}
			return opt
		},
	}
}

func oneNoteNormalizer() normalizer {
	return normalizer{
		prepare: func(root *html.Node) {
			dom.Walk(root, func(n *html.Node) bool {
				if !dom.IsElement(n, "li") {
					return true
				}
				dom.Walk(n, func(c *html.Node) bool {
					if dom.IsElement(c, "p", "div") {
						decls := dom.Style(c)
						for _, property := range []string{"margin", "margin-top", "margin-right", "margin-bottom", "margin-left"} {
							decls = decls.Remove(property)
						}
						if dom.HasAttr(c, "style") {
							dom.WriteStyle(c, decls)
						}
					}
					return true
				})
				return false
			})
		},
	}
}

// keepSingleImage reduces a document to its first image.
func keepSingleImage(doc *model.Document) {
	var image *model.Image
	var find func(group model.BlockGroup)
	find = func(group model.BlockGroup) {
		for _, block := range group.ChildBlocks() {
			if image != nil {
				return
			}
			if p, ok := block.(*model.Paragraph); ok {
				for _, segment := range p.Segments {
					if img, ok := segment.(*model.Image); ok {
						image = img
						return
					}
				}
			} else if g, ok := model.AsBlockGroup(block); ok {
				find(g)
			}
		}
	}
	find(doc)
	if image == nil {
		return
	}
	p := model.NewParagraph(true, model.BlockFormat{}, nil, nil)
	p.Segments = []model.Segment{image}
	doc.Blocks = []model.Block{p}
}
