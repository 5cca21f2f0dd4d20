package paste

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/dom2model"
	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/model"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	listDefinitionPattern = regexp.MustCompile(`@list\s+(l\d+):level(\d+)\s*\{([^}]*)\}`)
	bulletTextPattern     = regexp.MustCompile(`^[0-9a-zA-Z]+[.)]$`)
)

// wordLevel is the @list definition of one level of a Word list.
type wordLevel struct {
	numberFormat string
	startAt      int
}

func (l wordLevel) listType() string {
	if l.numberFormat == "bullet" || l.numberFormat == "none" {
		return "UL"
	}
	return "OL"
}

var wordNumberFormats = map[string]string{
	"alpha-lower": "lower-alpha",
	"alpha-upper": "upper-alpha",
	"roman-lower": "lower-roman",
	"roman-upper": "upper-roman",
}

// parseListDefinitions reads the @list rules of Word style sheets, keyed
// by "l<id>:<level>".
func parseListDefinitions(styleText string) map[string]wordLevel {
	defs := map[string]wordLevel{}
	for _, m := range listDefinitionPattern.FindAllStringSubmatch(styleText, -1) {
		decls := dom.ParseStyle(strings.Join(strings.Fields(m[3]), " "))
		level := wordLevel{numberFormat: strings.ToLower(decls.Get("mso-level-number-format"))}
		if start := decls.Get("mso-level-start-at"); start != "" {
			n, err := strconv.Atoi(start)
			if err != nil {
				logger.L().Warn("invalid word list start",
					zap.String("list", m[1]),
					zap.String("value", start))
			} else {
				level.startAt = n
			}
		}
		defs[m[1]+":"+m[2]] = level
	}
	return defs
}

// parseMsoList reads "l0 level2 lfo1" into the list id and the level,
// counted from 1.
func parseMsoList(value string) (id string, level int, ok bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 || !strings.HasPrefix(fields[1], "level") {
		return "", 0, false
	}
	level, err := strconv.Atoi(strings.TrimPrefix(fields[1], "level"))
	if err != nil || level < 1 {
		return "", 0, false
	}
	return fields[0], level, true
}

// wordLists rebuilds Word list paragraphs into list items. Levels are kept
// per list id so that numbering continues across the paragraphs of a list.
type wordLists struct {
	defs   map[string]wordLevel
	levels map[string][]*model.ListLevel
}

func newWordLists(styleText string) *wordLists {
	return &wordLists{defs: parseListDefinitions(styleText), levels: map[string][]*model.ListLevel{}}
}

func (w *wordLists) levelsFor(id string, depth int, el *html.Node) []*model.ListLevel {
	levels := w.levels[id]
	if len(levels) > depth {
		levels = levels[:depth]
	}
	for len(levels) < depth {
		n := len(levels) + 1
		def, known := w.defs[fmt.Sprintf("%s:%d", id, n)]
		listType := def.listType()
		if !known {
			listType = guessListType(el)
		}
		levels = append(levels, model.NewListLevel(listType, model.ListLevelFormat{
			ListStyleType:       wordNumberFormats[def.numberFormat],
			StartNumberOverride: def.startAt,
		}, nil))
	}
	w.levels[id] = levels
	return levels
}

// guessListType looks at the bullet Word renders before the text when the
// list has no definition.
func guessListType(el *html.Node) string {
	bullet := dom.FindFirst(el, isIgnoredListSpan)
	if bullet != nil && bulletTextPattern.MatchString(strings.TrimSpace(dom.TextContent(bullet))) {
		return "OL"
	}
	return "UL"
}

func isIgnoredListSpan(n *html.Node) bool {
	return n.Type == html.ElementNode && strings.EqualFold(dom.StyleValue(n, "mso-list"), "Ignore")
}

func (w *wordLists) processBlock(next dom2model.ElementProcessor) dom2model.ElementProcessor {
	return func(group model.BlockGroup, el *html.Node, ctx *dom2model.Context) {
		id, depth, ok := parseMsoList(dom.StyleValue(el, "mso-list"))
		if !ok {
			next(group, el, ctx)
			return
		}
		levels := w.levelsFor(id, depth, el)
		parent := ctx.ListFormat.ListParent
		if parent == nil {
			parent = group
		}
		ctx.Scope(func() {
			ctx.FormatParsers.SegmentOnBlock.Parse(&ctx.SegmentFormat, el, &ctx.State, nil)
			item := model.NewListItem(levels, ctx.SegmentFormat)
			model.AddBlock(parent, item)

			innermost := levels[len(levels)-1]
			innermost.Format.StartNumberOverride = 0
			if innermost.ListType == "OL" {
				ctx.CountListItem(len(levels) - 1)
			}
			ctx.BlockFormat = model.BlockFormat{}
			ctx.ProcessChildren(item, el)
		})
	}
}

func skipIgnoredListSpan(next dom2model.ElementProcessor) dom2model.ElementProcessor {
	return func(group model.BlockGroup, el *html.Node, ctx *dom2model.Context) {
		if isIgnoredListSpan(el) {
			return
		}
		next(group, el, ctx)
	}
}

func skipElement(model.BlockGroup, *html.Node, *dom2model.Context) {}

// stripMsoStyles removes the Word specific declarations other than
// mso-list from inline styles.
func stripMsoStyles(root *html.Node) {
	dom.Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !dom.HasAttr(n, "style") {
			return true
		}
		decls := dom.Style(n)
		kept := decls[:0]
		for _, decl := range decls {
			if !strings.HasPrefix(decl.Property, "mso-") || decl.Property == "mso-list" {
				kept = append(kept, decl)
			}
		}
		if len(kept) != len(decls) {
			dom.WriteStyle(n, kept)
		}
		return true
	})
}

// negativeTextIndent drops the hanging indent Word puts on list paragraphs.
var negativeTextIndent = format.Part[model.BlockFormat]{
	Name: "wordTextIndent",
	Parse: func(f *model.BlockFormat, _ *html.Node, _ *format.State, _ dom.Declarations) {
		if strings.HasPrefix(f.TextIndent, "-") {
			f.TextIndent = ""
		}
	},
}

func wordNormalizer(info htmlInfo) normalizer {
	lists := newWordLists(info.styleText)
	return normalizer{
		prepare: stripMsoStyles,
		options: func(base map[string]dom2model.ElementProcessor) dom2model.Option {
			return dom2model.Option{
				AdditionalFormatParsers: &format.Chains{Block: format.Chain[model.BlockFormat]{negativeTextIndent}},
				ProcessorOverride: map[string]dom2model.ElementProcessor{
					dom2model.ProcessorBlock:  lists.processBlock(base[dom2model.ProcessorBlock]),
					dom2model.ProcessorFormat: skipIgnoredListSpan(base[dom2model.ProcessorFormat]),
					"o:p":                     skipElement,
				},
			}
		},
	}
}
