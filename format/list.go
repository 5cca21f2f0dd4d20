package format

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"github.com/cozy/contentmodel-go/model"
	"golang.org/x/net/html"
)

// EditingInfoKey is the dataset key holding list numbering metadata.
const EditingInfoKey = "editingInfo"

// ListMetadata is the numbering metadata of a list level, stored as JSON in
// the level's dataset.
type ListMetadata struct {
	// OrderedStyleType indexes OrderedListStyles, 0 meaning unset.
	OrderedStyleType int `json:"orderedStyleType,omitempty"`
	// UnorderedStyleType indexes UnorderedListStyles, 0 meaning unset.
	UnorderedStyleType int `json:"unorderedStyleType,omitempty"`
	// ApplyListStyleFromLevel derives the style from the nesting depth.
	ApplyListStyleFromLevel bool `json:"applyListStyleFromLevel,omitempty"`
}

// Style types addressable from metadata, from index 1.
var (
	OrderedListStyles = []string{
		"", "decimal", "lower-alpha", "lower-roman", "upper-alpha", "upper-roman", "decimal-leading-zero",
	}
	UnorderedListStyles = []string{
		"", "disc", "circle", "square",
	}
)

var (
	orderedByDepth   = []string{"decimal", "lower-alpha", "lower-roman"}
	unorderedByDepth = []string{"disc", "circle", "square"}
)

// ReadListMetadata decodes the metadata of a dataset. ok is false when
// there is none or it is not valid JSON.
func ReadListMetadata(dataset map[string]string) (ListMetadata, bool) {
	var meta ListMetadata
	raw := dataset[EditingInfoKey]
	if raw == "" {
		return meta, false
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return ListMetadata{}, false
	}
	return meta, true
}

// WriteListMetadata encodes metadata into a dataset.
func WriteListMetadata(dataset map[string]string, meta ListMetadata) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return
	}
	dataset[EditingInfoKey] = string(raw)
}

// MetadataListStyle returns the list-style-type implied by metadata for a
// list of the given type at depth (from 0), or "".
func MetadataListStyle(meta ListMetadata, listType string, depth int) string {
	if listType == "OL" {
		if meta.OrderedStyleType > 0 && meta.OrderedStyleType < len(OrderedListStyles) {
			return OrderedListStyles[meta.OrderedStyleType]
		}
		if meta.ApplyListStyleFromLevel {
			return orderedByDepth[depth%len(orderedByDepth)]
		}
		return ""
	}
	if meta.UnorderedStyleType > 0 && meta.UnorderedStyleType < len(UnorderedListStyles) {
		return UnorderedListStyles[meta.UnorderedStyleType]
	}
	if meta.ApplyListStyleFromLevel {
		return unorderedByDepth[depth%len(unorderedByDepth)]
	}
	return ""
}

func listType(el *html.Node) string {
	if dom.IsElement(el, "ol") {
		return "OL"
	}
	return "UL"
}

var olTypeAttr = map[string]string{
	"1": "decimal", "a": "lower-alpha", "A": "upper-alpha", "i": "lower-roman", "I": "upper-roman",
}

func parseListStyleType(el *html.Node) string {
	v := inline(el, "list-style-type")
	if v == "" {
		for _, token := range strings.Fields(inline(el, "list-style")) {
			if token != "inside" && token != "outside" && !strings.HasPrefix(token, "url(") {
				v = token
				break
			}
		}
	}
	if v == "" && dom.IsElement(el, "ol") {
		v = olTypeAttr[dom.Attr(el, "type")]
	}
	return v
}

// ListStyleType reads list-style-type of a list element. A value that the
// list metadata would produce anyway is not stored.
var ListStyleType = Handler[model.ListLevelFormat]{
	Parse: func(f *model.ListLevelFormat, el *html.Node, st *State, _ dom.Declarations) {
		v := parseListStyleType(el)
		if v == "" {
			return
		}
		if meta, ok := ReadListMetadata(dom.Dataset(el)); ok && MetadataListStyle(meta, listType(el), st.ListDepth) == v {
			return
		}
		f.ListStyleType = v
	},
	Apply: func(f *model.ListLevelFormat, el *html.Node, _ *State) {
		if f.ListStyleType != "" {
			dom.SetStyle(el, "list-style-type", f.ListStyleType)
		}
	},
}

// ItemListStyleType reads list-style-type of an li.
var ItemListStyleType = Handler[model.ListItemFormat]{
	Parse: func(f *model.ListItemFormat, el *html.Node, _ *State, _ dom.Declarations) {
		if v := parseListStyleType(el); v != "" {
			f.ListStyleType = v
		}
	},
	Apply: func(f *model.ListItemFormat, el *html.Node, _ *State) {
		if f.ListStyleType != "" {
			dom.SetStyle(el, "list-style-type", f.ListStyleType)
		}
	},
}

// threadCount returns the item count recorded at a depth.
func (st *State) threadCount(depth int) int {
	if depth < len(st.ListThread) {
		return st.ListThread[depth]
	}
	return 0
}

// setThreadCount records the item count at a depth and forgets deeper ones.
func (st *State) setThreadCount(depth, count int) {
	for len(st.ListThread) <= depth {
		st.ListThread = append(st.ListThread, 0)
	}
	st.ListThread[depth] = count
	st.ListThread = st.ListThread[:depth+1]
}

// CountListItem records one more item at depth.
func (st *State) CountListItem(depth int) {
	st.setThreadCount(depth, st.threadCount(depth)+1)
}

// StartNumber threads ordered list numbering. Parsing an <ol> whose start
// does not continue the items counted so far at its depth records a start
// number override; applying writes the start attribute when numbering does
// not start at 1.
var StartNumber = Handler[model.ListLevelFormat]{
	Parse: func(f *model.ListLevelFormat, el *html.Node, st *State, _ dom.Declarations) {
		if !dom.IsElement(el, "ol") {
			return
		}
		start := 1
		if v, err := strconv.Atoi(strings.TrimSpace(dom.Attr(el, "start"))); err == nil {
			start = v
		}
		if start != st.threadCount(st.ListDepth)+1 {
			f.StartNumberOverride = start
		}
		st.setThreadCount(st.ListDepth, start-1)
	},
	Apply: func(f *model.ListLevelFormat, el *html.Node, st *State) {
		if !dom.IsElement(el, "ol") {
			return
		}
		start := st.threadCount(st.ListDepth) + 1
		if f.StartNumberOverride > 0 {
			start = f.StartNumberOverride
		}
		st.setThreadCount(st.ListDepth, start-1)
		if start != 1 {
			dom.SetAttr(el, "start", strconv.Itoa(start))
		}
	},
}

// ApplyListMetadata writes the list-style-type implied by a level's
// metadata onto its list element, unless the level has an explicit style.
func ApplyListMetadata(level *model.ListLevel, el *html.Node, st *State) {
	if level.Format.ListStyleType != "" {
		return
	}
	meta, ok := ReadListMetadata(level.Dataset)
	if !ok {
		return
	}
	if style := MetadataListStyle(meta, level.ListType, st.ListDepth); style != "" {
		dom.SetStyle(el, "list-style-type", style)
	}
}
