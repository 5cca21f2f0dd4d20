package paste

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/cozy/contentmodel-go/dom"
	"golang.org/x/net/html"
)

// KnownPasteSource identifies the application the pasted content comes
// from.
type KnownPasteSource string

// The known sources.
const (
	SourceWordDesktop         KnownPasteSource = "wordDesktop"
	SourceExcelDesktop        KnownPasteSource = "excelDesktop"
	SourceExcelOnline         KnownPasteSource = "excelOnline"
	SourceExcelNonNativeEvent KnownPasteSource = "excelNonNativeEvent"
	SourcePowerPointDesktop   KnownPasteSource = "powerPointDesktop"
	SourceWacComponents       KnownPasteSource = "wacComponents"
	SourceGoogleSheets        KnownPasteSource = "googleSheets"
	SourceOneNoteDesktop      KnownPasteSource = "oneNoteDesktop"
	SourceSingleImage         KnownPasteSource = "singleImage"
	SourceDefault             KnownPasteSource = "default"
)

// Environment describes the host the paste happens in.
type Environment struct {
	IsMac     bool
	IsAndroid bool
	IsSafari  bool
}

// GetSourceInput is what the classifier looks at.
type GetSourceInput struct {
	// HTMLAttributes holds the attributes of the <html> element and the
	// name/content pairs of <meta> elements, such as ProgId.
	HTMLAttributes map[string]string

	// Fragment is the pasted content.
	Fragment *html.Node

	// ClipboardItemTypes are the MIME types offered by the clipboard.
	ClipboardItemTypes []string

	// HTMLFirstLevelChildTags are the upper case tags of the top level
	// elements of the fragment.
	HTMLFirstLevelChildTags []string

	RawHTML                  string
	ShouldConvertSingleImage bool
	Environment              Environment
}

const (
	wordAttributeName   = "xmlns:w"
	wordAttributeValue  = "urn:schemas-microsoft-com:office:word"
	excelAttributeName  = "xmlns:x"
	excelAttributeValue = "urn:schemas-microsoft-com:office:excel"
	progIDName          = "ProgId"
	googleSheetsTag     = "google-sheets-html-origin"
)

var wacSelector = cascadia.MustCompile(strings.Join([]string{
	`ul[class^="BulletListStyle"]>.OutlineElement`,
	`ol[class^="NumberListStyle"]>.OutlineElement`,
	`span.WACImageContainer`,
	`span.WACImageBorder`,
}, ","))

var googleSheetsSelector = cascadia.MustCompile(googleSheetsTag)

type sourceRule struct {
	source KnownPasteSource
	match  func(in GetSourceInput) bool
}

// sourceRules are evaluated in order and the first match wins. The order is
// the priority between sources matching the same content.
var sourceRules = []sourceRule{
	{SourceWordDesktop, func(in GetSourceInput) bool {
		return in.HTMLAttributes[wordAttributeName] == wordAttributeValue ||
			in.HTMLAttributes[progIDName] == "Word.Document"
	}},
	{SourceExcelDesktop, func(in GetSourceInput) bool {
		return in.HTMLAttributes[excelAttributeName] == excelAttributeValue
	}},
	{SourceExcelOnline, func(in GetSourceInput) bool {
		return in.HTMLAttributes[progIDName] == "Excel.Sheet"
	}},
	{SourcePowerPointDesktop, func(in GetSourceInput) bool {
		return in.HTMLAttributes[progIDName] == "PowerPoint.Slide"
	}},
	{SourceWacComponents, func(in GetSourceInput) bool {
		return in.Fragment != nil && wacSelector.MatchFirst(in.Fragment) != nil
	}},
	{SourceGoogleSheets, func(in GetSourceInput) bool {
		return in.Fragment != nil && googleSheetsSelector.MatchFirst(in.Fragment) != nil
	}},
	{SourceSingleImage, func(in GetSourceInput) bool {
		return in.ShouldConvertSingleImage &&
			len(in.HTMLFirstLevelChildTags) == 1 && in.HTMLFirstLevelChildTags[0] == "IMG"
	}},
	{SourceExcelNonNativeEvent, func(in GetSourceInput) bool {
		types := in.ClipboardItemTypes
		return len(types) == 2 && contains(types, "text/plain") && contains(types, "text/html") &&
			isBareTableRows(in.RawHTML)
	}},
	{SourceOneNoteDesktop, func(in GetSourceInput) bool {
		return in.HTMLAttributes[progIDName] == "OneNote.File"
	}},
}

// SourcePriority lists the sources in the order they are tried.
func SourcePriority() []KnownPasteSource {
	result := make([]KnownPasteSource, len(sourceRules))
	for i, rule := range sourceRules {
		result[i] = rule.source
	}
	return result
}

// GetDocumentSource classifies pasted content. Content matching no known
// source is SourceDefault.
func GetDocumentSource(in GetSourceInput) KnownPasteSource {
	for _, rule := range sourceRules {
		if rule.match(in) {
			return rule.source
		}
	}
	return SourceDefault
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// isBareTableRows reports whether an HTML fragment holds table rows without
// their table, as copied from Excel by some browsers.
func isBareTableRows(raw string) bool {
	return rowTag.MatchString(raw) && !tableTag.MatchString(raw)
}

var (
	rowTag   = regexp.MustCompile(`(?i)<tr[\s/>]`)
	tableTag = regexp.MustCompile(`(?i)<table[\s/>]`)
)

// wrapTableRows puts bare table rows back into a table so that they survive
// HTML parsing.
func wrapTableRows(raw string) string {
	loc := rowTag.FindStringIndex(raw)
	if loc == nil {
		return raw
	}
	start := loc[0]
	end := strings.LastIndex(strings.ToLower(raw), "</tr>")
	if end < start {
		end = len(raw)
	} else {
		end += len("</tr>")
	}
	return raw[:start] + "<table>" + raw[start:end] + "</table>" + raw[end:]
}

// firstLevelChildTags returns the upper case tags of the element children
// of a node.
func firstLevelChildTags(n *html.Node) []string {
	var tags []string
	for _, child := range dom.Children(n) {
		if child.Type == html.ElementNode {
			tags = append(tags, strings.ToUpper(dom.Tag(child)))
		}
	}
	return tags
}
