// Package dom holds the helpers used to read and patch a golang.org/x/net/html
// tree the way a browser DOM would be used: attributes, inline styles,
// dataset, class lists, detaching and re-inserting nodes.
package dom

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element node with a lower case tag name.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Tag returns the lower case tag name of an element, or "" for other nodes.
func Tag(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// IsElement reports whether n is an element with one of the given tags. With
// no tags, any element matches.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	tag := Tag(n)
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Attr returns the value of an attribute, "" when absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether an attribute is present, even if empty.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr removes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Classes returns the class list of an element.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// HasClass reports whether the element's class list contains class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends a class to the class list if missing.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(Attr(n, "class")+" "+class))
}

// Dataset returns the data-* attributes of an element keyed by their
// camelCase name, as HTMLElement.dataset does.
func Dataset(n *html.Node) map[string]string {
	var result map[string]string
	for _, a := range n.Attr {
		if a.Namespace != "" || !strings.HasPrefix(strings.ToLower(a.Key), "data-") {
			continue
		}
		if result == nil {
			result = map[string]string{}
		}
		result[DatasetKey(a.Key[len("data-"):])] = a.Val
	}
	return result
}

// SetDataset writes a camelCase dataset entry as a data-* attribute.
func SetDataset(n *html.Node, key, value string) {
	SetAttr(n, "data-"+DatasetAttr(key), value)
}

// DatasetKey converts the kebab-case tail of a data-* attribute to camelCase.
func DatasetKey(kebab string) string {
	var b strings.Builder
	upper := false
	for _, r := range strings.ToLower(kebab) {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DatasetAttr converts a camelCase dataset key to the kebab-case tail of its
// data-* attribute.
func DatasetAttr(camel string) string {
	var b strings.Builder
	for _, r := range camel {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore moves child under parent, before ref. A nil ref appends.
func InsertBefore(parent, child, ref *html.Node) {
	if child == ref {
		return
	}
	Detach(child)
	if ref == nil || ref.Parent != parent {
		parent.AppendChild(child)
		return
	}
	parent.InsertBefore(child, ref)
}

// WrapChildren moves all children of n into a new element of the given tag
// and appends that element to n.
func WrapChildren(n *html.Node, tag string) *html.Node {
	wrapper := NewElement(tag)
	for n.FirstChild != nil {
		child := n.FirstChild
		n.RemoveChild(child)
		wrapper.AppendChild(child)
	}
	n.AppendChild(wrapper)
	return wrapper
}

// Wrap puts n inside a new element of the given tag, at n's position.
func Wrap(n *html.Node, tag string) *html.Node {
	wrapper := NewElement(tag)
	if parent := n.Parent; parent != nil {
		parent.InsertBefore(wrapper, n)
		parent.RemoveChild(n)
	}
	wrapper.AppendChild(n)
	return wrapper
}

// Unwrap replaces n with its children.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for n.FirstChild != nil {
		child := n.FirstChild
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
	}
	parent.RemoveChild(n)
}

// ShallowClone copies a node without its children or tree links.
func ShallowClone(n *html.Node) *html.Node {
	return &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
}

// ChildIndex returns the index of n among its parent's children.
func ChildIndex(n *html.Node) int {
	i := 0
	for c := n.Parent.FirstChild; c != nil && c != n; c = c.NextSibling {
		i++
	}
	return i
}

// ChildAt returns the i-th child of parent, or nil.
func ChildAt(parent *html.Node, i int) *html.Node {
	c := parent.FirstChild
	for ; c != nil && i > 0; c = c.NextSibling {
		i--
	}
	return c
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// Children returns a snapshot of the children of n.
func Children(n *html.Node) []*html.Node {
	var result []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result = append(result, c)
	}
	return result
}

// Contains reports whether other is n or one of its descendants.
func Contains(n, other *html.Node) bool {
	for ; other != nil; other = other.Parent {
		if other == n {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// FindFirst returns the first descendant of n, in document order, matching
// the predicate.
func FindFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c != n && pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// TextContent concatenates the text of all descendant text nodes.
func TextContent(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders n itself.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// ParseBody parses an HTML document or fragment and returns its body
// element.
func ParseBody(source string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	if body := FindFirst(doc, func(n *html.Node) bool { return IsElement(n, "body") }); body != nil {
		return body, nil
	}
	return doc, nil
}

// NewFragment returns an empty detached container used as a document
// fragment.
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}
