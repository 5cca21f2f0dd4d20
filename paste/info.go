package paste

import (
	"strings"

	"github.com/cozy/contentmodel-go/dom"
	"golang.org/x/net/html"
)

// htmlInfo is what the clipboard HTML says about its origin, read before
// the content is sanitized.
type htmlInfo struct {
	attributes map[string]string
	// styleText joins the content of the <style> elements.
	styleText string
	body      *html.Node
}

// retrieveHTMLInfo parses the raw clipboard HTML and collects the
// attributes of its <html> element, its <meta> name/content pairs and its
// style sheets.
func retrieveHTMLInfo(raw string) (htmlInfo, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return htmlInfo{}, err
	}
	info := htmlInfo{attributes: map[string]string{}}
	var styles []string
	dom.Walk(doc, func(n *html.Node) bool {
		switch dom.Tag(n) {
		case "html":
			for _, attr := range n.Attr {
				key := attr.Key
				if attr.Namespace != "" {
					key = attr.Namespace + ":" + key
				}
				info.attributes[key] = attr.Val
			}
		case "meta":
			if name := dom.Attr(n, "name"); name != "" {
				info.attributes[name] = dom.Attr(n, "content")
			}
		case "style":
			styles = append(styles, dom.TextContent(n))
		case "body":
			info.body = n
		}
		return true
	})
	info.styleText = strings.Join(styles, "\n")
	if info.body == nil {
		info.body = doc
	}
	return info, nil
}
