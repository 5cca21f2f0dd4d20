package dom

import "golang.org/x/net/html"

// Position is a DOM boundary point: a text node and a character offset, or
// an element and a child index.
type Position struct {
	Node   *html.Node
	Offset int
}

// Range is a pair of boundary points, start before end.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range between two boundary points.
func NewRange(startNode *html.Node, startOffset int, endNode *html.Node, endOffset int) *Range {
	return &Range{
		Start: Position{Node: startNode, Offset: startOffset},
		End:   Position{Node: endNode, Offset: endOffset},
	}
}

// Collapse creates a collapsed range at one point.
func Collapse(node *html.Node, offset int) *Range {
	return NewRange(node, offset, node, offset)
}

// Collapsed reports whether start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.Start == r.End
}

// Normalize moves a position that points at a text node from its parent
// (element + index) to the start of that text node. Other positions are
// returned unchanged.
func (p Position) Normalize() Position {
	if p.Node == nil || p.Node.Type == html.TextNode {
		return p
	}
	if child := ChildAt(p.Node, p.Offset); child != nil && child.Type == html.TextNode {
		return Position{Node: child, Offset: 0}
	}
	return p
}
