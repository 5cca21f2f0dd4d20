package model

import "golang.org/x/net/html"

// ElementCache associates model nodes with the DOM element last rendered for
// them. It is a side table keyed by node identity: the model never owns the
// DOM node, and dropping an entry never touches the DOM.
//
// An entry means "unchanged since it was rendered". Any write to a node must
// be preceded by Invalidate so the reconciler renders it again. All methods
// accept a nil receiver, which behaves as an empty cache.
type ElementCache struct {
	elements map[interface{}]*html.Node
}

// NewElementCache creates an empty cache.
func NewElementCache() *ElementCache {
	return &ElementCache{elements: map[interface{}]*html.Node{}}
}

// Get returns the cached element of a node, or nil.
func (c *ElementCache) Get(node interface{}) *html.Node {
	if c == nil || node == nil {
		return nil
	}
	return c.elements[node]
}

// Set records the element rendered for a node.
func (c *ElementCache) Set(node interface{}, element *html.Node) {
	if c == nil || node == nil || element == nil {
		return
	}
	c.elements[node] = element
}

// Invalidate marks a node as mutated.
func (c *ElementCache) Invalidate(node interface{}) {
	if c == nil || node == nil {
		return
	}
	delete(c.elements, node)
}

// Len returns the number of cached nodes.
func (c *ElementCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.elements)
}

// Clear drops every entry.
func (c *ElementCache) Clear() {
	if c == nil {
		return
	}
	c.elements = map[interface{}]*html.Node{}
}
