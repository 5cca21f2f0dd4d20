package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Class names marking a host-controlled entity wrapper.
const (
	EntityClass         = "_Entity"
	entityTypePrefix    = "_EType_"
	entityIDPrefix      = "_EId_"
	entityReadonlyClass = "_EReadonly_1"
)

// EntityInfo describes an entity wrapper element.
type EntityInfo struct {
	Type       string
	ID         string
	IsReadonly bool
}

// ParseEntity reads entity information from a wrapper's class list. ok is
// false for elements that are not entity wrappers.
func ParseEntity(n *html.Node) (info EntityInfo, ok bool) {
	if !IsElement(n) {
		return info, false
	}
	for _, class := range Classes(n) {
		switch {
		case class == EntityClass:
			ok = true
		case strings.HasPrefix(class, entityTypePrefix):
			info.Type = class[len(entityTypePrefix):]
		case strings.HasPrefix(class, entityIDPrefix):
			info.ID = class[len(entityIDPrefix):]
		case class == entityReadonlyClass:
			info.IsReadonly = true
		}
	}
	return info, ok && info.Type != ""
}

// MarkEntity writes entity classes onto a wrapper, replacing any previous
// entity classes.
func MarkEntity(n *html.Node, info EntityInfo) {
	var classes []string
	for _, class := range Classes(n) {
		if class == EntityClass || class == entityReadonlyClass ||
			strings.HasPrefix(class, entityTypePrefix) || strings.HasPrefix(class, entityIDPrefix) {
			continue
		}
		classes = append(classes, class)
	}
	classes = append(classes, EntityClass, entityTypePrefix+info.Type)
	if info.ID != "" {
		classes = append(classes, entityIDPrefix+info.ID)
	}
	if info.IsReadonly {
		classes = append(classes, entityReadonlyClass)
		SetAttr(n, "contenteditable", "false")
	}
	SetAttr(n, "class", strings.Join(classes, " "))
}
