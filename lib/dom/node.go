// Package dom is a read-only view over parsed HTML documents and a path
// navigator ("stroll") that descends it one positional step at a time.
package dom

import (
	"strings"
)

type Kind int

const (
	KindElement Kind = iota + 1
	KindText
	KindComment
	KindDirective
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindDirective:
		return "directive"
	}
	return "unknown"
}

// Node is one unit of a parsed document, it is implemented only by *Element,
// *Text, *Comment and *Directive.
type Node interface {
	Kind() Kind
	node()
}

// Element is a tag with attributes and an ordered list of children.
// Children include every text, comment and directive node between tags.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []Node
}

func (*Element) Kind() Kind { return KindElement }
func (*Element) node()      {}

// Attr returns the value of an attribute and whether it was present.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}

// ID returns the `id` attribute or "".
func (e *Element) ID() string {
	return e.Attrs["id"]
}

// Classes returns the tokens of the `class` attribute.
func (e *Element) Classes() []string {
	return strings.Fields(e.Attrs["class"])
}

// HasClass reports whether `token` is one of the element's class tokens.
// It does not match substrings of a token.
func (e *Element) HasClass(token string) bool {
	for _, c := range e.Classes() {
		if c == token {
			return true
		}
	}
	return false
}

type Text struct {
	Data string
}

func (*Text) Kind() Kind { return KindText }
func (*Text) node()      {}

type Comment struct {
	Data string
}

func (*Comment) Kind() Kind { return KindComment }
func (*Comment) node()      {}

// Directive is a doctype or any other `<!...>` declaration.
type Directive struct {
	Data string
}

func (*Directive) Kind() Kind { return KindDirective }
func (*Directive) node()      {}

// Describe renders a compact label for a node, `tag#id.class1.class2` for
// elements and `#text`, `#comment` or `#directive` for everything else.
func Describe(n Node) string {
	el, ok := n.(*Element)
	if !ok {
		if n == nil {
			return "#nil"
		}
		return "#" + n.Kind().String()
	}
	var label strings.Builder
	label.WriteString(el.Tag)
	if id := el.ID(); id != "" {
		label.WriteString("#")
		label.WriteString(id)
	}
	for _, c := range el.Classes() {
		label.WriteString(".")
		label.WriteString(c)
	}
	return label.String()
}

// TextContent concatenates the data of every text node under `n`.
func TextContent(n Node) string {
	var buffer strings.Builder
	textRecursive(n, &buffer)
	return buffer.String()
}

func textRecursive(n Node, buffer *strings.Builder) {
	switch n := n.(type) {
	case *Text:
		buffer.WriteString(n.Data)
	case *Element:
		for _, child := range n.Children {
			textRecursive(child, buffer)
		}
	}
}
