package dom

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse parses an HTML document and returns its root-level nodes, usually a
// doctype directive followed by the `html` element.
func Parse(r io.Reader) ([]Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return FromHTML(doc), nil
}

// FromHTML converts an x/net/html tree. A document node yields its children,
// any other node yields itself.
func FromHTML(n *html.Node) []Node {
	if n == nil {
		return nil
	}
	if n.Type == html.DocumentNode {
		return convertChildren(n)
	}
	converted := convert(n)
	if converted == nil {
		return nil
	}
	return []Node{converted}
}

// FromSelection converts every node of a goquery selection, this lets a
// caller locate a landmark with a selector and stroll from there.
func FromSelection(sel *goquery.Selection) []Node {
	var out []Node
	for _, n := range sel.Nodes {
		out = append(out, FromHTML(n)...)
	}
	return out
}

func convertChildren(n *html.Node) []Node {
	var children []Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		converted := convert(child)
		if converted == nil {
			continue
		}
		children = append(children, converted)
	}
	return children
}

func convert(n *html.Node) Node {
	switch n.Type {
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			attrs[key] = a.Val
		}
		return &Element{
			Tag:      n.Data,
			Attrs:    attrs,
			Children: convertChildren(n),
		}
	case html.TextNode:
		return &Text{Data: n.Data}
	case html.CommentNode:
		return &Comment{Data: n.Data}
	case html.DoctypeNode:
		return &Directive{Data: n.Data}
	}
	return nil
}

// ToHTML converts `n` back into an x/net/html tree, attributes are sorted by
// key.
func ToHTML(n Node) *html.Node {
	switch n := n.(type) {
	case *Element:
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := &html.Node{Type: html.ElementNode, Data: n.Tag}
		for _, k := range keys {
			out.Attr = append(out.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
		}
		for _, child := range n.Children {
			if converted := ToHTML(child); converted != nil {
				out.AppendChild(converted)
			}
		}
		return out
	case *Text:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case *Comment:
		return &html.Node{Type: html.CommentNode, Data: n.Data}
	case *Directive:
		return &html.Node{Type: html.DoctypeNode, Data: n.Data}
	}
	return nil
}

// Render writes `nodes` as html.
func Render(w io.Writer, nodes ...Node) error {
	for _, n := range nodes {
		converted := ToHTML(n)
		if converted == nil {
			continue
		}
		err := html.Render(w, converted)
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(nodes ...Node) (string, error) {
	var sb strings.Builder
	err := Render(&sb, nodes...)
	return sb.String(), err
}
