// Package render builds page fragments as golang.org/x/net/html node trees.
package render

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr builds an attribute
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// Element creates an element node with the given attributes
func Element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

// Text creates a text node. Escaping happens on render.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append adds children to parent, skipping nil nodes
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

// El is Element followed by Append
func El(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	return Append(Element(a, attrs...), children...)
}

// TextEl creates an element holding a single text child
func TextEl(a atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	return Append(Element(a, attrs...), Text(text))
}

// Clear detaches every child of n
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// Write serializes n to w
func Write(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// String serializes n, returning an empty string on failure
func String(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// TextContent returns the concatenated text below n
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// AttrOf returns the value of key on n
func AttrOf(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// FindAll returns every element below n, n included, for which match is true
func FindAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByClass matches elements carrying class name c
func ByClass(c string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := AttrOf(n, "class")
		for _, f := range strings.Fields(v) {
			if f == c {
				return true
			}
		}
		return false
	}
}

// ByID matches the element with the given id
func ByID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := AttrOf(n, "id")
		return ok && v == id
	}
}
