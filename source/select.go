// Package source reads selection controls out of an HTML document and hands
// their structure to the option package.
package source

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/agiangrant/esthetic/option"
)

var (
	// ErrNoSelect is returned when a host element holds no <select>.
	ErrNoSelect = errors.New("source: no select element")

	// ErrNotSelect is returned when a node handed to Nodes is not a <select>.
	ErrNotSelect = errors.New("source: not a select element")
)

// Parse reads a whole HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("source: parse document: %w", err)
	}
	return doc, nil
}

// Nodes converts the direct children of a <select> into option nodes.
//
// Text is the option's text content with whitespace collapsed, and Value falls
// back to that text when the value attribute is absent. When no option carries
// the selected attribute and the control is single-select, the first enabled
// option is reported as selected, matching what the control itself displays.
// Nested optgroups are passed through as nested groups so option.Parse can
// reject them.
func Nodes(sel *html.Node) ([]option.Node, error) {
	if sel == nil || sel.Type != html.ElementNode || sel.DataAtom != atom.Select {
		return nil, ErrNotSelect
	}

	var nodes []option.Node
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if n := convert(c); n != nil {
			nodes = append(nodes, n)
		}
	}

	if !HasAttr(sel, "multiple") {
		defaultSelection(nodes)
	}
	return nodes, nil
}

func convert(n *html.Node) option.Node {
	if n.Type != html.ElementNode {
		return nil
	}
	switch n.DataAtom {
	case atom.Option:
		return optionNode(n)
	case atom.Optgroup:
		label, _ := Attr(n, "label")
		g := &option.GroupNode{Label: label}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				g.Children = append(g.Children, child)
			}
		}
		return g
	}
	return nil
}

func optionNode(n *html.Node) *option.OptionNode {
	text := collapse(textContent(n))
	value, ok := Attr(n, "value")
	if !ok {
		value = text
	}
	return &option.OptionNode{
		Text:     text,
		Value:    value,
		Selected: HasAttr(n, "selected"),
		Disabled: HasAttr(n, "disabled"),
	}
}

func defaultSelection(nodes []option.Node) {
	var first *option.OptionNode
	var visit func(option.Node) bool
	visit = func(n option.Node) bool {
		switch n := n.(type) {
		case *option.OptionNode:
			if n.Selected {
				return true
			}
			if first == nil && !n.Disabled {
				first = n
			}
		case *option.GroupNode:
			for _, c := range n.Children {
				if visit(c) {
					return true
				}
			}
		}
		return false
	}

	for _, n := range nodes {
		if visit(n) {
			return
		}
	}
	if first != nil {
		first.Selected = true
	}
}

// Name returns the control's name attribute.
func Name(sel *html.Node) string {
	name, _ := Attr(sel, "name")
	return name
}

// Attr returns the value of the attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries the attribute key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// HasClass reports whether the class attribute of n contains token.
func HasClass(n *html.Node, token string) bool {
	class, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(class) {
		if f == token {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
