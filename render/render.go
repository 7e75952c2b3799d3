// Package render turns an option.List into the markup of a dropdown widget.
//
// Markup is assembled as golang.org/x/net/html node trees and serialized with
// html.Render, so every text and attribute value is escaped by the serializer.
package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/agiangrant/esthetic/option"
)

// Tokens are the identifying attribute values written into the markup.
type Tokens struct {
	Trigger  string
	Item     string
	Selected string
	List     string
	Input    string

	// Hidden is the attribute that marks a closed list.
	Hidden string
}

// DefaultTokens mirrors the widget's default configuration.
func DefaultTokens() Tokens {
	return Tokens{
		Trigger:  "esthetic-trigger",
		Item:     "esthetic-item",
		Selected: "esthetic-item-selected",
		List:     "esthetic-list",
		Input:    "esthetic-input",
		Hidden:   "hidden",
	}
}

// ToHTML serializes the list as a nested <ul>, closed.
// The list is only read; two calls on an unmodified list return identical output.
func ToHTML(l *option.List, t Tokens) string {
	return String(List(l, t, true))
}

// List builds the <ul> node tree for l.
//
// Items are walked in order. An item whose GroupIndex differs from the open
// group closes that wrapper and, if grouped, opens a new <li><span>label</span><ul>
// wrapper. Boundaries follow GroupIndex only, so two distinct groups sharing a
// label stay separate.
func List(l *option.List, t Tokens, hidden bool) *html.Node {
	root := element(atom.Ul)
	if hidden {
		SetHidden(root, t.Hidden, true)
	}

	var (
		open    *html.Node
		openIdx = option.Ungrouped
	)
	l.Each(func(_ int, it option.Item) {
		if it.GroupIndex == option.Ungrouped {
			open, openIdx = nil, option.Ungrouped
			root.AppendChild(item(it, t))
			return
		}
		if open == nil || it.GroupIndex != openIdx {
			wrapper := element(atom.Li)
			label := element(atom.Span)
			label.AppendChild(text(it.Label))
			wrapper.AppendChild(label)
			open = element(atom.Ul)
			wrapper.AppendChild(open)
			root.AppendChild(wrapper)
			openIdx = it.GroupIndex
		}
		open.AppendChild(item(it, t))
	})

	return root
}

func item(it option.Item, t Tokens) *html.Node {
	class := t.Item
	if it.Selected {
		class += " " + t.Selected
	}
	li := element(atom.Li, html.Attribute{Key: "class", Val: class})

	attrs := []html.Attribute{{Key: "value", Val: it.Value}}
	if it.Disabled {
		attrs = append(attrs, html.Attribute{Key: "disabled"})
	}
	btn := element(atom.Button, attrs...)
	btn.AppendChild(text(it.Text))
	li.AppendChild(btn)
	return li
}

// Trigger builds the button that shows the current selection.
func Trigger(t Tokens, label string) *html.Node {
	btn := element(atom.Button, html.Attribute{Key: "class", Val: t.Trigger})
	span := element(atom.Span)
	span.AppendChild(text(label))
	btn.AppendChild(span)
	return btn
}

// Container builds the empty element the list is rendered into.
func Container(t Tokens) *html.Node {
	return element(atom.Div, html.Attribute{Key: "class", Val: t.List})
}

// Carrier builds the hidden input that submits the control's value.
func Carrier(t Tokens, name, value string) *html.Node {
	return element(atom.Input,
		html.Attribute{Key: "type", Val: "hidden"},
		html.Attribute{Key: "class", Val: t.Input},
		html.Attribute{Key: "name", Val: name},
		html.Attribute{Key: "value", Val: value},
	)
}

// Fragment builds the trigger, list container and carrier, in that order.
func Fragment(t Tokens, label, name, value string) []*html.Node {
	return []*html.Node{
		Trigger(t, label),
		Container(t),
		Carrier(t, name, value),
	}
}

// SetHidden adds or removes the hidden attribute key on n.
func SetHidden(n *html.Node, key string, hidden bool) {
	for i, a := range n.Attr {
		if a.Key == key {
			if !hidden {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			}
			return
		}
	}
	if hidden {
		n.Attr = append(n.Attr, html.Attribute{Key: key})
	}
}

// SetAttr replaces or appends the attribute key on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// String serializes nodes back to back.
func String(nodes ...*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		// strings.Builder never fails a write.
		_ = html.Render(&b, n)
	}
	return b.String()
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
