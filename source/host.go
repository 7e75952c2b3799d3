package source

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Hosts returns, in document order, every element carrying the class token
// that owns a <select>. Hosts may nest; each one owns only the selects that
// are not inside a nested host.
func Hosts(doc *html.Node, class string) []*html.Node {
	var hosts []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && HasClass(n, class) && OwnSelect(n, class) != nil {
			hosts = append(hosts, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hosts
}

// OwnSelect returns the first <select> below host that does not sit inside
// another element carrying class, or nil.
func OwnSelect(host *html.Node, class string) *html.Node {
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Select {
			return c
		}
		if HasClass(c, class) {
			continue
		}
		if found := OwnSelect(c, class); found != nil {
			return found
		}
	}
	return nil
}

// FindSelect returns the first <select> below n, or nil.
func FindSelect(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Select {
			return c
		}
		if found := FindSelect(c); found != nil {
			return found
		}
	}
	return nil
}

// Detach removes the <select> owned by host and returns it.
func Detach(host *html.Node, class string) (*html.Node, error) {
	sel := OwnSelect(host, class)
	if sel == nil {
		return nil, ErrNoSelect
	}
	sel.Parent.RemoveChild(sel)
	return sel, nil
}

// EnclosingHost returns the nearest ancestor of n carrying class, or nil.
func EnclosingHost(n *html.Node, class string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && HasClass(p, class) {
			return p
		}
	}
	return nil
}
