package staging

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CloneOptions controls how a source tree is copied into the container.
type CloneOptions struct {
	// JavaScriptEnabled keeps <script> elements. They are dropped otherwise.
	JavaScriptEnabled bool
}

// clonePolicy describes how one element category is copied.
type clonePolicy struct {
	// skip reports whether the element is left out of the clone entirely.
	skip func(opts CloneOptions) bool
	// preserve carries state that the serialized markup would otherwise lose.
	preserve func(src, dst *html.Node)
}

// clonePolicies is keyed by element category. Elements without an entry are
// copied verbatim.
var clonePolicies = map[atom.Atom]clonePolicy{
	atom.Script: {
		skip: func(opts CloneOptions) bool { return !opts.JavaScriptEnabled },
	},
	atom.Textarea: {
		preserve: preserveTextareaValue,
	},
	atom.Select: {
		preserve: preserveSelectValue,
	},
}

// ParseFragment parses markup as the children of a new <div>, the way a
// string source is turned into an element.
func ParseFragment(markup string) (*html.Node, error) {
	root := newElement(atom.Div, nil)
	nodes, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		return nil, fmt.Errorf("parsing source markup: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// CloneSource deep-copies n. The source tree is never modified.
func CloneSource(n *html.Node, opts CloneOptions) *html.Node {
	if n == nil {
		return nil
	}

	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			if p, ok := clonePolicies[child.DataAtom]; ok && p.skip != nil && p.skip(opts) {
				continue
			}
		}
		clone.AppendChild(CloneSource(child, opts))
	}

	if n.Type == html.ElementNode {
		if p, ok := clonePolicies[n.DataAtom]; ok && p.preserve != nil {
			p.preserve(n, clone)
		}
	}
	return clone
}

// preserveTextareaValue renders a value attribute as the text content, which
// is what a textarea displays.
func preserveTextareaValue(src, dst *html.Node) {
	value, ok := attr(src, "value")
	if !ok {
		return
	}
	for c := dst.FirstChild; c != nil; {
		next := c.NextSibling
		dst.RemoveChild(c)
		c = next
	}
	dst.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	removeAttr(dst, "value")
}

// preserveSelectValue marks the option matching the select's value attribute
// as selected and clears any other selection.
func preserveSelectValue(src, dst *html.Node) {
	value, ok := attr(src, "value")
	if !ok {
		return
	}
	walk(dst, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Option {
			return
		}
		removeAttr(n, "selected")
		if optionValue(n) == value {
			n.Attr = append(n.Attr, html.Attribute{Key: "selected", Val: "selected"})
		}
	})
	removeAttr(dst, "value")
}

func optionValue(n *html.Node) string {
	if v, ok := attr(n, "value"); ok {
		return v
	}
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return strings.TrimSpace(sb.String())
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func newElement(a atom.Atom, attrs []html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}
