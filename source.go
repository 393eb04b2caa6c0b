package html2pdf

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-html2pdf/internal/staging"
)

// Source is the content to convert: either HTML markup or a parsed node.
// The zero Source is empty and converts to a single blank page.
type Source struct {
	markup string
	node   *html.Node
}

// FromHTML returns a Source for an HTML fragment. The markup is parsed as
// the content of a <div>.
func FromHTML(markup string) Source {
	return Source{markup: markup}
}

// Attributes restoring the scroll position of a scrollable element in the
// staged copy. Parsed markup has no live scroll state, so callers that want
// an element rendered scrolled set these to the offsets in CSS pixels.
const (
	ScrollTopAttr  = staging.ScrollTopAttr
	ScrollLeftAttr = staging.ScrollLeftAttr
)

// FromNode returns a Source for an already parsed element. The node is
// copied when the job runs and never modified.
//
// Scroll offsets are taken from the ScrollTopAttr ("data-html2pdf-scroll-top")
// and ScrollLeftAttr ("data-html2pdf-scroll-left") attributes of any element
// in the tree. FromHTML markup honors the same attributes.
func FromNode(n *html.Node) Source {
	return Source{node: n}
}

// IsZero reports whether s holds no content.
func (s Source) IsZero() bool {
	return s.node == nil && s.markup == ""
}

// clone returns a private copy of the source tree ready for staging.
func (s Source) clone(opts staging.CloneOptions) (*html.Node, error) {
	if s.node != nil {
		return staging.CloneSource(s.node, opts), nil
	}
	root, err := staging.ParseFragment(s.markup)
	if err != nil {
		return nil, err
	}
	return staging.CloneSource(root, opts), nil
}
