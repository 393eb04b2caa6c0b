package mdsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for Load.
var (
	ErrUnsupportedInput = errors.New("unsupported input type")
	ErrReadInput        = errors.New("failed to read input")
	ErrParseInput       = errors.New("failed to parse input")
)

// Kind classifies an input file by extension.
type Kind int

const (
	KindUnknown Kind = iota
	KindMarkdown
	KindHTML
)

// KindOf returns the Kind for path's extension, case-insensitively.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return KindMarkdown
	case ".html", ".htm":
		return KindHTML
	default:
		return KindUnknown
	}
}

// Loader reads input files into HTML fragments.
type Loader struct {
	md *Converter
}

// NewLoader creates a Loader whose Markdown code blocks use the named
// Chroma style.
func NewLoader(style string) *Loader {
	return &Loader{md: NewConverter(style)}
}

// Load reads path and returns its content as an HTML fragment with
// relative paths resolved against the file's directory.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	kind := KindOf(path)
	if kind == KindUnknown {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided input file
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	markup := string(data)
	if kind == KindMarkdown {
		markup, err = l.md.ToFragment(ctx, markup)
		if err != nil {
			return "", err
		}
	}
	return l.fragment(markup, kind, filepath.Dir(path))
}

// fragment parses markup and renders the nodes that belong in the staging
// container. For HTML documents that means head stylesheets followed by
// the body children.
func (l *Loader) fragment(markup string, kind Kind, dir string) (string, error) {
	var nodes []*html.Node
	switch kind {
	case KindHTML:
		doc, err := html.Parse(strings.NewReader(markup))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrParseInput, err)
		}
		nodes = documentContent(doc)
	default:
		body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
		parsed, err := html.ParseFragment(strings.NewReader(markup), body)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrParseInput, err)
		}
		nodes = parsed
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := RewriteRelativePaths(n, dir); err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("%w: %v", ErrParseInput, err)
		}
	}
	return b.String(), nil
}

// documentContent returns the style and stylesheet link elements of the
// head, then every child of the body. Nodes are detached from doc.
func documentContent(doc *html.Node) []*html.Node {
	var head, body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head:
				if head == nil {
					head = n
				}
			case atom.Body:
				if body == nil {
					body = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	var nodes []*html.Node
	if head != nil {
		for _, c := range children(head) {
			if isStylesheet(c) {
				head.RemoveChild(c)
				nodes = append(nodes, c)
			}
		}
	}
	if body != nil {
		for _, c := range children(body) {
			body.RemoveChild(c)
			nodes = append(nodes, c)
		}
	}
	return nodes
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func isStylesheet(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Style:
		return true
	case atom.Link:
		for _, a := range n.Attr {
			if a.Key == "rel" && strings.EqualFold(strings.TrimSpace(a.Val), "stylesheet") {
				return true
			}
		}
	}
	return false
}
