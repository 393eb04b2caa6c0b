package mdsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates Markdown conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// PageBreakClass marks elements that push the following content onto a new
// page. It matches the class the staging container pads.
const PageBreakClass = "html2pdf__page-break"

// DefaultStyle is the Chroma style used for code blocks.
const DefaultStyle = "github"

// Converter converts Markdown to HTML fragments using goldmark (pure Go).
type Converter struct {
	md    goldmark.Markdown
	style string
}

// NewConverter creates a Converter with GFM extensions and syntax
// highlighting rendered with the named Chroma style. An unknown or empty
// style falls back to DefaultStyle.
func NewConverter(style string) *Converter {
	if style == "" || styles.Get(style) == styles.Fallback {
		style = DefaultStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// Raw HTML is escaped. Highlights and page breaks travel as
			// placeholders and are expanded after rendering.
		),
	)
	return &Converter{md: md, style: style}
}

// ToFragment converts Markdown content to an HTML fragment. The fragment
// starts with a <style> element carrying the Chroma classes, so it renders
// without any external stylesheet.
//
// Goldmark has no context support, so conversion runs in a goroutine and
// ctx only bounds the wait.
func (c *Converter) ToFragment(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.stylesheet(&buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		if err := c.md.Convert([]byte(Preprocess(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		done <- result{html: expandPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// stylesheet writes the Chroma CSS for c.style wrapped in a <style> element.
func (c *Converter) stylesheet(buf *bytes.Buffer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	buf.WriteString("<style>\n")
	if err := formatter.WriteCSS(buf, styles.Get(c.style)); err != nil {
		return err
	}
	buf.WriteString("</style>\n")
	return nil
}

// expandPlaceholders replaces the private-use markers left by Preprocess
// with their HTML. A page-break marker always sits alone in a paragraph.
func expandPlaceholders(s string) string {
	s = strings.ReplaceAll(s, "<p>"+pageBreakPlaceholder+"</p>", `<div class="`+PageBreakClass+`"></div>`)
	s = strings.ReplaceAll(s, pageBreakPlaceholder, "")
	return strings.NewReplacer(
		markStartPlaceholder, "<mark>",
		markEndPlaceholder, "</mark>",
	).Replace(s)
}
