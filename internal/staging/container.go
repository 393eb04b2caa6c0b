package staging

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-html2pdf/internal/geometry"
)

// documentShell wraps the overlay in a minimal HTML5 document.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>html2pdf</title>
</head>
<body style="margin:0;padding:0">
%s
</body>
</html>`

// Container is a staged source attached to a live page.
type Container struct {
	page Page

	// WidthPx is the container width in CSS pixels.
	WidthPx float64
	// PageBreaks is the number of page-break markers that were padded.
	PageBreaks int
}

// Build attaches src to page inside a container as wide as the inner page
// and pads every page-break marker up to the next page boundary.
//
// The caller owns the returned container and must Detach it once the page
// has been rasterized. When Build fails after the document was attached, the
// container is detached before returning.
func Build(ctx context.Context, page Page, src *html.Node, inner geometry.Inner, k float64, opts ...BuildOption) (*Container, error) {
	doc, err := Markup(src, inner, k, opts...)
	if err != nil {
		return nil, err
	}
	if err := page.SetContent(ctx, doc); err != nil {
		return nil, fmt.Errorf("attaching container: %w", err)
	}

	c := &Container{page: page, WidthPx: inner.WidthPx(k)}

	if err := page.Eval(ctx, scriptRestoreScroll, nil); err != nil {
		_ = c.Detach(ctx)
		return nil, fmt.Errorf("restoring scroll offsets: %w", err)
	}

	n, err := c.applyPageBreaks(ctx, inner.PageBoundaryPx(k))
	if err != nil {
		_ = c.Detach(ctx)
		return nil, err
	}
	c.PageBreaks = n
	return c, nil
}

// applyPageBreaks measures and pads markers one at a time, so that each
// measurement sees the padding added above it.
func (c *Container) applyPageBreaks(ctx context.Context, boundaryPx float64) (int, error) {
	var count int
	if err := c.page.Eval(ctx, scriptCountPageBreaks, &count); err != nil {
		return 0, fmt.Errorf("counting page breaks: %w", err)
	}

	for i := 0; i < count; i++ {
		var offset float64
		if err := c.page.Eval(ctx, scriptPreparePageBreak, &offset, i); err != nil {
			return 0, fmt.Errorf("measuring page break %d: %w", i, err)
		}
		padding := BreakPadding(offset, boundaryPx)
		if err := c.page.Eval(ctx, scriptSetPageBreakHeight, nil, i, padding); err != nil {
			return 0, fmt.Errorf("padding page break %d: %w", i, err)
		}
	}
	return count, nil
}

// Bounds returns the container rectangle in CSS pixels, in document
// coordinates.
func (c *Container) Bounds(ctx context.Context) (geometry.Rect, error) {
	var r geometry.Rect
	if err := c.page.Eval(ctx, scriptContainerBounds, &r); err != nil {
		return geometry.Rect{}, fmt.Errorf("measuring container: %w", err)
	}
	return r, nil
}

// Detach removes the overlay from the live document.
func (c *Container) Detach(ctx context.Context) error {
	if err := c.page.Eval(ctx, scriptDetach, nil); err != nil {
		return fmt.Errorf("detaching container: %w", err)
	}
	return nil
}

// BreakPadding returns the height that moves content placed after a marker
// at offsetPx to the next page boundary.
func BreakPadding(offsetPx, boundaryPx float64) float64 {
	return boundaryPx - math.Mod(offsetPx, boundaryPx)
}

// BuildOption customizes the staged document.
type BuildOption func(*buildOptions)

type buildOptions struct {
	background string
}

// WithBackground sets the CSS background of the container. The default is
// white.
func WithBackground(css string) BuildOption {
	return func(o *buildOptions) {
		if css != "" {
			o.background = css
		}
	}
}

// Markup renders the staged document: an overlay holding a container of the
// inner page width, which holds src. A nil src yields an empty container.
func Markup(src *html.Node, inner geometry.Inner, k float64, opts ...BuildOption) (string, error) {
	o := buildOptions{background: "white"}
	for _, opt := range opts {
		opt(&o)
	}

	container := newElement(atom.Div, []html.Attribute{
		{Key: "class", Val: ContainerClass},
		{Key: "style", Val: containerStyle(inner.WidthPx(k), o.background)},
	})
	if src != nil {
		container.AppendChild(src)
	}

	overlay := newElement(atom.Div, []html.Attribute{
		{Key: "class", Val: OverlayClass},
		{Key: "style", Val: overlayStyle},
	})
	overlay.AppendChild(container)

	var buf bytes.Buffer
	if err := html.Render(&buf, overlay); err != nil {
		return "", fmt.Errorf("rendering container: %w", err)
	}
	return fmt.Sprintf(documentShell, buf.String()), nil
}

// The overlay lives in a tab of its own, so it stays opaque: the engine
// captures composited pixels, not a clone of the tree.
const overlayStyle = "position:absolute;left:0;top:0;z-index:1000;overflow:visible;background-color:white"

func containerStyle(widthPx float64, background string) string {
	return "position:absolute;left:0;top:0;width:" +
		strconv.FormatFloat(widthPx, 'f', -1, 64) +
		"px;height:auto;margin:0;background:" + background
}
