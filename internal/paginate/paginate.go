// Package paginate slices a raster into page-sized strips and lays them out
// on consecutive PDF pages, carrying link regions onto the page they start on.
package paginate

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/alnah/go-html2pdf/internal/geometry"
	"github.com/alnah/go-html2pdf/internal/imagecodec"
	"github.com/alnah/go-html2pdf/internal/raster"
)

// ErrPaginationFailure is returned when the raster cannot be split into pages.
var ErrPaginationFailure = errors.New("pagination failed")

// Writer receives the pages.
type Writer interface {
	AddPage()
	DrawImage(r io.Reader, imageType string, x, y, w, h float64) error
	AddLink(r geometry.Rect, url string) error
}

// Layout is the printable area of a page and where it sits.
type Layout struct {
	Inner  geometry.Inner
	Margin geometry.Margin
	// MaxWidthPx downsamples wider rasters before slicing. Zero keeps the
	// raster as captured.
	MaxWidthPx int
}

// Stats summarizes a pagination run.
type Stats struct {
	Pages      int
	StripRows  int // rows per full page strip
	Links      int // links placed
	LinksTotal int // links offered
}

// Run writes one page per strip of the raster to w. On error the writer
// holds a partial document and must be discarded.
func Run(r *raster.Raster, links []raster.LinkRegion, layout Layout, codec imagecodec.Codec, w Writer) (Stats, error) {
	if r == nil || r.Image == nil || r.Width <= 0 || r.Height <= 0 {
		return Stats{}, fmt.Errorf("%w: empty raster", ErrPaginationFailure)
	}
	if layout.Inner.Width <= 0 || layout.Inner.Height <= 0 {
		return Stats{}, fmt.Errorf("%w: empty printable area", ErrPaginationFailure)
	}

	src := downsample(r.Image, layout.MaxWidthPx)
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()

	rows := int(math.Floor(float64(width) * layout.Inner.Ratio))
	if rows <= 0 {
		return Stats{}, fmt.Errorf("%w: page holds no raster rows (raster %dx%d)", ErrPaginationFailure, width, height)
	}
	pages := (height + rows - 1) / rows

	stats := Stats{Pages: pages, StripRows: rows, LinksTotal: len(links)}
	inner, m := layout.Inner, layout.Margin

	var buf bytes.Buffer
	for page := 0; page < pages; page++ {
		top := page * rows
		stripRows := min(rows, height-top)

		buf.Reset()
		if err := codec.Encode(&buf, strip(src, top, stripRows)); err != nil {
			return Stats{}, fmt.Errorf("%w: encoding page %d: %v", ErrPaginationFailure, page+1, err)
		}

		onPage := float64(stripRows) * inner.Width / float64(width)
		w.AddPage()
		if err := w.DrawImage(&buf, codec.PDFType(), m.Left, m.Top, inner.Width, onPage); err != nil {
			return Stats{}, fmt.Errorf("%w: page %d: %v", ErrPaginationFailure, page+1, err)
		}

		pageTop := float64(page) * inner.Height
		for _, l := range links {
			if l.Rect.Top < pageTop || l.Rect.Top >= pageTop+inner.Height {
				continue
			}
			placed := geometry.Rect{
				Left:   l.Rect.Left + m.Left,
				Top:    l.Rect.Top + m.Top - pageTop,
				Width:  l.Rect.Width,
				Height: l.Rect.Height,
			}
			if err := w.AddLink(placed, l.URL); err != nil {
				return Stats{}, fmt.Errorf("%w: link on page %d: %v", ErrPaginationFailure, page+1, err)
			}
			stats.Links++
		}
	}
	return stats, nil
}

// StripHeights returns the row count of every page strip for a raster of
// the given size, the same split Run performs.
func StripHeights(width, height int, ratio float64) []int {
	rows := int(math.Floor(float64(width) * ratio))
	if width <= 0 || height <= 0 || rows <= 0 {
		return nil
	}
	var out []int
	for top := 0; top < height; top += rows {
		out = append(out, min(rows, height-top))
	}
	return out
}

// strip copies rows [top, top+n) of src over an opaque white background.
func strip(src image.Image, top, n int) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), n))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, image.Pt(b.Min.X, b.Min.Y+top), draw.Over)
	return dst
}

// downsample scales img to maxWidth, keeping the aspect ratio.
func downsample(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(1, int(math.Round(float64(b.Dy())*float64(maxWidth)/float64(b.Dx()))))
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
