// Package pdfdoc writes image-only PDF pages with link annotations.
//
// Coordinates are given in page units and converted to points, so any unit
// the geometry package knows can be used, including px, pc, em and ex.
package pdfdoc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-html2pdf/internal/geometry"
)

// ErrNoPage is returned when drawing before the first page was added.
var ErrNoPage = errors.New("no page added")

// Link is a URI annotation placed on a page, in page units.
type Link struct {
	URL  string
	Rect geometry.Rect
}

// Page records what was placed on one page.
type Page struct {
	Images int
	Links  []Link
}

// Document is a PDF under construction. It is not safe for concurrent use.
type Document struct {
	pdf    *fpdf.Fpdf
	k      float64
	pages  []Page
	images int
}

type options struct {
	compress bool
	title    string
	created  time.Time
}

// Option configures a Document.
type Option func(*options)

// WithCompression toggles stream compression. It is on by default.
func WithCompression(on bool) Option {
	return func(o *options) { o.compress = on }
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithCreationDate pins the creation date, which makes output reproducible.
func WithCreationDate(t time.Time) Option {
	return func(o *options) { o.created = t }
}

// New starts an empty document whose pages all have the size of g.
func New(g geometry.Geometry, opts ...Option) *Document {
	o := options{compress: true}
	for _, opt := range opts {
		opt(&o)
	}

	// fpdf has no notion of px, pc, em or ex. Pages are laid out in points
	// and every coordinate is scaled by k on the way in.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.Width * g.K, Ht: g.Height * g.K},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(o.compress)
	pdf.SetCreator("go-html2pdf", true)
	pdf.SetProducer("go-html2pdf", true)
	if o.title != "" {
		pdf.SetTitle(o.title, true)
	}
	if !o.created.IsZero() {
		pdf.SetCreationDate(o.created)
		pdf.SetModificationDate(o.created)
	}
	pdf.SetCatalogSort(true)

	return &Document{pdf: pdf, k: g.K}
}

// AddPage appends a blank page and makes it current.
func (d *Document) AddPage() {
	d.pdf.AddPage()
	d.pages = append(d.pages, Page{})
}

// DrawImage places the encoded image read from r on the current page.
// imageType is "JPG" or "PNG".
func (d *Document) DrawImage(r io.Reader, imageType string, x, y, w, h float64) error {
	if len(d.pages) == 0 {
		return ErrNoPage
	}
	d.images++
	name := "strip" + strconv.Itoa(d.images)
	opts := fpdf.ImageOptions{ImageType: imageType}

	d.pdf.RegisterImageOptionsReader(name, opts, r)
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("registering image: %w", err)
	}
	d.pdf.ImageOptions(name, x*d.k, y*d.k, w*d.k, h*d.k, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("placing image: %w", err)
	}
	d.pages[len(d.pages)-1].Images++
	return nil
}

// AddLink attaches a URI annotation to the current page.
func (d *Document) AddLink(r geometry.Rect, url string) error {
	if len(d.pages) == 0 {
		return ErrNoPage
	}
	d.pdf.LinkString(r.Left*d.k, r.Top*d.k, r.Width*d.k, r.Height*d.k, url)
	p := &d.pages[len(d.pages)-1]
	p.Links = append(p.Links, Link{URL: url, Rect: r})
	return nil
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// Pages returns a copy of the per-page records.
func (d *Document) Pages() []Page {
	out := make([]Page, len(d.pages))
	for i, p := range d.pages {
		out[i] = Page{Images: p.Images, Links: append([]Link(nil), p.Links...)}
	}
	return out
}

// Output writes the finished PDF to w. The document cannot be extended
// afterwards.
func (d *Document) Output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
