package html2pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/geometry"
	"github.com/alnah/go-html2pdf/internal/pdfdoc"
)

// Rect is a rectangle in page units.
type Rect = geometry.Rect

// Link is a clickable region on a page, in page units from the page's
// top-left corner.
type Link struct {
	URL  string
	Rect Rect
}

// PageInfo describes one page of a Document.
type PageInfo struct {
	Links []Link
}

// Document is a finished PDF. It is read-only and safe for concurrent use.
type Document struct {
	data     []byte
	filename string
	pages    []PageInfo
}

func newDocument(data []byte, filename string, pages []pdfdoc.Page) *Document {
	info := make([]PageInfo, len(pages))
	for i, p := range pages {
		for _, l := range p.Links {
			info[i].Links = append(info[i].Links, Link{URL: l.URL, Rect: l.Rect})
		}
	}
	return &Document{data: data, filename: filename, pages: info}
}

// Bytes returns a copy of the PDF.
func (d *Document) Bytes() []byte {
	return bytes.Clone(d.data)
}

// Len returns the size of the PDF in bytes.
func (d *Document) Len() int { return len(d.data) }

// Filename returns the file name the document is saved under by Download.
func (d *Document) Filename() string { return d.filename }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.pages) }

// Pages returns the per-page link annotations.
func (d *Document) Pages() []PageInfo {
	out := make([]PageInfo, len(d.pages))
	for i, p := range d.pages {
		out[i] = PageInfo{Links: append([]Link(nil), p.Links...)}
	}
	return out
}

// Reader returns a reader over the PDF.
func (d *Document) Reader() io.Reader {
	return bytes.NewReader(d.data)
}

// WriteTo writes the PDF to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)
	return int64(n), err
}

// Base64 returns the PDF encoded with standard base64.
func (d *Document) Base64() string {
	return base64.StdEncoding.EncodeToString(d.data)
}

// DataURI returns the PDF as a data URI carrying its file name. The name is
// percent-encoded so that separators in it cannot end the parameter.
func (d *Document) DataURI() string {
	return "data:application/pdf;filename=" + url.PathEscape(d.filename) + ";base64," + d.Base64()
}

// WriteToFile writes the PDF to path, creating parent directories.
func (d *Document) WriteToFile(path string) error {
	if err := fileutil.WriteFile(path, d.data); err != nil {
		return fmt.Errorf("saving PDF: %w", err)
	}
	return nil
}

// titleFromFilename strips directories and the extension.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
