package pdfdoc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-html2pdf/internal/geometry"
)

func a4(t *testing.T) geometry.Geometry {
	t.Helper()
	g, err := geometry.Resolve(geometry.Portrait, geometry.Millimeter, geometry.Named("a4"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return g
}

func pngStrip(t *testing.T) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestDocument(t *testing.T) {
	t.Parallel()

	d := New(a4(t), WithCompression(false), WithTitle("report"),
		WithCreationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	d.AddPage()
	if err := d.DrawImage(pngStrip(t), "PNG", 10, 10, 190, 190); err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}
	d.AddPage()
	if err := d.DrawImage(pngStrip(t), "PNG", 10, 10, 190, 50); err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}
	if err := d.AddLink(geometry.Rect{Left: 20, Top: 30, Width: 40, Height: 5}, "https://example.com/"); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}

	if got := d.PageCount(); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}
	pages := d.Pages()
	if len(pages[0].Links) != 0 || len(pages[1].Links) != 1 {
		t.Errorf("links per page = %d,%d, want 0,1", len(pages[0].Links), len(pages[1].Links))
	}

	var out bytes.Buffer
	if err := d.Output(&out); err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	pdf := out.String()
	if !strings.HasPrefix(pdf, "%PDF-") {
		t.Errorf("output does not start with %%PDF-")
	}
	if n := strings.Count(pdf, "/Subtype /Link"); n != 1 {
		t.Errorf("link annotations = %d, want 1", n)
	}
	if !strings.Contains(pdf, "https://example.com/") {
		t.Error("link URI missing from output")
	}
}

func TestDocument_PagesIsACopy(t *testing.T) {
	t.Parallel()

	d := New(a4(t))
	d.AddPage()
	_ = d.AddLink(geometry.Rect{Width: 1, Height: 1}, "https://example.com/")

	pages := d.Pages()
	pages[0].Links[0].URL = "changed"

	if got := d.Pages()[0].Links[0].URL; got != "https://example.com/" {
		t.Errorf("URL = %q, Pages() exposed internal state", got)
	}
}

func TestDocument_NoPage(t *testing.T) {
	t.Parallel()

	d := New(a4(t))
	if err := d.DrawImage(pngStrip(t), "PNG", 0, 0, 1, 1); !errors.Is(err, ErrNoPage) {
		t.Errorf("DrawImage() error = %v, want ErrNoPage", err)
	}
	if err := d.AddLink(geometry.Rect{}, "https://example.com/"); !errors.Is(err, ErrNoPage) {
		t.Errorf("AddLink() error = %v, want ErrNoPage", err)
	}
}

func TestDocument_BadImage(t *testing.T) {
	t.Parallel()

	d := New(a4(t))
	d.AddPage()
	err := d.DrawImage(strings.NewReader("not a png"), "PNG", 0, 0, 1, 1)
	if err == nil {
		t.Fatal("DrawImage() error = nil, want error")
	}
}
