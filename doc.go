// Package html2pdf converts HTML fragments into paginated, image-based PDF
// documents using headless Chrome.
//
// The fragment is laid out in a browser tab at the width of the printable
// page area, captured as one tall bitmap, sliced into page-sized strips and
// embedded page by page. Hyperlinks stay clickable: their positions are
// measured before the capture and added as link annotations on the page
// where each one starts. Pages contain no text layer.
//
// # Quick Start
//
//	conv, err := html2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	job, err := conv.NewJob(html2pdf.FromHTML("<h1>Hello</h1>"), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := job.Download(ctx); err != nil { // writes file.pdf
//	    log.Fatal(err)
//	}
//
// Generate, Download and DataURI do the same with a temporary Converter.
//
// # Conversion Pipeline
//
//  1. Page geometry: paper format, unit and orientation give the page
//     size; the margins give the printable area.
//  2. Staging: the source is copied into a container as wide as the
//     printable area. Elements with class "html2pdf__page-break" grow
//     until the content after them starts on a new page. Elements carrying
//     ScrollTopAttr or ScrollLeftAttr are scrolled to those offsets.
//  3. Rasterization: link rectangles are collected and the container is
//     captured at Render.Scale device pixels per CSS pixel.
//  4. Pagination: the bitmap is cut into strips of one page height,
//     composited on white, encoded as JPEG or PNG and placed on the pages.
//
// # Configuration
//
// Converter options select the engine and its limits:
//
//	conv, err := html2pdf.NewConverter(
//	    html2pdf.WithEngine(html2pdf.EngineChromedp),
//	    html2pdf.WithTimeout(2 * time.Minute),
//	    html2pdf.WithLogger(logger),
//	)
//
// Per-job settings live in Config; empty fields take the values of
// DefaultConfig (10mm margins, A4 portrait, JPEG at 0.95, links on):
//
//	job, err := conv.NewJob(src, &html2pdf.Config{
//	    Margin:   []float64{15, 10},
//	    Filename: "report",
//	    Page:     html2pdf.PageConfig{Format: "letter", Unit: "in"},
//	    Image:    html2pdf.ImageConfig{Type: "png"},
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := html2pdf.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Errors
//
// Configuration problems are reported by NewJob (ErrInvalidUnit,
// ErrInvalidFormat, ErrInvalidOrientation, ErrInvalidMargin,
// ErrInvalidImageType). Browser problems wrap ErrBrowserConnect,
// ErrPageCreate or ErrPageLoad; stage failures wrap ErrRenderFailure or
// ErrPaginationFailure. Use errors.Is to test for them.
package html2pdf
