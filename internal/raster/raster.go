package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decoder for engines that capture JPEG
	_ "image/png"  // decoder for the default capture format

	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/geometry"
	"github.com/alnah/go-html2pdf/internal/staging"
)

// ErrRenderFailure is returned when the engine cannot produce the raster.
var ErrRenderFailure = errors.New("render failed")

// Session is a browser tab holding a staged container.
type Session interface {
	staging.Page

	// Capture returns an encoded screenshot of clip, given in CSS pixels
	// in document coordinates, at scale device pixels per CSS pixel.
	Capture(ctx context.Context, clip geometry.Rect, scale float64) ([]byte, error)
}

// Raster is the captured bitmap. It is not modified after Render returns.
type Raster struct {
	Image  image.Image
	Width  int
	Height int
}

// LinkRegion is the hit region of one line box of an anchor, in page units
// relative to the container origin.
type LinkRegion struct {
	URL  string
	Rect geometry.Rect
}

// Options tunes Render.
type Options struct {
	// K is the number of points per page unit.
	K float64
	// Scale is the device pixel ratio of the capture. Zero means 1.
	Scale float64
	// EnableLinks collects anchor regions before capturing.
	EnableLinks bool
	// Logger receives debug and warning output. Nil disables logging.
	Logger *zap.Logger
}

// anchorRects is the JSON shape returned by scriptAnchorRects.
type anchorRects struct {
	Container geometry.Rect `json:"container"`
	Anchors   []struct {
		Href  string          `json:"href"`
		Rects []geometry.Rect `json:"rects"`
	} `json:"anchors"`
}

const scriptAnchorRects = `() => {
	const c = document.querySelector('.` + staging.ContainerClass + `');
	const box = (r) => ({left: r.left, top: r.top, width: r.width, height: r.height});
	const anchors = Array.from(c.querySelectorAll('a[href]')).map((a) => ({
		href: a.href,
		rects: Array.from(a.getClientRects()).map(box),
	}));
	return {container: box(c.getBoundingClientRect()), anchors: anchors};
}`

// Render rasterizes c. The container is detached before Render returns,
// whatever the outcome. Engine failures wrap ErrRenderFailure.
func Render(ctx context.Context, s Session, c *staging.Container, opts Options) (r *Raster, links []LinkRegion, err error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	defer func() {
		if derr := c.Detach(ctx); derr != nil {
			log.Warn("container detach failed", zap.Error(derr))
		}
	}()

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	if opts.EnableLinks {
		links, err = collectLinks(ctx, s, opts.K)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
		}
		log.Debug("collected link regions", zap.Int("count", len(links)))
	}

	bounds, err := c.Bounds(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	// An empty container still yields one blank page.
	if bounds.Height < 1 {
		bounds.Height = 1
	}

	data, err := s.Capture(ctx, bounds, scale)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decoding capture: %v", ErrRenderFailure, err)
	}

	b := img.Bounds()
	log.Debug("captured raster",
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Float64("scale", scale))

	return &Raster{Image: img, Width: b.Dx(), Height: b.Dy()}, links, nil
}

// collectLinks reads every anchor rectangle and maps it to page units
// relative to the container.
func collectLinks(ctx context.Context, s Session, k float64) ([]LinkRegion, error) {
	var found anchorRects
	if err := s.Eval(ctx, scriptAnchorRects, &found); err != nil {
		return nil, fmt.Errorf("collecting anchors: %w", err)
	}

	origin := geometry.ToUnits(found.Container, k)
	var links []LinkRegion
	for _, a := range found.Anchors {
		for _, rect := range a.Rects {
			links = append(links, LinkRegion{
				URL:  a.Href,
				Rect: geometry.ToUnits(rect, k).RelativeTo(origin),
			})
		}
	}
	return links, nil
}
