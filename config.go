package html2pdf

import (
	"image"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/geometry"
	"github.com/alnah/go-html2pdf/internal/imagecodec"
)

// Default job settings.
const (
	DefaultFilename = "file.pdf"
	DefaultMargin   = 10 // in DefaultUnit
	DefaultScale    = 2
	DefaultUnit     = string(geometry.DefaultUnit)
	DefaultFormat   = geometry.DefaultFormat
)

// Config describes one conversion. The zero value of every field means
// "use the default"; see DefaultConfig.
type Config struct {
	// Margin uses the CSS shorthand in page units: one value for all sides,
	// [vertical, horizontal], or [top, right, bottom, left]. Other lengths
	// fall back to no margin with a warning.
	Margin []float64

	// Filename is the name used by Download. ".pdf" is appended when missing.
	Filename string

	Page  PageConfig
	Image ImageConfig

	// EnableLinks keeps hyperlinks clickable. Nil means true.
	EnableLinks *bool

	// JavascriptEnabled keeps <script> elements of the source so they run
	// in the staged document.
	JavascriptEnabled bool

	Render RenderConfig

	// OnRendered, when set, receives the full raster before pagination.
	OnRendered func(image.Image)
}

// PageConfig describes the paper.
type PageConfig struct {
	Orientation string // portrait, landscape (or p, l)
	Unit        string // pt, mm, cm, in, px, pc, em, ex
	Format      string // a paper name such as "a4", or "WIDTHxHEIGHT" in Unit
}

// ImageConfig describes how page strips are encoded.
type ImageConfig struct {
	Type    string  // jpeg or png
	Quality float64 // 0..1, jpeg only
}

// RenderConfig is passed through to the browser.
type RenderConfig struct {
	// Scale is the device pixel ratio of the capture.
	Scale float64
	// Background is the CSS background of the staged content.
	Background string
	// WaitSelector delays the capture until an element matches.
	WaitSelector string
	// MaxWidthPx downsamples wider captures. Zero disables it.
	MaxWidthPx int
}

// DefaultConfig returns the settings used for every field left empty.
func DefaultConfig() Config {
	links := true
	return Config{
		Margin:   []float64{DefaultMargin},
		Filename: DefaultFilename,
		Page: PageConfig{
			Orientation: string(geometry.Portrait),
			Unit:        DefaultUnit,
			Format:      DefaultFormat,
		},
		Image: ImageConfig{
			Type:    imagecodec.JPEG,
			Quality: imagecodec.DefaultQuality,
		},
		EnableLinks: &links,
		Render: RenderConfig{
			Scale:      DefaultScale,
			Background: "white",
		},
	}
}

// Bool returns a pointer to v, for Config.EnableLinks.
func Bool(v bool) *bool { return &v }

// resolved merges c over DefaultConfig. A nil c yields the defaults.
func (c *Config) resolved() Config {
	out := DefaultConfig()
	if c == nil {
		return out
	}
	if c.Margin != nil {
		out.Margin = slices.Clone(c.Margin)
	}
	if c.Filename != "" {
		out.Filename = c.Filename
	}
	if c.Page.Orientation != "" {
		out.Page.Orientation = c.Page.Orientation
	}
	if c.Page.Unit != "" {
		out.Page.Unit = c.Page.Unit
	}
	if c.Page.Format != "" {
		out.Page.Format = c.Page.Format
	}
	if c.Image.Type != "" {
		out.Image.Type = c.Image.Type
	}
	if c.Image.Quality != 0 {
		out.Image.Quality = c.Image.Quality
	}
	if c.EnableLinks != nil {
		out.EnableLinks = Bool(*c.EnableLinks)
	}
	out.JavascriptEnabled = c.JavascriptEnabled
	if c.Render.Scale > 0 {
		out.Render.Scale = c.Render.Scale
	}
	if c.Render.Background != "" {
		out.Render.Background = c.Render.Background
	}
	out.Render.WaitSelector = c.Render.WaitSelector
	out.Render.MaxWidthPx = c.Render.MaxWidthPx
	out.OnRendered = c.OnRendered
	out.Filename = NormalizeFilename(out.Filename)
	return out
}

// plan is a validated, resolved Config.
type plan struct {
	cfg    Config
	page   geometry.Geometry
	margin geometry.Margin
	inner  geometry.Inner
	codec  imagecodec.Codec
	links  bool
}

// compile validates cfg and derives the page layout. cfg must be resolved.
func compile(cfg Config, log *zap.Logger) (*plan, error) {
	orientation, err := geometry.ParseOrientation(cfg.Page.Orientation)
	if err != nil {
		return nil, err
	}
	unit, err := geometry.ParseUnit(cfg.Page.Unit)
	if err != nil {
		return nil, err
	}
	format, err := geometry.ParseFormat(cfg.Page.Format)
	if err != nil {
		return nil, err
	}
	page, err := geometry.Resolve(orientation, unit, format)
	if err != nil {
		return nil, err
	}

	margin, ok := geometry.ExpandMargin(cfg.Margin)
	if !ok {
		log.Warn("margin must have 1, 2 or 4 values, using no margin",
			zap.Float64s("margin", cfg.Margin))
	} else if slices.ContainsFunc(margin.Slice(), func(v float64) bool { return v < 0 }) {
		log.Warn("margin must not be negative, using no margin",
			zap.Float64s("margin", cfg.Margin))
		margin = geometry.Margin{}
	}
	inner, err := page.Inner(margin)
	if err != nil {
		return nil, err
	}

	codec, err := imagecodec.New(cfg.Image.Type, cfg.Image.Quality)
	if err != nil {
		return nil, err
	}

	return &plan{
		cfg:    cfg,
		page:   page,
		margin: margin,
		inner:  inner,
		codec:  codec,
		links:  cfg.EnableLinks == nil || *cfg.EnableLinks,
	}, nil
}

// NormalizeFilename appends ".pdf" unless the name already ends with a
// pdf extension in any case.
func NormalizeFilename(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}
