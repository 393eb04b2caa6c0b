package main

import (
	"path/filepath"

	"go.uber.org/zap"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}

	// Page
	if flags.page.format != "" {
		cfg.Page.Format = flags.page.format
	}
	if flags.page.unit != "" {
		cfg.Page.Unit = flags.page.unit
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if len(flags.page.margin) > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Image
	if flags.image.typ != "" {
		cfg.Image.Type = flags.image.typ
	}
	if flags.image.quality != 0 {
		cfg.Image.Quality = flags.image.quality
	}

	// Render
	if flags.render.scale != 0 {
		cfg.Render.Scale = flags.render.scale
	}
	if flags.render.background != "" {
		cfg.Render.Background = flags.render.background
	}
	if flags.render.waitSelector != "" {
		cfg.Render.WaitSelector = flags.render.waitSelector
	}
	if flags.render.maxWidth != 0 {
		cfg.Render.MaxWidthPx = flags.render.maxWidth
	}
	if flags.render.noLinks {
		cfg.Render.Links = html2pdf.Bool(false)
	}
	if flags.render.javascript {
		cfg.Render.Javascript = true
	}
	if flags.render.style != "" {
		cfg.Markdown.Style = flags.render.style
	}

	// Browser
	if flags.browser.engine != "" {
		cfg.Browser.Engine = flags.browser.engine
	}
	if flags.browser.path != "" {
		cfg.Browser.Path = flags.browser.path
	}
	if flags.browser.noSandbox {
		cfg.Browser.NoSandbox = true
	}
	if flags.browser.timeout != "" {
		cfg.Browser.Timeout = flags.browser.timeout
	}
}

// buildJobConfig maps the CLI config onto a library job config. Empty
// fields stay empty so the library defaults apply.
func buildJobConfig(cfg *config.Config) *html2pdf.Config {
	job := &html2pdf.Config{
		Page: html2pdf.PageConfig{
			Orientation: cfg.Page.Orientation,
			Unit:        cfg.Page.Unit,
			Format:      cfg.Page.Format,
		},
		Image: html2pdf.ImageConfig{
			Type:    cfg.Image.Type,
			Quality: cfg.Image.Quality,
		},
		JavascriptEnabled: cfg.Render.Javascript,
		Render: html2pdf.RenderConfig{
			Scale:        cfg.Render.Scale,
			Background:   cfg.Render.Background,
			WaitSelector: cfg.Render.WaitSelector,
			MaxWidthPx:   cfg.Render.MaxWidthPx,
		},
	}
	if len(cfg.Page.Margin) > 0 {
		job.Margin = append([]float64(nil), cfg.Page.Margin...)
	}
	if cfg.Render.Links != nil {
		job.EnableLinks = html2pdf.Bool(*cfg.Render.Links)
	}
	return job
}

// jobConfigFor returns a copy of base named after the output file.
func jobConfigFor(base *html2pdf.Config, outputPath string) *html2pdf.Config {
	cfg := *base
	cfg.Filename = filepath.Base(outputPath)
	return &cfg
}

// buildConverterOptions maps the browser section onto converter options.
// cfg must be validated.
func buildConverterOptions(cfg *config.Config, log *zap.Logger) ([]html2pdf.Option, error) {
	engine, err := html2pdf.ParseEngine(cfg.Browser.Engine)
	if err != nil {
		return nil, err
	}
	opts := []html2pdf.Option{
		html2pdf.WithEngine(engine),
		html2pdf.WithLogger(log),
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, html2pdf.WithTimeout(timeout))
	}
	if cfg.Browser.Path != "" {
		opts = append(opts, html2pdf.WithBrowserPath(cfg.Browser.Path))
	}
	if cfg.Browser.NoSandbox {
		opts = append(opts, html2pdf.WithNoSandbox(true))
	}
	return opts, nil
}
