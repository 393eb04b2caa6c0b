package main

// Notes:
// - mergeFlags: flags override config, unset flags keep config values.
// - buildJobConfig: config maps onto html2pdf.Config without filling
//   defaults, so the library decides them.
// - buildConverterOptions: option count reflects which browser settings
//   are set. Options are opaque funcs, so we count them.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI overrides
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags win", func(t *testing.T) {
		t.Parallel()
		flags, _ := mustParseFlags(t,
			"-w", "3", "-f", "legal", "-u", "in", "--orientation", "landscape", "--margin", "1,2,3,4",
			"--image-type", "png", "--image-quality", "0.5",
			"--scale", "1", "--background", "#eee", "--wait-for", "#ready", "--max-width", "1200",
			"--no-links", "--javascript", "--code-style", "monokai",
			"-e", "chromedp", "--browser", "/bin/chrome", "--no-sandbox", "-t", "45s",
		)
		cfg := config.DefaultConfig()
		cfg.Page.Format = "a4"
		mergeFlags(flags, cfg)

		if cfg.Workers != 3 || cfg.Page.Format != "legal" || cfg.Page.Unit != "in" || cfg.Page.Orientation != "landscape" {
			t.Errorf("page/workers not merged: %+v", cfg)
		}
		if len(cfg.Page.Margin) != 4 || cfg.Page.Margin[3] != 4 {
			t.Errorf("Page.Margin = %v, want [1 2 3 4]", cfg.Page.Margin)
		}
		if cfg.Image.Type != "png" || cfg.Image.Quality != 0.5 {
			t.Errorf("Image = %+v", cfg.Image)
		}
		if cfg.Render.Scale != 1 || cfg.Render.Background != "#eee" || cfg.Render.WaitSelector != "#ready" || cfg.Render.MaxWidthPx != 1200 {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if cfg.Render.Links == nil || *cfg.Render.Links {
			t.Error("Render.Links should be false with --no-links")
		}
		if !cfg.Render.Javascript || cfg.Markdown.Style != "monokai" {
			t.Errorf("Javascript = %v, Style = %q", cfg.Render.Javascript, cfg.Markdown.Style)
		}
		if cfg.Browser.Engine != "chromedp" || cfg.Browser.Path != "/bin/chrome" || !cfg.Browser.NoSandbox || cfg.Browser.Timeout != "45s" {
			t.Errorf("Browser = %+v", cfg.Browser)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()
		flags, _ := mustParseFlags(t)
		cfg := config.DefaultConfig()
		cfg.Page.Format = "a3"
		cfg.Render.Links = html2pdf.Bool(true)
		cfg.Browser.Engine = "rod"
		mergeFlags(flags, cfg)

		if cfg.Page.Format != "a3" || cfg.Browser.Engine != "rod" {
			t.Errorf("config values lost: %+v", cfg)
		}
		if cfg.Render.Links == nil || !*cfg.Render.Links {
			t.Error("Render.Links should stay true")
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildJobConfig - Library config mapping
// ---------------------------------------------------------------------------

func TestBuildJobConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty config leaves defaults to the library", func(t *testing.T) {
		t.Parallel()
		job := buildJobConfig(config.DefaultConfig())
		if job.Margin != nil || job.EnableLinks != nil || job.Page.Format != "" || job.Render.Scale != 0 {
			t.Errorf("buildJobConfig(empty) = %+v, want zero fields", job)
		}
	})

	t.Run("fields mapped", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Page = config.PageConfig{Format: "200x300", Unit: "mm", Orientation: "l", Margin: []float64{7}}
		cfg.Image = config.ImageConfig{Type: "png", Quality: 0.9}
		cfg.Render = config.RenderConfig{Scale: 3, Background: "black", WaitSelector: ".done", MaxWidthPx: 900, Javascript: true, Links: html2pdf.Bool(false)}

		job := buildJobConfig(cfg)

		if job.Page != (html2pdf.PageConfig{Orientation: "l", Unit: "mm", Format: "200x300"}) {
			t.Errorf("Page = %+v", job.Page)
		}
		if job.Image != (html2pdf.ImageConfig{Type: "png", Quality: 0.9}) {
			t.Errorf("Image = %+v", job.Image)
		}
		if job.Render != (html2pdf.RenderConfig{Scale: 3, Background: "black", WaitSelector: ".done", MaxWidthPx: 900}) {
			t.Errorf("Render = %+v", job.Render)
		}
		if !job.JavascriptEnabled {
			t.Error("JavascriptEnabled = false, want true")
		}
		if job.EnableLinks == nil || *job.EnableLinks {
			t.Error("EnableLinks should be false")
		}
		cfg.Page.Margin[0] = 99
		if job.Margin[0] != 7 {
			t.Error("Margin shares storage with the config")
		}
	})

	t.Run("per file copy", func(t *testing.T) {
		t.Parallel()
		base := &html2pdf.Config{Filename: "base.pdf"}
		got := jobConfigFor(base, "/out/dir/report.pdf")
		if got.Filename != "report.pdf" {
			t.Errorf("Filename = %q, want report.pdf", got.Filename)
		}
		if base.Filename != "base.pdf" {
			t.Error("jobConfigFor modified the base config")
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildConverterOptions - Converter option mapping
// ---------------------------------------------------------------------------

func TestBuildConverterOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		browser  config.BrowserConfig
		wantOpts int
		wantErr  error
	}{
		{"defaults", config.BrowserConfig{}, 2, nil},
		{"all set", config.BrowserConfig{Engine: "chromedp", Path: "/c", NoSandbox: true, Timeout: "1m"}, 5, nil},
		{"bad engine", config.BrowserConfig{Engine: "gecko"}, 0, html2pdf.ErrInvalidEngine},
		{"bad timeout", config.BrowserConfig{Timeout: "later"}, 0, config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			cfg.Browser = tt.browser

			opts, err := buildConverterOptions(cfg, zap.NewNop())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(opts) != tt.wantOpts {
				t.Errorf("len(opts) = %d, want %d", len(opts), tt.wantOpts)
			}
		})
	}
}
