// Package config loads the YAML configuration of the html2pdf CLI.
//
// Every field is optional. Zero values mean "use the library default", so
// a config file only needs the settings it changes and CLI flags can be
// layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/geometry"
	"github.com/alnah/go-html2pdf/internal/imagecodec"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxNameLength     = 30  // unit, format, orientation, engine, image type
	MaxCSSLength      = 200 // background color
	MaxSelectorLength = 500
	MaxFilenameLength = 255
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-html2pdf"

// Config holds the CLI configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Image    ImageConfig    `yaml:"image"`
	Render   RenderConfig   `yaml:"render"`
	Browser  BrowserConfig  `yaml:"browser"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Workers  int            `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Filename   string `yaml:"filename"`   // Single input only
}

// PageConfig defines the PDF page geometry.
type PageConfig struct {
	Format      string    `yaml:"format"`      // "a4", "letter" or "WIDTHxHEIGHT" in unit
	Unit        string    `yaml:"unit"`        // "mm", "pt", "in", ... (default: "mm")
	Orientation string    `yaml:"orientation"` // "portrait", "landscape"
	Margin      []float64 `yaml:"margin"`      // 1, 2 or 4 values in unit
}

// ImageConfig defines how page strips are encoded.
type ImageConfig struct {
	Type    string  `yaml:"type"`    // "jpeg" or "png"
	Quality float64 `yaml:"quality"` // 0..1, JPEG only
}

// RenderConfig defines rasterization options.
type RenderConfig struct {
	Scale        float64 `yaml:"scale"`        // Device pixel ratio (default: 2)
	Background   string  `yaml:"background"`   // CSS color behind the content
	WaitSelector string  `yaml:"waitSelector"` // CSS selector awaited before capture
	MaxWidthPx   int     `yaml:"maxWidthPx"`   // Downscale wider rasters
	Javascript   bool    `yaml:"javascript"`   // Keep and run <script> elements
	Links        *bool   `yaml:"links"`        // nil = enabled
}

// BrowserConfig defines the headless Chrome settings.
type BrowserConfig struct {
	Engine    string `yaml:"engine"`    // "rod" or "chromedp"
	Path      string `yaml:"path"`      // Chrome binary
	NoSandbox bool   `yaml:"noSandbox"` // Required in most containers
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "45s"
}

// MarkdownConfig defines how .md inputs are converted.
type MarkdownConfig struct {
	Style string `yaml:"style"` // Chroma style for code blocks
}

// TimeoutDuration parses Browser.Timeout. An empty value yields 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Browser.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Browser.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: browser.timeout %q: %v", ErrInvalidValue, c.Browser.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: browser.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig and Parse, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.filename", c.Output.Filename, MaxFilenameLength},
		{"page.format", c.Page.Format, MaxNameLength},
		{"page.unit", c.Page.Unit, MaxNameLength},
		{"page.orientation", c.Page.Orientation, MaxNameLength},
		{"image.type", c.Image.Type, MaxNameLength},
		{"render.background", c.Render.Background, MaxCSSLength},
		{"render.waitSelector", c.Render.WaitSelector, MaxSelectorLength},
		{"browser.engine", c.Browser.Engine, MaxNameLength},
		{"browser.path", c.Browser.Path, MaxPathLength},
		{"browser.timeout", c.Browser.Timeout, MaxNameLength},
		{"markdown.style", c.Markdown.Style, MaxNameLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := c.validatePage(); err != nil {
		return err
	}

	if c.Image.Type != "" {
		if _, err := imagecodec.New(c.Image.Type, 0); err != nil {
			return fmt.Errorf("image.type: %w", err)
		}
	}
	if c.Image.Quality < 0 || c.Image.Quality > 1 {
		return fmt.Errorf("%w: image.quality must be between 0 and 1, got %g", ErrInvalidValue, c.Image.Quality)
	}

	if c.Render.Scale < 0 {
		return fmt.Errorf("%w: render.scale must not be negative, got %g", ErrInvalidValue, c.Render.Scale)
	}
	if c.Render.MaxWidthPx < 0 {
		return fmt.Errorf("%w: render.maxWidthPx must not be negative, got %d", ErrInvalidValue, c.Render.MaxWidthPx)
	}

	switch strings.ToLower(c.Browser.Engine) {
	case "", "rod", "chromedp":
	default:
		return fmt.Errorf("%w: browser.engine %q (must be rod or chromedp)", ErrInvalidValue, c.Browser.Engine)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidValue, c.Workers)
	}
	return nil
}

func (c *Config) validatePage() error {
	unit, err := geometry.ParseUnit(c.Page.Unit)
	if err != nil {
		return fmt.Errorf("page.unit: %w", err)
	}
	orientation, err := geometry.ParseOrientation(c.Page.Orientation)
	if err != nil {
		return fmt.Errorf("page.orientation: %w", err)
	}

	format, err := geometry.ParseFormat(c.Page.Format)
	if err != nil {
		return fmt.Errorf("page.format: %w", err)
	}
	page, err := geometry.Resolve(orientation, unit, format)
	if err != nil {
		return fmt.Errorf("page: %w", err)
	}

	switch len(c.Page.Margin) {
	case 0, 1, 2, 4:
	default:
		return fmt.Errorf("%w: page.margin takes 1, 2 or 4 values, got %d", ErrInvalidValue, len(c.Page.Margin))
	}
	for i, m := range c.Page.Margin {
		if m < 0 {
			return fmt.Errorf("%w: page.margin[%d] must not be negative, got %g", ErrInvalidValue, i, m)
		}
	}
	if margin, ok := geometry.ExpandMargin(c.Page.Margin); ok {
		if _, err := page.Inner(margin); err != nil {
			return fmt.Errorf("page.margin: %w", err)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every setting defers to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-html2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

