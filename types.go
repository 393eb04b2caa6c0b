package html2pdf

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Engine selects the DevTools client that drives the browser.
type Engine string

// Supported engines.
const (
	EngineRod      Engine = "rod"
	EngineChromedp Engine = "chromedp"
)

// ParseEngine accepts "rod" and "chromedp" in any case. An empty string
// yields EngineRod.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return EngineRod, nil
	case EngineRod, EngineChromedp:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (must be rod or chromedp)", ErrInvalidEngine, s)
	}
}

// Option configures a Converter.
type Option func(*converterConfig)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration
	engine      Engine
	browserPath string
	noSandbox   bool
	logger      *zap.Logger
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout bounds each job. A context deadline shorter than d wins.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithEngine selects the browser driver. The default is EngineRod.
func WithEngine(e Engine) Option {
	return func(c *converterConfig) {
		c.engine = e
	}
}

// WithBrowserPath uses the Chrome binary at path instead of looking one up.
func WithBrowserPath(path string) Option {
	return func(c *converterConfig) {
		c.browserPath = path
	}
}

// WithNoSandbox disables the Chrome sandbox, which containers and most CI
// runners require.
func WithNoSandbox(on bool) Option {
	return func(c *converterConfig) {
		c.noSandbox = on
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
