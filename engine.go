package html2pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/raster"
)

// engine owns a browser and hands out one tab per job.
type engine interface {
	NewSession(ctx context.Context, opts sessionOptions) (session, error)
	Close() error
}

// session is a tab holding one staged job.
type session interface {
	raster.Session
	Close() error
}

// sessionOptions sizes the tab for a job.
type sessionOptions struct {
	// WidthPx is the layout width of the container in CSS pixels.
	WidthPx float64
	// WaitSelector delays readiness until an element matches.
	WaitSelector string
}

// viewportHeight is the initial tab height. Captures go beyond it.
const viewportHeight = 1024

// viewportWidth rounds the container width up to whole device pixels.
func viewportWidth(widthPx float64) int {
	return max(1, int(math.Ceil(widthPx)))
}

// scriptReady resolves once the document, its images and its fonts are
// loaded.
const scriptReady = `() => new Promise((resolve) => {
	const done = () => document.fonts.ready.then(() => resolve(true));
	if (document.readyState === 'complete') { done(); return; }
	window.addEventListener('load', done, {once: true});
})`

// scriptHasSelector reports whether an element matches the selector.
const scriptHasSelector = `(sel) => document.querySelector(sel) !== null`

// callExpression renders fn applied to args as a single JavaScript
// expression, for clients that evaluate expressions rather than functions.
func callExpression(fn string, args ...any) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		raw, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("encoding argument %d: %w", i, err)
		}
		parts[i] = string(raw)
	}
	return "(" + fn + ")(" + strings.Join(parts, ", ") + ")", nil
}

// newEngine builds the engine selected by cfg.
func newEngine(cfg converterConfig) (engine, error) {
	switch cfg.engine {
	case "", EngineRod:
		return newRodEngine(cfg), nil
	case EngineChromedp:
		return newChromedpEngine(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEngine, cfg.engine)
	}
}

// selectorPollInterval is how often waitForSelector checks the document.
const selectorPollInterval = 50 * time.Millisecond

// waitForSelector polls s until sel matches an element or ctx is done.
func waitForSelector(ctx context.Context, s raster.Session, sel string) error {
	ticker := time.NewTicker(selectorPollInterval)
	defer ticker.Stop()
	for {
		var found bool
		if err := s.Eval(ctx, scriptHasSelector, &found, sel); err != nil {
			return fmt.Errorf("waiting for %q: %w", sel, err)
		}
		if found {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %q: %w", sel, ctx.Err())
		case <-ticker.C:
		}
	}
}
