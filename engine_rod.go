package html2pdf

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/geometry"
	"github.com/alnah/go-html2pdf/internal/process"
)

// Compile-time interface checks
var (
	_ engine  = (*rodEngine)(nil)
	_ session = (*rodSession)(nil)
)

// rodEngine drives Chrome through go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodEngine struct {
	cfg converterConfig

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodEngine(cfg converterConfig) *rodEngine {
	return &rodEngine{cfg: cfg}
}

// ensureBrowser lazily launches and connects to the browser.
func (e *rodEngine) ensureBrowser() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		return e.browser, nil
	}

	// Inputs loaded from disk reference local images as file:// URLs.
	l := launcher.New().Set("allow-file-access-from-files")

	bin := browserBin(e.cfg)
	if bin != "" {
		l = l.Bin(bin)
	}
	if noSandbox(e.cfg) {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.launcher = l
	e.browser = browser
	return browser, nil
}

// NewSession opens a blank tab sized for the job.
func (e *rodEngine) NewSession(ctx context.Context, opts sessionOptions) (session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := e.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	s := &rodSession{page: page, width: viewportWidth(opts.WidthPx), waitSelector: opts.WaitSelector}
	if err := s.setViewport(ctx, 1); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return s, nil
}

// Close releases browser resources, including orphaned child processes.
func (e *rodEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	pid := e.launcher.PID()
	e.launcher.Kill()
	process.KillProcessGroup(pid)

	e.browser = nil
	e.launcher = nil
	return err
}

// rodSession is one tab.
type rodSession struct {
	page         *rod.Page
	width        int
	waitSelector string
}

func (s *rodSession) setViewport(ctx context.Context, scale float64) error {
	return s.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.width,
		Height:            viewportHeight,
		DeviceScaleFactor: scale,
	})
}

func (s *rodSession) SetContent(ctx context.Context, html string) error {
	page := s.page.Context(ctx)
	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if _, err := page.Eval(scriptReady); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if s.waitSelector != "" {
		if err := waitForSelector(ctx, s, s.waitSelector); err != nil {
			return fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
	}
	return nil
}

func (s *rodSession) Eval(ctx context.Context, fn string, out any, args ...any) error {
	res, err := s.page.Context(ctx).Eval(fn, args...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := res.Value.Unmarshal(out); err != nil {
		return fmt.Errorf("decoding script result: %w", err)
	}
	return nil
}

func (s *rodSession) Capture(ctx context.Context, clip geometry.Rect, scale float64) ([]byte, error) {
	if err := s.setViewport(ctx, scale); err != nil {
		return nil, err
	}
	return s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      clip.Left,
			Y:      clip.Top,
			Width:  clip.Width,
			Height: clip.Height,
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	})
}

func (s *rodSession) Close() error {
	return s.page.Close()
}

// browserBin returns the configured Chrome binary, if any.
// Use a pre-installed browser in Docker/containerized environments.
func browserBin(cfg converterConfig) string {
	if cfg.browserPath != "" {
		return cfg.browserPath
	}
	return os.Getenv("ROD_BROWSER_BIN")
}

// noSandbox reports whether the sandbox must be disabled. It is required
// for CI and containerized environments.
func noSandbox(cfg converterConfig) bool {
	return cfg.noSandbox ||
		os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}
