package html2pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/geometry"
)

// Compile-time interface checks
var (
	_ engine  = (*chromedpEngine)(nil)
	_ session = (*chromedpSession)(nil)
)

// chromedpEngine drives Chrome through chromedp.
type chromedpEngine struct {
	cfg converterConfig

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func newChromedpEngine(cfg converterConfig) *chromedpEngine {
	return &chromedpEngine{cfg: cfg}
}

// ensureBrowser lazily starts the browser.
func (e *chromedpEngine) ensureBrowser() (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browserCtx != nil {
		return e.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if bin := browserBin(e.cfg); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	if noSandbox(e.cfg) {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			e.cfg.logger.Debug("chromedp", zap.String("event", fmt.Sprintf(format, args...)))
		}),
	)

	// Run with no actions starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.allocCancel = allocCancel
	e.browserCtx = browserCtx
	e.browserCancel = browserCancel
	return browserCtx, nil
}

// NewSession opens a blank tab sized for the job.
func (e *chromedpEngine) NewSession(ctx context.Context, opts sessionOptions) (session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browserCtx, err := e.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	s := &chromedpSession{
		tab:          tabCtx,
		cancel:       tabCancel,
		width:        viewportWidth(opts.WidthPx),
		waitSelector: opts.WaitSelector,
	}

	if err := s.run(ctx,
		chromedp.Navigate("about:blank"),
		emulation.SetDeviceMetricsOverride(int64(s.width), viewportHeight, 1, false),
	); err != nil {
		tabCancel()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return s, nil
}

// Close shuts the browser down.
func (e *chromedpEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browserCtx == nil {
		return nil
	}
	err := chromedp.Cancel(e.browserCtx)
	e.browserCancel()
	e.allocCancel()

	e.browserCtx = nil
	e.browserCancel = nil
	e.allocCancel = nil
	return err
}

// chromedpSession is one tab.
type chromedpSession struct {
	tab          context.Context
	cancel       context.CancelFunc
	width        int
	waitSelector string
}

// run executes actions in the tab, giving up when ctx is done.
func (s *chromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	execCtx, cancel := context.WithCancel(s.tab)
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-execCtx.Done():
		}
	}()

	if err := chromedp.Run(execCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func (s *chromedpSession) SetContent(ctx context.Context, html string) error {
	ready, err := callExpression(scriptReady)
	if err != nil {
		return err
	}

	var loaded bool
	if err := s.run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.Evaluate(ready, &loaded, awaitPromise),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if s.waitSelector != "" {
		if err := waitForSelector(ctx, s, s.waitSelector); err != nil {
			return fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
	}
	return nil
}

func (s *chromedpSession) Eval(ctx context.Context, fn string, out any, args ...any) error {
	expr, err := callExpression(fn, args...)
	if err != nil {
		return err
	}
	var raw []byte
	if err := s.run(ctx, chromedp.Evaluate(expr, &raw, awaitPromise)); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding script result: %w", err)
	}
	return nil
}

func (s *chromedpSession) Capture(ctx context.Context, clip geometry.Rect, scale float64) ([]byte, error) {
	var buf []byte
	err := s.run(ctx,
		emulation.SetDeviceMetricsOverride(int64(s.width), viewportHeight, scale, false),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{
					X:      clip.Left,
					Y:      clip.Top,
					Width:  clip.Width,
					Height: clip.Height,
					Scale:  1,
				}).
				WithCaptureBeyondViewport(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromedpSession) Close() error {
	err := chromedp.Cancel(s.tab)
	s.cancel()
	return err
}
