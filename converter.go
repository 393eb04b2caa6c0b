package html2pdf

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/paginate"
	"github.com/alnah/go-html2pdf/internal/pdfdoc"
	"github.com/alnah/go-html2pdf/internal/raster"
	"github.com/alnah/go-html2pdf/internal/staging"
)

// Converter turns HTML into image-based PDF documents using headless Chrome.
// Create with NewConverter, start conversions with NewJob, and Close when
// done. A Converter is safe for concurrent use: every job renders in a tab
// of its own.
type Converter struct {
	cfg    converterConfig
	log    *zap.Logger
	engine engine

	mu     sync.Mutex
	closed bool
}

// NewConverter creates a Converter. The browser is started on first use.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{
		timeout: defaultTimeout,
		engine:  EngineRod,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}

	return &Converter{cfg: cfg, log: cfg.logger, engine: eng}, nil
}

// NewJob prepares the conversion of src with cfg merged over DefaultConfig.
// A nil cfg uses the defaults. Invalid settings are reported here, before
// any browser work starts.
func (c *Converter) NewJob(src Source, cfg *Config) (*Job, error) {
	p, err := compile(cfg.resolved(), c.log)
	if err != nil {
		return nil, err
	}
	return &Job{conv: c, src: src, plan: p}, nil
}

// Convert runs a job for src and returns its document.
func (c *Converter) Convert(ctx context.Context, src Source, cfg *Config) (*Document, error) {
	job, err := c.NewJob(src, cfg)
	if err != nil {
		return nil, err
	}
	return job.ExportDocument(ctx)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.engine.Close()
}

func (c *Converter) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// run executes every stage of j. It recovers from internal panics so that
// a failing stage never crashes the caller.
func (c *Converter) run(ctx context.Context, j *Job) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if c.isClosed() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	p := j.plan
	k := p.page.K
	log := c.log.With(zap.String("file", p.cfg.Filename))
	log.Debug("page geometry",
		zap.String("unit", string(p.page.Unit)),
		zap.Float64("width", p.page.Width),
		zap.Float64("height", p.page.Height),
		zap.Float64s("inner", []float64{p.inner.Width, p.inner.Height}),
	)

	src, err := j.src.clone(staging.CloneOptions{JavaScriptEnabled: p.cfg.JavascriptEnabled})
	if err != nil {
		return nil, err
	}
	if j.src.IsZero() {
		log.Warn("converting an empty document", zap.Error(ErrMissingSource))
		src = nil
	}

	sess, err := c.engine.NewSession(ctx, sessionOptions{
		WidthPx:      p.inner.WidthPx(k),
		WaitSelector: p.cfg.Render.WaitSelector,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Debug("closing tab", zap.Error(cerr))
		}
	}()

	container, err := staging.Build(ctx, sess, src, p.inner, k,
		staging.WithBackground(p.cfg.Render.Background))
	if err != nil {
		return nil, fmt.Errorf("%w: staging: %w", ErrRenderFailure, err)
	}
	j.setState(StateStaged)
	log.Debug("staged", zap.Int("page_breaks", container.PageBreaks))

	img, links, err := raster.Render(ctx, sess, container, raster.Options{
		K:           k,
		Scale:       p.cfg.Render.Scale,
		EnableLinks: p.links,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}
	j.setState(StateRasterized)
	if p.cfg.OnRendered != nil {
		p.cfg.OnRendered(img.Image)
	}

	pdf := pdfdoc.New(p.page, pdfdoc.WithTitle(titleFromFilename(p.cfg.Filename)))
	stats, err := paginate.Run(img, links, paginate.Layout{
		Inner:      p.inner,
		Margin:     p.margin,
		MaxWidthPx: p.cfg.Render.MaxWidthPx,
	}, p.codec, pdf)
	if err != nil {
		return nil, err
	}
	j.setState(StatePaginated)
	log.Debug("paginated",
		zap.Int("pages", stats.Pages),
		zap.Int("rows_per_page", stats.StripRows),
		zap.Int("links", stats.Links),
		zap.Int("links_dropped", stats.LinksTotal-stats.Links),
	)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaginationFailure, err)
	}
	return newDocument(buf.Bytes(), p.cfg.Filename, pdf.Pages()), nil
}
