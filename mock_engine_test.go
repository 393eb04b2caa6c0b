package html2pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"sync"

	"github.com/alnah/go-html2pdf/internal/geometry"
)

// ---------------------------------------------------------------------------
// Mock Engine
// ---------------------------------------------------------------------------

// mockEngine hands out mockSessions that share one simulated layout.
type mockEngine struct {
	mu         sync.Mutex
	layout     mockLayout
	sessionErr error
	sessions   int
	closed     int
	last       *mockSession
}

// mockLayout is what the simulated browser lays out.
type mockLayout struct {
	heightPx   float64   // container height before page-break padding
	breaks     []float64 // page-break offsets before padding, in CSS px
	anchors    []mockAnchor
	captureErr error
	evalErr    error
}

type mockAnchor struct {
	Href  string          `json:"href"`
	Rects []geometry.Rect `json:"rects"`
}

func (e *mockEngine) NewSession(ctx context.Context, opts sessionOptions) (session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sessionErr != nil {
		return nil, e.sessionErr
	}
	e.sessions++
	s := &mockSession{layout: e.layout, width: opts.WidthPx, padding: map[int]float64{}}
	e.last = s
	return s, nil
}

func (e *mockEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed++
	return nil
}

func (e *mockEngine) sessionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions
}

// mockSession answers the scripts of the staging and raster packages,
// recognised by a fragment of their source.
type mockSession struct {
	mu       sync.Mutex
	layout   mockLayout
	width    float64
	content  string
	padding  map[int]float64
	restored int
	detached bool
	closed   bool
}

func (s *mockSession) SetContent(_ context.Context, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = html
	return nil
}

func (s *mockSession) Eval(_ context.Context, fn string, out any, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layout.evalErr != nil {
		return s.layout.evalErr
	}

	var v any
	switch {
	case strings.Contains(fn, "a[href]"):
		v = map[string]any{
			"container": geometry.Rect{Width: s.width, Height: s.height()},
			"anchors":   s.layout.anchors,
		}
	case strings.Contains(fn, "window.scrollX"):
		v = geometry.Rect{Width: s.width, Height: s.height()}
	case strings.Contains(fn, "style.display"):
		i := args[0].(int)
		offset := s.layout.breaks[i]
		for j := 0; j < i; j++ {
			offset += s.padding[j]
		}
		v = offset
	case strings.Contains(fn, "style.height"):
		s.padding[args[0].(int)] = args[1].(float64)
		v = true
	case strings.Contains(fn, "el.scrollTop"):
		s.restored++
		v = strings.Count(s.content, ScrollTopAttr+"=")
	case strings.Contains(fn, "').length"):
		v = len(s.layout.breaks)
	case strings.Contains(fn, ".remove()"):
		s.detached = true
		v = true
	default:
		v = 0
	}

	if out == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// height is the container height including page-break padding.
func (s *mockSession) height() float64 {
	h := s.layout.heightPx
	for _, p := range s.padding {
		h += p
	}
	return h
}

func (s *mockSession) Capture(_ context.Context, clip geometry.Rect, scale float64) ([]byte, error) {
	if s.layout.captureErr != nil {
		return nil, s.layout.captureErr
	}
	w := int(math.Ceil(clip.Width * scale))
	h := int(math.Ceil(clip.Height * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: 20, B: 20, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *mockSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// newMockConverter returns a Converter whose browser is simulated.
func newMockConverter(t interface{ Fatalf(string, ...any) }, layout mockLayout, opts ...Option) (*Converter, *mockEngine) {
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	eng := &mockEngine{layout: layout}
	conv.engine = eng
	return conv, eng
}
