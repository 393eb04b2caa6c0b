package staging

import (
	"context"
	"encoding/json"
	"sync"
)

// callSetContent marks a SetContent call in fakePage.calls.
const callSetContent = "<set-content>"

// fakePage records staged markup and answers scripts from handlers keyed by
// script source. Results travel through JSON like they do from a browser.
// Scripts without a handler succeed and leave out untouched.
type fakePage struct {
	mu       sync.Mutex
	content  string
	calls    []string
	handlers map[string]func(args ...any) (any, error)
	setErr   error
}

func newFakePage() *fakePage {
	return &fakePage{handlers: make(map[string]func(args ...any) (any, error))}
}

func (p *fakePage) on(script string, fn func(args ...any) (any, error)) {
	p.handlers[script] = fn
}

func (p *fakePage) SetContent(_ context.Context, html string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.content = html
	p.calls = append(p.calls, callSetContent)
	return nil
}

func (p *fakePage) Eval(_ context.Context, fn string, out any, args ...any) error {
	p.mu.Lock()
	p.calls = append(p.calls, fn)
	h, ok := p.handlers[fn]
	p.mu.Unlock()
	if !ok {
		return nil
	}
	v, err := h(args...)
	if err != nil {
		return err
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

// index returns the position of the first call to script, or -1.
func (p *fakePage) index(script string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.calls {
		if c == script {
			return i
		}
	}
	return -1
}

func (p *fakePage) count(script string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int
	for _, c := range p.calls {
		if c == script {
			n++
		}
	}
	return n
}
