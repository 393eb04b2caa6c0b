package html2pdf

import (
	"context"
	"sync"
)

// State is the progress of a Job.
type State int

// Job states, in the order a successful build goes through them.
const (
	StateCreated State = iota
	StateStaged
	StateRasterized
	StatePaginated
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStaged:
		return "staged"
	case StateRasterized:
		return "rasterized"
	case StatePaginated:
		return "paginated"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Job is one conversion. The first successful build is cached and reused
// by every export; a failed build can be retried. Concurrent calls on the
// same Job are serialized.
type Job struct {
	conv *Converter
	src  Source
	plan *plan

	mu    sync.Mutex // serializes builds
	state State
	doc   *Document

	stateMu sync.Mutex
}

// State returns the furthest stage the job reached.
func (j *Job) State() State {
	j.stateMu.Lock()
	defer j.stateMu.Unlock()
	return j.state
}

func (j *Job) setState(s State) {
	j.stateMu.Lock()
	j.state = s
	j.stateMu.Unlock()
}

// Filename returns the normalized file name used by Download.
func (j *Job) Filename() string {
	return j.plan.cfg.Filename
}

// Build renders and paginates the source. It does nothing once a build
// succeeded.
func (j *Job) Build(ctx context.Context) error {
	_, err := j.build(ctx)
	return err
}

func (j *Job) build(ctx context.Context) (*Document, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.doc != nil {
		return j.doc, nil
	}

	j.setState(StateCreated)
	doc, err := j.conv.run(ctx, j)
	if err != nil {
		return nil, err
	}
	j.doc = doc
	j.setState(StateFinalized)
	return doc, nil
}

// ExportDocument builds the job if needed and returns the document.
func (j *Job) ExportDocument(ctx context.Context) (*Document, error) {
	return j.build(ctx)
}

// ExportDataURI builds the job if needed and returns the document as a
// data URI.
func (j *Job) ExportDataURI(ctx context.Context) (string, error) {
	doc, err := j.build(ctx)
	if err != nil {
		return "", err
	}
	return doc.DataURI(), nil
}

// Download builds the job if needed and saves the document under its
// file name in the working directory. It saves on every call, cached
// build or not.
func (j *Job) Download(ctx context.Context) error {
	return j.SaveAs(ctx, j.Filename())
}

// SaveAs builds the job if needed and writes the document to path.
func (j *Job) SaveAs(ctx context.Context, path string) error {
	doc, err := j.build(ctx)
	if err != nil {
		return err
	}
	return doc.WriteToFile(path)
}
