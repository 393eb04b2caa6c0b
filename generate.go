package html2pdf

import (
	"context"
	"errors"
)

// Generate converts src with a temporary Converter and returns the document.
func Generate(ctx context.Context, src Source, cfg *Config, opts ...Option) (doc *Document, err error) {
	err = withJob(src, cfg, opts, func(j *Job) error {
		doc, err = j.ExportDocument(ctx)
		return err
	})
	return doc, err
}

// Download converts src with a temporary Converter and saves the result
// under cfg.Filename in the working directory.
func Download(ctx context.Context, src Source, cfg *Config, opts ...Option) error {
	return withJob(src, cfg, opts, func(j *Job) error {
		return j.Download(ctx)
	})
}

// DataURI converts src with a temporary Converter and returns the document
// as a data URI.
func DataURI(ctx context.Context, src Source, cfg *Config, opts ...Option) (uri string, err error) {
	err = withJob(src, cfg, opts, func(j *Job) error {
		uri, err = j.ExportDataURI(ctx)
		return err
	})
	return uri, err
}

func withJob(src Source, cfg *Config, opts []Option, fn func(*Job) error) (err error) {
	conv, err := NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, conv.Close())
	}()

	job, err := conv.NewJob(src, cfg)
	if err != nil {
		return err
	}
	return fn(job)
}
