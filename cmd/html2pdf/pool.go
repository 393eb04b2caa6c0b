package main

import (
	"context"

	html2pdf "github.com/alnah/go-html2pdf"
)

// renderedDoc is the part of html2pdf.Document the CLI needs.
type renderedDoc interface {
	WriteToFile(path string) error
	DataURI() string
	PageCount() int
}

// docConverter converts one source.
type docConverter interface {
	Convert(ctx context.Context, src html2pdf.Source, cfg *html2pdf.Config) (renderedDoc, error)
}

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (docConverter, error)
	Release(docConverter)
	Size() int
	Close() error
}

// Compile-time interface implementation checks.
var (
	_ Pool         = (*converterPool)(nil)
	_ docConverter = (*pooledConverter)(nil)
)

// converterPool adapts html2pdf.ConverterPool to Pool.
type converterPool struct {
	pool *html2pdf.ConverterPool
}

func newConverterPool(size int, opts ...html2pdf.Option) Pool {
	return &converterPool{pool: html2pdf.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (docConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return &pooledConverter{conv: conv}, nil
}

func (p *converterPool) Release(c docConverter) {
	if pc, ok := c.(*pooledConverter); ok {
		p.pool.Release(pc.conv)
	}
}

func (p *converterPool) Size() int    { return p.pool.Size() }
func (p *converterPool) Close() error { return p.pool.Close() }

// pooledConverter wraps a pooled *html2pdf.Converter.
type pooledConverter struct {
	conv *html2pdf.Converter
}

func (c *pooledConverter) Convert(ctx context.Context, src html2pdf.Source, cfg *html2pdf.Config) (renderedDoc, error) {
	doc, err := c.conv.Convert(ctx, src, cfg)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
