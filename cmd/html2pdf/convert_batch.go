package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrWritePDF      = errors.New("failed to write PDF file")
	ErrBatchFailures = errors.New("conversion failed")
)

// sourceLoader turns an input file into an HTML fragment.
type sourceLoader interface {
	Load(ctx context.Context, path string) (string, error)
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	job     *html2pdf.Config
	loader  sourceLoader
	dataURI bool
	engine  string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	DataURI    string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, env)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv docConverter, f FileToConvert, params *conversionParams, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	fragment, err := params.loader.Load(ctx, f.InputPath)
	if err != nil {
		return done(err)
	}

	doc, err := conv.Convert(ctx, html2pdf.FromHTML(fragment), jobConfigFor(params.job, f.OutputPath))
	if err != nil {
		return done(fmt.Errorf("%w%s", err, hintFor(err, params.engine)))
	}
	result.Pages = doc.PageCount()

	if params.dataURI {
		result.OutputPath = ""
		result.DataURI = doc.DataURI()
		return done(nil)
	}

	if err := doc.WriteToFile(f.OutputPath); err != nil {
		return done(fmt.Errorf("%w: %v%s", ErrWritePDF, err, hints.ForOutputDirectory()))
	}
	return done(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// The returned error wraps the first failure so exit codes reflect its cause.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)
	var first error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			if first == nil {
				first = r.Err
			}
			continue
		}

		if r.DataURI != "" {
			fmt.Fprintln(env.Stdout, r.DataURI)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if first != nil {
		return fmt.Errorf("%w: %d of %d file(s): %w", ErrBatchFailures, summary.Failed, len(results), first)
	}
	return nil
}
