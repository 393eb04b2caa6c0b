package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/mdsource"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoFiles            = errors.New("no convertible files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputIsFile       = errors.New("output is a single PDF file but several inputs were found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds every HTML and Markdown file under the inputs.
// A file input must have a supported extension; directories are walked
// and unsupported files skipped.
func discoverFiles(inputs []string, output string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		found, err := discoverInput(input, output)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s%s", ErrNoFiles, strings.Join(inputs, ", "), hints.ForUnsupportedInput())
	}
	if len(files) > 1 && isPDFPath(output) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsFile, output)
	}
	return files, nil
}

func discoverInput(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if mdsource.KindOf(inputPath) == mdsource.KindUnknown {
			return nil, fmt.Errorf("%w: %s%s", mdsource.ErrUnsupportedInput, inputPath, hints.ForUnsupportedInput())
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "")}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || mdsource.KindOf(path) == mdsource.KindUnknown {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: resolveOutputPath(path, output, inputPath)})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the PDF output path for an input file.
// An output ending in .pdf is taken as the file itself. Otherwise the
// output is a directory mirroring the layout below baseInputDir.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), ".pdf")

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	if isPDFPath(output) {
		return output
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(output, name)
}

func isPDFPath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".pdf")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > html2pdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, html2pdf.MaxPoolSize)
	}
	return nil
}
