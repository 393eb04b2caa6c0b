package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	format      string
	unit        string
	orientation string
	margin      []float64
}

// imageFlags holds strip encoding flags.
type imageFlags struct {
	typ     string
	quality float64
}

// renderFlags holds rasterization flags.
type renderFlags struct {
	scale        float64
	background   string
	waitSelector string
	maxWidth     int
	noLinks      bool
	javascript   bool
	style        string
}

// browserFlags holds headless Chrome flags.
type browserFlags struct {
	engine    string
	path      string
	noSandbox bool
	timeout   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	dataURI bool
	page    pageFlags
	image   imageFlags
	render  renderFlags
	browser browserFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log each stage and show timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "paper name (a4, letter, ...) or WIDTHxHEIGHT in unit")
	fs.StringVarP(&f.unit, "unit", "u", "", "page unit: pt, mm, cm, in, px, pc, em, ex")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64SliceVar(&f.margin, "margin", nil, "margin in unit: 1, 2 or 4 comma-separated values")
}

// addImageFlags adds strip encoding flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVar(&f.typ, "image-type", "", "page image encoding: jpeg, png")
	fs.Float64Var(&f.quality, "image-quality", 0, "jpeg quality (0.0-1.0)")
}

// addRenderFlags adds rasterization flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.Float64Var(&f.scale, "scale", 0, "device pixel ratio of the capture (default 2)")
	fs.StringVar(&f.background, "background", "", "CSS background behind the content")
	fs.StringVar(&f.waitSelector, "wait-for", "", "CSS selector to wait for before capture")
	fs.IntVar(&f.maxWidth, "max-width", 0, "downscale captures wider than this many pixels")
	fs.BoolVar(&f.noLinks, "no-links", false, "do not keep hyperlinks clickable")
	fs.BoolVar(&f.javascript, "javascript", false, "keep and run <script> elements")
	fs.StringVar(&f.style, "code-style", "", "chroma style for markdown code blocks")
}

// addBrowserFlags adds headless Chrome flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "browser driver: rod, chromedp")
	fs.StringVar(&f.path, "browser", "", "Chrome binary path")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (containers, CI)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.dataURI, "data-uri", false, "print a data URI instead of writing a file")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addImageFlags(fs, &f.image)
	addRenderFlags(fs, &f.render)
	addBrowserFlags(fs, &f.browser)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
// main needs it before flags are parsed.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}
