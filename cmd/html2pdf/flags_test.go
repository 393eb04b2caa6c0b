package main

// Notes:
// - parseConvertFlags: short and long forms, slice parsing for --margin,
//   interleaved positionals and help handling.
// - hasVerboseFlag: detection before full parsing, stopping at "--".
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("short forms and positionals", func(t *testing.T) {
		t.Parallel()
		f, args := mustParseFlags(t, "a.html", "-o", "out", "-w", "2", "-f", "a5", "-u", "pt", "-e", "rod", "-t", "5s", "-q", "b.md")

		if f.output != "out" || f.workers != 2 || f.page.format != "a5" || f.page.unit != "pt" {
			t.Errorf("flags = %+v", f)
		}
		if f.browser.engine != "rod" || f.browser.timeout != "5s" || !f.common.quiet {
			t.Errorf("browser/common = %+v %+v", f.browser, f.common)
		}
		if len(args) != 2 || args[0] != "a.html" || args[1] != "b.md" {
			t.Errorf("args = %v, want [a.html b.md]", args)
		}
	})

	t.Run("margin list", func(t *testing.T) {
		t.Parallel()
		f, _ := mustParseFlags(t, "--margin", "1.5,2")
		if len(f.page.margin) != 2 || f.page.margin[0] != 1.5 || f.page.margin[1] != 2 {
			t.Errorf("margin = %v, want [1.5 2]", f.page.margin)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		_, _, err := parseConvertFlags([]string{"-h"}, &buf)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want ErrHelp", err)
		}
		assertContains(t, buf.String(), "Usage: html2pdf convert")
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		if _, _, err := parseConvertFlags([]string{"--scale", "big"}, &bytes.Buffer{}); err == nil {
			t.Error("expected error for non-numeric --scale")
		}
	})
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Early verbose detection
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"html2pdf", "convert", "-v", "a.html"}, true},
		{[]string{"html2pdf", "convert", "--verbose"}, true},
		{[]string{"html2pdf", "convert", "a.html"}, false},
		{[]string{"html2pdf", "convert", "--", "-v"}, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
