package mdsource

import (
	"regexp"
	"strings"
)

// Placeholders use Unicode Private Use Area characters. Goldmark passes
// them through unchanged, so no raw HTML has to be enabled.
const (
	markStartPlaceholder = "\uE000" // U+E000
	markEndPlaceholder   = "\uE001" // U+E001
	pageBreakPlaceholder = "\uE002" // U+E002
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
	pageBreakLine      = regexp.MustCompile(`^\s*(\\pagebreak|<!--\s*pagebreak\s*-->)\s*$`)
	fenceLine          = regexp.MustCompile("^\\s*(```|~~~)")
)

// Preprocess normalizes line endings, then rewrites highlight and page-break
// directives outside fenced code blocks to placeholders.
func Preprocess(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")

	lines := strings.Split(content, "\n")
	var fence string
	for i, line := range lines {
		if m := fenceLine.FindStringSubmatch(line); m != nil {
			switch fence {
			case "":
				fence = m[1]
			case m[1]:
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		if pageBreakLine.MatchString(line) {
			// Blank lines on both sides make the marker its own paragraph.
			lines[i] = "\n" + pageBreakPlaceholder + "\n"
			continue
		}
		lines[i] = highlightPattern.ReplaceAllString(line, markStartPlaceholder+"$1"+markEndPlaceholder)
	}

	return multipleBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}
