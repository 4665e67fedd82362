package report

import (
	"fmt"
	"strings"
)

// ANSI color codes.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiDim    = "\033[2m"
)

// TextFormatter outputs a Result as a human-readable CLI report.
type TextFormatter struct {
	Color   bool
	Verbose bool
}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter(color, verbose bool) *TextFormatter {
	return &TextFormatter{Color: color, Verbose: verbose}
}

// Format returns a formatted CLI report.
func (f *TextFormatter) Format(result Result) string {
	var b strings.Builder

	if result.Clean {
		b.WriteString(fmt.Sprintf("\n%s %s: staged changes are formatted correctly (style %s) in %dms\n",
			f.colorize("✅", ansiGreen),
			f.colorize("formatgate", ansiBold),
			result.Style,
			result.DurationMs))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\n%s %s: %d file(s) need formatting (style %s) in %dms\n\n",
		f.colorize("❌", ansiRed),
		f.colorize("formatgate", ansiBold),
		len(result.Files),
		result.Style,
		result.DurationMs))

	for _, file := range result.Files {
		b.WriteString(fmt.Sprintf("  %s\n", f.colorize(file, ansiBold)))
		for _, fd := range result.Findings {
			if fd.File == file {
				f.writeFinding(&b, fd)
			}
		}
	}

	if result.FixCommand != "" {
		b.WriteString(fmt.Sprintf("\n  💡 run %s and stage the result with git add\n", f.colorize(result.FixCommand, ansiCyan)))
	}

	if f.Verbose && result.Diff != "" {
		b.WriteString(fmt.Sprintf("\n    %s\n", f.colorize("--- formatter diff ---", ansiDim)))
		for _, line := range strings.Split(strings.TrimRight(result.Diff, "\n"), "\n") {
			b.WriteString(fmt.Sprintf("    %s\n", f.colorize(line, ansiDim)))
		}
	}

	return b.String()
}

func (f *TextFormatter) writeFinding(b *strings.Builder, fd Finding) {
	loc := fmt.Sprintf("%s:%d", fd.File, fd.StartLine)
	if fd.EndLine > fd.StartLine {
		loc = fmt.Sprintf("%s-%d", loc, fd.EndLine)
	}

	b.WriteString(fmt.Sprintf("    ⚠️ %s %s %s\n",
		f.colorize(loc, ansiCyan),
		f.colorize("[format]", ansiDim),
		f.colorize(fmt.Sprintf("+%d -%d", fd.Added, fd.Removed), ansiYellow)))
}

func (f *TextFormatter) colorize(s, code string) string {
	if !f.Color {
		return s
	}
	return code + s + ansiReset
}
