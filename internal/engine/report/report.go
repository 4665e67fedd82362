// Package report renders the outcome of a staged formatting check for the
// CLI, JSON consumers and SARIF-aware CI systems.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/irahardianto/formatgate/internal/engine/patch"
)

// ErrUnknownFormat is returned by New for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown report format")

// Finding is one region of a staged file that deviates from the style.
// Lines refer to the staged content.
type Finding struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Added     int    `json:"added"`
	Removed   int    `json:"removed"`
}

// Result holds the outcome of one check.
type Result struct {
	Style      string    `json:"style"`
	Clean      bool      `json:"clean"`
	DurationMs int64     `json:"duration_ms"`
	Files      []string  `json:"files,omitempty"`
	Findings   []Finding `json:"findings,omitempty"`
	FixCommand string    `json:"fix_command,omitempty"`
	Diff       string    `json:"-"`
}

// FromPatch builds a Result with one finding per hunk of p.
func FromPatch(p patch.Patch, style, fixCommand string, elapsed time.Duration) Result {
	r := Result{
		Style:      style,
		Clean:      p.IsEmpty(),
		DurationMs: elapsed.Milliseconds(),
		Files:      p.Paths(),
		Diff:       p.Raw,
	}
	if r.Clean {
		return r
	}

	r.FixCommand = fixCommand
	for _, f := range p.Files {
		for _, h := range f.Hunks {
			end := h.OldStart + h.OldLines - 1
			if end < h.OldStart {
				end = h.OldStart
			}
			r.Findings = append(r.Findings, Finding{
				File:      f.Path,
				StartLine: h.OldStart,
				EndLine:   end,
				Added:     h.Added,
				Removed:   h.Removed,
			})
		}
	}
	return r
}

// Formatter formats a Result into a human-readable or machine-readable string.
type Formatter interface {
	Format(result Result) string
}

// Formats lists the names accepted by New.
var Formats = []string{"text", "json", "sarif"}

// New returns the formatter registered under name.
func New(name string, color, verbose bool) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(color, verbose), nil
	case "json":
		return NewJSONFormatter(), nil
	case "sarif":
		return NewSARIFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w %q (expected one of %v)", ErrUnknownFormat, name, Formats)
	}
}
