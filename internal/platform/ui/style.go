// Package ui provides terminal text styles for user-facing hook output.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Standard color definitions.
var (
	red    = lipgloss.Color("#f38ba8")
	green  = lipgloss.Color("#a6e3a1")
	yellow = lipgloss.Color("#f9e2af")
)

// Styles renders text for a single writer. Styling is decided by the
// renderer's terminal detection and never changes the text itself.
type Styles struct {
	bold    lipgloss.Style
	italic  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

// New creates Styles bound to w. When noColor is true, or w is not a
// terminal, all styles render plain text.
func New(w io.Writer, noColor bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		bold:    r.NewStyle().Bold(true),
		italic:  r.NewStyle().Italic(true),
		success: r.NewStyle().Foreground(green),
		warning: r.NewStyle().Foreground(yellow).Bold(true),
		failure: r.NewStyle().Foreground(red).Bold(true),
	}
}

// Plain returns Styles that never emit escape sequences.
func Plain() *Styles {
	return New(io.Discard, true)
}

func (s *Styles) Bold(text string) string    { return s.bold.Render(text) }
func (s *Styles) Italic(text string) string  { return s.italic.Render(text) }
func (s *Styles) Success(text string) string { return s.success.Render(text) }
func (s *Styles) Warning(text string) string { return s.warning.Render(text) }
func (s *Styles) Error(text string) string   { return s.failure.Render(text) }
