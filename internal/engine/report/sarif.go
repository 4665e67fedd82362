package report

import (
	"bytes"
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

const (
	sarifToolName = "formatgate"
	sarifToolURI  = "https://github.com/irahardianto/formatgate"
	sarifRuleID   = "format"
)

// SARIFFormatter outputs a Result as a SARIF 2.1.0 log with one warning
// per finding.
type SARIFFormatter struct{}

// NewSARIFFormatter creates a new SARIFFormatter.
func NewSARIFFormatter() *SARIFFormatter {
	return &SARIFFormatter{}
}

// Format returns the Result as an indented SARIF document.
func (f *SARIFFormatter) Format(result Result) string {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifToolURI)
	run.AddRule(sarifRuleID).
		WithDescription("Staged content does not match the configured clang-format style.").
		WithTextHelp("Run the formatter on the staged files and stage the result.")

	for _, fd := range result.Findings {
		msg := fmt.Sprintf("Lines %d-%d do not match style %q (+%d -%d).", fd.StartLine, fd.EndLine, result.Style, fd.Added, fd.Removed)
		if result.FixCommand != "" {
			msg += " Fix with: " + result.FixCommand
		}

		run.CreateResultForRule(sarifRuleID).
			WithLevel("warning").
			WithMessage(sarif.NewTextMessage(msg)).
			AddLocation(sarif.NewLocationWithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(fd.File)).
					WithRegion(sarif.NewSimpleRegion(fd.StartLine, fd.EndLine)),
			))
	}

	report.AddRun(run)

	var buf bytes.Buffer
	if err := report.PrettyWrite(&buf); err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return buf.String()
}
