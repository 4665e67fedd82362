package format

import (
	"context"
	"os/exec"
	"strings"

	"github.com/irahardianto/formatgate/internal/platform/logger"
)

// Colorizer highlights a diff for display.
type Colorizer interface {
	Colorize(ctx context.Context, diff string) string
}

// ExternalColorizer pipes the diff through a program such as colordiff.
// A missing or failing program is not an error: the diff is shown as is.
type ExternalColorizer struct {
	// Binary is the colorizer executable. Empty disables colorizing.
	Binary string
}

// NewExternalColorizer creates an ExternalColorizer for binary.
func NewExternalColorizer(binary string) *ExternalColorizer {
	return &ExternalColorizer{Binary: binary}
}

// Colorize returns the colorized diff, or diff unchanged.
func (c *ExternalColorizer) Colorize(ctx context.Context, diff string) string {
	if c.Binary == "" {
		return diff
	}

	log := logger.FromContext(ctx)
	if _, err := exec.LookPath(c.Binary); err != nil {
		log.Debug("colorizer not available, showing plain diff", "binary", c.Binary)
		return diff
	}

	out, err := run(ctx, "", strings.NewReader(diff), c.Binary)
	if err != nil || out == "" {
		log.Debug("colorizer failed, showing plain diff", "binary", c.Binary, "error", err)
		return diff
	}
	return out
}
