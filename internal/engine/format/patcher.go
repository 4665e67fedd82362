package format

import (
	"context"
	"fmt"

	"github.com/irahardianto/formatgate/internal/platform/logger"
)

// Patcher applies a patch file to the working tree.
type Patcher interface {
	Apply(ctx context.Context, dir, patchFile string) error
}

// ExternalPatcher applies patches with a patch(1) compatible tool.
type ExternalPatcher struct {
	Binary string
}

// NewExternalPatcher creates an ExternalPatcher for binary.
func NewExternalPatcher(binary string) *ExternalPatcher {
	return &ExternalPatcher{Binary: binary}
}

// Apply runs a dry run first so a patch that does not apply cleanly leaves
// the working tree untouched, then applies it for real.
func (p *ExternalPatcher) Apply(ctx context.Context, dir, patchFile string) error {
	log := logger.FromContext(ctx)
	args := []string{"-p1", "-s", "-N", "-d", dir, "-i", patchFile}

	if _, err := run(ctx, "", nil, p.Binary, append([]string{"--dry-run"}, args...)...); err != nil {
		return fmt.Errorf("%w: %w", ErrPatchApplyFailed, err)
	}
	if _, err := run(ctx, "", nil, p.Binary, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrPatchApplyFailed, err)
	}

	log.Debug("patch applied to working tree", "dir", dir)
	return nil
}
