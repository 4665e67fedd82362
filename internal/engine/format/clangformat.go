package format

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/irahardianto/formatgate/internal/engine/patch"
	"github.com/irahardianto/formatgate/internal/platform/logger"
)

// Formatter computes the formatting patch for the staged changes.
type Formatter interface {
	// Check verifies the formatter can be executed.
	Check() error
	// StagedDiff returns the patch that would format the staged content.
	StagedDiff(ctx context.Context, style string) (patch.Patch, error)
	// FixCommand is the shell command a user runs to format staged files.
	FixCommand(style string) string
}

// ClangFormat runs git-clang-format (or a compatible wrapper) against the index.
type ClangFormat struct {
	// Binary is the formatter executable, looked up in PATH when not absolute.
	Binary string
	// Dir is the directory the formatter runs in.
	Dir string

	lookPath func(string) (string, error)
}

// NewClangFormat creates a ClangFormat for binary running in dir.
func NewClangFormat(binary, dir string) *ClangFormat {
	return &ClangFormat{Binary: binary, Dir: dir, lookPath: exec.LookPath}
}

// Check fails with ErrFormatterMissing when the binary is absent or not executable.
func (c *ClangFormat) Check() error {
	if _, err := c.lookPath(c.Binary); err != nil {
		return fmt.Errorf("%w: %s is not installed or not executable: %w", ErrFormatterMissing, c.Binary, err)
	}
	return nil
}

// StagedDiff runs `<binary> --diff --staged --style=<style>`.
//
// git-clang-format exits 1 whenever it prints a diff, so a non-zero exit is
// only a failure when the output carries no diff.
func (c *ClangFormat) StagedDiff(ctx context.Context, style string) (patch.Patch, error) {
	log := logger.FromContext(ctx)
	args := []string{"--diff", "--staged", "--style=" + style}
	log.Debug("running formatter", "binary", c.Binary, "args", args)

	out, err := run(ctx, c.Dir, nil, c.Binary, args...)
	p := patch.Parse(out)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 && !p.IsEmpty() {
			log.Debug("formatter reported a diff", "exit_code", cmdErr.ExitCode, "files", len(p.Files))
			return p, nil
		}
		return patch.Patch{}, fmt.Errorf("%w: %w", ErrFormatterFailed, err)
	}

	log.Debug("formatter finished", "files", len(p.Files))
	return p, nil
}

// FixCommand returns the command that formats the staged files in place.
func (c *ClangFormat) FixCommand(style string) string {
	return fmt.Sprintf("%s --staged --style=%s", c.Binary, style)
}
