package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/irahardianto/formatgate/internal/platform/logger"
)

// ExecService implements Service by running git commands via os/exec.
type ExecService struct {
	// WorkDir is the working directory for git commands.
	// If empty, the current directory is used.
	WorkDir string

	// Executable is the path the pre-commit hook links to.
	// If empty, the running binary (os.Executable) is used.
	Executable string
}

// NewExecService creates a new ExecService with the given working directory.
func NewExecService(workDir string) *ExecService {
	return &ExecService{WorkDir: workDir}
}

// CommandError reports a failed git invocation. The captured stderr is kept
// for diagnostics only; callers branch on ExitCode or the wrapped error.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += " (stderr: " + stderr + ")"
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// TopLevel returns the top-level directory of the current work tree.
func (s *ExecService) TopLevel(ctx context.Context) (string, error) {
	out, err := s.runGit(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotARepository, err)
	}

	top := strings.TrimSpace(out)
	if top == "" {
		return "", ErrNotARepository
	}
	return top, nil
}

// ApplyCached applies the patch file to the index with `git apply --cached`.
func (s *ExecService) ApplyCached(ctx context.Context, patchFile string) error {
	logger.FromContext(ctx).Debug("applying patch to index", "patch", patchFile)

	if _, err := s.runGit(ctx, "apply", "--cached", patchFile); err != nil {
		return fmt.Errorf("%w: %w", ErrStagedApplyFailed, err)
	}
	return nil
}

// executable returns the canonical absolute path of the hook target.
func (s *ExecService) executable() (string, error) {
	path := s.Executable
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("locating executable: %w", err)
		}
		path = exe
	}
	return canonical(path)
}

// canonical resolves every symlink in path and makes it absolute.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// runGit executes a git command in WorkDir and returns its stdout.
func (s *ExecService) runGit(ctx context.Context, args ...string) (string, error) {
	return s.runGitIn(ctx, s.WorkDir, args...)
}

// runGitIn executes a git command in dir and returns its stdout.
func (s *ExecService) runGitIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 -- args are controlled by the application, not user input
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return "", &CommandError{Args: args, ExitCode: code, Stderr: stderr.String(), Err: err}
	}

	return stdout.String(), nil
}
