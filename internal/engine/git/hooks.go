package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/irahardianto/formatgate/internal/platform/logger"
)

const hookName = "pre-commit"

// HookPath returns <root>/.git/hooks/pre-commit for the resolved repository root.
func (s *ExecService) HookPath(ctx context.Context) (string, error) {
	root, err := s.ResolveRepoRoot(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ".git", "hooks", hookName), nil
}

// HookStatus reports whether the pre-commit hook is absent, ours, or foreign.
func (s *ExecService) HookStatus(ctx context.Context) (HookStatus, error) {
	hookPath, err := s.HookPath(ctx)
	if err != nil {
		return HookAbsent, err
	}
	return s.statusAt(hookPath)
}

// InstallHook creates a relative symlink from the pre-commit hook to the
// executable. The link is attempted first; the existing hook is inspected
// only to explain why it could not be created.
func (s *ExecService) InstallHook(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("installing pre-commit hook")

	hookPath, err := s.HookPath(ctx)
	if err != nil {
		return err
	}

	self, err := s.executable()
	if err != nil {
		return err
	}

	// Create hooks directory if it doesn't exist.
	hooksDir := filepath.Dir(hookPath)
	if err := os.MkdirAll(hooksDir, 0o750); err != nil {
		return fmt.Errorf("%w: creating hooks directory: %w", ErrSymlinkFailed, err)
	}

	// Relative links are resolved against the physical directory.
	physicalDir, err := canonical(hooksDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSymlinkFailed, err)
	}
	target, err := filepath.Rel(physicalDir, self)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSymlinkFailed, err)
	}

	if linkErr := os.Symlink(target, hookPath); linkErr != nil {
		status, statusErr := s.statusAt(hookPath)
		switch {
		case statusErr != nil:
			return errors.Join(fmt.Errorf("%w: %w", ErrSymlinkFailed, linkErr), statusErr)
		case status == HookInstalled:
			return fmt.Errorf("%w at %s", ErrAlreadyInstalled, hookPath)
		case status == HookForeign:
			return fmt.Errorf("%w at %s", ErrForeignHook, hookPath)
		default:
			return fmt.Errorf("%w: %w", ErrSymlinkFailed, linkErr)
		}
	}

	log.Info("pre-commit hook installed", "path", hookPath, "target", target)
	return nil
}

// RemoveHook removes the pre-commit hook only when it links to this executable.
// A foreign hook is left untouched.
func (s *ExecService) RemoveHook(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("removing pre-commit hook")

	hookPath, err := s.HookPath(ctx)
	if err != nil {
		return err
	}

	status, err := s.statusAt(hookPath)
	if err != nil {
		return err
	}

	switch status {
	case HookAbsent:
		return ErrNothingToUninstall
	case HookForeign:
		return fmt.Errorf("%w at %s, leaving it in place", ErrForeignHook, hookPath)
	}

	if err := os.Remove(hookPath); err != nil {
		return fmt.Errorf("removing hook: %w", err)
	}

	log.Info("pre-commit hook removed", "path", hookPath)
	return nil
}

// statusAt classifies the entry at hookPath. A dangling link counts as foreign.
func (s *ExecService) statusAt(hookPath string) (HookStatus, error) {
	if _, err := os.Lstat(hookPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return HookAbsent, nil
		}
		return HookAbsent, fmt.Errorf("inspecting hook: %w", err)
	}

	self, err := s.executable()
	if err != nil {
		return HookAbsent, err
	}

	target, err := canonical(hookPath)
	if err != nil {
		return HookForeign, nil
	}
	if target == self {
		return HookInstalled, nil
	}
	return HookForeign, nil
}
