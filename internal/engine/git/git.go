// Package git abstracts the git operations formatgate needs: locating the
// repository, managing the pre-commit hook, reading config and applying
// patches to the index.
package git

import (
	"context"
	"errors"
)

// Errors reported by Service implementations. Callers match them with errors.Is.
var (
	ErrNotARepository     = errors.New("not a git repository")
	ErrAlreadyInstalled   = errors.New("the pre-commit hook is already installed")
	ErrForeignHook        = errors.New("a different pre-commit hook is already installed")
	ErrSymlinkFailed      = errors.New("could not create the pre-commit hook symlink")
	ErrNothingToUninstall = errors.New("no pre-commit hook is installed")
	ErrStagedApplyFailed  = errors.New("the patch could not be applied to the staged changes")
)

// HookStatus describes who owns the pre-commit hook path.
type HookStatus int

const (
	// HookAbsent means no pre-commit hook exists.
	HookAbsent HookStatus = iota
	// HookInstalled means the hook resolves to this executable.
	HookInstalled
	// HookForeign means something else occupies the hook path.
	HookForeign
)

func (s HookStatus) String() string {
	switch s {
	case HookAbsent:
		return "not installed"
	case HookInstalled:
		return "installed"
	case HookForeign:
		return "installed by another tool"
	default:
		return "unknown"
	}
}

// Service abstracts git operations for testability.
type Service interface {
	// ResolveRepoRoot returns the top-level directory whose .git is a real
	// directory, walking out of submodules.
	ResolveRepoRoot(ctx context.Context) (string, error)
	// TopLevel returns the top-level directory of the current work tree.
	TopLevel(ctx context.Context) (string, error)

	// HookPath returns the path of the pre-commit hook.
	HookPath(ctx context.Context) (string, error)
	// HookStatus reports who owns the pre-commit hook.
	HookStatus(ctx context.Context) (HookStatus, error)
	// InstallHook links the pre-commit hook to this executable.
	InstallHook(ctx context.Context) error
	// RemoveHook removes the pre-commit hook if it is ours.
	RemoveHook(ctx context.Context) error

	// ConfigValue returns a git config value and whether it was set.
	ConfigValue(ctx context.Context, key string) (string, bool, error)
	// ConfigBool returns a boolean git config value, or def when unset.
	ConfigBool(ctx context.Context, key string, def bool) (bool, error)

	// ApplyCached applies the patch file to the index only.
	ApplyCached(ctx context.Context, patchFile string) error
}
