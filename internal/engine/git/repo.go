package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/irahardianto/formatgate/internal/platform/logger"
)

// ResolveRepoRoot returns the repository root that owns the hooks directory.
//
// Inside a submodule, .git is a file pointing elsewhere, so the search moves
// to the parent directory and asks git again until it reaches a top-level
// whose .git is a directory.
func (s *ExecService) ResolveRepoRoot(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	dir := s.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	for {
		out, err := s.runGitIn(ctx, dir, "rev-parse", "--show-toplevel")
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrNotARepository, dir, err)
		}

		top := strings.TrimSpace(out)
		if top == "" {
			return "", fmt.Errorf("%w: %s", ErrNotARepository, dir)
		}

		info, err := os.Stat(filepath.Join(top, ".git"))
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrNotARepository, top, err)
		}
		if info.IsDir() {
			log.Debug("resolved repository root", "root", top)
			return top, nil
		}

		log.Debug("skipping submodule work tree", "path", top)
		parent := filepath.Dir(top)
		if parent == top {
			return "", fmt.Errorf("%w: no enclosing repository above %s", ErrNotARepository, top)
		}
		dir = parent
	}
}
