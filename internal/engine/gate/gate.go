// Package gate implements the commit gate that runs as the pre-commit hook:
// it asks the formatter for the staged formatting patch and lets the user
// apply it, commit anyway, or cancel.
package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/irahardianto/formatgate/internal/engine/config"
	"github.com/irahardianto/formatgate/internal/engine/format"
	"github.com/irahardianto/formatgate/internal/engine/patch"
	"github.com/irahardianto/formatgate/internal/platform/logger"
	"github.com/irahardianto/formatgate/internal/platform/ui"
)

// Errors returned by Run. Callers match them with errors.Is.
var (
	ErrNotInvokedAsHook       = errors.New("not invoked as a git pre-commit hook")
	ErrRejectedNonInteractive = errors.New("commit rejected: staged changes are not formatted correctly")
	ErrCommitCancelled        = errors.New("commit cancelled")
	ErrTerminal               = errors.New("terminal input failed")
)

// State is the position of the gate in its decision flow.
type State int

const (
	Computing State = iota
	Clean
	DirtyNonInteractive
	DirtyInteractive
	Resolving
	Applied
	Forced
	Cancelled
)

func (s State) String() string {
	switch s {
	case Computing:
		return "computing"
	case Clean:
		return "clean"
	case DirtyNonInteractive:
		return "dirty-non-interactive"
	case DirtyInteractive:
		return "dirty-interactive"
	case Resolving:
		return "resolving"
	case Applied:
		return "applied"
	case Forced:
		return "forced"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// hookMarkers are set by git for the processes it runs as hooks.
var hookMarkers = []string{"GIT_INDEX_FILE", "GIT_EXEC_PATH"}

// RequireHookContext fails with ErrNotInvokedAsHook unless one of the hook
// markers is present and non-empty.
func RequireHookContext(getenv func(string) string) error {
	for _, key := range hookMarkers {
		if getenv(key) != "" {
			return nil
		}
	}
	return ErrNotInvokedAsHook
}

// IndexApplier applies a patch file to the index.
type IndexApplier interface {
	ApplyCached(ctx context.Context, patchFile string) error
}

// Gate is one run of the commit gate. All collaborators are injected.
type Gate struct {
	Settings  config.Settings
	Index     IndexApplier
	Formatter format.Formatter
	Colorizer format.Colorizer
	Patcher   format.Patcher

	// OpenTerminal opens the device answers are read from.
	OpenTerminal func(path string) (io.ReadCloser, error)
	Getenv       func(string) string

	Stdout io.Writer
	Stderr io.Writer
	Styles *ui.Styles

	// TempDir holds the temporary patch file. Empty means os.TempDir().
	TempDir string
}

// OpenTTY opens path for reading.
func OpenTTY(path string) (io.ReadCloser, error) {
	return os.Open(path) // #nosec G304 -- terminal device chosen by the user
}

// Run executes the gate. A nil error means the commit may proceed; the
// returned State tells how the run ended.
func (g *Gate) Run(ctx context.Context) (State, error) {
	log := logger.FromContext(ctx)

	if err := RequireHookContext(g.Getenv); err != nil {
		fmt.Fprint(g.Stderr, HookGuidance())
		return Computing, err
	}
	if err := g.Formatter.Check(); err != nil {
		return Computing, err
	}

	log.Debug("computing formatting patch", "style", g.Settings.Style)
	p, err := g.Formatter.StagedDiff(ctx, g.Settings.Style)
	if err != nil {
		return Computing, err
	}

	if p.IsEmpty() {
		fmt.Fprintln(g.Stdout, g.Styles.Success(fmt.Sprintf("Staged changes are formatted correctly (style %s).", g.Settings.Style)))
		log.Info("staged changes are clean")
		return Clean, nil
	}

	log.Info("staged changes need formatting", "files", p.Paths(), "interactive", g.Settings.Interactive)
	if !g.Settings.Interactive {
		fmt.Fprint(g.Stderr, g.rejectionGuidance(p))
		return DirtyNonInteractive, ErrRejectedNonInteractive
	}

	return g.resolve(ctx, p)
}

// resolve shows the patch and prompts until the user settles on an answer.
func (g *Gate) resolve(ctx context.Context, p patch.Patch) (State, error) {
	log := logger.FromContext(ctx)

	patchFile, err := g.writePatch(p)
	if err != nil {
		return DirtyInteractive, err
	}
	defer func() {
		if rmErr := os.Remove(patchFile); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("removing temporary patch", "path", patchFile, "error", rmErr)
		}
	}()

	tty, err := g.OpenTerminal(g.Settings.TTYPath)
	if err != nil {
		return DirtyInteractive, fmt.Errorf("%w: opening %s: %w", ErrTerminal, g.Settings.TTYPath, err)
	}
	defer func() { _ = tty.Close() }()
	in := newPrompter(tty)

	fmt.Fprintln(g.Stdout, g.Styles.Bold(fmt.Sprintf("The staged changes do not match the formatting style %q.", g.Settings.Style)))
	fmt.Fprintln(g.Stdout, "The formatter suggests these changes:")
	fmt.Fprintln(g.Stdout)
	fmt.Fprint(g.Stdout, ensureNewline(g.Colorizer.Colorize(ctx, p.Raw)))
	fmt.Fprintln(g.Stdout)

	for {
		fmt.Fprint(g.Stdout, g.Styles.Bold(promptText))
		answer, err := in.readLine(ctx)
		if err != nil {
			fmt.Fprintln(g.Stdout)
			return Resolving, err
		}

		switch strings.TrimSpace(answer) {
		case "a", "A":
			return g.apply(ctx, patchFile)
		case "f", "F":
			fmt.Fprintln(g.Stdout, g.Styles.Warning(forceWarning))
			if _, err := in.readLine(ctx); err != nil {
				fmt.Fprintln(g.Stdout)
				return Resolving, err
			}
			log.Info("commit forced without formatting")
			return Forced, nil
		case "c", "C":
			return Cancelled, ErrCommitCancelled
		case "?":
			fmt.Fprint(g.Stdout, helpText)
		default:
			fmt.Fprintln(g.Stdout, g.Styles.Error(fmt.Sprintf("Invalid answer %q.", strings.TrimSpace(answer)))+" Type ? for help.")
		}
	}
}

// apply patches the working tree first, then the index. The working tree
// goes first so a patch that does not apply leaves both untouched.
func (g *Gate) apply(ctx context.Context, patchFile string) (State, error) {
	log := logger.FromContext(ctx)

	if err := g.Patcher.Apply(ctx, g.Settings.WorkTree, patchFile); err != nil {
		return Resolving, fmt.Errorf("working tree and index are unchanged: %w", err)
	}
	log.Debug("formatting applied to working tree")

	if err := g.Index.ApplyCached(ctx, patchFile); err != nil {
		return Resolving, fmt.Errorf("the working tree was formatted but the index was not, stage the files again before committing: %w", err)
	}

	fmt.Fprintln(g.Stdout, g.Styles.Success("Formatting applied to the working tree and the index."))
	log.Info("formatting applied")
	return Applied, nil
}

// writePatch stores the patch in a temporary file for the patch tools.
func (g *Gate) writePatch(p patch.Patch) (string, error) {
	f, err := os.CreateTemp(g.TempDir, "formatgate-*.patch")
	if err != nil {
		return "", fmt.Errorf("creating temporary patch: %w", err)
	}
	if _, err := f.WriteString(ensureNewline(p.Raw)); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing temporary patch: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing temporary patch: %w", err)
	}
	return f.Name(), nil
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
