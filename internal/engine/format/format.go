// Package format wraps the external programs the commit gate drives: the
// diff-producing formatter, the optional diff colorizer, and the patch tool
// that updates the working tree.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Errors reported by this package. Callers match them with errors.Is.
var (
	ErrFormatterMissing = errors.New("formatter not found")
	ErrFormatterFailed  = errors.New("formatter failed")
	ErrPatchApplyFailed = errors.New("the patch could not be applied to the working tree")
)

// CommandError reports a failed external command. Output is kept as
// diagnostic context.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// run executes name with args in dir, feeding stdin when non-nil, and
// returns stdout. On failure the error is a *CommandError carrying stderr
// (and stdout, which some tools use for diagnostics).
func run(ctx context.Context, dir string, stdin io.Reader, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binaries come from the user's own configuration
	cmd.Dir = dir
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return stdout.String(), &CommandError{
			Name:     name,
			Args:     args,
			ExitCode: code,
			Output:   strings.TrimSpace(stderr.String() + "\n" + stdout.String()),
			Err:      err,
		}
	}

	return stdout.String(), nil
}

var (
	_ Formatter = (*ClangFormat)(nil)
	_ Colorizer = (*ExternalColorizer)(nil)
	_ Patcher   = (*ExternalPatcher)(nil)
)
