package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/irahardianto/formatgate/internal/engine/format"
	"github.com/irahardianto/formatgate/internal/engine/patch"
	"github.com/spf13/cobra"
)

const dirtyDiff = `diff --git a/src/main.c b/src/main.c
--- a/src/main.c
+++ b/src/main.c
@@ -1,3 +1,3 @@
 int main() {
-int x=1;
+  int x = 1;
 }
`

// executeCommand runs the CLI with fresh flag state and captured output.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	flagVerbose, flagNoColor, flagJSON, flagFormat = false, false, false, "text"
	resetHelpFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err = Execute(context.Background(), args)
	return out.String(), errOut.String(), err
}

// resetHelpFlags clears --help left set by an earlier run.
func resetHelpFlags(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
	}
	for _, c := range cmd.Commands() {
		resetHelpFlags(c)
	}
}

// withEnv replaces the process environment seen by the commands.
func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := getenv
	getenv = func(key string) string { return env[key] }
	t.Cleanup(func() { getenv = orig })
}

var hookMarkers = map[string]string{"GIT_INDEX_FILE": ".git/index"}

func withWorkDir(t *testing.T, dir string) {
	t.Helper()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
}

func withFormatter(t *testing.T, f format.Formatter) {
	t.Helper()
	orig := newFormatter
	newFormatter = func(string, string) format.Formatter { return f }
	t.Cleanup(func() { newFormatter = orig })
}

func withTerminal(t *testing.T, input string) *bool {
	t.Helper()
	opened := false
	orig := openTerminal
	openTerminal = func(string) (io.ReadCloser, error) {
		opened = true
		return io.NopCloser(strings.NewReader(input)), nil
	}
	t.Cleanup(func() { openTerminal = orig })
	return &opened
}

// setupGitRepo creates a temporary git repository with an isolated HOME and
// makes it the working directory of the commands.
func setupGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	t.Setenv("HOME", t.TempDir())

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	run(t, dir, "git", "init", "-q")
	run(t, dir, "git", "config", "user.email", "test@test.com")
	run(t, dir, "git", "config", "user.name", "Test")

	withWorkDir(t, dir)
	return dir
}

// run executes a command in the given directory and fails the test on error.
func run(t *testing.T, dir, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %s failed: %v\n%s", name, strings.Join(args, " "), err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

// stubFormatter returns a fixed diff and records the style it was asked for.
type stubFormatter struct {
	diff     string
	checkErr error
	style    string
}

func (s *stubFormatter) Check() error { return s.checkErr }

func (s *stubFormatter) StagedDiff(_ context.Context, style string) (patch.Patch, error) {
	s.style = style
	return patch.Parse(s.diff), nil
}

func (s *stubFormatter) FixCommand(style string) string {
	return "git-clang-format --staged --style=" + style
}

func assertContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, output)
	}
}
