package gate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/irahardianto/formatgate/internal/engine/config"
	"github.com/irahardianto/formatgate/internal/engine/format"
	"github.com/irahardianto/formatgate/internal/engine/git"
	"github.com/irahardianto/formatgate/internal/platform/ui"
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

type testGate struct {
	*Gate
	formatter *mockFormatter
	patcher   *mockPatcher
	index     *git.MockService
	terminal  *fakeTerminal
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
}

func newTestGate(t *testing.T, diff string, interactive bool, input string) *testGate {
	t.Helper()

	tg := &testGate{
		formatter: &mockFormatter{Diff: diff},
		patcher:   &mockPatcher{},
		index:     &git.MockService{},
		terminal:  &fakeTerminal{Input: strings.NewReader(input)},
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
	}
	tg.Gate = &Gate{
		Settings: config.Settings{
			WorkTree:    "/repo",
			Style:       config.DefaultStyle,
			Interactive: interactive,
			TTYPath:     config.DefaultTTY,
		},
		Index:        tg.index,
		Formatter:    tg.formatter,
		Colorizer:    prefixColorizer{},
		Patcher:      tg.patcher,
		OpenTerminal: tg.terminal.Open,
		Getenv:       hookEnv,
		Stdout:       tg.stdout,
		Stderr:       tg.stderr,
		Styles:       ui.Plain(),
		TempDir:      t.TempDir(),
	}
	return tg
}

// assertNoTempFiles checks that the temporary patch was removed.
func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected temporary patch to be removed, found %d file(s)", len(entries))
	}
}

func TestRequireHookContext(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "no markers", env: nil, wantErr: true},
		{name: "empty markers", env: map[string]string{"GIT_INDEX_FILE": "", "GIT_EXEC_PATH": ""}, wantErr: true},
		{name: "index file", env: map[string]string{"GIT_INDEX_FILE": ".git/index"}},
		{name: "exec path", env: map[string]string{"GIT_EXEC_PATH": "/usr/lib/git-core"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireHookContext(envMap(tt.env))
			if tt.wantErr != (err != nil) {
				t.Fatalf("RequireHookContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrNotInvokedAsHook) {
				t.Errorf("expected ErrNotInvokedAsHook, got %v", err)
			}
		})
	}
}

func TestRun_NotInvokedAsHook(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "a\n")
	tg.Getenv = envMap(nil)

	state, err := tg.Run(context.Background())
	if !errors.Is(err, ErrNotInvokedAsHook) {
		t.Fatalf("expected ErrNotInvokedAsHook, got %v", err)
	}
	if state != Computing {
		t.Errorf("expected state computing, got %s", state)
	}
	if tg.formatter.Calls != 0 {
		t.Error("formatter should not run outside a hook")
	}
	if !strings.Contains(tg.stderr.String(), "formatgate install") {
		t.Errorf("expected install guidance on stderr, got %q", tg.stderr.String())
	}
}

func TestRun_FormatterMissing(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "a\n")
	tg.formatter.CheckErr = format.ErrFormatterMissing

	if _, err := tg.Run(context.Background()); !errors.Is(err, format.ErrFormatterMissing) {
		t.Fatalf("expected ErrFormatterMissing, got %v", err)
	}
	if tg.formatter.Calls != 0 {
		t.Error("formatter should not run when missing")
	}
}

func TestRun_FormatterFailed(t *testing.T) {
	tg := newTestGate(t, "", true, "")
	tg.formatter.DiffErr = format.ErrFormatterFailed

	state, err := tg.Run(context.Background())
	if !errors.Is(err, format.ErrFormatterFailed) {
		t.Fatalf("expected ErrFormatterFailed, got %v", err)
	}
	if state != Computing {
		t.Errorf("expected state computing, got %s", state)
	}
	if tg.terminal.Opened {
		t.Error("terminal should not be opened")
	}
}

func TestRun_Clean(t *testing.T) {
	tg := newTestGate(t, "no modified files to format\n", true, "")
	tg.Settings.Style = "Google"

	state, err := tg.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != Clean {
		t.Errorf("expected state clean, got %s", state)
	}
	if tg.formatter.Style != "Google" {
		t.Errorf("formatter received style %q", tg.formatter.Style)
	}
	if !strings.Contains(tg.stdout.String(), "formatted correctly") {
		t.Errorf("expected confirmation, got %q", tg.stdout.String())
	}
	if tg.terminal.Opened {
		t.Error("terminal should not be opened for a clean patch")
	}
}

func TestRun_DirtyNonInteractive(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, false, "a\n")

	state, err := tg.Run(context.Background())
	if !errors.Is(err, ErrRejectedNonInteractive) {
		t.Fatalf("expected ErrRejectedNonInteractive, got %v", err)
	}
	if state != DirtyNonInteractive {
		t.Errorf("expected state dirty-non-interactive, got %s", state)
	}
	if tg.terminal.Opened {
		t.Error("terminal must not be touched in non-interactive mode")
	}
	if tg.patcher.Calls != 0 || len(tg.index.AppliedFiles) != 0 {
		t.Error("nothing should be applied in non-interactive mode")
	}

	stderr := tg.stderr.String()
	for _, want := range []string{
		"git-clang-format --staged --style=file",
		"git add src/main.c",
		"git config formatgate.interactive true",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if strings.Contains(stderr, "force") || strings.Contains(tg.stdout.String(), promptText) {
		t.Error("non-interactive mode must not offer the prompt")
	}
}

func TestRun_Interactive(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantState   State
		wantErr     error
		wantApplied bool
		wantOutput  string
	}{
		{name: "apply", input: "a\n", wantState: Applied, wantApplied: true, wantOutput: "Formatting applied"},
		{name: "apply upper case", input: "A\n", wantState: Applied, wantApplied: true},
		{name: "force", input: "f\n\n", wantState: Forced, wantOutput: forceWarning},
		{name: "force with any confirmation", input: "F\nwhatever\n", wantState: Forced},
		{name: "cancel", input: "c\n", wantState: Cancelled, wantErr: ErrCommitCancelled},
		{name: "cancel upper case", input: "C\n", wantState: Cancelled, wantErr: ErrCommitCancelled},
		{name: "cancel without newline", input: "c", wantState: Cancelled, wantErr: ErrCommitCancelled},
		{name: "help then cancel", input: "?\nc\n", wantState: Cancelled, wantErr: ErrCommitCancelled, wantOutput: "cancel the commit"},
		{name: "invalid then apply", input: "x\n\na\n", wantState: Applied, wantApplied: true, wantOutput: "Invalid answer"},
		{name: "surrounding spaces", input: "  a \r\n", wantState: Applied, wantApplied: true},
		{name: "end of input", input: "", wantState: Resolving, wantErr: ErrTerminal},
		{name: "end of input after help", input: "?\n", wantState: Resolving, wantErr: ErrTerminal},
		{name: "end of input before confirmation", input: "f\n", wantState: Resolving, wantErr: ErrTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestGate(t, dirtyDiff, true, tt.input)

			state, err := tg.Run(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state != tt.wantState {
				t.Errorf("expected state %s, got %s", tt.wantState, state)
			}

			applied := tg.patcher.Calls > 0
			if applied != tt.wantApplied {
				t.Errorf("working tree applied = %v, want %v", applied, tt.wantApplied)
			}
			if (len(tg.index.AppliedFiles) > 0) != tt.wantApplied {
				t.Errorf("index applied = %v, want %v", len(tg.index.AppliedFiles) > 0, tt.wantApplied)
			}
			if tt.wantOutput != "" && !strings.Contains(tg.stdout.String(), tt.wantOutput) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOutput, tg.stdout.String())
			}
			if !tg.terminal.Closed {
				t.Error("terminal should be closed")
			}
			assertNoTempFiles(t, tg.TempDir)
		})
	}
}

func TestRun_ShowsColorizedPatch(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "c\n")

	_, _ = tg.Run(context.Background())

	out := tg.stdout.String()
	if !strings.Contains(out, "C|+  int x = 1;") {
		t.Errorf("expected colorized diff, got:\n%s", out)
	}
	if !strings.Contains(out, promptText) {
		t.Error("expected prompt")
	}
	if tg.terminal.Path != config.DefaultTTY {
		t.Errorf("expected terminal %s, got %s", config.DefaultTTY, tg.terminal.Path)
	}
}

func TestRun_ApplyUsesPatchAndWorkTree(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "a\n")

	if _, err := tg.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tg.patcher.Dir != "/repo" {
		t.Errorf("patch applied in %q, want /repo", tg.patcher.Dir)
	}
	if tg.patcher.Content != dirtyDiff {
		t.Errorf("unexpected patch content:\n%s", tg.patcher.Content)
	}
	if len(tg.index.AppliedFiles) != 1 {
		t.Fatalf("expected one index apply, got %d", len(tg.index.AppliedFiles))
	}
	if _, err := os.Stat(tg.index.AppliedFiles[0]); !os.IsNotExist(err) {
		t.Error("temporary patch should be removed after the run")
	}
}

func TestRun_WorkTreeApplyFails(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "a\n")
	tg.patcher.Err = format.ErrPatchApplyFailed

	_, err := tg.Run(context.Background())
	if !errors.Is(err, format.ErrPatchApplyFailed) {
		t.Fatalf("expected ErrPatchApplyFailed, got %v", err)
	}
	if len(tg.index.AppliedFiles) != 0 {
		t.Error("index must not be touched when the working tree apply fails")
	}
	if !strings.Contains(err.Error(), "unchanged") {
		t.Errorf("error should say nothing changed: %v", err)
	}
	assertNoTempFiles(t, tg.TempDir)
}

func TestRun_IndexApplyFails(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "a\n")
	tg.index.ApplyErr = git.ErrStagedApplyFailed

	_, err := tg.Run(context.Background())
	if !errors.Is(err, git.ErrStagedApplyFailed) {
		t.Fatalf("expected ErrStagedApplyFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "working tree was formatted") {
		t.Errorf("error should name the inconsistent state: %v", err)
	}
}

func TestRun_TerminalUnavailable(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "")
	tg.terminal.OpenErr = errors.New("no such device")

	state, err := tg.Run(context.Background())
	if !errors.Is(err, ErrTerminal) {
		t.Fatalf("expected ErrTerminal, got %v", err)
	}
	if state != DirtyInteractive {
		t.Errorf("expected state dirty-interactive, got %s", state)
	}
	assertNoTempFiles(t, tg.TempDir)
}

func TestRun_CancelledContextUnblocksPrompt(t *testing.T) {
	tg := newTestGate(t, dirtyDiff, true, "")
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	tg.terminal.Input = pr

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := tg.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if state != Resolving {
		t.Errorf("expected state resolving, got %s", state)
	}
	if tg.patcher.Calls != 0 {
		t.Error("nothing should be applied after cancellation")
	}
	assertNoTempFiles(t, tg.TempDir)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Computing, "computing"},
		{Clean, "clean"},
		{DirtyNonInteractive, "dirty-non-interactive"},
		{DirtyInteractive, "dirty-interactive"},
		{Resolving, "resolving"},
		{Applied, "applied"},
		{Forced, "forced"},
		{Cancelled, "cancelled"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"src/main.c", "src/main.c"},
		{"my file.c", "'my file.c'"},
		{"it's.c", `'it'\''s.c'`},
		{"", "''"},
	}

	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
