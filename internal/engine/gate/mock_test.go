package gate

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/irahardianto/formatgate/internal/engine/patch"
)

type mockFormatter struct {
	CheckErr error
	Diff     string
	DiffErr  error

	Calls int
	Style string
}

func (m *mockFormatter) Check() error { return m.CheckErr }

func (m *mockFormatter) StagedDiff(_ context.Context, style string) (patch.Patch, error) {
	m.Calls++
	m.Style = style
	if m.DiffErr != nil {
		return patch.Patch{}, m.DiffErr
	}
	return patch.Parse(m.Diff), nil
}

func (m *mockFormatter) FixCommand(style string) string {
	return "git-clang-format --staged --style=" + style
}

// prefixColorizer marks every line so tests can tell colorized output apart.
type prefixColorizer struct{}

func (prefixColorizer) Colorize(_ context.Context, diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "C|" + l
		}
	}
	return strings.Join(lines, "")
}

type mockPatcher struct {
	Err error

	Calls   int
	Dir     string
	Content string
}

// Apply records the patch file's content, which must exist at call time.
func (m *mockPatcher) Apply(_ context.Context, dir, patchFile string) error {
	m.Calls++
	m.Dir = dir
	data, err := os.ReadFile(patchFile) // #nosec G304 -- test-controlled path
	if err != nil {
		return err
	}
	m.Content = string(data)
	return m.Err
}

type fakeTerminal struct {
	Input   io.Reader
	OpenErr error

	Opened bool
	Closed bool
	Path   string
}

func (f *fakeTerminal) Open(path string) (io.ReadCloser, error) {
	f.Opened = true
	f.Path = path
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return f, nil
}

func (f *fakeTerminal) Read(p []byte) (int, error) { return f.Input.Read(p) }

func (f *fakeTerminal) Close() error {
	f.Closed = true
	if c, ok := f.Input.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

var hookEnv = envMap(map[string]string{"GIT_INDEX_FILE": ".git/index"})
