package git

import (
	"context"
)

// MockService is a test double for git.Service.
type MockService struct {
	Root       string
	RootErr    error
	Top        string
	TopErr     error
	Hook       string
	HookErr    error
	Status     HookStatus
	StatusErr  error
	InstallErr error
	RemoveErr  error

	// Config holds values returned by ConfigValue and ConfigBool.
	Config    map[string]string
	ConfigErr error

	ApplyErr     error
	AppliedFiles []string
}

// ResolveRepoRoot returns the configured root.
func (m *MockService) ResolveRepoRoot(_ context.Context) (string, error) {
	return m.Root, m.RootErr
}

// TopLevel returns the configured top-level directory.
func (m *MockService) TopLevel(_ context.Context) (string, error) {
	return m.Top, m.TopErr
}

// HookPath returns the configured hook path.
func (m *MockService) HookPath(_ context.Context) (string, error) {
	return m.Hook, m.HookErr
}

// HookStatus returns the configured status.
func (m *MockService) HookStatus(_ context.Context) (HookStatus, error) {
	return m.Status, m.StatusErr
}

// InstallHook returns the configured error.
func (m *MockService) InstallHook(_ context.Context) error {
	return m.InstallErr
}

// RemoveHook returns the configured error.
func (m *MockService) RemoveHook(_ context.Context) error {
	return m.RemoveErr
}

// ConfigValue looks key up in Config.
func (m *MockService) ConfigValue(_ context.Context, key string) (string, bool, error) {
	if m.ConfigErr != nil {
		return "", false, m.ConfigErr
	}
	v, ok := m.Config[key]
	return v, ok, nil
}

// ConfigBool looks key up in Config and interprets it like ExecService.
func (m *MockService) ConfigBool(_ context.Context, key string, def bool) (bool, error) {
	if m.ConfigErr != nil {
		return def, m.ConfigErr
	}
	v, ok := m.Config[key]
	if !ok {
		return def, nil
	}
	return parseBool(v), nil
}

// ApplyCached records the patch file and returns the configured error.
func (m *MockService) ApplyCached(_ context.Context, patchFile string) error {
	m.AppliedFiles = append(m.AppliedFiles, patchFile)
	return m.ApplyErr
}

var (
	_ Service = (*MockService)(nil)
	_ Service = (*ExecService)(nil)
)
