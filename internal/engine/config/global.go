// Package config loads formatgate's user-level configuration and combines it
// with repository git config into the immutable Settings used by every command.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/irahardianto/formatgate/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// Default collaborator binaries.
const (
	DefaultFormatter = "git-clang-format"
	DefaultColorizer = "colordiff"
	DefaultPatchTool = "patch"
)

// ColorizerNone disables the external colorizer.
const ColorizerNone = "none"

// Environment variables overriding the global config file.
const (
	EnvFormatter = "FORMATGATE_FORMATTER"
	EnvColorizer = "FORMATGATE_COLORIZER"
	EnvPatchTool = "FORMATGATE_PATCH"
	EnvNoColor   = "FORMATGATE_NO_COLOR"
	EnvVerbose   = "FORMATGATE_VERBOSE"
)

// GlobalConfig holds user-level settings that persist across repositories.
type GlobalConfig struct {
	Formatter     string       `yaml:"formatter"`
	Colorizer     string       `yaml:"colorizer"`
	PatchTool     string       `yaml:"patch"`
	OutputColor   bool         `yaml:"-"` // derived from Output.Color
	OutputVerbose bool         `yaml:"-"` // derived from Output.Verbose
	Output        OutputConfig `yaml:"output"`
}

// OutputConfig holds output-related user preferences.
type OutputConfig struct {
	Color   *bool `yaml:"color"`
	Verbose *bool `yaml:"verbose"`
}

// Loader handles loading configuration from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader reading environment overrides with getenv.
func NewLoader(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// LoadGlobalConfig reads ~/.config/formatgate/config.yaml.
// If the file does not exist, default values are returned (not an error).
// Environment variables override file values.
func (l *Loader) LoadGlobalConfig(ctx context.Context) (*GlobalConfig, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		// Cannot determine home directory, use defaults.
		cfg := defaultGlobalConfig()
		applyEnvOverrides(cfg, l.getenv, logger.FromContext(ctx))
		return cfg, nil
	}
	return l.LoadGlobalConfigFrom(ctx, filepath.Join(home, ".config", "formatgate", "config.yaml"))
}

// LoadGlobalConfigFrom reads user-level configuration from a specific path.
// If the file does not exist, default values are returned (not an error).
// Environment variables override file values.
func (l *Loader) LoadGlobalConfigFrom(ctx context.Context, path string) (*GlobalConfig, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading global config", "path", path)
	cfg := defaultGlobalConfig()

	data, err := l.fs.ReadFile(filepath.Clean(path))
	if err != nil {
		if l.fs.IsNotExist(err) {
			applyEnvOverrides(cfg, l.getenv, log)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing global config %s: %w", path, err)
	}

	if cfg.Formatter == "" {
		cfg.Formatter = DefaultFormatter
	}
	if cfg.PatchTool == "" {
		cfg.PatchTool = DefaultPatchTool
	}
	if cfg.Output.Color != nil {
		cfg.OutputColor = *cfg.Output.Color
	}
	if cfg.Output.Verbose != nil {
		cfg.OutputVerbose = *cfg.Output.Verbose
	}

	applyEnvOverrides(cfg, l.getenv, log)

	return cfg, nil
}

func defaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Formatter:   DefaultFormatter,
		Colorizer:   DefaultColorizer,
		PatchTool:   DefaultPatchTool,
		OutputColor: true,
	}
}

// applyEnvOverrides applies FORMATGATE_* environment overrides to cfg.
func applyEnvOverrides(cfg *GlobalConfig, getenv func(string) string, log *slog.Logger) {
	if v := getenv(EnvFormatter); v != "" {
		cfg.Formatter = v
	}
	if v := getenv(EnvColorizer); v != "" {
		cfg.Colorizer = v
	}
	if v := getenv(EnvPatchTool); v != "" {
		cfg.PatchTool = v
	}
	if IsTruthy(getenv(EnvNoColor)) {
		cfg.OutputColor = false
	}
	if v := getenv(EnvVerbose); v != "" {
		cfg.OutputVerbose = IsTruthy(v)
		log.Debug("verbose output set from environment", "value", v)
	}
}

// IsTruthy reports whether an environment value enables a switch.
func IsTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}
