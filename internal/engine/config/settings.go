package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/irahardianto/formatgate/internal/platform/logger"
)

// Git config keys read from the repository.
const (
	KeyStyle       = "formatgate.style"
	KeyInteractive = "formatgate.interactive"
)

// EnvTTY names an alternate terminal device for the interactive prompt.
const EnvTTY = "FORMATGATE_TTY"

const (
	// DefaultStyle makes the formatter read the project's .clang-format file.
	DefaultStyle = "file"
	// DefaultTTY is the controlling terminal.
	DefaultTTY = "/dev/tty"
)

// GitConfig reads repository configuration.
type GitConfig interface {
	ConfigValue(ctx context.Context, key string) (string, bool, error)
	ConfigBool(ctx context.Context, key string, def bool) (bool, error)
}

// Settings is the configuration of one invocation. It is built once by
// LoadSettings and passed by value; nothing mutates it afterwards.
type Settings struct {
	// WorkTree is the top-level directory patches are applied in.
	WorkTree string
	// Style is passed to the formatter's --style flag.
	Style string
	// Interactive enables the apply/force/cancel prompt.
	Interactive bool
	// TTYPath is the terminal device the prompt reads answers from.
	TTYPath string

	Formatter string
	Colorizer string
	PatchTool string

	Color   bool
	Verbose bool
}

// LoadSettings combines the global config, the repository's git config and
// the environment.
func LoadSettings(ctx context.Context, workTree string, git GitConfig, global *GlobalConfig, getenv func(string) string) (Settings, error) {
	style, ok, err := git.ConfigValue(ctx, KeyStyle)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	if !ok || strings.TrimSpace(style) == "" {
		style = DefaultStyle
	}

	interactive, err := git.ConfigBool(ctx, KeyInteractive, true)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	tty := getenv(EnvTTY)
	if tty == "" {
		tty = DefaultTTY
	}

	colorizer := global.Colorizer
	if strings.EqualFold(colorizer, ColorizerNone) {
		colorizer = ""
	}

	s := Settings{
		WorkTree:    workTree,
		Style:       style,
		Interactive: interactive,
		TTYPath:     tty,
		Formatter:   global.Formatter,
		Colorizer:   colorizer,
		PatchTool:   global.PatchTool,
		Color:       global.OutputColor,
		Verbose:     global.OutputVerbose,
	}

	logger.FromContext(ctx).Debug("settings loaded",
		"work_tree", s.WorkTree,
		"style", s.Style,
		"interactive", s.Interactive,
		"tty", s.TTYPath,
		"formatter", s.Formatter,
	)
	return s, nil
}
