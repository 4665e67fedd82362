package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/irahardianto/formatgate/internal/engine/config"
	"github.com/irahardianto/formatgate/internal/engine/format"
	"github.com/irahardianto/formatgate/internal/engine/gate"
	"github.com/irahardianto/formatgate/internal/engine/git"
	"github.com/irahardianto/formatgate/internal/platform/logger"
	"github.com/irahardianto/formatgate/internal/platform/ui"
)

// Process-level dependencies, replaced in tests.
var (
	getwd        = os.Getwd
	getenv       = os.Getenv
	openTerminal = gate.OpenTTY
	newFormatter = func(binary, dir string) format.Formatter {
		return format.NewClangFormat(binary, dir)
	}
)

// invocation holds the collaborators shared by the hook and check commands.
type invocation struct {
	settings config.Settings
	git      *git.ExecService
}

// color reports whether output may be colored.
func (inv *invocation) color() bool {
	return inv.settings.Color && !flagNoColor
}

// loadInvocation locates the work tree and loads its settings. The returned
// context carries a debug logger when the config file asks for verbose output.
func loadInvocation(ctx context.Context, stderr io.Writer) (context.Context, *invocation, error) {
	dir, err := getwd()
	if err != nil {
		return ctx, nil, fmt.Errorf("getting working directory: %w", err)
	}

	top, err := git.NewExecService(dir).TopLevel(ctx)
	if err != nil {
		return ctx, nil, err
	}
	gitSvc := git.NewExecService(top)

	globalCfg, err := config.NewLoader(&config.RealFileSystem{}, getenv).LoadGlobalConfig(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("loading global config: %w", err)
	}

	settings, err := config.LoadSettings(ctx, top, gitSvc, globalCfg, getenv)
	if err != nil {
		return ctx, nil, err
	}

	inv := &invocation{settings: settings, git: gitSvc}
	if settings.Verbose && !flagVerbose {
		ctx = logger.WithContext(ctx, logger.New(stderr, logger.Options{Verbose: true, JSON: flagJSON, NoColor: !inv.color()}))
	}
	return ctx, inv, nil
}

// newGate wires the production collaborators of the commit gate.
func (inv *invocation) newGate(stdout, stderr io.Writer) *gate.Gate {
	colorizer := inv.settings.Colorizer
	if !inv.color() {
		colorizer = ""
	}

	return &gate.Gate{
		Settings:     inv.settings,
		Index:        inv.git,
		Formatter:    newFormatter(inv.settings.Formatter, inv.settings.WorkTree),
		Colorizer:    format.NewExternalColorizer(colorizer),
		Patcher:      format.NewExternalPatcher(inv.settings.PatchTool),
		OpenTerminal: openTerminal,
		Getenv:       getenv,
		Stdout:       stdout,
		Stderr:       stderr,
		Styles:       ui.New(stdout, !inv.color()),
	}
}

// runHook runs the commit gate. The hook guard is checked before anything
// touches the repository.
func runHook(ctx context.Context, stdout, stderr io.Writer) error {
	if err := gate.RequireHookContext(getenv); err != nil {
		fmt.Fprint(stderr, gate.HookGuidance())
		return err
	}

	ctx, inv, err := loadInvocation(ctx, stderr)
	if err != nil {
		return err
	}

	state, err := inv.newGate(stdout, stderr).Run(ctx)
	logger.FromContext(ctx).Debug("commit gate finished", "state", state.String(), "error", err)
	return err
}
