// Package commands implements the CLI commands for formatgate.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/irahardianto/formatgate/internal/engine/config"
	"github.com/irahardianto/formatgate/internal/platform/logger"
	"github.com/spf13/cobra"
)

// ErrInvalidArguments is returned for unknown commands, flags or extra arguments.
var ErrInvalidArguments = errors.New("invalid arguments")

// Global flag values accessible to all commands.
var (
	flagVerbose bool
	flagNoColor bool
	flagJSON    bool
)

// rootCmd is the base command. Without a subcommand it runs the commit gate,
// which is how git invokes it through the pre-commit symlink.
var rootCmd = &cobra.Command{
	Use:   "formatgate",
	Short: "Git pre-commit hook that keeps staged changes clang-formatted",
	Long: `formatgate is a git pre-commit hook that checks the staged changes with
git-clang-format before every commit.

When the staged changes do not match the configured style, formatgate shows the
formatting patch and asks whether to apply it, commit anyway, or cancel. With
interactive mode disabled the commit is rejected with instructions instead.

Repository settings (git config):
  formatgate.style        style passed to git-clang-format (default "file")
  formatgate.interactive  prompt before rejecting a commit (default true)`,
	Args:          noArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		l := logger.New(cmd.ErrOrStderr(), logger.Options{
			Verbose: flagVerbose || config.IsTruthy(getenv(config.EnvVerbose)),
			JSON:    flagJSON,
			NoColor: flagNoColor,
		})
		cmd.SetContext(logger.WithContext(cmd.Context(), l))
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHook(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Write log records to stderr as JSON")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	})
}

// noArgs rejects positional arguments.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q for %q", ErrInvalidArguments, args[0], cmd.CommandPath())
	}
	return nil
}

// Execute runs the CLI with args (without the program name).
func Execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(normalizeArgs(args))
	return rootCmd.ExecuteContext(ctx)
}

// normalizeArgs rewrites "-?" to "--help", which pflag cannot parse.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "-?" {
			a = "--help"
		}
		out = append(out, a)
	}
	return out
}
