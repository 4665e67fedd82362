package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/irahardianto/formatgate/internal/engine/git"
	"github.com/irahardianto/formatgate/internal/platform/logger"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install formatgate as the repository's pre-commit hook",
	Long: `Create .git/hooks/pre-commit as a relative symlink to the formatgate
executable. An existing hook from another tool is never replaced.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		return installHook(cmd.Context(), git.NewExecService(dir), cmd.OutOrStdout())
	},
}

// installHook installs the hook with an injected git service for testability.
func installHook(ctx context.Context, gitSvc git.Service, out io.Writer) error {
	log := logger.FromContext(ctx)
	log.Info("install started")

	if err := gitSvc.InstallHook(ctx); err != nil {
		return err
	}

	hookPath, err := gitSvc.HookPath(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "🔒 formatgate installed as pre-commit hook: %s\n", hookPath)
	log.Info("install completed")
	return nil
}

func init() {
	rootCmd.AddCommand(installCmd)
}
