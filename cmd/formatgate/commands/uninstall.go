package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/irahardianto/formatgate/internal/engine/git"
	"github.com/irahardianto/formatgate/internal/platform/logger"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the formatgate pre-commit hook",
	Long: `Remove .git/hooks/pre-commit if it links to formatgate.
A pre-commit hook installed by another tool is left in place.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		return removeHook(cmd.Context(), git.NewExecService(dir), cmd.OutOrStdout())
	},
}

// removeHook removes the hook with an injected git service for testability.
func removeHook(ctx context.Context, gitSvc git.Service, out io.Writer) error {
	log := logger.FromContext(ctx)
	log.Info("uninstall started")

	if err := gitSvc.RemoveHook(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "🔓 formatgate pre-commit hook removed")
	log.Info("uninstall completed")
	return nil
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
