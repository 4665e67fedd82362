package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/irahardianto/formatgate/internal/engine/git"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the pre-commit hook is installed",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		return printStatus(cmd.Context(), git.NewExecService(dir), cmd.OutOrStdout())
	},
}

func printStatus(ctx context.Context, gitSvc git.Service, out io.Writer) error {
	hookPath, err := gitSvc.HookPath(ctx)
	if err != nil {
		return err
	}
	status, err := gitSvc.HookStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "pre-commit hook: %s\n", status)
	fmt.Fprintf(out, "  path: %s\n", hookPath)
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
