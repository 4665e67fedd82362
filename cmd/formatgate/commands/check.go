package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/irahardianto/formatgate/internal/engine/report"
	"github.com/irahardianto/formatgate/internal/platform/logger"
	"github.com/spf13/cobra"
)

// ErrFormattingRequired is returned by check when staged changes need formatting.
var ErrFormattingRequired = errors.New("staged changes need formatting")

var flagFormat string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report staged changes that need formatting",
	Long: `Run the formatter against the staged changes and report every region that
does not match the configured style, without prompting or modifying anything.
Exits 1 when formatting is required. Useful in CI and for editor integrations.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flagFormat)
	},
}

func runCheck(ctx context.Context, stdout, stderr io.Writer, formatName string) error {
	if _, err := report.New(formatName, false, false); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	ctx, inv, err := loadInvocation(ctx, stderr)
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)

	fmtr, err := report.New(formatName, inv.color() && logger.IsTerminal(stdout), flagVerbose || inv.settings.Verbose)
	if err != nil {
		return err
	}

	f := newFormatter(inv.settings.Formatter, inv.settings.WorkTree)
	if err := f.Check(); err != nil {
		return err
	}

	start := time.Now()
	p, err := f.StagedDiff(ctx, inv.settings.Style)
	if err != nil {
		return err
	}

	result := report.FromPatch(p, inv.settings.Style, f.FixCommand(inv.settings.Style), time.Since(start))
	fmt.Fprintln(stdout, fmtr.Format(result))
	log.Info("check completed", "clean", result.Clean, "findings", len(result.Findings))

	if !result.Clean {
		return ErrFormattingRequired
	}
	return nil
}

func init() {
	checkCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or sarif")
	rootCmd.AddCommand(checkCmd)
}
