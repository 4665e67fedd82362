// Package main is the entry point for the formatgate CLI binary.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/irahardianto/formatgate/cmd/formatgate/commands"
)

// shutdownSignals cancel the run so deferred cleanup (the temporary patch
// file) still happens. SIGHUP arrives when the terminal window is closed
// during the prompt.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	err := commands.Execute(ctx, os.Args[1:])
	interrupted := ctx.Err() != nil
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "formatgate: %s\n", exitMessage(err, interrupted))
		os.Exit(1)
	}
}

// exitMessage turns err into the line printed before exiting. Failures
// caused by a signal read as a cancelled commit, not as a context error.
func exitMessage(err error, interrupted bool) string {
	if interrupted || errors.Is(err, context.Canceled) {
		return "commit cancelled (interrupted)"
	}
	return err.Error()
}
