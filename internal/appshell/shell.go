// Package appshell runs a tool's RunContext as a process: signal-aware
// context, real stdio and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"mitoseqfix/internal/clibase"
)

// RunFunc is the shape of every tool entry point.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with os.Args and exits. SIGINT/SIGTERM cancel the context;
// a run that returns 0 after cancellation exits 130.
func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, run, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run is Main without the process exit.
func Run(ctx context.Context, run RunFunc, argv []string, stdout, stderr io.Writer) int {
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == clibase.ExitOK {
		code = clibase.ExitCanceled
	}
	return code
}
