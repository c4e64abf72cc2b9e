// internal/clibase/usage.go
package clibase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mitoseqfix/internal/version"
)

// Long returns the shared help header for a tool.
func Long(name, summary string) string {
	return fmt.Sprintf("%s – %s\n\nLicense: MIT\nVersion: %s", name, summary, version.Version)
}

// NewCommand builds a root command that reports errors through its return
// value only. Flag errors become UsageErrors.
func NewCommand(use, short, long string, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return Usage(err) })
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// PrintVersion writes "<name> version <v>".
func PrintVersion(out io.Writer, name string) error {
	_, err := fmt.Fprintf(out, "%s version %s\n", name, version.Version)
	return err
}

// Execute runs cmd with argv and maps the outcome to an exit code.
// Argument errors print the usage line after the message.
func Execute(cmd *cobra.Command, argv []string, stderr io.Writer) int {
	cmd.SetArgs(argv)
	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, pflag.ErrHelp):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case IsUsage(err):
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		_, _ = fmt.Fprintln(stderr, cmd.UseLine())
		return ExitUsage
	default:
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return ExitRuntime
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	return Usage(cobra.NoArgs(cmd, args))
}
