// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mitoseqfix-core/fasta"
	"mitoseqfix/internal/appcore"
	"mitoseqfix/internal/clibase"
	"mitoseqfix/internal/cmdutil"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/writers"
)

const name = "mitoseqfix"

type options struct {
	common clibase.Common
	input  string
	fasta  bool
	format string
}

// RunContext repairs the sequence on stdin (or --input) and writes it to stdout.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	var o options
	cmd := clibase.NewCommand(name+" [flags]", "Repair a damaged DNA sequence",
		clibase.Long(name, "windowed sequence repair"), stdout, stderr)
	cmd.Example = "  echo acgtnnacgt | mitoseqfix\n" +
		"  mitoseqfix --fasta -i reads.fa.gz --format fasta\n" +
		"  mitoseqfix --backend http --model-url http://localhost:9000/predict < damaged.txt"

	fs := cmd.Flags()
	clibase.Register(fs, &o.common)
	fs.StringVarP(&o.input, "input", "i", "-", "input file ('-' for STDIN, .gz accepted)")
	fs.BoolVar(&o.fasta, "fasta", false, "input is FASTA; repair each record")
	fs.StringVarP(&o.format, "format", "o", writers.FormatText, fmt.Sprintf("output format: %v", writers.Formats()))

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd, &o, stdout)
	}
	cmd.SetContext(parent)
	return clibase.Execute(cmd, argv, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(cmd *cobra.Command, o *options, stdout io.Writer) error {
	if o.common.Version {
		return clibase.PrintVersion(stdout, name)
	}
	if _, err := writers.Lookup(o.format); err != nil {
		return clibase.Usage(err)
	}
	cfg, err := o.common.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log := clibase.NewLogger(cfg.Log, cmd.ErrOrStderr())
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	rep, err := appcore.NewRepairer(cfg, log, nil)
	if err != nil {
		return clibase.Usage(err)
	}

	in, err := fasta.Open(o.input)
	if err != nil {
		return err
	}
	defer in.Close()

	outw := bufio.NewWriter(stdout)
	if o.fasta {
		n, err := appcore.StreamFASTA(ctx, outw, o.format, in, rep)
		if err != nil {
			return err
		}
		log.Debug("repaired records", "count", n)
		return flush(outw)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	res, ok, err := cmdutil.RepairText(ctx, rep, string(data))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := appcore.WriteOne(outw, o.format, res); err != nil {
		return err
	}
	return flush(outw)
}

func flush(w *bufio.Writer) error {
	if err := w.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return err
	}
	return nil
}
