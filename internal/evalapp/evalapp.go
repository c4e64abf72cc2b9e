// internal/evalapp/evalapp.go
package evalapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mitoseqfix/internal/appcore"
	"mitoseqfix/internal/clibase"
	"mitoseqfix/internal/config"
	"mitoseqfix/internal/eval"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/output"
	"mitoseqfix/internal/writers"
	"mitoseqfix/pkg/api"
)

const name = "mitoseqfix-eval"

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

type options struct {
	common  clibase.Common
	dataset string
	format  string
}

// RunContext evaluates repair accuracy over a labelled CSV dataset.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	var o options
	cmd := clibase.NewCommand(name+" --dataset FILE [flags]", "Evaluate repair accuracy on a labelled dataset",
		clibase.Long(name, "repair accuracy per damage type"), stdout, stderr)
	cmd.Example = "  mitoseqfix-eval -d test_dataset.csv --sample 0.05 --seed 42\n" +
		"  mitoseqfix-eval -d test.csv.gz --backend http --model-url http://gpu:9000/predict --format json"

	fs := cmd.Flags()
	clibase.Register(fs, &o.common)
	fs.StringVarP(&o.dataset, "dataset", "d", "", "CSV with damaged, clean and damage_type columns ('-' for STDIN)")
	fs.StringVarP(&o.format, "format", "o", FormatText, "report format: text | json")
	o.common.Float(fs, "sample", "eval.sample", "", "fraction of rows to evaluate (0 or 1 = all)")
	o.common.Int(fs, "seed", "eval.seed", "", "sampling seed")
	o.common.Int(fs, "parallel", "eval.workers", "p", "rows repaired concurrently (0=all CPUs)")
	o.common.Int(fs, "progress-every", "eval.progress_every", "", "log progress every N rows (0=off)")

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
	if o.dataset == "" {
		return clibase.Usage(errors.New("--dataset is required"))
	}
	if o.format != FormatText && o.format != FormatJSON {
		return clibase.Usage(fmt.Errorf("invalid --format %q", o.format))
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

	samples, err := eval.LoadCSV(o.dataset)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", o.dataset, err)
	}
	all := len(samples)
	samples = eval.Subsample(samples, cfg.Eval.Sample, cfg.Eval.Seed)
	log.Info("evaluating", "dataset", o.dataset, "rows", all, "sampled", len(samples),
		"window", cfg.Window.Size, "overlap", cfg.Window.Overlap, "backend", cfg.Inference.Backend)

	start := time.Now()
	results, err := eval.Run(ctx, rep, samples, eval.Options{
		Workers:       config.EffectiveWorkers(cfg.Eval.Workers),
		ProgressEvery: cfg.Eval.ProgressEvery,
	})
	if err != nil {
		return err
	}
	overall, byType := eval.Summarize(results)
	report := api.EvalReportV1{
		Dataset:        o.dataset,
		Samples:        len(results),
		Overall:        overall,
		ByDamageType:   byType,
		ElapsedSeconds: time.Since(start).Seconds(),
		WindowSize:     cfg.Window.Size,
		WindowOverlap:  cfg.Window.Overlap,
	}
	log.Info("evaluation complete", "samples", report.Samples, "elapsed", time.Since(start).Round(time.Millisecond))

	outw := bufio.NewWriter(stdout)
	if o.format == FormatJSON {
		err = output.EncodePretty(outw, report)
	} else {
		err = output.WriteReportText(outw, report)
	}
	if err == nil {
		err = outw.Flush()
	}
	if writers.IsBrokenPipe(err) {
		return nil
	}
	return err
}
