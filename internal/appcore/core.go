// internal/appcore/core.go
package appcore

import (
	"context"
	"fmt"
	"io"

	"mitoseqfix/internal/cmdutil"
	"mitoseqfix/internal/config"
	"mitoseqfix/internal/inference"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/metrics"
	"mitoseqfix/internal/output"
	"mitoseqfix/internal/pipeline"
	"mitoseqfix/internal/writers"
)

// NewRepairer builds the configured predictor once and the repair pipeline
// around it. m may be nil.
func NewRepairer(cfg *config.Config, log logger.Logger, m *metrics.Metrics) (*pipeline.Repairer, error) {
	p, err := inference.New(cfg.Inference, m)
	if err != nil {
		return nil, fmt.Errorf("inference backend: %w", err)
	}
	opts := []pipeline.Option{pipeline.WithLogger(log)}
	if m != nil {
		opts = append(opts, pipeline.WithMetrics(m))
	}
	return pipeline.New(pipeline.Config{
		Window:  cfg.Window.Config(),
		Workers: config.EffectiveWorkers(cfg.Pipeline.Workers),
	}, p, opts...)
}

// StreamFASTA repairs every record of in and writes results to out in format.
// It returns the number of records written. A consumer closing the pipe
// early is not an error.
func StreamFASTA(ctx context.Context, out io.Writer, format string, in io.Reader, rep cmdutil.Repairer) (int, error) {
	inCh, writeErr, err := writers.StartResultWriter(out, format, 16)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total, perr := cmdutil.RepairStream(ctx, in, rep, func(r output.Result) error {
		select {
		case inCh <- r:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(inCh)

	if werr := <-writeErr; werr != nil {
		return total, werr
	}
	return total, perr
}

// WriteOne writes a single result in format.
func WriteOne(out io.Writer, format string, r output.Result) error {
	f, err := writers.Lookup(format)
	if err != nil {
		return err
	}
	if err := f(out)(r); err != nil && !writers.IsBrokenPipe(err) {
		return err
	}
	return nil
}
