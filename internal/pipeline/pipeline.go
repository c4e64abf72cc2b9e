// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"mitoseqfix-core/alphabet"
	"mitoseqfix-core/reconstruct"
	"mitoseqfix-core/window"
	"mitoseqfix/internal/inference"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/metrics"
)

// Config controls the repair pipeline.
type Config struct {
	Window  window.Config
	Workers int // concurrent predictions per sequence (>=1)
}

// Repairer owns a predictor and a window layout. It holds no per-sequence
// state and is safe for concurrent use.
type Repairer struct {
	cfg       Config
	predictor inference.Predictor
	log       logger.Logger
	metrics   *metrics.Metrics
}

// Option customises a Repairer.
type Option func(*Repairer)

func WithLogger(l logger.Logger) Option { return func(r *Repairer) { r.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(r *Repairer) { r.metrics = m } }

// New validates the window layout up front; a bad layout is rejected before
// any sequence is planned.
func New(cfg Config, p inference.Predictor, opts ...Option) (*Repairer, error) {
	if err := cfg.Window.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("pipeline: predictor is nil")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	r := &Repairer{cfg: cfg, predictor: p, log: logger.NewForTests()}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Config returns the effective configuration.
func (r *Repairer) Config() Config { return r.cfg }

// Repair normalises text, runs the model over its windows and returns the
// repaired sequence (uppercase ACGTN, one symbol per input character).
func (r *Repairer) Repair(ctx context.Context, text string) (string, error) {
	out, err := r.RepairCodes(ctx, alphabet.Encode(text))
	if err != nil {
		return "", err
	}
	return alphabet.Decode(out)
}

// RepairCodes is Repair on already-encoded input.
func (r *Repairer) RepairCodes(ctx context.Context, codes []alphabet.Code) ([]alphabet.Code, error) {
	out, err := r.repair(ctx, codes)
	if r.metrics != nil {
		if err != nil {
			r.metrics.Repairs.WithLabelValues(metrics.OutcomeError).Inc()
		} else {
			r.metrics.Repairs.WithLabelValues(metrics.OutcomeOK).Inc()
			r.metrics.RepairedBases.Add(float64(len(out)))
		}
	}
	return out, err
}

func (r *Repairer) repair(ctx context.Context, codes []alphabet.Code) ([]alphabet.Code, error) {
	start := time.Now()
	descs, err := window.Plan(len(codes), r.cfg.Window)
	if err != nil {
		return nil, err
	}
	r.log.Debug("planned windows", "length", len(codes), "windows", len(descs),
		"size", r.cfg.Window.Size, "overlap", r.cfg.Window.Overlap)

	trimmed := make([][]alphabet.Code, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, d := range descs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pred, err := r.predictor.Predict(gctx, d.Window(codes))
			if err != nil {
				return fmt.Errorf("predict window %d at %d: %w", i, d.Start, err)
			}
			t, err := d.Trim(pred)
			if err != nil {
				return fmt.Errorf("%w: %w", inference.ErrResponseInvalid, err)
			}
			trimmed[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out, err := reconstruct.Reconstruct(len(codes), r.cfg.Window.Overlap, descs, trimmed)
	if err != nil {
		return nil, err
	}
	r.log.Debug("repaired sequence", "length", len(out), "elapsed", time.Since(start))
	return out, nil
}
