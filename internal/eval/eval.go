// internal/eval/eval.go
package eval

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"mitoseqfix-core/alphabet"
	"mitoseqfix-core/score"
	"mitoseqfix/internal/logger"
	"mitoseqfix/pkg/api"
)

// Repairer is the part of pipeline.Repairer the harness needs.
type Repairer interface {
	Repair(ctx context.Context, text string) (string, error)
}

// Options controls an evaluation run.
type Options struct {
	Workers       int // rows repaired concurrently (>=1)
	ProgressEvery int // log progress every N rows; 0 disables
}

// Result is the score of one row.
type Result struct {
	DamageType string
	Accuracy   float64
}

// Run repairs every sample and scores it against its normalised clean
// sequence. The first repair error aborts the run.
func Run(ctx context.Context, rep Repairer, samples []Sample, opts Options) ([]Result, error) {
	log := logger.FromContext(ctx)
	workers := max(opts.Workers, 1)

	results := make([]Result, len(samples))
	var done atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range samples {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			repaired, err := rep.Repair(gctx, s.Damaged)
			if err != nil {
				return fmt.Errorf("row %d: %w", s.Row, err)
			}
			results[i] = Result{
				DamageType: s.DamageType,
				Accuracy:   score.Accuracy(alphabet.Normalize(s.Clean), repaired),
			}
			n := done.Add(1)
			if opts.ProgressEvery > 0 && n%int64(opts.ProgressEvery) == 0 {
				log.Info("evaluation progress",
					"done", n, "total", len(samples),
					"percent", fmt.Sprintf("%.1f", float64(n)/float64(len(samples))*100),
					"elapsed", time.Since(start).Round(time.Second))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize aggregates row scores into per-damage-type and overall mean
// accuracy. Damage types are sorted by name.
func Summarize(results []Result) (overall float64, byType []api.DamageTypeV1) {
	type acc struct {
		sum float64
		n   int
	}
	groups := map[string]*acc{}
	var total float64
	for _, r := range results {
		a := groups[r.DamageType]
		if a == nil {
			a = &acc{}
			groups[r.DamageType] = a
		}
		a.sum += r.Accuracy
		a.n++
		total += r.Accuracy
	}
	for dt, a := range groups {
		byType = append(byType, api.DamageTypeV1{DamageType: dt, Samples: a.n, Accuracy: a.sum / float64(a.n)})
	}
	sort.Slice(byType, func(i, j int) bool { return byType[i].DamageType < byType[j].DamageType })
	if len(results) > 0 {
		overall = total / float64(len(results))
	}
	return overall, byType
}
