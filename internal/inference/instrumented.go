// internal/inference/instrumented.go
package inference

import (
	"context"
	"time"

	"mitoseqfix-core/alphabet"
	"mitoseqfix/internal/metrics"
)

// Instrumented records counts and latency of every prediction.
type Instrumented struct {
	next Predictor
	m    *metrics.Metrics
}

func NewInstrumented(next Predictor, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, m: m}
}

func (p *Instrumented) Predict(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error) {
	start := time.Now()
	pred, err := p.next.Predict(ctx, window)
	p.m.PredictionSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		p.m.PredictionErrors.Inc()
		return nil, err
	}
	p.m.WindowsPredicted.Inc()
	return pred, nil
}
