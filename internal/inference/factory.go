// internal/inference/factory.go
package inference

import (
	"fmt"

	"mitoseqfix/internal/config"
	"mitoseqfix/internal/metrics"
)

// New builds the configured backend once, wrapped in the prediction cache
// (when cache_size > 0) and in metrics (when m != nil). Instrumentation sits
// inside the cache, so cache hits are not counted as model calls.
func New(cfg config.Inference, m *metrics.Metrics) (Predictor, error) {
	var (
		p   Predictor
		err error
	)
	switch cfg.Backend {
	case config.BackendIdentity, "":
		p = Identity{}
	case config.BackendHTTP:
		p, err = NewHTTP(HTTPOptions{
			URL:     cfg.URL,
			Timeout: cfg.Timeout,
			Retries: cfg.Retries,
			Backoff: cfg.Backoff,
		})
	case config.BackendCommand:
		p, err = NewCommand(cfg.Command)
	default:
		err = fmt.Errorf("unknown inference backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if m != nil {
		p = NewInstrumented(p, m)
	}
	if cfg.CacheSize > 0 {
		var opts []CacheOption
		if m != nil {
			opts = append(opts, WithCacheHooks(m.CacheHits.Inc, m.CacheMisses.Inc))
		}
		if p, err = NewCached(p, cfg.CacheSize, opts...); err != nil {
			return nil, err
		}
	}
	return p, nil
}
