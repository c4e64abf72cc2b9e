// internal/inference/cache.go
package inference

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"mitoseqfix-core/alphabet"
)

// Cached memoises predictions by window content. Identical windows (long
// runs of padding, repeated regions, re-submitted sequences) hit the model
// once.
type Cached struct {
	next   Predictor
	cache  *lru.Cache[string, []alphabet.Code]
	onHit  func()
	onMiss func()
}

// CacheOption customises a Cached predictor.
type CacheOption func(*Cached)

// WithCacheHooks registers hit/miss callbacks (metrics).
func WithCacheHooks(onHit, onMiss func()) CacheOption {
	return func(c *Cached) {
		c.onHit = onHit
		c.onMiss = onMiss
	}
}

func NewCached(next Predictor, size int, opts ...CacheOption) (*Cached, error) {
	if size <= 0 {
		return nil, fmt.Errorf("prediction cache size must be greater than zero, got %d", size)
	}
	cache, err := lru.New[string, []alphabet.Code](size)
	if err != nil {
		return nil, fmt.Errorf("init prediction cache: %w", err)
	}
	c := &Cached{next: next, cache: cache, onHit: func() {}, onMiss: func() {}}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Cached) Predict(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error) {
	key := windowKey(window)
	if pred, ok := c.cache.Get(key); ok {
		c.onHit()
		return append([]alphabet.Code(nil), pred...), nil
	}
	c.onMiss()
	pred, err := c.next.Predict(ctx, window)
	if err != nil {
		return nil, err
	}
	// Malformed predictions are returned for the caller to reject, never kept.
	if checkOutput(window, pred) == nil {
		c.cache.Add(key, append([]alphabet.Code(nil), pred...))
	}
	return pred, nil
}

// Len is the number of cached windows.
func (c *Cached) Len() int { return c.cache.Len() }

func windowKey(w []alphabet.Code) string {
	b := make([]byte, len(w))
	for i, c := range w {
		b[i] = byte(c)
	}
	return string(b)
}
