package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mitoseqfix-core/alphabet"
	"mitoseqfix/internal/config"
	"mitoseqfix/internal/metrics"
)

var sample = alphabet.Encode("ACGTNNAC")

// countingPredictor echoes windows and counts calls.
type countingPredictor struct{ calls atomic.Int64 }

func (c *countingPredictor) Predict(ctx context.Context, w []alphabet.Code) ([]alphabet.Code, error) {
	c.calls.Add(1)
	return Identity{}.Predict(ctx, w)
}

func TestIdentity(t *testing.T) {
	got, err := Identity{}.Predict(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	got[0] = alphabet.T
	assert.Equal(t, alphabet.A, sample[0], "identity must not alias its input")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Identity{}.Predict(ctx, sample)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckOutput(t *testing.T) {
	assert.NoError(t, checkOutput(sample, sample))
	assert.ErrorIs(t, checkOutput(sample, sample[:3]), ErrResponseInvalid)

	bad := append([]alphabet.Code(nil), sample...)
	bad[2] = 7
	err := checkOutput(sample, bad)
	assert.ErrorIs(t, err, ErrResponseInvalid)
	assert.ErrorIs(t, err, alphabet.ErrInvalidCode)
}

func modelServer(t *testing.T, handler func(w http.ResponseWriter, in predictBody)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in predictBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		handler(w, in)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeCodes(w http.ResponseWriter, codes []int) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(predictBody{Codes: codes})
}

func TestHTTPPredict(t *testing.T) {
	t.Run("Should echo codes from the model server", func(t *testing.T) {
		srv := modelServer(t, func(w http.ResponseWriter, in predictBody) { writeCodes(w, in.Codes) })
		p, err := NewHTTP(HTTPOptions{URL: srv.URL, Timeout: time.Second})
		require.NoError(t, err)

		got, err := p.Predict(context.Background(), sample)
		require.NoError(t, err)
		assert.Equal(t, sample, got)
	})

	t.Run("Should retry transient server errors", func(t *testing.T) {
		var calls atomic.Int64
		srv := modelServer(t, func(w http.ResponseWriter, in predictBody) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			writeCodes(w, in.Codes)
		})
		p, err := NewHTTP(HTTPOptions{URL: srv.URL, Retries: 3, Backoff: time.Millisecond})
		require.NoError(t, err)

		_, err = p.Predict(context.Background(), sample)
		require.NoError(t, err)
		assert.Equal(t, int64(3), calls.Load())
	})

	t.Run("Should give up after the retry budget", func(t *testing.T) {
		var calls atomic.Int64
		srv := modelServer(t, func(w http.ResponseWriter, _ predictBody) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		})
		p, err := NewHTTP(HTTPOptions{URL: srv.URL, Retries: 2, Backoff: time.Millisecond})
		require.NoError(t, err)

		_, err = p.Predict(context.Background(), sample)
		require.Error(t, err)
		assert.Equal(t, int64(3), calls.Load())
	})

	t.Run("Should not retry client errors", func(t *testing.T) {
		var calls atomic.Int64
		srv := modelServer(t, func(w http.ResponseWriter, _ predictBody) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		})
		p, err := NewHTTP(HTTPOptions{URL: srv.URL, Retries: 3, Backoff: time.Millisecond})
		require.NoError(t, err)

		_, err = p.Predict(context.Background(), sample)
		assert.ErrorIs(t, err, ErrResponseInvalid)
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("Should reject malformed predictions", func(t *testing.T) {
		srv := modelServer(t, func(w http.ResponseWriter, in predictBody) {
			out := append([]int(nil), in.Codes...)
			out[0] = 9
			writeCodes(w, out)
		})
		p, err := NewHTTP(HTTPOptions{URL: srv.URL})
		require.NoError(t, err)

		_, err = p.Predict(context.Background(), sample)
		assert.ErrorIs(t, err, ErrResponseInvalid)
		assert.ErrorIs(t, err, alphabet.ErrInvalidCode)
	})

	t.Run("Should reject relative urls", func(t *testing.T) {
		_, err := NewHTTP(HTTPOptions{URL: "/predict"})
		assert.Error(t, err)
	})
}

func TestCommandPredict(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	t.Run("Should echo through cat", func(t *testing.T) {
		p, err := NewCommand("cat")
		require.NoError(t, err)
		got, err := p.Predict(context.Background(), sample)
		require.NoError(t, err)
		assert.Equal(t, sample, got)
	})

	t.Run("Should reject short output", func(t *testing.T) {
		p, err := NewCommand(`sh -c 'echo 0 1'`)
		require.NoError(t, err)
		_, err = p.Predict(context.Background(), sample)
		assert.ErrorIs(t, err, ErrResponseInvalid)
	})

	t.Run("Should reject non numeric output", func(t *testing.T) {
		p, err := NewCommand(`sh -c 'echo A C'`)
		require.NoError(t, err)
		_, err = p.Predict(context.Background(), sample[:2])
		assert.ErrorIs(t, err, ErrResponseInvalid)
	})

	t.Run("Should surface stderr of failing commands", func(t *testing.T) {
		p, err := NewCommand(`sh -c 'echo model missing >&2; exit 3'`)
		require.NoError(t, err)
		_, err = p.Predict(context.Background(), sample)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model missing")
	})

	t.Run("Should reject an empty command line", func(t *testing.T) {
		_, err := NewCommand("   ")
		assert.Error(t, err)
	})
}

func TestCached(t *testing.T) {
	inner := &countingPredictor{}
	var hits, misses int
	c, err := NewCached(inner, 2, WithCacheHooks(func() { hits++ }, func() { misses++ }))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := c.Predict(context.Background(), sample)
		require.NoError(t, err)
		assert.Equal(t, sample, got)
	}
	assert.Equal(t, int64(1), inner.calls.Load())
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)

	// Callers may mutate results without poisoning the cache.
	got, _ := c.Predict(context.Background(), sample)
	got[0] = alphabet.N
	again, _ := c.Predict(context.Background(), sample)
	assert.Equal(t, alphabet.A, again[0])

	_, err = NewCached(inner, 0)
	assert.Error(t, err)
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	var calls int
	boom := errors.New("device lost")
	c, err := NewCached(PredictorFunc(func(context.Context, []alphabet.Code) ([]alphabet.Code, error) {
		calls++
		return nil, boom
	}), 4)
	require.NoError(t, err)

	_, err = c.Predict(context.Background(), sample)
	assert.ErrorIs(t, err, boom)
	_, err = c.Predict(context.Background(), sample)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Zero(t, c.Len())
}

func TestCachedDoesNotStoreMalformedPredictions(t *testing.T) {
	var calls int
	c, err := NewCached(PredictorFunc(func(_ context.Context, w []alphabet.Code) ([]alphabet.Code, error) {
		calls++
		return w[:len(w)-1], nil
	}), 4)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := c.Predict(context.Background(), sample)
		require.NoError(t, err)
		assert.Len(t, got, len(sample)-1)
	}
	assert.Equal(t, 2, calls)
	assert.Zero(t, c.Len())
}

func TestNewPassesBackoffToHTTP(t *testing.T) {
	p, err := New(config.Inference{Backend: config.BackendHTTP, URL: "http://model:9000/predict", Backoff: 5 * time.Millisecond}, nil)
	require.NoError(t, err)
	h, ok := p.(*HTTP)
	require.True(t, ok)
	assert.Equal(t, 5*time.Millisecond, h.backoff)
}

func TestNewWiresMetricsAndCache(t *testing.T) {
	m := metrics.New()
	p, err := New(config.Inference{Backend: config.BackendIdentity, CacheSize: 8}, m)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := p.Predict(context.Background(), sample)
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WindowsPredicted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.Inference{Backend: "gpu"}, nil)
	assert.Error(t, err)
	_, err = New(config.Inference{Backend: config.BackendHTTP, URL: "::"}, nil)
	assert.Error(t, err)
	_, err = New(config.Inference{Backend: config.BackendCommand}, nil)
	assert.Error(t, err)
}

func TestInstrumentedCountsErrors(t *testing.T) {
	m := metrics.New()
	p := NewInstrumented(PredictorFunc(func(context.Context, []alphabet.Code) ([]alphabet.Code, error) {
		return nil, errors.New("x")
	}), m)
	_, err := p.Predict(context.Background(), sample)
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PredictionErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.WindowsPredicted))
}
