// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mitoseqfix"

// Repair outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors shared by the pipeline and predictors.
// Each instance owns its registry so tests can create as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	WindowsPredicted  prometheus.Counter
	PredictionErrors  prometheus.Counter
	PredictionSeconds prometheus.Histogram
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	Repairs           *prometheus.CounterVec
	RepairedBases     prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		WindowsPredicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "windows_predicted_total",
			Help: "Windows sent to the correction model.",
		}),
		PredictionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "prediction_errors_total",
			Help: "Failed window predictions.",
		}),
		PredictionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "prediction_seconds",
			Help:    "Latency of one window prediction.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_hits_total",
			Help: "Window predictions served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_misses_total",
			Help: "Window predictions that missed the cache.",
		}),
		Repairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "repairs_total",
			Help: "Sequence repairs by outcome.",
		}, []string{"outcome"}),
		RepairedBases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "repaired_bases_total",
			Help: "Positions emitted by successful repairs.",
		}),
	}
	reg.MustRegister(
		m.WindowsPredicted, m.PredictionErrors, m.PredictionSeconds,
		m.CacheHits, m.CacheMisses, m.Repairs, m.RepairedBases,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
