package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/azybler/geodist/pkg/hausdorff"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodist",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geodist",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geodist",
		Subsystem: "http",
		Name:      "rejected_total",
		Help:      "Requests rejected because the concurrency limit was reached",
	})

	hausdorffStrategyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodist",
		Subsystem: "hausdorff",
		Name:      "directed_passes_total",
		Help:      "Directed Hausdorff passes by dimension and nearest-neighbour strategy",
	}, []string{"dimension", "strategy"})

	densifySamples = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "geodist",
		Subsystem: "densify",
		Name:      "samples",
		Help:      "Samples emitted per densify request",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
	})
)

func observeStrategy(dimension string, s hausdorff.Strategy) {
	hausdorffStrategyTotal.WithLabelValues(dimension, s.String()).Inc()
}
