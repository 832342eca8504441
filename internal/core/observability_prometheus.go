package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "evolve"

// PrometheusMetricsRecorder exports controller metrics to a Prometheus registry.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	attempts   prometheus.Histogram
	rejections prometheus.Counter
	failures   prometheus.Counter
}

// NewPrometheusMetricsRecorder registers the controller collectors with reg.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	r := &PrometheusMetricsRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Population operations by name and outcome.",
		}, []string{"operation", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time spent in population operations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"operation"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "placement_attempts",
			Help:      "Candidates generated before a cell was filled.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "render_rejections_total",
			Help:      "Candidates discarded because they did not render inside their cell.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "placement_failures_total",
			Help:      "Cells left empty after exhausting the attempt cap.",
		}),
	}
	for _, c := range []prometheus.Collector{r.operations, r.latency, r.attempts, r.rejections, r.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	status := string(AuditStatusSuccess)
	if !success {
		status = string(AuditStatusError)
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObservePlacement implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObservePlacement(_ context.Context, attempts int, placed bool) {
	rejected := attempts
	if placed {
		rejected--
		r.attempts.Observe(float64(attempts))
	} else {
		r.failures.Inc()
	}
	if rejected > 0 {
		r.rejections.Add(float64(rejected))
	}
}
