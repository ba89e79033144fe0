package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "quizapi"

// QuizMetrics exports quiz service outcomes to Prometheus.
// It implements ports.OperationRecorder.
type QuizMetrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewQuizMetrics registers the quiz collectors, plus the Go runtime and
// process collectors, on a dedicated registry.
func NewQuizMetrics() *QuizMetrics {
	registry := prometheus.NewRegistry()

	m := &QuizMetrics{
		registry: registry,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "quiz",
			Name:      "operations_total",
			Help:      "Quiz service operations by outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "quiz",
			Name:      "operation_duration_seconds",
			Help:      "Quiz service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registry.MustRegister(
		m.operations,
		m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordOperation counts one operation and observes its latency.
func (m *QuizMetrics) RecordOperation(operation, outcome string, seconds float64) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *QuizMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *QuizMetrics) Registry() *prometheus.Registry {
	return m.registry
}
