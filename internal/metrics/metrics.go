package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "serverless_gin_api"

// Invocation outcomes recorded by the Lambda adapter
const (
	OutcomeSuccess           = "success"
	OutcomeConstructionError = "construction_error"
	OutcomeDispatchError     = "dispatch_error"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lambda",
			Name:      "invocations_total",
			Help:      "Total number of Lambda invocations by event format and outcome.",
		},
		[]string{"format", "outcome"},
	)

	constructions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "app",
			Name:      "constructions_total",
			Help:      "Total number of application construction attempts.",
		},
	)

	constructionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "app",
			Name:      "construction_failures_total",
			Help:      "Total number of failed application constructions.",
		},
	)

	constructionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "app",
			Name:      "construction_duration_seconds",
			Help:      "Duration of application construction.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		invocations,
		constructions,
		constructionFailures,
		constructionDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted tracks an in-flight request; call the returned func when it completes.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordInvocation records one Lambda invocation.
func RecordInvocation(format, outcome string) {
	invocations.WithLabelValues(format, outcome).Inc()
}

// RecordConstruction records one application construction attempt.
func RecordConstruction(duration time.Duration, err error) {
	constructions.Inc()
	constructionDuration.Observe(duration.Seconds())
	if err != nil {
		constructionFailures.Inc()
	}
}
