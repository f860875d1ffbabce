package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "devportal"

// PrometheusRecorder exports metrics through a dedicated Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	oidcValidations *prometheus.CounterVec
	publicAppCache  *prometheus.CounterVec
	teamsCreated    *prometheus.CounterVec
}

// NewPrometheus creates a recorder with its own registry, including Go and
// process collectors.
func NewPrometheus() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Total number of backend operations.",
		}, []string{"operation", "success"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Duration of backend operations.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"operation"}),
		oidcValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oidc",
			Name:      "validations_total",
			Help:      "OIDC redirect validations by result.",
		}, []string{"result"}),
		publicAppCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "public_app",
			Name:      "cache_lookups_total",
			Help:      "Public app metadata cache lookups by result.",
		}, []string{"result"}),
		teamsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "onboarding",
			Name:      "teams_created_total",
			Help:      "Teams created through onboarding.",
		}, []string{"invite"}),
	}

	r.registry.MustRegister(
		r.httpRequests,
		r.httpDuration,
		r.backendCalls,
		r.backendDuration,
		r.oidcValidations,
		r.publicAppCache,
		r.teamsCreated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler returns an HTTP handler exposing the registry.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveHTTPRequest records a handled request.
func (r *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveBackendCall records a backend operation.
func (r *PrometheusRecorder) ObserveBackendCall(operation string, success bool, duration time.Duration) {
	r.backendCalls.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
	r.backendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncOIDCValidation records a validation outcome.
func (r *PrometheusRecorder) IncOIDCValidation(result string) {
	r.oidcValidations.WithLabelValues(result).Inc()
}

// IncPublicAppCache records a cache outcome.
func (r *PrometheusRecorder) IncPublicAppCache(result string) {
	r.publicAppCache.WithLabelValues(result).Inc()
}

// IncTeamCreated records a created team.
func (r *PrometheusRecorder) IncTeamCreated(withInvite bool) {
	r.teamsCreated.WithLabelValues(strconv.FormatBool(withInvite)).Inc()
}
