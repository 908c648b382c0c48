package dispatchhandlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics wrapper.
type MetricsConfig struct {
	// Namespace is the metrics namespace. Defaults to "relay".
	Namespace string

	// Subsystem is the metrics subsystem. Defaults to "".
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Defaults to prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registerer to use.
	// Defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Metrics returns a wrapper that records a request counter and a
// duration histogram, both labelled by method and status code. It wraps
// the dispatcher from the outside so unmatched (404) and aborted
// requests are observed too.
func Metrics(cfg MetricsConfig) Middleware {
	if cfg.Namespace == "" {
		cfg.Namespace = "relay"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(cfg.Registry)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests dispatched.",
		ConstLabels: cfg.ConstLabels,
	}, []string{"method", "code"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "http_request_duration_seconds",
		Help:        "HTTP request duration in seconds.",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.Buckets,
	}, []string{"method", "code"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

			next.ServeHTTP(rec, r)

			code := strconv.Itoa(rec.code)
			requests.WithLabelValues(r.Method, code).Inc()
			duration.WithLabelValues(r.Method, code).Observe(time.Since(start).Seconds())
		})
	}
}

// statusRecorder captures the response status code for labelling.
type statusRecorder struct {
	http.ResponseWriter
	code    int
	written bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.code = code
		r.written = true
	}

	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.written = true

	return r.ResponseWriter.Write(b)
}
