// Package metrics instruments the dispatch engine with Prometheus metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"cratedig-hq/cratedig/pkg/client"
)

// RequestMetrics records dispatch outcomes. It implements client.Observer
// and is registered on the Client via client.WithObserver.
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimitWait   prometheus.Histogram
	retriesTotal    prometheus.Counter
	errorsTotal     *prometheus.CounterVec
}

// NewRequestMetrics creates and registers the dispatch metrics. Pass
// prometheus.DefaultRegisterer for the global registry or a private
// registry in tests.
func NewRequestMetrics(namespace string, reg prometheus.Registerer) *RequestMetrics {
	if namespace == "" {
		namespace = "cratedig"
	}

	m := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total dispatched requests by method and status code.",
			},
			[]string{"method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "End-to-end dispatch duration including rate limit wait.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		rateLimitWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent blocked on the admission window.",
				Buckets:   []float64{0, 0.1, 0.5, 1, 5, 15, 30, 60},
			},
		),
		retriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transport_retries_total",
				Help:      "Connection-level retries spent inside dispatches.",
			},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_errors_total",
				Help:      "Failed dispatches by error kind.",
			},
			[]string{"kind"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.requestsTotal,
			m.requestDuration,
			m.rateLimitWait,
			m.retriesTotal,
			m.errorsTotal,
		)
	}

	return m
}

// ObserveRequest implements client.Observer.
func (m *RequestMetrics) ObserveRequest(log client.RequestLog) {
	status := strconv.Itoa(log.StatusCode)
	if log.StatusCode == 0 {
		status = "none"
	}

	m.requestsTotal.WithLabelValues(log.Method, status).Inc()
	m.requestDuration.WithLabelValues(log.Method).Observe(log.Duration.Seconds())
	m.rateLimitWait.Observe(log.RateLimitWait.Seconds())
	m.retriesTotal.Add(float64(log.Retries))

	if log.ErrorKind != "" {
		m.errorsTotal.WithLabelValues(log.ErrorKind).Inc()
	}
}
