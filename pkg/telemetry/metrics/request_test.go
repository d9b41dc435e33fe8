package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"cratedig-hq/cratedig/pkg/client"
)

func TestRequestMetrics_CountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRequestMetrics("test", reg)

	m.ObserveRequest(client.RequestLog{Method: "GET", StatusCode: 200, Duration: 100 * time.Millisecond})
	m.ObserveRequest(client.RequestLog{Method: "GET", StatusCode: 200, Duration: 50 * time.Millisecond})
	m.ObserveRequest(client.RequestLog{Method: "GET", StatusCode: 404, ErrorKind: "not_found"})

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "200")); got != 2 {
		t.Errorf("Expected 2 successful GETs, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "404")); got != 1 {
		t.Errorf("Expected 1 not-found GET, got %v", got)
	}
	if got := testutil.ToFloat64(m.errorsTotal.WithLabelValues("not_found")); got != 1 {
		t.Errorf("Expected 1 not_found error, got %v", got)
	}
}

func TestRequestMetrics_NetworkFailureHasNoStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRequestMetrics("test", reg)

	m.ObserveRequest(client.RequestLog{Method: "GET", StatusCode: 0, ErrorKind: "network_error", Retries: 3})

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "none")); got != 1 {
		t.Errorf("Statusless dispatch should use the none label, got %v", got)
	}
	if got := testutil.ToFloat64(m.retriesTotal); got != 3 {
		t.Errorf("Expected 3 transport retries recorded, got %v", got)
	}
}

func TestRequestMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRequestMetrics("test", reg)

	defer func() {
		if recover() == nil {
			t.Error("Duplicate registration should panic via MustRegister")
		}
	}()
	NewRequestMetrics("test", reg)
}
