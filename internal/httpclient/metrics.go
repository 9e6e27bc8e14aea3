package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "davkit_requests_total",
		Help: "Total number of DAV requests that received a response, by method and status code.",
	}, []string{"method", "code"})

	transportErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "davkit_transport_errors_total",
		Help: "Total number of DAV requests that failed before a response was received.",
	}, []string{"method"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "davkit_request_duration_seconds",
		Help:    "Histogram of DAV round trip latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// MetricsTransport implements http.RoundTripper and records request counts,
// transport failures and latencies.
type MetricsTransport struct {
	Transport http.RoundTripper
}

// NewMetricsTransport wraps transport; nil means http.DefaultTransport.
func NewMetricsTransport(transport http.RoundTripper) *MetricsTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &MetricsTransport{Transport: transport}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *MetricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		transportErrorsTotal.WithLabelValues(req.Method).Inc()
		return resp, err
	}
	requestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}
