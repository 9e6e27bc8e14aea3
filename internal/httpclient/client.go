package httpclient

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single DAV round trip made through New.
const DefaultTimeout = 30 * time.Second

// New creates the http.Client used for DAV exchanges: every request is
// instrumented and logged before reaching base. A nil base uses
// http.DefaultTransport, a non-positive timeout uses DefaultTimeout.
func New(base http.RoundTripper, timeout time.Duration, logger *slog.Logger) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: NewMetricsTransport(NewLoggingTransport(base, logger)),
		Timeout:   timeout,
	}
}
