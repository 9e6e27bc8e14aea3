package httpclient

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
)

const redacted = "[REDACTED]"

// LoggingTransport implements http.RoundTripper and logs every request and
// response, bodies included, at debug level. Credentials are redacted.
type LoggingTransport struct {
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// NewLoggingTransport wraps transport. If transport is nil,
// http.DefaultTransport will be used; a nil logger discards output.
func NewLoggingTransport(transport http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LoggingTransport{
		Transport: transport,
		Logger:    logger,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.Logger.Enabled(req.Context(), slog.LevelDebug) {
		return t.Transport.RoundTrip(req)
	}

	reqBody := ""
	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err == nil {
			reqBody = string(bodyBytes)
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Reset the body
		}
	}

	t.Logger.Debug("outgoing request",
		"method", req.Method,
		"url", req.URL.String(),
		"headers", redactHeaders(req.Header),
		"body", reqBody)

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		t.Logger.Debug("request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return resp, err
	}

	respBody := ""
	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err == nil {
			respBody = string(bodyBytes)
			resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Reset the body
		}
	}

	t.Logger.Debug("incoming response",
		"status", resp.Status,
		"headers", resp.Header,
		"body", respBody)

	return resp, nil
}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, key := range []string{"Authorization", "Proxy-Authorization"} {
		if out.Get(key) != "" {
			out.Set(key, redacted)
		}
	}
	return out
}
