package davclient

import (
	"context"
	"fmt"
	"net/http"
)

// Forwarder passes arbitrary WebDAV requests through to a server and returns
// the response verbatim. Unlike the protocol handlers it never rejects a
// status code.
type Forwarder struct {
	client *Client
}

// NewForwarder validates cfg and returns a forwarder bound to it.
func NewForwarder(cfg ServerConfig, opts ...Option) (*Forwarder, error) {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Forwarder{client: client}, nil
}

// Forward executes req with any method verb, e.g. GET, MKCOL or COPY.
func (f *Forwarder) Forward(ctx context.Context, req Request) (*Response, error) {
	resp, err := f.client.execute(ctx, "forward", req, acceptAny)
	if err != nil {
		return nil, fmt.Errorf("WebDAV request failed: %w", err)
	}
	return resp, nil
}

// TestConnection probes the server root with OPTIONS.
func (f *Forwarder) TestConnection(ctx context.Context) bool {
	resp, err := f.Forward(ctx, Request{Method: http.MethodOptions, Path: "/"})
	if err != nil {
		f.client.logger.Debug("connection test failed", "error", err)
		return false
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
