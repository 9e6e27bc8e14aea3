package davclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cyp0633/davkit/internal/httpclient"
	davxml "github.com/cyp0633/davkit/internal/xml"
)

const (
	contentTypeXML      = "application/xml; charset=utf-8"
	contentTypeCalendar = "text/calendar; charset=utf-8"
	contentTypeVCard    = "text/vcard; charset=utf-8"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client and the handlers built on it.
type Option func(*options)

type options struct {
	httpClient Doer
	logger     *slog.Logger
}

// WithHTTPClient replaces the default transport collaborator.
func WithHTTPClient(doer Doer) Option {
	return func(o *options) {
		o.httpClient = doer
	}
}

// WithLogger sets the logger used for request and parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Client executes DAV requests against one server. It is safe for
// concurrent use; nothing in it is written after NewClient returns.
type Client struct {
	cfg        ServerConfig
	headers    map[string]string
	httpClient Doer
	logger     *slog.Logger
}

// NewClient validates cfg and returns a client bound to it. No network
// traffic happens here.
func NewClient(cfg ServerConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	headers, err := AuthHeaders(cfg)
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.httpClient == nil {
		o.httpClient = httpclient.New(nil, 0, o.logger)
	}

	return &Client{
		cfg:        cfg,
		headers:    headers,
		httpClient: o.httpClient,
		logger:     o.logger.With("server", cfg.Name),
	}, nil
}

// Config returns the server config the client was built with.
func (c *Client) Config() ServerConfig {
	return c.cfg
}

// Do executes req and returns the response whatever its status code. Only
// transport failures are errors.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.execute(ctx, "request", req, acceptAny)
	if err != nil {
		return nil, fmt.Errorf("DAV request failed: %w", err)
	}
	return resp, nil
}

// TestConnection probes the server root with a depth 0 PROPFIND and reports
// whether it answered with a status below 400.
func (c *Client) TestConnection(ctx context.Context) bool {
	resp, err := c.Do(ctx, Request{
		Method: "PROPFIND",
		Path:   "/",
		Depth:  DepthZero,
		Header: map[string]string{"Content-Type": contentTypeXML},
		Body:   davxml.ConnectionProbe().String(),
	})
	if err != nil {
		c.logger.Debug("connection test failed", "error", err)
		return false
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// ListResources runs a PROPFIND on path and returns the entries of the
// multistatus reply.
func (c *Client) ListResources(ctx context.Context, path, depth string) ([]Resource, error) {
	if depth == "" {
		depth = DepthOne
	}
	entries, err := c.multistatus(ctx, "list resources", Request{
		Method: "PROPFIND",
		Path:   path,
		Depth:  depth,
		Header: map[string]string{"Content-Type": contentTypeXML},
		Body:   davxml.ResourceListing().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	resources := make([]Resource, 0, len(entries))
	for _, entry := range entries {
		resources = append(resources, toResource(entry))
	}
	return resources, nil
}

func (c *Client) execute(ctx context.Context, op string, req Request, policy statusPolicy) (*Response, error) {
	url := httpclient.JoinURL(c.cfg.BaseURL, req.Path)

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, &TransportError{Op: op, Method: req.Method, URL: url, Err: err}
	}

	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}
	if req.Method == "PROPFIND" && req.Depth != "" {
		httpReq.Header.Set("Depth", req.Depth)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: op, Method: req.Method, URL: url, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Method: req.Method, URL: url, Err: err}
	}

	c.logger.Debug("dav request", "method", req.Method, "url", url, "status", httpResp.StatusCode)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     flattenHeader(httpResp.Header),
		Body:       string(respBody),
	}
	if err := policy.check(op, resp.StatusCode); err != nil {
		return resp, err
	}
	return resp, nil
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}

// statusPolicy decides which status codes complete an operation.
type statusPolicy struct {
	accept func(code int) bool
}

var (
	acceptAny         = statusPolicy{accept: func(int) bool { return true }}
	expectMultiStatus = statusPolicy{accept: func(code int) bool { return code == http.StatusMultiStatus }}
	expectSuccess     = statusPolicy{accept: func(code int) bool { return code >= 200 && code < 300 }}
)

func (p statusPolicy) check(op string, code int) error {
	if p.accept(code) {
		return nil
	}
	return &StatusError{Op: op, StatusCode: code}
}
