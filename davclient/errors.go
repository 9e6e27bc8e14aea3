package davclient

import (
	"errors"
	"fmt"
)

// ErrUnsupportedAuthentication is returned for digest authentication, which
// the client does not implement.
var ErrUnsupportedAuthentication = errors.New("digest authentication is not supported, use basic or bearer")

// ConfigurationError reports an invalid or incomplete ServerConfig. It is
// returned before any network call is made.
type ConfigurationError struct {
	Server string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Server == "" {
		return fmt.Sprintf("invalid server config: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid config for server %q: %s %s", e.Server, e.Field, e.Reason)
}

// The Op field of the errors below names the operation that failed, e.g.
// "list calendars". Handlers add it to the message when wrapping.

// TransportError wraps a failure below the HTTP status line: DNS, connect,
// timeout, or a broken response body.
type TransportError struct {
	Op     string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a status code that the attempted DAV operation does not
// accept, e.g. anything but 207 for a PROPFIND discovery.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// ParseError reports a multistatus body that is not well-formed XML.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
