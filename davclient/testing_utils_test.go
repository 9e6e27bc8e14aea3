package davclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const basicTestUserHeader = "Basic dGVzdHVzZXI6dGVzdHBhc3M="

func testConfig() ServerConfig {
	return ServerConfig{
		Name:     "test",
		BaseURL:  "https://example.com/dav/",
		Username: "testuser",
		Password: "testpass",
		AuthType: AuthBasic,
	}
}

// mockDoer implements Doer with testify's mock package.
type mockDoer struct {
	mock.Mock
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func newHTTPResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type recordedRequest struct {
	Method        string
	Path          string
	Depth         string
	ContentType   string
	Authorization string
	Body          string
}

// davServer is an httptest server answering every request with one canned
// status and body, recording what it received.
type davServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newDAVServer(t *testing.T, status int, body string) *davServer {
	t.Helper()
	s := &davServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Depth:         r.Header.Get("Depth"),
			ContentType:   r.Header.Get("Content-Type"),
			Authorization: r.Header.Get("Authorization"),
			Body:          string(b),
		})
		s.mu.Unlock()

		if status == http.StatusMultiStatus {
			w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *davServer) config() ServerConfig {
	cfg := testConfig()
	cfg.BaseURL = s.URL + "/dav/"
	return cfg
}

func (s *davServer) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.requests, "server received no request")
	return s.requests[len(s.requests)-1]
}
