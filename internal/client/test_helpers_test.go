package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/clientsuccess/internal/http"
)

// NewTestClient creates a client bound to baseURL that sends a fixed token.
func NewTestClient(baseURL string) *Client {
	tokenManager := &countingTokenManager{token: "test-token"}
	httpClient := internalhttp.NewClient(baseURL, tokenManager, internalhttp.WithPathPrefix("/v1"))

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       hclog.NewNullLogger(),
	}

	client.initializeResourceClients()

	return client
}

type countingTokenManager struct {
	mu          sync.Mutex
	token       string
	calls       int
	invalidated int
}

func (m *countingTokenManager) GetToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	return m.token, nil
}

func (m *countingTokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.invalidated++
}

// recordedRequest is what a stubServer saw.
type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

// stubResponse is what a stubServer answers with.
type stubResponse struct {
	Status   int
	Body     string
	Location string
}

// stubServer answers every request with the same response and records what
// it received.
type stubServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newStubServer(t *testing.T, response stubResponse) *stubServer {
	t.Helper()

	stub := &stubServer{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		stub.mu.Lock()
		stub.requests = append(stub.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		stub.mu.Unlock()

		if response.Location != "" {
			w.Header().Set("Location", response.Location)
		}

		if response.Body != "" {
			w.Header().Set("Content-Type", "application/json")
		}

		status := response.Status
		if status == 0 {
			status = http.StatusOK
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response.Body))
	}))
	t.Cleanup(stub.Close)

	return stub
}

func (s *stubServer) last(t *testing.T) recordedRequest {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.requests, "no request was received")

	return s.requests[len(s.requests)-1]
}

func (s *stubServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}
