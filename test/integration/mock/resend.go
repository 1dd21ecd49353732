package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ResendMock stands in for the Resend HTTP API. It records every POST /emails
// body and answers with a configurable status.
type ResendMock struct {
	mu       sync.Mutex
	server   *httptest.Server
	requests []map[string]any
	status   int
	sent     int
}

// NewResendMock creates a mock that accepts every email.
func NewResendMock() *ResendMock {
	return &ResendMock{status: http.StatusOK}
}

// Start launches the HTTP server.
func (m *ResendMock) Start() {
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
}

// GetUrl returns the base URL to hand to the Resend client.
func (m *ResendMock) GetUrl() string {
	return m.server.URL
}

func (m *ResendMock) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Method != http.MethodPost || r.URL.Path != "/emails" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	if err := json.Unmarshal(body, &request); err != nil || request == nil {
		request = map[string]any{}
	}
	m.requests = append(m.requests, request)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(m.status)
	if m.status >= http.StatusBadRequest {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode": m.status,
			"name":       "validation_error",
			"message":    fmt.Sprintf("%d %s", m.status, http.StatusText(m.status)),
		})
		return
	}
	m.sent++
	_ = json.NewEncoder(w).Encode(map[string]any{"id": fmt.Sprintf("mock-email-%d", m.sent)})
}

// SetStatus changes the status returned for subsequent requests.
func (m *ResendMock) SetStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

// Requests returns a copy of the recorded request bodies.
func (m *ResendMock) Requests() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]map[string]any, len(m.requests))
	copy(out, m.requests)
	return out
}

// Clear forgets recorded requests and restores the success status.
func (m *ResendMock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.status = http.StatusOK
	m.sent = 0
}
