// Package testutil provides testing utilities for the ERP collection engine.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock ERP endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockERP is a configurable mock ERP API server for testing. Its default
// handlers reproduce the real API's envelope inconsistency: clientes are
// wrapped in {"clientes": [...]}, produtos and usuarios in {"data": [...]},
// vendas come as a bare array.
type MockERP struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// In-memory dataset served by the default handlers, keyed by resource.
	records map[string][]map[string]any
	nextID  int64

	// Tracking
	RequestCount int
	DeleteCount  int
	LastAuth     string
	LastBody     []byte
}

// NewMockERP creates a mock ERP server with an empty dataset.
func NewMockERP() *MockERP {
	mock := &MockERP{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		records:  make(map[string][]map[string]any),
		nextID:   1000,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastAuth = r.Header.Get("Authorization")
		if r.Body != nil {
			body, _ := io.ReadAll(r.Body)
			mock.LastBody = body
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists && handler != nil {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockERP) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockERP) Close() {
	m.server.Close()
}

// Reset clears tracking counters and the dataset.
func (m *MockERP) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.DeleteCount = 0
	m.LastAuth = ""
	m.LastBody = nil
	m.records = make(map[string][]map[string]any)
}

// Seed adds records to a resource's dataset.
func (m *MockERP) Seed(resource string, records ...map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[resource] = append(m.records[resource], records...)
}

// Records returns a copy of a resource's current dataset.
func (m *MockERP) Records(resource string) []map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]map[string]any, len(m.records[resource]))
	copy(out, m.records[resource])
	return out
}

// SetHandler sets a custom handler for a specific path. A nil handler
// restores the default behavior.
func (m *MockERP) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockERP) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockERP) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetDeleteCount returns the number of DELETE requests served.
func (m *MockERP) GetDeleteCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.DeleteCount
}

// defaultHandler serves the in-memory dataset with per-resource envelopes
// and handles mutations.
func (m *MockERP) defaultHandler(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "api" {
		http.NotFound(w, r)
		return
	}
	resource := parts[1]
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	switch r.Method {
	case http.MethodGet:
		m.writeCollection(w, resource)
	case http.MethodPost:
		m.createRecord(w, resource)
	case http.MethodPut:
		m.updateRecord(w, resource, parts)
	case http.MethodDelete:
		m.deleteRecord(w, resource, parts)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (m *MockERP) writeCollection(w http.ResponseWriter, resource string) {
	m.mu.RLock()
	records := m.records[resource]
	m.mu.RUnlock()
	if records == nil {
		records = []map[string]any{}
	}

	var payload any
	switch resource {
	case "clientes":
		payload = map[string]any{"clientes": records}
	case "vendas":
		payload = records
	default:
		payload = map[string]any{"data": records}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payload)
}

func (m *MockERP) createRecord(w http.ResponseWriter, resource string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var record map[string]any
	if err := json.Unmarshal(m.LastBody, &record); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"erro": "corpo inválido"}`)
		return
	}

	m.nextID++
	record["id"] = m.nextID
	m.records[resource] = append(m.records[resource], record)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

func (m *MockERP) updateRecord(w http.ResponseWriter, resource string, parts []string) {
	if len(parts) < 3 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id, _ := strconv.ParseInt(parts[2], 10, 64)

	m.mu.Lock()
	defer m.mu.Unlock()

	var record map[string]any
	if err := json.Unmarshal(m.LastBody, &record); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"erro": "corpo inválido"}`)
		return
	}

	for i, existing := range m.records[resource] {
		if recordID(existing) == id {
			record["id"] = id
			m.records[resource][i] = record
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(record)
			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"error": "registro não encontrado"}`)
}

func (m *MockERP) deleteRecord(w http.ResponseWriter, resource string, parts []string) {
	if len(parts) < 3 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id, _ := strconv.ParseInt(parts[2], 10, 64)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCount++

	for i, existing := range m.records[resource] {
		if recordID(existing) == id {
			m.records[resource] = append(m.records[resource][:i], m.records[resource][i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"error": "registro não encontrado"}`)
}

func recordID(record map[string]any) int64 {
	switch v := record["id"].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// NewUnauthorizedResponse creates a 401 response.
func NewUnauthorizedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       `{"error": "token inválido"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewServerErrorResponse creates a 500 response with a Portuguese error
// field, one of the shapes the real API produces.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"erro": "falha interna do servidor"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewMessageErrorResponse creates a 422 response using the "message" field.
func NewMessageErrorResponse(message string) MockResponse {
	body, _ := json.Marshal(map[string]string{"message": message})
	return MockResponse{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}
