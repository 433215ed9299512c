// Package testutil provides testing utilities for the customer validator.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// ListingPath is the path the mock serves the customer listing on.
const ListingPath = "/customers.json"

// MockCustomerAPI is a configurable mock of the paginated customers API.
type MockCustomerAPI struct {
	server *httptest.Server
	mu     sync.RWMutex
	pages  map[int]string
	status map[int]int
	etags  bool

	// Tracking
	RequestCount     int
	ConditionalCount int
	RequestedPages   []int
	LastUserAgent    string
}

// NewMockCustomerAPI starts a mock API with no pages configured.
func NewMockCustomerAPI() *MockCustomerAPI {
	mock := &MockCustomerAPI{
		pages:  make(map[int]string),
		status: make(map[int]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the listing URL (the base URL the walker starts from).
func (m *MockCustomerAPI) URL() string {
	return m.server.URL + ListingPath
}

// Close shuts down the mock server.
func (m *MockCustomerAPI) Close() {
	m.server.Close()
}

// SetPage configures the document served for a 1-based page number.
// Requests without a page parameter get page 1.
func (m *MockCustomerAPI) SetPage(number int, doc string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[number] = doc
}

// SetStatus makes the given page answer with status and an error body.
func (m *MockCustomerAPI) SetStatus(number int, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status[number] = status
}

// EnableETags makes the server send ETags and answer matching conditional
// requests with 304.
func (m *MockCustomerAPI) EnableETags() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.etags = true
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCustomerAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetConditionalCount returns the number of conditional requests.
func (m *MockCustomerAPI) GetConditionalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ConditionalCount
}

// GetRequestedPages returns the page numbers requested, in order.
func (m *MockCustomerAPI) GetRequestedPages() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int, len(m.RequestedPages))
	copy(out, m.RequestedPages)
	return out
}

func (m *MockCustomerAPI) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != ListingPath {
		http.NotFound(w, r)
		return
	}

	number := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, `{"error": "bad page"}`, http.StatusBadRequest)
			return
		}
		number = n
	}

	m.mu.Lock()
	m.RequestCount++
	m.RequestedPages = append(m.RequestedPages, number)
	m.LastUserAgent = r.Header.Get("User-Agent")
	if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
		m.ConditionalCount++
	}
	doc, ok := m.pages[number]
	status, hasStatus := m.status[number]
	etags := m.etags
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if hasStatus {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error": %q}`, http.StatusText(status))
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Not Found"}`))
		return
	}

	if etags {
		etag := fmt.Sprintf(`"page-%d"`, number)
		w.Header().Set("ETag", etag)
		w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// Pagination mirrors the API's pagination object.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// PageDoc renders a page document from its three parts. customers and
// validations are raw JSON arrays.
func PageDoc(customers, validations string, p Pagination) string {
	pagination, _ := json.Marshal(p)
	return fmt.Sprintf(`{"validations": %s, "customers": %s, "pagination": %s}`,
		validations, customers, pagination)
}

// SampleValidations is the rule set used by the challenge API.
const SampleValidations = `[
	{"name": {"required": true, "type": "string", "length": {"min": 5, "max": 100}}},
	{"email": {"required": true}},
	{"age": {"type": "number", "required": false}},
	{"newsletter": {"required": true, "type": "boolean"}}
]`
