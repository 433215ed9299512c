package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justinwhatley/shopify2018-backend-challenge/internal/testutil"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client, skipping when none is running.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid config",
			config: DefaultConfig("customer-validator/test"),
		},
		{
			name:        "empty user agent",
			config:      Config{Timeout: time.Second},
			expectError: true,
			errorMsg:    "user-agent is required",
		},
		{
			name:        "zero timeout",
			config:      Config{UserAgent: "test"},
			expectError: true,
			errorMsg:    "timeout must be positive (got 0s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got nil")
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if client.CacheEnabled() {
				t.Error("cache should be disabled without redis")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("TestApp/1.0.0")

	if cfg.UserAgent != "TestApp/1.0.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Timeout <= 0 {
		t.Errorf("Timeout = %v, should be > 0", cfg.Timeout)
	}
	if cfg.Redis != nil {
		t.Error("Redis should be nil by default")
	}
}

func TestFetchPage_Success(t *testing.T) {
	mock := testutil.NewMockCustomerAPI()
	defer mock.Close()
	mock.SetPage(1, `{"customers": []}`)
	mock.SetPage(2, `{"customers": [{"id": 2}]}`)

	c, err := New(DefaultConfig("TestApp/1.0.0 (test@example.com)"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer c.Close()

	body, err := c.FetchPage(context.Background(), mock.URL()+"?page=2")
	if err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}

	if string(body) != `{"customers": [{"id": 2}]}` {
		t.Errorf("body = %s", body)
	}
	if mock.LastUserAgent != "TestApp/1.0.0 (test@example.com)" {
		t.Errorf("User-Agent = %q", mock.LastUserAgent)
	}
}

func TestFetchPage_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantClass  ErrorClass
		wantStatus int
	}{
		{"not found", http.StatusNotFound, ErrorClassClient, 404},
		{"server error", http.StatusInternalServerError, ErrorClassServer, 500},
		{"bad gateway", http.StatusBadGateway, ErrorClassServer, 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockCustomerAPI()
			defer mock.Close()
			mock.SetStatus(1, tt.status)

			c, err := New(DefaultConfig("test"))
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			_, err = c.FetchPage(context.Background(), mock.URL())

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error = %v, want *FetchError", err)
			}
			if fetchErr.ErrorClass != tt.wantClass {
				t.Errorf("ErrorClass = %q, want %q", fetchErr.ErrorClass, tt.wantClass)
			}
			if fetchErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.wantStatus)
			}

			// No retries: exactly one request per fetch.
			if got := mock.GetRequestCount(); got != 1 {
				t.Errorf("requests = %d, want 1", got)
			}
		})
	}
}

func TestFetchPage_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(DefaultConfig("test"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = c.FetchPage(context.Background(), url+"/customers.json")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fetchErr.ErrorClass != ErrorClassNetwork {
		t.Errorf("ErrorClass = %q, want network", fetchErr.ErrorClass)
	}
	if fetchErr.Err == nil {
		t.Error("network error should wrap the transport error")
	}
}

func TestFetchPage_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := DefaultConfig("test")
	cfg.Timeout = 20 * time.Millisecond
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = c.FetchPage(context.Background(), server.URL)
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("error = %v, want ErrRequestFailed", err)
	}
}

func TestGet_InvalidURL(t *testing.T) {
	c, err := New(DefaultConfig("test"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := c.Get(context.Background(), "http://[::1"); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestDo_CacheRevalidation(t *testing.T) {
	redisClient := setupTestRedis(t)

	mock := testutil.NewMockCustomerAPI()
	defer mock.Close()
	mock.EnableETags()
	mock.SetPage(1, `{"customers": [{"id": 1}]}`)

	cfg := DefaultConfig("test")
	cfg.Redis = redisClient
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if !c.CacheEnabled() {
		t.Fatal("cache should be enabled with redis")
	}

	first, err := c.FetchPage(context.Background(), mock.URL())
	if err != nil {
		t.Fatalf("first FetchPage() failed: %v", err)
	}

	second, err := c.FetchPage(context.Background(), mock.URL())
	if err != nil {
		t.Fatalf("second FetchPage() failed: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("cached body = %s, want %s", second, first)
	}
	if got := mock.GetConditionalCount(); got != 1 {
		t.Errorf("conditional requests = %d, want 1", got)
	}
}

func TestDo_NotModifiedWithoutCacheIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	c, err := New(DefaultConfig("test"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = c.FetchPage(context.Background(), server.URL)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.ErrorClass != ErrorClassUnexpected {
		t.Errorf("error = %v, want unexpected-class FetchError", err)
	}
}
