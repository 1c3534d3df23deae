package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avolkov/tessera/internal/model"
)

func testClient(baseURL string) *Client {
	return NewClient(model.RegistryConfig{
		BaseURL:           baseURL,
		Timeout:           2 * time.Second,
		MaxRetries:        3,
		RequestsPerSecond: 100,
		Burst:             100,
	}, nil)
}

func TestCorroborate_Hit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("source"); got != "companies-house" {
			t.Errorf("source query = %q, want companies-house", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"corroborated": true}`))
	}))
	defer server.Close()

	ok, err := testClient(server.URL).Corroborate(context.Background(), "companies-house")
	if err != nil {
		t.Fatalf("Corroborate() error = %v", err)
	}
	if !ok {
		t.Error("Corroborate() = false, want true")
	}
}

func TestCorroborate_MissIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ok, err := testClient(server.URL).Corroborate(context.Background(), "unknown-source")
	if err != nil {
		t.Fatalf("Corroborate() error = %v", err)
	}
	if ok {
		t.Error("Corroborate() = true for a registry miss")
	}
}

func TestCorroborate_RetriesTransientFailures(t *testing.T) {
	origSleep := sleepFunc
	sleepFunc = func(time.Duration) {}
	defer func() { sleepFunc = origSleep }()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"corroborated": true}`))
	}))
	defer server.Close()

	ok, err := testClient(server.URL).Corroborate(context.Background(), "interpol-notice")
	if err != nil {
		t.Fatalf("Corroborate() error = %v", err)
	}
	if !ok {
		t.Error("Corroborate() = false after recovery, want true")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestCorroborate_PermanentFailureDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).Corroborate(context.Background(), "blocked"); err == nil {
		t.Error("expected error for 403 response")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestCorroborate_MissingBaseURL(t *testing.T) {
	client := NewClient(model.RegistryConfig{}, nil)
	if _, err := client.Corroborate(context.Background(), "anything"); err == nil {
		t.Error("expected error when base URL is unset")
	}
}
