package httputil

import (
	"context"
	"errors"
	"strings"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

func testClient() *Client {
	c := NewClient()
	c.Delay = time.Millisecond
	return c
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent")
		}
		w.Write([]byte("Name\nA\n"))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL+"/colleges.csv")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "Name\nA\n" {
		t.Errorf("body = %q", body)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "ok" || calls.Load() != 3 {
		t.Errorf("body=%q calls=%d, want ok after 3 calls", body, calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL)
	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusNotFound {
		t.Fatalf("error = %v, want 404 StatusError", err)
	}
	if IsRetryable(err) {
		t.Error("404 should not be retryable")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClientBodyLimit(t *testing.T) {
	const limit = 1024
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"under limit", limit - 1, false},
		{"at limit", limit, false},
		{"over limit", limit + 1, true},
		{"far over limit", 4 * limit, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Write([]byte(strings.Repeat("x", tt.size)))
			}))
			defer srv.Close()

			c := testClient()
			c.MaxBody = limit
			body, err := c.Get(context.Background(), srv.URL)
			if !tt.wantErr {
				if err != nil || len(body) != tt.size {
					t.Fatalf("Get() = %d bytes, %v; want %d bytes", len(body), err, tt.size)
				}
				return
			}
			if body != nil {
				t.Errorf("Get() returned %d bytes of a rejected body", len(body))
			}
			if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
			if IsRetryable(err) || calls.Load() != 1 {
				t.Errorf("oversized body should fail once without retry: calls=%d", calls.Load())
			}
		})
	}
}

func TestClientGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL)
	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != 500 {
		t.Errorf("error = %v, want 500 StatusError", err)
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	calls := 0
	if err := Retry(ctx, 3, time.Millisecond, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := Retry(ctx, 3, time.Millisecond, func() error { calls++; return errBoom })
	if err != errBoom || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = Retry(ctx, 3, time.Millisecond, func() error { calls++; return Retryable(errBoom) })
	if !errors.Is(err, errBoom) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = Retry(ctx, 0, time.Millisecond, func() error { calls++; return Retryable(errBoom) })
	if calls != 1 || err == nil {
		t.Errorf("zero attempts should run once: err=%v calls=%d", err, calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error { return Retryable(errors.New("net")) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	base := errors.New("x")
	err := Retryable(base)
	if !IsRetryable(err) || err.Error() != "x" || !errors.Is(err, base) {
		t.Errorf("Retryable(x) = %v", err)
	}
	if IsRetryable(base) {
		t.Error("plain error should not be retryable")
	}
}
