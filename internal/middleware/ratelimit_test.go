package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/devportal/devportal/internal/cache"
)

// bucketLimiter allows burst requests per IP and rejects the rest.
type bucketLimiter struct {
	mu    sync.Mutex
	seen  map[string]int
	err   error
	calls int
}

func (b *bucketLimiter) CheckIPRateLimit(_ context.Context, ip string, _ int, burst int) (*cache.RateLimitResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.err != nil {
		return &cache.RateLimitResult{Allowed: true}, b.err
	}
	if b.seen == nil {
		b.seen = make(map[string]int)
	}
	b.seen[ip]++
	remaining := int64(burst - b.seen[ip])
	if remaining < 0 {
		return &cache.RateLimitResult{Allowed: false, RetryAfter: 2 * time.Second, ResetAt: time.Now()}, nil
	}
	return &cache.RateLimitResult{Allowed: true, Remaining: remaining, ResetAt: time.Now()}, nil
}

func rateLimitedHandler(limiter IPRateLimiter, enabled bool) http.Handler {
	mw := RateLimitIP(RateLimitConfig{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Limiter: limiter,
		Enabled: enabled,
		RPS:     1,
		Burst:   2,
	})
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRateLimitIP(t *testing.T) {
	handler := rateLimitedHandler(&bucketLimiter{}, true)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v2/public/app/app_1", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)

		if i == 2 {
			if rec.Header().Get("Retry-After") != "2" {
				t.Errorf("expected Retry-After=2, got %q", rec.Header().Get("Retry-After"))
			}
			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["code"] != "rate_limited" {
				t.Errorf("unexpected code: %v", body["code"])
			}
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("request %d: expected %d, got %d", i+1, want[i], statuses[i])
		}
	}
}

func TestRateLimitIP_FailOpen(t *testing.T) {
	handler := rateLimitedHandler(&bucketLimiter{err: errors.New("redis down")}, true)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestRateLimitIP_Disabled(t *testing.T) {
	limiter := &bucketLimiter{}
	handler := rateLimitedHandler(limiter, false)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if limiter.calls != 0 {
		t.Errorf("limiter should not be called when disabled")
	}
}

func TestRateLimitHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	setRateLimitHeaders(rec, 60, 45, time.Unix(1700000000, 0))

	if rec.Header().Get("X-RateLimit-Limit") != "60" {
		t.Errorf("Expected X-RateLimit-Limit=60, got %s", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "45" {
		t.Errorf("Expected X-RateLimit-Remaining=45, got %s", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if rec.Header().Get("X-RateLimit-Reset") != "1700000000" {
		t.Errorf("Expected X-RateLimit-Reset=1700000000, got %s", rec.Header().Get("X-RateLimit-Reset"))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote_addr", "10.0.0.1:5555", nil, "10.0.0.1"},
		{"remote_addr_no_port", "10.0.0.1", nil, "10.0.0.1"},
		{"ignores_forwarded_for", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "10.0.0.1"},
		{"ignores_real_ip", "10.0.0.1:5555", map[string]string{"X-Real-IP": "203.0.113.9"}, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
