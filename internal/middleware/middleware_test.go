package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"universe-builder/internal/auth"
	"universe-builder/internal/shared/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "10.0.0.1:5555", nil, false, "10.0.0.1"},
		{"ignores proxy headers", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "1.2.3.4"}, false, "10.0.0.1"},
		{"forwarded chain", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.9"}, true, "1.2.3.4"},
		{"real ip", "10.0.0.1:5555", map[string]string{"X-Real-IP": "5.6.7.8"}, true, "5.6.7.8"},
		{"no port", "10.0.0.1", nil, false, "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2}, discardLogger())
	h := rl.Middleware(okHandler)

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/api/stars", nil)
		req.RemoteAddr = "192.0.2.1:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	// Other clients have their own bucket
	req := httptest.NewRequest(http.MethodGet, "/api/stars", nil)
	req.RemoteAddr = "192.0.2.2:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("second client status = %d", rec.Code)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{Enabled: false, BurstSize: 0}, discardLogger())
	h := rl.Middleware(okHandler)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}, discardLogger())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rl.now = func() time.Time { return start }
	rl.allow("192.0.2.1")
	rl.now = func() time.Time { return start.Add(5 * time.Minute) }
	rl.allow("192.0.2.2")

	if remaining := rl.evictIdle(start.Add(5*time.Minute - clientIdleTimeout)); remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
	if _, ok := rl.clients["192.0.2.2"]; !ok {
		t.Error("recent client was evicted")
	}
}

func TestRequireAdmin(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := issuer.GenerateAdminToken("ops")
	if err != nil {
		t.Fatal(err)
	}

	var seen *auth.Claims
	h := RequireAdmin(issuer, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetAdminFromContext(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
		{"lowercase scheme", "bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/universe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if seen == nil || seen.Subject != "ops" {
		t.Errorf("claims in context = %+v", seen)
	}
}

func TestRequireAdminWithoutIssuer(t *testing.T) {
	h := RequireAdmin(nil, discardLogger())(okHandler)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/universe", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
