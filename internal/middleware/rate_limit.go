package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"universe-builder/internal/shared/config"
	"universe-builder/internal/shared/errors"
	"universe-builder/internal/shared/response"

	"golang.org/x/time/rate"
)

const clientIdleTimeout = 3 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	cfg     config.RateLimitConfig
	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
	logger  *slog.Logger
}

// NewRateLimiter starts the idle sweep when cfg is enabled. The sweep stops
// when ctx is done.
func NewRateLimiter(ctx context.Context, cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:     cfg,
		clients: make(map[string]*client),
		now:     time.Now,
		logger:  logger.With("middleware", "rate_limit"),
	}

	if cfg.Enabled {
		rl.logger.Info("Rate limiting enabled",
			"requests_per_second", cfg.RequestsPerSecond,
			"burst_size", cfg.BurstSize,
			"trust_proxy", cfg.TrustProxy,
		)
		go rl.sweep(ctx)
	}

	return rl
}

func (rl *RateLimiter) allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.BurstSize)}
		rl.clients[addr] = c
	}
	c.lastSeen = rl.now()
	return c.limiter.Allow()
}

// evictIdle drops clients not seen since cutoff and returns how many remain.
func (rl *RateLimiter) evictIdle(cutoff time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for addr, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, addr)
		}
	}
	return len(rl.clients)
}

func (rl *RateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining := rl.evictIdle(rl.now().Add(-clientIdleTimeout))
			rl.logger.Debug("Swept idle rate limit clients", "remaining", remaining)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := getClientIP(r, rl.cfg.TrustProxy)
		if !rl.allow(addr) {
			w.Header().Set("Retry-After", "1")
			response.Error(w, r, rl.logger.With("client_ip", addr), errors.RateLimited("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// X-Forwarded-For lists the client first.
		if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
