package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter implements a simple fixed-window, in-memory rate limiter keyed by client IP
type RateLimiter struct {
	clients  map[string]*clientLimit
	now      func() time.Time
	logger   *slog.Logger
	requests int
	window   time.Duration
	mu       sync.Mutex
}

type clientLimit struct {
	resetTime time.Time
	count     int
}

// NewRateLimiter creates a new rate limiter
// requests: maximum number of requests allowed per window
// window: time window duration (e.g., 1 minute)
// Expired entries are swept every window until ctx is done.
func NewRateLimiter(ctx context.Context, requests int, window time.Duration, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimit),
		now:      time.Now,
		logger:   logger,
		requests: requests,
		window:   window,
	}

	go rl.cleanup(ctx)

	return rl
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := clientIP(r)

		allowed, retryAfter := rl.allow(clientID)
		if !allowed {
			rl.logger.Debug("rate limit exceeded", "client", clientID, "path", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "RateLimitExceeded",
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow counts a request and reports whether it fits in the client's window,
// and if not, how long until the window resets
func (rl *RateLimiter) allow(clientID string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now().UTC()

	client, exists := rl.clients[clientID]
	if !exists || now.After(client.resetTime) {
		rl.clients[clientID] = &clientLimit{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true, 0
	}

	if client.count < rl.requests {
		client.count++
		return true, 0
	}

	return false, client.resetTime.Sub(now)
}

// cleanup removes expired client entries periodically
func (rl *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now().UTC()
	for clientID, client := range rl.clients {
		if now.After(client.resetTime) {
			delete(rl.clients, clientID)
		}
	}
}

// clientIP extracts the client IP from the request. Only the first hop of
// X-Forwarded-For is used.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
