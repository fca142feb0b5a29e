package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// visitor holds the recent request times for one client IP.
type visitor struct {
	mu   sync.Mutex
	hits []time.Time
}

// prune drops hits older than cutoff and reports how many remain. The
// caller must hold v.mu.
func (v *visitor) prune(cutoff time.Time) int {
	kept := v.hits[:0]
	for _, h := range v.hits {
		if h.After(cutoff) {
			kept = append(kept, h)
		}
	}
	v.hits = kept
	return len(kept)
}

// RateLimiter rejects clients that exceed limit requests within a sliding
// window, keyed by IP. The login route gets a tight limiter so credential
// stuffing cannot run at line speed; a looser one fronts the whole API.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	done     chan struct{}
}

// NewRateLimiter creates a limiter allowing limit requests per window. A
// janitor goroutine evicts idle clients once per window; call Stop to end it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		done:     make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

// Stop terminates the janitor goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.done:
			return
		}
	}
}

// allow records a hit for ip and reports whether it stays within the limit.
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{}
		rl.visitors[ip] = v
	}
	rl.mu.Unlock()

	now := time.Now()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.prune(now.Add(-rl.window)) >= rl.limit {
		return false
	}
	v.hits = append(v.hits, now)
	return true
}

// evictIdle removes visitors whose every hit has aged out of the window.
func (rl *RateLimiter) evictIdle() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		v.mu.Lock()
		remaining := v.prune(cutoff)
		v.mu.Unlock()
		if remaining == 0 {
			delete(rl.visitors, ip)
		}
	}
}

// Middleware rejects over-limit clients with 429 RATE_LIMITED.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating client address: the leftmost
// X-Forwarded-For entry, then X-Real-IP, then RemoteAddr without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
