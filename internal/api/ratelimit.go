package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// limiterIdleTTL is how long a client's bucket is kept after its last
	// request. An evicted client simply starts over with a full bucket.
	limiterIdleTTL = 10 * time.Minute

	// limiterPruneInterval is the minimum spacing between prune passes.
	limiterPruneInterval = time.Minute
)

// ipRateLimiter hands out one token bucket per client IP. The chat endpoint
// fronts paid upstream APIs, so per-IP throttling is the first line of
// defense against abuse. Idle entries are pruned opportunistically so the
// map does not grow with every IP ever seen.
type ipRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*rateLimitClient
	limit     rate.Limit
	burst     int
	lastPrune time.Time
}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newIPRateLimiter allows perMinute requests per IP, with a burst of the
// same size so a client can spend its whole minute budget at once.
func newIPRateLimiter(perMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		clients:   make(map[string]*rateLimitClient),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		lastPrune: time.Now(),
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) >= limiterPruneInterval {
		l.pruneLocked(now)
		l.lastPrune = now
	}

	client, ok := l.clients[ip]
	if !ok {
		client = &rateLimitClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.Allow()
}

// pruneLocked drops clients idle longer than limiterIdleTTL.
// Caller must hold l.mu.
func (l *ipRateLimiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-limiterIdleTTL)
	for ip, client := range l.clients {
		if client.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// middleware rejects over-limit requests with a 429 and the given message.
// middleware.RealIP runs earlier in the chain, so RemoteAddr already holds
// the client address even behind a proxy.
func (l *ipRateLimiter) middleware(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !l.allow(ip) {
				respondWithJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: message})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
