package dispatchhandlers

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/voralek/relay/dispatch"
)

// LimiterStore holds per-client rate limiters. It is an injected,
// explicitly-owned state object: the caller creates it, shares it with
// the middleware, and runs the sweep task with a lifetime it controls.
type LimiterStore struct {
	mu      sync.Mutex
	clients map[string]*limiterEntry

	limit rate.Limit
	burst int
	ttl   time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiterStore returns a store creating one token-bucket limiter per
// client key, with the given sustained rate and burst. Clients idle for
// longer than ttl become eligible for eviction by Sweep.
func NewLimiterStore(limit rate.Limit, burst int, ttl time.Duration) *LimiterStore {
	return &LimiterStore{
		clients: make(map[string]*limiterEntry),
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
	}
}

// Allow reports whether the client identified by key may proceed,
// consuming one token from its limiter.
func (s *LimiterStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.clients[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.clients[key] = entry
	}

	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// Len returns the number of tracked clients.
func (s *LimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.clients)
}

// Sweep evicts idle clients every interval until ctx is cancelled.
// Run it in its own goroutine:
//
//	go store.Sweep(ctx, time.Minute)
func (s *LimiterStore) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.evict(now)
		}
	}
}

// evict removes clients not seen within the store's ttl.
func (s *LimiterStore) evict(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.clients {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.clients, key)
		}
	}
}

// RateLimit returns a pipeline middleware that rejects requests
// exceeding the store's per-client rate with 429 Too Many Requests,
// aborting the pipeline. keyFunc derives the client key from the
// request; when nil, the remote address without port is used.
func RateLimit(store *LimiterStore, keyFunc func(r *http.Request) string) dispatch.MiddlewareFunc {
	if keyFunc == nil {
		keyFunc = remoteHost
	}

	return func(w http.ResponseWriter, r *http.Request) bool {
		if store.Allow(keyFunc(r)) {
			return true
		}

		w.Header().Set("Retry-After", "1")
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)

		return false
	}
}

// remoteHost returns the request's remote address without the port.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
