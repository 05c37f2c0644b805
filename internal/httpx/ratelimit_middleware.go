package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client address with a token bucket.
type RateLimitMiddleware struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idle     time.Duration
	// trustForwarded keys clients by X-Forwarded-For. Enable it only behind a
	// proxy that overwrites the header.
	trustForwarded bool

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewRateLimitMiddleware starts a background sweep of idle clients; call Close
// to stop it.
func NewRateLimitMiddleware(rps float64, burst int, trustForwarded bool) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters:       make(map[string]*clientLimiter),
		rate:           rate.Limit(rps),
		burst:          burst,
		idle:           5 * time.Minute,
		trustForwarded: trustForwarded,
		done:           make(chan struct{}),
		stopped:        make(chan struct{}),
	}

	go rl.evictIdle()
	return rl
}

// Close stops the idle sweep and waits for it to exit. It is safe to call more
// than once.
func (rl *RateLimitMiddleware) Close() {
	rl.closeOnce.Do(func() { close(rl.done) })
	<-rl.stopped
}

func (rl *RateLimitMiddleware) evictIdle() {
	defer close(rl.stopped)
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.evict(time.Now())
		}
	}
}

func (rl *RateLimitMiddleware) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) > rl.idle {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimitMiddleware) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// clientKey identifies the caller. The first X-Forwarded-For entry is used
// only when trustForwarded is set, since any client can send that header.
func clientKey(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if forwarded := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0]); forwarded != "" {
			return forwarded
		}
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiterFor(clientKey(r, rl.trustForwarded)).Allow() {
			w.Header().Set("Retry-After", "1")
			JSONError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
