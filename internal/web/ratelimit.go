package web

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	mw "github.com/JonMunkholm/portfolio/internal/web/middleware"
)

// visitorTTL is how long an idle client's limiter is kept.
const visitorTTL = 10 * time.Minute

// ipRateLimiter hands out one token bucket per client IP.
type ipRateLimiter struct {
	limit rate.Limit
	burst int

	mu          sync.Mutex
	visitors    map[string]*visitor
	lastCleanup time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newIPRateLimiter allows perMinute sustained requests per IP with the given burst.
func newIPRateLimiter(perMinute, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limit:       rate.Limit(float64(perMinute) / 60),
		burst:       burst,
		visitors:    make(map[string]*visitor),
		lastCleanup: time.Now(),
	}
}

// get returns the limiter for ip, sweeping idle visitors at most once a minute.
func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastCleanup) > time.Minute {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, key)
			}
		}
		l.lastCleanup = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// retryAfter is the wait, in whole seconds, for one token to refill.
func (l *ipRateLimiter) retryAfter() string {
	if l.limit <= 0 {
		return "60"
	}
	return strconv.Itoa(int(math.Ceil(1 / float64(l.limit))))
}

// middleware rejects requests over the limit with 429.
func (l *ipRateLimiter) middleware(s *Server) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if addr, ok := mw.ParseAddr(r.RemoteAddr); ok {
				ip = addr.String()
			}

			if !l.get(ip).Allow() {
				w.Header().Set("Retry-After", l.retryAfter())
				s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
