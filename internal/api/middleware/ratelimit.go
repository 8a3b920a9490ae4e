package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
)

const (
	maxTrackedClients = 10000
	// idle limiters are dropped after this long; a fresh one starts full.
	limiterIdleTTL = 30 * time.Minute
)

// KeyedLimiter keeps one token bucket per client key
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	trusted  []netip.Prefix
}

// NewKeyedLimiter allows perMinute events per key with the given burst.
// Forwarding headers are only read from peers inside trustedProxies.
func NewKeyedLimiter(perMinute, burst int, trustedProxies ...netip.Prefix) *KeyedLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &KeyedLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, limiterIdleTTL),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		trusted:  trustedProxies,
	}
}

// Allow reports whether key may proceed now
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// Throttle rejects POST requests from clients over their allowance with
// 429. Other methods pass through untouched.
func Throttle(limiter *KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			ip := clientIP(r, limiter.trusted)
			if !limiter.Allow(ip) {
				observability.LoggerFromContext(r.Context()).Warn().
					Str("remote_ip", ip).
					Str("path", r.URL.Path).
					Msg("login attempts throttled")
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Too many login attempts, please wait a minute.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the address that sent r. X-Forwarded-For and X-Real-IP
// are honoured only when the direct peer is a trusted proxy; the chain is
// walked from the right, skipping trusted hops.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := peerIP(r)
	if !isTrusted(peer, trusted) {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !isTrusted(hop, trusted) || i == 0 {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return peer
}

func peerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
