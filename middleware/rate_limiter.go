// backend/middleware/rate_limiter.go
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gewnthar/tripcover/backend/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdle is how long a client's bucket is kept after its last request.
const DefaultLimiterIdle = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters  map[string]*clientLimiter
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	trusted   []*net.IPNet
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows RateLimitPerMinute requests per IP with the given burst.
// A non-positive RateLimitPerMinute disables limiting. X-Forwarded-For is only
// believed when the connection comes from one of TrustedProxies.
func NewRateLimiter(cfg config.ServerConfig) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Inf,
		burst:    cfg.RateLimitBurst,
		trusted:  parseProxies(cfg.TrustedProxies),
		idle:     DefaultLimiterIdle,
		now:      time.Now,
	}
	if cfg.RateLimitPerMinute > 0 {
		rl.limit = rate.Every(time.Minute / time.Duration(cfg.RateLimitPerMinute))
	}
	if rl.burst < 1 {
		rl.burst = 1
	}
	return rl
}

func parseProxies(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if _, n, err := net.ParseCIDR(e); err == nil {
			nets = append(nets, n)
			continue
		}
		ip := net.ParseIP(e)
		if ip == nil {
			zap.L().Warn("Ignoring invalid trusted proxy", zap.String("proxy", e))
			continue
		}
		bits := 8 * net.IPv4len
		if ip.To4() == nil {
			bits = 8 * net.IPv6len
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
// Buckets idle for longer than s.idle are dropped, at most once per idle period.
func (s *RateLimiter) getLimiter(ip string) *rate.Limiter {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= s.idle {
		s.sweepLocked(now)
	}

	entry, exists := s.limiters[ip]
	if !exists {
		entry = &clientLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (s *RateLimiter) sweepLocked(now time.Time) {
	s.lastSweep = now
	dropped := 0
	for ip, e := range s.limiters {
		if now.Sub(e.lastSeen) > s.idle {
			delete(s.limiters, ip)
			dropped++
		}
	}
	if dropped > 0 {
		zap.L().Debug("Dropped idle rate limiters", zap.Int("dropped", dropped), zap.Int("live", len(s.limiters)))
	}
}

// Len is the number of client buckets currently kept.
func (s *RateLimiter) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Middleware rejects requests over the limit with 429.
func (s *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := s.ClientIP(r)
		if !s.getLimiter(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Rate limit exceeded. Try again later."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP is the connection's address unless that address is a trusted proxy. Then the
// X-Forwarded-For hops are walked from the right and the first untrusted one is the client.
func (s *RateLimiter) ClientIP(r *http.Request) string {
	remote := remoteHost(r)
	if !s.isTrusted(remote) {
		return remote
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if net.ParseIP(hop) == nil {
			break
		}
		if !s.isTrusted(hop) {
			return hop
		}
	}
	return remote
}

func (s *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range s.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
