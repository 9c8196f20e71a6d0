package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"campusparties/internal/delivery/http/helpers"
)

// RateLimitConfig holds per-class token-bucket settings. Requests are bucketed
// per client address within each class.
type RateLimitConfig struct {
	ReadRate       rate.Limit // read-only listing queries
	ReadBurst      int
	MutateRate     rate.Limit // authenticated mutations
	MutateBurst    int
	AnonymousRate  rate.Limit // anonymous going bumps
	AnonymousBurst int

	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns the default quotas: 120 req/min for reads,
// 30 req/min for mutations, 5 req/min for anonymous going bumps.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		ReadRate:        rate.Limit(120.0 / 60.0),
		ReadBurst:       60,
		MutateRate:      rate.Limit(30.0 / 60.0),
		MutateBurst:     10,
		AnonymousRate:   rate.Limit(5.0 / 60.0),
		AnonymousBurst:  3,
		CleanupInterval: 5 * time.Minute,
	}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter manages per-client token buckets for the three route classes.
type RateLimiter struct {
	config RateLimitConfig
	logger *slog.Logger

	mu      sync.Mutex
	buckets map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter creates a RateLimiter and starts the background cleanup of
// idle buckets. Call Stop on shutdown.
func NewRateLimiter(config RateLimitConfig, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		logger:  logger,
		buckets: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Read limits read-only routes.
func (rl *RateLimiter) Read(next http.HandlerFunc) http.HandlerFunc {
	return rl.limit("read", rl.config.ReadRate, rl.config.ReadBurst, next)
}

// Mutate limits authenticated mutating routes.
func (rl *RateLimiter) Mutate(next http.HandlerFunc) http.HandlerFunc {
	return rl.limit("mutate", rl.config.MutateRate, rl.config.MutateBurst, next)
}

// Anonymous limits the unauthenticated going bump, the most abuse-prone route.
func (rl *RateLimiter) Anonymous(next http.HandlerFunc) http.HandlerFunc {
	return rl.limit("anonymous", rl.config.AnonymousRate, rl.config.AnonymousBurst, next)
}

func (rl *RateLimiter) limit(class string, r rate.Limit, burst int, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		key := class + "|" + clientAddr(req)
		if !rl.allow(key, r, burst) {
			retryAfter := int(math.Ceil(1.0 / float64(r)))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeRateLimited, "too many requests, try again later")
			rl.logger.Warn("rate limit exceeded", "class", class, "addr", clientAddr(req), "path", req.URL.Path)
			return
		}
		next(w, req)
	}
}

func (rl *RateLimiter) allow(key string, r rate.Limit, burst int) bool {
	rl.mu.Lock()
	cl, ok := rl.buckets[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(r, burst)}
		rl.buckets[key] = cl
	}
	cl.lastAccess = time.Now()
	rl.mu.Unlock()
	return cl.limiter.Allow()
}

// clientAddr returns the caller's address: the first X-Forwarded-For entry
// when present (the service runs behind a proxy), otherwise the remote host.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops buckets idle for more than twice the cleanup interval.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2
	now := time.Now()
	rl.mu.Lock()
	for key, cl := range rl.buckets {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.buckets, key)
		}
	}
	rl.mu.Unlock()
}
