package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hapkiduki/sgp-engine/internal/application/dto"
)

// RateLimiterConfig contains rate limiter configuration.
type RateLimiterConfig struct {
	// RequestsPerSecond is the sustained number of requests allowed per client.
	RequestsPerSecond float64

	// Burst is the maximum burst size.
	Burst int

	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL time.Duration

	// KeyFunc extracts the key for rate limiting. Defaults to ClientIP.
	KeyFunc func(*http.Request) string
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 50,
		Burst:             100,
		IdleTTL:           10 * time.Minute,
		KeyFunc:           ClientIP,
	}
}

// ClientIP returns the host part of r.RemoteAddr. Run chi's RealIP first
// when the service sits behind a proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client and drops buckets that
// have been idle for longer than ttl.
type clientLimiters struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(cfg RateLimiterConfig) *clientLimiters {
	return &clientLimiters{
		buckets:   make(map[string]*clientBucket),
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     cfg.Burst,
		ttl:       cfg.IdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.ttl > 0 && now.Sub(c.lastSweep) > c.ttl {
		for k, b := range c.buckets {
			if now.Sub(b.lastSeen) > c.ttl {
				delete(c.buckets, k)
			}
		}
		c.lastSweep = now
	}

	b, ok := c.buckets[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buckets)
}

// RateLimiter limits the request rate per client with a token bucket.
// Rejected requests get 429 and a Retry-After header.
//
// Parameters:
//   - config: Rate limiter configuration
//
// Returns:
//   - func(http.Handler) http.Handler: the middleware function
func RateLimiter(config RateLimiterConfig) func(http.Handler) http.Handler {
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIP
	}
	limiters := newClientLimiters(config)

	return rateLimit(limiters, config.KeyFunc)
}

func rateLimit(limiters *clientLimiters, keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := limiters.get(keyFunc(r))

			if !limiter.Allow() {
				retry := 1
				if limiters.limit > 0 {
					retry = max(1, int(1/float64(limiters.limit)))
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				WriteError(w, r, http.StatusTooManyRequests, dto.CodeRateLimited,
					"too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
