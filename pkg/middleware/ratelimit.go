package middleware

import (
	"net/http"
	"sync"
	"time"

	"tour-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a bucket may go unused before it is dropped. A
// bucket idle this long has refilled completely, so dropping it changes nothing.
const limiterIdleTTL = time.Hour

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
	log       *zap.Logger
}

// NewRateLimiter allows perHour requests per IP per hour, all usable as a burst.
func NewRateLimiter(perHour int, log *zap.Logger) *RateLimiter {
	if perHour <= 0 {
		perHour = 100
	}
	return &RateLimiter{
		limiters:  make(map[string]*clientLimiter),
		limit:     rate.Every(time.Hour / time.Duration(perHour)),
		burst:     perHour,
		lastSweep: time.Now(),
		now:       time.Now,
		log:       log,
	}
}

func (l *RateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweep(now)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops idle buckets. Callers hold mu.
func (l *RateLimiter) sweep(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r)
		if !l.getLimiter(ip).Allow() {
			l.log.Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.ResponseTooManyRequests(w, "Too many requests from this IP, please try again in an hour!")
			return
		}
		next.ServeHTTP(w, r)
	})
}
