package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
)

// limiterIdleTTL is how long an idle client's limiter is kept.
const limiterIdleTTL = 5 * time.Minute

var rateLimited = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "recharge_proxy",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limit.",
	},
	[]string{"route"},
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu          sync.Mutex
	clients     map[string]*clientLimiter
	lastCleanup time.Time
}

// NewRateLimiter creates a per-client limiter allowing rps with burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:         rate.Limit(rps),
		burst:       burst,
		now:         time.Now,
		clients:     make(map[string]*clientLimiter),
		lastCleanup: time.Now(),
	}
}

// Allow reports whether the client may make a request now.
func (l *RateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	cl, ok := l.clients[clientIP]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[clientIP] = cl
	}

	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

// pruneLocked drops limiters idle longer than limiterIdleTTL.
func (l *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastCleanup) < limiterIdleTTL {
		return
	}

	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) >= limiterIdleTTL {
			delete(l.clients, ip)
		}
	}

	l.lastCleanup = now
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			rateLimited.WithLabelValues(c.FullPath()).Inc()
			dto.AbortWithFailure(c, dto.ErrorCodeRateLimited, i18n.MsgRateLimited)

			return
		}

		c.Next()
	}
}
