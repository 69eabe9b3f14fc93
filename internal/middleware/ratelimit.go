package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientBucket holds a token bucket and last-seen time for one client IP.
type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles credential endpoints per client IP so password
// guessing against /api/auth cannot run unbounded.
type LoginLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	rps     rate.Limit
	burst   int
}

// NewLoginLimiter creates a limiter allowing rps attempts per second
// per IP, with bursts of up to burst attempts.
func NewLoginLimiter(rps float64, burst int) *LoginLimiter {
	ll := &LoginLimiter{
		buckets: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	// Background cleanup of stale entries every 3 minutes
	go ll.cleanup()
	return ll
}

func (ll *LoginLimiter) bucket(ip string) *rate.Limiter {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	b, exists := ll.buckets[ip]
	if !exists {
		limiter := rate.NewLimiter(ll.rps, ll.burst)
		ll.buckets[ip] = &clientBucket{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	b.lastSeen = time.Now()
	return b.limiter
}

// cleanup removes IP entries not seen for 5 minutes.
func (ll *LoginLimiter) cleanup() {
	for {
		time.Sleep(3 * time.Minute)
		ll.mu.Lock()
		for ip, b := range ll.buckets {
			if time.Since(b.lastSeen) > 5*time.Minute {
				delete(ll.buckets, ip)
			}
		}
		ll.mu.Unlock()
	}
}

// Middleware returns a Gin middleware that rejects clients exceeding
// the per-IP attempt budget with 429.
func (ll *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ll.bucket(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "too many login attempts, please wait before retrying",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
