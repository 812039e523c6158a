package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	generalEvery = 100 * time.Millisecond
	generalBurst = 20

	// mail codes and logins
	authEvery = 10 * time.Second
	authBurst = 5

	visitorIdleTimeout = 3 * time.Minute
	sweepThreshold     = 1024
)

// visitor holds the rate limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorSet struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    time.Duration
	burst    int
}

func newVisitorSet(every time.Duration, burst int) *visitorSet {
	return &visitorSet{visitors: make(map[string]*visitor), every: every, burst: burst}
}

var (
	visitors      = newVisitorSet(generalEvery, generalBurst)
	loginVisitors = newVisitorSet(authEvery, authBurst)
)

func (s *visitorSet) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if len(s.visitors) >= sweepThreshold {
		for key, v := range s.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTimeout {
				delete(s.visitors, key)
			}
		}
	}

	v, exists := s.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(s.every), s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (s *visitorSet) reset() {
	s.mu.Lock()
	s.visitors = make(map[string]*visitor)
	s.mu.Unlock()
}

func limit(set *visitorSet, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !set.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status": http.StatusTooManyRequests,
				"error":  message,
			})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware applies a simple per-IP rate limit for all routes.
func RateLimitMiddleware() gin.HandlerFunc {
	return limit(visitors, "Too many requests. Please slow down.")
}

// LoginRateLimitMiddleware applies a stricter per-IP rate limit for auth routes.
func LoginRateLimitMiddleware() gin.HandlerFunc {
	return limit(loginVisitors, "Too many authentication attempts. Please wait and try again.")
}
