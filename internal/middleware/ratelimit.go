package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cycleradar/internal/domain/dto"
)

// pruneAbove is the number of tracked clients after which expired windows are dropped.
const pruneAbove = 1024

type window struct {
	start time.Time
	count int
}

// RateLimiter is a fixed-window, per-client-IP request limiter kept in memory.
// A single instance serves one router; state is not shared across replicas.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows up to limit requests per client in every window.
func NewRateLimiter(limit int, every time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  every,
		now:     time.Now,
	}
}

// Handler returns the Gin middleware.
//
// Response when the limit is exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 12
//	{"message": "rate limit exceeded", "timestamp": "..."}
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}

// allow counts one request for ip and reports whether it fits the window,
// plus the time left until the window resets.
func (l *RateLimiter) allow(ip string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.clients) > pruneAbove {
		for k, w := range l.clients {
			if now.Sub(w.start) >= l.window {
				delete(l.clients, k)
			}
		}
	}

	w, ok := l.clients[ip]
	if !ok || now.Sub(w.start) >= l.window {
		w = &window{start: now}
		l.clients[ip] = w
	}
	w.count++
	return w.count <= l.limit, l.window - now.Sub(w.start)
}
