package middleware

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"book-deconstructor/internal/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages per-IP rate limiting
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
	}
}

// GetLimiter returns the rate limiter for a given IP
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	limiter, _ := l.limiters.LoadOrStore(ip, rate.NewLimiter(l.rate, l.burst))
	return limiter.(*rate.Limiter)
}

// retryAfter is the whole number of seconds until one token is available
func (l *IPRateLimiter) retryAfter() int {
	if l.rate <= 0 || l.rate == rate.Inf {
		return 1
	}
	return int(math.Ceil(1 / float64(l.rate)))
}

// DailyQuota manages the global daily deconstruction quota.
// Gemini free-tier quotas reset at midnight Pacific Time.
type DailyQuota struct {
	count   int64
	limit   int64
	resetAt time.Time
	now     func() time.Time
	mu      sync.Mutex
}

// NewDailyQuota creates a new daily quota manager
func NewDailyQuota(limit int64) *DailyQuota {
	return newDailyQuotaWithClock(limit, time.Now)
}

func newDailyQuotaWithClock(limit int64, now func() time.Time) *DailyQuota {
	return &DailyQuota{
		limit:   limit,
		now:     now,
		resetAt: nextMidnightPT(now()),
	}
}

// Allow checks if a request is allowed and increments the counter
func (q *DailyQuota) Allow() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.now().After(q.resetAt) {
		log.Printf("[QUOTA] Daily quota reset. Previous count: %d", q.count)
		q.count = 0
		q.resetAt = nextMidnightPT(q.now())
	}

	if q.count >= q.limit {
		return false
	}
	q.count++
	return true
}

// Remaining returns the remaining quota
func (q *DailyQuota) Remaining() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit - q.count
}

// Count returns the current count
func (q *DailyQuota) Count() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// untilReset returns the seconds left before the quota resets
func (q *DailyQuota) untilReset() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(math.Ceil(q.resetAt.Sub(q.now()).Seconds()))
}

// nextMidnightPT returns the next midnight in Pacific Time after now
func nextMidnightPT(now time.Time) time.Time {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		// Fallback to UTC if timezone not found
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

const rateLimitedMessageZh = "请求过于频繁，请稍后再试。"

// RateLimitMiddleware applies the per-IP limiter, then the global daily quota.
// The IP check runs first so rejected requests do not consume quota.
// Rejections get 429 with Retry-After; /api paths receive JSON.
func RateLimitMiddleware(ipLimiter *IPRateLimiter, quota *DailyQuota) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !ipLimiter.GetLimiter(ip).Allow() {
			log.Printf("[RATELIMIT] IP limit exceeded ip=%s", ip)
			metrics.RecordRateLimited("ip")
			reject(c, ipLimiter.retryAfter(), "RATE_LIMITED")
			return
		}

		if !quota.Allow() {
			log.Printf("[QUOTA] Daily quota exhausted count=%d", quota.Count())
			metrics.RecordRateLimited("daily_quota")
			reject(c, quota.untilReset(), "DAILY_QUOTA_EXCEEDED")
			return
		}

		c.Next()
	}
}

func reject(c *gin.Context, retryAfter int, code string) {
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":      rateLimitedMessageZh,
			"code":       code,
			"retryAfter": retryAfter,
		})
		return
	}
	c.String(http.StatusTooManyRequests, rateLimitedMessageZh)
	c.Abort()
}
