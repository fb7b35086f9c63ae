package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.POST("/api/deconstruct", ok)
	r.POST("/deconstruct", ok)
	r.GET("/", ok)
	return r
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_IPLimit(t *testing.T) {
	r := newRouter(RateLimitMiddleware(NewIPRateLimiter(rate.Every(10*time.Second), 2), NewDailyQuota(100)))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/deconstruct").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/deconstruct").Code)

	w := do(r, http.MethodPost, "/api/deconstruct")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "10", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimit_PageRoutesGetPlainText(t *testing.T) {
	r := newRouter(RateLimitMiddleware(NewIPRateLimiter(rate.Every(time.Minute), 1), NewDailyQuota(100)))

	do(r, http.MethodPost, "/deconstruct")
	w := do(r, http.MethodPost, "/deconstruct")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, rateLimitedMessageZh, w.Body.String())
}

func TestRateLimit_DailyQuota(t *testing.T) {
	quota := NewDailyQuota(1)
	r := newRouter(RateLimitMiddleware(NewIPRateLimiter(rate.Inf, 1), quota))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/deconstruct").Code)
	w := do(r, http.MethodPost, "/api/deconstruct")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "DAILY_QUOTA_EXCEEDED")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, int64(0), quota.Remaining())
}

func TestRateLimit_IPRejectionDoesNotConsumeQuota(t *testing.T) {
	quota := NewDailyQuota(10)
	r := newRouter(RateLimitMiddleware(NewIPRateLimiter(rate.Every(time.Minute), 1), quota))

	do(r, http.MethodPost, "/api/deconstruct")
	do(r, http.MethodPost, "/api/deconstruct")
	do(r, http.MethodPost, "/api/deconstruct")
	assert.Equal(t, int64(1), quota.Count())
}

func TestDailyQuota_ResetsAfterMidnight(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	q := newDailyQuotaWithClock(1, func() time.Time { return now })

	assert.True(t, q.Allow())
	assert.False(t, q.Allow())

	now = now.Add(25 * time.Hour)
	assert.True(t, q.Allow())
	assert.Equal(t, int64(1), q.Count())
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Minute), 1)
	assert.True(t, l.GetLimiter("a").Allow())
	assert.False(t, l.GetLimiter("a").Allow())
	assert.True(t, l.GetLimiter("b").Allow())
}

func TestSecurityHeaders(t *testing.T) {
	r := newRouter(SecurityHeaders())

	w := do(r, http.MethodGet, "/")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
	assert.NotEmpty(t, w.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, w.Header().Get("Permissions-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}
