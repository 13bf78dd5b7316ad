package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, time.Hour)

	require.True(t, bucket.Allow())
	require.True(t, bucket.Allow())
	require.True(t, bucket.Allow())
	require.False(t, bucket.Allow())
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 10*time.Millisecond)

	require.True(t, bucket.Allow())
	require.False(t, bucket.Allow())

	time.Sleep(20 * time.Millisecond)
	require.True(t, bucket.Allow())
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	SetRateLimitEnabled(false)
	defer SetRateLimitEnabled(true)

	handler := RateLimitWithType("auth")

	// Far past the auth burst; nothing should be rejected.
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)

		handler(c)
		require.NotEqual(t, http.StatusTooManyRequests, w.Code)
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	limiter := NewRateLimiter(time.Hour, 1)

	require.True(t, limiter.Allow("ip:1.2.3.4"))
	require.False(t, limiter.Allow("ip:1.2.3.4"))

	// A different client has its own bucket
	require.True(t, limiter.Allow("ip:5.6.7.8"))
}
