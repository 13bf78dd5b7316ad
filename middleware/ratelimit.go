package middleware

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"filehive/utils"

	"github.com/gin-gonic/gin"
)

type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
	rate     time.Duration
	burst    int
}

type visitor struct {
	limiter  *TokenBucket
	lastSeen time.Time
}

// TokenBucket is a simple refill-on-demand token bucket.
type TokenBucket struct {
	tokens     int
	capacity   int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// rateLimitEnabled is set from configuration at route setup; when false every
// limiter becomes a pass-through.
var rateLimitEnabled = true

// SetRateLimitEnabled toggles all rate limiting (called during route setup)
func SetRateLimitEnabled(enabled bool) {
	rateLimitEnabled = enabled
}

var rateLimiters = map[string]*RateLimiter{
	"global": NewRateLimiter(time.Second, 60),    // 60 requests per minute
	"auth":   NewRateLimiter(6*time.Second, 10),  // 10 auth requests per minute
	"otp":    NewRateLimiter(12*time.Second, 5),  // 5 OTP requests per minute
	"upload": NewRateLimiter(2*time.Second, 30),  // 30 uploads per minute
	"search": NewRateLimiter(time.Second/2, 120), // 120 searches per minute
}

func NewRateLimiter(rate time.Duration, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
	}

	go rl.cleanupVisitors()

	return rl
}

func NewTokenBucket(capacity int, refillRate time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     capacity,
		capacity:   capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) Allow() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	if elapsed >= tb.refillRate {
		tokensToAdd := int(elapsed / tb.refillRate)
		tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{
			limiter:  NewTokenBucket(rl.burst, rl.rate),
			lastSeen: time.Now(),
		}
		rl.visitors[key] = v
	}

	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(10 * time.Minute)

		rl.mutex.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > time.Hour {
				delete(rl.visitors, key)
			}
		}
		rl.mutex.Unlock()
	}
}

// RateLimitMiddleware applies rate limiting based on client IP
func RateLimitMiddleware() gin.HandlerFunc {
	return RateLimitWithType("global")
}

// RateLimitWithType applies a named rate limiting profile
func RateLimitWithType(limitType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimitEnabled {
			c.Next()
			return
		}

		limiter, exists := rateLimiters[limitType]
		if !exists {
			limiter = rateLimiters["global"]
		}

		clientID := getClientID(c)

		if !limiter.Allow(clientID) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(limiter.rate).Unix(), 10))

			utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthRateLimitMiddleware applies strict rate limiting for auth endpoints
func AuthRateLimitMiddleware() gin.HandlerFunc {
	return RateLimitWithType("auth")
}

// OTPRateLimitMiddleware applies strict rate limiting for OTP delivery
func OTPRateLimitMiddleware() gin.HandlerFunc {
	return RateLimitWithType("otp")
}

// UploadRateLimitMiddleware applies rate limiting for upload endpoints
func UploadRateLimitMiddleware() gin.HandlerFunc {
	return RateLimitWithType("upload")
}

func getClientID(c *gin.Context) string {
	if userID, exists := utils.GetUserIDFromContext(c); exists {
		return fmt.Sprintf("user:%s", userID.Hex())
	}
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
