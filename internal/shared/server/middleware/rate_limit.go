package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultRateLimitGroup = "DEFAULT"

// RateLimitRule is a token-bucket rule: Rate tokens per second up to Burst.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig maps request groups to rules. GroupFor picks the group for
// a request; requests in groups with no rule pass through unlimited.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter holds per-principal token buckets. The clock is injectable so
// tests can advance time without sleeping.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	now     func() time.Time
}

type tokenBucket struct {
	tokens   float64
	refilled time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		now:     now,
	}
}

// RateLimit throttles per signed-in user (or client IP for anonymous
// traffic), with separate buckets per group.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}

		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}

		allowed, retryAfter := cfg.Limiter.Allow(principal+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}
		tooManyRequests(c, retryAfter)
	}
}

func tooManyRequests(c *gin.Context, retryAfter time.Duration) {
	retryAfterMs := int(retryAfter / time.Millisecond)
	if retryAfterMs <= 0 {
		retryAfterMs = 1000
	}
	retryAfterSeconds := int(math.Ceil(float64(retryAfterMs) / 1000.0))
	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":        "rate_limited",
		"retryAfterMs": retryAfterMs,
	})
	c.Abort()
}

// Allow takes one token from the bucket for key, creating it at full burst on
// first sight. When empty it reports how long until the next token accrues.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &tokenBucket{tokens: float64(rule.Burst), refilled: now}
		l.buckets[key] = bucket
	}
	bucket.refill(now, rule)

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true, 0
	}

	waitSec := (1 - bucket.tokens) / rule.Rate
	if waitSec < 0 {
		waitSec = 0
	}
	return false, time.Duration(math.Ceil(waitSec*1000.0)) * time.Millisecond
}

func (b *tokenBucket) refill(now time.Time, rule RateLimitRule) {
	elapsed := now.Sub(b.refilled).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens = math.Min(float64(rule.Burst), b.tokens+elapsed*rule.Rate)
	b.refilled = now
}
